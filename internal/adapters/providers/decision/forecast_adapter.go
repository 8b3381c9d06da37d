package decision

import (
	"context"
	"net/http"
	"time"

	"github.com/swasthya/operations-backend/internal/domain/entities"
	"github.com/swasthya/operations-backend/internal/domain/providers"
	apperrors "github.com/swasthya/operations-backend/pkg/errors"
)

// ForecastAdapter talks to the demand-forecast agent.
type ForecastAdapter struct {
	agentClient
}

// NewForecastAdapter creates a forecast adapter for the given agent base URL.
func NewForecastAdapter(baseURL string, timeout time.Duration) providers.ForecastProvider {
	return &ForecastAdapter{agentClient: newAgentClient(baseURL, timeout)}
}

type forecastRequest struct {
	HorizonDays int    `json:"horizon_days"`
	Date        string `json:"date,omitempty"`
}

type forecastResponse struct {
	Predictions []struct {
		Date            string  `json:"date"`
		PredictedVolume float64 `json:"predicted_volume"`
		ConfidenceLower float64 `json:"confidence_lower"`
		ConfidenceUpper float64 `json:"confidence_upper"`
	} `json:"predictions"`
	ModelVersion string `json:"model_version"`
	GeneratedAt  string `json:"generated_at"`
}

// Forecast requests a patient-volume forecast for the given horizon.
func (a *ForecastAdapter) Forecast(ctx context.Context, horizonDays int, date string) (*entities.Forecast, error) {
	req := forecastRequest{HorizonDays: horizonDays, Date: date}

	var resp forecastResponse
	if err := a.doJSON(ctx, http.MethodPost, "/predict", req, &resp); err != nil {
		return nil, apperrors.NewExternalError("demand forecast call failed", err)
	}

	forecast := &entities.Forecast{
		ModelVersion: resp.ModelVersion,
		GeneratedAt:  parseAgentTime(resp.GeneratedAt),
	}
	for _, p := range resp.Predictions {
		forecast.Predictions = append(forecast.Predictions, entities.ForecastPoint{
			Date:            p.Date,
			PredictedVolume: p.PredictedVolume,
			ConfidenceLower: p.ConfidenceLower,
			ConfidenceUpper: p.ConfidenceUpper,
		})
	}
	return forecast, nil
}

// Healthy probes the agent.
func (a *ForecastAdapter) Healthy(ctx context.Context) bool {
	return a.probe(ctx)
}
