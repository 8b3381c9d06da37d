package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/swasthya/operations-backend/internal/domain/entities"
	"github.com/swasthya/operations-backend/internal/domain/repositories"
	"github.com/swasthya/operations-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/swasthya/operations-backend/pkg/errors"
)

// ForecastAdapter implements forecast persistence in Postgres.
type ForecastAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewForecastAdapter creates a new forecast adapter.
func NewForecastAdapter(client *postgres.Client) repositories.ForecastRepository {
	return &ForecastAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Upsert writes every forecast point, keyed on (forecast_date, generated_at).
// A conflicting row only has its predicted volume refreshed; a forecast
// regenerated at a different time accumulates a new row per date.
func (a *ForecastAdapter) Upsert(ctx context.Context, forecast *entities.Forecast) error {
	if forecast.IsEmpty() {
		return nil
	}

	for _, point := range forecast.Predictions {
		record := goqu.Record{
			"forecast_date":    point.Date,
			"generated_at":     forecast.GeneratedAt,
			"predicted_volume": point.PredictedVolume,
			"confidence_lower": point.ConfidenceLower,
			"confidence_upper": point.ConfidenceUpper,
			"model_version":    forecast.ModelVersion,
		}

		query, args, err := a.db.Insert("demand_forecasts").
			Rows(record).
			OnConflict(goqu.DoUpdate(
				"forecast_date, generated_at",
				goqu.Record{"predicted_volume": point.PredictedVolume},
			)).
			ToSQL()
		if err != nil {
			return apperrors.NewPersistenceError("failed to build forecast upsert query", err)
		}

		if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewPersistenceError("failed to upsert forecast point", err)
		}
	}

	return nil
}
