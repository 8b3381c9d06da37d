package decision

import (
	"context"
	"net/http"
	"time"

	"github.com/swasthya/operations-backend/internal/domain/entities"
	"github.com/swasthya/operations-backend/internal/domain/providers"
	apperrors "github.com/swasthya/operations-backend/pkg/errors"
)

// TriageAdapter talks to the triage-acuity agent.
type TriageAdapter struct {
	agentClient
}

// NewTriageAdapter creates a triage adapter for the given agent base URL.
func NewTriageAdapter(baseURL string, timeout time.Duration) providers.TriageProvider {
	return &TriageAdapter{agentClient: newAgentClient(baseURL, timeout)}
}

type triageRequest struct {
	PatientID string              `json:"patient_id"`
	Symptoms  string              `json:"symptoms"`
	Vitals    entities.VitalSigns `json:"vitals"`
}

type triageResponse struct {
	PatientID         string   `json:"patient_id"`
	AcuityLevel       int      `json:"acuity_level"`
	AcuityLabel       string   `json:"acuity_label"`
	Confidence        float64  `json:"confidence"`
	RiskFactors       []string `json:"risk_factors"`
	RedFlags          []string `json:"red_flags"`
	RecommendedAction string   `json:"recommended_action"`
	ModelVersion      string   `json:"model_version"`
}

// Triage assesses one arriving patient. There is no safe default acuity,
// so the caller treats failure as fatal.
func (a *TriageAdapter) Triage(ctx context.Context, arrival entities.Arrival) (*entities.TriageDecision, error) {
	req := triageRequest{
		PatientID: arrival.PatientID,
		Symptoms:  arrival.Symptoms,
		Vitals:    arrival.Vitals,
	}

	var resp triageResponse
	if err := a.doJSON(ctx, http.MethodPost, "/triage", req, &resp); err != nil {
		return nil, apperrors.NewExternalError("triage call failed", err)
	}

	return &entities.TriageDecision{
		PatientID:         resp.PatientID,
		AcuityLevel:       resp.AcuityLevel,
		AcuityLabel:       resp.AcuityLabel,
		Confidence:        resp.Confidence,
		RiskFactors:       resp.RiskFactors,
		RedFlags:          resp.RedFlags,
		RecommendedAction: resp.RecommendedAction,
		ModelVersion:      resp.ModelVersion,
	}, nil
}

// Healthy probes the agent.
func (a *TriageAdapter) Healthy(ctx context.Context) bool {
	return a.probe(ctx)
}
