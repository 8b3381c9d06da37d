package decision

import (
	"context"
	"net/http"
	"time"

	"github.com/swasthya/operations-backend/internal/domain/entities"
	"github.com/swasthya/operations-backend/internal/domain/providers"
	apperrors "github.com/swasthya/operations-backend/pkg/errors"
)

// DischargeAdapter talks to the discharge-planning agent.
type DischargeAdapter struct {
	agentClient
}

// NewDischargeAdapter creates a discharge adapter for the given agent base URL.
func NewDischargeAdapter(baseURL string, timeout time.Duration) providers.DischargePlanningProvider {
	return &DischargeAdapter{agentClient: newAgentClient(baseURL, timeout)}
}

type patientInput struct {
	PatientID           string              `json:"patient_id"`
	AdmissionDate       string              `json:"admission_date"`
	Diagnosis           string              `json:"diagnosis"`
	Vitals              entities.VitalSigns `json:"vitals"`
	ProceduresCompleted []string            `json:"procedures_completed"`
}

type dischargePlanningRequest struct {
	CurrentPatients []patientInput `json:"current_patients"`
}

type dischargePlanningResponse struct {
	DischargeCandidates []struct {
		PatientID              string          `json:"patient_id"`
		ReadinessScore         float64         `json:"discharge_readiness_score"`
		CriteriaMet            map[string]bool `json:"criteria_met"`
		EstimatedDischargeDate string          `json:"estimated_discharge_date"`
		Recommendations        []string        `json:"recommendations"`
	} `json:"discharge_candidates"`
	GeneratedAt string `json:"generated_at"`
}

// PlanDischarges assesses the open census for discharge readiness.
func (a *DischargeAdapter) PlanDischarges(ctx context.Context, patients []entities.Inpatient) ([]entities.DischargeCandidate, error) {
	req := dischargePlanningRequest{}
	for _, p := range patients {
		req.CurrentPatients = append(req.CurrentPatients, patientInput{
			PatientID:           p.PatientID,
			AdmissionDate:       p.AdmissionDate,
			Diagnosis:           p.Diagnosis,
			Vitals:              p.Vitals,
			ProceduresCompleted: p.ProceduresCompleted,
		})
	}

	var resp dischargePlanningResponse
	if err := a.doJSON(ctx, http.MethodPost, "/analyze", req, &resp); err != nil {
		return nil, apperrors.NewExternalError("discharge planning call failed", err)
	}

	generatedAt := parseAgentTime(resp.GeneratedAt)
	candidates := make([]entities.DischargeCandidate, 0, len(resp.DischargeCandidates))
	for _, c := range resp.DischargeCandidates {
		candidates = append(candidates, entities.DischargeCandidate{
			PatientID:              c.PatientID,
			ReadinessScore:         c.ReadinessScore,
			EstimatedDischargeDate: c.EstimatedDischargeDate,
			CriteriaMet:            c.CriteriaMet,
			Recommendations:        c.Recommendations,
			GeneratedAt:            generatedAt,
		})
	}
	return candidates, nil
}

// Healthy probes the agent.
func (a *DischargeAdapter) Healthy(ctx context.Context) bool {
	return a.probe(ctx)
}
