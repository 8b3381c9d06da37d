package decision

import (
	"context"
	"net/http"
	"time"

	"github.com/swasthya/operations-backend/internal/domain/entities"
	"github.com/swasthya/operations-backend/internal/domain/providers"
	apperrors "github.com/swasthya/operations-backend/pkg/errors"
)

// ORScheduleAdapter talks to the ER/OR scheduling agent's OR surface.
type ORScheduleAdapter struct {
	agentClient
}

// NewORScheduleAdapter creates an OR scheduling adapter for the given agent base URL.
func NewORScheduleAdapter(baseURL string, timeout time.Duration) providers.ORSchedulingProvider {
	return &ORScheduleAdapter{agentClient: newAgentClient(baseURL, timeout)}
}

type surgicalCaseInput struct {
	CaseID            string `json:"case_id"`
	ProcedureType     string `json:"procedure_type"`
	ComplexityScore   int    `json:"complexity_score,omitempty"`
	EstimatedDuration int    `json:"estimated_duration,omitempty"`
	Priority          int    `json:"priority,omitempty"`
}

type orScheduleRequest struct {
	Cases []surgicalCaseInput `json:"cases"`
}

type orScheduleResponse struct {
	Status   string `json:"status"`
	Schedule []struct {
		CaseID            string `json:"case_id"`
		ORRoom            int    `json:"or_room"`
		StartTime         string `json:"start_time"`
		EstimatedDuration int    `json:"estimated_duration"`
	} `json:"schedule"`
	GeneratedAt string `json:"generated_at"`
}

// ScheduleCases schedules the given surgical cases into operating rooms.
func (a *ORScheduleAdapter) ScheduleCases(ctx context.Context, cases []entities.SurgicalCase) ([]entities.ORAssignment, error) {
	req := orScheduleRequest{}
	for _, c := range cases {
		req.Cases = append(req.Cases, surgicalCaseInput{
			CaseID:            c.CaseID,
			ProcedureType:     c.ProcedureType,
			ComplexityScore:   c.ComplexityScore,
			EstimatedDuration: c.EstimatedDuration,
			Priority:          c.Priority,
		})
	}

	var resp orScheduleResponse
	if err := a.doJSON(ctx, http.MethodPost, "/or/schedule", req, &resp); err != nil {
		return nil, apperrors.NewExternalError("OR scheduling call failed", err)
	}

	assignments := make([]entities.ORAssignment, 0, len(resp.Schedule))
	for _, s := range resp.Schedule {
		assignments = append(assignments, entities.ORAssignment{
			CaseID:            s.CaseID,
			ORRoom:            s.ORRoom,
			StartTime:         parseAgentTime(s.StartTime),
			EstimatedDuration: s.EstimatedDuration,
		})
	}
	return assignments, nil
}

// Healthy probes the agent.
func (a *ORScheduleAdapter) Healthy(ctx context.Context) bool {
	return a.probe(ctx)
}
