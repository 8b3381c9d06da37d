package decision

import (
	"context"
	"net/http"
	"time"

	"github.com/swasthya/operations-backend/internal/domain/entities"
	"github.com/swasthya/operations-backend/internal/domain/providers"
	apperrors "github.com/swasthya/operations-backend/pkg/errors"
)

// StaffingAdapter talks to the staff-scheduling agent.
type StaffingAdapter struct {
	agentClient
}

// NewStaffingAdapter creates a staffing adapter for the given agent base URL.
func NewStaffingAdapter(baseURL string, timeout time.Duration) providers.StaffSchedulingProvider {
	return &StaffingAdapter{agentClient: newAgentClient(baseURL, timeout)}
}

type staffMemberInput struct {
	StaffID         string   `json:"staff_id"`
	Name            string   `json:"name"`
	Role            string   `json:"role"`
	MaxHoursPerWeek int      `json:"max_hours_per_week"`
	Qualifications  []string `json:"qualifications"`
}

type schedulingRequest struct {
	ForecastData *entities.Forecast           `json:"forecast_data,omitempty"`
	StaffList    []staffMemberInput           `json:"staff_list"`
	Constraints  entities.StaffingConstraints `json:"constraints"`
}

type schedulingResponse struct {
	Status   string `json:"status"`
	Schedule []struct {
		StaffID string `json:"staff_id"`
		Role    string `json:"role"`
		Date    string `json:"date"`
		Shift   string `json:"shift"`
	} `json:"schedule"`
	GeneratedAt string `json:"generated_at"`
}

// Schedule requests shift assignments for the given roster and constraints.
func (a *StaffingAdapter) Schedule(ctx context.Context, req providers.StaffSchedulingRequest) ([]entities.ShiftAssignment, error) {
	payload := schedulingRequest{
		ForecastData: req.Forecast,
		Constraints:  req.Constraints,
	}
	for _, member := range req.Staff {
		payload.StaffList = append(payload.StaffList, staffMemberInput{
			StaffID:         member.StaffID,
			Name:            member.Name,
			Role:            member.Role,
			MaxHoursPerWeek: member.MaxHoursPerWeek,
			Qualifications:  member.Qualifications,
		})
	}

	var resp schedulingResponse
	if err := a.doJSON(ctx, http.MethodPost, "/schedule", payload, &resp); err != nil {
		return nil, apperrors.NewExternalError("staff scheduling call failed", err)
	}

	assignments := make([]entities.ShiftAssignment, 0, len(resp.Schedule))
	for _, s := range resp.Schedule {
		assignments = append(assignments, entities.ShiftAssignment{
			StaffID: s.StaffID,
			Date:    s.Date,
			Shift:   s.Shift,
			Role:    s.Role,
		})
	}
	return assignments, nil
}

// Healthy probes the agent.
func (a *StaffingAdapter) Healthy(ctx context.Context) bool {
	return a.probe(ctx)
}
