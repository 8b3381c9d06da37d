package decision

import (
	"context"
	"time"

	"github.com/swasthya/operations-backend/internal/domain/entities"
	"github.com/swasthya/operations-backend/internal/domain/providers"
)

// Mock adapters produce deterministic data for local development and for
// running the supervisor without live agents (AGENTS_MODE=mock).

// MockForecastAdapter returns a flat forecast for the requested horizon.
type MockForecastAdapter struct{}

// NewMockForecastAdapter creates a mock forecast provider.
func NewMockForecastAdapter() providers.ForecastProvider {
	return &MockForecastAdapter{}
}

// Forecast returns one prediction per day starting at date.
func (m *MockForecastAdapter) Forecast(ctx context.Context, horizonDays int, date string) (*entities.Forecast, error) {
	start, err := time.Parse("2006-01-02", date)
	if err != nil {
		start = time.Now()
	}

	forecast := &entities.Forecast{
		ModelVersion: "mock-v1",
		GeneratedAt:  time.Now(),
	}
	for i := 0; i < horizonDays; i++ {
		forecast.Predictions = append(forecast.Predictions, entities.ForecastPoint{
			Date:            start.AddDate(0, 0, i).Format("2006-01-02"),
			PredictedVolume: 120,
			ConfidenceLower: 100,
			ConfidenceUpper: 140,
		})
	}
	return forecast, nil
}

// Healthy always reports true.
func (m *MockForecastAdapter) Healthy(ctx context.Context) bool { return true }

// MockStaffingAdapter assigns every roster member to a morning shift on
// each forecast date.
type MockStaffingAdapter struct{}

// NewMockStaffingAdapter creates a mock staffing provider.
func NewMockStaffingAdapter() providers.StaffSchedulingProvider {
	return &MockStaffingAdapter{}
}

// Schedule returns one morning assignment per staff member per forecast day.
func (m *MockStaffingAdapter) Schedule(ctx context.Context, req providers.StaffSchedulingRequest) ([]entities.ShiftAssignment, error) {
	var assignments []entities.ShiftAssignment
	if req.Forecast == nil {
		return assignments, nil
	}
	for _, point := range req.Forecast.Predictions {
		for _, member := range req.Staff {
			assignments = append(assignments, entities.ShiftAssignment{
				StaffID: member.StaffID,
				Date:    point.Date,
				Shift:   entities.ShiftMorning,
				Role:    member.Role,
			})
		}
	}
	return assignments, nil
}

// Healthy always reports true.
func (m *MockStaffingAdapter) Healthy(ctx context.Context) bool { return true }

// MockTriageAdapter classifies every arrival as Urgent.
type MockTriageAdapter struct{}

// NewMockTriageAdapter creates a mock triage provider.
func NewMockTriageAdapter() providers.TriageProvider {
	return &MockTriageAdapter{}
}

// Triage returns a fixed Urgent decision for the arrival.
func (m *MockTriageAdapter) Triage(ctx context.Context, arrival entities.Arrival) (*entities.TriageDecision, error) {
	return &entities.TriageDecision{
		PatientID:         arrival.PatientID,
		AcuityLevel:       entities.AcuityUrgent,
		AcuityLabel:       entities.AcuityLabel(entities.AcuityUrgent),
		Confidence:        0.5,
		RecommendedAction: "assess within 30 minutes",
		ModelVersion:      "mock-v1",
	}, nil
}

// Healthy always reports true.
func (m *MockTriageAdapter) Healthy(ctx context.Context) bool { return true }

// MockDischargeAdapter marks every inpatient ready for discharge tomorrow.
type MockDischargeAdapter struct{}

// NewMockDischargeAdapter creates a mock discharge provider.
func NewMockDischargeAdapter() providers.DischargePlanningProvider {
	return &MockDischargeAdapter{}
}

// PlanDischarges returns one candidate per inpatient.
func (m *MockDischargeAdapter) PlanDischarges(ctx context.Context, patients []entities.Inpatient) ([]entities.DischargeCandidate, error) {
	now := time.Now()
	candidates := make([]entities.DischargeCandidate, 0, len(patients))
	for _, p := range patients {
		candidates = append(candidates, entities.DischargeCandidate{
			PatientID:              p.PatientID,
			ReadinessScore:         0.8,
			EstimatedDischargeDate: now.AddDate(0, 0, 1).Format("2006-01-02"),
			CriteriaMet:            map[string]bool{"vitals_stable": true},
			Recommendations:        []string{"arrange follow-up visit"},
			GeneratedAt:            now,
		})
	}
	return candidates, nil
}

// Healthy always reports true.
func (m *MockDischargeAdapter) Healthy(ctx context.Context) bool { return true }

// MockORScheduleAdapter packs cases into rooms round-robin at hourly slots.
type MockORScheduleAdapter struct{}

// NewMockORScheduleAdapter creates a mock OR scheduling provider.
func NewMockORScheduleAdapter() providers.ORSchedulingProvider {
	return &MockORScheduleAdapter{}
}

// ScheduleCases assigns rooms 1..4 round-robin.
func (m *MockORScheduleAdapter) ScheduleCases(ctx context.Context, cases []entities.SurgicalCase) ([]entities.ORAssignment, error) {
	start := time.Now().Truncate(time.Hour).Add(time.Hour)
	assignments := make([]entities.ORAssignment, 0, len(cases))
	for i, c := range cases {
		duration := c.EstimatedDuration
		if duration == 0 {
			duration = 90
		}
		assignments = append(assignments, entities.ORAssignment{
			CaseID:            c.CaseID,
			ORRoom:            i%4 + 1,
			StartTime:         start.Add(time.Duration(i/4) * 2 * time.Hour),
			EstimatedDuration: duration,
		})
	}
	return assignments, nil
}

// Healthy always reports true.
func (m *MockORScheduleAdapter) Healthy(ctx context.Context) bool { return true }
