package providers

import (
	"context"

	"github.com/swasthya/operations-backend/internal/domain/entities"
)

// Known decision-service names, used as keys in health reports.
const (
	AgentForecast  = "demand_forecast"
	AgentStaffing  = "staff_scheduling"
	AgentTriage    = "triage_acuity"
	AgentDischarge = "discharge_planning"
	AgentORSched   = "or_scheduling"
)

// HealthProber is implemented by every decision-service adapter. Healthy
// must never return an error; a failed probe is reported as false.
type HealthProber interface {
	Healthy(ctx context.Context) bool
}

// ForecastProvider produces a patient-volume forecast for a fixed horizon.
// One round trip, no retries; the caller decides whether failure is
// tolerable.
type ForecastProvider interface {
	HealthProber
	Forecast(ctx context.Context, horizonDays int, date string) (*entities.Forecast, error)
}

// StaffSchedulingRequest composes the inputs for a scheduling run.
type StaffSchedulingRequest struct {
	Forecast    *entities.Forecast
	Staff       []entities.StaffMember
	Constraints entities.StaffingConstraints
}

// StaffSchedulingProvider produces shift assignments for the active roster.
type StaffSchedulingProvider interface {
	HealthProber
	Schedule(ctx context.Context, req StaffSchedulingRequest) ([]entities.ShiftAssignment, error)
}

// TriageProvider assesses a single arriving patient.
type TriageProvider interface {
	HealthProber
	Triage(ctx context.Context, arrival entities.Arrival) (*entities.TriageDecision, error)
}

// DischargePlanningProvider assesses the open inpatient census for
// discharge readiness.
type DischargePlanningProvider interface {
	HealthProber
	PlanDischarges(ctx context.Context, patients []entities.Inpatient) ([]entities.DischargeCandidate, error)
}

// ORSchedulingProvider schedules surgical cases into operating rooms.
type ORSchedulingProvider interface {
	HealthProber
	ScheduleCases(ctx context.Context, cases []entities.SurgicalCase) ([]entities.ORAssignment, error)
}
