package entities

import "time"

// WorkflowSnapshot is an immutable copy of the most recent daily-pipeline
// outputs, returned by the supervisor for introspection. It is never the
// authoritative record; the database is.
type WorkflowSnapshot struct {
	Forecast            *Forecast            `json:"forecast,omitempty"`
	Schedule            []ShiftAssignment    `json:"schedule,omitempty"`
	DischargeCandidates []DischargeCandidate `json:"discharge_candidates,omitempty"`
	LastDailyRun        time.Time            `json:"last_daily_run,omitempty"`
}

// Workflow event types published on the event bus.
const (
	EventDailyRunCompleted  = "daily_run_completed"
	EventPatientQueued      = "patient_queued"
	EventPersistenceFailure = "persistence_failure"
	EventAgentUnhealthy     = "agent_unhealthy"
)

// WorkflowEvent is a lifecycle notification emitted by the supervisor.
type WorkflowEvent struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
