package entities

import "time"

// SurgicalCase is one case submitted for operating-room scheduling.
type SurgicalCase struct {
	CaseID            string `json:"case_id"`
	ProcedureType     string `json:"procedure_type"`
	ComplexityScore   int    `json:"complexity_score"`
	EstimatedDuration int    `json:"estimated_duration,omitempty"` // minutes
	Priority          int    `json:"priority"`
}

// ORAssignment is one scheduled OR slot returned by the OR-scheduling agent.
type ORAssignment struct {
	CaseID            string    `json:"case_id"`
	ORRoom            int       `json:"or_room"`
	StartTime         time.Time `json:"start_time"`
	EstimatedDuration int       `json:"estimated_duration"` // minutes
}
