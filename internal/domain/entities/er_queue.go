package entities

import "time"

// ER queue entry statuses. Transitions past "waiting" are driven by the
// ER front-desk systems, not by this service.
const (
	ERStatusWaiting    = "waiting"
	ERStatusSeen       = "seen"
	ERStatusDischarged = "discharged"
)

// ERQueueEntry is a patient waiting in the emergency department queue.
type ERQueueEntry struct {
	ID          string     `json:"id"`
	PatientID   string     `json:"patient_id"`
	AcuityLevel int        `json:"acuity_level"`
	ArrivalTime time.Time  `json:"arrival_time"`
	Status      string     `json:"status"`
	SeenAt      *time.Time `json:"seen_at,omitempty"`
}
