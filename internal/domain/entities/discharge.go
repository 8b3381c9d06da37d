package entities

import "time"

// Inpatient is the read model for an admitted patient with no discharge
// date yet. Owned by the patient-record store; this service only reads it
// to compose discharge-planning requests.
type Inpatient struct {
	PatientID           string     `json:"patient_id"`
	AdmissionDate       string     `json:"admission_date"` // YYYY-MM-DD
	Diagnosis           string     `json:"diagnosis"`
	Vitals              VitalSigns `json:"vitals"`
	ProceduresCompleted []string   `json:"procedures_completed"`
}

// DischargeCandidate is the discharge-planning agent's assessment of one
// inpatient. ReadinessScore is in [0,1].
type DischargeCandidate struct {
	PatientID              string          `json:"patient_id"`
	ReadinessScore         float64         `json:"discharge_readiness_score"`
	EstimatedDischargeDate string          `json:"estimated_discharge_date"`
	CriteriaMet            map[string]bool `json:"criteria_met"`
	Recommendations        []string        `json:"recommendations"`
	GeneratedAt            time.Time       `json:"-"`
}
