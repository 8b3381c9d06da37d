package entities

// Acuity levels follow the emergency severity convention of the triage
// agent: numerically lower is more severe. Queue prioritization processes
// ascending acuity, which is therefore most-critical-first.
const (
	AcuityResuscitation = 1
	AcuityEmergent      = 2
	AcuityUrgent        = 3
	AcuityLessUrgent    = 4
	AcuityNonUrgent     = 5
)

// AcuityLabel returns the human-readable label for an acuity level.
func AcuityLabel(level int) string {
	switch level {
	case AcuityResuscitation:
		return "Resuscitation"
	case AcuityEmergent:
		return "Emergent"
	case AcuityUrgent:
		return "Urgent"
	case AcuityLessUrgent:
		return "Less Urgent"
	case AcuityNonUrgent:
		return "Non-Urgent"
	default:
		return "Unknown"
	}
}

// VitalSigns carried with an arrival and forwarded to the triage agent.
type VitalSigns struct {
	HeartRate              *int     `json:"heart_rate,omitempty"`
	BloodPressureSystolic  *int     `json:"blood_pressure_systolic,omitempty"`
	BloodPressureDiastolic *int     `json:"blood_pressure_diastolic,omitempty"`
	Temperature            *float64 `json:"temperature,omitempty"`
	RespiratoryRate        *int     `json:"respiratory_rate,omitempty"`
	OxygenSaturation       *int     `json:"oxygen_saturation,omitempty"`
}

// Arrival is a single-patient arrival event handed to the supervisor.
type Arrival struct {
	PatientID string     `json:"patient_id"`
	Symptoms  string     `json:"symptoms"`
	Vitals    VitalSigns `json:"vitals"`
}

// TriageDecision is the triage agent's assessment of one arrival.
// Immutable after creation.
type TriageDecision struct {
	PatientID         string   `json:"patient_id"`
	AcuityLevel       int      `json:"acuity_level"`
	AcuityLabel       string   `json:"acuity_label"`
	Confidence        float64  `json:"confidence"`
	RiskFactors       []string `json:"risk_factors"`
	RedFlags          []string `json:"red_flags"`
	RecommendedAction string   `json:"recommended_action"`
	ModelVersion      string   `json:"model_version"`
}

// MeetsQueueThreshold reports whether the decision is severe enough to
// earn an ER queue entry. Lower acuity is more severe, so the check is
// level <= threshold.
func (d *TriageDecision) MeetsQueueThreshold(threshold int) bool {
	return d.AcuityLevel <= threshold
}
