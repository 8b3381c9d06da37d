package entities

// Shift names used across scheduling requests and assignments
const (
	ShiftMorning   = "morning"
	ShiftAfternoon = "afternoon"
	ShiftNight     = "night"
)

// StaffMember is one row of the staff roster. Only active members are
// eligible for scheduling.
type StaffMember struct {
	StaffID         string   `json:"staff_id"`
	Name            string   `json:"name"`
	Role            string   `json:"role"`
	MaxHoursPerWeek int      `json:"max_hours_per_week"`
	Qualifications  []string `json:"qualifications"`
	Active          bool     `json:"active"`
}

// ShiftAssignment is one staff-date-shift combination produced by the
// staff-scheduling agent. Assignments are append-only; repeated workflow
// runs accumulate history.
type ShiftAssignment struct {
	StaffID string `json:"staff_id"`
	Date    string `json:"date"` // YYYY-MM-DD
	Shift   string `json:"shift"`
	Role    string `json:"role"`
}

// StaffingConstraints are the fixed constraints sent with every
// scheduling request.
type StaffingConstraints struct {
	MinStaffPerShift   map[string]int `json:"min_staff_per_shift"`
	ShiftDurationHours int            `json:"shift_duration_hours"`
}
