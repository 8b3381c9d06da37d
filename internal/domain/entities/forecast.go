package entities

import "time"

// ForecastPoint is one day of predicted patient volume.
// When confidence bounds are present, ConfidenceLower <= PredictedVolume <= ConfidenceUpper.
type ForecastPoint struct {
	Date            string  `json:"date"` // YYYY-MM-DD
	PredictedVolume float64 `json:"predicted_volume"`
	ConfidenceLower float64 `json:"confidence_lower"`
	ConfidenceUpper float64 `json:"confidence_upper"`
}

// Forecast is the demand-forecast agent's output for a fixed horizon.
type Forecast struct {
	Predictions  []ForecastPoint `json:"predictions"`
	ModelVersion string          `json:"model_version"`
	GeneratedAt  time.Time       `json:"generated_at"`
}

// IsEmpty reports whether the forecast carries no predictions. An empty
// forecast does not gate the scheduling stage open.
func (f *Forecast) IsEmpty() bool {
	return f == nil || len(f.Predictions) == 0
}
