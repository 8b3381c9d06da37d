package decision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastAdapter_Forecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict", r.URL.Path)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, float64(7), req["horizon_days"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"predictions": []map[string]interface{}{
				{"date": "2026-09-01", "predicted_volume": 118.5, "confidence_lower": 95.0, "confidence_upper": 140.0},
			},
			"model_version": "prophet-v2",
			// FastAPI isoformat carries no offset
			"generated_at": "2026-08-31T06:00:00.123456",
		})
	}))
	defer server.Close()

	adapter := NewForecastAdapter(server.URL, 5*time.Second)
	forecast, err := adapter.Forecast(context.Background(), 7, "2026-08-31")

	require.NoError(t, err)
	require.Len(t, forecast.Predictions, 1)
	assert.Equal(t, 118.5, forecast.Predictions[0].PredictedVolume)
	assert.Equal(t, "prophet-v2", forecast.ModelVersion)
	assert.Equal(t, 2026, forecast.GeneratedAt.Year())
	assert.False(t, forecast.IsEmpty())
}

func TestParseAgentTime(t *testing.T) {
	assert.Equal(t, time.Date(2026, 8, 31, 6, 0, 0, 0, time.UTC), parseAgentTime("2026-08-31T06:00:00Z"))
	assert.Equal(t, 2026, parseAgentTime("2026-08-31T06:00:00.123456").Year())
	assert.True(t, parseAgentTime("not a timestamp").IsZero())
}
