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
	"github.com/swasthya/operations-backend/internal/domain/entities"
	apperrors "github.com/swasthya/operations-backend/pkg/errors"
)

func TestTriageAdapter_Triage(t *testing.T) {
	t.Run("decodes a triage decision", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/triage", r.URL.Path)

			var req map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "p-1", req["patient_id"])

			json.NewEncoder(w).Encode(map[string]interface{}{
				"patient_id":         "p-1",
				"acuity_level":       2,
				"acuity_label":       "Emergent",
				"confidence":         0.91,
				"risk_factors":       []string{"tachycardia"},
				"red_flags":          []string{"chest pain"},
				"recommended_action": "immediate assessment",
				"model_version":      "v1.0",
			})
		}))
		defer server.Close()

		adapter := NewTriageAdapter(server.URL, 5*time.Second)
		decision, err := adapter.Triage(context.Background(), entities.Arrival{
			PatientID: "p-1",
			Symptoms:  "chest pain, shortness of breath",
		})

		require.NoError(t, err)
		assert.Equal(t, 2, decision.AcuityLevel)
		assert.Equal(t, "Emergent", decision.AcuityLabel)
		assert.Equal(t, []string{"chest pain"}, decision.RedFlags)
	})

	t.Run("non-2xx status is an external error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not loaded", http.StatusInternalServerError)
		}))
		defer server.Close()

		adapter := NewTriageAdapter(server.URL, 5*time.Second)
		decision, err := adapter.Triage(context.Background(), entities.Arrival{PatientID: "p-1"})

		require.Error(t, err)
		assert.Nil(t, decision)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
	})

	t.Run("unreachable agent is an external error", func(t *testing.T) {
		adapter := NewTriageAdapter("http://127.0.0.1:1", time.Second)
		_, err := adapter.Triage(context.Background(), entities.Arrival{PatientID: "p-1"})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
	})
}

func TestTriageAdapter_Healthy(t *testing.T) {
	t.Run("healthy status is true", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/health", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]interface{}{"status": "healthy", "model_loaded": true})
		}))
		defer server.Close()

		adapter := NewTriageAdapter(server.URL, time.Second)
		assert.True(t, adapter.Healthy(context.Background()))
	})

	t.Run("degraded status is false", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"status": "model_not_loaded"})
		}))
		defer server.Close()

		adapter := NewTriageAdapter(server.URL, time.Second)
		assert.False(t, adapter.Healthy(context.Background()))
	})

	t.Run("probe never raises on an unreachable agent", func(t *testing.T) {
		adapter := NewTriageAdapter("http://127.0.0.1:1", time.Second)
		assert.False(t, adapter.Healthy(context.Background()))
	})
}
