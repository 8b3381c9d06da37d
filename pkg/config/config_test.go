package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_AgentsConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("TRIAGE_AGENT_URL", "http://triage.internal:8005")
	os.Setenv("AGENT_CALL_TIMEOUT", "10s")
	defer func() {
		os.Unsetenv("TRIAGE_AGENT_URL")
		os.Unsetenv("AGENT_CALL_TIMEOUT")
	}()

	// Load config
	cfg, err := Load()
	assert.NoError(t, err)

	// Verify agents config
	assert.Equal(t, "http://triage.internal:8005", cfg.Agents.TriageURL)
	assert.Equal(t, 10*time.Second, cfg.Agents.CallTimeout)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("SCHEDULER_ENABLED")
	os.Unsetenv("ACUITY_QUEUE_THRESHOLD")
	os.Unsetenv("FORECAST_HORIZON_DAYS")

	cfg, err := Load()
	assert.NoError(t, err)

	// Verify defaults
	assert.True(t, cfg.Workflow.SchedulerEnabled)
	assert.Equal(t, 3, cfg.Workflow.AcuityQueueThreshold)
	assert.Equal(t, 7, cfg.Workflow.ForecastHorizonDays)
	assert.Equal(t, 5*time.Minute, cfg.Workflow.HealthCheckInterval)
	assert.Equal(t, 6*time.Hour, cfg.Workflow.DischargeCheckInterval)
}

func TestLoad_SchedulerDisabled(t *testing.T) {
	os.Setenv("SCHEDULER_ENABLED", "false")
	defer os.Unsetenv("SCHEDULER_ENABLED")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.False(t, cfg.Workflow.SchedulerEnabled)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5433,
		User:     "ops",
		Password: "secret",
		Database: "swasthya_ops",
		SSLMode:  "require",
	}
	assert.Equal(t, "host=db port=5433 user=ops password=secret dbname=swasthya_ops sslmode=require", cfg.DatabaseDSN())
}
