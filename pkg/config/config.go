package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Agents   AgentsConfig
	Workflow WorkflowConfig
	OTEL     OTELConfig
	Env      string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AgentsConfig holds the base URLs of the decision-service agents.
// Setting Mode to "mock" wires mock adapters instead of HTTP ones.
type AgentsConfig struct {
	Mode         string
	ForecastURL  string
	StaffingURL  string
	TriageURL    string
	DischargeURL string
	ORSchedURL   string
	CallTimeout  time.Duration
}

// WorkflowConfig holds orchestration settings
type WorkflowConfig struct {
	SchedulerEnabled       bool
	DailyRunHour           int
	HealthCheckInterval    time.Duration
	DischargeCheckInterval time.Duration
	ForecastHorizonDays    int

	// AcuityQueueThreshold is the highest (least severe) acuity level that
	// still earns an ER queue entry. Levels run 1 (Resuscitation) through
	// 5 (Non-Urgent), so the default of 3 queues Urgent and worse.
	AcuityQueueThreshold int

	MinStaffMorning    int
	MinStaffAfternoon  int
	MinStaffNight      int
	ShiftDurationHours int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "swasthya_ops"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Agents: AgentsConfig{
			Mode:         getEnv("AGENTS_MODE", "http"),
			ForecastURL:  getEnv("FORECAST_AGENT_URL", "http://localhost:8001"),
			StaffingURL:  getEnv("STAFFING_AGENT_URL", "http://localhost:8002"),
			TriageURL:    getEnv("TRIAGE_AGENT_URL", "http://localhost:8005"),
			DischargeURL: getEnv("DISCHARGE_AGENT_URL", "http://localhost:8003"),
			ORSchedURL:   getEnv("OR_SCHED_AGENT_URL", "http://localhost:8004"),
			CallTimeout:  getEnvAsDuration("AGENT_CALL_TIMEOUT", 30*time.Second),
		},
		Workflow: WorkflowConfig{
			SchedulerEnabled:       getEnvAsBool("SCHEDULER_ENABLED", true),
			DailyRunHour:           getEnvAsInt("DAILY_RUN_HOUR", 6),
			HealthCheckInterval:    getEnvAsDuration("HEALTH_CHECK_INTERVAL", 5*time.Minute),
			DischargeCheckInterval: getEnvAsDuration("DISCHARGE_CHECK_INTERVAL", 6*time.Hour),
			ForecastHorizonDays:    getEnvAsInt("FORECAST_HORIZON_DAYS", 7),
			AcuityQueueThreshold:   getEnvAsInt("ACUITY_QUEUE_THRESHOLD", 3),
			MinStaffMorning:        getEnvAsInt("MIN_STAFF_MORNING", 5),
			MinStaffAfternoon:      getEnvAsInt("MIN_STAFF_AFTERNOON", 6),
			MinStaffNight:          getEnvAsInt("MIN_STAFF_NIGHT", 4),
			ShiftDurationHours:     getEnvAsInt("SHIFT_DURATION_HOURS", 8),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "hospital-operations"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Env: getEnv("APP_ENV", "development"),
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
