package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/swasthya/operations-backend/internal/adapters/cache"
	"github.com/swasthya/operations-backend/internal/adapters/database"
	"github.com/swasthya/operations-backend/internal/adapters/events"
	"github.com/swasthya/operations-backend/internal/adapters/providers/decision"
	"github.com/swasthya/operations-backend/internal/application/services"
	"github.com/swasthya/operations-backend/internal/domain/providers"
	"github.com/swasthya/operations-backend/internal/infrastructure/clients/postgres"
	"github.com/swasthya/operations-backend/internal/infrastructure/clients/redis"
	"github.com/swasthya/operations-backend/internal/infrastructure/observability"
	"github.com/swasthya/operations-backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// OpenTelemetry is optional; without it the metric calls are no-ops
	// against the default meter provider.
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Warn().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Postgres is the authoritative record; without it there is nothing
	// to supervise, so a failed boot here is fatal.
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Redis carries the snapshot mirror and the event bus. Both are
	// best-effort, so the supervisor runs without them.
	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, running without cache and event bus")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("Redis client initialized")
	}

	forecastProvider, staffingProvider, triageProvider, dischargeProvider, orProvider := buildDecisionProviders(cfg)

	supervisor := services.NewSupervisorService(services.SupervisorParams{
		Forecast:  forecastProvider,
		Staffing:  staffingProvider,
		Triage:    triageProvider,
		Discharge: dischargeProvider,
		ORSched:   orProvider,

		ForecastRepo:  database.NewForecastAdapter(pgClient),
		StaffRepo:     database.NewStaffAdapter(pgClient),
		ScheduleRepo:  database.NewScheduleAdapter(pgClient),
		TriageRepo:    database.NewTriageAdapter(pgClient),
		ERQueueRepo:   database.NewERQueueAdapter(pgClient),
		InpatientRepo: database.NewInpatientAdapter(pgClient),
		DischargeRepo: database.NewDischargeAdapter(pgClient),
		ORRepo:        database.NewORScheduleAdapter(pgClient),

		Cache:   cacheProvider,
		Bus:     eventBus,
		Metrics: metrics,

		Workflow: cfg.Workflow,
	})

	scheduler := services.NewSchedulerService()
	if err := scheduler.Start(cfg.Workflow, supervisor); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}

	// Baseline health probe so operators see agent state at boot rather
	// than after the first interval.
	supervisor.CheckAgentHealth(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("supervisor shutting down")
	scheduler.StopAll()

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing event bus")
		}
	}

	log.Info().Msg("supervisor stopped")
}

// buildDecisionProviders wires either HTTP adapters against the live
// decision services or deterministic mocks, per AGENTS_MODE.
func buildDecisionProviders(cfg *config.Config) (
	providers.ForecastProvider,
	providers.StaffSchedulingProvider,
	providers.TriageProvider,
	providers.DischargePlanningProvider,
	providers.ORSchedulingProvider,
) {
	if cfg.Agents.Mode == "mock" {
		log.Warn().Msg("AGENTS_MODE=mock, using deterministic decision providers")
		return decision.NewMockForecastAdapter(),
			decision.NewMockStaffingAdapter(),
			decision.NewMockTriageAdapter(),
			decision.NewMockDischargeAdapter(),
			decision.NewMockORScheduleAdapter()
	}

	timeout := cfg.Agents.CallTimeout
	return decision.NewForecastAdapter(cfg.Agents.ForecastURL, timeout),
		decision.NewStaffingAdapter(cfg.Agents.StaffingURL, timeout),
		decision.NewTriageAdapter(cfg.Agents.TriageURL, timeout),
		decision.NewDischargeAdapter(cfg.Agents.DischargeURL, timeout),
		decision.NewORScheduleAdapter(cfg.Agents.ORSchedURL, timeout)
}
