package services

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/swasthya/operations-backend/internal/domain/entities"
	"github.com/swasthya/operations-backend/internal/domain/providers"
	"github.com/swasthya/operations-backend/internal/domain/repositories"
	"github.com/swasthya/operations-backend/internal/infrastructure/observability"
	"github.com/swasthya/operations-backend/pkg/config"
	apperrors "github.com/swasthya/operations-backend/pkg/errors"
)

// SupervisorParams collects the supervisor's collaborators. Cache, bus and
// metrics are optional; the supervisor degrades to logging only.
type SupervisorParams struct {
	Forecast  providers.ForecastProvider
	Staffing  providers.StaffSchedulingProvider
	Triage    providers.TriageProvider
	Discharge providers.DischargePlanningProvider
	ORSched   providers.ORSchedulingProvider

	ForecastRepo  repositories.ForecastRepository
	StaffRepo     repositories.StaffRepository
	ScheduleRepo  repositories.ScheduleRepository
	TriageRepo    repositories.TriageRepository
	ERQueueRepo   repositories.ERQueueRepository
	InpatientRepo repositories.InpatientRepository
	DischargeRepo repositories.DischargeRepository
	ORRepo        repositories.ORScheduleRepository

	Cache   providers.CacheProvider
	Bus     providers.EventBus
	Metrics *observability.Metrics

	Workflow config.WorkflowConfig
}

// SupervisorService sequences the hospital's operational workflows. It
// decides per stage whether a decision-service failure is tolerated or
// fatal, persists results best-effort, and keeps a snapshot of the latest
// pipeline outputs for introspection.
//
// Decision policy, in one place:
//   - forecast, staff-scheduling and discharge-planning calls inside the
//     daily pipeline: tolerated (logged, stage yields nothing)
//   - triage and OR-scheduling calls: fatal, the error propagates
//   - every persistence write: best-effort (logged and counted, never
//     propagated)
type SupervisorService struct {
	p      SupervisorParams
	tracer trace.Tracer

	// snapMu guards the snapshot; an arrival-triggered HandleArrival can
	// interleave with an in-progress daily run.
	snapMu   sync.RWMutex
	snapshot entities.WorkflowSnapshot

	// dailyMu serializes overlapping daily-pipeline triggers so they
	// queue rather than race.
	dailyMu sync.Mutex
}

// NewSupervisorService creates a new supervisor.
func NewSupervisorService(p SupervisorParams) *SupervisorService {
	return &SupervisorService{
		p:      p,
		tracer: otel.Tracer("github.com/swasthya/operations-backend"),
	}
}

// RunDailyWorkflow executes the three-stage daily pipeline: forecast,
// staff scheduling, discharge planning. Stages run strictly in order.
// Scheduling runs only when the forecast stage produced a non-empty
// result; discharge planning runs unconditionally. The pipeline never
// aborts mid-run, so this method does not return an error.
func (s *SupervisorService) RunDailyWorkflow(ctx context.Context) entities.WorkflowSnapshot {
	s.dailyMu.Lock()
	defer s.dailyMu.Unlock()

	ctx, span := s.tracer.Start(ctx, "daily_workflow")
	defer span.End()

	logger := observability.LoggerFromContext(ctx)
	logger.Info().Msg("daily workflow started")
	s.countRun(ctx, "daily")

	forecast := s.runForecastStage(ctx)
	var schedule []entities.ShiftAssignment
	if !forecast.IsEmpty() {
		schedule = s.runSchedulingStage(ctx, forecast)
	} else {
		logger.Warn().Msg("skipping scheduling stage: no forecast available")
	}
	candidates := s.runDischargeStage(ctx)

	s.snapMu.Lock()
	s.snapshot = entities.WorkflowSnapshot{
		Forecast:            forecast,
		Schedule:            schedule,
		DischargeCandidates: candidates,
		LastDailyRun:        time.Now(),
	}
	snap := s.snapshot
	s.snapMu.Unlock()

	forecastPoints := 0
	if !forecast.IsEmpty() {
		forecastPoints = len(forecast.Predictions)
	}
	s.cacheSnapshot(ctx, snap)
	s.publishEvent(ctx, providers.EventChannelWorkflow, entities.EventDailyRunCompleted, map[string]string{
		"forecast_points":      strconv.Itoa(forecastPoints),
		"schedule_assignments": strconv.Itoa(len(snap.Schedule)),
		"discharge_candidates": strconv.Itoa(len(snap.DischargeCandidates)),
	})

	logger.Info().
		Int("schedule_assignments", len(schedule)).
		Int("discharge_candidates", len(candidates)).
		Msg("daily workflow completed")
	return snap
}

func (s *SupervisorService) runForecastStage(ctx context.Context) *entities.Forecast {
	ctx, span := s.tracer.Start(ctx, "forecast_stage")
	defer span.End()

	today := time.Now().Format("2006-01-02")
	start := time.Now()
	forecast, err := s.p.Forecast.Forecast(ctx, s.p.Workflow.ForecastHorizonDays, today)
	s.observeAgentCall(ctx, providers.AgentForecast, start)
	if err != nil {
		// Tolerated: the rest of the pipeline proceeds without a forecast.
		span.RecordError(err)
		span.SetStatus(codes.Error, "forecast call failed")
		observability.LoggerFromContext(ctx).Error().Err(err).Msg("forecast stage failed")
		s.countStageFailure(ctx, "forecast")
		return nil
	}

	s.persistBestEffort(ctx, "forecast_upsert", func() error {
		return s.p.ForecastRepo.Upsert(ctx, forecast)
	})
	return forecast
}

func (s *SupervisorService) runSchedulingStage(ctx context.Context, forecast *entities.Forecast) []entities.ShiftAssignment {
	ctx, span := s.tracer.Start(ctx, "scheduling_stage")
	defer span.End()

	logger := observability.LoggerFromContext(ctx)

	staff, err := s.p.StaffRepo.ListActive(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "roster load failed")
		logger.Error().Err(err).Msg("scheduling stage failed: cannot load roster")
		s.countStageFailure(ctx, "scheduling")
		return nil
	}

	req := providers.StaffSchedulingRequest{
		Forecast: forecast,
		Staff:    staff,
		Constraints: entities.StaffingConstraints{
			MinStaffPerShift: map[string]int{
				entities.ShiftMorning:   s.p.Workflow.MinStaffMorning,
				entities.ShiftAfternoon: s.p.Workflow.MinStaffAfternoon,
				entities.ShiftNight:     s.p.Workflow.MinStaffNight,
			},
			ShiftDurationHours: s.p.Workflow.ShiftDurationHours,
		},
	}

	start := time.Now()
	assignments, err := s.p.Staffing.Schedule(ctx, req)
	s.observeAgentCall(ctx, providers.AgentStaffing, start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scheduling call failed")
		logger.Error().Err(err).Msg("scheduling stage failed")
		s.countStageFailure(ctx, "scheduling")
		return nil
	}

	// Each assignment is an independent append; one failed insert does
	// not stop the rest.
	for i := range assignments {
		assignment := assignments[i]
		s.persistBestEffort(ctx, "schedule_insert", func() error {
			return s.p.ScheduleRepo.Insert(ctx, &assignment)
		})
	}
	return assignments
}

func (s *SupervisorService) runDischargeStage(ctx context.Context) []entities.DischargeCandidate {
	ctx, span := s.tracer.Start(ctx, "discharge_stage")
	defer span.End()

	logger := observability.LoggerFromContext(ctx)

	patients, err := s.p.InpatientRepo.ListOpen(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "census load failed")
		logger.Error().Err(err).Msg("discharge stage failed: cannot load census")
		s.countStageFailure(ctx, "discharge")
		return nil
	}

	start := time.Now()
	candidates, err := s.p.Discharge.PlanDischarges(ctx, patients)
	s.observeAgentCall(ctx, providers.AgentDischarge, start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "discharge planning call failed")
		logger.Error().Err(err).Msg("discharge stage failed")
		s.countStageFailure(ctx, "discharge")
		return nil
	}

	for i := range candidates {
		candidate := candidates[i]
		s.persistBestEffort(ctx, "discharge_insert", func() error {
			return s.p.DischargeRepo.Create(ctx, &candidate)
		})
	}
	return candidates
}

// RunDischargeCheck re-runs only the discharge stage. Fired every few
// hours so long-stay patients are reassessed between daily runs.
func (s *SupervisorService) RunDischargeCheck(ctx context.Context) []entities.DischargeCandidate {
	ctx, span := s.tracer.Start(ctx, "discharge_check")
	defer span.End()

	s.countRun(ctx, "discharge_check")
	candidates := s.runDischargeStage(ctx)

	s.snapMu.Lock()
	if candidates != nil {
		s.snapshot.DischargeCandidates = candidates
	}
	snap := s.snapshot
	s.snapMu.Unlock()

	s.cacheSnapshot(ctx, snap)
	return candidates
}

// HandleArrival triages one arriving patient. The triage call is fatal on
// failure: there is no safe default acuity. The decision is persisted
// best-effort, and patients at or above the configured severity threshold
// are queued for the ER. The decision is returned to the caller
// regardless of persistence outcome.
func (s *SupervisorService) HandleArrival(ctx context.Context, arrival entities.Arrival) (*entities.TriageDecision, error) {
	if arrival.PatientID == "" {
		return nil, apperrors.NewValidationError("arrival is missing patient_id")
	}

	ctx, span := s.tracer.Start(ctx, "arrival_triage",
		trace.WithAttributes(attribute.String("patient_id", arrival.PatientID)))
	defer span.End()

	s.countRun(ctx, "arrival")

	start := time.Now()
	decision, err := s.p.Triage.Triage(ctx, arrival)
	s.observeAgentCall(ctx, providers.AgentTriage, start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "triage call failed")
		observability.LoggerFromContext(ctx).Error().Str("patient_id", arrival.PatientID).Err(err).Msg("triage call failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("acuity_level", decision.AcuityLevel))

	s.persistBestEffort(ctx, "triage_insert", func() error {
		return s.p.TriageRepo.Create(ctx, decision)
	})

	if decision.MeetsQueueThreshold(s.p.Workflow.AcuityQueueThreshold) {
		entry := &entities.ERQueueEntry{
			ID:          uuid.New().String(),
			PatientID:   decision.PatientID,
			AcuityLevel: decision.AcuityLevel,
			ArrivalTime: time.Now(),
			Status:      entities.ERStatusWaiting,
		}
		s.persistBestEffort(ctx, "er_queue_insert", func() error {
			return s.p.ERQueueRepo.Enqueue(ctx, entry)
		})
		s.publishEvent(ctx, providers.EventChannelER, entities.EventPatientQueued, map[string]string{
			"patient_id":   decision.PatientID,
			"acuity_level": strconv.Itoa(decision.AcuityLevel),
		})
	}

	return decision, nil
}

// ScheduleORCases schedules the given surgical cases. Unlike the daily
// pipeline there is no later stage to absorb a failure, so a failed
// decision call propagates to the caller and nothing is persisted.
func (s *SupervisorService) ScheduleORCases(ctx context.Context, cases []entities.SurgicalCase) ([]entities.ORAssignment, error) {
	ctx, span := s.tracer.Start(ctx, "or_scheduling",
		trace.WithAttributes(attribute.Int("cases", len(cases))))
	defer span.End()

	s.countRun(ctx, "or_scheduling")

	start := time.Now()
	assignments, err := s.p.ORSched.ScheduleCases(ctx, cases)
	s.observeAgentCall(ctx, providers.AgentORSched, start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "OR scheduling call failed")
		observability.LoggerFromContext(ctx).Error().Int("cases", len(cases)).Err(err).Msg("OR scheduling call failed")
		return nil, err
	}

	for i := range assignments {
		assignment := assignments[i]
		s.persistBestEffort(ctx, "or_schedule_insert", func() error {
			return s.p.ORRepo.Insert(ctx, &assignment)
		})
	}
	return assignments, nil
}

// CheckAgentHealth probes every known decision service. It never fails:
// a failed probe degrades to false for that service. The returned map
// always carries one entry per known service.
func (s *SupervisorService) CheckAgentHealth(ctx context.Context) map[string]bool {
	ctx, span := s.tracer.Start(ctx, "agent_health_check")
	defer span.End()

	probes := map[string]providers.HealthProber{
		providers.AgentForecast:  s.p.Forecast,
		providers.AgentStaffing:  s.p.Staffing,
		providers.AgentTriage:    s.p.Triage,
		providers.AgentDischarge: s.p.Discharge,
		providers.AgentORSched:   s.p.ORSched,
	}

	health := make(map[string]bool, len(probes))
	for name, prober := range probes {
		healthy := prober != nil && prober.Healthy(ctx)
		health[name] = healthy
		if !healthy {
			if s.p.Metrics != nil {
				s.p.Metrics.UnhealthyAgentCount.Add(ctx, 1, metric.WithAttributes(attribute.String("agent", name)))
			}
			s.publishEvent(ctx, providers.EventChannelWorkflow, entities.EventAgentUnhealthy, map[string]string{"agent": name})
		}
	}
	return health
}

// Snapshot returns a copy of the latest pipeline outputs. Reset on
// restart; the database is the authoritative record.
func (s *SupervisorService) Snapshot() entities.WorkflowSnapshot {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()

	snap := s.snapshot
	snap.Schedule = append([]entities.ShiftAssignment(nil), s.snapshot.Schedule...)
	snap.DischargeCandidates = append([]entities.DischargeCandidate(nil), s.snapshot.DischargeCandidates...)
	return snap
}

// persistBestEffort runs one write against the store. Failures are
// logged, counted and published, never propagated: persistence is a side
// channel of the workflows, not a gate.
func (s *SupervisorService) persistBestEffort(ctx context.Context, op string, fn func() error) {
	err := fn()
	if err == nil {
		return
	}

	observability.LoggerFromContext(ctx).Error().Str("operation", op).Err(err).Msg("best-effort persistence failed")
	if s.p.Metrics != nil {
		s.p.Metrics.PersistenceFailureCount.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	}
	s.publishEvent(ctx, providers.EventChannelWorkflow, entities.EventPersistenceFailure, map[string]string{"operation": op})
}

func (s *SupervisorService) cacheSnapshot(ctx context.Context, snap entities.WorkflowSnapshot) {
	if s.p.Cache == nil {
		return
	}
	logger := observability.LoggerFromContext(ctx)
	data, err := json.Marshal(snap)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to encode workflow snapshot")
		return
	}
	// Snapshot mirror for status surfaces; a day's TTL outlives the next run.
	if err := s.p.Cache.Set(ctx, providers.CacheKeySnapshot, data, 86400); err != nil {
		logger.Warn().Err(err).Msg("failed to cache workflow snapshot")
	}
}

func (s *SupervisorService) publishEvent(ctx context.Context, channel, eventType string, attrs map[string]string) {
	if s.p.Bus == nil {
		return
	}
	event := &entities.WorkflowEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		Attributes: attrs,
		OccurredAt: time.Now(),
	}
	if err := s.p.Bus.Publish(ctx, channel, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Str("type", eventType).Err(err).Msg("failed to publish workflow event")
	}
}

func (s *SupervisorService) countRun(ctx context.Context, workflow string) {
	if s.p.Metrics != nil {
		s.p.Metrics.WorkflowRunCount.Add(ctx, 1, metric.WithAttributes(attribute.String("workflow", workflow)))
	}
}

func (s *SupervisorService) observeAgentCall(ctx context.Context, agent string, start time.Time) {
	if s.p.Metrics != nil {
		elapsed := float64(time.Since(start).Microseconds()) / 1000.0
		s.p.Metrics.AgentCallDuration.Record(ctx, elapsed, metric.WithAttributes(attribute.String("agent", agent)))
	}
}

func (s *SupervisorService) countStageFailure(ctx context.Context, stage string) {
	if s.p.Metrics != nil {
		s.p.Metrics.StageFailureCount.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", stage)))
	}
}
