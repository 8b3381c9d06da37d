package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/swasthya/operations-backend/pkg/config"
)

// Job names registered by Start.
const (
	JobDailyWorkflow  = "daily_workflow"
	JobHealthCheck    = "agent_health_check"
	JobDischargeCheck = "discharge_check"
)

// JobStatusRunning is the status reported for every registered job.
const JobStatusRunning = "running"

// JobFunc is one scheduled unit of work. Anything it returns or panics
// with is absorbed at the job boundary.
type JobFunc func(ctx context.Context) error

// SchedulerService fires named jobs on fixed intervals. Jobs are
// independently stoppable, re-registered fresh on every boot, and a
// failure inside a job never unregisters it: the next tick still fires.
type SchedulerService struct {
	mu   sync.Mutex
	jobs map[string]*scheduledJob
}

type scheduledJob struct {
	name string
	stop chan struct{}
	done chan struct{}
}

// NewSchedulerService creates an empty scheduler.
func NewSchedulerService() *SchedulerService {
	return &SchedulerService{jobs: make(map[string]*scheduledJob)}
}

// Start registers the standard job table against the supervisor. With the
// scheduler disabled by configuration, nothing is registered at all.
func (s *SchedulerService) Start(cfg config.WorkflowConfig, supervisor *SupervisorService) error {
	if !cfg.SchedulerEnabled {
		log.Warn().Msg("scheduler disabled by configuration, no jobs registered")
		return nil
	}

	if err := s.RegisterDaily(JobDailyWorkflow, cfg.DailyRunHour, func(ctx context.Context) error {
		supervisor.RunDailyWorkflow(ctx)
		return nil
	}); err != nil {
		return err
	}

	if err := s.Register(JobHealthCheck, cfg.HealthCheckInterval, func(ctx context.Context) error {
		health := supervisor.CheckAgentHealth(ctx)
		for agent, healthy := range health {
			if !healthy {
				log.Warn().Str("agent", agent).Msg("decision service unhealthy")
			}
		}
		return nil
	}); err != nil {
		return err
	}

	if err := s.Register(JobDischargeCheck, cfg.DischargeCheckInterval, func(ctx context.Context) error {
		supervisor.RunDischargeCheck(ctx)
		return nil
	}); err != nil {
		return err
	}

	log.Info().
		Int("daily_run_hour", cfg.DailyRunHour).
		Dur("health_check_interval", cfg.HealthCheckInterval).
		Dur("discharge_check_interval", cfg.DischargeCheckInterval).
		Msg("scheduler started")
	return nil
}

// Register fires fn every interval until the job is stopped.
func (s *SchedulerService) Register(name string, interval time.Duration, fn JobFunc) error {
	job, err := s.addJob(name)
	if err != nil {
		return err
	}

	go func() {
		defer close(job.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-job.stop:
				return
			case <-ticker.C:
				s.runJob(name, fn)
			}
		}
	}()

	return nil
}

// RegisterDaily fires fn once per day at the given hour (local time).
func (s *SchedulerService) RegisterDaily(name string, hour int, fn JobFunc) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("invalid hour %d for job %s", hour, name)
	}

	job, err := s.addJob(name)
	if err != nil {
		return err
	}

	go func() {
		defer close(job.done)
		for {
			timer := time.NewTimer(untilNextHour(time.Now(), hour))
			select {
			case <-job.stop:
				timer.Stop()
				return
			case <-timer.C:
				s.runJob(name, fn)
			}
		}
	}()

	return nil
}

// runJob is the job boundary: any error or panic from fn is logged here
// and goes no further, leaving the job registered for its next tick.
func (s *SchedulerService) runJob(name string, fn JobFunc) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("job", name).Interface("panic", r).Msg("job panicked")
		}
	}()

	if err := fn(context.Background()); err != nil {
		log.Error().Str("job", name).Err(err).Msg("job failed")
	}
}

// Status reports "running" for a registered job and false otherwise.
func (s *SchedulerService) Status(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[name]; ok {
		return JobStatusRunning, true
	}
	return "", false
}

// Jobs returns the names of all registered jobs.
func (s *SchedulerService) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	return names
}

// StopAll halts every registered job and clears the registry. It returns
// once every job goroutine has exited.
func (s *SchedulerService) StopAll() {
	s.mu.Lock()
	jobs := s.jobs
	s.jobs = make(map[string]*scheduledJob)
	s.mu.Unlock()

	for _, job := range jobs {
		close(job.stop)
	}
	for _, job := range jobs {
		<-job.done
	}

	if len(jobs) > 0 {
		log.Info().Int("jobs", len(jobs)).Msg("scheduler stopped")
	}
}

func (s *SchedulerService) addJob(name string) (*scheduledJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return nil, fmt.Errorf("job %s already registered", name)
	}

	job := &scheduledJob{
		name: name,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	s.jobs[name] = job
	return job, nil
}

// untilNextHour returns the wait until the next occurrence of hour:00.
func untilNextHour(now time.Time, hour int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
