package services_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swasthya/operations-backend/internal/application/services"
	"github.com/swasthya/operations-backend/pkg/config"
)

func TestScheduler_RegisterFiresOnInterval(t *testing.T) {
	scheduler := services.NewSchedulerService()
	defer scheduler.StopAll()

	var count int64
	err := scheduler.Register("tick", 10*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt64(&count, 1)
		return nil
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&count) >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestScheduler_JobErrorKeepsJobRegistered(t *testing.T) {
	scheduler := services.NewSchedulerService()
	defer scheduler.StopAll()

	var count int64
	err := scheduler.Register("flaky", 10*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt64(&count, 1)
		return errors.New("transient")
	})
	require.NoError(t, err)

	// The job keeps ticking after returning errors
	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&count) >= 3
	}, time.Second, 5*time.Millisecond)

	status, ok := scheduler.Status("flaky")
	assert.True(t, ok)
	assert.Equal(t, services.JobStatusRunning, status)
}

func TestScheduler_JobPanicIsAbsorbed(t *testing.T) {
	scheduler := services.NewSchedulerService()
	defer scheduler.StopAll()

	var count int64
	err := scheduler.Register("panicky", 10*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt64(&count, 1)
		panic("boom")
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&count) >= 2
	}, time.Second, 5*time.Millisecond)

	_, ok := scheduler.Status("panicky")
	assert.True(t, ok)
}

func TestScheduler_DuplicateRegistrationFails(t *testing.T) {
	scheduler := services.NewSchedulerService()
	defer scheduler.StopAll()

	noop := func(ctx context.Context) error { return nil }
	require.NoError(t, scheduler.Register("once", time.Hour, noop))
	assert.Error(t, scheduler.Register("once", time.Hour, noop))
}

func TestScheduler_RegisterDailyRejectsInvalidHour(t *testing.T) {
	scheduler := services.NewSchedulerService()
	defer scheduler.StopAll()

	noop := func(ctx context.Context) error { return nil }
	assert.Error(t, scheduler.RegisterDaily("bad", 24, noop))
	assert.Error(t, scheduler.RegisterDaily("bad", -1, noop))
}

func TestScheduler_StopAllHaltsAndClears(t *testing.T) {
	scheduler := services.NewSchedulerService()

	var count int64
	require.NoError(t, scheduler.Register("tick", 10*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt64(&count, 1)
		return nil
	}))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&count) >= 1
	}, time.Second, 5*time.Millisecond)

	scheduler.StopAll()

	_, ok := scheduler.Status("tick")
	assert.False(t, ok)
	assert.Empty(t, scheduler.Jobs())

	// No further ticks after StopAll returns
	after := atomic.LoadInt64(&count)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt64(&count))
}

func TestScheduler_StartRegistersStandardJobs(t *testing.T) {
	scheduler := services.NewSchedulerService()
	defer scheduler.StopAll()

	supervisor, _ := newSupervisor()
	cfg := config.WorkflowConfig{
		SchedulerEnabled:       true,
		DailyRunHour:           6,
		HealthCheckInterval:    time.Hour,
		DischargeCheckInterval: 6 * time.Hour,
	}

	require.NoError(t, scheduler.Start(cfg, supervisor))

	assert.ElementsMatch(t, []string{
		services.JobDailyWorkflow,
		services.JobHealthCheck,
		services.JobDischargeCheck,
	}, scheduler.Jobs())
}

func TestScheduler_StartDisabledRegistersNothing(t *testing.T) {
	scheduler := services.NewSchedulerService()

	supervisor, _ := newSupervisor()
	cfg := config.WorkflowConfig{SchedulerEnabled: false}

	require.NoError(t, scheduler.Start(cfg, supervisor))
	assert.Empty(t, scheduler.Jobs())
}
