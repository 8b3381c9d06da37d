package events_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swasthya/operations-backend/internal/adapters/events"
	"github.com/swasthya/operations-backend/internal/domain/entities"
	"github.com/swasthya/operations-backend/internal/domain/providers"
	redisclient "github.com/swasthya/operations-backend/internal/infrastructure/clients/redis"
	"github.com/swasthya/operations-backend/pkg/config"
)

func newTestBus(t *testing.T) providers.EventBus {
	t.Helper()

	server := miniredis.RunT(t)
	port, err := strconv.Atoi(server.Port())
	require.NoError(t, err)

	client, err := redisclient.NewClient(&config.RedisConfig{Host: server.Host(), Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return events.NewRedisEventBus(client)
}

func TestRedisEventBus_PublishReachesSubscriber(t *testing.T) {
	bus := newTestBus(t)
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx, providers.EventChannelWorkflow)
	require.NoError(t, err)

	published := &entities.WorkflowEvent{
		ID:         "evt-1",
		Type:       entities.EventDailyRunCompleted,
		Attributes: map[string]string{"schedule_assignments": "12"},
		OccurredAt: time.Now(),
	}

	// The subscription handshake is asynchronous; keep publishing until
	// the subscriber sees an event.
	var got *entities.WorkflowEvent
	require.Eventually(t, func() bool {
		if err := bus.Publish(ctx, providers.EventChannelWorkflow, published); err != nil {
			return false
		}
		select {
		case got = <-ch:
			return true
		default:
			return false
		}
	}, 2*time.Second, 20*time.Millisecond)

	assert.Equal(t, "evt-1", got.ID)
	assert.Equal(t, entities.EventDailyRunCompleted, got.Type)
	assert.Equal(t, "12", got.Attributes["schedule_assignments"])
}

func TestRedisEventBus_UnsubscribeClosesSubscriberChannels(t *testing.T) {
	bus := newTestBus(t)
	defer bus.Close()

	ch, err := bus.Subscribe(context.Background(), providers.EventChannelER)
	require.NoError(t, err)

	require.NoError(t, bus.Unsubscribe(context.Background(), providers.EventChannelER))

	_, open := <-ch
	assert.False(t, open)
}

func TestRedisEventBus_CloseShutsDownSubscriptions(t *testing.T) {
	bus := newTestBus(t)

	ch, err := bus.Subscribe(context.Background(), providers.EventChannelWorkflow)
	require.NoError(t, err)

	require.NoError(t, bus.Close())

	_, open := <-ch
	assert.False(t, open)
}
