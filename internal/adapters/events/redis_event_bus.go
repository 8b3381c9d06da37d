package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/swasthya/operations-backend/internal/domain/entities"
	"github.com/swasthya/operations-backend/internal/domain/providers"
	redisclient "github.com/swasthya/operations-backend/internal/infrastructure/clients/redis"
)

// RedisEventBus implements the EventBus interface using Redis Pub/Sub.
// The supervisor publishes workflow lifecycle events here; dashboards and
// downstream consumers subscribe.
type RedisEventBus struct {
	client        *redisclient.Client
	subscriptions map[string]*redis.PubSub
	subscribers   map[string]map[chan *entities.WorkflowEvent]struct{}
	mu            sync.RWMutex
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewRedisEventBus creates a new Redis-based event bus
func NewRedisEventBus(client *redisclient.Client) providers.EventBus {
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisEventBus{
		client:        client,
		subscriptions: make(map[string]*redis.PubSub),
		subscribers:   make(map[string]map[chan *entities.WorkflowEvent]struct{}),
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Publish publishes an event to all subscribers
func (b *RedisEventBus) Publish(ctx context.Context, channel string, event *entities.WorkflowEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Client().Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Subscribe subscribes to events on a channel
func (b *RedisEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.WorkflowEvent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscriptions[channel]; !exists {
		pubsub := b.client.Client().Subscribe(b.ctx, channel)
		b.subscriptions[channel] = pubsub
		go b.receiveMessages(channel, pubsub)
	}

	ch := make(chan *entities.WorkflowEvent, 16)
	if b.subscribers[channel] == nil {
		b.subscribers[channel] = make(map[chan *entities.WorkflowEvent]struct{})
	}
	b.subscribers[channel][ch] = struct{}{}

	go func() {
		<-ctx.Done()
		b.removeSubscriber(channel, ch)
	}()

	return ch, nil
}

// Unsubscribe unsubscribes from a channel
func (b *RedisEventBus) Unsubscribe(ctx context.Context, channel string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	pubsub, exists := b.subscriptions[channel]
	if !exists {
		return nil
	}

	if err := pubsub.Close(); err != nil {
		return fmt.Errorf("failed to close subscription: %w", err)
	}

	for ch := range b.subscribers[channel] {
		close(ch)
	}
	delete(b.subscribers, channel)
	delete(b.subscriptions, channel)

	return nil
}

// Close closes the event bus and all subscriptions
func (b *RedisEventBus) Close() error {
	b.cancel()

	b.mu.Lock()
	defer b.mu.Unlock()

	for channel, pubsub := range b.subscriptions {
		if err := pubsub.Close(); err != nil {
			log.Warn().Str("channel", channel).Err(err).Msg("failed to close subscription")
		}
		for ch := range b.subscribers[channel] {
			close(ch)
		}
	}
	b.subscriptions = make(map[string]*redis.PubSub)
	b.subscribers = make(map[string]map[chan *entities.WorkflowEvent]struct{})

	return nil
}

func (b *RedisEventBus) receiveMessages(channel string, pubsub *redis.PubSub) {
	for msg := range pubsub.Channel() {
		var event entities.WorkflowEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Warn().Str("channel", channel).Err(err).Msg("failed to decode event")
			continue
		}

		b.mu.RLock()
		for ch := range b.subscribers[channel] {
			select {
			case ch <- &event:
			default:
				// slow subscriber, drop rather than block the bus
			}
		}
		b.mu.RUnlock()
	}
}

func (b *RedisEventBus) removeSubscriber(channel string, ch chan *entities.WorkflowEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subs, ok := b.subscribers[channel]; ok {
		if _, ok := subs[ch]; ok {
			delete(subs, ch)
			close(ch)
		}
	}
}
