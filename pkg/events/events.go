// Package events is the subscription interface that connects the parts of
// the service. Components receive a Bus from whoever constructs them and
// subscribe to the topics they care about; nothing registers itself globally.
package events

import (
	"context"
	"sync"

	"github.com/apex/log"
)

const (
	// TopicCycleRequested asks for a token to advance to its next variant.
	// Payload: CycleRequest.
	TopicCycleRequested = "cycle.requested"

	// TopicTokenUpdated reports a token whose texture or size changed.
	// Payload: *aemodel.Token.
	TopicTokenUpdated = "token.updated"

	// TopicVariantsSaved reports an actor whose variant list was replaced.
	// Payload: VariantsSaved.
	TopicVariantsSaved = "variants.saved"

	// TopicReady is published once when the service has finished starting.
	TopicReady = "app.ready"
)

// CycleRequest identifies the token to cycle and where the request came from
// (shortcut, context-menu, sheet-button, api, ws).
type CycleRequest struct {
	TokenID int    `json:"token_id"`
	Source  string `json:"source"`
}

type VariantsSaved struct {
	ActorID int `json:"actor_id"`
	Count   int `json:"count"`
}

type Event struct {
	Topic   string
	Payload any
}

type Handler func(ctx context.Context, e Event) error

type Bus interface {
	Subscribe(topic string, h Handler) (unsubscribe func())
	Publish(ctx context.Context, e Event)
}

// LocalBus delivers events in-process. Publish calls each subscriber of the
// topic in subscription order on the caller's goroutine; handler errors are
// logged and do not stop delivery to the remaining subscribers.
type LocalBus struct {
	mu       sync.RWMutex
	handlers map[string][]subscription
	nextID   int
	log      *log.Entry
}

type subscription struct {
	id int
	h  Handler
}

func NewLocalBus(logger *log.Entry) *LocalBus {
	if logger == nil {
		logger = log.WithField("ctx", "events")
	}

	return &LocalBus{
		handlers: make(map[string][]subscription),
		log:      logger,
	}
}

func (b *LocalBus) Subscribe(topic string, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[topic] = append(b.handlers[topic], subscription{id: id, h: h})

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(topic, id) })
	}
}

func (b *LocalBus) unsubscribe(topic string, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[topic]
	for i, sub := range subs {
		if sub.id == id {
			b.handlers[topic] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}

	if len(b.handlers[topic]) == 0 {
		delete(b.handlers, topic)
	}
}

func (b *LocalBus) Publish(ctx context.Context, e Event) {
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[e.Topic]))
	copy(subs, b.handlers[e.Topic])
	b.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.h(ctx, e); err != nil {
			b.log.WithError(err).WithField("topic", e.Topic).Warn("event handler failed")
		}
	}
}
