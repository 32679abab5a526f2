// internal/events/bus.go
// In-process event fan-out for write-triggered side effects.
// Subscribers run asynchronously after the durable write commits;
// their failures are logged and never reach the triggering caller.

package events

import (
	"context"
	"log"
	"sync"
)

// MatchCreated fires after a match row is committed.
type MatchCreated struct {
	MatchID string
	UserA   string
	UserB   string
}

// MessageCreated fires after a message row is committed.
type MessageCreated struct {
	MatchID   string
	MessageID string
	From      string
	Recipient string
	Preview   string
}

// MatchCreatedHandler consumes match-created events.
type MatchCreatedHandler func(ctx context.Context, ev MatchCreated) error

// MessageCreatedHandler consumes message-created events.
type MessageCreatedHandler func(ctx context.Context, ev MessageCreated) error

// Bus dispatches events to registered handlers. Delivery is at-least-once
// from the subscriber's point of view; handlers must tolerate repeats.
type Bus struct {
	mu             sync.RWMutex
	matchCreated   []MatchCreatedHandler
	messageCreated []MessageCreatedHandler
	wg             sync.WaitGroup
}

func NewBus() *Bus {
	return &Bus{}
}

// OnMatchCreated registers a handler for match-created events.
func (b *Bus) OnMatchCreated(h MatchCreatedHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.matchCreated = append(b.matchCreated, h)
}

// OnMessageCreated registers a handler for message-created events.
func (b *Bus) OnMessageCreated(h MessageCreatedHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messageCreated = append(b.messageCreated, h)
}

// PublishMatchCreated dispatches the event to all handlers asynchronously.
func (b *Bus) PublishMatchCreated(ctx context.Context, ev MatchCreated) {
	b.mu.RLock()
	handlers := make([]MatchCreatedHandler, len(b.matchCreated))
	copy(handlers, b.matchCreated)
	b.mu.RUnlock()

	for _, h := range handlers {
		handler := h
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			defer recoverHandler("match-created")
			if err := handler(context.WithoutCancel(ctx), ev); err != nil {
				log.Printf("match-created handler failed for match %s: %v", ev.MatchID, err)
			}
		}()
	}
}

// PublishMessageCreated dispatches the event to all handlers asynchronously.
func (b *Bus) PublishMessageCreated(ctx context.Context, ev MessageCreated) {
	b.mu.RLock()
	handlers := make([]MessageCreatedHandler, len(b.messageCreated))
	copy(handlers, b.messageCreated)
	b.mu.RUnlock()

	for _, h := range handlers {
		handler := h
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			defer recoverHandler("message-created")
			if err := handler(context.WithoutCancel(ctx), ev); err != nil {
				log.Printf("message-created handler failed for match %s: %v", ev.MatchID, err)
			}
		}()
	}
}

// Wait blocks until all in-flight handlers finish. Used on shutdown and in tests.
func (b *Bus) Wait() {
	b.wg.Wait()
}

func recoverHandler(topic string) {
	if r := recover(); r != nil {
		log.Printf("%s handler panicked: %v", topic, r)
	}
}
