// Package notify fans out booking confirmations to in-process subscribers.
package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Subscriber is notified once for every successful booking.
type Subscriber interface {
	OnBookingSuccess(ctx context.Context, username, movieTitle string) error
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(ctx context.Context, username, movieTitle string) error

func (f SubscriberFunc) OnBookingSuccess(ctx context.Context, username, movieTitle string) error {
	return f(ctx, username, movieTitle)
}

type registration struct {
	name string
	sub  Subscriber
}

// Bus delivers events synchronously, in registration order.  Registering
// the same subscriber twice is allowed and results in two deliveries per
// event.  A subscriber that fails or panics is logged and skipped; it
// never prevents delivery to the subscribers after it.
type Bus struct {
	log  logrus.FieldLogger
	mu   sync.RWMutex
	subs []registration
}

func NewBus(log logrus.FieldLogger) *Bus {
	return &Bus{log: log}
}

// Subscribe registers sub under name.  Names are used for logging only.
func (b *Bus) Subscribe(name string, sub Subscriber) {
	b.mu.Lock()
	b.subs = append(b.subs, registration{name: name, sub: sub})
	b.mu.Unlock()
}

// Len returns the number of registrations.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Publish delivers the event to every subscriber and returns how many
// deliveries succeeded.
func (b *Bus) Publish(ctx context.Context, username, movieTitle string) int {
	b.mu.RLock()
	subs := make([]registration, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	delivered := 0
	for _, r := range subs {
		if err := deliver(ctx, r.sub, username, movieTitle); err != nil {
			b.log.WithFields(logrus.Fields{
				"subscriber": r.name,
				"username":   username,
				"movie":      movieTitle,
			}).WithError(err).Warn("notify: subscriber failed")
			continue
		}
		delivered++
	}
	return delivered
}

func deliver(ctx context.Context, sub Subscriber, username, movieTitle string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return sub.OnBookingSuccess(ctx, username, movieTitle)
}
