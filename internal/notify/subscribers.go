package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-box-office/internal/queue"
)

// EmailNotifier stands in for a mail gateway: it logs the message that
// would be sent to the customer.
type EmailNotifier struct {
	Log logrus.FieldLogger
}

func (n EmailNotifier) OnBookingSuccess(_ context.Context, username, movieTitle string) error {
	n.Log.WithFields(logrus.Fields{"to": username, "ticket": movieTitle}).Info("email sent")
	return nil
}

// RevenueLogger records every sale for the admin and keeps a per-title
// sales counter.
type RevenueLogger struct {
	Log logrus.FieldLogger

	mu    sync.Mutex
	sales map[string]int
}

func NewRevenueLogger(log logrus.FieldLogger) *RevenueLogger {
	return &RevenueLogger{Log: log, sales: make(map[string]int)}
}

func (r *RevenueLogger) OnBookingSuccess(_ context.Context, _, movieTitle string) error {
	r.mu.Lock()
	r.sales[movieTitle]++
	n := r.sales[movieTitle]
	r.mu.Unlock()
	r.Log.WithFields(logrus.Fields{"movie": movieTitle, "sales": n}).Info("new sale recorded")
	return nil
}

// Sales returns the number of bookings recorded for title.
func (r *RevenueLogger) Sales(title string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sales[title]
}

// Publisher is the part of the queue publisher used by BrokerForwarder.
type Publisher interface {
	PublishBookingConfirmed(ctx context.Context, event queue.BookingConfirmedEvent) error
}

// BrokerForwarder publishes every confirmation to the message broker so
// out-of-process consumers can pick it up.
type BrokerForwarder struct {
	Pub     Publisher
	Timeout time.Duration
	Now     func() time.Time
}

func (f BrokerForwarder) OnBookingSuccess(ctx context.Context, username, movieTitle string) error {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return f.Pub.PublishBookingConfirmed(ctx, queue.BookingConfirmedEvent{
		Username:    username,
		MovieTitle:  movieTitle,
		ConfirmedAt: now().UTC().Format(time.RFC3339),
	})
}
