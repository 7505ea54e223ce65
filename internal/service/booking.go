// Package service implements the operations exposed to front ends: the
// booking engine, catalog browsing and administration, reviews and
// accounts.  Every service is constructed with its dependencies; there is
// no package level state.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-box-office/internal/apperror"
	"github.com/iliyamo/cinema-box-office/internal/model"
	"github.com/iliyamo/cinema-box-office/internal/notify"
	"github.com/iliyamo/cinema-box-office/internal/payment"
	"github.com/iliyamo/cinema-box-office/internal/pricing"
	"github.com/iliyamo/cinema-box-office/internal/repository"
)

// BookingRequest is one customer's attempt to buy seats for a movie.
type BookingRequest struct {
	MovieID  string
	Seats    []int
	AddOns   []pricing.AddOn
	Payment  payment.Method
	Username string
}

// BookingResult is returned for every request.  On success Booking and
// Receipt are set; otherwise Err carries the rejection kind and reason.
type BookingResult struct {
	Success bool
	Total   float64
	Receipt string
	Booking *model.Booking
	Err     *apperror.Error
}

// BookingEngine turns booking requests into committed bookings.
type BookingEngine struct {
	Movies *repository.MovieRepo
	Users  *repository.UserRepo
	Bus    *notify.Bus
	Log    logrus.FieldLogger
	Now    func() time.Time
}

func NewBookingEngine(movies *repository.MovieRepo, users *repository.UserRepo, bus *notify.Bus, log logrus.FieldLogger) *BookingEngine {
	if movies == nil || users == nil || bus == nil {
		panic("nil dependency passed to NewBookingEngine")
	}
	return &BookingEngine{Movies: movies, Users: users, Bus: bus, Log: log, Now: time.Now}
}

// Reserve validates the request, checks availability, prices the seats,
// authorizes payment and commits.  Availability check and commit run
// under the movie's lock, so two concurrent requests can never both take
// the same seat.  Subscribers are notified after the lock is released and
// before Reserve returns.
func (e *BookingEngine) Reserve(ctx context.Context, req BookingRequest) BookingResult {
	log := e.Log.WithFields(logrus.Fields{"movie_id": req.MovieID, "username": req.Username, "seats": req.Seats})

	movie, err := e.Movies.GetByID(req.MovieID)
	if err != nil {
		return e.reject(log, err)
	}
	user, err := e.Users.GetByUsername(req.Username)
	if err != nil {
		return e.reject(log, err)
	}
	if !user.IsCustomer() {
		return e.reject(log, apperror.New(apperror.InvalidRequest, "only customers can book tickets"))
	}
	auth, err := payment.Resolve(req.Payment)
	if err != nil {
		return e.reject(log, err)
	}

	booking := &model.Booking{
		ID:         uuid.NewString(),
		Username:   user.Username,
		MovieID:    movie.ID,
		MovieTitle: movie.Title,
		Seats:      append([]int(nil), req.Seats...),
		Payment:    auth.String(),
	}
	err = movie.Reserve(req.Seats, func() error {
		quote, err := pricing.ForMovie(movie.Title, movie.BasePrice, req.AddOns)
		if err != nil {
			return err
		}
		total := quote.Unit * float64(len(req.Seats))
		if !auth.Authorize(total) {
			return apperror.New(apperror.PaymentDeclined, "%s declined %s", auth, model.FormatAmount(total))
		}
		booking.Item = quote.Description
		booking.UnitPrice = quote.Unit
		booking.Total = total
		booking.ConfirmedAt = e.Now().UTC()
		return user.AppendBooking(booking.Description())
	})
	if err != nil {
		return e.reject(log, err)
	}

	// The seats are committed; a caller that gave up must not cancel the
	// notifications.
	delivered := e.Bus.Publish(context.WithoutCancel(ctx), user.Username, movie.Title)
	log.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"total":      booking.Total,
		"notified":   delivered,
	}).Info("booking confirmed")

	return BookingResult{
		Success: true,
		Total:   booking.Total,
		Receipt: Receipt(booking),
		Booking: booking,
	}
}

func (e *BookingEngine) reject(log logrus.FieldLogger, err error) BookingResult {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.New(apperror.InvalidRequest, "%v", err)
	}
	log.WithField("kind", appErr.Kind).Info("booking rejected: " + appErr.Reason)
	return BookingResult{Err: appErr}
}

// Receipt renders the text shown to the customer after a booking.
func Receipt(b *model.Booking) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tickets: %d\n", len(b.Seats))
	fmt.Fprintf(&sb, "Item: %s\n", b.Item)
	fmt.Fprintf(&sb, "Seats: %s\n", strings.Join(model.SeatLabels(b.Seats), ","))
	fmt.Fprintf(&sb, "Payment: %s\n", b.Payment)
	fmt.Fprintf(&sb, "TOTAL: %s", model.FormatAmount(b.Total))
	return sb.String()
}
