// Package apperror defines the error kinds reported by the booking core.
// Every rejection carries a Kind and a human readable reason so that the
// HTTP layer can map it to a status code without inspecting strings.
package apperror

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a failure reported to the immediate caller.
type Kind string

const (
	InvalidRequest  Kind = "INVALID_REQUEST"  // malformed seat set, inactive movie
	SeatUnavailable Kind = "SEAT_UNAVAILABLE" // one or more seats already booked
	PaymentDeclined Kind = "PAYMENT_DECLINED" // authorizer returned false
	InvalidInput    Kind = "INVALID_INPUT"    // rating out of range, bad price/capacity
	NotFound        Kind = "NOT_FOUND"        // unknown movie, hall or user
	Conflict        Kind = "CONFLICT"         // username already registered
)

// Error is the value returned for every rejection.  Seats is only set for
// SeatUnavailable and lists the conflicting seat identifiers.
type Error struct {
	Kind   Kind
	Reason string
	Seats  []int
}

func (e *Error) Error() string {
	if len(e.Seats) == 0 {
		return fmt.Sprintf("%s: %s", strings.ToLower(string(e.Kind)), e.Reason)
	}
	parts := make([]string, len(e.Seats))
	for i, s := range e.Seats {
		parts[i] = strconv.Itoa(s)
	}
	return fmt.Sprintf("%s: %s [%s]", strings.ToLower(string(e.Kind)), e.Reason, strings.Join(parts, ","))
}

// Is lets errors.Is match on kind alone, so callers can compare against
// the sentinel values below.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Reason == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidRequest  = &Error{Kind: InvalidRequest}
	ErrSeatUnavailable = &Error{Kind: SeatUnavailable}
	ErrPaymentDeclined = &Error{Kind: PaymentDeclined}
	ErrInvalidInput    = &Error{Kind: InvalidInput}
	ErrNotFound        = &Error{Kind: NotFound}
	ErrConflict        = &Error{Kind: Conflict}
)

// New builds an Error with a formatted reason.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// Unavailable reports the seats that are already taken.
func Unavailable(seats []int) *Error {
	cp := make([]int, len(seats))
	copy(cp, seats)
	return &Error{Kind: SeatUnavailable, Reason: "seats already booked", Seats: cp}
}

// KindOf returns the kind of err, or "" when err does not carry one.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
