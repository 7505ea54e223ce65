// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking is committed.  It
// carries the same two facts the in-process subscribers receive plus the
// confirmation time.
type BookingConfirmedEvent struct {
	Username    string `json:"username"`
	MovieTitle  string `json:"movie_title"`
	ConfirmedAt string `json:"confirmed_at"`
}
