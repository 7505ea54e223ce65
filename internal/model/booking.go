package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Booking records a committed association between a customer, a movie,
// a set of seats and the price that was charged.  The movie title is
// stored as a snapshot so that removing the movie from the catalog does
// not invalidate the record.
//
// Fields:
//  ID          – generated UUID of the booking.
//  Username    – customer who booked.
//  MovieID     – catalog id of the movie at booking time.
//  MovieTitle  – title snapshot.
//  Seats       – seat identifiers in request order.
//  Item        – priced item description, e.g. "Ticket: Inception, Popcorn".
//  UnitPrice   – price of one seat including add-ons.
//  Total       – UnitPrice multiplied by the number of seats.
//  Payment     – name of the payment method used.
//  ConfirmedAt – commit timestamp.
type Booking struct {
	ID          string    // uuid
	Username    string    // customer
	MovieID     string    // movie id
	MovieTitle  string    // title snapshot
	Seats       []int     // booked seats
	Item        string    // priced item description
	UnitPrice   float64   // per seat
	Total       float64   // charged amount
	Payment     string    // payment method name
	ConfirmedAt time.Time // commit time (UTC)
}

// Description renders the history entry stored on the customer, e.g.
// "2x [Ticket: Inception, Popcorn] seats S1,S2 total 40".
func (b Booking) Description() string {
	return fmt.Sprintf("%dx [%s] seats %s total %s",
		len(b.Seats), b.Item, strings.Join(SeatLabels(b.Seats), ","), FormatAmount(b.Total))
}

// FormatAmount prints an amount without trailing zeros.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
