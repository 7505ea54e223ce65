package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iliyamo/cinema-box-office/internal/apperror"
)

// Hall represents a screening hall of the venue.  Seats are not stored
// as separate records: a seat identifier is the ordinal 1..Capacity
// scoped to the hall.  Many movies may share one hall.
//
// Fields:
//  Name     – display name, unique within the catalog.
//  Capacity – number of seats, always greater than zero.
type Hall struct {
	Name     string // hall name shown to customers
	Capacity int    // seats are numbered 1..Capacity
}

// NewHall validates the inputs and returns a hall.
func NewHall(name string, capacity int) (*Hall, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.New(apperror.InvalidInput, "hall name is required")
	}
	if capacity <= 0 {
		return nil, apperror.New(apperror.InvalidInput, "capacity must be greater than zero")
	}
	return &Hall{Name: name, Capacity: capacity}, nil
}

// ParseCapacity converts admin input into a capacity.  Non-numeric or
// non-positive values are rejected.
func ParseCapacity(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, apperror.New(apperror.InvalidInput, "capacity %q is not a number", raw)
	}
	if n <= 0 {
		return 0, apperror.New(apperror.InvalidInput, "capacity must be greater than zero")
	}
	return n, nil
}

// HasSeat reports whether seat is a valid identifier for this hall.
func (h *Hall) HasSeat(seat int) bool { return seat >= 1 && seat <= h.Capacity }

func (h *Hall) String() string { return fmt.Sprintf("%s (%d seats)", h.Name, h.Capacity) }

// SeatLabel renders a seat identifier the way it is printed on receipts.
func SeatLabel(seat int) string { return "S" + strconv.Itoa(seat) }

// SeatLabels renders a list of seat identifiers.
func SeatLabels(seats []int) []string {
	out := make([]string, len(seats))
	for i, s := range seats {
		out[i] = SeatLabel(s)
	}
	return out
}
