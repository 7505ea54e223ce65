// Package pricing composes a base ticket price with optional add-ons.
// Add-ons are applied as a fold over an ordered list: each one adds a
// fixed surcharge and appends its name to the item description.
package pricing

import (
	"strings"

	"github.com/iliyamo/cinema-box-office/internal/apperror"
)

// AddOn is a snack or extra that can be attached to a ticket.
type AddOn string

const (
	Popcorn AddOn = "POPCORN"
	Soda    AddOn = "SODA"
)

type addOnInfo struct {
	name      string
	surcharge float64
}

var catalog = map[AddOn]addOnInfo{
	Popcorn: {name: "Popcorn", surcharge: 8},
	Soda:    {name: "Soda", surcharge: 4},
}

// BaseDescription is used when no movie title is supplied.
const BaseDescription = "Ticket"

// ParseAddOn accepts an add-on name in any case.
func ParseAddOn(raw string) (AddOn, error) {
	a := AddOn(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := catalog[a]; !ok {
		return "", apperror.New(apperror.InvalidInput, "unknown add-on %q", raw)
	}
	return a, nil
}

// ParseAddOns parses a list of add-on names, keeping their order.
func ParseAddOns(raw []string) ([]AddOn, error) {
	out := make([]AddOn, 0, len(raw))
	for _, r := range raw {
		a, err := ParseAddOn(r)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Name is the display name of the add-on.
func (a AddOn) Name() string { return catalog[a].name }

// Surcharge is the amount added to the ticket price.
func (a AddOn) Surcharge() float64 { return catalog[a].surcharge }

// Quote is the priced item for one seat.
type Quote struct {
	Unit        float64 // base price plus surcharges
	Description string  // e.g. "Ticket: Inception, Popcorn, Soda"
}

// Compute applies addOns to base in the order given.  The total is the
// same for any ordering; the description lists add-ons in application
// order.  A negative base price is rejected.
func Compute(base float64, description string, addOns []AddOn) (Quote, error) {
	if base < 0 {
		return Quote{}, apperror.New(apperror.InvalidInput, "base price must not be negative")
	}
	if description == "" {
		description = BaseDescription
	}
	q := Quote{Unit: base, Description: description}
	for _, a := range addOns {
		info, ok := catalog[a]
		if !ok {
			return Quote{}, apperror.New(apperror.InvalidInput, "unknown add-on %q", string(a))
		}
		q.Unit += info.surcharge
		q.Description += ", " + info.name
	}
	return q, nil
}

// ForMovie prices a ticket for the given title.
func ForMovie(title string, base float64, addOns []AddOn) (Quote, error) {
	return Compute(base, BaseDescription+": "+title, addOns)
}
