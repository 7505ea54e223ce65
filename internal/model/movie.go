package model

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-box-office/internal/apperror"
)

// NoReviews is returned by ReviewSummary when a movie has no reviews.
const NoReviews = "No reviews yet."

// MovieConfig carries the admin supplied fields for a new movie.  Title
// and Hall are required; Price is the raw text entered by the admin and
// must parse as a non-negative number.
type MovieConfig struct {
	Title    string // required
	Genre    string
	Language string
	Price    string // parsed with strconv.ParseFloat
	Showtime string // free-form label such as "18:00"
	Hall     *Hall  // required
}

// Movie represents a screening offered by the venue together with its
// seat inventory and reviews.  The exported fields are fixed at creation;
// the mutable state (active flag, booked seats, reviews) is only reachable
// through methods guarded by the movie's own lock, so bookings on one
// movie never block bookings on another.
//
// Fields:
//  ID        – generated UUID.
//  Title     – movie title, required.
//  Genre     – genre label used by search.
//  Language  – spoken language.
//  BasePrice – price of one ticket before add-ons, never negative.
//  Showtime  – showtime label.
//  Hall      – hall the movie is screened in (shared with other movies).
type Movie struct {
	ID        string  // uuid
	Title     string  // title
	Genre     string  // genre
	Language  string  // language
	BasePrice float64 // ticket price
	Showtime  string  // showtime label
	Hall      *Hall   // assigned hall

	mu      sync.RWMutex
	active  bool
	booked  []int
	taken   map[int]struct{}
	reviews []Review
}

// NewMovie validates cfg and returns an active movie with no bookings.
func NewMovie(cfg MovieConfig) (*Movie, error) {
	title := strings.TrimSpace(cfg.Title)
	if title == "" {
		return nil, apperror.New(apperror.InvalidInput, "title is required")
	}
	if cfg.Hall == nil {
		return nil, apperror.New(apperror.InvalidInput, "hall is required")
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(cfg.Price), 64)
	// ParseFloat accepts "NaN" and "Inf"; neither is a price
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, apperror.New(apperror.InvalidInput, "price %q is not a number", cfg.Price)
	}
	if price < 0 {
		return nil, apperror.New(apperror.InvalidInput, "price must not be negative")
	}
	return &Movie{
		ID:        uuid.NewString(),
		Title:     title,
		Genre:     strings.TrimSpace(cfg.Genre),
		Language:  strings.TrimSpace(cfg.Language),
		BasePrice: price,
		Showtime:  strings.TrimSpace(cfg.Showtime),
		Hall:      cfg.Hall,
		active:    true,
		taken:     make(map[int]struct{}),
	}, nil
}

// Active reports whether the movie is open for booking.
func (m *Movie) Active() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// SetActive changes the active flag.
func (m *Movie) SetActive(active bool) {
	m.mu.Lock()
	m.active = active
	m.mu.Unlock()
}

// ToggleActive flips the active flag and returns the new value.
func (m *Movie) ToggleActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = !m.active
	return m.active
}

// BookedSeats returns a copy of the booked seat identifiers in booking order.
func (m *Movie) BookedSeats() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]int, len(m.booked))
	copy(out, m.booked)
	return out
}

// FreeSeats returns the number of seats still available.
func (m *Movie) FreeSeats() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Hall.Capacity - len(m.booked)
}

// Reserve moves seats from FREE to BOOKED as one critical section.  The
// request is validated against the hall and the current inventory while
// the movie is locked; settle is then invoked, still under the lock, and
// the seats are committed only if it returns nil.  Nothing is changed when
// validation or settle fails.
func (m *Movie) Reserve(seats []int, settle func() error) error {
	if len(seats) == 0 {
		return apperror.New(apperror.InvalidRequest, "no seats selected")
	}
	seen := make(map[int]struct{}, len(seats))
	for _, s := range seats {
		if !m.Hall.HasSeat(s) {
			return apperror.New(apperror.InvalidRequest, "seat %d outside 1..%d", s, m.Hall.Capacity)
		}
		if _, dup := seen[s]; dup {
			return apperror.New(apperror.InvalidRequest, "seat %d requested twice", s)
		}
		seen[s] = struct{}{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return apperror.New(apperror.InvalidRequest, "movie %q is not active", m.Title)
	}
	var conflicts []int
	for _, s := range seats {
		if _, ok := m.taken[s]; ok {
			conflicts = append(conflicts, s)
		}
	}
	if len(conflicts) > 0 {
		sort.Ints(conflicts)
		return apperror.Unavailable(conflicts)
	}
	if settle != nil {
		if err := settle(); err != nil {
			return err
		}
	}
	for _, s := range seats {
		m.taken[s] = struct{}{}
		m.booked = append(m.booked, s)
	}
	return nil
}

// AddReview appends r after checking its rating.
func (m *Movie) AddReview(r Review) error {
	if !ratingInRange(r.Rating) {
		return apperror.New(apperror.InvalidInput, "rating %v outside [%v,%v]", r.Rating, MinRating, MaxRating)
	}
	m.mu.Lock()
	m.reviews = append(m.reviews, r)
	m.mu.Unlock()
	return nil
}

// Reviews returns a copy of the reviews in insertion order.
func (m *Movie) Reviews() []Review {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Review, len(m.reviews))
	copy(out, m.reviews)
	return out
}

// AverageRating is the arithmetic mean of all ratings, 0 when there are none.
func (m *Movie) AverageRating() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.reviews) == 0 {
		return 0
	}
	var sum float64
	for _, r := range m.reviews {
		sum += r.Rating
	}
	return sum / float64(len(m.reviews))
}

// ReviewSummary renders one "author: comment" line per review.
func (m *Movie) ReviewSummary() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.reviews) == 0 {
		return NoReviews
	}
	lines := make([]string, len(m.reviews))
	for i, r := range m.reviews {
		lines[i] = r.Author + ": " + r.Comment
	}
	return strings.Join(lines, "\n")
}

// Matches reports whether query is a case-insensitive substring of the
// title or the genre.
func (m *Movie) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(m.Title), q) ||
		strings.Contains(strings.ToLower(m.Genre), q)
}
