package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-box-office/internal/apperror"
	"github.com/iliyamo/cinema-box-office/internal/logging"
	"github.com/iliyamo/cinema-box-office/internal/service"
)

func titles(ms []service.MovieSummary) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Title
	}
	return out
}

func TestSearchMovies(t *testing.T) {
	f := setup(t)
	c := f.svc.Catalog

	assert.Equal(t, []string{"Inception"}, titles(c.Search("sci")))
	assert.Equal(t, []string{"Parasite"}, titles(c.Search("PARA")))
	assert.Equal(t, []string{"Inception", "Parasite"}, titles(c.Search("")))
	assert.Equal(t, []string{"Inception", "Parasite"}, titles(c.Search("   ")))
	assert.Empty(t, c.Search("comedy"))
}

func TestListActiveHidesInactive(t *testing.T) {
	f := setup(t)
	c := f.svc.Catalog
	_, err := c.ToggleActive(f.inception.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"Parasite"}, titles(c.ListActive()))
	assert.Empty(t, c.Search("sci"))
	assert.Len(t, c.ListAll(), 2)
}

func TestSummaryCarriesRating(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.svc.Reviews.Post(f.inception.ID, "a", "x", 5))
	require.NoError(t, f.svc.Reviews.Post(f.inception.ID, "b", "y", 3))

	s, err := f.svc.Catalog.Get(f.inception.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, s.AverageRating)
	assert.Equal(t, 12.0, s.Price)
	assert.Equal(t, "Hall A", s.Hall)
	assert.Equal(t, 20, s.FreeSeats)
}

func TestAdminOperations(t *testing.T) {
	f := setup(t)
	c := f.svc.Catalog

	h, err := c.AddHall("Studio 3", "8")
	require.NoError(t, err)
	assert.Equal(t, 8, h.Capacity)
	assert.Len(t, c.ListHalls(), 3)

	_, err = c.AddHall("Studio 4", "many")
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	_, err = c.AddHall("Studio 4", "0")
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))

	m, err := c.AddMovie(service.MovieInput{Title: "Dune", Genre: "Sci-Fi", Price: "15", HallName: "studio 3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Inception", "Dune"}, titles(c.Search("sci")))

	_, err = c.AddMovie(service.MovieInput{Title: "Dune 2", Price: "abc", HallName: "Studio 3"})
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	_, err = c.AddMovie(service.MovieInput{Title: "Dune 2", Price: "1", HallName: "Basement"})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	seats, err := c.SeatMap(m.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, seats.Capacity)
	assert.Empty(t, seats.Booked)

	require.NoError(t, c.RemoveMovie(m.ID))
	assert.True(t, errors.Is(c.RemoveMovie(m.ID), apperror.ErrNotFound))
	_, err = c.ToggleActive(m.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestRemovingBookedMovieKeepsHistory(t *testing.T) {
	f := setup(t)
	require.True(t, f.svc.Booking.Reserve(context.Background(), cash(f.inception.ID, 1)).Success)
	require.NoError(t, f.svc.Catalog.RemoveMovie(f.inception.ID))

	history, err := f.svc.Accounts.History("customer")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Contains(t, history[0], "Ticket: Inception")
}

func TestSeedIsNotRepeatable(t *testing.T) {
	svc := service.New(4, logging.Discard())
	require.NoError(t, svc.Seed())
	assert.Error(t, svc.Seed())
}
