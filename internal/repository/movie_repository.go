package repository

import (
	"sync"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

// MovieRepo stores movies in insertion order.
type MovieRepo struct {
	mu    sync.RWMutex
	byID  map[string]*model.Movie
	order []string
}

func NewMovieRepo() *MovieRepo {
	return &MovieRepo{byID: make(map[string]*model.Movie)}
}

// Create adds m to the catalog.
func (r *MovieRepo) Create(m *model.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[m.ID]; ok {
		return exists("movie", m.ID)
	}
	r.byID[m.ID] = m
	r.order = append(r.order, m.ID)
	return nil
}

// GetByID returns the movie with the given id.
func (r *MovieRepo) GetByID(id string) (*model.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byID[id]
	if !ok {
		return nil, notFound("movie", id)
	}
	return m, nil
}

// GetByTitle returns the first movie with exactly this title.
func (r *MovieRepo) GetByTitle(title string) (*model.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		if m := r.byID[id]; m.Title == title {
			return m, nil
		}
	}
	return nil, notFound("movie", title)
}

// Delete removes the movie.  Bookings keep a title snapshot so removing a
// booked movie is safe.
func (r *MovieRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return notFound("movie", id)
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns all movies in insertion order.
func (r *MovieRepo) List() []*model.Movie {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Movie, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}
