package repository

import (
	"strings"
	"sync"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

// HallRepo stores halls by case-insensitive name.
type HallRepo struct {
	mu     sync.RWMutex
	byName map[string]*model.Hall
	order  []*model.Hall
}

func NewHallRepo() *HallRepo {
	return &HallRepo{byName: make(map[string]*model.Hall)}
}

func hallKey(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

// Create adds h; hall names are unique.
func (r *HallRepo) Create(h *model.Hall) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := hallKey(h.Name)
	if _, ok := r.byName[key]; ok {
		return exists("hall", h.Name)
	}
	r.byName[key] = h
	r.order = append(r.order, h)
	return nil
}

// GetByName looks a hall up by name.
func (r *HallRepo) GetByName(name string) (*model.Hall, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.byName[hallKey(name)]
	if !ok {
		return nil, notFound("hall", name)
	}
	return h, nil
}

// List returns halls in insertion order.
func (r *HallRepo) List() []*model.Hall {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Hall, len(r.order))
	copy(out, r.order)
	return out
}
