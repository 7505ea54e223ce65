package service

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-box-office/internal/model"
	"github.com/iliyamo/cinema-box-office/internal/repository"
)

// MovieSummary is the browse view of a movie.
type MovieSummary struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Genre         string  `json:"genre"`
	Language      string  `json:"language"`
	Showtime      string  `json:"showtime"`
	Price         float64 `json:"price"`
	AverageRating float64 `json:"average_rating"`
	Hall          string  `json:"hall"`
	FreeSeats     int     `json:"free_seats"`
	Active        bool    `json:"active"`
}

// SeatMap describes the inventory of one movie.
type SeatMap struct {
	MovieID  string `json:"movie_id"`
	Hall     string `json:"hall"`
	Capacity int    `json:"capacity"`
	Booked   []int  `json:"booked"`
}

// MovieInput carries admin input for a new movie; the hall is referenced
// by name.
type MovieInput struct {
	Title    string
	Genre    string
	Language string
	Price    string
	Showtime string
	HallName string
}

// CatalogService exposes browsing and the admin operations on movies and
// halls.  Admin operations never touch seat inventory.
type CatalogService struct {
	Movies *repository.MovieRepo
	Halls  *repository.HallRepo
	Log    logrus.FieldLogger
}

func NewCatalogService(movies *repository.MovieRepo, halls *repository.HallRepo, log logrus.FieldLogger) *CatalogService {
	if movies == nil || halls == nil {
		panic("nil repository passed to NewCatalogService")
	}
	return &CatalogService{Movies: movies, Halls: halls, Log: log}
}

func summarize(m *model.Movie) MovieSummary {
	return MovieSummary{
		ID:            m.ID,
		Title:         m.Title,
		Genre:         m.Genre,
		Language:      m.Language,
		Showtime:      m.Showtime,
		Price:         m.BasePrice,
		AverageRating: m.AverageRating(),
		Hall:          m.Hall.Name,
		FreeSeats:     m.FreeSeats(),
		Active:        m.Active(),
	}
}

// ListActive returns the movies open for booking.
func (s *CatalogService) ListActive() []MovieSummary {
	out := []MovieSummary{}
	for _, m := range s.Movies.List() {
		if m.Active() {
			out = append(out, summarize(m))
		}
	}
	return out
}

// Search filters the active movies by a case-insensitive substring of
// title or genre.  A blank query returns every active movie.
func (s *CatalogService) Search(query string) []MovieSummary {
	q := strings.TrimSpace(query)
	if q == "" {
		return s.ListActive()
	}
	out := []MovieSummary{}
	for _, m := range s.Movies.List() {
		if m.Active() && m.Matches(q) {
			out = append(out, summarize(m))
		}
	}
	return out
}

// ListAll returns every movie including inactive ones, for admins.
func (s *CatalogService) ListAll() []MovieSummary {
	movies := s.Movies.List()
	out := make([]MovieSummary, 0, len(movies))
	for _, m := range movies {
		out = append(out, summarize(m))
	}
	return out
}

// Get returns the summary of one movie.
func (s *CatalogService) Get(id string) (MovieSummary, error) {
	m, err := s.Movies.GetByID(id)
	if err != nil {
		return MovieSummary{}, err
	}
	return summarize(m), nil
}

// SeatMap returns the capacity and booked seats of a movie.
func (s *CatalogService) SeatMap(id string) (SeatMap, error) {
	m, err := s.Movies.GetByID(id)
	if err != nil {
		return SeatMap{}, err
	}
	return SeatMap{MovieID: m.ID, Hall: m.Hall.Name, Capacity: m.Hall.Capacity, Booked: m.BookedSeats()}, nil
}

// AddMovie validates in and adds the movie to the catalog.
func (s *CatalogService) AddMovie(in MovieInput) (*model.Movie, error) {
	hall, err := s.Halls.GetByName(in.HallName)
	if err != nil {
		return nil, err
	}
	m, err := model.NewMovie(model.MovieConfig{
		Title:    in.Title,
		Genre:    in.Genre,
		Language: in.Language,
		Price:    in.Price,
		Showtime: in.Showtime,
		Hall:     hall,
	})
	if err != nil {
		return nil, err
	}
	if err := s.Movies.Create(m); err != nil {
		return nil, err
	}
	s.Log.WithFields(logrus.Fields{"movie_id": m.ID, "title": m.Title, "hall": hall.Name}).Info("movie added")
	return m, nil
}

// RemoveMovie deletes a movie from the catalog.
func (s *CatalogService) RemoveMovie(id string) error {
	if err := s.Movies.Delete(id); err != nil {
		return err
	}
	s.Log.WithField("movie_id", id).Info("movie removed")
	return nil
}

// ToggleActive flips a movie's active flag and returns the new value.
func (s *CatalogService) ToggleActive(id string) (bool, error) {
	m, err := s.Movies.GetByID(id)
	if err != nil {
		return false, err
	}
	active := m.ToggleActive()
	s.Log.WithFields(logrus.Fields{"movie_id": id, "active": active}).Info("movie toggled")
	return active, nil
}

// AddHall parses capacity and creates the hall.
func (s *CatalogService) AddHall(name, capacity string) (*model.Hall, error) {
	n, err := model.ParseCapacity(capacity)
	if err != nil {
		return nil, err
	}
	h, err := model.NewHall(name, n)
	if err != nil {
		return nil, err
	}
	if err := s.Halls.Create(h); err != nil {
		return nil, err
	}
	s.Log.WithFields(logrus.Fields{"hall": h.Name, "capacity": h.Capacity}).Info("hall added")
	return h, nil
}

// ListHalls returns every hall.
func (s *CatalogService) ListHalls() []*model.Hall {
	return s.Halls.List()
}
