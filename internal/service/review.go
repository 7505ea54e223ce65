package service

import (
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-box-office/internal/model"
	"github.com/iliyamo/cinema-box-office/internal/repository"
)

// ReviewView is the review panel of a movie.
type ReviewView struct {
	MovieID       string         `json:"movie_id"`
	Title         string         `json:"title"`
	AverageRating float64        `json:"average_rating"`
	Count         int            `json:"count"`
	Summary       string         `json:"summary"`
	Reviews       []model.Review `json:"-"`
}

type ReviewService struct {
	Movies *repository.MovieRepo
	Log    logrus.FieldLogger
}

func NewReviewService(movies *repository.MovieRepo, log logrus.FieldLogger) *ReviewService {
	return &ReviewService{Movies: movies, Log: log}
}

// Post adds a review to a movie.  Ratings outside [1,5] are rejected.
func (s *ReviewService) Post(movieID, author, comment string, rating float64) error {
	m, err := s.Movies.GetByID(movieID)
	if err != nil {
		return err
	}
	r, err := model.NewReview(author, comment, rating)
	if err != nil {
		return err
	}
	if err := m.AddReview(r); err != nil {
		return err
	}
	s.Log.WithFields(logrus.Fields{"movie_id": movieID, "author": author, "rating": rating}).Info("review posted")
	return nil
}

// View returns the average, count and text summary of a movie's reviews.
func (s *ReviewService) View(movieID string) (ReviewView, error) {
	m, err := s.Movies.GetByID(movieID)
	if err != nil {
		return ReviewView{}, err
	}
	reviews := m.Reviews()
	return ReviewView{
		MovieID:       m.ID,
		Title:         m.Title,
		AverageRating: m.AverageRating(),
		Count:         len(reviews),
		Summary:       m.ReviewSummary(),
		Reviews:       reviews,
	}, nil
}
