package model

import (
	"math"

	"github.com/iliyamo/cinema-box-office/internal/apperror"
)

// Rating bounds, both inclusive.
const (
	MinRating = 1.0
	MaxRating = 5.0
)

// Review is a customer's opinion of a movie.  Reviews are immutable once
// created; the only way to change the aggregate is to add another one.
//
// Fields:
//  Author  – username of the reviewer.
//  Comment – free text.
//  Rating  – score in [MinRating, MaxRating].
type Review struct {
	Author  string  // reviewer username
	Comment string  // free-text comment
	Rating  float64 // 1..5 inclusive
}

// NewReview validates the rating and returns the review.
func NewReview(author, comment string, rating float64) (Review, error) {
	if !ratingInRange(rating) {
		return Review{}, apperror.New(apperror.InvalidInput, "rating %v outside [%v,%v]", rating, MinRating, MaxRating)
	}
	return Review{Author: author, Comment: comment, Rating: rating}, nil
}

// NaN fails every comparison, so it is rejected explicitly.
func ratingInRange(r float64) bool {
	return !math.IsNaN(r) && r >= MinRating && r <= MaxRating
}
