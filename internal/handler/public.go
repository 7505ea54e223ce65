package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-box-office/internal/service"
)

// PublicHandler serves the unauthenticated browse endpoints.  Only active
// movies are listed; seat maps and reviews are readable for any movie id.
type PublicHandler struct {
	Catalog *service.CatalogService
	Reviews *service.ReviewService
}

func NewPublicHandler(catalog *service.CatalogService, reviews *service.ReviewService) *PublicHandler {
	if catalog == nil || reviews == nil {
		panic("nil service passed to NewPublicHandler")
	}
	return &PublicHandler{Catalog: catalog, Reviews: reviews}
}

// ListMovies handles GET /v1/movies.  The optional q parameter filters by a
// case-insensitive substring of title or genre.
func (h *PublicHandler) ListMovies(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Catalog.Search(c.QueryParam("q")))
}

// GetMovie handles GET /v1/movies/:id.
func (h *PublicHandler) GetMovie(c echo.Context) error {
	id, ok := movieID(c)
	if !ok {
		return badRequest(c, "movie id required")
	}
	m, err := h.Catalog.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// GetSeats handles GET /v1/movies/:id/seats and returns capacity and the
// booked seat numbers.
func (h *PublicHandler) GetSeats(c echo.Context) error {
	id, ok := movieID(c)
	if !ok {
		return badRequest(c, "movie id required")
	}
	seats, err := h.Catalog.SeatMap(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, seats)
}

type reviewItem struct {
	Author  string  `json:"author"`
	Comment string  `json:"comment"`
	Rating  float64 `json:"rating"`
}

// GetReviews handles GET /v1/movies/:id/reviews.
func (h *PublicHandler) GetReviews(c echo.Context) error {
	id, ok := movieID(c)
	if !ok {
		return badRequest(c, "movie id required")
	}
	view, err := h.Reviews.View(id)
	if err != nil {
		return fail(c, err)
	}
	items := make([]reviewItem, 0, len(view.Reviews))
	for _, r := range view.Reviews {
		items = append(items, reviewItem{Author: r.Author, Comment: r.Comment, Rating: r.Rating})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"movie_id":       view.MovieID,
		"title":          view.Title,
		"average_rating": view.AverageRating,
		"count":          view.Count,
		"summary":        view.Summary,
		"reviews":        items,
	})
}
