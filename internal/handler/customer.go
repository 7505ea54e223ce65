package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-box-office/internal/middleware"
	"github.com/iliyamo/cinema-box-office/internal/model"
	"github.com/iliyamo/cinema-box-office/internal/payment"
	"github.com/iliyamo/cinema-box-office/internal/pricing"
	"github.com/iliyamo/cinema-box-office/internal/service"
)

// CustomerHandler serves the booking and review endpoints.  All methods
// assume JWTAuth and RequireRole(CUSTOMER) already ran, so the caller's
// username is always present in the context.
type CustomerHandler struct {
	Booking  *service.BookingEngine
	Accounts *service.AccountService
	Reviews  *service.ReviewService
	Cache    CachePurger
}

func NewCustomerHandler(booking *service.BookingEngine, accounts *service.AccountService, reviews *service.ReviewService, cache CachePurger) *CustomerHandler {
	if booking == nil || accounts == nil || reviews == nil {
		panic("nil service passed to NewCustomerHandler")
	}
	return &CustomerHandler{Booking: booking, Accounts: accounts, Reviews: reviews, Cache: cache}
}

type bookReq struct {
	Seats   []int    `json:"seats"`
	AddOns  []string `json:"add_ons"`
	Payment struct {
		Method    string `json:"method"`
		CardToken string `json:"card_token"`
	} `json:"payment"`
}

type bookingResp struct {
	ID          string    `json:"id"`
	MovieID     string    `json:"movie_id"`
	MovieTitle  string    `json:"movie_title"`
	Seats       []string  `json:"seats"`
	Item        string    `json:"item"`
	UnitPrice   float64   `json:"unit_price"`
	Total       float64   `json:"total"`
	Payment     string    `json:"payment"`
	ConfirmedAt time.Time `json:"confirmed_at"`
	Receipt     string    `json:"receipt"`
}

// Book handles POST /v1/movies/:id/book.  Seats, add-ons and payment are
// taken from the body; the whole booking either commits or leaves nothing
// behind.  Rejections are mapped to 400/402/404/409.
func (h *CustomerHandler) Book(c echo.Context) error {
	id, ok := movieID(c)
	if !ok {
		return badRequest(c, "movie id required")
	}
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	addOns, err := pricing.ParseAddOns(req.AddOns)
	if err != nil {
		return fail(c, err)
	}

	res := h.Booking.Reserve(c.Request().Context(), service.BookingRequest{
		MovieID:  id,
		Seats:    req.Seats,
		AddOns:   addOns,
		Payment:  payment.Method{Kind: payment.Kind(req.Payment.Method), CardToken: req.Payment.CardToken},
		Username: middleware.Username(c),
	})
	if !res.Success {
		return fail(c, res.Err)
	}
	purge(c, h.Cache)

	b := res.Booking
	return c.JSON(http.StatusCreated, bookingResp{
		ID:          b.ID,
		MovieID:     b.MovieID,
		MovieTitle:  b.MovieTitle,
		Seats:       model.SeatLabels(b.Seats),
		Item:        b.Item,
		UnitPrice:   b.UnitPrice,
		Total:       b.Total,
		Payment:     b.Payment,
		ConfirmedAt: b.ConfirmedAt,
		Receipt:     res.Receipt,
	})
}

// MyBookings handles GET /v1/my-bookings and returns the caller's booking
// history in booking order.
func (h *CustomerHandler) MyBookings(c echo.Context) error {
	history, err := h.Accounts.History(middleware.Username(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": history})
}

type reviewReq struct {
	Comment string  `json:"comment"`
	Rating  float64 `json:"rating"`
}

// PostReview handles POST /v1/movies/:id/reviews.
func (h *CustomerHandler) PostReview(c echo.Context) error {
	id, ok := movieID(c)
	if !ok {
		return badRequest(c, "movie id required")
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := h.Reviews.Post(id, middleware.Username(c), req.Comment, req.Rating); err != nil {
		return fail(c, err)
	}
	purge(c, h.Cache)
	view, err := h.Reviews.View(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"average_rating": view.AverageRating, "count": view.Count})
}
