package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-box-office/internal/service"
)

// AdminHandler exposes catalog management.  Every mutation purges the
// response cache so that browse endpoints pick the change up.
type AdminHandler struct {
	Catalog *service.CatalogService
	Cache   CachePurger
}

func NewAdminHandler(catalog *service.CatalogService, cache CachePurger) *AdminHandler {
	if catalog == nil {
		panic("nil catalog passed to NewAdminHandler")
	}
	return &AdminHandler{Catalog: catalog, Cache: cache}
}

// ListMovies handles GET /v1/admin/movies and includes inactive movies.
func (h *AdminHandler) ListMovies(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Catalog.ListAll())
}

// Price and capacity arrive as text, the way they are typed into the
// admin form, and are validated by the catalog.
type createMovieReq struct {
	Title    string `json:"title"`
	Genre    string `json:"genre"`
	Language string `json:"language"`
	Price    string `json:"price"`
	Showtime string `json:"showtime"`
	Hall     string `json:"hall"`
}

// CreateMovie handles POST /v1/admin/movies.
func (h *AdminHandler) CreateMovie(c echo.Context) error {
	var req createMovieReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	m, err := h.Catalog.AddMovie(service.MovieInput{
		Title:    req.Title,
		Genre:    req.Genre,
		Language: req.Language,
		Price:    req.Price,
		Showtime: req.Showtime,
		HallName: req.Hall,
	})
	if err != nil {
		return fail(c, err)
	}
	purge(c, h.Cache)
	summary, err := h.Catalog.Get(m.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, summary)
}

// DeleteMovie handles DELETE /v1/admin/movies/:id.
func (h *AdminHandler) DeleteMovie(c echo.Context) error {
	id, ok := movieID(c)
	if !ok {
		return badRequest(c, "movie id required")
	}
	if err := h.Catalog.RemoveMovie(id); err != nil {
		return fail(c, err)
	}
	purge(c, h.Cache)
	return c.NoContent(http.StatusNoContent)
}

// ToggleMovie handles POST /v1/admin/movies/:id/toggle.
func (h *AdminHandler) ToggleMovie(c echo.Context) error {
	id, ok := movieID(c)
	if !ok {
		return badRequest(c, "movie id required")
	}
	active, err := h.Catalog.ToggleActive(id)
	if err != nil {
		return fail(c, err)
	}
	purge(c, h.Cache)
	return c.JSON(http.StatusOK, echo.Map{"id": id, "active": active})
}

type hallResp struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// ListHalls handles GET /v1/admin/halls.
func (h *AdminHandler) ListHalls(c echo.Context) error {
	halls := h.Catalog.ListHalls()
	out := make([]hallResp, 0, len(halls))
	for _, hall := range halls {
		out = append(out, hallResp{Name: hall.Name, Capacity: hall.Capacity})
	}
	return c.JSON(http.StatusOK, out)
}

type createHallReq struct {
	Name     string `json:"name"`
	Capacity string `json:"capacity"`
}

// CreateHall handles POST /v1/admin/halls.
func (h *AdminHandler) CreateHall(c echo.Context) error {
	var req createHallReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	hall, err := h.Catalog.AddHall(req.Name, req.Capacity)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, hallResp{Name: hall.Name, Capacity: hall.Capacity})
}
