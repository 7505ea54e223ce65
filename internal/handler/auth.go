package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-box-office/internal/config"
	"github.com/iliyamo/cinema-box-office/internal/model"
	"github.com/iliyamo/cinema-box-office/internal/service"
	"github.com/iliyamo/cinema-box-office/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Accounts *service.AccountService
}

func NewAuthHandler(cfg config.Config, accounts *service.AccountService) *AuthHandler {
	if accounts == nil {
		panic("nil account service passed to NewAuthHandler")
	}
	return &AuthHandler{Cfg: cfg, Accounts: accounts}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"` // CUSTOMER | ADMIN, defaults to CUSTOMER
}
type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
type authResp struct {
	User   userPart  `json:"user"`
	Access tokenPart `json:"access"`
}

// Register creates an account and returns an access token immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return badRequest(c, "username/password required")
	}
	if strings.TrimSpace(req.Role) == "" {
		req.Role = string(model.RoleCustomer)
	}

	u, err := h.Accounts.Register(req.Role, req.Username, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return h.issue(c, http.StatusCreated, u)
}

// Login verifies the credentials and returns a fresh access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	u := h.Accounts.Login(strings.TrimSpace(req.Username), req.Password)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	return h.issue(c, http.StatusOK, u)
}

func (h *AuthHandler) issue(c echo.Context, status int, u *model.User) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.Username, string(u.Role), h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(status, authResp{
		User:   userPart{Username: u.Username, Role: string(u.Role)},
		Access: tokenPart{Token: access.Token, Expires: access.Exp},
	})
}
