package account

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/auth/signup", h.SignUp)
	api.POST("/auth/signin", h.SignIn)
}

func (h *Handler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	id, err := h.svc.SignUp(c.Request().Context(), &req)
	switch {
	case errors.Is(err, ErrMissingCredentials),
		errors.Is(err, ErrTermsNotAccepted),
		errors.Is(err, ErrPasswordTooShort):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, "Email already in use")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create account")
	}
	return c.JSON(http.StatusCreated, id)
}

func (h *Handler) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	id, err := h.svc.SignIn(c.Request().Context(), &req)
	switch {
	case errors.Is(err, ErrMissingCredentials):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to sign in")
	}
	return c.JSON(http.StatusOK, id)
}
