package emergency

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/:id/emergency-profile", h.GetSettings)
	api.PUT("/patients/:id/emergency-profile", h.UpdateSettings)
	api.GET("/patients/:id/emergency-link", h.GetLink)
	api.POST("/patients/:id/emergency-link/revoke", h.RevokeLink)
	api.GET("/emergency/by-token/:token", h.ByToken)
}

func (h *Handler) GetSettings(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}

	p, err := h.svc.GetSettings(c.Request().Context(), id)
	switch {
	case errors.Is(err, ErrPatientNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load emergency profile")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdateSettings(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}

	var req UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	p, err := h.svc.UpdateSettings(c.Request().Context(), id, &req)
	switch {
	case errors.Is(err, ErrPatientNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save emergency profile")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) GetLink(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}

	l, err := h.svc.IssueLink(c.Request().Context(), id)
	switch {
	case errors.Is(err, ErrPatientNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to issue emergency link")
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handler) RevokeLink(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}

	n, err := h.svc.RevokeLinks(c.Request().Context(), id)
	switch {
	case errors.Is(err, ErrPatientNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to revoke emergency link")
	}
	return c.JSON(http.StatusOK, map[string]int64{"revoked": n})
}

func (h *Handler) ByToken(c echo.Context) error {
	snap, err := h.svc.Redeem(c.Request().Context(), c.Param("token"))
	switch {
	case errors.Is(err, ErrLinkNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Invalid or expired link")
	case errors.Is(err, ErrLinkRevoked):
		return echo.NewHTTPError(http.StatusForbidden, "Link revoked")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load emergency snapshot")
	}
	return c.JSON(http.StatusOK, snap)
}
