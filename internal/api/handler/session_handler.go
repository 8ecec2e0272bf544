package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jobdesk/dashboard-system/internal/core/ports"
)

// SessionHandler manages the per-user visual theme, which persists across
// sessions and survives logout.
type SessionHandler struct {
	sessions ports.SessionStore
}

func NewSessionHandler(sessions ports.SessionStore) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) GetTheme(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	theme, err := h.sessions.LoadTheme(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, themeResponse{Theme: theme})
}

func (h *SessionHandler) PutTheme(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req themeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.sessions.SaveTheme(c.Request().Context(), userID, req.Theme); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, themeResponse{Theme: req.Theme})
}
