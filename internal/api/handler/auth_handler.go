package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jobdesk/dashboard-system/internal/core/ports"
)

// AuthHandler exposes login, registration and logout. The dashboard blocks
// authentication while the initial snapshot load has not succeeded, so the
// readiness check runs before any credential reaches the gateway.
type AuthHandler struct {
	auth   ports.AuthService
	queue  ports.QueueService
	sync   ports.SnapshotReader
	themes ports.SessionStore
}

func NewAuthHandler(auth ports.AuthService, queue ports.QueueService, sync ports.SnapshotReader, themes ports.SessionStore) *AuthHandler {
	return &AuthHandler{auth: auth, queue: queue, sync: sync, themes: themes}
}

// Register creates an account on the gateway and opens a session.
func (h *AuthHandler) Register(c echo.Context) error {
	if err := h.sync.Ready(); err != nil {
		return err
	}

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.auth.Register(c.Request().Context(), ports.NewUser{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return err
	}

	theme, _ := h.themes.LoadTheme(c.Request().Context(), user.ID)
	return c.JSON(http.StatusCreated, authResponse{
		Token:        token,
		User:         user,
		Capabilities: h.queue.CapabilitiesFor(user.Role),
		Theme:        theme,
	})
}

// Login authenticates against the gateway and opens a session.
func (h *AuthHandler) Login(c echo.Context) error {
	if err := h.sync.Ready(); err != nil {
		return err
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	theme, _ := h.themes.LoadTheme(c.Request().Context(), user.ID)
	return c.JSON(http.StatusOK, authResponse{
		Token:        token,
		User:         user,
		Capabilities: h.queue.CapabilitiesFor(user.Role),
		Theme:        theme,
	})
}

// Logout ends the session. The stored theme survives.
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.auth.Logout(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
