package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jobdesk/dashboard-system/internal/api/handler"
	"github.com/jobdesk/dashboard-system/internal/api/middleware"
	"github.com/jobdesk/dashboard-system/internal/core/domain"
	"github.com/jobdesk/dashboard-system/internal/core/ports"
)

// Deps carries the constructed services the router wires into handlers.
type Deps struct {
	Auth      ports.AuthService
	Jobs      ports.JobService
	Queue     ports.QueueService
	Handoff   ports.HandoffService
	Sync      ports.SnapshotReader
	Sessions  ports.SessionStore
	Redis     *redis.Client
	JWTSecret string
	// Metrics receives the request metrics; nil means the global registry.
	Metrics prometheus.Registerer
	Log     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	registerer := d.Metrics
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "jobdesk",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Queue, d.Sync, d.Sessions)
	jobHandler := handler.NewJobHandler(d.Jobs, d.Handoff, d.Sessions, d.Sync)
	queueHandler := handler.NewQueueHandler(d.Queue, d.Sync)
	sessionHandler := handler.NewSessionHandler(d.Sessions)

	authMiddleware := middleware.Auth(d.JWTSecret)
	supportOnly := middleware.RBAC(domain.RoleSupport)
	anyRole := middleware.RBAC(domain.RoleSales, domain.RoleSupport)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)

	// --- Dashboard routes ---
	e.GET("/queue", queueHandler.Queue, authMiddleware, anyRole)
	e.GET("/stats", queueHandler.Stats, authMiddleware, anyRole)

	// Creation is open to both roles; lifecycle actions belong to Support,
	// mirroring which actions each role is offered in the queue.
	e.POST("/jobs", jobHandler.Create, authMiddleware, anyRole)
	e.PATCH("/jobs/:id/status", jobHandler.UpdateStatus, authMiddleware, supportOnly)
	e.DELETE("/jobs/:id", jobHandler.Delete, authMiddleware, supportOnly)
	e.POST("/jobs/:id/handoff", jobHandler.Handoff, authMiddleware, supportOnly)

	// --- Session state ---
	e.GET("/session/theme", sessionHandler.GetTheme, authMiddleware)
	e.PUT("/session/theme", sessionHandler.PutTheme, authMiddleware)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Sync, d.Redis)

	e.GET("/health", healthHandler.Liveness)             // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)   // readiness – snapshot loaded, deps up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
