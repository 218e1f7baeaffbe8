package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/light-bringer/dealmarket-service/internal/pkg/clock"
	"github.com/light-bringer/dealmarket-service/internal/transport/http/marketplace"
)

// APIPrefix is the mount point of every route.
const APIPrefix = "/api/v1"

// ServerOptions configures the HTTP server.
type ServerOptions struct {
	Service   string
	Logger    zerolog.Logger
	Clock     clock.Clock
	RateLimit rate.Limit
	RateBurst int
}

// NewServer builds the echo instance serving the marketplace API.
func NewServer(handler *marketplace.Handler, opts ServerOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(requestID())
	e.Use(contextLogger(opts.Logger))
	e.Use(requestLogger())
	e.Use(rateLimiter(opts.RateLimit, opts.RateBurst))

	// Routes
	api := e.Group(APIPrefix)
	api.GET("/health", health(opts.Service, opts.Clock))
	handler.Register(api)

	return e
}

func health(service string, clk clock.Clock) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":  "ok",
			"service": service,
			"time":    clk.Now().Format(time.RFC3339),
		})
	}
}
