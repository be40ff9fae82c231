package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"xsentiment/internal/analysis"
	"xsentiment/internal/domain"
	"xsentiment/internal/logging"
	"xsentiment/internal/metrics"
)

type Analyzer interface {
	Search(ctx context.Context, req analysis.Request) (*domain.SearchResponse, error)
}

type Server struct {
	echo     *echo.Echo
	analyzer Analyzer
	registry *prometheus.Registry
}

// NewServer wires the routes. reg may be nil, in which case /metrics is not served.
func NewServer(analyzer Analyzer, reg *prometheus.Registry) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:     e,
		analyzer: analyzer,
		registry: reg,
	}

	s.middleware()
	s.routes()

	return s
}

func (s *Server) middleware() {
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.echo.Use(requestLogger())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())

	if s.registry != nil {
		s.echo.Use(metrics.NewHTTPMetrics(s.registry).Middleware())
	}
}

func (s *Server) routes() {
	s.echo.GET("/", s.index)
	s.echo.GET("/health", s.health)
	s.echo.GET("/api/search", s.search)

	if s.registry != nil {
		s.echo.GET("/metrics", echo.WrapHandler(metrics.Handler(s.registry)))
	}
}

func (s *Server) Start(addr string) error {
	slog.Info("server starting", "addr", addr)
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) index(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "X Sentiment API ready",
	})
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			logging.WithRequest(v.RequestID).InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	})
}
