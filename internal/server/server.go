// Package server exposes the classification and extraction engine over HTTP for the
// external UI layer.
package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/taperedworks/enquiry-tracker/internal/classify"
	"github.com/taperedworks/enquiry-tracker/internal/export"
	"github.com/taperedworks/enquiry-tracker/internal/extract"
	"github.com/taperedworks/enquiry-tracker/internal/repository"
)

// Server wires the core services to their HTTP endpoints.
type Server struct {
	echo       *echo.Echo
	classifier *classify.Classifier
	extractor  *extract.Service
	exporter   *export.Service
	history    repository.HistoryRepository
	log        *slog.Logger
	addr       string
}

// NewServer builds the HTTP server. history may be nil when no database is
// configured; the history endpoints then report it as unavailable.
func NewServer(
	addr string,
	classifier *classify.Classifier,
	extractor *extract.Service,
	exporter *export.Service,
	history repository.HistoryRepository,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			logger.Info("http.request",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"elapsed_ms", time.Since(start).Milliseconds(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
			return err
		}
	})

	s := &Server{
		echo:       e,
		classifier: classifier,
		extractor:  extractor,
		exporter:   exporter,
		history:    history,
		log:        logger,
		addr:       addr,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)

	v1 := s.echo.Group("/api/v1")
	v1.POST("/classify", s.handleClassify)
	v1.POST("/resolve", s.handleResolve)
	v1.POST("/extract", s.handleExtract)
	v1.POST("/export", s.handleExport)
	v1.GET("/history", s.handleHistory)
}

// Start blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("http.listen", "addr", s.addr)
	return s.echo.Start(s.addr)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
