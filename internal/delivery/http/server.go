package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/whats-on/internal/config"
	"github.com/whats-on/internal/delivery/http/handler"
	"github.com/whats-on/internal/delivery/http/middleware"
	"github.com/whats-on/internal/pkg/errors"
	"github.com/whats-on/internal/pkg/utils"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	locationHandler *handler.LocationHandler
	feedHandler     *handler.FeedHandler
	venueHandler    *handler.VenueHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	locationHandler *handler.LocationHandler,
	feedHandler *handler.FeedHandler,
	venueHandler *handler.VenueHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName: "What's On",
		// загрузка каталога ограничена CATALOG_REQUEST_TIMEOUT, сверху запас
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Catalog.RequestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		locationHandler: locationHandler,
		feedHandler:     feedHandler,
		venueHandler:    venueHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App возвращает fiber приложение (используется в тестах)
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.AllowOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Location routes
	api.Get("/locations", s.locationHandler.ListLocations)
	api.Put("/location", s.locationHandler.SelectLocation)

	// Feed routes
	api.Get("/events", s.feedHandler.GetEvents)

	// Venue routes
	api.Get("/venues", s.venueHandler.GetVenues)
	api.Post("/venues/:id/toggle", s.venueHandler.ToggleVenue)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки fiber (404 маршрута, 405 и т.п.) в формате utils.ErrorResponse
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		appErr := errors.ErrInternalServer

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			appErr = errors.New("HTTP_ERROR", e.Message, e.Code)
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(utils.ErrorResponse{Error: appErr})
	}
}
