package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/frfole/inverse-zastavky/internal/config"
	"github.com/frfole/inverse-zastavky/internal/delivery/http/handler"
	"github.com/frfole/inverse-zastavky/internal/delivery/http/middleware"
	"github.com/frfole/inverse-zastavky/internal/pkg/errors"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handlers groups the route handlers; ImportHandler is optional and its
// route is left out when nil (no Redis configured).
type Handlers struct {
	Chain    *handler.ChainHandler
	Station  *handler.StationHandler
	BaseData *handler.BaseDataHandler
	Stats    *handler.StatsHandler
	Import   *handler.ImportHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
	health   HealthChecker
}

// NewServer - создание нового HTTP сервера
func NewServer(cfg *config.Config, logger *zap.Logger, handlers Handlers, health HealthChecker) *Server {
	app := fiber.New(fiber.Config{
		AppName:     "inverse-zastavky",
		ReadTimeout: 10 * time.Second,
		// city expansion of a long chain may take several seconds
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
		health:   health,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App exposes the fiber application, used by tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")
	api.Get("/health", s.healthCheck)

	h := s.handlers

	chains := api.Group("/chains")
	chains.Get("/", h.Chain.List)
	chains.Get("/:hash", h.Chain.GetByHash)
	chains.Post("/:hash/locate/station", h.Chain.LocateStation)
	chains.Post("/:hash/locate/point", h.Chain.LocatePoint)
	chains.Get("/:hash/suggest/cities", h.Chain.SuggestCities)
	chains.Get("/:hash/suggest/stations", h.Chain.SuggestStations)

	base := api.Group("/base")
	base.Get("/stations", h.BaseData.Stations)
	base.Get("/cities", h.BaseData.Cities)

	stations := api.Group("/stations")
	stations.Get("/", h.Station.GetByBBox)
	stations.Get("/search", h.Station.Search)
	stations.Post("/", h.Station.Create)
	stations.Get("/:id", h.Station.GetByID)
	stations.Delete("/:id", h.Station.Remove)
	stations.Patch("/:id/position", h.Station.Move)
	stations.Post("/:id/names", h.Station.AddName)
	stations.Delete("/:id/names", h.Station.RemoveName)

	other := api.Group("/other")
	other.Get("/stats", h.Stats.GetStatistics)
	other.Get("/city-remap", h.BaseData.CityRemap)

	if h.Import != nil {
		api.Post("/imports", h.Import.Enqueue)
	}

	// Веб-интерфейс редактора, если задан каталог
	if dir := s.config.Server.StaticDir; dir != "" {
		s.app.Static("/", dir, fiber.Static{Index: "index.html"})
	}
}

func (s *Server) healthCheck(c *fiber.Ctx) error {
	status, code := "healthy", fiber.StatusOK
	if s.health != nil {
		if err := s.health.Health(c.Context()); err != nil {
			s.logger.Warn("Health check failed", zap.Error(err))
			status, code = "unhealthy", fiber.StatusServiceUnavailable
		}
	}
	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"time":   time.Now().UTC(),
	})
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

// customErrorHandler отвечает в формате ErrorResponse на ошибки роутинга
// и непойманные ошибки обработчиков
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			appErr := errors.New("HTTP_ERROR", e.Message, e.Code)
			if e.Code == fiber.StatusNotFound {
				appErr = errors.New("NOT_FOUND", "Route not found", e.Code)
			}
			return c.Status(e.Code).JSON(fiber.Map{"error": appErr})
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": errors.ErrInternalServer,
		})
	}
}
