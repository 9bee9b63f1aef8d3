package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/xbraken/holiday-planner/internal/config"
	"github.com/xbraken/holiday-planner/internal/flights"
	"github.com/xbraken/holiday-planner/internal/planner"
	"github.com/xbraken/holiday-planner/internal/store"
	"github.com/xbraken/holiday-planner/internal/stream"
)

type Server struct {
	App     *fiber.App
	Cfg     config.Config
	Store   store.Store
	Stream  *stream.Hub
	Flights *flights.Service
}

// NewServer wires the HTTP surface. redisClient may be nil; the flights
// gateway then falls back to its in-process edge cache.
func NewServer(cfg config.Config, st store.Store, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	s := &Server{
		App:     app,
		Cfg:     cfg,
		Store:   st,
		Stream:  stream.NewHub(),
		Flights: flights.NewService(cfg, redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "connected": s.Store.Connected()})
	})

	flights.RegisterRoutes(s.App.Group("/api"), s.Flights)
	planner.RegisterRoutes(s.App.Group("/planner"), planner.NewService(s.Store, s.Flights))
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream, s.Store)
}
