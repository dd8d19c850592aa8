package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ccms-app/dashboard/internal/config"
	"github.com/ccms-app/dashboard/internal/routes"
)

// Server wraps the Fiber application.
type Server struct {
	app *fiber.App
	cfg config.Config
}

// New instantiates the HTTP server and delegates route wiring to routes.Setup.
func New(cfg config.Config, deps routes.Deps) (*Server, error) {
	deps.Cfg = cfg
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
		// Reads wait on the card API, so they get its timeout plus slack.
		ReadTimeout:  cfg.APITimeout + 5*time.Second,
		WriteTimeout: cfg.APITimeout + 5*time.Second,
		ErrorHandler: routes.ErrorHandler(deps.Logger),
	})

	if err := routes.Setup(app, deps); err != nil {
		return nil, err
	}
	return &Server{app: app, cfg: cfg}, nil
}

// App exposes the Fiber application for in-process requests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts the HTTP server.
func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.Address())
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
