// Package server exposes the pizzahub service over HTTP with fiber.
package server

import (
	"context"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"pizzahub/internal/logger"
	"pizzahub/internal/service"
)

const tracerName = "pizzahub/internal/server"

type Server struct {
	app *fiber.App
	log *logger.Logger
}

// Option configures a Server.
type Option func(*options)

type options struct {
	tp trace.TracerProvider
}

// WithTracerProvider selects where request spans go. The global provider is
// used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tp = tp
	}
}

// New builds the fiber app and mounts every route documented in doc.
func New(svc *service.Service, doc *openapi3.T, log *logger.Logger, opts ...Option) (*Server, error) {
	o := options{tp: otel.GetTracerProvider()}
	for _, opt := range opts {
		opt(&o)
	}

	app := fiber.New(fiber.Config{
		AppName:               "pizzahub",
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(requestLogging(log, o.tp.Tracer(tracerName)))

	if err := RegisterRoutes(app, doc, NewHandler(svc, doc), log); err != nil {
		return nil, err
	}
	return &Server{app: app, log: log}, nil
}

// App exposes the fiber app, mainly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on port until Shutdown is called.
func (s *Server) Listen(port int) error {
	s.log.Info(logger.ComponentHTTPServer, "Server is running", zap.Int("port", port))
	return s.app.Listen(":" + strconv.Itoa(port))
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info(logger.ComponentHTTPServer, "Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}
