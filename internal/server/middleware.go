package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"pizzahub/internal/logger"
)

const loggerKey = "pizzahub.logger"

// requestLogging opens a span and a request-scoped logger, runs the chain,
// then records the final status on both.
func requestLogging(base *logger.Logger, tracer trace.Tracer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := base.With(zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)))
		log.RequestReceived(c.Method(), c.Path())
		c.Locals(loggerKey, log)

		ctx, span := tracer.Start(c.UserContext(), c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()
		c.SetUserContext(ctx)

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().Config().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		routePath := c.Route().Path
		span.SetName(c.Method() + " " + routePath)
		span.SetAttributes(
			attribute.String("http.method", c.Method()),
			attribute.String("http.route", routePath),
			attribute.Int("http.status_code", status),
		)
		if status >= fiber.StatusInternalServerError {
			span.SetStatus(codes.Error, utils.StatusMessage(status))
		}
		log.RespondWith(status)
		return nil
	}
}

// requestLogger returns the logger requestLogging attached to c.
func requestLogger(c *fiber.Ctx) *logger.Logger {
	if log, ok := c.Locals(loggerKey).(*logger.Logger); ok {
		return log
	}
	return logger.Nop()
}

// errorHandler answers every unhandled error with a {message} body.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{"message": utils.StatusMessage(code)})
}
