package httpapi

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/pressure-headache/internal/community"
	"github.com/i474232898/pressure-headache/internal/onboarding"
	"github.com/i474232898/pressure-headache/internal/profile"
	"github.com/i474232898/pressure-headache/internal/record"
	"github.com/i474232898/pressure-headache/internal/store"
	"github.com/i474232898/pressure-headache/internal/weather"
)

const serviceName = "pressure-headache"

// NewApp builds the Fiber app with middleware, health and metrics endpoints
// and the API routes.
func NewApp(deps Deps, accessLog bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          ErrorHandler,
	})

	if accessLog {
		app.Use(logger.New())
	}
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": serviceName,
			"source":  deps.Weather.SampleSourceName(),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	RegisterRoutes(app, deps)
	return app
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
// Domain errors are mapped to their HTTP status.
func ErrorHandler(c *fiber.Ctx, err error) error {
	err = mapError(err)

	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

func mapError(err error) error {
	var (
		fe       *fiber.Error
		invalidP *profile.InvalidProfileError
		invalidR *record.ValidationError
	)
	switch {
	case errors.As(err, &fe):
		return fe
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, profile.ErrNotFound),
		errors.Is(err, community.ErrPostNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.As(err, &invalidP),
		errors.As(err, &invalidR),
		errors.Is(err, record.ErrEmptyRecord),
		errors.Is(err, onboarding.ErrNameRequired),
		errors.Is(err, weather.ErrInvalidDays):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return err
}
