package httpapi

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/i474232898/pressure-headache/internal/community"
	"github.com/i474232898/pressure-headache/internal/logger"
	"github.com/i474232898/pressure-headache/internal/profile"
	"github.com/i474232898/pressure-headache/internal/record"
	"github.com/i474232898/pressure-headache/internal/store"
	"github.com/i474232898/pressure-headache/internal/weather"
)

var validate = validator.New()

const defaultChartDays = 7

// Deps are the services the API serves.
type Deps struct {
	Weather   *weather.Service
	Profiles  *profile.Service
	Records   *record.Service
	Community *community.Feed

	// DefaultLocation is used when a forecast or chart request names no city.
	DefaultLocation weather.Location
	Log             *zap.Logger
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	deps.Log = logger.OrNop(deps.Log)

	v1 := app.Group("/api/v1")
	registerWeatherRoutes(v1, deps)
	registerProfileRoutes(v1, deps)
	registerCommunityRoutes(v1, deps)
}

func registerWeatherRoutes(r fiber.Router, deps Deps) {
	service := deps.Weather

	r.Get("/weather/current", func(c *fiber.Ctx) error {
		locReq, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc := locReq.toLocation()
		snapshot, err := service.GetLatest(loc)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather data for requested location")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
		}

		return c.JSON(snapshot)
	})

	r.Get("/weather/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc := req.Location.toLocation()
		snapshots, err := service.GetRange(loc, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather history")
		}

		return c.JSON(fiber.Map{
			"location":  loc,
			"from":      req.From,
			"to":        req.To,
			"snapshots": snapshots,
		})
	})

	r.Get("/weather/forecast", func(c *fiber.Ctx) error {
		loc, err := optionalLocation(c, deps.DefaultLocation)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		// Resolve the profile first so an unknown id fails before any upstream call.
		var subject *profile.UserProfile
		if id := c.Query("profileId"); id != "" {
			p, err := deps.Profiles.Get(c.UserContext(), id)
			if err != nil {
				return err
			}
			subject = &p
		}

		days, err := service.GetForecast(c.UserContext(), loc)
		if err != nil {
			deps.Log.Warn("forecast failed", zap.String("location", loc.Key()), zap.Error(err))
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch pressure forecast")
		}

		resp := fiber.Map{
			"location": loc,
			"source":   service.SampleSourceName(),
			"days":     days,
		}
		if subject != nil {
			risk := weather.PersonalizedRisk(days, subject.PressureSensitivity)
			resp["profileId"] = subject.ID
			resp["risk"] = risk
			resp["advice"] = weather.Advice(risk, subject.PressureSensitivity, subject.CommonSymptoms)
		}
		return c.JSON(resp)
	})

	r.Get("/weather/chart", func(c *fiber.Ctx) error {
		loc, err := optionalLocation(c, deps.DefaultLocation)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		q := chartQuery{Days: defaultChartDays}
		if err := c.QueryParser(&q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "days must be an integer")
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "days must be between 1 and 30")
		}

		points, err := service.History(c.UserContext(), loc, q.Days)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no pressure history for requested location")
			}
			return err
		}

		return c.JSON(fiber.Map{
			"location": loc,
			"days":     q.Days,
			"points":   points,
			"summary":  weather.SummarizePressure(points),
		})
	})
}

// locationQuery holds query parameters for identifying a location.
type locationQuery struct {
	City    string `validate:"required"`
	Country string `validate:"required"`
}

func (l locationQuery) toLocation() weather.Location {
	return weather.Location{
		City:    l.City,
		Country: l.Country,
	}
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	var q locationQuery

	q.City = strings.TrimSpace(c.Query("city"))
	q.Country = strings.TrimSpace(c.Query("country"))

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// optionalLocation reads city and country, falling back to def when both
// are absent. Giving only one of them is an error.
func optionalLocation(c *fiber.Ctx, def weather.Location) (weather.Location, error) {
	if c.Query("city") == "" && c.Query("country") == "" {
		return def, nil
	}
	q, err := parseLocationQuery(c)
	if err != nil {
		return weather.Location{}, err
	}
	return q.toLocation(), nil
}

type chartQuery struct {
	Days int `query:"days" validate:"min=1,max=30"`
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Location locationQuery
	From     time.Time `validate:"required"`
	To       time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	loc, err := parseLocationQuery(c)
	if err != nil {
		return err
	}
	h.Location = loc

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
