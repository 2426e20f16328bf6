package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/pressure-headache/internal/onboarding"
	"github.com/i474232898/pressure-headache/internal/record"
)

type matchesQuery struct {
	Limit *int `query:"limit" validate:"omitempty,min=1,max=50"`
}

func registerProfileRoutes(r fiber.Router, deps Deps) {
	profiles := r.Group("/profiles")

	// Registration is a completed onboarding questionnaire.
	profiles.Post("/", func(c *fiber.Ctx) error {
		var answers onboarding.Answers
		if err := c.BodyParser(&answers); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
		}

		p, err := onboarding.Run(answers)
		if err != nil {
			return err
		}
		p, err = deps.Profiles.Register(c.UserContext(), p)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	})

	profiles.Get("/:id", func(c *fiber.Ctx) error {
		p, err := deps.Profiles.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(p)
	})

	profiles.Get("/:id/matches", func(c *fiber.Ctx) error {
		var q matchesQuery
		if err := c.QueryParser(&q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "limit must be an integer")
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "limit must be between 1 and 50")
		}

		limit := 0
		if q.Limit != nil {
			limit = *q.Limit
		}
		matches, err := deps.Profiles.FindSimilar(c.UserContext(), c.Params("id"), limit)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"profileId": c.Params("id"),
			"matches":   matches,
		})
	})

	profiles.Post("/:id/records", func(c *fiber.Ctx) error {
		var in record.Record
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
		}

		rec, err := deps.Records.Add(c.UserContext(), c.Params("id"), in)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	})

	profiles.Get("/:id/records", func(c *fiber.Ctx) error {
		recs, err := deps.Records.List(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		if recs == nil {
			recs = []record.Record{}
		}
		return c.JSON(fiber.Map{"records": recs})
	})
}
