package httpapi

import "github.com/gofiber/fiber/v2"

func registerCommunityRoutes(r fiber.Router, deps Deps) {
	r.Get("/community/posts", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"posts": deps.Community.Posts()})
	})

	r.Post("/community/posts/:id/empathy", func(c *fiber.Ctx) error {
		post, err := deps.Community.ToggleEmpathy(c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(post)
	})
}
