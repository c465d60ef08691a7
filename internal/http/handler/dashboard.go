package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func registerDashboardRoutes(r fiber.Router, h Handlers) {
	r.Get("/dashboard/summary", func(c *fiber.Ctx) error {
		sum, err := h.Dashboard.Summary(c.UserContext(), principalFromCtx(c))
		if err != nil {
			return respondReadError(c, err)
		}
		return c.JSON(sum)
	})

	r.Get("/dashboard/activity", func(c *fiber.Ctx) error {
		limit := 0
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "limit must be a non-negative integer")
			}
			limit = n
		}
		act, err := h.Dashboard.Activity(c.UserContext(), principalFromCtx(c), limit)
		if err != nil {
			return respondReadError(c, err)
		}
		return c.JSON(act)
	})

	r.Get("/dashboard/reminders", func(c *fiber.Ctx) error {
		items, err := h.Dashboard.UpcomingReminders(c.UserContext(), principalFromCtx(c))
		if err != nil {
			return respondReadError(c, err)
		}
		return c.JSON(fiber.Map{"data": items})
	})

	r.Get("/dashboard/tasks", func(c *fiber.Ctx) error {
		items, err := h.Dashboard.OpenTasks(c.UserContext(), principalFromCtx(c))
		if err != nil {
			return respondReadError(c, err)
		}
		return c.JSON(fiber.Map{"data": items})
	})
}
