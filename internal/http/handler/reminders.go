package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"mortgauge/internal/service"
)

func registerReminderRoutes(r fiber.Router, h Handlers) {
	r.Get("/reminders", func(c *fiber.Ctx) error {
		lq, err := parseListQuery(c, h.HTTP.DefaultPageSize, h.HTTP.MaxPageSize,
			"reminder_type", "is_completed", "client_id")
		if err != nil {
			return respondReadError(c, err)
		}
		res, err := h.Reminders.List(c.UserContext(), principalFromCtx(c), lq)
		if err != nil {
			return respondReadError(c, err)
		}
		return c.JSON(res)
	})

	r.Post("/reminders", func(c *fiber.Ctx) error {
		var p service.CreateReminderParams
		if err := c.BodyParser(&p); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		rem, err := h.Reminders.Create(c.UserContext(), principalFromCtx(c), p)
		if err != nil {
			return respondWriteError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(rem)
	})

	r.Get("/reminders/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rem, err := h.Reminders.Get(c.UserContext(), principalFromCtx(c), id)
		if err != nil {
			return respondReadError(c, err)
		}
		return c.JSON(rem)
	})

	update := func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var p service.UpdateReminderParams
		if err := c.BodyParser(&p); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		rem, err := h.Reminders.Update(c.UserContext(), principalFromCtx(c), id, p)
		if err != nil {
			return respondWriteError(c, err)
		}
		return c.JSON(rem)
	}
	r.Put("/reminders/:id", update)
	r.Patch("/reminders/:id", update)

	r.Delete("/reminders/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := h.Reminders.Delete(c.UserContext(), principalFromCtx(c), id); err != nil {
			return respondWriteError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
