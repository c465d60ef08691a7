package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"mortgauge/internal/service"
)

func registerScriptRoutes(r fiber.Router, h Handlers) {
	r.Get("/interview-scripts", func(c *fiber.Ctx) error {
		lq, err := parseListQuery(c, h.HTTP.DefaultPageSize, h.HTTP.MaxPageSize,
			"script_type", "is_active")
		if err != nil {
			return respondReadError(c, err)
		}
		res, err := h.Scripts.List(c.UserContext(), principalFromCtx(c), lq)
		if err != nil {
			return respondReadError(c, err)
		}
		return c.JSON(res)
	})

	r.Post("/interview-scripts", func(c *fiber.Ctx) error {
		var p service.CreateScriptParams
		if err := c.BodyParser(&p); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		script, err := h.Scripts.Create(c.UserContext(), principalFromCtx(c), p)
		if err != nil {
			return respondWriteError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(script)
	})

	r.Get("/interview-scripts/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		script, err := h.Scripts.Get(c.UserContext(), principalFromCtx(c), id)
		if err != nil {
			return respondReadError(c, err)
		}
		return c.JSON(script)
	})

	updateScript := func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var p service.UpdateScriptParams
		if err := c.BodyParser(&p); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		script, err := h.Scripts.Update(c.UserContext(), principalFromCtx(c), id, p)
		if err != nil {
			return respondWriteError(c, err)
		}
		return c.JSON(script)
	}
	r.Put("/interview-scripts/:id", updateScript)
	r.Patch("/interview-scripts/:id", updateScript)

	r.Delete("/interview-scripts/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := h.Scripts.Delete(c.UserContext(), principalFromCtx(c), id); err != nil {
			return respondWriteError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/script-sections", func(c *fiber.Ctx) error {
		lq, err := parseListQuery(c, h.HTTP.DefaultPageSize, h.HTTP.MaxPageSize)
		if err != nil {
			return respondReadError(c, err)
		}
		res, err := h.Scripts.ListSections(c.UserContext(), lq)
		if err != nil {
			return respondReadError(c, err)
		}
		return c.JSON(res)
	})

	r.Post("/script-sections", func(c *fiber.Ctx) error {
		var p service.CreateSectionParams
		if err := c.BodyParser(&p); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		section, err := h.Scripts.CreateSection(c.UserContext(), p)
		if err != nil {
			return respondWriteError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(section)
	})

	r.Get("/script-sections/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		section, err := h.Scripts.GetSection(c.UserContext(), id)
		if err != nil {
			return respondReadError(c, err)
		}
		return c.JSON(section)
	})

	updateSection := func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var p service.UpdateSectionParams
		if err := c.BodyParser(&p); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		section, err := h.Scripts.UpdateSection(c.UserContext(), id, p)
		if err != nil {
			return respondWriteError(c, err)
		}
		return c.JSON(section)
	}
	r.Put("/script-sections/:id", updateSection)
	r.Patch("/script-sections/:id", updateSection)

	r.Delete("/script-sections/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := h.Scripts.DeleteSection(c.UserContext(), id); err != nil {
			return respondWriteError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
