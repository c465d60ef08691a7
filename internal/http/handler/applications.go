package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"mortgauge/internal/service"
)

func registerApplicationRoutes(r fiber.Router, h Handlers) {
	r.Get("/applications", func(c *fiber.Ctx) error {
		lq, err := parseListQuery(c, h.HTTP.DefaultPageSize, h.HTTP.MaxPageSize, "status", "client_id")
		if err != nil {
			return respondReadError(c, err)
		}
		res, err := h.Applications.List(c.UserContext(), principalFromCtx(c), lq)
		if err != nil {
			return respondReadError(c, err)
		}
		return c.JSON(res)
	})

	r.Post("/applications", func(c *fiber.Ctx) error {
		var p service.CreateApplicationParams
		if err := c.BodyParser(&p); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		app, err := h.Applications.Create(c.UserContext(), principalFromCtx(c), p)
		if err != nil {
			return respondWriteError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(app)
	})

	r.Get("/applications/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		app, err := h.Applications.Get(c.UserContext(), principalFromCtx(c), id)
		if err != nil {
			return respondReadError(c, err)
		}
		return c.JSON(app)
	})

	update := func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var p service.UpdateApplicationParams
		if err := c.BodyParser(&p); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		app, err := h.Applications.Update(c.UserContext(), principalFromCtx(c), id, p)
		if err != nil {
			return respondWriteError(c, err)
		}
		return c.JSON(app)
	}
	r.Put("/applications/:id", update)
	r.Patch("/applications/:id", update)

	// Status transition shortcut used by the pipeline board.
	r.Patch("/applications/:id/status", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var body struct {
			Status   string `json:"status"`
			Progress *int   `json:"progress"`
		}
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		app, err := h.Applications.UpdateStatus(c.UserContext(), principalFromCtx(c), id, body.Status, body.Progress)
		if err != nil {
			return respondWriteError(c, err)
		}
		return c.JSON(app)
	})

	r.Delete("/applications/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := h.Applications.Delete(c.UserContext(), principalFromCtx(c), id); err != nil {
			return respondWriteError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
