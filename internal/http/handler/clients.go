package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"mortgauge/internal/service"
)

func registerClientRoutes(r fiber.Router, h Handlers) {
	r.Get("/clients", func(c *fiber.Ctx) error {
		lq, err := parseListQuery(c, h.HTTP.DefaultPageSize, h.HTTP.MaxPageSize, "status")
		if err != nil {
			return respondReadError(c, err)
		}
		res, err := h.Clients.List(c.UserContext(), principalFromCtx(c), lq)
		if err != nil {
			return respondReadError(c, err)
		}
		return c.JSON(res)
	})

	// Dedicated search endpoint: q matches name, email, and phone.
	r.Get("/clients/search", func(c *fiber.Ctx) error {
		lq, err := parseListQuery(c, h.HTTP.DefaultPageSize, h.HTTP.MaxPageSize, "q")
		if err != nil {
			return respondReadError(c, err)
		}
		lq.Search = lq.Filters["q"]
		delete(lq.Filters, "q")
		res, err := h.Clients.List(c.UserContext(), principalFromCtx(c), lq)
		if err != nil {
			return respondReadError(c, err)
		}
		return c.JSON(res)
	})

	r.Post("/clients", func(c *fiber.Ctx) error {
		var p service.CreateClientParams
		if err := c.BodyParser(&p); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		client, err := h.Clients.Create(c.UserContext(), principalFromCtx(c), p)
		if err != nil {
			return respondWriteError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(client)
	})

	r.Get("/clients/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		client, err := h.Clients.Get(c.UserContext(), principalFromCtx(c), id)
		if err != nil {
			return respondReadError(c, err)
		}
		return c.JSON(client)
	})

	update := func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var p service.UpdateClientParams
		if err := c.BodyParser(&p); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		client, err := h.Clients.Update(c.UserContext(), principalFromCtx(c), id, p)
		if err != nil {
			return respondWriteError(c, err)
		}
		return c.JSON(client)
	}
	r.Put("/clients/:id", update)
	r.Patch("/clients/:id", update)

	r.Delete("/clients/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := h.Clients.Delete(c.UserContext(), principalFromCtx(c), id); err != nil {
			return respondWriteError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	// Nested collections: the client id in the path is authoritative.
	r.Get("/clients/:id/applications", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		principal := principalFromCtx(c)
		if _, err := h.Clients.Get(c.UserContext(), principal, id); err != nil {
			return respondReadError(c, err)
		}
		lq, err := parseListQuery(c, h.HTTP.DefaultPageSize, h.HTTP.MaxPageSize, "status")
		if err != nil {
			return respondReadError(c, err)
		}
		lq.Filters["client_id"] = id
		res, err := h.Applications.List(c.UserContext(), principal, lq)
		if err != nil {
			return respondReadError(c, err)
		}
		return c.JSON(res)
	})

	r.Post("/clients/:id/applications", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var p service.CreateApplicationParams
		if err := c.BodyParser(&p); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		p.ClientID = id
		app, err := h.Applications.Create(c.UserContext(), principalFromCtx(c), p)
		if err != nil {
			return respondWriteError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(app)
	})

	r.Get("/clients/:id/documents", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		principal := principalFromCtx(c)
		if _, err := h.Clients.Get(c.UserContext(), principal, id); err != nil {
			return respondReadError(c, err)
		}
		lq, err := parseListQuery(c, h.HTTP.DefaultPageSize, h.HTTP.MaxPageSize, "status", "document_type", "application_id")
		if err != nil {
			return respondReadError(c, err)
		}
		lq.Filters["client_id"] = id
		res, err := h.Documents.List(c.UserContext(), principal, lq)
		if err != nil {
			return respondReadError(c, err)
		}
		return c.JSON(res)
	})

	r.Post("/clients/:id/documents", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		return uploadDocument(c, h, id)
	})
}
