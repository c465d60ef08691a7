package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"mortgauge/internal/service"
)

func registerDocumentRoutes(r fiber.Router, h Handlers) {
	r.Get("/documents", func(c *fiber.Ctx) error {
		lq, err := parseListQuery(c, h.HTTP.DefaultPageSize, h.HTTP.MaxPageSize,
			"client_id", "application_id", "status", "document_type")
		if err != nil {
			return respondReadError(c, err)
		}
		res, err := h.Documents.List(c.UserContext(), principalFromCtx(c), lq)
		if err != nil {
			return respondReadError(c, err)
		}
		return c.JSON(res)
	})

	// Upload (multipart/form-data, field name: file). Metadata rides alongside
	// as form fields.
	r.Post("/documents", func(c *fiber.Ctx) error {
		return uploadDocument(c, h, c.FormValue("client_id"))
	})

	r.Get("/documents/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := h.Documents.Get(c.UserContext(), principalFromCtx(c), id)
		if err != nil {
			return respondReadError(c, err)
		}
		return c.JSON(doc)
	})

	// Download redirects to a time-limited presigned URL; the object store
	// serves the bytes directly.
	r.Get("/documents/:id/download", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		url, err := h.Documents.DownloadURL(c.UserContext(), principalFromCtx(c), id)
		if err != nil {
			return respondReadError(c, err)
		}
		return c.Redirect(url, fiber.StatusFound)
	})

	update := func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var p service.UpdateDocumentParams
		if err := c.BodyParser(&p); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		doc, err := h.Documents.Update(c.UserContext(), principalFromCtx(c), id, p)
		if err != nil {
			return respondWriteError(c, err)
		}
		return c.JSON(doc)
	}
	r.Put("/documents/:id", update)
	r.Patch("/documents/:id", update)

	r.Delete("/documents/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := h.Documents.Delete(c.UserContext(), principalFromCtx(c), id); err != nil {
			return respondWriteError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// uploadDocument handles the multipart upload shared by /documents and
// /clients/:id/documents.
func uploadDocument(c *fiber.Ctx, h Handlers, clientID string) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
	}

	f, err := fh.Open()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
	}
	defer f.Close()

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}

	p := service.UploadDocumentParams{
		ClientID:     clientID,
		Title:        c.FormValue("title"),
		DocumentType: c.FormValue("document_type"),
		Notes:        c.FormValue("notes"),
		Filename:     fh.Filename,
		ContentType:  ct,
		Size:         fh.Size,
	}
	if appID := c.FormValue("application_id"); appID != "" {
		p.ApplicationID = &appID
	}

	doc, err := h.Documents.Upload(c.UserContext(), principalFromCtx(c), f, p)
	if err != nil {
		return respondWriteError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}
