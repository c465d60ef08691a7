package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"mortgauge/internal/apperr"
	"mortgauge/internal/http/middleware"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// principalFromCtx extracts the broker id stored by middleware.Principal.
func principalFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.PrincipalLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "VALIDATION_ERROR", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// respondReadError maps a service error on a read path. Ownership failures are
// masked as absence so foreign record ids cannot be probed.
func respondReadError(c *fiber.Ctx, err error) error {
	return respondError(c, err, false)
}

// respondWriteError maps a service error on a write path. Ownership failures
// surface as forbidden.
func respondWriteError(c *fiber.Ctx, err error) error {
	return respondError(c, err, true)
}

func respondError(c *fiber.Ctx, err error, write bool) error {
	var e *apperr.Error
	if errors.As(err, &e) {
		switch e.Kind {
		case apperr.KindValidation:
			msg := e.Message
			if e.Field != "" {
				msg = e.Field + " " + e.Message
			}
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", msg)
		case apperr.KindNotFound:
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", e.Message)
		case apperr.KindAuthorization:
			if write {
				return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "operation not permitted")
			}
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
		case apperr.KindTransient:
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
	}
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
