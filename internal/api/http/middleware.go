package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/bike-rental-dashboard/internal/logging"
)

// HTTPRecorder counts served requests.
type HTTPRecorder interface {
	RecordHTTPRequest(route string, code int)
}

// RequestContext copies the id set by the requestid middleware into the
// user context so that slog records carry it.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := c.Locals("requestid").(string); ok && id != "" {
			c.SetUserContext(logging.WithRequestID(c.UserContext(), id))
		}
		return c.Next()
	}
}

// Metrics counts every request by matched route pattern and status class.
func Metrics(recorder HTTPRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		code := c.Response().StatusCode()
		if err != nil {
			code = fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
		}
		recorder.RecordHTTPRequest(c.Route().Path, code)
		return err
	}
}
