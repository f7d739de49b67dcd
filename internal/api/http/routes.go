package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/bike-rental-dashboard/internal/chart"
	"github.com/i474232898/bike-rental-dashboard/internal/export"
	"github.com/i474232898/bike-rental-dashboard/internal/rental"
	"github.com/i474232898/bike-rental-dashboard/internal/store"
)

var validate = validator.New()

// NoMatchMessage is shown when a filter combination matches no rows.
const NoMatchMessage = "such conditions don't coexist: no matching data, change the date, the weather or the day type"

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *rental.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/rentals/monthly", func(c *fiber.Ctx) error {
		criteria, err := parseCriteria(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		means, err := service.MonthlyMeans(c.UserContext(), criteria)
		if err != nil {
			return toFiberError(c, err, "failed to compute monthly means")
		}

		return c.JSON(fiber.Map{
			"criteria": criteria,
			"months":   means,
		})
	})

	v1.Get("/rentals/hourly", func(c *fiber.Ctx) error {
		criteria, err := parseCriteria(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		means, err := service.HourlyMeans(c.UserContext(), criteria)
		if err != nil {
			return toFiberError(c, err, "failed to compute hourly means")
		}

		return c.JSON(fiber.Map{
			"criteria": criteria,
			"title":    hourlyTitle(criteria),
			"hours":    means,
		})
	})

	v1.Get("/rentals/summary", func(c *fiber.Ctx) error {
		criteria, err := parseCriteria(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		summary, err := service.Summarize(c.UserContext(), criteria)
		if err != nil {
			return toFiberError(c, err, "failed to summarize rentals")
		}

		return c.JSON(fiber.Map{
			"criteria": criteria,
			"summary":  summary,
			"weather":  labelFor(summary.Weather),
		})
	})

	v1.Get("/rentals/overview", func(c *fiber.Ctx) error {
		criteria, err := parseCriteria(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		overview, err := service.Overview(c.UserContext(), criteria)
		if err != nil {
			return toFiberError(c, err, "failed to compute overview")
		}

		return c.JSON(fiber.Map{
			"criteria": criteria,
			"overview": overview,
		})
	})

	v1.Get("/rentals/bounds", func(c *fiber.Ctx) error {
		bounds, err := service.Bounds(c.UserContext())
		if err != nil {
			return toFiberError(c, err, "failed to read dataset bounds")
		}
		return c.JSON(bounds)
	})

	v1.Get("/rentals/calendar", func(c *fiber.Ctx) error {
		months, err := service.Calendar(c.UserContext())
		if err != nil {
			return toFiberError(c, err, "failed to list months")
		}
		return c.JSON(fiber.Map{
			"months":  months,
			"weather": weatherLabels(),
		})
	})

	v1.Get("/export", func(c *fiber.Ctx) error {
		format, err := export.Normalize(c.Query("format"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		table, err := service.Table(c.UserContext())
		if err != nil {
			return toFiberError(c, err, "failed to export dataset")
		}

		var buf bytes.Buffer
		if err := export.Write(&buf, table, format); err != nil {
			return toFiberError(c, err, "failed to export dataset")
		}

		// Attachment guesses a type from the extension; override it after.
		c.Attachment(export.FileName(format))
		c.Set(fiber.HeaderContentType, export.ContentType(format))
		return c.Send(buf.Bytes())
	})

	v1.Get("/charts/monthly.png", func(c *fiber.Ctx) error {
		criteria, err := parseCriteria(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		highlight, err := parseHighlight(c.Query("highlight"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		means, err := service.MonthlyMeans(c.UserContext(), criteria)
		if err != nil {
			return toFiberError(c, err, "failed to compute monthly means")
		}

		var buf bytes.Buffer
		if err := chart.MonthlyPNG(&buf, means, highlight); err != nil {
			return toFiberError(c, err, "failed to render chart")
		}
		c.Set(fiber.HeaderContentType, "image/png")
		return c.Send(buf.Bytes())
	})

	v1.Get("/charts/hourly.png", func(c *fiber.Ctx) error {
		criteria, err := parseCriteria(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		means, err := service.HourlyMeans(c.UserContext(), criteria)
		if err != nil {
			return toFiberError(c, err, "failed to compute hourly means")
		}

		var buf bytes.Buffer
		if err := chart.HourlyPNG(&buf, means, hourlyTitle(criteria)); err != nil {
			return toFiberError(c, err, "failed to render chart")
		}
		c.Set(fiber.HeaderContentType, "image/png")
		return c.Send(buf.Bytes())
	})
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// toFiberError maps domain errors onto HTTP status codes. Unexpected errors
// are logged and reported with the generic fallback message.
func toFiberError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, rental.ErrEmptyResult):
		return fiber.NewError(fiber.StatusNotFound, NoMatchMessage)
	case errors.Is(err, rental.ErrNoData), errors.Is(err, chart.ErrTooFewPoints):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, export.ErrUnknownFormat):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotLoaded):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	}

	slog.ErrorContext(c.UserContext(), fallback,
		slog.String("path", c.Path()),
		slog.String("error", err.Error()))
	return fiber.NewError(fiber.StatusInternalServerError, fallback)
}

// parseHighlight reads a YYYY-MM month selection. Empty means none.
func parseHighlight(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid highlight %q: use YYYY-MM", s)
	}
	return t, nil
}

func hourlyTitle(c rental.Criteria) string {
	title := "Average number of bikes rent hourly"
	if c.Month != nil && c.Year != nil {
		title += " in " + rental.MonthLabel(time.Date(*c.Year, *c.Month, 1, 0, 0, 0, 0, time.UTC))
	}
	if c.Weather != nil || c.Temperature != nil || c.Humidity != nil || c.WindSpeed != nil ||
		c.IncludeHoliday != nil || c.IncludeNonHoliday != nil || c.IncludeWeekend != nil || c.IncludeWeekday != nil {
		title += " with set weather and day type"
	}
	return title
}
