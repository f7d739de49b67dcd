package httpapi

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/bike-rental-dashboard/internal/common"
	"github.com/i474232898/bike-rental-dashboard/internal/rental"
)

// rangeQuery holds one numeric band taken from a min/max query pair.
type rangeQuery struct {
	Min float64
	Max float64 `validate:"gtefield=Min"`
}

func (r *rangeQuery) toRange() *rental.Range {
	if r == nil {
		return nil
	}
	return &rental.Range{Low: r.Min, High: r.Max}
}

// criteriaQuery holds the filter query parameters shared by the rental endpoints.
type criteriaQuery struct {
	Month      *time.Month
	Year       *int `validate:"omitempty,gte=1"`
	Holiday    *bool
	NonHoliday *bool
	Weekend    *bool
	Weekday    *bool
	Weather    *int `validate:"omitempty,min=1,max=4"`

	Temperature *rangeQuery
	Humidity    *rangeQuery
	WindSpeed   *rangeQuery
}

func (q criteriaQuery) toCriteria() rental.Criteria {
	var c rental.Criteria
	if q.Month != nil && q.Year != nil {
		c = rental.ForMonth(*q.Year, *q.Month)
	} else {
		c.Month, c.Year = q.Month, q.Year
	}

	c.IncludeHoliday = q.Holiday
	c.IncludeNonHoliday = q.NonHoliday
	c.IncludeWeekend = q.Weekend
	c.IncludeWeekday = q.Weekday
	c.Temperature = q.Temperature.toRange()
	c.Humidity = q.Humidity.toRange()
	c.WindSpeed = q.WindSpeed.toRange()
	if q.Weather != nil {
		w := rental.Weather(*q.Weather)
		c.Weather = &w
	}
	return c
}

func (q *criteriaQuery) bind(c *fiber.Ctx) error {
	if v := c.Query("month"); v != "" {
		m, err := rental.ParseMonth(v)
		if err != nil {
			return err
		}
		q.Month = &m
	}

	var err error
	if q.Year, err = queryInt(c, "year"); err != nil {
		return err
	}
	if q.Weather, err = queryInt(c, "weather"); err != nil {
		return err
	}

	flags := []struct {
		name string
		dst  **bool
	}{
		{"holiday", &q.Holiday},
		{"non_holiday", &q.NonHoliday},
		{"weekend", &q.Weekend},
		{"weekday", &q.Weekday},
	}
	for _, f := range flags {
		if *f.dst, err = queryBool(c, f.name); err != nil {
			return err
		}
	}

	ranges := []struct {
		prefix string
		dst    **rangeQuery
	}{
		{"temp", &q.Temperature},
		{"humidity", &q.Humidity},
		{"windspeed", &q.WindSpeed},
	}
	for _, r := range ranges {
		if *r.dst, err = queryRange(c, r.prefix); err != nil {
			return err
		}
	}
	return nil
}

// parseCriteria binds and validates the filter query parameters.
func parseCriteria(c *fiber.Ctx) (rental.Criteria, error) {
	var q criteriaQuery
	if err := q.bind(c); err != nil {
		return rental.Criteria{}, err
	}
	if err := validate.Struct(q); err != nil {
		return rental.Criteria{}, err
	}
	return q.toCriteria(), nil
}

func queryInt(c *fiber.Ctx, name string) (*int, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: must be an integer", name, v)
	}
	return &n, nil
}

func queryBool(c *fiber.Ctx, name string) (*bool, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	b, err := common.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return &b, nil
}

func queryFloat(c *fiber.Ctx, name string) (*float64, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: must be a number", name, v)
	}
	return &f, nil
}

// queryRange reads <prefix>_min and <prefix>_max. Both or neither must be set.
func queryRange(c *fiber.Ctx, prefix string) (*rangeQuery, error) {
	low, err := queryFloat(c, prefix+"_min")
	if err != nil {
		return nil, err
	}
	high, err := queryFloat(c, prefix+"_max")
	if err != nil {
		return nil, err
	}
	switch {
	case low == nil && high == nil:
		return nil, nil
	case low == nil || high == nil:
		return nil, fmt.Errorf("%s_min and %s_max must be given together", prefix, prefix)
	}
	return &rangeQuery{Min: *low, Max: *high}, nil
}
