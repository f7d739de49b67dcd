package rental

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RangePadding widens each numeric band so that integer bounds taken from
// quartiles act as fuzzy thresholds.
const RangePadding = 0.5

// Range is an inclusive numeric band, matched as [Low-0.5, High+0.5].
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether v lies inside the padded band.
func (r Range) Contains(v float64) bool {
	return v >= r.Low-RangePadding && v <= r.High+RangePadding
}

// Criteria selects rows of the dataset. A nil field places no constraint on
// its dimension.
type Criteria struct {
	Month *time.Month `json:"month,omitempty"`
	Year  *int        `json:"year,omitempty"`

	IncludeHoliday    *bool `json:"include_holiday,omitempty"`
	IncludeNonHoliday *bool `json:"include_non_holiday,omitempty"`
	IncludeWeekend    *bool `json:"include_weekend,omitempty"`
	IncludeWeekday    *bool `json:"include_weekday,omitempty"`

	Weather *Weather `json:"weather,omitempty"`

	Temperature *Range `json:"temperature,omitempty"`
	Humidity    *Range `json:"humidity,omitempty"`
	WindSpeed   *Range `json:"windspeed,omitempty"`
}

// ForMonth returns criteria restricted to a single month of a year.
func ForMonth(year int, month time.Month) Criteria {
	return Criteria{Month: &month, Year: &year}
}

// Active reports whether any constraint is set.
func (c Criteria) Active() bool {
	return c.Month != nil || c.Year != nil ||
		c.IncludeHoliday != nil || c.IncludeNonHoliday != nil ||
		c.IncludeWeekend != nil || c.IncludeWeekday != nil ||
		c.Weather != nil ||
		c.Temperature != nil || c.Humidity != nil || c.WindSpeed != nil
}

// ParseMonth accepts an English month name (full or abbreviated, any case)
// or a number from 1 to 12.
func ParseMonth(s string) (time.Month, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("month %d out of range 1-12", n)
		}
		return time.Month(n), nil
	}

	lower := strings.ToLower(s)
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if lower == name || (len(lower) == 3 && strings.HasPrefix(name, lower)) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", s)
}
