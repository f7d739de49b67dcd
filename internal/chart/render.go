// Package chart renders dashboard aggregations as PNG images.
package chart

import (
	"errors"
	"fmt"
	"io"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/i474232898/bike-rental-dashboard/internal/rental"
)

const (
	width  = 900
	height = 420
)

// ErrTooFewPoints is returned when a chart would have a zero-width x axis.
var ErrTooFewPoints = errors.New("not enough points to draw a chart")

var seriesColors = map[rental.ClientType]drawing.Color{
	rental.ClientCasual:     gochart.ColorOrange,
	rental.ClientRegistered: gochart.ColorBlue,
}

// MonthlyPNG draws the diverging monthly chart: registered means above zero,
// casual means below. A non-zero highlight marks the selected month.
func MonthlyPNG(w io.Writer, means []rental.MonthlyMean, highlight time.Time) error {
	if len(means) == 0 {
		return rental.ErrEmptyResult
	}
	if len(means) <= len(rental.ClientTypes) {
		return ErrTooFewPoints
	}

	xs := make(map[rental.ClientType][]time.Time)
	ys := make(map[rental.ClientType][]float64)
	for _, m := range means {
		xs[m.ClientType] = append(xs[m.ClientType], m.MonthStart)
		ys[m.ClientType] = append(ys[m.ClientType], float64(m.SignedValue))
	}

	var series []gochart.Series
	for _, c := range rental.ClientTypes {
		color := seriesColors[c]
		series = append(series, gochart.TimeSeries{
			Name:    string(c),
			XValues: xs[c],
			YValues: ys[c],
			Style: gochart.Style{
				StrokeColor: color,
				FillColor:   color.WithAlpha(96),
				StrokeWidth: 1.5,
			},
		})
	}

	if !highlight.IsZero() {
		series = append(series, gochart.TimeSeries{
			Name:    "selected",
			XValues: []time.Time{highlight, highlight},
			YValues: []float64{minValue(means), maxValue(means)},
			Style: gochart.Style{
				StrokeColor: gochart.ColorRed,
				StrokeWidth: 2,
			},
		})
	}

	graph := gochart.Chart{
		Title:  "Average bike rental over two years",
		Width:  width,
		Height: height,
		XAxis: gochart.XAxis{
			Name:           "Month and year",
			ValueFormatter: gochart.TimeValueFormatterWithFormat("Jan 2006"),
		},
		YAxis: gochart.YAxis{
			Name: "Number of bikes rent",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					if f < 0 {
						f = -f
					}
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: series,
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}

	return graph.Render(gochart.PNG, w)
}

// HourlyPNG draws one line per client type across the hours of the day.
func HourlyPNG(w io.Writer, means []rental.HourlyMean, title string) error {
	if len(means) == 0 {
		return rental.ErrEmptyResult
	}

	xs := make(map[rental.ClientType][]float64)
	ys := make(map[rental.ClientType][]float64)
	for _, m := range means {
		xs[m.ClientType] = append(xs[m.ClientType], float64(m.Hour))
		ys[m.ClientType] = append(ys[m.ClientType], float64(m.Value))
	}

	var series []gochart.Series
	for _, c := range rental.ClientTypes {
		series = append(series, gochart.ContinuousSeries{
			Name:    string(c),
			XValues: xs[c],
			YValues: ys[c],
			Style: gochart.Style{
				StrokeColor: seriesColors[c],
				StrokeWidth: 2,
			},
		})
	}

	graph := gochart.Chart{
		Title:  title,
		Width:  width,
		Height: height,
		XAxis: gochart.XAxis{
			Name:  "Hour of day",
			Range: &gochart.ContinuousRange{Min: 0, Max: 23},
		},
		YAxis: gochart.YAxis{
			Name: "Number of bikes rent",
		},
		Series: series,
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}

	return graph.Render(gochart.PNG, w)
}

func minValue(means []rental.MonthlyMean) float64 {
	v := 0
	for _, m := range means {
		if m.SignedValue < v {
			v = m.SignedValue
		}
	}
	return float64(v)
}

func maxValue(means []rental.MonthlyMean) float64 {
	v := 0
	for _, m := range means {
		if m.SignedValue > v {
			v = m.SignedValue
		}
	}
	return float64(v)
}
