package rental

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/i474232898/bike-rental-dashboard/internal/rental")

// Service runs the filter and aggregation pipeline against the loaded table.
// Every call works on a fresh projection, so concurrent requests share only
// the read-only base table.
type Service struct {
	store    TableStore
	recorder Recorder
}

// NewService creates a new Service. recorder may be nil.
func NewService(store TableStore, recorder Recorder) *Service {
	return &Service{
		store:    store,
		recorder: recorder,
	}
}

// Table returns the loaded base table.
func (s *Service) Table(ctx context.Context) (*Table, error) {
	return s.store.Table()
}

// Bounds returns the dataset-wide extremes of the numeric weather columns.
func (s *Service) Bounds(ctx context.Context) (Bounds, error) {
	table, err := s.store.Table()
	if err != nil {
		return Bounds{}, err
	}
	return table.Bounds, nil
}

// Calendar lists the month buckets available in the dataset.
func (s *Service) Calendar(ctx context.Context) ([]MonthBucket, error) {
	table, err := s.store.Table()
	if err != nil {
		return nil, err
	}
	return Calendar(table.Records), nil
}

// Filter returns the rows matching c, or ErrEmptyResult when none do.
func (s *Service) Filter(ctx context.Context, c Criteria) ([]Record, error) {
	var rows []Record
	err := s.run(ctx, "filter", c, func(records []Record) (int, error) {
		rows = records
		return len(rows), nil
	})
	return rows, err
}

// MonthlyMeans filters by c and returns the per-month client means.
func (s *Service) MonthlyMeans(ctx context.Context, c Criteria) ([]MonthlyMean, error) {
	var out []MonthlyMean
	err := s.run(ctx, "monthly", c, func(records []Record) (int, error) {
		out = MonthlyMeans(records)
		return len(records), nil
	})
	return out, err
}

// HourlyMeans filters by c and returns the per-hour client means.
func (s *Service) HourlyMeans(ctx context.Context, c Criteria) ([]HourlyMean, error) {
	var out []HourlyMean
	err := s.run(ctx, "hourly", c, func(records []Record) (int, error) {
		out = HourlyMeans(records)
		return len(records), nil
	})
	return out, err
}

// Summarize filters by c and returns the suggested filter defaults.
func (s *Service) Summarize(ctx context.Context, c Criteria) (Summary, error) {
	var out Summary
	err := s.run(ctx, "summary", c, func(records []Record) (int, error) {
		var err error
		out, err = Summarize(records)
		return len(records), err
	})
	return out, err
}

// Overview filters by c and returns the rental intensity of the subset.
func (s *Service) Overview(ctx context.Context, c Criteria) (Overview, error) {
	var out Overview
	err := s.run(ctx, "overview", c, func(records []Record) (int, error) {
		var err error
		out, err = OverviewOf(records)
		return len(records), err
	})
	return out, err
}

// run applies the filter and hands the subset to fn, taking care of tracing,
// logging and metrics. An empty subset short-circuits with ErrEmptyResult.
func (s *Service) run(ctx context.Context, kind string, c Criteria, fn func([]Record) (int, error)) error {
	ctx, span := tracer.Start(ctx, "rental."+kind, trace.WithAttributes(
		attribute.Bool("criteria.active", c.Active()),
	))
	defer span.End()

	start := time.Now()
	rows, err := s.execute(c, fn)
	elapsed := time.Since(start)

	outcome := outcomeOf(err)
	span.SetAttributes(attribute.Int("rows", rows), attribute.String("outcome", outcome))
	if err != nil && outcome == "error" {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.recorder != nil {
		s.recorder.RecordQuery(kind, outcome, rows, elapsed)
	}

	slog.DebugContext(ctx, "rental query",
		slog.String("kind", kind),
		slog.String("outcome", outcome),
		slog.Int("rows", rows),
		slog.Duration("elapsed", elapsed))

	return err
}

func (s *Service) execute(c Criteria, fn func([]Record) (int, error)) (int, error) {
	table, err := s.store.Table()
	if err != nil {
		return 0, err
	}
	subset := Filter(table.Records, c)
	if len(subset) == 0 {
		return 0, ErrEmptyResult
	}
	return fn(subset)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrEmptyResult):
		return "empty"
	case errors.Is(err, ErrNoData):
		return "no_data"
	default:
		return "error"
	}
}
