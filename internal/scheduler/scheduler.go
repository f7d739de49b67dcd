package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/bike-rental-dashboard/internal/rental"
)

// DriftRecorder is notified when the source no longer matches the loaded table.
type DriftRecorder interface {
	RecordIntegrityDrift()
}

// Scheduler periodically checks that the dataset source still matches the
// table loaded at startup. It never reloads: the table stays as loaded for
// the life of the process.
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    rental.Source
	store     rental.TableStore
	recorder  DriftRecorder
	interval  time.Duration
}

// New creates a new Scheduler. recorder may be nil.
func New(source rental.Source, store rental.TableStore, interval time.Duration, recorder DriftRecorder) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		source:    source,
		store:     store,
		recorder:  recorder,
		interval:  interval,
	}
}

// Start schedules the integrity job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		slog.Info("scheduler: integrity check disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := s.Check(ctx); err != nil {
			slog.Error("scheduler: integrity check failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Check fetches the source once and reports whether it still matches the
// loaded table.
func (s *Scheduler) Check(ctx context.Context) (bool, error) {
	table, err := s.store.Table()
	if err != nil {
		return false, err
	}
	raw, err := s.source.Fetch(ctx)
	if err != nil {
		return false, err
	}

	current := rental.Checksum(raw)
	if current == table.Checksum {
		slog.Debug("scheduler: dataset unchanged", slog.String("source", s.source.Name()))
		return true, nil
	}

	slog.Warn("scheduler: dataset source differs from loaded table; restart to pick up changes",
		slog.String("source", s.source.Name()),
		slog.String("loaded_checksum", table.Checksum),
		slog.String("source_checksum", current))
	if s.recorder != nil {
		s.recorder.RecordIntegrityDrift()
	}
	return false, nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
