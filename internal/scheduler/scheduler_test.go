package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/bike-rental-dashboard/internal/rental/rentaltest"
	"github.com/i474232898/bike-rental-dashboard/internal/store"
)

type fakeSource struct {
	raw []byte
	err error
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Fetch(context.Context) ([]byte, error) { return f.raw, f.err }

type countingRecorder struct {
	drift int
}

func (c *countingRecorder) RecordIntegrityDrift() { c.drift++ }

func newLoadedStore(t *testing.T) *store.MemoryStore {
	s := store.NewMemoryStore()
	s.Put(rentaltest.Table(t))
	return s
}

func TestCheckUnchanged(t *testing.T) {
	rec := &countingRecorder{}
	s := New(&fakeSource{raw: []byte(rentaltest.CSV)}, newLoadedStore(t), 0, rec)

	ok, err := s.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, rec.drift)
}

func TestCheckDetectsDriftWithoutReloading(t *testing.T) {
	rec := &countingRecorder{}
	memStore := newLoadedStore(t)
	before, err := memStore.Table()
	require.NoError(t, err)

	s := New(&fakeSource{raw: []byte(rentaltest.CSV + "2013-01-01 00:00:00,1,0,0,1,9,9,50,5,1,1,2\n")}, memStore, 0, rec)

	ok, err := s.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, rec.drift)

	after, err := memStore.Table()
	require.NoError(t, err)
	assert.Same(t, before, after)
}

func TestCheckErrors(t *testing.T) {
	fetchErr := errors.New("unreachable")
	s := New(&fakeSource{err: fetchErr}, newLoadedStore(t), 0, nil)

	_, err := s.Check(context.Background())
	assert.ErrorIs(t, err, fetchErr)

	s = New(&fakeSource{}, store.NewMemoryStore(), 0, nil)
	_, err = s.Check(context.Background())
	assert.ErrorIs(t, err, store.ErrNotLoaded)
}

func TestStartDisabledAndStop(t *testing.T) {
	s := New(&fakeSource{}, store.NewMemoryStore(), 0, nil)
	require.NoError(t, s.Start())
	s.Stop()
}

func TestStartKeepsFractionalInterval(t *testing.T) {
	s := New(&fakeSource{raw: []byte(rentaltest.CSV)}, newLoadedStore(t), 1500*time.Millisecond, nil)
	require.NoError(t, s.Start())
	t.Cleanup(s.Stop)

	jobs := s.scheduler.Jobs()
	require.Len(t, jobs, 1)
	assert.WithinDuration(t, time.Now().Add(1500*time.Millisecond), jobs[0].NextRun(), 400*time.Millisecond)
}
