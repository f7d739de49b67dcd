package rental

import (
	"context"
	"fmt"
	"time"
)

// Source abstracts where the dataset file comes from (local disk, HTTP).
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}

// TableStore is the contract the in-memory table store must satisfy.
type TableStore interface {
	Put(table *Table)
	Table() (*Table, error)
}

// Recorder receives per-query measurements. A nil Recorder is allowed.
type Recorder interface {
	RecordQuery(kind, outcome string, rows int, elapsed time.Duration)
}

// LoadFrom fetches the dataset from src and parses it. Any failure is a
// malformed-input error.
func LoadFrom(ctx context.Context, src Source) (*Table, error) {
	raw, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch from %s: %v", ErrMalformedInput, src.Name(), err)
	}
	return Load(raw)
}
