package export

import (
	"fmt"
	"io"

	"github.com/i474232898/bike-rental-dashboard/internal/rental"
)

// WriteCSV writes the table exactly as it was loaded. No row is re-encoded,
// so loading the output again yields an identical table.
func WriteCSV(w io.Writer, table *rental.Table) error {
	if _, err := w.Write(table.Raw); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
