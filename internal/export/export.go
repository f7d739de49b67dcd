package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/i474232898/bike-rental-dashboard/internal/rental"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

const (
	FormatCSV     = "csv"
	FormatXLSX    = "xlsx"
	FormatParquet = "parquet"
)

var contentTypes = map[string]string{
	FormatCSV:     "text/csv; charset=utf-8",
	FormatXLSX:    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatParquet: "application/x-parquet",
}

// Formats lists the supported export formats.
func Formats() []string {
	return []string{FormatCSV, FormatXLSX, FormatParquet}
}

// Normalize lower-cases format and defaults an empty value to csv.
func Normalize(format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return FormatCSV, nil
	}
	if _, ok := contentTypes[format]; !ok {
		return "", fmt.Errorf("%w: %q, use one of %s", ErrUnknownFormat, format, strings.Join(Formats(), ", "))
	}
	return format, nil
}

// ContentType returns the MIME type of a download in the given format.
func ContentType(format string) string {
	return contentTypes[format]
}

// FileName returns the attachment name of a download in the given format.
func FileName(format string) string {
	return "bike." + format
}

// Write exports the base table to w in the given format.
func Write(w io.Writer, table *rental.Table, format string) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, table)
	case FormatXLSX:
		return WriteXLSX(w, table)
	case FormatParquet:
		return WriteParquet(w, table)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
