package rental

import "errors"

var (
	// ErrMalformedInput is returned when the dataset cannot be read or does not match the schema.
	ErrMalformedInput = errors.New("malformed dataset")

	// ErrEmptyResult is returned when the filter criteria match no rows.
	ErrEmptyResult = errors.New("no rows match the criteria")

	// ErrNoData is returned when statistics are requested over an empty subset.
	ErrNoData = errors.New("no data to summarize")
)
