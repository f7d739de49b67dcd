package rental

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the layout of the datetime column. Values carry no zone
// and are kept as naive wall-clock time.
const TimestampLayout = "2006-01-02 15:04:05"

// Columns is the fixed header of the dataset file.
var Columns = []string{
	"datetime", "season", "holiday", "workingday", "weather", "temp",
	"atemp", "humidity", "windspeed", "casual", "registered", "count",
}

// Load parses the raw dataset into an immutable Table. Derived calendar
// fields are computed here, once.
func Load(raw []byte) (*Table, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrMalformedInput)
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = len(Columns)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrMalformedInput, err)
	}
	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var (
		records []Record
		seen    = make(map[time.Time]struct{})
		line    = 1
	)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedInput, line, err)
		}

		rec, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedInput, line, err)
		}
		if _, dup := seen[rec.Timestamp]; dup {
			return nil, fmt.Errorf("%w: line %d: duplicate timestamp %s",
				ErrMalformedInput, line, rec.Timestamp.Format(TimestampLayout))
		}
		seen[rec.Timestamp] = struct{}{}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrMalformedInput)
	}

	return &Table{
		Records:  records,
		Raw:      raw,
		Checksum: Checksum(raw),
		Bounds:   computeBounds(records),
	}, nil
}

// Checksum returns the hex SHA-256 of raw, matching Table.Checksum.
func Checksum(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformedInput, col)
		}
	}
	if len(index) != len(Columns) {
		return nil, fmt.Errorf("%w: expected %d columns, got %d", ErrMalformedInput, len(Columns), len(header))
	}
	return index, nil
}

func parseRow(row []string, index map[string]int) (Record, error) {
	var (
		rec Record
		err error
	)
	field := func(col string) string {
		return strings.TrimSpace(row[index[col]])
	}

	rec.Timestamp, err = time.Parse(TimestampLayout, field("datetime"))
	if err != nil {
		return Record{}, fmt.Errorf("datetime: %v", err)
	}

	ints := []struct {
		col string
		dst *int
	}{
		{"season", &rec.Season},
		{"holiday", &rec.Holiday},
		{"workingday", &rec.WorkingDay},
		{"casual", &rec.Casual},
		{"registered", &rec.Registered},
		{"count", &rec.Count},
	}
	for _, f := range ints {
		if *f.dst, err = strconv.Atoi(field(f.col)); err != nil {
			return Record{}, fmt.Errorf("%s: %v", f.col, err)
		}
	}

	code, err := strconv.Atoi(field("weather"))
	if err != nil {
		return Record{}, fmt.Errorf("weather: %v", err)
	}
	rec.Weather = Weather(code)
	if !rec.Weather.Valid() {
		return Record{}, fmt.Errorf("weather: code %d outside 1-4", code)
	}

	floats := []struct {
		col string
		dst *float64
	}{
		{"temp", &rec.Temp},
		{"atemp", &rec.ATemp},
		{"humidity", &rec.Humidity},
		{"windspeed", &rec.WindSpeed},
	}
	for _, f := range floats {
		if *f.dst, err = strconv.ParseFloat(field(f.col), 64); err != nil {
			return Record{}, fmt.Errorf("%s: %v", f.col, err)
		}
	}

	deriveCalendar(&rec)
	return rec, nil
}

// deriveCalendar fills the calendar fields from the timestamp using plain
// Gregorian rules, without any zone conversion.
func deriveCalendar(rec *Record) {
	ts := rec.Timestamp
	rec.Month = ts.Month()
	rec.Hour = ts.Hour()
	rec.Year = ts.Year()
	rec.Weekday = ts.Weekday().String()
	rec.FirstDayOfMonth = time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, ts.Location())
}

func computeBounds(records []Record) Bounds {
	b := Bounds{
		TempMin: math.Inf(1), TempMax: math.Inf(-1),
		HumidityMin: math.Inf(1), HumidityMax: math.Inf(-1),
		WindSpeedMin: math.Inf(1), WindSpeedMax: math.Inf(-1),
	}
	for _, r := range records {
		b.TempMin = math.Min(b.TempMin, r.Temp)
		b.TempMax = math.Max(b.TempMax, r.Temp)
		b.HumidityMin = math.Min(b.HumidityMin, r.Humidity)
		b.HumidityMax = math.Max(b.HumidityMax, r.Humidity)
		b.WindSpeedMin = math.Min(b.WindSpeedMin, r.WindSpeed)
		b.WindSpeedMax = math.Max(b.WindSpeedMax, r.WindSpeed)
	}
	return b
}
