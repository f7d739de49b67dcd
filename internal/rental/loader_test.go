package rental_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/bike-rental-dashboard/internal/rental"
	"github.com/i474232898/bike-rental-dashboard/internal/rental/rentaltest"
)

func TestLoadDerivesCalendarFields(t *testing.T) {
	table := rentaltest.Table(t)
	require.Equal(t, 6, table.Len())

	first := table.Records[0]
	assert.Equal(t, time.Date(2011, time.January, 1, 0, 0, 0, 0, time.UTC), first.Timestamp)
	assert.Equal(t, time.January, first.Month)
	assert.Equal(t, 2011, first.Year)
	assert.Equal(t, 0, first.Hour)
	assert.Equal(t, "Saturday", first.Weekday)
	assert.Equal(t, time.Date(2011, time.January, 1, 0, 0, 0, 0, time.UTC), first.FirstDayOfMonth)
	assert.Equal(t, rental.WeatherClear, first.Weather)
	assert.Equal(t, 0, first.WorkingDay)

	last := table.Records[5]
	assert.Equal(t, 23, last.Hour)
	assert.Equal(t, "Wednesday", last.Weekday)
	assert.Equal(t, time.Date(2012, time.December, 1, 0, 0, 0, 0, time.UTC), last.FirstDayOfMonth)
	assert.Equal(t, 124, last.Count)
}

func TestLoadCountIsCasualPlusRegistered(t *testing.T) {
	for _, r := range rentaltest.Table(t).Records {
		assert.Equal(t, r.Casual+r.Registered, r.Count, r.Timestamp.Format(rental.TimestampLayout))
	}
}

func TestLoadKeepsFileOrderAndBounds(t *testing.T) {
	table := rentaltest.Table(t)

	for i := 1; i < table.Len(); i++ {
		assert.True(t, table.Records[i-1].Timestamp.Before(table.Records[i].Timestamp))
	}

	assert.Equal(t, rental.Bounds{
		TempMin: 9.02, TempMax: 20.5,
		HumidityMin: 43, HumidityMax: 93,
		WindSpeedMin: 0, WindSpeedMax: 19.0012,
	}, table.Bounds)
	assert.Equal(t, rental.Checksum([]byte(rentaltest.CSV)), table.Checksum)
	assert.Equal(t, []byte(rentaltest.CSV), table.Raw)
}

func TestLoadHeaderIsCaseAndBOMTolerant(t *testing.T) {
	raw := "\ufeff" + strings.ToUpper(rentaltest.Header) + "\n2011-01-01 00:00:00,1,0,0,1,9.84,14.395,81,0,3,13,16\n"

	table, err := rental.Load([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestLoadRejectsMalformedInput(t *testing.T) {
	row := "2011-01-01 00:00:00,1,0,0,1,9.84,14.395,81,0,3,13,16"

	cases := map[string]string{
		"empty file":        "",
		"header only":       rentaltest.Header + "\n",
		"missing column":    strings.Replace(rentaltest.Header, "windspeed", "wind", 1) + "\n" + row + "\n",
		"short row":         rentaltest.Header + "\n2011-01-01 00:00:00,1,0,0,1\n",
		"bad timestamp":     rentaltest.Header + "\n2011-13-01 00:00:00,1,0,0,1,9.84,14.395,81,0,3,13,16\n",
		"bad number":        rentaltest.Header + "\n2011-01-01 00:00:00,1,0,0,1,warm,14.395,81,0,3,13,16\n",
		"weather code":      rentaltest.Header + "\n2011-01-01 00:00:00,1,0,0,5,9.84,14.395,81,0,3,13,16\n",
		"duplicate instant": rentaltest.Header + "\n" + row + "\n" + row + "\n",
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := rental.Load([]byte(raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, rental.ErrMalformedInput)
		})
	}
}

func TestLoadRoundTripsRawBytes(t *testing.T) {
	table := rentaltest.Table(t)

	again, err := rental.Load(table.Raw)
	require.NoError(t, err)
	assert.Equal(t, table.Records, again.Records)
	assert.Equal(t, table.Checksum, again.Checksum)
}
