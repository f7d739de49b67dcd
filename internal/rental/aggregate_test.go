package rental_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/bike-rental-dashboard/internal/rental"
	"github.com/i474232898/bike-rental-dashboard/internal/rental/rentaltest"
)

func TestMonthlyMeans(t *testing.T) {
	table := rentaltest.Table(t)

	means := rental.MonthlyMeans(table.Records)
	require.Len(t, means, 6)

	jan := time.Date(2011, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, rental.MonthlyMean{
		MonthStart: jan, Label: "January 2011", ClientType: rental.ClientCasual,
		Value: 3, SignedValue: -3, Rows: 4,
	}, means[0])
	assert.Equal(t, rental.MonthlyMean{
		MonthStart: jan, Label: "January 2011", ClientType: rental.ClientRegistered,
		Value: 13, SignedValue: 13, Rows: 4,
	}, means[1])

	assert.Equal(t, "February 2011", means[2].Label)
	assert.Equal(t, -10, means[2].SignedValue)
	assert.Equal(t, "December 2012", means[5].Label)
	assert.Equal(t, 120, means[5].SignedValue)

	for i := 2; i < len(means); i += 2 {
		assert.True(t, means[i-2].MonthStart.Before(means[i].MonthStart))
	}
}

func TestMonthlyMeansSignAndRowCounts(t *testing.T) {
	table := rentaltest.Table(t)

	total := 0
	for _, m := range rental.MonthlyMeans(table.Records) {
		switch m.ClientType {
		case rental.ClientCasual:
			assert.LessOrEqual(t, m.SignedValue, 0)
			total += m.Rows
		case rental.ClientRegistered:
			assert.GreaterOrEqual(t, m.SignedValue, 0)
		}
		assert.Equal(t, m.Value, abs(m.SignedValue))
	}
	assert.Equal(t, table.Len(), total)
}

func TestMonthlyMeansTruncates(t *testing.T) {
	records := []rental.Record{
		{Casual: 1, Registered: 2, FirstDayOfMonth: time.Date(2011, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Casual: 2, Registered: 5, FirstDayOfMonth: time.Date(2011, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	means := rental.MonthlyMeans(records)
	require.Len(t, means, 2)
	assert.Equal(t, 1, means[0].Value)
	assert.Equal(t, 3, means[1].Value)
}

func TestHourlyMeans(t *testing.T) {
	table := rentaltest.Table(t)

	means := rental.HourlyMeans(table.Records)
	require.Len(t, means, 8)

	byHour := make(map[int][]rental.HourlyMean)
	for _, m := range means {
		byHour[m.Hour] = append(byHour[m.Hour], m)
	}
	assert.Len(t, byHour, 4)

	assert.Equal(t, []rental.HourlyMean{
		{Hour: 0, ClientType: rental.ClientCasual, Value: 1, Rows: 2},
		{Hour: 0, ClientType: rental.ClientRegistered, Value: 9, Rows: 2},
	}, byHour[0])
	assert.Equal(t, 9, byHour[1][0].Value)
	assert.Equal(t, 66, byHour[1][1].Value)
	assert.NotContains(t, byHour, 12)

	for i := 1; i < len(means); i++ {
		assert.LessOrEqual(t, means[i-1].Hour, means[i].Hour)
	}
}

func TestHourlyMeansCoversFullDay(t *testing.T) {
	var records []rental.Record
	for h := 0; h < 24; h++ {
		records = append(records, rental.Record{Hour: h, Casual: h, Registered: 2 * h})
	}

	means := rental.HourlyMeans(records)
	require.Len(t, means, 48)
	assert.Equal(t, 23, means[46].Value)
	assert.Equal(t, 46, means[47].Value)
}

func TestAggregatesIgnoreOutOfRangeCodes(t *testing.T) {
	records := []rental.Record{
		{Hour: 3, Casual: 2, Registered: 4, Weather: rental.WeatherMist},
		{Hour: 24, Casual: 100, Registered: 100, Weather: rental.Weather(9)},
		{Hour: -1, Casual: 100, Registered: 100, Weather: rental.Weather(0)},
	}

	assert.Equal(t, []rental.HourlyMean{
		{Hour: 3, ClientType: rental.ClientCasual, Value: 2, Rows: 1},
		{Hour: 3, ClientType: rental.ClientRegistered, Value: 4, Rows: 1},
	}, rental.HourlyMeans(records))

	summary, err := rental.Summarize(records)
	require.NoError(t, err)
	assert.Equal(t, rental.WeatherMist, summary.Weather)
	assert.Equal(t, 3, summary.Rows)
}

func TestSummarize(t *testing.T) {
	table := rentaltest.Table(t)
	january := rental.Filter(table.Records, rental.ForMonth(2011, time.January))

	summary, err := rental.Summarize(january)
	require.NoError(t, err)

	assert.Equal(t, rental.WeatherClear, summary.Weather)
	assert.Equal(t, rental.IntBand{Low: 9, High: 13}, summary.Temperature)
	assert.InDelta(t, 71, summary.Humidity.Low, 1e-9)
	assert.InDelta(t, 84, summary.Humidity.High, 1e-9)
	assert.Equal(t, rental.IntBand{Low: 0, High: 15}, summary.WindSpeed)
	assert.Equal(t, 4, summary.Rows)
}

func TestSummarizeWeatherTieGoesToLowestCode(t *testing.T) {
	records := []rental.Record{
		{Weather: rental.WeatherLightPrecip},
		{Weather: rental.WeatherMist},
		{Weather: rental.WeatherLightPrecip},
		{Weather: rental.WeatherMist},
	}

	summary, err := rental.Summarize(records)
	require.NoError(t, err)
	assert.Equal(t, rental.WeatherMist, summary.Weather)
}

func TestSummarizeSingleRow(t *testing.T) {
	summary, err := rental.Summarize([]rental.Record{
		{Weather: rental.WeatherHeavyPrecip, Temp: 12.3, Humidity: 55.5, WindSpeed: 7.9},
	})
	require.NoError(t, err)

	assert.Equal(t, rental.WeatherHeavyPrecip, summary.Weather)
	assert.Equal(t, rental.IntBand{Low: 12, High: 13}, summary.Temperature)
	assert.Equal(t, rental.FloatBand{Low: 55.5, High: 55.5}, summary.Humidity)
	assert.Equal(t, rental.IntBand{Low: 7, High: 8}, summary.WindSpeed)
}

func TestEmptyInputHasNoData(t *testing.T) {
	_, err := rental.Summarize(nil)
	assert.ErrorIs(t, err, rental.ErrNoData)

	_, err = rental.OverviewOf(nil)
	assert.ErrorIs(t, err, rental.ErrNoData)

	assert.Empty(t, rental.MonthlyMeans(nil))
	assert.Empty(t, rental.HourlyMeans(nil))
}

func TestOverview(t *testing.T) {
	table := rentaltest.Table(t)

	overview, err := rental.OverviewOf(table.Records)
	require.NoError(t, err)
	assert.Equal(t, rental.Overview{Rows: 6, Days: 0, Hours: 6, AvgPerHour: 49, Bikers: 1}, overview)
}

func TestOverviewBikersAreCapped(t *testing.T) {
	records := make([]rental.Record, 50)
	for i := range records {
		records[i].Count = 1000
	}

	overview, err := rental.OverviewOf(records)
	require.NoError(t, err)
	assert.Equal(t, 2, overview.Days)
	assert.Equal(t, 2, overview.Hours)
	assert.Equal(t, rental.MaxBikers, overview.Bikers)

	records = records[:1]
	records[0].Count = 140
	overview, err = rental.OverviewOf(records)
	require.NoError(t, err)
	assert.Equal(t, 3, overview.Bikers)
}

func TestCalendar(t *testing.T) {
	table := rentaltest.Table(t)

	assert.Equal(t, []rental.MonthBucket{
		{Year: 2011, Month: time.January, Label: "January 2011", Rows: 4},
		{Year: 2011, Month: time.February, Label: "February 2011", Rows: 1},
		{Year: 2012, Month: time.December, Label: "December 2012", Rows: 1},
	}, rental.Calendar(table.Records))
}

func TestQuantile(t *testing.T) {
	values := []float64{4, 1, 3, 2}

	assert.Equal(t, 1.0, rental.Quantile(values, 0))
	assert.Equal(t, 2.5, rental.Quantile(values, 0.5))
	assert.Equal(t, 4.0, rental.Quantile(values, 1))
	assert.InDelta(t, 1.75, rental.Quantile(values, 0.25), 1e-9)
	assert.Equal(t, []float64{4, 1, 3, 2}, values)
	assert.True(t, math.IsNaN(rental.Quantile(nil, 0.5)))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
