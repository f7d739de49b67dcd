package rental

import (
	"math"
	"sort"
	"time"
)

// Overview intensity: one biker per BikerStep average hourly rentals, capped
// at MaxBikers.
const (
	BikerStep = 70
	MaxBikers = 4
)

type clientSums struct {
	casual     int
	registered int
	rows       int
}

func (s clientSums) mean(c ClientType) int {
	total := s.registered
	if c == ClientCasual {
		total = s.casual
	}
	// Truncate toward zero like an integer cast of the mean.
	return int(float64(total) / float64(s.rows))
}

// MonthlyMeans groups records by month bucket and returns, per bucket in
// chronological order, the truncated mean of casual then registered rentals.
func MonthlyMeans(records []Record) []MonthlyMean {
	sums := make(map[time.Time]*clientSums)
	var keys []time.Time

	for _, r := range records {
		s, ok := sums[r.FirstDayOfMonth]
		if !ok {
			s = &clientSums{}
			sums[r.FirstDayOfMonth] = s
			keys = append(keys, r.FirstDayOfMonth)
		}
		s.casual += r.Casual
		s.registered += r.Registered
		s.rows++
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	out := make([]MonthlyMean, 0, len(keys)*len(ClientTypes))
	for _, k := range keys {
		s := sums[k]
		for _, c := range ClientTypes {
			v := s.mean(c)
			out = append(out, MonthlyMean{
				MonthStart:  k,
				Label:       MonthLabel(k),
				ClientType:  c,
				Value:       v,
				SignedValue: c.Sign(v),
				Rows:        s.rows,
			})
		}
	}
	return out
}

// HourlyMeans groups records by hour of day and returns, per hour present in
// the input, the truncated mean of casual then registered rentals. Hours
// without rows are absent from the result, as are rows whose hour lies
// outside 0-23.
func HourlyMeans(records []Record) []HourlyMean {
	var sums [24]clientSums
	for _, r := range records {
		if r.Hour < 0 || r.Hour >= len(sums) {
			continue
		}
		s := &sums[r.Hour]
		s.casual += r.Casual
		s.registered += r.Registered
		s.rows++
	}

	var out []HourlyMean
	for hour, s := range sums {
		if s.rows == 0 {
			continue
		}
		for _, c := range ClientTypes {
			out = append(out, HourlyMean{
				Hour:       hour,
				ClientType: c,
				Value:      s.mean(c),
				Rows:       s.rows,
			})
		}
	}
	return out
}

// Summarize computes the most frequent weather code and the interquartile
// bands of temperature, humidity and windspeed. Ties on weather go to the
// lowest code; rows carrying an unknown code take no part in the vote.
func Summarize(records []Record) (Summary, error) {
	if len(records) == 0 {
		return Summary{}, ErrNoData
	}

	var (
		weatherCounts [5]int
		temps         = make([]float64, len(records))
		humidities    = make([]float64, len(records))
		winds         = make([]float64, len(records))
	)
	for i, r := range records {
		if r.Weather.Valid() {
			weatherCounts[r.Weather]++
		}
		temps[i] = r.Temp
		humidities[i] = r.Humidity
		winds[i] = r.WindSpeed
	}

	mode := WeatherClear
	for w := WeatherClear; w <= WeatherHeavyPrecip; w++ {
		if weatherCounts[w] > weatherCounts[mode] {
			mode = w
		}
	}

	return Summary{
		Weather:     mode,
		Temperature: intBand(temps),
		Humidity: FloatBand{
			Low:  Quantile(humidities, 0.25),
			High: Quantile(humidities, 0.75),
		},
		WindSpeed: intBand(winds),
		Rows:      len(records),
	}, nil
}

// OverviewOf reports how many hours a subset covers and its average total
// rentals per hour.
func OverviewOf(records []Record) (Overview, error) {
	if len(records) == 0 {
		return Overview{}, ErrNoData
	}

	total := 0
	for _, r := range records {
		total += r.Count
	}
	avg := total / len(records)

	bikers := avg/BikerStep + 1
	if bikers > MaxBikers {
		bikers = MaxBikers
	}

	return Overview{
		Rows:       len(records),
		Days:       len(records) / 24,
		Hours:      len(records) % 24,
		AvgPerHour: avg,
		Bikers:     bikers,
	}, nil
}

// Calendar lists the month buckets present in records, chronologically.
func Calendar(records []Record) []MonthBucket {
	var out []MonthBucket
	index := make(map[time.Time]int)
	for _, r := range records {
		i, ok := index[r.FirstDayOfMonth]
		if !ok {
			i = len(out)
			index[r.FirstDayOfMonth] = i
			out = append(out, MonthBucket{
				Year:  r.Year,
				Month: r.Month,
				Label: MonthLabel(r.FirstDayOfMonth),
			})
		}
		out[i].Rows++
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// MonthLabel formats a month bucket as "January 2011".
func MonthLabel(t time.Time) string {
	return t.Format("January 2006")
}

// Quantile returns the q-th quantile of values using linear interpolation
// between the closest ranks. values is not modified.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

// intBand truncates the first quartile and rounds the third quartile up to
// the next integer, producing an inclusive integer band.
func intBand(values []float64) IntBand {
	return IntBand{
		Low:  int(Quantile(values, 0.25)),
		High: int(Quantile(values, 0.75)) + 1,
	}
}
