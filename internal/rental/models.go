package rental

import (
	"time"
)

// Weather is the categorical severity code recorded for an observed hour.
type Weather int

const (
	WeatherClear       Weather = 1
	WeatherMist        Weather = 2
	WeatherLightPrecip Weather = 3
	WeatherHeavyPrecip Weather = 4
)

// Valid reports whether w is one of the four recorded codes.
func (w Weather) Valid() bool {
	return w >= WeatherClear && w <= WeatherHeavyPrecip
}

// ClientType distinguishes subscribed from non-subscribed renters.
type ClientType string

const (
	ClientCasual     ClientType = "casual"
	ClientRegistered ClientType = "registered"
)

// ClientTypes lists client types in output order.
var ClientTypes = []ClientType{ClientCasual, ClientRegistered}

// Sign applies the diverging-chart convention: registered above zero, casual below.
func (c ClientType) Sign(v int) int {
	if c == ClientCasual {
		return -v
	}
	return v
}

// Record is one observed hour of the dataset. Derived calendar fields are
// filled in once at load time and never change afterwards.
type Record struct {
	Timestamp  time.Time `json:"datetime"`
	Season     int       `json:"season"`
	Holiday    int       `json:"holiday"`
	WorkingDay int       `json:"workingday"` // 1 = weekday, 0 = weekend
	Weather    Weather   `json:"weather"`
	Temp       float64   `json:"temp"`
	ATemp      float64   `json:"atemp"`
	Humidity   float64   `json:"humidity"`
	WindSpeed  float64   `json:"windspeed"`
	Casual     int       `json:"casual"`
	Registered int       `json:"registered"`
	Count      int       `json:"count"`

	Month           time.Month `json:"month"`
	Hour            int        `json:"hour"`
	Year            int        `json:"year"`
	Weekday         string     `json:"weekday"`
	FirstDayOfMonth time.Time  `json:"first_day_of_month"`
}

// Clients returns the rental count for the given client type.
func (r Record) Clients(c ClientType) int {
	if c == ClientCasual {
		return r.Casual
	}
	return r.Registered
}

// Bounds holds dataset-wide extremes used to size range selectors.
type Bounds struct {
	TempMin      float64 `json:"temp_min"`
	TempMax      float64 `json:"temp_max"`
	HumidityMin  float64 `json:"humidity_min"`
	HumidityMax  float64 `json:"humidity_max"`
	WindSpeedMin float64 `json:"windspeed_min"`
	WindSpeedMax float64 `json:"windspeed_max"`
}

// Table is the immutable base dataset. Records keep file order.
type Table struct {
	Records  []Record
	Raw      []byte
	Checksum string
	Bounds   Bounds
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.Records)
}

// MonthlyMean is one (month-bucket, client type) row of the monthly aggregation.
type MonthlyMean struct {
	MonthStart  time.Time  `json:"month_start"`
	Label       string     `json:"label"`
	ClientType  ClientType `json:"client_type"`
	Value       int        `json:"value"`
	SignedValue int        `json:"signed_value"`
	Rows        int        `json:"rows"`
}

// HourlyMean is one (hour, client type) row of the hourly aggregation.
type HourlyMean struct {
	Hour       int        `json:"hour"`
	ClientType ClientType `json:"client_type"`
	Value      int        `json:"value"`
	Rows       int        `json:"rows"`
}

// IntBand is an inclusive integer band derived from quartiles.
type IntBand struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// FloatBand is a raw quartile pair.
type FloatBand struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Summary seeds default filter suggestions for a subset.
type Summary struct {
	Weather     Weather   `json:"weather"`
	Temperature IntBand   `json:"temperature"`
	Humidity    FloatBand `json:"humidity"`
	WindSpeed   IntBand   `json:"windspeed"`
	Rows        int       `json:"rows"`
}

// Overview describes the overall rental intensity of a subset.
type Overview struct {
	Rows       int `json:"rows"`
	Days       int `json:"days"`
	Hours      int `json:"hours"`
	AvgPerHour int `json:"avg_per_hour"`
	Bikers     int `json:"bikers"`
}

// MonthBucket is an available (year, month) pair of the dataset.
type MonthBucket struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Label string     `json:"label"`
	Rows  int        `json:"rows"`
}
