// Package rentaltest provides a small dataset for tests across packages.
package rentaltest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/i474232898/bike-rental-dashboard/internal/rental"
)

// Header is the dataset header line.
const Header = "datetime,season,holiday,workingday,weather,temp,atemp,humidity,windspeed,casual,registered,count"

// CSV holds six hours across three months:
//   - January 2011: four rows (Sat 00h, Sat 01h, Mon 00h, holiday Mon 05h)
//   - February 2011: one weekday row
//   - December 2012: one weekday row
const CSV = Header + `
2011-01-01 00:00:00,1,0,0,1,9.84,14.395,81,0,3,13,16
2011-01-01 01:00:00,1,0,0,1,9.02,13.635,80,0,8,32,40
2011-01-03 00:00:00,1,0,1,2,20.5,24.24,44,12.998,0,5,5
2011-01-17 05:00:00,1,1,0,3,9.4,11.365,93,19.0012,1,2,3
2011-02-01 01:00:00,1,0,1,1,15,19.695,60,7.0015,10,100,110
2012-12-19 23:00:00,4,0,1,1,13.12,16.665,43,8.9981,4,120,124
`

// Table loads CSV and fails the test on error.
func Table(t testing.TB) *rental.Table {
	t.Helper()
	table, err := rental.Load([]byte(CSV))
	require.NoError(t, err)
	return table
}

// Store is an in-memory TableStore for service tests.
type Store struct {
	T   *rental.Table
	Err error
}

func (s *Store) Put(table *rental.Table) { s.T = table }

func (s *Store) Table() (*rental.Table, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.T, nil
}
