package export

import (
	"fmt"
	"io"

	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/i474232898/bike-rental-dashboard/internal/rental"
)

// parquetRow is the columnar layout of one dataset row.
type parquetRow struct {
	Datetime   string  `parquet:"name=datetime,type=BYTE_ARRAY,convertedtype=UTF8"`
	Season     int32   `parquet:"name=season,type=INT32"`
	Holiday    int32   `parquet:"name=holiday,type=INT32"`
	WorkingDay int32   `parquet:"name=workingday,type=INT32"`
	Weather    int32   `parquet:"name=weather,type=INT32"`
	Temp       float64 `parquet:"name=temp,type=DOUBLE"`
	ATemp      float64 `parquet:"name=atemp,type=DOUBLE"`
	Humidity   float64 `parquet:"name=humidity,type=DOUBLE"`
	WindSpeed  float64 `parquet:"name=windspeed,type=DOUBLE"`
	Casual     int32   `parquet:"name=casual,type=INT32"`
	Registered int32   `parquet:"name=registered,type=INT32"`
	Count      int32   `parquet:"name=count,type=INT32"`
}

// WriteParquet writes the table as a SNAPPY-compressed parquet file.
func WriteParquet(w io.Writer, table *rental.Table) (err error) {
	pw, err := writer.NewParquetWriterFromWriter(w, new(parquetRow), 1)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for i, r := range table.Records {
		row := parquetRow{
			Datetime:   r.Timestamp.Format(rental.TimestampLayout),
			Season:     int32(r.Season),
			Holiday:    int32(r.Holiday),
			WorkingDay: int32(r.WorkingDay),
			Weather:    int32(r.Weather),
			Temp:       r.Temp,
			ATemp:      r.ATemp,
			Humidity:   r.Humidity,
			WindSpeed:  r.WindSpeed,
			Casual:     int32(r.Casual),
			Registered: int32(r.Registered),
			Count:      int32(r.Count),
		}
		if err := pw.Write(row); err != nil {
			return fmt.Errorf("failed to write parquet row %d: %w", i+1, err)
		}
	}

	// WriteStop can panic on internal writer errors.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to stop parquet writer: %v", r)
		}
	}()
	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("failed to stop parquet writer: %w", err)
	}
	return nil
}
