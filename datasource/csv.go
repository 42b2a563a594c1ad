package datasource

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/FactomWyomingEntity/prosper-roi/forecast"
)

const secondsPerDay = 24 * 60 * 60

// ParseHashRateCSV reads a chart export with rows of
//
//	"Date(UTC)","UnixTimeStamp","Value"
//
// A header row is skipped. Values are multiplied by scale, so a GH/s export
// read with scale 1e9 comes back in H/s. Days are offsets from the newest
// row, so the last point is day 0.
func ParseHashRateCSV(data []byte, scale float64) (forecast.TimeSeries, error) {
	if scale == 0 {
		scale = 1
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	type row struct {
		ts    int64
		value float64
	}
	var rows []row
	for line := 1; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(rec) < 3 {
			if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
				continue
			}
			return nil, fmt.Errorf("line %d: expected 3 columns, found %d", line, len(rec))
		}

		ts, tsErr := strconv.ParseInt(strings.TrimSpace(rec[1]), 10, 64)
		v, vErr := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if tsErr != nil || vErr != nil {
			if line == 1 {
				continue // header
			}
			return nil, fmt.Errorf("line %d: malformed row %q", line, strings.Join(rec, ","))
		}
		if len(rows) > 0 && ts <= rows[len(rows)-1].ts {
			return nil, fmt.Errorf("line %d: timestamp %d is not after the previous row", line, ts)
		}
		rows = append(rows, row{ts: ts, value: v * scale})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no observations found")
	}

	newest := rows[len(rows)-1].ts
	series := make(forecast.TimeSeries, len(rows))
	for i, r := range rows {
		series[i] = forecast.Point{
			Day:   int((r.ts - newest) / secondsPerDay),
			Value: r.value,
		}
	}
	return series, nil
}
