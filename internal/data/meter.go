package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"solar-appraisal/internal/model"
)

// Meter CSV columns as exported by the utility portal. The hourly file is
// Date,Time,Usage not yet billed,Usage already billed,Meter reading status
// with Date as YYYY-MM-DD and Time as HH:MM. Half-hourly exports use the
// same columns with DD/MM/YYYY dates and a 5-line metadata preamble.

// ReadHourlyMeterCSV parses an hourly meter export into readings. Only the
// billed usage column feeds the appraisal; the reading status is carried
// through for reporting.
func ReadHourlyMeterCSV(path string) ([]model.MeterReading, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	cols, err := meterColumns(header)
	if err != nil {
		return nil, err
	}

	var out []model.MeterReading
	line := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		line++

		ts, err := time.Parse("2006-01-02 15:04", rec[cols.date]+" "+rec[cols.time])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid timestamp: %w", line, err)
		}
		usage, err := strconv.ParseFloat(strings.TrimSpace(rec[cols.usage]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid usage: %w", line, err)
		}

		status := model.ReadingActual
		if cols.status >= 0 && strings.TrimSpace(rec[cols.status]) != string(model.ReadingActual) {
			status = model.ReadingEstimated
		}

		out = append(out, model.MeterReading{
			Timestamp: ts,
			UsageKWh:  usage,
			Status:    status,
		})
	}
	return out, nil
}

type meterCols struct {
	date, time, usage, status int
}

func meterColumns(header []string) (meterCols, error) {
	cols := meterCols{date: -1, time: -1, usage: -1, status: -1}
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "Date":
			cols.date = i
		case "Time":
			cols.time = i
		case "Usage already billed":
			cols.usage = i
		case "Meter reading status":
			cols.status = i
		}
	}
	if cols.date == -1 || cols.time == -1 || cols.usage == -1 {
		return cols, fmt.Errorf("meter CSV missing required columns (Date, Time, Usage already billed), got %v", header)
	}
	return cols, nil
}

// ConvertHalfHourlyToHourly aggregates a half-hourly meter export into
// hourly readings: usage is summed per hour, and an hour is Actual only
// when every reading inside it is Actual. The export's 5 metadata rows
// before the header are skipped.
func ConvertHalfHourlyToHourly(inputPath, outputPath string) ([]model.MeterReading, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	// Skip the metadata preamble.
	for i := 0; i < 5; i++ {
		if _, err := r.Read(); err != nil {
			return nil, fmt.Errorf("failed to skip metadata row %d: %w", i+1, err)
		}
	}
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	cols, err := meterColumns(header)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		usage     float64
		allActual bool
		count     int
	}
	buckets := map[time.Time]*bucket{}
	line := 6
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		line++

		// Half-hourly exports use day-first dates.
		ts, err := time.Parse("02/01/2006 15:04", rec[cols.date]+" "+rec[cols.time])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid timestamp: %w", line, err)
		}
		usage, err := strconv.ParseFloat(strings.TrimSpace(rec[cols.usage]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid usage: %w", line, err)
		}

		hour := ts.Truncate(time.Hour)
		b, ok := buckets[hour]
		if !ok {
			b = &bucket{allActual: true}
			buckets[hour] = b
		}
		b.usage += usage
		b.count++
		if cols.status >= 0 && strings.TrimSpace(rec[cols.status]) != string(model.ReadingActual) {
			b.allActual = false
		}
	}

	hours := make([]time.Time, 0, len(buckets))
	for h := range buckets {
		hours = append(hours, h)
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i].Before(hours[j]) })

	out := make([]model.MeterReading, 0, len(hours))
	for _, h := range hours {
		b := buckets[h]
		status := model.ReadingActual
		if !b.allActual {
			status = model.ReadingEstimated
		}
		out = append(out, model.MeterReading{
			Timestamp: h,
			UsageKWh:  b.usage,
			Status:    status,
		})
	}

	if outputPath != "" {
		if err := writeHourlyMeterCSV(outputPath, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func writeHourlyMeterCSV(path string, readings []model.MeterReading) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Date", "Time", "Usage already billed", "Meter reading status"}); err != nil {
		return err
	}
	for _, rd := range readings {
		row := []string{
			rd.Timestamp.Format("2006-01-02"),
			rd.Timestamp.Format("15:04"),
			strconv.FormatFloat(rd.UsageKWh, 'f', 3, 64),
			string(rd.Status),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
