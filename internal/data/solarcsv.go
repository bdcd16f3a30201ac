package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"solar-appraisal/internal/model"
)

// Solar CSV is the materialized form of a PVWatts fetch, so the (slow,
// rate-limited) API step can run once and feed many appraisals.

// WriteSolarCSV persists hourly production records.
func WriteSolarCSV(path string, records []model.SolarRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"datetime", "ac_kwh"}); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.Timestamp.Format("2006-01-02 15:04"),
			strconv.FormatFloat(rec.ACOutputKWh, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// ReadSolarCSV loads hourly production records written by WriteSolarCSV.
func ReadSolarCSV(path string) ([]model.SolarRecord, error) {
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
	tsCol, kwhCol := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "datetime":
			tsCol = i
		case "ac_kwh":
			kwhCol = i
		}
	}
	if tsCol == -1 || kwhCol == -1 {
		return nil, fmt.Errorf("solar CSV missing required columns (datetime, ac_kwh), got %v", header)
	}

	var out []model.SolarRecord
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

		ts, err := time.Parse("2006-01-02 15:04", rec[tsCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid timestamp: %w", line, err)
		}
		kwh, err := strconv.ParseFloat(strings.TrimSpace(rec[kwhCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid ac_kwh: %w", line, err)
		}
		out = append(out, model.SolarRecord{Timestamp: ts, ACOutputKWh: kwh})
	}
	return out, nil
}
