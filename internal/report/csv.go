package report

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"solar-appraisal/internal/model"
)

// WriteFlowsCSV writes the per-interval dispatch results alongside their
// source intervals. flows and intervals must come from the same pass.
func WriteFlowsCSV(path string, intervals []model.IntervalRecord, flows []model.FlowRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"datetime",
		"usage_kwh",
		"solar_kwh",
		"self_consumed",
		"battery_charge",
		"battery_discharge",
		"exported",
		"imported",
		"battery_soc",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, fl := range flows {
		it := intervals[i]
		row := []string{
			fmtTime(it.Timestamp),
			fmtFloat(it.UsageKWh),
			fmtFloat(it.SolarKWh),
			fmtFloat(fl.SelfConsumedKWh),
			fmtFloat(fl.BatteryChargeKWh),
			fmtFloat(fl.BatteryDischargeKWh),
			fmtFloat(fl.ExportedKWh),
			fmtFloat(fl.ImportedKWh),
			fmtFloat(fl.StateOfChargeKWh),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
