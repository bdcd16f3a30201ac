package data

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"solar-appraisal/internal/model"
)

// ErrMisalignedInput is returned when a joined interval is missing its
// usage or solar value. The simulator never defaults a missing side to
// zero; the defect surfaces here, at the collaborator boundary.
var ErrMisalignedInput = errors.New("misaligned input")

// Align inner-joins meter readings and solar records on exact timestamp
// equality. Intervals present in only one source are silently dropped, so
// the simulator never sees unmatched intervals and performs no gap
// filling. The result is ordered by timestamp.
func Align(readings []model.MeterReading, solar []model.SolarRecord) ([]model.IntervalRecord, error) {
	solarByTS := make(map[time.Time]float64, len(solar))
	for _, s := range solar {
		solarByTS[s.Timestamp] = s.ACOutputKWh
	}

	out := make([]model.IntervalRecord, 0, len(readings))
	for _, rd := range readings {
		kwh, ok := solarByTS[rd.Timestamp]
		if !ok {
			continue
		}
		if math.IsNaN(rd.UsageKWh) || math.IsNaN(kwh) {
			return nil, fmt.Errorf("%w: interval %s has an undefined value", ErrMisalignedInput, rd.Timestamp.Format(time.RFC3339))
		}
		out = append(out, model.IntervalRecord{
			Timestamp: rd.Timestamp,
			UsageKWh:  rd.UsageKWh,
			SolarKWh:  kwh,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}
