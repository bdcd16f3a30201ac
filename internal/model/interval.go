package model

import "time"

// ReadingStatus is the meter's quality flag for a reading. It is carried
// through for reporting but never consumed by dispatch or financial logic.
type ReadingStatus string

const (
	ReadingActual    ReadingStatus = "Actual"
	ReadingEstimated ReadingStatus = "Estimated"
)

// MeterReading is one hourly usage sample from the utility meter export.
type MeterReading struct {
	Timestamp time.Time
	UsageKWh  float64
	Status    ReadingStatus
}

// SolarRecord is one hourly production sample from the solar model.
// ACOutputKWh is already converted from the provider's AC watts.
type SolarRecord struct {
	Timestamp   time.Time
	ACOutputKWh float64
}

// IntervalRecord is one row of the aligned usage/production series the
// simulator consumes. Both values are defined for every record; producing
// a record with a missing side is the alignment step's bug, not ours.
type IntervalRecord struct {
	Timestamp time.Time `json:"timestamp"`
	UsageKWh  float64   `json:"usage_kwh"`
	SolarKWh  float64   `json:"solar_kwh"`
}

// DistinctDays counts distinct calendar dates spanned by the intervals.
// The series is not guaranteed gap-free, so this must come from the
// timestamps rather than len(intervals)/24.
func DistinctDays(intervals []IntervalRecord) int {
	seen := map[[3]int]struct{}{}
	for _, it := range intervals {
		y, m, d := it.Timestamp.Date()
		seen[[3]int{y, int(m), d}] = struct{}{}
	}
	return len(seen)
}
