package analysis

import (
	"fmt"

	"solar-appraisal/internal/model"
	"solar-appraisal/internal/scenario"
)

// CapacityPoint is the battery-scenario outcome for one candidate
// capacity.
type CapacityPoint struct {
	CapacityKWh  float64 `json:"capacity_kwh"`
	TotalSavings float64 `json:"total_savings"`
	PaybackYears float64 `json:"payback_years"`
}

// SweepCapacity re-runs the full two-pass scenario for each candidate
// battery capacity, keeping every other battery parameter fixed. Useful
// for sizing: the marginal saving of extra capacity usually flattens once
// the battery covers the evening load.
func SweepCapacity(
	intervals []model.IntervalRecord,
	base model.BatteryConfig,
	capacities []float64,
	params scenario.Params,
) ([]CapacityPoint, error) {
	out := make([]CapacityPoint, 0, len(capacities))
	for _, capKWh := range capacities {
		cfg := base
		cfg.Enabled = true
		cfg.CapacityKWh = capKWh
		cmp, err := scenario.Run(intervals, cfg, params)
		if err != nil {
			return nil, fmt.Errorf("capacity %.2f kWh: %w", capKWh, err)
		}
		out = append(out, CapacityPoint{
			CapacityKWh:  capKWh,
			TotalSavings: cmp.Battery.TotalSavings,
			PaybackYears: cmp.Battery.PaybackYears,
		})
	}
	return out, nil
}
