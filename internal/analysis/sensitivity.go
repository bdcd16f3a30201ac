package analysis

import (
	"solar-appraisal/internal/finance"
	"solar-appraisal/internal/model"
	"solar-appraisal/internal/tariff"
)

// SensitivityPoint is one re-aggregation of a fixed flow sequence under a
// scaled tariff.
type SensitivityPoint struct {
	EnergyPricePerKWh float64 `json:"energy_price_per_kwh"`
	PriceMultiplier   float64 `json:"price_multiplier"`
	CostWithSolar     float64 `json:"cost_with_solar"`
	TotalSavings      float64 `json:"total_savings"`
	PaybackYears      float64 `json:"payback_years"`
}

// TariffSensitivity re-runs the financial aggregation over the same flow
// sequence with the energy price scaled by each multiplier, leaving the
// dispatch results untouched. Because aggregation is pure this needs no
// re-simulation.
func TariffSensitivity(
	flows []model.FlowRecord,
	intervals []model.IntervalRecord,
	base tariff.Tariff,
	supplyChargePerDay float64,
	systemCost float64,
	multipliers []float64,
) []SensitivityPoint {
	days := model.DistinctDays(intervals)
	out := make([]SensitivityPoint, 0, len(multipliers))
	for _, m := range multipliers {
		t := base
		t.EnergyPricePerKWh = base.EnergyPricePerKWh * m
		s := finance.Aggregate(flows, intervals, t, supplyChargePerDay, days)
		out = append(out, SensitivityPoint{
			EnergyPricePerKWh: t.EnergyPricePerKWh,
			PriceMultiplier:   m,
			CostWithSolar:     s.CostWithSolar,
			TotalSavings:      s.TotalSavings,
			PaybackYears:      finance.PaybackYears(systemCost, s.TotalSavings),
		})
	}
	return out
}
