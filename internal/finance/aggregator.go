package finance

import (
	"math"

	"solar-appraisal/internal/model"
	"solar-appraisal/internal/tariff"
)

// Aggregate folds a flow sequence and its source intervals into a scenario
// summary under the given tariff. flows and intervals must be the aligned
// outputs and inputs of one Simulate pass (same length, same order).
//
// Pure aggregation: inputs are never mutated, so the same flow sequence can
// be re-aggregated under different tariff or supply-charge parameters for
// sensitivity analysis. Payback is not derived here; see PaybackYears.
func Aggregate(
	flows []model.FlowRecord,
	intervals []model.IntervalRecord,
	t tariff.Tariff,
	supplyChargePerDay float64,
	distinctDays int,
) model.ScenarioSummary {
	var s model.ScenarioSummary
	for i, f := range flows {
		it := intervals[i]
		_, feedIn := t.RateFor(it.Timestamp)

		s.TotalUsageKWh += it.UsageKWh
		s.TotalSolarKWh += it.SolarKWh
		s.TotalSelfConsumedKWh += f.SelfConsumedKWh
		s.TotalExportedKWh += f.ExportedKWh
		s.TotalImportedKWh += f.ImportedKWh
		s.TotalBatteryChargeKWh += f.BatteryChargeKWh
		s.TotalBatteryDischargeKWh += f.BatteryDischargeKWh
		s.ExportEarnings += f.ExportedKWh * feedIn
	}

	supplyChargeTotal := supplyChargePerDay * float64(distinctDays)
	s.CostWithoutSolar = s.TotalUsageKWh*t.EnergyPricePerKWh + supplyChargeTotal
	s.CostWithSolar = s.TotalImportedKWh*t.EnergyPricePerKWh - s.ExportEarnings + supplyChargeTotal
	s.TotalSavings = s.CostWithoutSolar - s.CostWithSolar
	return s
}

// PaybackYears divides the system cost by annual savings. Non-positive
// savings have no finite payback; the +Inf sentinel is a defined outcome,
// not an error, and callers distinguish it with math.IsInf.
func PaybackYears(systemCost, totalSavings float64) float64 {
	if totalSavings > 0 {
		return systemCost / totalSavings
	}
	return math.Inf(1)
}
