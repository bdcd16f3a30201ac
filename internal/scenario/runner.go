package scenario

import (
	"fmt"

	"solar-appraisal/internal/dispatch"
	"solar-appraisal/internal/finance"
	"solar-appraisal/internal/model"
	"solar-appraisal/internal/tariff"
)

// Params carries the financial inputs shared by both scenario passes.
type Params struct {
	Tariff             tariff.Tariff
	SupplyChargePerDay float64
	SystemCost         float64
}

// Comparison bundles the two scenario outcomes for the reporting layer.
type Comparison struct {
	SolarOnly         model.ScenarioSummary
	Battery           model.ScenarioSummary
	SolarOnlyFlows    []model.FlowRecord
	BatteryFlows      []model.FlowRecord
	SupplyChargeTotal float64
	SystemCost        float64
	DistinctDays      int
}

// Run simulates the same interval series twice — once with the battery
// disabled as the solar-only baseline, once with the supplied battery —
// and aggregates each pass under the same tariff. The two passes own
// independent state; the interval series is shared read-only.
//
// Payback is derived for the battery scenario only, from the battery
// scenario's savings.
func Run(intervals []model.IntervalRecord, battery model.BatteryConfig, p Params) (*Comparison, error) {
	if len(intervals) == 0 {
		return nil, fmt.Errorf("no intervals")
	}
	if err := p.Tariff.Validate(); err != nil {
		return nil, fmt.Errorf("tariff invalid: %w", err)
	}

	solarFlows, err := dispatch.Simulate(intervals, model.Disabled())
	if err != nil {
		return nil, fmt.Errorf("solar-only pass: %w", err)
	}
	batteryFlows, err := dispatch.Simulate(intervals, battery)
	if err != nil {
		return nil, fmt.Errorf("battery pass: %w", err)
	}

	days := model.DistinctDays(intervals)
	solarOnly := finance.Aggregate(solarFlows, intervals, p.Tariff, p.SupplyChargePerDay, days)
	withBattery := finance.Aggregate(batteryFlows, intervals, p.Tariff, p.SupplyChargePerDay, days)
	withBattery.PaybackYears = finance.PaybackYears(p.SystemCost, withBattery.TotalSavings)

	return &Comparison{
		SolarOnly:         solarOnly,
		Battery:           withBattery,
		SolarOnlyFlows:    solarFlows,
		BatteryFlows:      batteryFlows,
		SupplyChargeTotal: p.SupplyChargePerDay * float64(days),
		SystemCost:        p.SystemCost,
		DistinctDays:      days,
	}, nil
}
