package model

import "math"

// ScenarioSummary is the aggregate financial result of one scenario pass.
// All energy totals are kWh; money is dollars. PaybackYears is +Inf when
// savings are non-positive (no finite payback) and zero when it was not
// derived for the scenario at all; use HasPayback to tell a figure from
// the infinite sentinel.
type ScenarioSummary struct {
	TotalUsageKWh            float64 `json:"total_usage"`
	TotalSolarKWh            float64 `json:"total_solar"`
	TotalSelfConsumedKWh     float64 `json:"total_self_consumed"`
	TotalExportedKWh         float64 `json:"total_exported"`
	TotalImportedKWh         float64 `json:"total_imported"`
	TotalBatteryChargeKWh    float64 `json:"total_battery_charge"`
	TotalBatteryDischargeKWh float64 `json:"total_battery_discharge"`
	ExportEarnings           float64 `json:"export_earnings"`
	CostWithoutSolar         float64 `json:"cost_without_solar"`
	CostWithSolar            float64 `json:"cost_with_solar"`
	TotalSavings             float64 `json:"total_savings"`
	PaybackYears             float64 `json:"-"`
}

// HasPayback reports whether PaybackYears holds a finite figure.
func (s ScenarioSummary) HasPayback() bool {
	return s.PaybackYears > 0 && !math.IsInf(s.PaybackYears, 1)
}
