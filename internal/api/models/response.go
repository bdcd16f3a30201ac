package models

import "time"

// AppraiseResponse carries both scenario summaries.
type AppraiseResponse struct {
	Status            string          `json:"status"`
	SolarOnly         ScenarioSummary `json:"solar_only"`
	Battery           ScenarioSummary `json:"battery"`
	SupplyChargeTotal float64         `json:"supply_charge_total"`
	SystemCost        float64         `json:"system_cost"`
	DistinctDays      int             `json:"distinct_days"`
	Flows             []FlowRow       `json:"flows,omitempty"` // battery scenario, when requested
}

// ScenarioSummary mirrors the core summary; payback is null when the
// scenario never pays back (or was not derived).
type ScenarioSummary struct {
	TotalUsageKWh            float64  `json:"total_usage"`
	TotalSolarKWh            float64  `json:"total_solar"`
	TotalSelfConsumedKWh     float64  `json:"total_self_consumed"`
	TotalExportedKWh         float64  `json:"total_exported"`
	TotalImportedKWh         float64  `json:"total_imported"`
	TotalBatteryChargeKWh    float64  `json:"total_battery_charge"`
	TotalBatteryDischargeKWh float64  `json:"total_battery_discharge"`
	ExportEarnings           float64  `json:"export_earnings"`
	CostWithoutSolar         float64  `json:"cost_without_solar"`
	CostWithSolar            float64  `json:"cost_with_solar"`
	TotalSavings             float64  `json:"total_savings"`
	PaybackYears             *float64 `json:"payback_years,omitempty"`
}

// FlowRow is one interval of the dispatch ledger.
type FlowRow struct {
	Timestamp           time.Time `json:"timestamp"`
	UsageKWh            float64   `json:"usage_kwh"`
	SolarKWh            float64   `json:"solar_kwh"`
	SelfConsumedKWh     float64   `json:"self_consumed"`
	BatteryChargeKWh    float64   `json:"battery_charge"`
	BatteryDischargeKWh float64   `json:"battery_discharge"`
	ExportedKWh         float64   `json:"exported"`
	ImportedKWh         float64   `json:"imported"`
	StateOfChargeKWh    float64   `json:"battery_soc"`
}

// SweepResponse lists the battery outcome per candidate capacity.
type SweepResponse struct {
	Status string       `json:"status"`
	Points []SweepPoint `json:"points"`
}

// SweepPoint is one candidate capacity's outcome.
type SweepPoint struct {
	CapacityKWh  float64  `json:"capacity_kwh"`
	TotalSavings float64  `json:"total_savings"`
	PaybackYears *float64 `json:"payback_years,omitempty"`
}

// SiteInfo describes a known modeling site.
type SiteInfo struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
