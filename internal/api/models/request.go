package models

// AppraiseRequest represents the request body for running an appraisal.
// Intervals may be supplied inline; otherwise the server fetches a year of
// production from PVWatts and aligns it with an uploaded meter series.
type AppraiseRequest struct {
	Intervals []IntervalInput `json:"intervals,omitempty"`
	Solar     *SolarSource    `json:"solar,omitempty"`
	Meter     []MeterInput    `json:"meter,omitempty"`
	Battery   BatteryConfig   `json:"battery"`
	Tariff    TariffConfig    `json:"tariff" binding:"required"`
	Finance   FinanceConfig   `json:"finance"`
	Options   AppraiseOptions `json:"options,omitempty"`
}

// IntervalInput is one pre-aligned usage/production interval.
type IntervalInput struct {
	Timestamp string  `json:"timestamp" binding:"required"` // RFC 3339 or "2006-01-02 15:04"
	UsageKWh  float64 `json:"usage_kwh"`
	SolarKWh  float64 `json:"solar_kwh"`
}

// MeterInput is one hourly meter reading.
type MeterInput struct {
	Timestamp string  `json:"timestamp" binding:"required"`
	UsageKWh  float64 `json:"usage_kwh"`
	Status    string  `json:"status,omitempty"` // "Actual" or "Estimated"
}

// SolarSource asks the server to fetch modeled production from PVWatts.
type SolarSource struct {
	APIKey string       `json:"api_key" binding:"required"` // PVWatts API key
	Year   int          `json:"year,omitempty"`             // default 2024
	System SystemParams `json:"system" binding:"required"`
}

// SystemParams mirrors the PVWatts request parameters.
type SystemParams struct {
	CapacityKW     float64 `json:"capacity_kw" binding:"required"`
	ModuleType     int     `json:"module_type"`
	LossesPercent  float64 `json:"losses_percent"`
	ArrayType      int     `json:"array_type"`
	TiltDegrees    float64 `json:"tilt_degrees"`
	AzimuthDegrees float64 `json:"azimuth_degrees"`
	DCACRatio      float64 `json:"dc_ac_ratio"`
	GCR            float64 `json:"ground_coverage_ratio"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
}

// BatteryConfig defines battery parameters.
type BatteryConfig struct {
	Enabled             bool    `json:"enabled"`
	CapacityKWh         float64 `json:"capacity_kwh"`
	MaxChargeRateKWh    float64 `json:"max_charge_rate_kwh"`
	MaxDischargeRateKWh float64 `json:"max_discharge_rate_kwh"`
	RoundTripEfficiency float64 `json:"round_trip_efficiency"`
}

// TariffConfig defines prices and the feed-in peak window.
type TariffConfig struct {
	EnergyPricePerKWh   float64 `json:"energy_price_per_kwh" binding:"required"`
	PeakFeedInPerKWh    float64 `json:"peak_feed_in_per_kwh"`
	OffPeakFeedInPerKWh float64 `json:"off_peak_feed_in_per_kwh"`
	PeakStartHour       int     `json:"peak_start_hour"`
	PeakEndHour         int     `json:"peak_end_hour"`
}

// FinanceConfig carries the shared financial inputs.
type FinanceConfig struct {
	SupplyChargePerDay float64 `json:"supply_charge_per_day"`
	SystemCost         float64 `json:"system_cost"`
}

// AppraiseOptions contains optional appraisal parameters.
type AppraiseOptions struct {
	IncludeFlows bool `json:"include_flows,omitempty"` // default: false
}

// SweepRequest asks for the battery scenario across candidate capacities.
type SweepRequest struct {
	AppraiseRequest
	CapacitiesKWh []float64 `json:"capacities_kwh" binding:"required"`
}
