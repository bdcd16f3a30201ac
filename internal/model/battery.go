package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfiguration is returned when battery parameters are outside
// their physical domain. It is detected once, before a simulation starts.
var ErrInvalidConfiguration = errors.New("invalid battery configuration")

// BatteryConfig defines the battery parameters for one simulation pass.
// Units:
// - CapacityKWh: kWh
// - MaxChargeRateKWh / MaxDischargeRateKWh: kWh per interval
// - RoundTripEfficiency: (0, 1], applied once at charge time
type BatteryConfig struct {
	Enabled             bool
	CapacityKWh         float64
	MaxChargeRateKWh    float64
	MaxDischargeRateKWh float64
	RoundTripEfficiency float64
}

// Disabled returns the zero-effect configuration used for the solar-only
// baseline: capacity and rates zero, efficiency 1.0. Simulating with it is
// numerically identical to never referencing a battery at all.
func Disabled() BatteryConfig {
	return BatteryConfig{Enabled: false, RoundTripEfficiency: 1.0}
}

// Normalize forces a disabled config to its zero-effect values so both
// code paths share one set of invariants.
func (c BatteryConfig) Normalize() BatteryConfig {
	if !c.Enabled {
		return Disabled()
	}
	return c
}

// Validate fails fast on out-of-domain parameters. Disabled configs are
// normalized first and therefore always pass. Zero capacity or rates on an
// enabled battery are valid; the min() clamps simply make charge and
// discharge always zero.
func (c BatteryConfig) Validate() error {
	c = c.Normalize()
	if c.CapacityKWh < 0 {
		return fmt.Errorf("%w: capacity_kwh must be >= 0, got %v", ErrInvalidConfiguration, c.CapacityKWh)
	}
	if c.MaxChargeRateKWh < 0 {
		return fmt.Errorf("%w: max_charge_rate_kwh must be >= 0, got %v", ErrInvalidConfiguration, c.MaxChargeRateKWh)
	}
	if c.MaxDischargeRateKWh < 0 {
		return fmt.Errorf("%w: max_discharge_rate_kwh must be >= 0, got %v", ErrInvalidConfiguration, c.MaxDischargeRateKWh)
	}
	if c.RoundTripEfficiency <= 0 || c.RoundTripEfficiency > 1 {
		return fmt.Errorf("%w: round_trip_efficiency must be in (0, 1], got %v", ErrInvalidConfiguration, c.RoundTripEfficiency)
	}
	return nil
}

// FlowRecord captures how one interval's energy was sourced. Conservation
// holds per interval: solar = direct self-consumption + charge + export,
// usage = direct self-consumption + discharge + import. SelfConsumedKWh is
// reported as direct self-consumption plus battery discharge.
type FlowRecord struct {
	Timestamp           time.Time
	SelfConsumedKWh     float64
	BatteryChargeKWh    float64
	BatteryDischargeKWh float64
	ExportedKWh         float64
	ImportedKWh         float64
	StateOfChargeKWh    float64
}
