package dispatch

import (
	"math"

	"solar-appraisal/internal/model"
)

// Simulate walks the aligned interval series in order and decides, for
// every interval, how energy is sourced: direct self-consumption first,
// then battery charge from excess solar, then export; battery discharge
// against remaining usage, then import. One FlowRecord is emitted per
// input interval, in input order.
//
// Battery state of charge carries forward across intervals, so the fold
// is inherently sequential. Configuration is validated once up front;
// nothing fails mid-sequence. Negative usage or solar values are an
// upstream contract violation and produce undefined results.
func Simulate(intervals []model.IntervalRecord, cfg model.BatteryConfig) ([]model.FlowRecord, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	flows := make([]model.FlowRecord, 0, len(intervals))
	soc := 0.0
	for _, it := range intervals {
		var flow model.FlowRecord
		flow, soc = step(it, cfg, soc)
		flows = append(flows, flow)
	}
	return flows, nil
}

// step dispatches a single interval given the battery state left by the
// previous one. It is a pure function of its arguments, which keeps the
// sequential dependency explicit and the per-interval logic testable in
// isolation.
func step(it model.IntervalRecord, cfg model.BatteryConfig, soc float64) (model.FlowRecord, float64) {
	directSelfConsumed := math.Min(it.SolarKWh, it.UsageKWh)
	remainingSolar := it.SolarKWh - directSelfConsumed
	remainingUsage := it.UsageKWh - directSelfConsumed

	var chargeEnergy, dischargeEnergy float64

	if cfg.Enabled && remainingSolar > 0 {
		// Clamped by both the rate limit and remaining headroom. The
		// efficiency loss is absorbed into stored energy: the solar
		// diverted equals chargeEnergy, less is recoverable later.
		chargePossible := math.Min(cfg.MaxChargeRateKWh, cfg.CapacityKWh-soc)
		chargeEnergy = math.Min(remainingSolar, chargePossible)
		soc += chargeEnergy * cfg.RoundTripEfficiency
		remainingSolar -= chargeEnergy
	}

	exported := 0.0
	if remainingSolar > 0 {
		exported = remainingSolar
	}

	if cfg.Enabled && remainingUsage > 0 {
		dischargePossible := math.Min(cfg.MaxDischargeRateKWh, soc)
		dischargeEnergy = math.Min(remainingUsage, dischargePossible)
		soc -= dischargeEnergy
		remainingUsage -= dischargeEnergy
	}

	imported := 0.0
	if remainingUsage > 0 {
		imported = remainingUsage
	}

	return model.FlowRecord{
		Timestamp:           it.Timestamp,
		SelfConsumedKWh:     directSelfConsumed + dischargeEnergy,
		BatteryChargeKWh:    chargeEnergy,
		BatteryDischargeKWh: dischargeEnergy,
		ExportedKWh:         exported,
		ImportedKWh:         imported,
		StateOfChargeKWh:    soc,
	}, soc
}
