package report

import (
	"encoding/json"
	"math"
	"os"

	"solar-appraisal/internal/model"
	"solar-appraisal/internal/scenario"
)

// scenarioJSON mirrors ScenarioSummary with payback made serializable:
// an infinite payback becomes JSON null rather than an encoding error.
type scenarioJSON struct {
	model.ScenarioSummary
	PaybackYears *float64 `json:"payback_years,omitempty"`
}

// Summary is the on-disk shape of the appraisal result: both scenarios
// plus the figures they share.
type Summary struct {
	SolarOnly         scenarioJSON `json:"solar_only"`
	Battery           scenarioJSON `json:"battery"`
	SupplyChargeTotal float64      `json:"supply_charge_total"`
	SystemCost        float64      `json:"system_cost"`
}

// NewSummary converts a scenario comparison into its persisted form.
func NewSummary(cmp *scenario.Comparison) Summary {
	return Summary{
		SolarOnly:         toJSON(cmp.SolarOnly),
		Battery:           toJSON(cmp.Battery),
		SupplyChargeTotal: cmp.SupplyChargeTotal,
		SystemCost:        cmp.SystemCost,
	}
}

func toJSON(s model.ScenarioSummary) scenarioJSON {
	out := scenarioJSON{ScenarioSummary: s}
	if s.PaybackYears > 0 && !math.IsInf(s.PaybackYears, 1) {
		v := s.PaybackYears
		out.PaybackYears = &v
	}
	return out
}

// WriteSummaryJSON writes the appraisal summary for the reporting
// collaborator.
func WriteSummaryJSON(path string, cmp *scenario.Comparison) error {
	raw, err := json.MarshalIndent(NewSummary(cmp), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
