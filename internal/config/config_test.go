package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validYAML = `
battery:
  enabled: true
  capacity_kwh: 13.5
  max_charge_rate_kwh: 5
  max_discharge_rate_kwh: 5
  round_trip_efficiency: 0.9
system:
  capacity_kw: 6.6
  tilt_degrees: 20
tariff:
  energy_price_per_kwh: 0.315823
  peak_feed_in_per_kwh: 0.10
  off_peak_feed_in_per_kwh: 0.02
  peak_start_hour: 15
  peak_end_hour: 20
finance:
  supply_charge_per_day: 1.1322
  system_cost: 15000
data:
  site: perth
`

func TestLoadValid(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", validYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Battery.Enabled)
	assert.InDelta(t, 13.5, cfg.Battery.CapacityKWh, 1e-9)
	assert.InDelta(t, 0.315823, cfg.Tariff.EnergyPricePerKWh, 1e-9)
	assert.InDelta(t, 1.1322, cfg.Finance.SupplyChargePerDay, 1e-9)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", validYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.InDelta(t, 15.0, cfg.System.LossesPercent, 1e-9)
	assert.InDelta(t, 1.2, cfg.System.DCACRatio, 1e-9)
	assert.InDelta(t, 0.4, cfg.System.GCR, 1e-9)
	assert.Equal(t, 2024, cfg.Data.Year)
}

func TestLoadBatteryFileMerge(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "powerwall.yaml", `
battery:
  enabled: true
  capacity_kwh: 13.5
  max_charge_rate_kwh: 5
  max_discharge_rate_kwh: 5
  round_trip_efficiency: 0.9
`)
	path := writeConfig(t, dir, "config.yaml", `
battery_file: powerwall.yaml
battery:
  capacity_kwh: 20
tariff:
  energy_price_per_kwh: 0.30
  peak_start_hour: 15
  peak_end_hour: 20
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	// The inline battery section overrides only the fields it sets.
	assert.True(t, cfg.Battery.Enabled)
	assert.InDelta(t, 20, cfg.Battery.CapacityKWh, 1e-9)
	assert.InDelta(t, 5, cfg.Battery.MaxChargeRateKWh, 1e-9)
	assert.InDelta(t, 0.9, cfg.Battery.RoundTripEfficiency, 1e-9)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad efficiency", `
battery:
  enabled: true
  capacity_kwh: 10
  round_trip_efficiency: 1.5
`},
		{"negative supply charge", `
finance:
  supply_charge_per_day: -1
`},
		{"bad tariff window", `
tariff:
  peak_start_hour: 22
  peak_end_hour: 15
`},
		{"bad system params", `
system:
  capacity_kw: 6.6
  tilt_degrees: 120
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "config.yaml", tt.yaml)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestToSystemParamsSiteLookup(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", validYAML)
	cfg, err := Load(path)
	require.NoError(t, err)

	params := cfg.ToSystemParams()
	assert.InDelta(t, -32.03, params.Latitude, 1e-9)
	assert.InDelta(t, 115.98, params.Longitude, 1e-9)

	// Explicit coordinates win over the site lookup.
	cfg.Data.Latitude = -31.95
	cfg.Data.Longitude = 115.86
	params = cfg.ToSystemParams()
	assert.InDelta(t, -31.95, params.Latitude, 1e-9)
}

func TestMergeBattery(t *testing.T) {
	base := BatteryConfig{Enabled: true, CapacityKWh: 13.5, MaxChargeRateKWh: 5, MaxDischargeRateKWh: 5, RoundTripEfficiency: 0.9}

	merged := MergeBattery(base, BatteryConfig{CapacityKWh: 27})
	assert.InDelta(t, 27, merged.CapacityKWh, 1e-9)
	assert.InDelta(t, 5, merged.MaxChargeRateKWh, 1e-9)
	assert.True(t, merged.Enabled)

	// Zero-valued override changes nothing.
	assert.Equal(t, base, MergeBattery(base, BatteryConfig{}))
}
