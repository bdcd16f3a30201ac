package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"solar-appraisal/internal/data"
	"solar-appraisal/internal/model"
	"solar-appraisal/internal/tariff"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load battery parameters from a separate YAML (e.g.
	// examples/batteries/*.yaml). If both BatteryFile and Battery are
	// provided, Battery overrides BatteryFile.
	BatteryFile string        `yaml:"battery_file"`
	Battery     BatteryConfig `yaml:"battery"`
	System      SystemConfig  `yaml:"system"`
	Tariff      TariffConfig  `yaml:"tariff"`
	Finance     FinanceConfig `yaml:"finance"`
	Data        DataConfig    `yaml:"data"`
}

type BatteryConfig struct {
	Enabled             bool    `yaml:"enabled"`
	CapacityKWh         float64 `yaml:"capacity_kwh"`
	MaxChargeRateKWh    float64 `yaml:"max_charge_rate_kwh"`
	MaxDischargeRateKWh float64 `yaml:"max_discharge_rate_kwh"`
	RoundTripEfficiency float64 `yaml:"round_trip_efficiency"`
}

// SystemConfig mirrors the PVWatts system parameters.
type SystemConfig struct {
	CapacityKW     float64 `yaml:"capacity_kw"`
	ModuleType     int     `yaml:"module_type"`
	LossesPercent  float64 `yaml:"losses_percent"`
	ArrayType      int     `yaml:"array_type"`
	TiltDegrees    float64 `yaml:"tilt_degrees"`
	AzimuthDegrees float64 `yaml:"azimuth_degrees"`
	DCACRatio      float64 `yaml:"dc_ac_ratio"`
	GCR            float64 `yaml:"ground_coverage_ratio"`
}

type TariffConfig struct {
	EnergyPricePerKWh   float64 `yaml:"energy_price_per_kwh"`
	PeakFeedInPerKWh    float64 `yaml:"peak_feed_in_per_kwh"`
	OffPeakFeedInPerKWh float64 `yaml:"off_peak_feed_in_per_kwh"`
	PeakStartHour       int     `yaml:"peak_start_hour"`
	PeakEndHour         int     `yaml:"peak_end_hour"`
}

type FinanceConfig struct {
	SupplyChargePerDay float64 `yaml:"supply_charge_per_day"`
	SystemCost         float64 `yaml:"system_cost"`
}

// DataConfig points at the input files and the modeled year.
type DataConfig struct {
	Year      int     `yaml:"year"`
	Site      string  `yaml:"site"`
	SitesFile string  `yaml:"sites_file"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	SolarCSV  string  `yaml:"solar_csv"`
	MeterCSV  string  `yaml:"meter_csv"`
}

// Load reads, defaults and validates a config file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not default or validate
// it. Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If battery_file is set, load it and merge in any explicit overrides
	// from c.Battery.
	if c.BatteryFile != "" {
		batteryPath := c.BatteryFile
		if !filepath.IsAbs(batteryPath) {
			// Prefer interpreting relative paths as relative to the config
			// file directory, but fall back to the provided path (relative
			// to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), batteryPath)
			if _, err := os.Stat(cand); err == nil {
				batteryPath = cand
			}
		}
		loaded, err := loadBatteryFile(batteryPath)
		if err != nil {
			return nil, err
		}
		c.Battery = MergeBattery(loaded, c.Battery)
	}
	return &c, nil
}

// applyDefaults fills the PVWatts defaults the interactive original used:
// standard modules, fixed open rack, 15% losses, 1.2 DC/AC, 0.4 GCR.
func (c *Config) applyDefaults() {
	if c.System.LossesPercent == 0 {
		c.System.LossesPercent = 15.0
	}
	if c.System.DCACRatio == 0 {
		c.System.DCACRatio = 1.2
	}
	if c.System.GCR == 0 {
		c.System.GCR = 0.4
	}
	if c.Battery.Enabled && c.Battery.RoundTripEfficiency == 0 {
		c.Battery.RoundTripEfficiency = 0.9
	}
	if c.Data.Year == 0 {
		c.Data.Year = 2024
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.Battery.ToModelConfig().Validate(); err != nil {
		return fmt.Errorf("battery config invalid: %w", err)
	}
	if err := c.Tariff.ToTariff().Validate(); err != nil {
		return fmt.Errorf("tariff config invalid: %w", err)
	}
	if c.Finance.SupplyChargePerDay < 0 {
		return errors.New("finance.supply_charge_per_day must be >= 0")
	}
	if c.Finance.SystemCost < 0 {
		return errors.New("finance.system_cost must be >= 0")
	}
	// System parameters are only needed when fetching from PVWatts;
	// appraisals over a pre-fetched solar CSV can leave them zero.
	if c.System.CapacityKW != 0 {
		if err := c.ToSystemParams().Validate(); err != nil {
			return fmt.Errorf("system config invalid: %w", err)
		}
	}
	return nil
}

func (b BatteryConfig) ToModelConfig() model.BatteryConfig {
	return model.BatteryConfig{
		Enabled:             b.Enabled,
		CapacityKWh:         b.CapacityKWh,
		MaxChargeRateKWh:    b.MaxChargeRateKWh,
		MaxDischargeRateKWh: b.MaxDischargeRateKWh,
		RoundTripEfficiency: b.RoundTripEfficiency,
	}.Normalize()
}

func (t TariffConfig) ToTariff() tariff.Tariff {
	return tariff.Tariff{
		EnergyPricePerKWh:   t.EnergyPricePerKWh,
		PeakFeedInPerKWh:    t.PeakFeedInPerKWh,
		OffPeakFeedInPerKWh: t.OffPeakFeedInPerKWh,
		PeakStartHour:       t.PeakStartHour,
		PeakEndHour:         t.PeakEndHour,
	}
}

// ToSystemParams resolves the PVWatts request parameters, looking up the
// configured site when explicit coordinates are absent.
func (c *Config) ToSystemParams() data.SystemParams {
	lat, lon := c.Data.Latitude, c.Data.Longitude
	if lat == 0 && lon == 0 && c.Data.Site != "" {
		if site, err := data.FindSite(c.Data.SitesFile, c.Data.Site); err == nil {
			lat, lon = site.Latitude, site.Longitude
		}
	}
	return data.SystemParams{
		SystemCapacityKW: c.System.CapacityKW,
		ModuleType:       c.System.ModuleType,
		LossesPercent:    c.System.LossesPercent,
		ArrayType:        c.System.ArrayType,
		TiltDegrees:      c.System.TiltDegrees,
		AzimuthDegrees:   c.System.AzimuthDegrees,
		DCACRatio:        c.System.DCACRatio,
		GCR:              c.System.GCR,
		Latitude:         lat,
		Longitude:        lon,
	}
}

type batteryFileWrapper struct {
	Battery BatteryConfig `yaml:"battery"`
}

func loadBatteryFile(path string) (BatteryConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BatteryConfig{}, err
	}
	var w batteryFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return BatteryConfig{}, err
	}
	return w.Battery, nil
}

// MergeBattery overlays non-zero fields from override onto base. This is
// used when loading a battery file and then applying overrides from the
// main config or an API request.
func MergeBattery(base, override BatteryConfig) BatteryConfig {
	out := base
	if override.Enabled {
		out.Enabled = true
	}
	if override.CapacityKWh != 0 {
		out.CapacityKWh = override.CapacityKWh
	}
	if override.MaxChargeRateKWh != 0 {
		out.MaxChargeRateKWh = override.MaxChargeRateKWh
	}
	if override.MaxDischargeRateKWh != 0 {
		out.MaxDischargeRateKWh = override.MaxDischargeRateKWh
	}
	if override.RoundTripEfficiency != 0 {
		out.RoundTripEfficiency = override.RoundTripEfficiency
	}
	return out
}
