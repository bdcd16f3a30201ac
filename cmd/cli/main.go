package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"solar-appraisal/internal/analysis"
	"solar-appraisal/internal/config"
	"solar-appraisal/internal/data"
	"solar-appraisal/internal/report"
	"solar-appraisal/internal/scenario"

	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "appraise":
		cmdAppraise(os.Args[2:])
	case "fetch-solar":
		cmdFetchSolar(os.Args[2:])
	case "convert-meter":
		cmdConvertMeter(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli fetch-solar --config examples/config.yaml --out results/solar_hourly.csv")
	fmt.Println("  cli convert-meter --in HalfHourlyMeterData.csv --out HourlyMeterData.csv")
	fmt.Println("  cli appraise --config examples/config.yaml --out-dir results")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - fetch-solar needs PVWATTS_API_KEY in the environment or a .env file")
	fmt.Println("  - appraise reads the solar and meter CSV paths from the config")
	fmt.Println("  - appraise writes flows CSV + summary JSON and prints both scenarios")
}

func cmdFetchSolar(args []string) {
	fs := flag.NewFlagSet("fetch-solar", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "results/solar_hourly.csv", "Output CSV path")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	_ = godotenv.Load()
	apiKey := os.Getenv("PVWATTS_API_KEY")
	if apiKey == "" {
		fmt.Println("PVWATTS_API_KEY not set (environment or .env)")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	client := data.NewPVWattsClient(apiKey, os.Getenv("PVWATTS_BASE_URL"))
	records, err := client.FetchHourlyProduction(cfg.ToSystemParams(), cfg.Data.Year)
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := data.WriteSolarCSV(*outPath, records); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %d hourly samples to %s\n", len(records), *outPath)
}

func cmdConvertMeter(args []string) {
	fs := flag.NewFlagSet("convert-meter", flag.ExitOnError)
	inPath := fs.String("in", "HalfHourlyMeterData.csv", "Half-hourly meter CSV")
	outPath := fs.String("out", "HourlyMeterData.csv", "Hourly meter CSV to write")
	_ = fs.Parse(args)

	readings, err := data.ConvertHalfHourlyToHourly(*inPath, *outPath)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %d hourly readings to %s\n", len(readings), *outPath)
}

func cmdAppraise(args []string) {
	fs := flag.NewFlagSet("appraise", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	outDir := fs.String("out-dir", "results", "Directory for flows CSV and summary JSON")
	sweep := fs.String("sweep", "", "Optional: comma-separated battery capacities (kWh) to compare")
	sensitivity := fs.String("sensitivity", "", "Optional: comma-separated energy-price multipliers (e.g. 0.8,1.0,1.2)")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	if cfg.Data.SolarCSV == "" || cfg.Data.MeterCSV == "" {
		fmt.Println("config must set data.solar_csv and data.meter_csv (run fetch-solar first)")
		os.Exit(2)
	}

	solar, err := data.ReadSolarCSV(cfg.Data.SolarCSV)
	if err != nil {
		panic(err)
	}
	readings, err := data.ReadHourlyMeterCSV(cfg.Data.MeterCSV)
	if err != nil {
		panic(err)
	}
	intervals, err := data.Align(readings, solar)
	if err != nil {
		panic(err)
	}

	params := scenario.Params{
		Tariff:             cfg.Tariff.ToTariff(),
		SupplyChargePerDay: cfg.Finance.SupplyChargePerDay,
		SystemCost:         cfg.Finance.SystemCost,
	}
	cmp, err := scenario.Run(intervals, cfg.Battery.ToModelConfig(), params)
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}
	flowsPath := filepath.Join(*outDir, "solar_analysis_results.csv")
	if err := report.WriteFlowsCSV(flowsPath, intervals, cmp.BatteryFlows); err != nil {
		panic(err)
	}
	summaryPath := filepath.Join(*outDir, "solar_summary.json")
	if err := report.WriteSummaryJSON(summaryPath, cmp); err != nil {
		panic(err)
	}

	printComparison(cmp)
	fmt.Printf("\nWrote %s and %s\n", flowsPath, summaryPath)

	if *sweep != "" {
		capacities, err := parseFloats(*sweep, "capacity")
		if err != nil {
			panic(err)
		}
		points, err := analysis.SweepCapacity(intervals, cfg.Battery.ToModelConfig(), capacities, params)
		if err != nil {
			panic(err)
		}
		fmt.Println("\n--- Capacity sweep ---")
		fmt.Printf("%-14s %-14s %-10s\n", "capacity_kwh", "savings", "payback")
		for _, p := range points {
			fmt.Printf("%-14.1f $%-13.2f %s\n", p.CapacityKWh, p.TotalSavings, fmtPayback(p.PaybackYears))
		}
	}

	if *sensitivity != "" {
		multipliers, err := parseFloats(*sensitivity, "multiplier")
		if err != nil {
			panic(err)
		}
		points := analysis.TariffSensitivity(
			cmp.BatteryFlows, intervals, params.Tariff,
			params.SupplyChargePerDay, params.SystemCost, multipliers)
		fmt.Println("\n--- Energy price sensitivity ---")
		fmt.Printf("%-12s %-14s %-14s %-10s\n", "price", "cost_w_solar", "savings", "payback")
		for _, p := range points {
			fmt.Printf("$%-11.4f $%-13.2f $%-13.2f %s\n",
				p.EnergyPricePerKWh, p.CostWithSolar, p.TotalSavings, fmtPayback(p.PaybackYears))
		}
	}
}

func printComparison(cmp *scenario.Comparison) {
	fmt.Println("\n--- Solar Financial Analysis ---")
	fmt.Printf("Total energy used: %.2f kWh\n", cmp.Battery.TotalUsageKWh)
	fmt.Printf("Total solar produced: %.2f kWh\n", cmp.Battery.TotalSolarKWh)
	fmt.Printf("Self-consumed solar (solar only): %.2f kWh\n", cmp.SolarOnly.TotalSelfConsumedKWh)
	fmt.Printf("Self-consumed solar (including battery): %.2f kWh\n", cmp.Battery.TotalSelfConsumedKWh)
	fmt.Printf("Exported to grid: %.2f kWh\n", cmp.Battery.TotalExportedKWh)
	fmt.Printf("Imported from grid: %.2f kWh\n", cmp.Battery.TotalImportedKWh)
	fmt.Printf("Total battery charge: %.2f kWh\n", cmp.Battery.TotalBatteryChargeKWh)
	fmt.Printf("Total battery discharge: %.2f kWh\n", cmp.Battery.TotalBatteryDischargeKWh)
	fmt.Printf("Annual supply charge: $%.2f\n", cmp.SupplyChargeTotal)
	fmt.Printf("Total earned from exported electricity: $%.2f\n", cmp.Battery.ExportEarnings)
	fmt.Printf("Cost without solar: $%.2f\n", cmp.Battery.CostWithoutSolar)
	fmt.Printf("Cost with solar: $%.2f\n", cmp.Battery.CostWithSolar)
	fmt.Printf("Total savings per year: $%.2f\n", cmp.Battery.TotalSavings)
	fmt.Printf("Estimated payback period: %s\n", fmtPayback(cmp.Battery.PaybackYears))
}

func fmtPayback(years float64) string {
	if math.IsInf(years, 1) || years <= 0 {
		return "never (no positive savings)"
	}
	return fmt.Sprintf("%.1f years", years)
}

func parseFloats(s, what string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", what, p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
