package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"solar-appraisal/internal/analysis"
	"solar-appraisal/internal/api/models"
	"solar-appraisal/internal/data"
	"solar-appraisal/internal/model"
	"solar-appraisal/internal/scenario"
	"solar-appraisal/internal/tariff"

	"github.com/gin-gonic/gin"
)

// AppraiseHandler handles appraisal requests.
type AppraiseHandler struct {
	// pvwattsBaseURL overrides the PVWatts endpoint in tests.
	pvwattsBaseURL string
}

// NewAppraiseHandler creates a new appraisal handler.
func NewAppraiseHandler(pvwattsBaseURL string) *AppraiseHandler {
	return &AppraiseHandler{pvwattsBaseURL: pvwattsBaseURL}
}

// RunAppraisal handles POST /api/v1/appraise.
func (h *AppraiseHandler) RunAppraisal(c *gin.Context) {
	var req models.AppraiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	intervals, t, params, battery, ok := h.prepare(c, &req)
	if !ok {
		return
	}

	cmp, err := scenario.Run(intervals, battery, scenario.Params{
		Tariff:             t,
		SupplyChargePerDay: params.SupplyChargePerDay,
		SystemCost:         params.SystemCost,
	})
	if err != nil {
		writeScenarioError(c, err)
		return
	}

	resp := models.AppraiseResponse{
		Status:            "ok",
		SolarOnly:         toSummary(cmp.SolarOnly),
		Battery:           toSummary(cmp.Battery),
		SupplyChargeTotal: cmp.SupplyChargeTotal,
		SystemCost:        cmp.SystemCost,
		DistinctDays:      cmp.DistinctDays,
	}
	if req.Options.IncludeFlows {
		resp.Flows = toFlowRows(intervals, cmp.BatteryFlows)
	}
	c.JSON(http.StatusOK, resp)
}

// RunSweep handles POST /api/v1/appraise/sweep.
func (h *AppraiseHandler) RunSweep(c *gin.Context) {
	var req models.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	if len(req.CapacitiesKWh) == 0 {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "capacities_kwh is required", nil)
		return
	}

	intervals, t, params, battery, ok := h.prepare(c, &req.AppraiseRequest)
	if !ok {
		return
	}

	points, err := analysis.SweepCapacity(intervals, battery, req.CapacitiesKWh, scenario.Params{
		Tariff:             t,
		SupplyChargePerDay: params.SupplyChargePerDay,
		SystemCost:         params.SystemCost,
	})
	if err != nil {
		writeScenarioError(c, err)
		return
	}

	resp := models.SweepResponse{Status: "ok"}
	for _, p := range points {
		resp.Points = append(resp.Points, models.SweepPoint{
			CapacityKWh:  p.CapacityKWh,
			TotalSavings: p.TotalSavings,
			PaybackYears: finitePtr(p.PaybackYears),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// prepare resolves the interval series and config objects from a request,
// writing an error response and returning ok=false on failure.
func (h *AppraiseHandler) prepare(c *gin.Context, req *models.AppraiseRequest) ([]model.IntervalRecord, tariff.Tariff, models.FinanceConfig, model.BatteryConfig, bool) {
	var zero tariff.Tariff
	intervals, err := h.resolveIntervals(req)
	if err != nil {
		writeDataError(c, err)
		return nil, zero, models.FinanceConfig{}, model.BatteryConfig{}, false
	}
	if len(intervals) == 0 {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "no intervals to appraise", nil)
		return nil, zero, models.FinanceConfig{}, model.BatteryConfig{}, false
	}

	t := tariff.Tariff{
		EnergyPricePerKWh:   req.Tariff.EnergyPricePerKWh,
		PeakFeedInPerKWh:    req.Tariff.PeakFeedInPerKWh,
		OffPeakFeedInPerKWh: req.Tariff.OffPeakFeedInPerKWh,
		PeakStartHour:       req.Tariff.PeakStartHour,
		PeakEndHour:         req.Tariff.PeakEndHour,
	}
	if err := t.Validate(); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_TARIFF", err.Error(), nil)
		return nil, zero, models.FinanceConfig{}, model.BatteryConfig{}, false
	}

	battery := model.BatteryConfig{
		Enabled:             req.Battery.Enabled,
		CapacityKWh:         req.Battery.CapacityKWh,
		MaxChargeRateKWh:    req.Battery.MaxChargeRateKWh,
		MaxDischargeRateKWh: req.Battery.MaxDischargeRateKWh,
		RoundTripEfficiency: req.Battery.RoundTripEfficiency,
	}
	if err := battery.Validate(); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIGURATION", err.Error(), nil)
		return nil, zero, models.FinanceConfig{}, model.BatteryConfig{}, false
	}

	return intervals, t, req.Finance, battery, true
}

// resolveIntervals builds the aligned series: inline intervals win;
// otherwise meter readings are aligned with a PVWatts fetch.
func (h *AppraiseHandler) resolveIntervals(req *models.AppraiseRequest) ([]model.IntervalRecord, error) {
	if len(req.Intervals) > 0 {
		out := make([]model.IntervalRecord, 0, len(req.Intervals))
		for i, in := range req.Intervals {
			ts, err := parseTimestamp(in.Timestamp)
			if err != nil {
				return nil, fmt.Errorf("intervals[%d]: %w", i, err)
			}
			out = append(out, model.IntervalRecord{
				Timestamp: ts,
				UsageKWh:  in.UsageKWh,
				SolarKWh:  in.SolarKWh,
			})
		}
		return out, nil
	}

	if req.Solar == nil || len(req.Meter) == 0 {
		return nil, fmt.Errorf("either intervals or both solar and meter must be provided")
	}

	readings := make([]model.MeterReading, 0, len(req.Meter))
	for i, in := range req.Meter {
		ts, err := parseTimestamp(in.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("meter[%d]: %w", i, err)
		}
		status := model.ReadingActual
		if in.Status == string(model.ReadingEstimated) {
			status = model.ReadingEstimated
		}
		readings = append(readings, model.MeterReading{Timestamp: ts, UsageKWh: in.UsageKWh, Status: status})
	}

	year := req.Solar.Year
	if year == 0 {
		year = 2024
	}
	client := data.NewPVWattsClient(req.Solar.APIKey, h.pvwattsBaseURL)
	solar, err := client.FetchHourlyProduction(data.SystemParams{
		SystemCapacityKW: req.Solar.System.CapacityKW,
		ModuleType:       req.Solar.System.ModuleType,
		LossesPercent:    req.Solar.System.LossesPercent,
		ArrayType:        req.Solar.System.ArrayType,
		TiltDegrees:      req.Solar.System.TiltDegrees,
		AzimuthDegrees:   req.Solar.System.AzimuthDegrees,
		DCACRatio:        req.Solar.System.DCACRatio,
		GCR:              req.Solar.System.GCR,
		Latitude:         req.Solar.System.Latitude,
		Longitude:        req.Solar.System.Longitude,
	}, year)
	if err != nil {
		return nil, err
	}

	return data.Align(readings, solar)
}

func parseTimestamp(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	ts, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return ts, nil
}

func toSummary(s model.ScenarioSummary) models.ScenarioSummary {
	return models.ScenarioSummary{
		TotalUsageKWh:            s.TotalUsageKWh,
		TotalSolarKWh:            s.TotalSolarKWh,
		TotalSelfConsumedKWh:     s.TotalSelfConsumedKWh,
		TotalExportedKWh:         s.TotalExportedKWh,
		TotalImportedKWh:         s.TotalImportedKWh,
		TotalBatteryChargeKWh:    s.TotalBatteryChargeKWh,
		TotalBatteryDischargeKWh: s.TotalBatteryDischargeKWh,
		ExportEarnings:           s.ExportEarnings,
		CostWithoutSolar:         s.CostWithoutSolar,
		CostWithSolar:            s.CostWithSolar,
		TotalSavings:             s.TotalSavings,
		PaybackYears:             finitePtr(s.PaybackYears),
	}
}

func finitePtr(v float64) *float64 {
	if v > 0 && !math.IsInf(v, 1) {
		return &v
	}
	return nil
}

func toFlowRows(intervals []model.IntervalRecord, flows []model.FlowRecord) []models.FlowRow {
	out := make([]models.FlowRow, 0, len(flows))
	for i, f := range flows {
		it := intervals[i]
		out = append(out, models.FlowRow{
			Timestamp:           f.Timestamp,
			UsageKWh:            it.UsageKWh,
			SolarKWh:            it.SolarKWh,
			SelfConsumedKWh:     f.SelfConsumedKWh,
			BatteryChargeKWh:    f.BatteryChargeKWh,
			BatteryDischargeKWh: f.BatteryDischargeKWh,
			ExportedKWh:         f.ExportedKWh,
			ImportedKWh:         f.ImportedKWh,
			StateOfChargeKWh:    f.StateOfChargeKWh,
		})
	}
	return out
}

func writeError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// writeDataError maps data-layer failures onto distinct API error codes.
func writeDataError(c *gin.Context, err error) {
	var pvErr *data.PVWattsError
	switch {
	case errors.As(err, &pvErr):
		status := http.StatusBadRequest
		if pvErr.StatusCode == http.StatusForbidden || pvErr.StatusCode == http.StatusUnauthorized {
			status = http.StatusUnauthorized
		} else if pvErr.StatusCode == http.StatusTooManyRequests {
			status = http.StatusTooManyRequests
		}
		writeError(c, status, pvErr.Code, pvErr.Message, map[string]interface{}{
			"status_code": pvErr.StatusCode,
			"retry_after": pvErr.RetryAfter,
		})
	case errors.Is(err, data.ErrMisalignedInput):
		writeError(c, http.StatusBadRequest, "MISALIGNED_INPUT", err.Error(), nil)
	default:
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}
}

func writeScenarioError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrInvalidConfiguration) {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIGURATION", err.Error(), nil)
		return
	}
	writeError(c, http.StatusInternalServerError, "APPRAISAL_ERROR", err.Error(), nil)
}
