package data

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"solar-appraisal/internal/model"
)

// PVWattsClient fetches modeled hourly production from NREL's PVWatts v8 API.
type PVWattsClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

// NewPVWattsClient creates a PVWatts API client.
// If baseURL is empty, defaults to "https://developer.nrel.gov".
func NewPVWattsClient(apiKey string, baseURL string) *PVWattsClient {
	if baseURL == "" {
		baseURL = "https://developer.nrel.gov"
	}
	return &PVWattsClient{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// SystemParams describes the PV system sent to PVWatts. Ranges follow the
// v8 API documentation.
type SystemParams struct {
	SystemCapacityKW float64 // 0.05 .. 500000
	ModuleType       int     // 0 standard, 1 premium, 2 thin film
	LossesPercent    float64 // -5 .. 99
	ArrayType        int     // 0 .. 4
	TiltDegrees      float64 // 0 .. 90
	AzimuthDegrees   float64 // 0 .. <360
	DCACRatio        float64 // 0.5 .. 2.0
	GCR              float64 // ground coverage ratio, 0.1 .. 1.0
	Latitude         float64
	Longitude        float64
}

// Validate enforces the documented PVWatts parameter ranges before any
// request is made.
func (p SystemParams) Validate() error {
	if p.SystemCapacityKW < 0.05 || p.SystemCapacityKW > 500000 {
		return fmt.Errorf("system_capacity must be between 0.05 and 500000 kW, got %v", p.SystemCapacityKW)
	}
	if p.ModuleType < 0 || p.ModuleType > 2 {
		return fmt.Errorf("module_type must be 0 (standard), 1 (premium) or 2 (thin film), got %d", p.ModuleType)
	}
	if p.LossesPercent < -5 || p.LossesPercent > 99 {
		return fmt.Errorf("losses must be between -5 and 99 percent, got %v", p.LossesPercent)
	}
	if p.ArrayType < 0 || p.ArrayType > 4 {
		return fmt.Errorf("array_type must be 0-4, got %d", p.ArrayType)
	}
	if p.TiltDegrees < 0 || p.TiltDegrees > 90 {
		return fmt.Errorf("tilt must be between 0 and 90 degrees, got %v", p.TiltDegrees)
	}
	if p.AzimuthDegrees < 0 || p.AzimuthDegrees >= 360 {
		return fmt.Errorf("azimuth must be between 0 and 360 degrees, got %v", p.AzimuthDegrees)
	}
	if p.DCACRatio != 0 && (p.DCACRatio < 0.5 || p.DCACRatio > 2.0) {
		return fmt.Errorf("dc_ac_ratio must be between 0.5 and 2.0, got %v", p.DCACRatio)
	}
	if p.GCR != 0 && (p.GCR < 0.1 || p.GCR > 1.0) {
		return fmt.Errorf("gcr must be between 0.1 and 1.0, got %v", p.GCR)
	}
	return nil
}

// PVWattsError represents an error from the PVWatts API.
type PVWattsError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // for rate limit errors
}

func (e *PVWattsError) Error() string {
	return e.Message
}

// pvwattsResponse matches the subset of the v8 JSON response we consume.
type pvwattsResponse struct {
	Errors  []string `json:"errors"`
	Outputs struct {
		AC []float64 `json:"ac"` // hourly AC output, watts
	} `json:"outputs"`
}

// FetchHourlyProduction requests a full calendar year of hourly AC output
// and converts it to kWh records. Timestamps are synthesized hourly from
// January 1 of the given year, matching the API's sample ordering.
func (c *PVWattsClient) FetchHourlyProduction(params SystemParams, year int) ([]model.SolarRecord, error) {
	if err := c.validateAPIKey(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid system parameters: %w", err)
	}

	// Check cache first (only if enabled for development).
	cache := GetCache()
	if cache != nil {
		cacheKey := GenerateCacheKey(params, year)
		if cached, found := cache.Get(cacheKey); found {
			log.Printf("[PVWatts] Cache hit: using cached response with %d samples (capacity=%.2fkW, lat=%.2f, lon=%.2f)",
				len(cached), params.SystemCapacityKW, params.Latitude, params.Longitude)
			return cached, nil
		}
	}

	u, err := url.Parse(c.BaseURL + "/api/pvwatts/v8.json")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	q.Set("api_key", c.APIKey)
	q.Set("format", "json")
	q.Set("timeframe", "hourly")
	q.Set("system_capacity", strconv.FormatFloat(params.SystemCapacityKW, 'f', -1, 64))
	q.Set("module_type", strconv.Itoa(params.ModuleType))
	q.Set("losses", strconv.FormatFloat(params.LossesPercent, 'f', -1, 64))
	q.Set("array_type", strconv.Itoa(params.ArrayType))
	q.Set("tilt", strconv.FormatFloat(params.TiltDegrees, 'f', -1, 64))
	q.Set("azimuth", strconv.FormatFloat(params.AzimuthDegrees, 'f', -1, 64))
	q.Set("lat", strconv.FormatFloat(params.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(params.Longitude, 'f', -1, 64))
	if params.DCACRatio != 0 {
		q.Set("dc_ac_ratio", strconv.FormatFloat(params.DCACRatio, 'f', -1, 64))
	}
	if params.GCR != 0 {
		q.Set("gcr", strconv.FormatFloat(params.GCR, 'f', -1, 64))
	}
	u.RawQuery = q.Encode()

	log.Printf("[PVWatts] Request: GET %s (capacity=%.2fkW, tilt=%.1f, azimuth=%.1f, lat=%.2f, lon=%.2f)",
		u.Path, params.SystemCapacityKW, params.TiltDegrees, params.AzimuthDegrees, params.Latitude, params.Longitude)

	req, err := http.NewRequest("GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	startTime := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		log.Printf("[PVWatts] Request failed: %v (duration: %v)", err, duration)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[PVWatts] Response: %d %s (duration: %v)", resp.StatusCode, resp.Status, duration)

	switch resp.StatusCode {
	case http.StatusOK:
		// Success, continue
	case http.StatusForbidden, http.StatusUnauthorized:
		return nil, &PVWattsError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_API_KEY",
			Message:    "Invalid API key or insufficient permissions",
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, &PVWattsError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	case http.StatusUnprocessableEntity:
		return nil, &PVWattsError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_PARAMETERS",
			Message:    "PVWatts rejected the request parameters",
		}
	default:
		return nil, &PVWattsError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var parsed pvwattsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Errors) > 0 {
		return nil, &PVWattsError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_PARAMETERS",
			Message:    parsed.Errors[0],
		}
	}
	if len(parsed.Outputs.AC) == 0 {
		return nil, fmt.Errorf("no hourly 'ac' data in PVWatts response outputs")
	}

	records := hourlyRecords(parsed.Outputs.AC, year)
	log.Printf("[PVWatts] Success: received %d hourly samples", len(records))

	if cache := GetCache(); cache != nil {
		cache.Set(GenerateCacheKey(params, year), records)
		log.Printf("[PVWatts] Cached response (capacity=%.2fkW)", params.SystemCapacityKW)
	}

	return records, nil
}

// hourlyRecords converts the API's watt samples into kWh records with
// synthesized hourly timestamps starting at Jan 1 of year.
func hourlyRecords(acWatts []float64, year int) []model.SolarRecord {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.SolarRecord, 0, len(acWatts))
	for i, w := range acWatts {
		out = append(out, model.SolarRecord{
			Timestamp:   start.Add(time.Duration(i) * time.Hour),
			ACOutputKWh: w / 1000.0,
		})
	}
	return out
}

func (c *PVWattsClient) validateAPIKey() error {
	if c.APIKey == "" {
		return &PVWattsError{
			Code:    "MISSING_API_KEY",
			Message: "API key is required",
		}
	}
	if len(c.APIKey) < 10 {
		return &PVWattsError{
			Code:    "INVALID_API_KEY_FORMAT",
			Message: "API key appears to be invalid (too short)",
		}
	}
	return nil
}
