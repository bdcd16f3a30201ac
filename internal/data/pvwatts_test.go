package data

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() SystemParams {
	return SystemParams{
		SystemCapacityKW: 6.6,
		ModuleType:       0,
		LossesPercent:    15.0,
		ArrayType:        0,
		TiltDegrees:      20,
		AzimuthDegrees:   0,
		DCACRatio:        1.2,
		GCR:              0.4,
		Latitude:         -32.03,
		Longitude:        115.98,
	}
}

func TestFetchHourlyProduction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/pvwatts/v8.json", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "test-api-key-123", q.Get("api_key"))
		assert.Equal(t, "hourly", q.Get("timeframe"))
		assert.Equal(t, "6.6", q.Get("system_capacity"))
		assert.Equal(t, "-32.03", q.Get("lat"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"errors":[],"outputs":{"ac":[0,500,1250.5]}}`)
	}))
	defer srv.Close()

	client := NewPVWattsClient("test-api-key-123", srv.URL)
	records, err := client.FetchHourlyProduction(validParams(), 2024)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), records[0].Timestamp)
	assert.Equal(t, time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC), records[2].Timestamp)
	assert.InDelta(t, 0.0, records[0].ACOutputKWh, 1e-9)
	assert.InDelta(t, 0.5, records[1].ACOutputKWh, 1e-9)
	assert.InDelta(t, 1.2505, records[2].ACOutputKWh, 1e-9)
}

func TestFetchHourlyProductionStatusCodes(t *testing.T) {
	tests := []struct {
		status   int
		wantCode string
	}{
		{http.StatusForbidden, "INVALID_API_KEY"},
		{http.StatusUnauthorized, "INVALID_API_KEY"},
		{http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
		{http.StatusUnprocessableEntity, "INVALID_PARAMETERS"},
		{http.StatusInternalServerError, "API_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status == http.StatusTooManyRequests {
					w.Header().Set("Retry-After", "3600")
				}
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client := NewPVWattsClient("test-api-key-123", srv.URL)
			_, err := client.FetchHourlyProduction(validParams(), 2024)

			var pvErr *PVWattsError
			require.ErrorAs(t, err, &pvErr)
			assert.Equal(t, tt.wantCode, pvErr.Code)
			assert.Equal(t, tt.status, pvErr.StatusCode)
			if tt.status == http.StatusTooManyRequests {
				assert.Equal(t, "3600", pvErr.RetryAfter)
			}
		})
	}
}

func TestFetchHourlyProductionBodyErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errors":["lat is out of range"],"outputs":{"ac":[]}}`)
	}))
	defer srv.Close()

	client := NewPVWattsClient("test-api-key-123", srv.URL)
	_, err := client.FetchHourlyProduction(validParams(), 2024)

	var pvErr *PVWattsError
	require.ErrorAs(t, err, &pvErr)
	assert.Equal(t, "INVALID_PARAMETERS", pvErr.Code)
	assert.Contains(t, pvErr.Message, "lat is out of range")
}

func TestFetchHourlyProductionAPIKeyValidation(t *testing.T) {
	var pvErr *PVWattsError

	_, err := NewPVWattsClient("", "http://unused").FetchHourlyProduction(validParams(), 2024)
	require.ErrorAs(t, err, &pvErr)
	assert.Equal(t, "MISSING_API_KEY", pvErr.Code)

	_, err = NewPVWattsClient("short", "http://unused").FetchHourlyProduction(validParams(), 2024)
	require.ErrorAs(t, err, &pvErr)
	assert.Equal(t, "INVALID_API_KEY_FORMAT", pvErr.Code)
}

func TestFetchHourlyProductionRejectsInvalidParams(t *testing.T) {
	client := NewPVWattsClient("test-api-key-123", "http://unused")

	p := validParams()
	p.TiltDegrees = 120
	_, err := client.FetchHourlyProduction(p, 2024)
	require.Error(t, err)

	var pvErr *PVWattsError
	assert.False(t, errors.As(err, &pvErr), "local validation should not produce an API error")
}

func TestSystemParamsValidate(t *testing.T) {
	require.NoError(t, validParams().Validate())

	for name, mutate := range map[string]func(*SystemParams){
		"capacity too small": func(p *SystemParams) { p.SystemCapacityKW = 0.01 },
		"capacity too large": func(p *SystemParams) { p.SystemCapacityKW = 600000 },
		"bad module type":    func(p *SystemParams) { p.ModuleType = 3 },
		"losses too low":     func(p *SystemParams) { p.LossesPercent = -6 },
		"losses too high":    func(p *SystemParams) { p.LossesPercent = 100 },
		"bad array type":     func(p *SystemParams) { p.ArrayType = 5 },
		"tilt out of range":  func(p *SystemParams) { p.TiltDegrees = 91 },
		"azimuth 360":        func(p *SystemParams) { p.AzimuthDegrees = 360 },
		"dc/ac too low":      func(p *SystemParams) { p.DCACRatio = 0.3 },
		"gcr too high":       func(p *SystemParams) { p.GCR = 1.5 },
	} {
		t.Run(name, func(t *testing.T) {
			p := validParams()
			mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}
