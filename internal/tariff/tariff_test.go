package tariff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateForPeakWindow(t *testing.T) {
	tr := Tariff{
		EnergyPricePerKWh:   0.315823,
		PeakFeedInPerKWh:    0.10,
		OffPeakFeedInPerKWh: 0.02,
		PeakStartHour:       15,
		PeakEndHour:         20,
	}

	tests := []struct {
		hour       int
		wantFeedIn float64
	}{
		{0, 0.02},
		{14, 0.02},
		{15, 0.10}, // window start is inclusive
		{18, 0.10},
		{20, 0.10}, // window end is inclusive
		{21, 0.02},
		{23, 0.02},
	}
	for _, tt := range tests {
		ts := time.Date(2024, 3, 5, tt.hour, 0, 0, 0, time.UTC)
		energy, feedIn := tr.RateFor(ts)
		assert.InDelta(t, 0.315823, energy, 1e-12, "hour %d energy price", tt.hour)
		assert.InDelta(t, tt.wantFeedIn, feedIn, 1e-12, "hour %d feed-in", tt.hour)
	}
}

func TestRateForFlatImportPrice(t *testing.T) {
	tr := Tariff{EnergyPricePerKWh: 0.30, PeakStartHour: 15, PeakEndHour: 20}
	for h := 0; h < 24; h++ {
		energy, _ := tr.RateFor(time.Date(2024, 1, 1, h, 30, 0, 0, time.UTC))
		assert.InDelta(t, 0.30, energy, 1e-12)
	}
}

func TestValidate(t *testing.T) {
	valid := Tariff{
		EnergyPricePerKWh:   0.30,
		PeakFeedInPerKWh:    0.10,
		OffPeakFeedInPerKWh: 0.02,
		PeakStartHour:       15,
		PeakEndHour:         20,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Tariff)
	}{
		{"negative energy price", func(tr *Tariff) { tr.EnergyPricePerKWh = -0.1 }},
		{"negative peak feed-in", func(tr *Tariff) { tr.PeakFeedInPerKWh = -0.1 }},
		{"negative off-peak feed-in", func(tr *Tariff) { tr.OffPeakFeedInPerKWh = -0.1 }},
		{"start hour too large", func(tr *Tariff) { tr.PeakStartHour = 24 }},
		{"negative end hour", func(tr *Tariff) { tr.PeakEndHour = -1 }},
		{"start after end", func(tr *Tariff) { tr.PeakStartHour = 21; tr.PeakEndHour = 15 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := valid
			tt.mutate(&tr)
			assert.Error(t, tr.Validate())
		})
	}
}
