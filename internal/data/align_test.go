package data

import (
	"math"
	"testing"
	"time"

	"solar-appraisal/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(h int) time.Time {
	return time.Date(2024, 5, 10, h, 0, 0, 0, time.UTC)
}

func TestAlignInnerJoin(t *testing.T) {
	readings := []model.MeterReading{
		{Timestamp: ts(8), UsageKWh: 1.2},
		{Timestamp: ts(9), UsageKWh: 0.8},
		{Timestamp: ts(10), UsageKWh: 0.5}, // no solar match
	}
	solar := []model.SolarRecord{
		{Timestamp: ts(7), ACOutputKWh: 0.1}, // no meter match
		{Timestamp: ts(8), ACOutputKWh: 1.0},
		{Timestamp: ts(9), ACOutputKWh: 2.0},
	}

	got, err := Align(readings, solar)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, ts(8), got[0].Timestamp)
	assert.InDelta(t, 1.2, got[0].UsageKWh, 1e-9)
	assert.InDelta(t, 1.0, got[0].SolarKWh, 1e-9)
	assert.Equal(t, ts(9), got[1].Timestamp)
}

func TestAlignSortsByTimestamp(t *testing.T) {
	readings := []model.MeterReading{
		{Timestamp: ts(9), UsageKWh: 1},
		{Timestamp: ts(7), UsageKWh: 1},
		{Timestamp: ts(8), UsageKWh: 1},
	}
	solar := []model.SolarRecord{
		{Timestamp: ts(7), ACOutputKWh: 1},
		{Timestamp: ts(8), ACOutputKWh: 1},
		{Timestamp: ts(9), ACOutputKWh: 1},
	}

	got, err := Align(readings, solar)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Timestamp.Before(got[i].Timestamp))
	}
}

func TestAlignRejectsNaN(t *testing.T) {
	readings := []model.MeterReading{{Timestamp: ts(8), UsageKWh: math.NaN()}}
	solar := []model.SolarRecord{{Timestamp: ts(8), ACOutputKWh: 1.0}}

	_, err := Align(readings, solar)
	require.ErrorIs(t, err, ErrMisalignedInput)
}

func TestAlignNoOverlap(t *testing.T) {
	readings := []model.MeterReading{{Timestamp: ts(8), UsageKWh: 1}}
	solar := []model.SolarRecord{{Timestamp: ts(20), ACOutputKWh: 1}}

	got, err := Align(readings, solar)
	require.NoError(t, err)
	assert.Empty(t, got)
}
