package tariff

import (
	"errors"
	"fmt"
	"time"
)

// Tariff maps an interval timestamp to an import price and a feed-in
// (export) price. The import price is a single flat rate; the feed-in
// price depends only on hour of day, with a peak rate inside the
// inclusive [PeakStartHour, PeakEndHour] window and an off-peak rate
// otherwise. RateFor is pure and safe to call from anywhere.
type Tariff struct {
	EnergyPricePerKWh   float64
	PeakFeedInPerKWh    float64
	OffPeakFeedInPerKWh float64
	PeakStartHour       int
	PeakEndHour         int
}

func (t Tariff) Validate() error {
	if t.EnergyPricePerKWh < 0 {
		return errors.New("energy price must be >= 0")
	}
	if t.PeakFeedInPerKWh < 0 || t.OffPeakFeedInPerKWh < 0 {
		return errors.New("feed-in prices must be >= 0")
	}
	if t.PeakStartHour < 0 || t.PeakStartHour > 23 || t.PeakEndHour < 0 || t.PeakEndHour > 23 {
		return fmt.Errorf("peak window hours must be in 0..23, got %d..%d", t.PeakStartHour, t.PeakEndHour)
	}
	if t.PeakStartHour > t.PeakEndHour {
		return fmt.Errorf("peak window start %d after end %d", t.PeakStartHour, t.PeakEndHour)
	}
	return nil
}

// RateFor returns the import energy price and the feed-in price applying
// to the interval starting at ts.
func (t Tariff) RateFor(ts time.Time) (energyPrice, feedInPrice float64) {
	h := ts.Hour()
	if h >= t.PeakStartHour && h <= t.PeakEndHour {
		return t.EnergyPricePerKWh, t.PeakFeedInPerKWh
	}
	return t.EnergyPricePerKWh, t.OffPeakFeedInPerKWh
}
