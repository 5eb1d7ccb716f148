package departures

import (
	"math"
	"slices"
	"time"

	"github.com/glundgren93/ptv-cli/internal/model"
)

const (
	Layout12h = "3:04 pm"
	Layout24h = "15:04"
)

// Clock renders departure times in the transit region's local time.
type Clock struct {
	Location *time.Location
	Layout   string
}

// Format renders t as hour and minute in the clock's zone.
func (c Clock) Format(t time.Time) string {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	layout := c.Layout
	if layout == "" {
		layout = Layout12h
	}
	return t.In(loc).Format(layout)
}

// Normalize gives every usable departure an effective time, delay and ETA, sorted by
// effective time. Estimated time wins over scheduled. Records with neither are dropped.
func Normalize(raw []model.Departure, now time.Time, clock Clock) []model.NormalizedDeparture {
	normalized := make([]model.NormalizedDeparture, 0, len(raw))

	for _, d := range raw {
		var effective time.Time
		switch {
		case d.EstimatedUTC != nil:
			effective = *d.EstimatedUTC
		case d.ScheduledUTC != nil:
			effective = *d.ScheduledUTC
		default:
			continue
		}

		scheduled := effective
		if d.ScheduledUTC != nil {
			scheduled = *d.ScheduledUTC
		}

		normalized = append(normalized, model.NormalizedDeparture{
			Departure:      d,
			EffectiveUTC:   effective.UTC(),
			LocalTime:      clock.Format(effective),
			DelayMinutes:   roundMinutes(effective.Sub(scheduled)),
			MinutesFromNow: roundMinutes(effective.Sub(now)),
		})
	}

	slices.SortStableFunc(normalized, func(a, b model.NormalizedDeparture) int {
		return a.EffectiveUTC.Compare(b.EffectiveUTC)
	})

	return normalized
}

// roundMinutes rounds half up, so -2.5 becomes -2.
func roundMinutes(d time.Duration) int {
	return int(math.Floor(d.Minutes() + 0.5))
}
