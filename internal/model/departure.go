package model

import "time"

// NormalizedDeparture is a departure with a single effective time and derived figures.
type NormalizedDeparture struct {
	Departure

	EffectiveUTC   time.Time `json:"effective_departure_utc"`
	LocalTime      string    `json:"local_time"`
	DelayMinutes   int       `json:"delay_minutes"`
	MinutesFromNow int       `json:"minutes_from_now"`
}

// Live reports whether the departure carries a real-time estimate.
func (d NormalizedDeparture) Live() bool {
	return d.EstimatedUTC != nil
}

// EnrichedDeparture is a normalized departure joined with route and direction names.
type EnrichedDeparture struct {
	NormalizedDeparture

	RouteName     string `json:"route_name"`
	DirectionName string `json:"direction_name"`
}
