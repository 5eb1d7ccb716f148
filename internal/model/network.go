package model

import "time"

// Disruption is a service alert affecting one or more routes.
type Disruption struct {
	ID          int               `json:"disruption_id"`
	Title       string            `json:"title"`
	URL         string            `json:"url,omitempty"`
	Description string            `json:"description,omitempty"`
	Status      string            `json:"disruption_status"`
	Type        string            `json:"disruption_type"`
	PublishedOn *time.Time        `json:"published_on,omitempty"`
	FromDate    *time.Time        `json:"from_date,omitempty"`
	ToDate      *time.Time        `json:"to_date,omitempty"`
	Routes      []DisruptionRoute `json:"routes,omitempty"`
}

// Current reports whether the disruption is in effect at t.
func (d Disruption) Current(t time.Time) bool {
	if d.FromDate != nil && t.Before(*d.FromDate) {
		return false
	}
	if d.ToDate != nil && t.After(*d.ToDate) {
		return false
	}
	return true
}

// DisruptionRoute is a route referenced by a disruption.
type DisruptionRoute struct {
	ID     int           `json:"route_id"`
	Name   string        `json:"route_name"`
	Number string        `json:"route_number,omitempty"`
	Mode   TransportMode `json:"route_type"`
}

// DisruptionsResponse groups disruptions by network, e.g. "metro_train" or "general".
type DisruptionsResponse struct {
	Disruptions map[string][]Disruption `json:"disruptions"`
	Status      *Status                 `json:"status,omitempty"`
}

// RoutesResponse is the API response for the route list.
type RoutesResponse struct {
	Routes []Route `json:"routes"`
	Status *Status `json:"status,omitempty"`
}

// StopsResponse is the API response for a location query.
type StopsResponse struct {
	Stops  []Stop  `json:"stops"`
	Status *Status `json:"status,omitempty"`
}

// PatternResponse is the stopping pattern of a single run.
type PatternResponse struct {
	Departures []Departure     `json:"departures"`
	Stops      map[string]Stop `json:"stops"`
	Status     *Status         `json:"status,omitempty"`
}
