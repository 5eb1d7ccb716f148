package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TransportMode is a PTV route type. The numeric value is the code the API expects.
type TransportMode int

const (
	Train TransportMode = iota
	Tram
	Bus
	VLine
	NightBus
)

var modeNames = map[TransportMode]string{
	Train:    "train",
	Tram:     "tram",
	Bus:      "bus",
	VLine:    "vline",
	NightBus: "nightbus",
}

var modeAliases = map[string]TransportMode{
	"train":         Train,
	"metro":         Train,
	"tram":          Tram,
	"bus":           Bus,
	"vline":         VLine,
	"v/line":        VLine,
	"regional":      VLine,
	"regional-rail": VLine,
	"regional rail": VLine,
	"nightbus":      NightBus,
	"night-bus":     NightBus,
	"night bus":     NightBus,
}

// Modes lists every supported transport mode in code order.
func Modes() []TransportMode {
	return []TransportMode{Train, Tram, Bus, VLine, NightBus}
}

func (m TransportMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Valid reports whether m is one of the known route types.
func (m TransportMode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// ParseTransportMode accepts a mode name, alias or numeric code. An empty string is a train.
func ParseTransportMode(s string) (TransportMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Train, nil
	}
	if m, ok := modeAliases[s]; ok {
		return m, nil
	}
	if n, err := strconv.Atoi(s); err == nil && TransportMode(n).Valid() {
		return TransportMode(n), nil
	}
	return Train, fmt.Errorf("unknown transport mode %q", s)
}

// Route is a line serving a stop.
type Route struct {
	ID     int           `json:"route_id"`
	Name   string        `json:"route_name"`
	Number string        `json:"route_number,omitempty"`
	Mode   TransportMode `json:"route_type"`
	GTFSID string        `json:"route_gtfs_id,omitempty"`
}

// Stop is a stop returned by the PTV search endpoint.
type Stop struct {
	ID     int           `json:"stop_id"`
	Name   string        `json:"stop_name"`
	Suburb string        `json:"stop_suburb,omitempty"`
	Mode   TransportMode `json:"route_type"`
	Lat    float64       `json:"stop_latitude,omitempty"`
	Lon    float64       `json:"stop_longitude,omitempty"`
	Routes []Route       `json:"routes"`

	// Distance in metres, only set by location queries.
	Distance float64 `json:"stop_distance,omitempty"`
}

// Direction is one travel direction of a route.
type Direction struct {
	ID          int    `json:"direction_id"`
	Name        string `json:"direction_name"`
	RouteID     int    `json:"route_id"`
	Description string `json:"route_direction_description,omitempty"`
}

// IsCityBound reports whether the direction heads into the city.
// PTV names these directions "City (Flinders Street)" and similar.
func (d Direction) IsCityBound() bool {
	return strings.Contains(d.Name, "City")
}

// Departure is a raw departure record from the departures endpoint.
type Departure struct {
	StopID       int        `json:"stop_id"`
	RouteID      int        `json:"route_id"`
	DirectionID  int        `json:"direction_id"`
	RunRef       string     `json:"run_ref,omitempty"`
	Platform     string     `json:"platform_number,omitempty"`
	AtPlatform   bool       `json:"at_platform"`
	ScheduledUTC *time.Time `json:"scheduled_departure_utc"`
	EstimatedUTC *time.Time `json:"estimated_departure_utc"`
}

// RouteType is an entry of the route_types endpoint.
type RouteType struct {
	Name string        `json:"route_type_name"`
	Code TransportMode `json:"route_type"`
}

// SearchResponse is the API response for a stop search.
type SearchResponse struct {
	Stops  []Stop  `json:"stops"`
	Status *Status `json:"status,omitempty"`
}

// DirectionsResponse is the API response for the directions of a route.
type DirectionsResponse struct {
	Directions []Direction `json:"directions"`
	Status     *Status     `json:"status,omitempty"`
}

// DeparturesResponse is the API response for a stop departure board.
type DeparturesResponse struct {
	Departures []Departure `json:"departures"`
	Status     *Status     `json:"status,omitempty"`
}

// RouteTypesResponse is the API response for the route types list.
type RouteTypesResponse struct {
	RouteTypes []RouteType `json:"route_types"`
	Status     *Status     `json:"status,omitempty"`
}

// Status is the API version and health block PTV attaches to every response.
type Status struct {
	Version string `json:"version"`
	Health  int    `json:"health"`
}
