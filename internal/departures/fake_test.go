package departures

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/glundgren93/ptv-cli/internal/model"
)

// fakeProvider serves canned data and counts calls.
type fakeProvider struct {
	mu sync.Mutex

	stops      []model.Stop
	directions map[int][]model.Direction
	departures []model.Departure

	searchErr     error
	directionErrs map[int]error
	departureErr  error

	searchCalls    int
	directionCalls int
	departureCalls int

	lastTerm       string
	lastModes      []model.TransportMode
	lastMaxResults int
	lastFrom       time.Time
}

func (f *fakeProvider) SearchStops(ctx context.Context, term string, modes []model.TransportMode) ([]model.Stop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++
	f.lastTerm = term
	f.lastModes = modes
	return f.stops, f.searchErr
}

func (f *fakeProvider) DirectionsForRoute(ctx context.Context, routeID int) ([]model.Direction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.directionCalls++
	if err := f.directionErrs[routeID]; err != nil {
		return nil, err
	}
	dirs, ok := f.directions[routeID]
	if !ok {
		return nil, fmt.Errorf("unknown route %d", routeID)
	}
	return dirs, nil
}

func (f *fakeProvider) DeparturesForStop(ctx context.Context, stopID int, mode model.TransportMode, maxResults int, from time.Time) ([]model.Departure, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.departureCalls++
	f.lastMaxResults = maxResults
	f.lastFrom = from
	return f.departures, f.departureErr
}

type statusErr struct{ code int }

func (e statusErr) Error() string   { return fmt.Sprintf("status %d", e.code) }
func (e statusErr) StatusCode() int { return e.code }

func at(hhmmss string) *time.Time {
	t, err := time.Parse(time.RFC3339, "2024-05-01T"+hhmmss+"Z")
	if err != nil {
		panic(err)
	}
	return &t
}

func melbourne() Clock {
	loc, err := time.LoadLocation("Australia/Melbourne")
	if err != nil {
		panic(err)
	}
	return Clock{Location: loc, Layout: Layout12h}
}

// flindersStreet is a stop served by two train lines, each with a city-bound and an
// outbound direction. PTV shares direction id 1 for the city across lines.
func flindersStreet() *fakeProvider {
	return &fakeProvider{
		stops: []model.Stop{
			{
				ID:   1071,
				Name: "Flinders Street Station",
				Routes: []model.Route{
					{ID: 6, Name: "Frankston", Mode: model.Train},
					{ID: 11, Name: "Pakenham", Mode: model.Train},
				},
			},
			{ID: 9999, Name: "Flinders Street Railway Station/Flinders St", Routes: []model.Route{{ID: 1}}},
		},
		directions: map[int][]model.Direction{
			6: {
				{ID: 1, Name: "City (Flinders Street)", RouteID: 6},
				{ID: 5, Name: "Frankston", RouteID: 6},
			},
			11: {
				{ID: 1, Name: "City (Flinders Street)", RouteID: 11},
				{ID: 4, Name: "Pakenham", RouteID: 11},
			},
		},
		departures: []model.Departure{
			{RouteID: 11, DirectionID: 4, ScheduledUTC: at("10:12:00"), EstimatedUTC: at("10:13:00")},
			{RouteID: 6, DirectionID: 1, ScheduledUTC: at("10:01:00"), EstimatedUTC: at("10:01:00")},
			{RouteID: 6, DirectionID: 5, ScheduledUTC: at("10:00:00"), EstimatedUTC: at("10:03:00")},
			{RouteID: 11, DirectionID: 4, ScheduledUTC: at("10:05:00")},
			{RouteID: 6, DirectionID: 5, ScheduledUTC: at("10:20:00")},
			{RouteID: 6, DirectionID: 5},
		},
	}
}
