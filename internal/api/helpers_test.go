package api

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glundgren93/ptv-cli/internal/model"
)

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name    string
		lat1    float64
		lon1    float64
		lat2    float64
		lon2    float64
		wantMin float64
		wantMax float64
	}{
		{
			name: "same point",
			lat1: -37.8183, lon1: 144.9671,
			lat2: -37.8183, lon2: 144.9671,
			wantMin: 0, wantMax: 0.001,
		},
		{
			name: "Flinders Street to Federation Square",
			lat1: -37.8183, lon1: 144.9671,
			lat2: -37.8180, lon2: 144.9691,
			wantMin: 0.1, wantMax: 0.3,
		},
		{
			name: "Flinders Street to Southern Cross",
			lat1: -37.8183, lon1: 144.9671,
			lat2: -37.8184, lon2: 144.9525,
			wantMin: 1.0, wantMax: 1.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("DistanceKm() = %f, want between %f and %f", got, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestNearestStops(t *testing.T) {
	stops := []model.Stop{
		{ID: 3, Name: "Far", Lat: -37.8100, Lon: 144.9500},
		{ID: 1, Name: "Close", Lat: -37.8184, Lon: 144.9672},
		{ID: 4, Name: "Too far", Lat: -37.9000, Lon: 145.1000},
		{ID: 2, Name: "Medium", Lat: -37.8180, Lon: 144.9700},
		{ID: 5, Name: "No coordinates", Distance: 350},
	}

	results := NearestStops(stops, -37.8183, 144.9671, 0.5)

	if len(results) != 3 {
		t.Fatalf("expected 3 results within 500m, got %d", len(results))
	}
	if results[0].Stop.Name != "Close" {
		t.Errorf("closest should be 'Close', got %q", results[0].Stop.Name)
	}
	if results[1].Stop.Name != "Medium" {
		t.Errorf("second should be 'Medium', got %q", results[1].Stop.Name)
	}
	if results[2].Stop.Name != "No coordinates" || results[2].DistanceM != 350 {
		t.Errorf("third = %q at %dm, want the API distance of 350m", results[2].Stop.Name, results[2].DistanceM)
	}
}

func TestNearestStops_EmptyRadius(t *testing.T) {
	stops := []model.Stop{
		{ID: 1, Name: "Far", Lat: -38.0, Lon: 145.0},
	}

	results := NearestStops(stops, -37.8183, 144.9671, 0.1)
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestFilterStopsByRoute(t *testing.T) {
	stops := []model.Stop{
		{ID: 1, Name: "Flinders Street Station", Routes: []model.Route{{ID: 6, Name: "Frankston"}, {ID: 11, Name: "Pakenham"}}},
		{ID: 2, Name: "Swanston St/Flinders St", Routes: []model.Route{{ID: 1112, Name: "East Coburg - South Melbourne Beach", Number: "1"}}},
		{ID: 3, Name: "Richmond", Routes: []model.Route{{ID: 6, Name: "Frankston"}}},
	}

	frankston := FilterStopsByRoute(stops, "frankston")
	if len(frankston) != 2 {
		t.Errorf("expected 2 Frankston stops, got %d", len(frankston))
	}

	route1 := FilterStopsByRoute(stops, "1")
	if len(route1) != 1 || route1[0].ID != 2 {
		t.Errorf("route 1 = %+v, want the Swanston St stop", route1)
	}

	if all := FilterStopsByRoute(stops, ""); len(all) != 3 {
		t.Errorf("empty filter should return all, got %d", len(all))
	}
}

func TestRouteTypeCache(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"route_types": [{"route_type_name": "Train", "route_type": 0}, {"route_type_name": "Tram", "route_type": 1}]}`))
	})

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	cache := NewRouteTypeCache(client)
	cache.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		types, err := cache.RouteTypes(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(types) != 2 {
			t.Fatalf("expected 2 route types, got %d", len(types))
		}
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 while fresh", calls)
	}

	now = now.Add(2 * time.Hour)
	if _, err := cache.RouteTypes(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want a refetch after the TTL", calls)
	}
}
