package api

import (
	"math"
	"sort"
	"strings"

	"github.com/glundgren93/ptv-cli/internal/model"
)

// DistanceKm calculates the Haversine distance between two coordinates in km.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371.0 // Earth radius in km
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}

// StopWithDistance is a stop with its distance from a reference point.
type StopWithDistance struct {
	Stop      model.Stop `json:"stop"`
	DistanceM int        `json:"distance_m"`
}

// NearestStops keeps stops within radiusKm of a point, sorted by distance. Stops
// without coordinates fall back to the distance the API reported.
func NearestStops(stops []model.Stop, lat, lon, radiusKm float64) []StopWithDistance {
	results := []StopWithDistance{}
	for _, s := range stops {
		km := s.Distance / 1000
		if s.Lat != 0 || s.Lon != 0 {
			km = DistanceKm(lat, lon, s.Lat, s.Lon)
		}
		if km <= radiusKm {
			results = append(results, StopWithDistance{Stop: s, DistanceM: int(math.Round(km * 1000))})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceM < results[j].DistanceM
	})
	return results
}

// FilterStopsByRoute keeps stops served by a route whose name or number matches route.
func FilterStopsByRoute(stops []model.Stop, route string) []model.Stop {
	if route == "" {
		return stops
	}
	route = strings.ToLower(route)
	var filtered []model.Stop
	for _, s := range stops {
		for _, r := range s.Routes {
			if strings.EqualFold(r.Number, route) || strings.Contains(strings.ToLower(r.Name), route) {
				filtered = append(filtered, s)
				break
			}
		}
	}
	return filtered
}
