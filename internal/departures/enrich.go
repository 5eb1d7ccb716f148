package departures

import (
	"github.com/glundgren93/ptv-cli/internal/model"
)

// DirectionSet builds the id set used to filter departures.
func DirectionSet(directions []model.Direction) map[int]struct{} {
	set := make(map[int]struct{}, len(directions))
	for _, d := range directions {
		set[d.ID] = struct{}{}
	}
	return set
}

// Enrich keeps departures heading in one of directionIDs, attaches route and direction
// names, and returns at most limit entries. An empty directionIDs filters nothing and a
// limit of zero or less keeps everything.
func Enrich(normalized []model.NormalizedDeparture, directionIDs map[int]struct{}, routes []model.Route, directions []model.Direction, limit int) ([]model.EnrichedDeparture, error) {
	routeNames := make(map[int]string, len(routes))
	for _, r := range routes {
		routeNames[r.ID] = r.Name
	}
	directionNames := make(map[int]string, len(directions))
	for _, d := range directions {
		if _, exists := directionNames[d.ID]; !exists {
			directionNames[d.ID] = d.Name
		}
	}

	enriched := []model.EnrichedDeparture{}
	for _, d := range normalized {
		if len(directionIDs) > 0 {
			if _, ok := directionIDs[d.DirectionID]; !ok {
				continue
			}
		}

		routeName, ok := routeNames[d.RouteID]
		if !ok {
			return nil, &JoinError{Kind: "route", ID: d.RouteID}
		}
		directionName, ok := directionNames[d.DirectionID]
		if !ok {
			return nil, &JoinError{Kind: "direction", ID: d.DirectionID}
		}

		enriched = append(enriched, model.EnrichedDeparture{
			NormalizedDeparture: d,
			RouteName:           routeName,
			DirectionName:       directionName,
		})

		if limit > 0 && len(enriched) == limit {
			break
		}
	}

	return enriched, nil
}
