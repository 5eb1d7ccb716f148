package departures

import (
	"context"
	"time"

	"github.com/glundgren93/ptv-cli/internal/model"
)

// Provider is the transit data source the pipeline reads from.
type Provider interface {
	// SearchStops returns stops matching term, best match first. Outlets are excluded.
	SearchStops(ctx context.Context, term string, modes []model.TransportMode) ([]model.Stop, error)
	DirectionsForRoute(ctx context.Context, routeID int) ([]model.Direction, error)
	DeparturesForStop(ctx context.Context, stopID int, mode model.TransportMode, maxResults int, from time.Time) ([]model.Departure, error)
}
