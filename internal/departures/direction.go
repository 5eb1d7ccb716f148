package departures

import (
	"context"

	"github.com/glundgren93/ptv-cli/internal/model"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

// ResolveDirection picks the first direction of route whose city-bound flag equals towardCity.
func ResolveDirection(ctx context.Context, provider Provider, route model.Route, towardCity bool) (model.Direction, error) {
	directions, err := provider.DirectionsForRoute(ctx, route.ID)
	if err != nil {
		return model.Direction{}, providerError("directions for route", err)
	}

	if d, ok := MatchDirection(directions, towardCity); ok {
		return d, nil
	}

	return model.Direction{}, &NoMatchingDirectionError{
		RouteID:    route.ID,
		RouteName:  route.Name,
		TowardCity: towardCity,
	}
}

// MatchDirection returns the first direction, in provider order, whose city-bound flag
// equals towardCity.
func MatchDirection(directions []model.Direction, towardCity bool) (model.Direction, bool) {
	for _, d := range directions {
		if d.IsCityBound() == towardCity {
			return d, true
		}
	}
	return model.Direction{}, false
}

// ResolveDirections looks up one direction per route concurrently. The result is in
// route order. Any failure fails the whole set and cancels the remaining lookups.
func ResolveDirections(ctx context.Context, provider Provider, routes []model.Route, towardCity bool, maxConcurrency int) ([]model.Direction, error) {
	directions := make([]model.Direction, len(routes))

	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()
	if maxConcurrency > 0 {
		p = p.WithMaxGoroutines(maxConcurrency)
	}

	for i, route := range routes {
		i, route := i, route
		p.Go(func(ctx context.Context) error {
			d, err := ResolveDirection(ctx, provider, route, towardCity)
			if err != nil {
				return err
			}
			directions[i] = d
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Debug().
		Int("routes", len(routes)).
		Bool("toward_city", towardCity).
		Msg("Resolved directions")

	return directions, nil
}

// RouteDirections fetches every direction of each route concurrently, keyed by route id.
func RouteDirections(ctx context.Context, provider Provider, routes []model.Route, maxConcurrency int) (map[int][]model.Direction, error) {
	all := make([][]model.Direction, len(routes))

	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()
	if maxConcurrency > 0 {
		p = p.WithMaxGoroutines(maxConcurrency)
	}

	for i, route := range routes {
		i, route := i, route
		p.Go(func(ctx context.Context) error {
			directions, err := provider.DirectionsForRoute(ctx, route.ID)
			if err != nil {
				return providerError("directions for route", err)
			}
			all[i] = directions
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	byRoute := make(map[int][]model.Direction, len(routes))
	for i, route := range routes {
		byRoute[route.ID] = all[i]
	}
	return byRoute, nil
}
