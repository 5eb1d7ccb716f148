package api

import (
	"context"
	"sync"
	"time"

	"github.com/glundgren93/ptv-cli/internal/model"
)

const routeTypeCacheTTL = time.Hour

// RouteTypeCache keeps the route types list to avoid repeated API calls. Route types
// are reference data; stops, routes and departures are never cached.
type RouteTypeCache struct {
	client *Client
	ttl    time.Duration
	now    func() time.Time

	mu        sync.Mutex
	types     []model.RouteType
	fetchedAt time.Time
}

// NewRouteTypeCache wraps client with an hour-long route types cache.
func NewRouteTypeCache(client *Client) *RouteTypeCache {
	return &RouteTypeCache{client: client, ttl: routeTypeCacheTTL, now: time.Now}
}

// RouteTypes returns route types from cache if fresh, otherwise fetches from the API.
func (c *RouteTypeCache) RouteTypes(ctx context.Context) ([]model.RouteType, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.types) > 0 && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.types, nil
	}

	types, err := c.client.RouteTypes(ctx)
	if err != nil {
		return nil, err
	}

	c.types = types
	c.fetchedAt = c.now()
	return types, nil
}
