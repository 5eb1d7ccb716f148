package api

import (
	"cmp"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/glundgren93/ptv-cli/internal/config"
	"github.com/glundgren93/ptv-cli/internal/departures"
	"github.com/glundgren93/ptv-cli/internal/model"
	"github.com/rs/zerolog/log"
)

const (
	DefaultTimeout       = 15 * time.Second
	defaultRetryInterval = 500 * time.Millisecond
)

var _ departures.Provider = (*Client)(nil)

// Client is the PTV Timetable API v3 client.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	devID         string
	apiKey        string
	retries       int
	retryInterval time.Duration
}

// NewClient creates a PTV client from the provider config. Both the developer id and
// the API key are required; without them the error is a *departures.ProviderError.
func NewClient(cfg config.Provider) (*Client, error) {
	if cfg.DevID == "" || cfg.APIKey == "" {
		return nil, &departures.ProviderError{
			Op:  "init",
			Err: errors.New("PTV developer id and API key are required (set PTV_DEV_ID and PTV_API_KEY)"),
		}
	}

	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:       strings.TrimRight(baseURL, "/"),
		devID:         cfg.DevID,
		apiKey:        cfg.APIKey,
		retries:       cfg.Retries,
		retryInterval: defaultRetryInterval,
	}, nil
}

// StatusError is a non-200 reply from the API.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned %d: %s", e.Code, e.Message)
}

func (e *StatusError) StatusCode() int { return e.Code }

// transient reports whether a retry may succeed.
func (e *StatusError) transient() bool {
	switch e.Code {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusTooManyRequests:
		return true
	}
	return false
}

// get fetches a signed path, retrying transient failures with exponential backoff.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	rawURL := c.baseURL + signPath(path, params, c.devID, c.apiKey)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.retries)), ctx)

	attempt := 0
	return backoff.RetryWithData(func() ([]byte, error) {
		attempt++
		body, err := c.do(ctx, rawURL)
		if err == nil {
			return body, nil
		}

		var se *StatusError
		if errors.As(err, &se) && !se.transient() {
			return nil, backoff.Permanent(err)
		}
		if ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}

		log.Ctx(ctx).Debug().Err(err).Str("path", path).Int("attempt", attempt).Msg("PTV request failed")
		return nil, err
	}, policy)
}

func (c *Client) do(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	log.Ctx(ctx).Debug().
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Str("duration", time.Since(start).String()).
		Msg("PTV request")

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		defer gr.Close()
		reader = gr
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Message: errorMessage(body)}
	}

	return body, nil
}

// errorMessage extracts the "message" field PTV puts in error bodies.
func errorMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return strings.TrimSpace(string(body))
}

// SearchStops searches for stops of the given modes. Outlets are never included.
func (c *Client) SearchStops(ctx context.Context, term string, modes []model.TransportMode) ([]model.Stop, error) {
	params := url.Values{}
	for _, m := range modes {
		params.Add("route_types", strconv.Itoa(int(m)))
	}
	params.Set("include_outlets", "false")

	body, err := c.get(ctx, "/v3/search/"+url.PathEscape(term), params)
	if err != nil {
		return nil, err
	}
	var resp model.SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing search: %w", err)
	}
	return resp.Stops, nil
}

// DirectionsForRoute returns every direction of a route in provider order.
func (c *Client) DirectionsForRoute(ctx context.Context, routeID int) ([]model.Direction, error) {
	body, err := c.get(ctx, fmt.Sprintf("/v3/directions/route/%d", routeID), nil)
	if err != nil {
		return nil, err
	}
	var resp model.DirectionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing directions: %w", err)
	}
	return resp.Directions, nil
}

// DeparturesForStop returns the departure board of a stop starting at from.
func (c *Client) DeparturesForStop(ctx context.Context, stopID int, mode model.TransportMode, maxResults int, from time.Time) ([]model.Departure, error) {
	params := url.Values{}
	if maxResults > 0 {
		params.Set("max_results", strconv.Itoa(maxResults))
	}
	if !from.IsZero() {
		params.Set("date_utc", from.UTC().Format(time.RFC3339))
	}

	path := fmt.Sprintf("/v3/departures/route_type/%d/stop/%d", int(mode), stopID)
	body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	var resp model.DeparturesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing departures: %w", err)
	}
	return resp.Departures, nil
}

// RouteTypes returns the transport modes the API knows about.
func (c *Client) RouteTypes(ctx context.Context) ([]model.RouteType, error) {
	body, err := c.get(ctx, "/v3/route_types", nil)
	if err != nil {
		return nil, err
	}
	var resp model.RouteTypesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing route types: %w", err)
	}
	return resp.RouteTypes, nil
}

// StopsNear returns stops within maxDistance metres of a point, nearest first.
func (c *Client) StopsNear(ctx context.Context, lat, lon float64, modes []model.TransportMode, maxDistance, maxResults int) ([]model.Stop, error) {
	params := url.Values{}
	for _, m := range modes {
		params.Add("route_types", strconv.Itoa(int(m)))
	}
	if maxDistance > 0 {
		params.Set("max_distance", strconv.Itoa(maxDistance))
	}
	if maxResults > 0 {
		params.Set("max_results", strconv.Itoa(maxResults))
	}

	path := fmt.Sprintf("/v3/stops/location/%s,%s",
		strconv.FormatFloat(lat, 'f', -1, 64), strconv.FormatFloat(lon, 'f', -1, 64))
	body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	var resp model.StopsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing stops: %w", err)
	}
	return resp.Stops, nil
}

// Routes lists routes of the given modes whose name contains name (all when empty).
func (c *Client) Routes(ctx context.Context, modes []model.TransportMode, name string) ([]model.Route, error) {
	params := url.Values{}
	for _, m := range modes {
		params.Add("route_types", strconv.Itoa(int(m)))
	}
	if name != "" {
		params.Set("route_name", name)
	}

	body, err := c.get(ctx, "/v3/routes", params)
	if err != nil {
		return nil, err
	}
	var resp model.RoutesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing routes: %w", err)
	}
	return resp.Routes, nil
}

// Disruptions returns current disruptions, for one route when routeID is set.
func (c *Client) Disruptions(ctx context.Context, modes []model.TransportMode, routeID int) ([]model.Disruption, error) {
	params := url.Values{}
	path := "/v3/disruptions"
	if routeID > 0 {
		path = fmt.Sprintf("/v3/disruptions/route/%d", routeID)
	} else {
		for _, m := range modes {
			params.Add("route_types", strconv.Itoa(int(m)))
		}
	}
	params.Set("disruption_status", "current")

	body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	var resp model.DisruptionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing disruptions: %w", err)
	}
	return flattenDisruptions(resp.Disruptions), nil
}

// flattenDisruptions merges the per-network groups, dropping duplicates, in id order.
func flattenDisruptions(groups map[string][]model.Disruption) []model.Disruption {
	seen := make(map[int]bool)
	out := []model.Disruption{}
	for _, group := range groups {
		for _, d := range group {
			if seen[d.ID] {
				continue
			}
			seen[d.ID] = true
			out = append(out, d)
		}
	}
	slices.SortFunc(out, func(a, b model.Disruption) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Pattern returns the stopping pattern of a run with the stops it calls at.
func (c *Client) Pattern(ctx context.Context, runRef string, mode model.TransportMode) (*model.PatternResponse, error) {
	params := url.Values{}
	params.Set("expand", "Stop")

	path := fmt.Sprintf("/v3/pattern/run/%s/route_type/%d", url.PathEscape(runRef), int(mode))
	body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	var resp model.PatternResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing pattern: %w", err)
	}
	return &resp, nil
}
