package departures

import (
	"context"
	"errors"
	"time"

	"github.com/glundgren93/ptv-cli/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const DefaultLimit = 2

// Options configures a Pipeline.
type Options struct {
	Clock          Clock
	Now            func() time.Time // defaults to time.Now
	MaxConcurrency int              // direction lookups in flight, 0 = unbounded
	MaxResults     int              // departures requested from the provider, 0 = request limit
}

// Request is one departure question: which stop, which mode, which way.
type Request struct {
	StopName   string
	Mode       model.TransportMode
	TowardCity bool
	Limit      int
}

// Result is the answer to a Request.
type Result struct {
	Stop       model.Stop                `json:"stop"`
	Directions []model.Direction         `json:"directions"`
	Departures []model.EnrichedDeparture `json:"departures"`
}

// Empty reports whether the request resolved but no departures remain.
func (r *Result) Empty() bool {
	return r == nil || len(r.Departures) == 0
}

// Pipeline resolves departure requests against a Provider.
type Pipeline struct {
	provider Provider
	opts     Options
}

// New creates a pipeline around an already constructed provider.
func New(provider Provider, opts Options) (*Pipeline, error) {
	if provider == nil {
		return nil, &ProviderError{Op: "init", Err: errors.New("no transit provider configured")}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pipeline{provider: provider, opts: opts}, nil
}

// Resolve runs stop lookup, direction fan-out, the departure query, normalization and
// enrichment in that order. A failed stage aborts the request.
func (p *Pipeline) Resolve(ctx context.Context, req Request) (*Result, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	maxResults := p.opts.MaxResults
	if maxResults <= 0 {
		maxResults = limit
	}

	logger := log.With().
		Str("request_id", uuid.NewString()).
		Str("stop_name", req.StopName).
		Str("mode", req.Mode.String()).
		Bool("toward_city", req.TowardCity).
		Logger()
	ctx = logger.WithContext(ctx)

	stop, err := ResolveStop(ctx, p.provider, req.StopName, req.Mode)
	if err != nil {
		return nil, err
	}

	directions, err := ResolveDirections(ctx, p.provider, stop.Routes, req.TowardCity, p.opts.MaxConcurrency)
	if err != nil {
		return nil, err
	}

	now := p.opts.Now()
	raw, err := p.provider.DeparturesForStop(ctx, stop.ID, req.Mode, maxResults, now)
	if err != nil {
		return nil, providerError("departures for stop", err)
	}

	normalized := Normalize(raw, now, p.opts.Clock)

	enriched, err := Enrich(normalized, DirectionSet(directions), stop.Routes, directions, limit)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("stop_id", stop.ID).
		Int("raw", len(raw)).
		Int("normalized", len(normalized)).
		Int("departures", len(enriched)).
		Msg("Resolved departures")

	return &Result{
		Stop:       stop,
		Directions: directions,
		Departures: enriched,
	}, nil
}
