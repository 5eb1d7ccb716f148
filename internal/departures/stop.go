package departures

import (
	"context"
	"regexp"
	"strings"

	"github.com/glundgren93/ptv-cli/internal/model"
	"github.com/rs/zerolog/log"
)

var streetWord = regexp.MustCompile(`(?i)\bstreet\b`)

// SearchTerm cleans a spoken or typed stop name for the search endpoint.
// "Flinders Street" and "flinders" produce the same term.
func SearchTerm(name string) string {
	term := streetWord.ReplaceAllString(name, " ")
	return strings.Join(strings.Fields(term), " ")
}

// ResolveStop maps a free-text name to the provider's best matching stop.
func ResolveStop(ctx context.Context, provider Provider, name string, mode model.TransportMode) (model.Stop, error) {
	term := SearchTerm(name)
	if term == "" {
		return model.Stop{}, &NotFoundError{Name: name, Mode: mode}
	}

	stops, err := provider.SearchStops(ctx, term, []model.TransportMode{mode})
	if err != nil {
		return model.Stop{}, providerError("search stops", err)
	}

	if len(stops) == 0 || len(stops[0].Routes) == 0 {
		return model.Stop{}, &NotFoundError{Name: name, Mode: mode}
	}

	stop := stops[0]
	log.Ctx(ctx).Debug().
		Str("term", term).
		Int("stop_id", stop.ID).
		Str("stop", stop.Name).
		Int("routes", len(stop.Routes)).
		Int("candidates", len(stops)).
		Msg("Resolved stop")

	return stop, nil
}
