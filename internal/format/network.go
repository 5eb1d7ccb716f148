package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/glundgren93/ptv-cli/internal/api"
	"github.com/glundgren93/ptv-cli/internal/departures"
	"github.com/glundgren93/ptv-cli/internal/model"
)

// StopLine is a route serving a stop with the directions it runs in.
type StopLine struct {
	RouteID    int                 `json:"route_id"`
	Route      string              `json:"route"`
	Number     string              `json:"number,omitempty"`
	Mode       model.TransportMode `json:"route_type"`
	Directions []string            `json:"directions"`
}

// NearbyStopWithLines is a nearby stop enriched with the routes serving it.
type NearbyStopWithLines struct {
	Stop      string     `json:"stop"`
	StopID    int        `json:"stop_id"`
	DistanceM int        `json:"distance_m"`
	Lines     []StopLine `json:"lines"`
}

// NearbyStops prints nearby stops in human-readable format.
func NearbyStops(stops []api.StopWithDistance) {
	if len(stops) == 0 {
		dim.Fprintln(Out, "No stops found nearby.")
		return
	}

	bold.Fprintln(Out, "📍 Nearby stops")
	fmt.Fprintln(Out, strings.Repeat("─", 60))

	for i, s := range stops {
		bold.Fprintf(Out, "  %d. ", i+1)
		fmt.Fprintf(Out, "%s %-35s ", ModeIcon(s.Stop.Mode), s.Stop.Name)
		cyan.Fprintf(Out, "%-8s", fmt.Sprintf("%dm", s.DistanceM))
		dim.Fprintf(Out, " (id:%d)\n", s.Stop.ID)
	}
	fmt.Fprintln(Out)
}

// NearbyStopsWithLines prints nearby stops with their serving routes.
func NearbyStopsWithLines(stops []NearbyStopWithLines) {
	if len(stops) == 0 {
		dim.Fprintln(Out, "No stops found nearby.")
		return
	}

	bold.Fprintln(Out, "📍 Nearby stops")
	fmt.Fprintln(Out, strings.Repeat("─", 60))

	for i, s := range stops {
		bold.Fprintf(Out, "\n  %d. %s", i+1, s.Stop)
		cyan.Fprintf(Out, "  %dm", s.DistanceM)
		dim.Fprintf(Out, "  (id:%d)\n", s.StopID)

		if len(s.Lines) == 0 {
			dim.Fprintln(Out, "     No routes listed")
			continue
		}
		for _, l := range s.Lines {
			fmt.Fprintf(Out, "     %s %s", ModeIcon(l.Mode), lineName(l))
			if len(l.Directions) > 0 {
				dim.Fprintf(Out, " → %s", strings.Join(l.Directions, ", "))
			}
			fmt.Fprintln(Out)
		}
	}
	fmt.Fprintln(Out)
}

func lineName(l StopLine) string {
	if l.Number != "" && l.Number != l.Route {
		return l.Number + " " + l.Route
	}
	return l.Route
}

// StopInfo prints the routes serving a stop, grouped by mode.
func StopInfo(stop model.Stop, lines []StopLine) {
	if len(lines) == 0 {
		dim.Fprintf(Out, "No routes serving %s.\n", stop.Name)
		return
	}

	bold.Fprintf(Out, "📍 %s", stop.Name)
	dim.Fprintf(Out, " (id:%d)\n", stop.ID)
	fmt.Fprintln(Out, strings.Repeat("─", 60))

	groups := make(map[model.TransportMode][]StopLine)
	var modes []model.TransportMode
	for _, l := range lines {
		if _, exists := groups[l.Mode]; !exists {
			modes = append(modes, l.Mode)
		}
		groups[l.Mode] = append(groups[l.Mode], l)
	}

	for _, mode := range modes {
		bold.Fprintf(Out, "\n%s %s\n", ModeIcon(mode), ModeName(mode))
		for _, l := range groups[mode] {
			fmt.Fprintf(Out, "  %-30s", lineName(l))
			dim.Fprintf(Out, " (id:%d)", l.RouteID)
			if len(l.Directions) > 0 {
				dim.Fprintf(Out, "  → %s", strings.Join(l.Directions, ", "))
			}
			fmt.Fprintln(Out)
		}
	}
	fmt.Fprintln(Out)
}

// Routes prints routes grouped by mode.
func Routes(routes []model.Route) {
	if len(routes) == 0 {
		dim.Fprintln(Out, "No routes found.")
		return
	}

	groups := make(map[model.TransportMode][]model.Route)
	var modes []model.TransportMode
	for _, r := range routes {
		if _, exists := groups[r.Mode]; !exists {
			modes = append(modes, r.Mode)
		}
		groups[r.Mode] = append(groups[r.Mode], r)
	}

	bold.Fprintf(Out, "Found %d route(s)\n", len(routes))
	fmt.Fprintln(Out, strings.Repeat("─", 60))

	for _, mode := range modes {
		bold.Fprintf(Out, "\n%s %s\n", ModeIcon(mode), ModeName(mode))
		for _, r := range groups[mode] {
			fmt.Fprintf(Out, "  %s\n", routeLabel(r))
		}
	}
	fmt.Fprintln(Out)
}

// Disruptions prints disruptions in human-readable format.
func Disruptions(disruptions []model.Disruption) {
	if len(disruptions) == 0 {
		green.Fprintln(Out, "✓ No disruptions found.")
		return
	}

	bold.Fprintf(Out, "⚠️  %d disruption(s)\n", len(disruptions))
	fmt.Fprintln(Out, strings.Repeat("─", 60))

	for _, d := range disruptions {
		yellow.Fprintf(Out, "\n  %s\n", d.Title)
		dim.Fprintf(Out, "  %s", d.Type)
		if len(d.Routes) > 0 {
			names := make([]string, 0, len(d.Routes))
			for _, r := range d.Routes {
				names = append(names, r.Name)
			}
			dim.Fprintf(Out, " · %s", strings.Join(names, ", "))
		}
		fmt.Fprintln(Out)
		if d.Description != "" && d.Description != d.Title {
			details := d.Description
			if len(details) > 200 {
				details = details[:200] + "..."
			}
			fmt.Fprintf(Out, "  %s\n", details)
		}
		if d.URL != "" {
			dim.Fprintf(Out, "  %s\n", d.URL)
		}
	}
	fmt.Fprintln(Out)
}

// Pattern prints the stops a run calls at with their local times.
func Pattern(runRef string, pattern *model.PatternResponse, clock departures.Clock, now time.Time) {
	if pattern == nil || len(pattern.Departures) == 0 {
		dim.Fprintf(Out, "No stopping pattern for run %s.\n", runRef)
		return
	}

	bold.Fprintf(Out, "🛤️  Run %s\n", runRef)
	fmt.Fprintln(Out, strings.Repeat("─", 60))

	for _, n := range departures.Normalize(pattern.Departures, now, clock) {
		name := fmt.Sprintf("Stop %d", n.StopID)
		if s, ok := pattern.Stops[fmt.Sprint(n.StopID)]; ok && s.Name != "" {
			name = s.Name
		}
		fmt.Fprintf(Out, "  %-8s %-35s%s\n", n.LocalTime, name, formatDelay(model.EnrichedDeparture{NormalizedDeparture: n}))
	}
	fmt.Fprintln(Out)
}
