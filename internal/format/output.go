package format

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/glundgren93/ptv-cli/internal/departures"
	"github.com/glundgren93/ptv-cli/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	bold      = color.New(color.Bold)
	green     = color.New(color.FgGreen, color.Bold)
	yellow    = color.New(color.FgYellow)
	red       = color.New(color.FgRed)
	cyan      = color.New(color.FgCyan)
	dim       = color.New(color.Faint)
	busIcon   = "🚌"
	trainIcon = "🚆"
	tramIcon  = "🚋"
	vlineIcon = "🚄"
	nightIcon = "🌙"

	title = cases.Title(language.English)
)

// Out is where the human-readable printers write.
var Out io.Writer = os.Stdout

// ModeIcon returns the emoji icon for a transport mode.
func ModeIcon(mode model.TransportMode) string {
	switch mode {
	case model.Train:
		return trainIcon
	case model.Tram:
		return tramIcon
	case model.Bus:
		return busIcon
	case model.VLine:
		return vlineIcon
	case model.NightBus:
		return nightIcon
	default:
		return "🚏"
	}
}

// ModeName is the display name of a mode, e.g. "Train" or "V/Line".
func ModeName(mode model.TransportMode) string {
	switch mode {
	case model.VLine:
		return "V/Line"
	case model.NightBus:
		return "Night Bus"
	}
	return title.String(mode.String())
}

// JSON outputs any value as formatted JSON.
func JSON(v any) error {
	enc := json.NewEncoder(Out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// Departures prints resolved departures in human-readable format.
func Departures(result *departures.Result, mode model.TransportMode, towardCity bool) {
	if result.Empty() {
		name := "this stop"
		if result != nil {
			name = result.Stop.Name
		}
		dim.Fprintf(Out, "No upcoming departures from %s.\n", name)
		return
	}

	bold.Fprintf(Out, "%s %s", ModeIcon(mode), result.Stop.Name)
	dim.Fprintf(Out, " (id:%d) %s\n", result.Stop.ID, DirectionLabel(towardCity))
	fmt.Fprintln(Out, strings.Repeat("─", 60))

	for _, d := range result.Departures {
		fmt.Fprintf(Out, "  %-22s → %-24s %s %s%s%s\n",
			d.RouteName,
			d.DirectionName,
			bold.Sprint(d.LocalTime),
			formatETA(d.MinutesFromNow),
			formatDelay(d),
			formatPlatform(d.Platform),
		)
	}
	fmt.Fprintln(Out)
}

// DirectionLabel is the spoken form of the direction preference.
func DirectionLabel(towardCity bool) string {
	if towardCity {
		return "to city"
	}
	return "from city"
}

func formatETA(minutes int) string {
	if minutes <= 0 {
		return green.Sprint("NOW")
	}
	if minutes <= 5 {
		return yellow.Sprintf("%d min", minutes)
	}
	return cyan.Sprintf("%d min", minutes)
}

func formatDelay(d model.EnrichedDeparture) string {
	switch {
	case !d.Live():
		return dim.Sprint(" scheduled")
	case d.DelayMinutes > 0:
		return red.Sprintf(" +%d late", d.DelayMinutes)
	case d.DelayMinutes < 0:
		return green.Sprintf(" %d early", -d.DelayMinutes)
	}
	return ""
}

func formatPlatform(platform string) string {
	if platform == "" {
		return ""
	}
	return dim.Sprintf(" [plat %s]", platform)
}

// Stops prints stop search results.
func Stops(stops []model.Stop, query string) {
	if len(stops) == 0 {
		fmt.Fprintf(Out, "No stops found matching %q\n", query)
		return
	}

	fmt.Fprintf(Out, "Found %d stop(s) matching %q\n", len(stops), query)
	fmt.Fprintln(Out, strings.Repeat("─", 60))
	for i, s := range stops {
		name := s.Name
		if s.Suburb != "" {
			name += ", " + s.Suburb
		}
		fmt.Fprintf(Out, "  %d. %s %-40s (id:%d)\n", i+1, ModeIcon(s.Mode), name, s.ID)
		if len(s.Routes) > 0 {
			routes := make([]string, 0, len(s.Routes))
			for _, r := range s.Routes {
				routes = append(routes, routeLabel(r))
			}
			dim.Fprintf(Out, "     %s\n", strings.Join(routes, ", "))
		}
	}
	fmt.Fprintln(Out)
}

func routeLabel(r model.Route) string {
	if r.Number != "" && r.Number != r.Name {
		return fmt.Sprintf("%s %s (id:%d)", r.Number, r.Name, r.ID)
	}
	return fmt.Sprintf("%s (id:%d)", r.Name, r.ID)
}

// Directions prints the directions of a route, marking the one a request would pick.
func Directions(routeID int, dirs []model.Direction, chosen *model.Direction) {
	if len(dirs) == 0 {
		dim.Fprintf(Out, "No directions found for route %d.\n", routeID)
		return
	}

	bold.Fprintf(Out, "Route %d directions\n", routeID)
	fmt.Fprintln(Out, strings.Repeat("─", 60))
	for _, d := range dirs {
		marker := "  "
		if chosen != nil && chosen.ID == d.ID {
			marker = green.Sprint("➜ ")
		}
		city := ""
		if d.IsCityBound() {
			city = cyan.Sprint(" [city]")
		}
		fmt.Fprintf(Out, "%s%-30s (id:%d)%s\n", marker, d.Name, d.ID, city)
	}
	fmt.Fprintln(Out)
}

// RouteTypes prints the transport modes reported by the provider.
func RouteTypes(types []model.RouteType) {
	if len(types) == 0 {
		dim.Fprintln(Out, "No route types returned.")
		return
	}
	for _, rt := range types {
		fmt.Fprintf(Out, "  %s %-12s code %d\n", ModeIcon(rt.Code), rt.Name, int(rt.Code))
	}
}
