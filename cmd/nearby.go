package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/glundgren93/ptv-cli/internal/api"
	"github.com/glundgren93/ptv-cli/internal/departures"
	"github.com/glundgren93/ptv-cli/internal/format"
	"github.com/glundgren93/ptv-cli/internal/model"
	"github.com/spf13/cobra"
)

var (
	nearbyLat       float64
	nearbyLon       float64
	nearbyRadius    float64
	nearbyLimit     int
	nearbyMode      string
	nearbyShowLines bool
)

var nearbyCmd = &cobra.Command{
	Use:   "nearby [lat,lon]",
	Short: "Find stops near a location",
	Long: `Find nearby stops by coordinates.

Use --lines to also show the routes serving each stop and the directions they
run in (slower, makes API calls per route).

Examples:
  ptv nearby --lat -37.8183 --lon 144.9671        # By coordinates
  ptv nearby -- -37.8183,144.9671                 # Same, positional
  ptv nearby -r 0.3 -- -37.8183,144.9671          # 300m radius
  ptv nearby --mode tram -- -37.8183,144.9671     # Tram stops only
  ptv nearby --lines -- -37.8183,144.9671         # Show routes per stop
  ptv nearby --json -- -37.8183,144.9671          # JSON output`,
	Aliases: []string{"near", "n"},
	RunE:    runNearby,
}

func init() {
	nearbyCmd.Flags().Float64Var(&nearbyLat, "lat", 0, "Latitude (WGS84)")
	nearbyCmd.Flags().Float64Var(&nearbyLon, "lon", 0, "Longitude (WGS84)")
	nearbyCmd.Flags().Float64VarP(&nearbyRadius, "radius", "r", 0.5, "Search radius in km")
	nearbyCmd.Flags().IntVar(&nearbyLimit, "limit", 10, "Max results")
	nearbyCmd.Flags().StringVar(&nearbyMode, "mode", "", "Transport mode(s), comma-separated (default all)")
	nearbyCmd.Flags().BoolVar(&nearbyShowLines, "lines", false, "Show which routes serve each stop (slower)")

	rootCmd.AddCommand(nearbyCmd)
}

func runNearby(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	lat, lon := nearbyLat, nearbyLon
	if lat == 0 && lon == 0 {
		if len(args) == 0 {
			return fmt.Errorf("provide --lat/--lon or a lat,lon argument")
		}
		var err error
		lat, lon, err = parseLatLon(strings.Join(args, ""))
		if err != nil {
			return err
		}
	}

	modes, err := parseModes(nearbyMode)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	stops, err := client.StopsNear(ctx, lat, lon, modes, int(nearbyRadius*1000), nearbyLimit)
	if err != nil {
		return fmt.Errorf("fetching nearby stops: %w", err)
	}

	nearby := api.NearestStops(stops, lat, lon, nearbyRadius)

	if nearbyLimit > 0 && len(nearby) > nearbyLimit {
		nearby = nearby[:nearbyLimit]
	}

	if !nearbyShowLines {
		if jsonOutput {
			return format.JSON(nearby)
		}
		format.NearbyStops(nearby)
		return nil
	}

	// Routes are shared between neighbouring stops, so look each up once.
	var routes []model.Route
	seen := make(map[int]bool)
	for _, s := range nearby {
		for _, r := range s.Stop.Routes {
			if !seen[r.ID] {
				seen[r.ID] = true
				routes = append(routes, r)
			}
		}
	}

	directions, err := departures.RouteDirections(ctx, client, routes, cfg.Departures.Concurrency)
	if err != nil {
		return fmt.Errorf("fetching directions: %w", err)
	}

	results := []format.NearbyStopWithLines{}
	for _, s := range nearby {
		results = append(results, format.NearbyStopWithLines{
			Stop:      s.Stop.Name,
			StopID:    s.Stop.ID,
			DistanceM: s.DistanceM,
			Lines:     extractLines(s.Stop.Routes, directions),
		})
	}

	if jsonOutput {
		return format.JSON(results)
	}

	format.NearbyStopsWithLines(results)
	return nil
}

func parseLatLon(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected lat,lon, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q", parts[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q", parts[1])
	}
	return lat, lon, nil
}

// extractLines turns a stop's routes into unique lines with their direction names.
func extractLines(routes []model.Route, directions map[int][]model.Direction) []format.StopLine {
	seen := make(map[int]bool)
	lines := []format.StopLine{}

	for _, r := range routes {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true

		names := []string{}
		for _, d := range directions[r.ID] {
			names = append(names, d.Name)
		}
		lines = append(lines, format.StopLine{
			RouteID:    r.ID,
			Route:      r.Name,
			Number:     r.Number,
			Mode:       r.Mode,
			Directions: names,
		})
	}
	return lines
}
