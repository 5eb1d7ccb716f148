package cmd

import (
	"fmt"
	"strconv"

	"github.com/glundgren93/ptv-cli/internal/departures"
	"github.com/glundgren93/ptv-cli/internal/format"
	"github.com/glundgren93/ptv-cli/internal/model"
	"github.com/spf13/cobra"
)

var dirToCity bool

var directionsCmd = &cobra.Command{
	Use:   "directions <route-id>",
	Short: "List the directions of a route",
	Long: `List the directions of a route and mark the one a departures request would
use. Route IDs are shown by 'ptv search' and 'ptv routes'.

Examples:
  ptv directions 6                 # Frankston line, away from the city
  ptv directions 6 --to-city       # The city-bound direction
  ptv directions 6 --json`,
	Aliases: []string{"dirs"},
	Args:    cobra.ExactArgs(1),
	RunE:    runDirections,
}

func init() {
	directionsCmd.Flags().BoolVar(&dirToCity, "to-city", false, "Mark the direction heading into the city")
	rootCmd.AddCommand(directionsCmd)
}

type directionsResult struct {
	RouteID    int               `json:"route_id"`
	Directions []model.Direction `json:"directions"`
	Chosen     *model.Direction  `json:"chosen"`
}

func runDirections(cmd *cobra.Command, args []string) error {
	routeID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("route id must be a number, got %q", args[0])
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	dirs, err := client.DirectionsForRoute(cmd.Context(), routeID)
	if err != nil {
		return fmt.Errorf("fetching directions: %w", err)
	}

	var chosen *model.Direction
	if d, ok := departures.MatchDirection(dirs, dirToCity); ok {
		chosen = &d
	}

	if jsonOutput {
		return format.JSON(directionsResult{RouteID: routeID, Directions: dirs, Chosen: chosen})
	}

	format.Directions(routeID, dirs, chosen)
	return nil
}
