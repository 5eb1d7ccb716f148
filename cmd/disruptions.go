package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/glundgren93/ptv-cli/internal/format"
	"github.com/glundgren93/ptv-cli/internal/model"
	"github.com/spf13/cobra"
)

var (
	disLines   string
	disRouteID int
	disModes   string
	disFuture  bool
)

var disruptionsCmd = &cobra.Command{
	Use:   "disruptions",
	Short: "Check service disruptions",
	Long: `Check current service disruptions across the PTV network.

Filter by route name, route ID or transport mode.

Examples:
  ptv disruptions                              # All current disruptions
  ptv disruptions --mode train                 # Trains only
  ptv disruptions --route 6                    # Route 6 (Frankston)
  ptv disruptions --line Frankston,Pakenham    # Multiple lines by name
  ptv disruptions --future                     # Include planned disruptions
  ptv disruptions --json                       # JSON output`,
	Aliases: []string{"dis", "status"},
	RunE:    runDisruptions,
}

func init() {
	disruptionsCmd.Flags().StringVar(&disLines, "line", "", "Filter by route name(s), comma-separated (e.g. Frankston,96)")
	disruptionsCmd.Flags().IntVar(&disRouteID, "route", 0, "Route ID")
	disruptionsCmd.Flags().StringVar(&disModes, "mode", "", "Transport mode(s), comma-separated")
	disruptionsCmd.Flags().BoolVar(&disFuture, "future", false, "Include disruptions that have not started yet")

	rootCmd.AddCommand(disruptionsCmd)
}

func runDisruptions(cmd *cobra.Command, args []string) error {
	modes, err := parseModes(disModes)
	if err != nil {
		return err
	}

	var lineNames []string
	if disLines != "" {
		for _, s := range strings.Split(disLines, ",") {
			lineNames = append(lineNames, strings.TrimSpace(s))
		}
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	disruptions, err := client.Disruptions(cmd.Context(), modes, disRouteID)
	if err != nil {
		return fmt.Errorf("fetching disruptions: %w", err)
	}

	if !disFuture {
		disruptions = filterCurrent(disruptions, time.Now())
	}
	if len(lineNames) > 0 {
		disruptions = filterDisruptionsByLine(disruptions, lineNames)
	}

	if jsonOutput {
		return format.JSON(disruptions)
	}

	format.Disruptions(disruptions)
	return nil
}

// filterCurrent keeps disruptions in effect at now.
func filterCurrent(disruptions []model.Disruption, now time.Time) []model.Disruption {
	filtered := []model.Disruption{}
	for _, d := range disruptions {
		if d.Current(now) {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// filterDisruptionsByLine keeps disruptions affecting a route with one of the given
// names or numbers.
func filterDisruptionsByLine(disruptions []model.Disruption, names []string) []model.Disruption {
	nameSet := make(map[string]bool)
	for _, n := range names {
		nameSet[strings.ToLower(n)] = true
	}

	filtered := []model.Disruption{}
	for _, d := range disruptions {
		for _, r := range d.Routes {
			if nameSet[strings.ToLower(r.Name)] || (r.Number != "" && nameSet[strings.ToLower(r.Number)]) {
				filtered = append(filtered, d)
				break
			}
		}
	}
	return filtered
}
