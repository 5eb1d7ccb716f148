package cmd

import (
	"fmt"
	"strings"

	"github.com/glundgren93/ptv-cli/internal/api"
	"github.com/glundgren93/ptv-cli/internal/format"
	"github.com/spf13/cobra"
)

var (
	searchLimit int
	searchMode  string
	searchRoute string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for stops by name",
	Long: `Search for stops and stations by name. Returns matching stops with their IDs
and the routes serving them, best match first.

Examples:
  ptv search Flinders
  ptv search "Southern Cross" --mode train
  ptv search Bourke --mode tram --route 96
  ptv search Richmond --json`,
	Aliases: []string{"find", "s"},
	Args:    cobra.MinimumNArgs(1),
	RunE:    runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "Max results")
	searchCmd.Flags().StringVar(&searchMode, "mode", "", "Transport mode(s), comma-separated (default all)")
	searchCmd.Flags().StringVar(&searchRoute, "route", "", "Only stops served by this route name or number")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := strings.Join(args, " ")

	modes, err := parseModes(searchMode)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	stops, err := client.SearchStops(ctx, query, modes)
	if err != nil {
		return fmt.Errorf("searching stops: %w", err)
	}

	stops = api.FilterStopsByRoute(stops, searchRoute)

	if searchLimit > 0 && len(stops) > searchLimit {
		stops = stops[:searchLimit]
	}

	if jsonOutput {
		return format.JSON(stops)
	}

	format.Stops(stops, query)
	return nil
}
