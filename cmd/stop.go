package cmd

import (
	"fmt"
	"strings"

	"github.com/glundgren93/ptv-cli/internal/departures"
	"github.com/glundgren93/ptv-cli/internal/format"
	"github.com/glundgren93/ptv-cli/internal/model"
	"github.com/spf13/cobra"
)

var stopInfoMode string

var stopInfoCmd = &cobra.Command{
	Use:   "stop <stop name>",
	Short: "Show which routes serve a stop",
	Long: `Show the stop a name resolves to, the routes serving it and the directions
each route runs in. This is the stop 'ptv departures' would use.

Examples:
  ptv stop Flinders Street                  # Train routes at Flinders Street
  ptv stop "Bourke St" --mode tram          # Tram routes
  ptv stop Richmond --json                  # JSON for agents`,
	Aliases: []string{"stop-info", "si", "info"},
	Args:    cobra.MinimumNArgs(1),
	RunE:    runStopInfo,
}

func init() {
	stopInfoCmd.Flags().StringVar(&stopInfoMode, "mode", "", "Transport mode (default from config)")
	rootCmd.AddCommand(stopInfoCmd)
}

// stopInfoResult is the JSON output for stop.
type stopInfoResult struct {
	Stop  model.Stop        `json:"stop"`
	Lines []format.StopLine `json:"lines"`
}

func runStopInfo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	mode, err := modeOrDefault(stopInfoMode)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	stop, err := departures.ResolveStop(ctx, client, strings.Join(args, " "), mode)
	if err != nil {
		return err
	}

	directions, err := departures.RouteDirections(ctx, client, stop.Routes, cfg.Departures.Concurrency)
	if err != nil {
		return fmt.Errorf("fetching directions: %w", err)
	}

	lines := extractLines(stop.Routes, directions)

	if jsonOutput {
		return format.JSON(stopInfoResult{Stop: stop, Lines: lines})
	}

	format.StopInfo(stop, lines)
	return nil
}
