package cmd

import (
	"fmt"
	"strings"

	"github.com/glundgren93/ptv-cli/internal/departures"
	"github.com/glundgren93/ptv-cli/internal/format"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	depMode   string
	depToCity bool
	depLimit  int
	depSpeak  bool
)

var departuresCmd = &cobra.Command{
	Use:   "departures <stop name>",
	Short: "Get the next departures from a stop",
	Long: `Get the next departures from a stop, towards or away from the city.

The stop name is searched the way you would say it: "Flinders Street" and
"flinders" find the same station. Departures are live where PTV has an
estimate and scheduled otherwise.

Examples:
  ptv departures Flinders Street                 # Next trains away from the city
  ptv departures Richmond --to-city              # Next trains into the city
  ptv departures "Bourke St" --mode tram -n 5    # Five trams
  ptv departures Southern Cross --speak          # One sentence answer
  ptv departures Flinders Street --json          # JSON output for agents`,
	Aliases: []string{"dep", "d", "next"},
	Args:    cobra.MinimumNArgs(1),
	RunE:    runDepartures,
}

func init() {
	departuresCmd.Flags().StringVar(&depMode, "mode", "", "Transport mode: train, tram, bus, vline, nightbus (default from config)")
	departuresCmd.Flags().BoolVar(&depToCity, "to-city", false, "Departures heading into the city")
	departuresCmd.Flags().IntVarP(&depLimit, "limit", "n", 0, "Max departures to show (default from config)")
	departuresCmd.Flags().BoolVar(&depSpeak, "speak", false, "Answer with a single spoken-style sentence")

	rootCmd.AddCommand(departuresCmd)
}

func runDepartures(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	mode, err := modeOrDefault(depMode)
	if err != nil {
		return err
	}
	limit := depLimit
	if limit <= 0 {
		limit = cfg.Departures.Limit
	}

	req := departures.Request{
		StopName:   strings.Join(args, " "),
		Mode:       mode,
		TowardCity: depToCity,
		Limit:      limit,
	}
	result, err := resolveDepartures(ctx, req)

	if depSpeak {
		outcome := format.Classify(req, result, err)
		if err != nil {
			log.Warn().Err(err).Str("category", string(outcome.Category)).Msg("Departure request failed")
		}
		if jsonOutput {
			return format.JSON(outcome)
		}
		fmt.Fprintln(format.Out, outcome.Speech)
		return nil
	}

	if err != nil {
		return fmt.Errorf("resolving departures: %w", err)
	}

	if jsonOutput {
		return format.JSON(result)
	}

	format.Departures(result, mode, depToCity)
	return nil
}
