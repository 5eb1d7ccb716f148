package cmd

import (
	"fmt"
	"time"

	"github.com/glundgren93/ptv-cli/internal/format"
	"github.com/spf13/cobra"
)

var runMode string

var runCmd = &cobra.Command{
	Use:   "run <run-ref>",
	Short: "Show the stopping pattern of a service",
	Long: `Show every stop a run calls at with its local time. Run refs are in the
'run_ref' field of 'ptv departures --json'.

Examples:
  ptv run 948123
  ptv run 8043 --mode tram
  ptv run 948123 --json`,
	Aliases: []string{"pattern", "trip"},
	Args:    cobra.ExactArgs(1),
	RunE:    runRun,
}

func init() {
	runCmd.Flags().StringVar(&runMode, "mode", "", "Transport mode of the run (default from config)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	mode, err := modeOrDefault(runMode)
	if err != nil {
		return err
	}
	clock, err := cfg.Clock()
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	pattern, err := client.Pattern(cmd.Context(), args[0], mode)
	if err != nil {
		return fmt.Errorf("fetching stopping pattern: %w", err)
	}

	if jsonOutput {
		return format.JSON(pattern)
	}

	format.Pattern(args[0], pattern, clock, time.Now())
	return nil
}
