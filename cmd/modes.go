package cmd

import (
	"fmt"

	"github.com/glundgren93/ptv-cli/internal/format"
	"github.com/spf13/cobra"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the transport modes PTV knows about",
	Long: `List PTV route types with the codes accepted by --mode.

Examples:
  ptv modes
  ptv modes --json`,
	Aliases: []string{"route-types"},
	RunE:    runModes,
}

func init() {
	rootCmd.AddCommand(modesCmd)
}

func runModes(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	types, err := client.RouteTypes(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetching route types: %w", err)
	}

	if jsonOutput {
		return format.JSON(types)
	}

	format.RouteTypes(types)
	return nil
}
