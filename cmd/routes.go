package cmd

import (
	"fmt"

	"github.com/glundgren93/ptv-cli/internal/format"
	"github.com/spf13/cobra"
)

var (
	routesMode string
	routesName string
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List transit routes",
	Long: `List routes in the PTV network, optionally filtered by mode or name.

Examples:
  ptv routes                     # All routes
  ptv routes --mode tram         # Tram routes only
  ptv routes --name Frankston    # Routes named like Frankston
  ptv routes --json              # JSON output`,
	Aliases: []string{"lines", "line", "l"},
	RunE:    runRoutes,
}

func init() {
	routesCmd.Flags().StringVar(&routesMode, "mode", "", "Transport mode(s), comma-separated (default all)")
	routesCmd.Flags().StringVar(&routesName, "name", "", "Filter by route name")
	rootCmd.AddCommand(routesCmd)
}

func runRoutes(cmd *cobra.Command, args []string) error {
	modes, err := parseModes(routesMode)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	routes, err := client.Routes(cmd.Context(), modes, routesName)
	if err != nil {
		return fmt.Errorf("fetching routes: %w", err)
	}

	if jsonOutput {
		return format.JSON(routes)
	}

	format.Routes(routes)
	return nil
}
