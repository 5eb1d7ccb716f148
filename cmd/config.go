package cmd

import (
	"fmt"
	"strings"

	"github.com/glundgren93/ptv-cli/internal/config"
	"github.com/glundgren93/ptv-cli/internal/format"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ptv-cli configuration",
	Long: `View or edit your local configuration (~/` + config.DefaultFileName + `).

Keys: provider.baseURL, provider.devID, provider.apiKey, provider.timeoutMS,
provider.retries, departures.mode, departures.limit, departures.maxResults,
departures.timezone, departures.clock, departures.concurrency, server.listen.

Examples:
  ptv config show
  ptv config set provider.devID 3000165
  ptv config set departures.clock 24h`,
	// Subcommands load the config themselves.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		shown := *loaded
		shown.Provider.APIKey = mask(shown.Provider.APIKey)

		if jsonOutput {
			return format.JSON(shown)
		}
		data, err := yaml.Marshal(&shown)
		if err != nil {
			return fmt.Errorf("failed to serialize config: %w", err)
		}
		fmt.Fprint(format.Out, string(data))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fileCfg, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		if err := fileCfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(configPath, fileCfg); err != nil {
			return err
		}
		fmt.Fprintf(format.Out, "✅ %s saved\n", args[0])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// mask hides all but the last four characters of a secret.
func mask(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}
