package cmd

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/glundgren93/ptv-cli/internal/api"
	"github.com/glundgren93/ptv-cli/internal/config"
	"github.com/glundgren93/ptv-cli/internal/departures"
	"github.com/glundgren93/ptv-cli/internal/model"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	_ "time/tzdata"
)

var (
	jsonOutput bool
	configPath string
	debug      bool

	cfg *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "ptv",
	Short: "Melbourne public transport CLI",
	Long: `ptv-cli: a command-line interface for Melbourne's public transport (PTV).

Ask when the next train, tram or bus leaves a stop, towards or away from the
city. Designed for both humans and voice/agent front ends.

Requires a PTV Timetable API developer id and key (PTV_DEV_ID, PTV_API_KEY
or 'ptv config set').`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/machine consumption)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/"+config.DefaultFileName+")")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log debug output to stderr")
}

func setup(cmd *cobra.Command, args []string) error {
	setupLogging()

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

func setupLogging() {
	if os.Getenv("PTV_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	if debug || os.Getenv("PTV_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}
}

func newClient() (*api.Client, error) {
	return api.NewClient(cfg.Provider)
}

// resolveDepartures builds the client and pipeline and runs req. A client that cannot
// be built comes back as a provider error, so callers classify it like any other.
func resolveDepartures(ctx context.Context, req departures.Request) (*departures.Result, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}
	pipeline, err := newPipeline(client)
	if err != nil {
		return nil, err
	}
	return pipeline.Resolve(ctx, req)
}

func newPipeline(client *api.Client) (*departures.Pipeline, error) {
	clock, err := cfg.Clock()
	if err != nil {
		return nil, err
	}
	return departures.New(client, departures.Options{
		Clock:          clock,
		MaxConcurrency: cfg.Departures.Concurrency,
		MaxResults:     cfg.Departures.MaxResults,
	})
}

// modeOrDefault parses a --mode flag, falling back to the configured mode.
func modeOrDefault(flag string) (model.TransportMode, error) {
	if flag == "" {
		return cfg.Mode()
	}
	return model.ParseTransportMode(flag)
}

// parseModes parses a comma-separated --mode list. Empty means every mode.
func parseModes(flag string) ([]model.TransportMode, error) {
	if flag == "" {
		return nil, nil
	}
	var modes []model.TransportMode
	for _, s := range strings.Split(flag, ",") {
		m, err := model.ParseTransportMode(s)
		if err != nil {
			return nil, err
		}
		modes = append(modes, m)
	}
	return modes, nil
}
