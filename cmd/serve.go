package cmd

import (
	"github.com/glundgren93/ptv-cli/internal/api"
	"github.com/glundgren93/ptv-cli/internal/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve departures over HTTP",
	Long: `Start an HTTP server answering departure requests for voice or web front ends.

Endpoints:
  GET  /version
  GET  /v1/departures?stop=Flinders%20Street&mode=train&direction=to%20city&limit=2
  POST /v1/intent   {"type": "train", "stop": "Flinders Street", "direction": "to city"}
  GET  /v1/modes

Examples:
  ptv serve
  ptv serve --listen :9000`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Address to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	listen := serveListen
	if listen == "" {
		listen = cfg.Server.Listen
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	pipeline, err := newPipeline(client)
	if err != nil {
		return err
	}

	webApp := server.New(pipeline, api.NewRouteTypeCache(client), server.Options{
		Version: Version,
		Limit:   cfg.Departures.Limit,
	})

	log.Info().Str("listen", listen).Msg("Starting HTTP server")
	return server.Serve(cmd.Context(), webApp, listen)
}
