package server

import (
	"context"

	"github.com/glundgren93/ptv-cli/internal/departures"
	"github.com/glundgren93/ptv-cli/internal/model"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Resolver answers departure requests.
type Resolver interface {
	Resolve(ctx context.Context, req departures.Request) (*departures.Result, error)
}

// Catalog lists the transport modes the provider knows about.
type Catalog interface {
	RouteTypes(ctx context.Context) ([]model.RouteType, error)
}

// Options configures the HTTP server.
type Options struct {
	Version string
	Limit   int // departures per answer when a request gives none
}

// New builds the fiber app with every route registered. /v1/modes is only served
// when catalog is set.
func New(resolver Resolver, catalog Catalog, opts Options) *fiber.App {
	webApp := fiber.New(fiber.Config{
		AppName:               "ptv",
		DisableStartupMessage: true,
	})
	webApp.Use(recover.New())
	webApp.Use(NewLogger())

	h := &handlers{resolver: resolver, catalog: catalog, opts: opts}

	webApp.Get("/version", h.version)

	group := webApp.Group("/v1")
	group.Get("/departures", h.departures)
	group.Post("/intent", h.intent)
	if catalog != nil {
		group.Get("/modes", h.modes)
	}

	return webApp
}

// Serve listens on addr until ctx is cancelled.
func Serve(ctx context.Context, webApp *fiber.App, listen string) error {
	errc := make(chan error, 1)
	go func() {
		errc <- webApp.Listen(listen)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return webApp.ShutdownWithContext(context.Background())
	}
}
