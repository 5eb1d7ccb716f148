package server

import (
	"errors"
	"strconv"
	"strings"

	"github.com/glundgren93/ptv-cli/internal/departures"
	"github.com/glundgren93/ptv-cli/internal/format"
	"github.com/glundgren93/ptv-cli/internal/model"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type handlers struct {
	resolver Resolver
	catalog  Catalog
	opts     Options
}

// intentRequest is the body a voice front end posts.
type intentRequest struct {
	Type      string `json:"type"`
	Stop      string `json:"stop"`
	Direction string `json:"direction"`
}

func (h *handlers) version(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version": h.opts.Version,
	})
}

func (h *handlers) modes(c *fiber.Ctx) error {
	types, err := h.catalog.RouteTypes(c.UserContext())
	if err != nil {
		log.Warn().Err(err).Msg("Fetching route types failed")
		c.Status(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"error": "Could not fetch route types",
		})
	}
	return c.JSON(types)
}

func (h *handlers) departures(c *fiber.Ctx) error {
	stop := strings.TrimSpace(c.Query("stop"))
	if stop == "" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "A stop must be provided",
		})
	}

	mode, err := model.ParseTransportMode(c.Query("mode"))
	if err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	limit := h.opts.Limit
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			c.Status(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Limit must be a positive number",
			})
		}
	}

	req := departures.Request{
		StopName:   stop,
		Mode:       mode,
		TowardCity: towardCity(c.Query("direction")),
		Limit:      limit,
	}

	result, err := h.resolver.Resolve(c.UserContext(), req)
	if err != nil {
		c.Status(statusFor(err))
		return c.JSON(fiber.Map{
			"error":   err.Error(),
			"outcome": format.Classify(req, nil, err),
		})
	}

	return c.JSON(result)
}

// intent always replies 200; the outcome category carries the failure.
func (h *handlers) intent(c *fiber.Ctx) error {
	var body intentRequest
	if err := c.BodyParser(&body); err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Request body must be JSON",
		})
	}

	mode, err := model.ParseTransportMode(body.Type)
	if err != nil {
		return c.JSON(format.Outcome{Category: format.CategoryError, Speech: format.MessageError})
	}

	req := departures.Request{
		StopName:   body.Stop,
		Mode:       mode,
		TowardCity: towardCity(body.Direction),
		Limit:      h.opts.Limit,
	}
	result, err := h.resolver.Resolve(c.UserContext(), req)
	if err != nil {
		log.Warn().Err(err).Str("stop", body.Stop).Msg("Intent failed")
	}

	return c.JSON(format.Classify(req, result, err))
}

// towardCity is true only for the exact phrase "to city"; anything else means from the city.
func towardCity(direction string) bool {
	return strings.EqualFold(strings.TrimSpace(direction), "to city")
}

func statusFor(err error) int {
	var pe *departures.ProviderError
	switch {
	case errors.As(err, &pe) && pe.IsAuthorization():
		return fiber.StatusForbidden
	case errors.Is(err, departures.ErrProviderUnavailable):
		return fiber.StatusBadGateway
	case errors.Is(err, departures.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, departures.ErrNoMatchingDirection):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}
