package format

import (
	"errors"
	"fmt"

	"github.com/glundgren93/ptv-cli/internal/departures"
	"github.com/glundgren93/ptv-cli/internal/model"
)

// Category groups a request outcome for a conversational front end.
type Category string

const (
	CategoryOK                 Category = "ok"
	CategoryEmpty              Category = "empty"
	CategoryNotFound           Category = "not_found"
	CategoryNoDirection        Category = "no_direction"
	CategoryServiceError       Category = "service_error"
	CategoryPermissionRequired Category = "permission_required"
	CategoryError              Category = "error"
)

const (
	MessageError       = "Uh Oh. Looks like something went wrong."
	MessageService     = "There was an error reaching the transport service. Please try again later."
	MessagePermissions = "Please enable access to the transport service for this application and try again."
)

// Outcome is what a front end says or shows for a finished request.
type Outcome struct {
	Category          Category `json:"category"`
	Speech            string   `json:"speech"`
	AskForPermissions bool     `json:"askForPermissions"`
}

// Classify turns a pipeline result or error into an Outcome. The error wins when both are set.
func Classify(req departures.Request, result *departures.Result, err error) Outcome {
	if err != nil {
		return classifyError(req, err)
	}
	if result.Empty() {
		name := req.StopName
		if result != nil && result.Stop.Name != "" {
			name = result.Stop.Name
		}
		return Outcome{
			Category: CategoryEmpty,
			Speech: fmt.Sprintf("There are no upcoming %s departures %s at %s.",
				modeNoun(req.Mode), DirectionLabel(req.TowardCity), name),
		}
	}
	return Outcome{
		Category: CategoryOK,
		Speech:   Phrase(req.Mode, req.TowardCity, result.Departures[0]),
	}
}

func classifyError(req departures.Request, err error) Outcome {
	var pe *departures.ProviderError
	switch {
	case errors.As(err, &pe) && pe.IsAuthorization():
		return Outcome{Category: CategoryPermissionRequired, Speech: MessagePermissions, AskForPermissions: true}
	case errors.Is(err, departures.ErrProviderUnavailable):
		return Outcome{Category: CategoryServiceError, Speech: MessageService}
	case errors.Is(err, departures.ErrNotFound):
		return Outcome{
			Category: CategoryNotFound,
			Speech:   fmt.Sprintf("Sorry, I couldn't find a %s stop called %s.", modeNoun(req.Mode), req.StopName),
		}
	case errors.Is(err, departures.ErrNoMatchingDirection):
		return Outcome{
			Category: CategoryNoDirection,
			Speech:   fmt.Sprintf("Sorry, I couldn't find %s services %s at %s.", modeNoun(req.Mode), DirectionLabel(req.TowardCity), req.StopName),
		}
	}
	return Outcome{Category: CategoryError, Speech: MessageError}
}

// Phrase is the spoken sentence for the next departure, e.g.
// "Next train to city is the Frankston 5 minutes from now at 10:03 am".
func Phrase(mode model.TransportMode, towardCity bool, dep model.EnrichedDeparture) string {
	lead := fmt.Sprintf("Next %s %s is the %s", modeNoun(mode), DirectionLabel(towardCity), dep.RouteName)
	switch {
	case dep.MinutesFromNow <= 0:
		return fmt.Sprintf("%s departing now at %s", lead, dep.LocalTime)
	case dep.MinutesFromNow == 1:
		return fmt.Sprintf("%s 1 minute from now at %s", lead, dep.LocalTime)
	}
	return fmt.Sprintf("%s %d minutes from now at %s", lead, dep.MinutesFromNow, dep.LocalTime)
}

func modeNoun(mode model.TransportMode) string {
	switch mode {
	case model.VLine:
		return "V/Line train"
	case model.NightBus:
		return "night bus"
	}
	return mode.String()
}
