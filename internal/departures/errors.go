package departures

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/glundgren93/ptv-cli/internal/model"
)

// Sentinels matched with errors.Is. Each typed error below unwraps to one of them.
var (
	ErrNotFound            = errors.New("stop not found")
	ErrNoMatchingDirection = errors.New("no matching direction")
	ErrProviderUnavailable = errors.New("transit provider unavailable")
	ErrMissingJoin         = errors.New("missing join target")
)

// NotFoundError is returned when a stop name matches no provider result.
type NotFoundError struct {
	Name string
	Mode model.TransportMode
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s stop found matching %q", e.Mode, e.Name)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NoMatchingDirectionError is returned when a route has no direction of the requested polarity.
type NoMatchingDirectionError struct {
	RouteID    int
	RouteName  string
	TowardCity bool
}

func (e *NoMatchingDirectionError) Error() string {
	want := "away from the city"
	if e.TowardCity {
		want = "toward the city"
	}
	return fmt.Sprintf("route %d (%s) has no direction %s", e.RouteID, e.RouteName, want)
}

func (e *NoMatchingDirectionError) Unwrap() error { return ErrNoMatchingDirection }

// ProviderError wraps a failure of the transit provider. StatusCode is zero for
// transport-level faults.
type ProviderError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: provider returned %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() []error { return []error{ErrProviderUnavailable, e.Err} }

// IsAuthorization reports whether the provider refused the credentials.
func (e *ProviderError) IsAuthorization() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// JoinError means a departure referenced a route or direction the request never resolved.
type JoinError struct {
	Kind string
	ID   int
}

func (e *JoinError) Error() string {
	return fmt.Sprintf("%s: no %s with id %d", ErrMissingJoin, e.Kind, e.ID)
}

func (e *JoinError) Unwrap() error { return ErrMissingJoin }

type statusCoder interface {
	StatusCode() int
}

func providerError(op string, err error) error {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe
	}
	out := &ProviderError{Op: op, Err: err}
	var sc statusCoder
	if errors.As(err, &sc) {
		out.StatusCode = sc.StatusCode()
	}
	return out
}
