package fetcher

import (
	"errors"
	"fmt"
	"time"
)

// Kind tags the outcome of a backend call.
type Kind int

const (
	Success Kind = iota
	NotConfigured
	TransportError
	StatusError
	ShapeError
	Canceled
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case NotConfigured:
		return "not_configured"
	case TransportError:
		return "transport_error"
	case StatusError:
		return "status_error"
	case ShapeError:
		return "shape_error"
	case Canceled:
		return "canceled"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is what the safe-fetch helper hands back to orchestrators. Value is
// only meaningful when Kind is Success.
type Result[T any] struct {
	Kind       Kind
	Value      T
	StatusCode int
	Err        error
	Elapsed    time.Duration
}

var (
	ErrTransport     = errors.New("backend unreachable")
	ErrNotConfigured = errors.New("backend resource not configured")
	ErrShape         = errors.New("unexpected response shape")
	ErrInvalidVessel = errors.New("invalid vessel id")
)

// APIError is a non-success HTTP status from the backend.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// adapt runs fn over a successful result. A false return turns the result
// into a ShapeError.
func adapt[R, T any](res Result[R], what string, fn func(R) (T, bool)) Result[T] {
	out := Result[T]{Kind: res.Kind, StatusCode: res.StatusCode, Err: res.Err, Elapsed: res.Elapsed}
	if res.Kind != Success {
		return out
	}
	v, ok := fn(res.Value)
	if !ok {
		out.Kind = ShapeError
		out.Err = fmt.Errorf("%s: %w", what, ErrShape)
		return out
	}
	out.Value = v
	return out
}
