package permission

import (
	"context"
	"log/slog"
)

// State is the answer a host gives to a permission prompt.
type State string

const (
	StateGranted State = "granted"
	StateDenied  State = "denied"
	StateDefault State = "default"
)

// ParseState maps a host answer to a State. Anything unrecognised is treated
// as StateDefault, which never grants access.
func ParseState(s string) State {
	switch State(s) {
	case StateGranted, StateDenied:
		return State(s)
	default:
		return StateDefault
	}
}

// Host is the platform's orientation-event facility. Hosts that gate sensor
// access behind a prompt also implement Requester.
type Host any

// Requester is the optional capability of a Host that must ask the user
// before orientation events are delivered.
type Requester interface {
	RequestPermission(ctx context.Context) (State, error)
}

// Gate asks a host for motion-sensor permission.
type Gate struct {
	logger *slog.Logger
}

// NewGate creates a Gate that logs through logger, or slog.Default if nil.
func NewGate(logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{logger: logger}
}

// Request reports whether orientation events may be read from host.
// A host without the Requester capability is implicitly granted. A failed
// request is logged and reported as not granted; it is never retried.
// Request imposes no timeout of its own.
func (g *Gate) Request(ctx context.Context, host Host) bool {
	req, ok := host.(Requester)
	if !ok {
		return true
	}

	state, err := req.RequestPermission(ctx)
	if err != nil {
		g.logger.Error("orientation permission request failed", "error", err)
		return false
	}
	return state == StateGranted
}

// Request runs the default Gate against host.
func Request(ctx context.Context, host Host) bool {
	return NewGate(nil).Request(ctx, host)
}
