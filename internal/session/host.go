package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ugaemi/tiltball-server/internal/permission"
	"github.com/ugaemi/tiltball-server/internal/ws"
)

// ErrPromptPending is returned when a second prompt is started before the
// first one was answered.
var ErrPromptPending = errors.New("permission prompt already pending")

// ErrNoPrompt is returned when a client answers a prompt nobody asked for.
var ErrNoPrompt = errors.New("no permission prompt pending")

// Reply is a client's answer to a permission_request.
type Reply struct {
	State string `json:"state"`
	Error string `json:"error,omitempty"`
}

// implicitHost is a client whose platform delivers orientation events
// without a prompt.
type implicitHost struct{}

// RemoteHost forwards the permission prompt to the client's device and
// waits for its permission_result.
type RemoteHost struct {
	send func(ws.Message)

	mu      sync.Mutex
	pending chan Reply
}

// NewRemoteHost creates a RemoteHost that delivers prompts through send.
func NewRemoteHost(send func(ws.Message)) *RemoteHost {
	return &RemoteHost{send: send}
}

// RequestPermission sends a permission_request and blocks until the client
// replies or ctx is done. A reply carrying an error is a rejected prompt.
func (h *RemoteHost) RequestPermission(ctx context.Context) (permission.State, error) {
	h.mu.Lock()
	if h.pending != nil {
		h.mu.Unlock()
		return "", ErrPromptPending
	}
	ch := make(chan Reply, 1)
	h.pending = ch
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.pending = nil
		h.mu.Unlock()
	}()

	msg, _ := ws.NewMessage(ws.TypePermissionRequest, struct{}{})
	h.send(msg)

	select {
	case reply := <-ch:
		if reply.Error != "" {
			return "", fmt.Errorf("client rejected permission prompt: %s", reply.Error)
		}
		return permission.ParseState(reply.State), nil
	case <-ctx.Done():
		return "", fmt.Errorf("waiting for permission reply: %w", ctx.Err())
	}
}

// Resolve delivers a client's reply to the pending prompt.
func (h *RemoteHost) Resolve(reply Reply) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pending == nil {
		return ErrNoPrompt
	}
	select {
	case h.pending <- reply:
	default:
		// already answered
	}
	return nil
}
