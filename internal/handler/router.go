package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/ugaemi/tiltball-server/internal/permission"
	"github.com/ugaemi/tiltball-server/internal/session"
	"github.com/ugaemi/tiltball-server/internal/ws"
)

// Router dispatches incoming messages to the appropriate handler.
type Router struct {
	sessions *SessionHandler
	motion   *MotionHandler
}

// NewRouter creates a new message router.
func NewRouter(sm *session.Manager, gate *permission.Gate, settings Settings) *Router {
	return &Router{
		sessions: NewSessionHandler(sm, gate, settings),
		motion:   NewMotionHandler(sm),
	}
}

// HandleMessage parses and routes an incoming client message.
func (r *Router) HandleMessage(cm *ws.ClientMessage) {
	var msg ws.Message
	if err := json.Unmarshal(cm.Data, &msg); err != nil {
		slog.Warn("invalid message format", "client", cm.Client.ID, "error", err)
		cm.Client.SendMessage(ws.NewErrorMessage("invalid message format"))
		return
	}

	switch msg.Type {
	// Session messages
	case ws.TypeStartSession:
		r.sessions.HandleStartSession(cm.Client, msg)
	case ws.TypePermissionResult:
		r.sessions.HandlePermissionResult(cm.Client, msg)
	case ws.TypeEndSession:
		r.sessions.HandleEndSession(cm.Client, msg)

	// Motion messages
	case ws.TypeTilt:
		r.motion.HandleTilt(cm.Client, msg)
	case ws.TypeReset:
		r.motion.HandleReset(cm.Client, msg)

	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", cm.Client.ID)
		cm.Client.SendMessage(ws.NewErrorMessage("unknown message type: " + msg.Type))
	}
}

// HandleDisconnect handles client disconnection.
func (r *Router) HandleDisconnect(client *ws.Client) {
	r.sessions.HandleDisconnect(client)
}
