package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/ugaemi/tiltball-server/internal/game"
	"github.com/ugaemi/tiltball-server/internal/permission"
	"github.com/ugaemi/tiltball-server/internal/physics"
	"github.com/ugaemi/tiltball-server/internal/session"
	"github.com/ugaemi/tiltball-server/internal/ws"
)

// Settings are the server-wide session defaults.
type Settings struct {
	Params   physics.Params
	TickRate int
	// PermissionTimeout bounds how long the server waits for a client to
	// answer a permission prompt. Zero waits until the session ends.
	PermissionTimeout time.Duration
}

// SessionHandler handles session lifecycle messages.
type SessionHandler struct {
	sm       *session.Manager
	gate     *permission.Gate
	settings Settings
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sm *session.Manager, gate *permission.Gate, settings Settings) *SessionHandler {
	return &SessionHandler{
		sm:       sm,
		gate:     gate,
		settings: settings,
	}
}

type startSessionRequest struct {
	BallSize           game.BallSize `json:"ball_size"`
	Mode               game.Mode     `json:"mode"`
	RequiresPermission bool          `json:"requires_permission"`
}

// HandleStartSession creates a session and runs the permission gate for it.
func (h *SessionHandler) HandleStartSession(client *ws.Client, msg ws.Message) {
	req := startSessionRequest{BallSize: game.SizeMedium}
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			client.SendMessage(ws.NewErrorMessage("invalid session options"))
			return
		}
	}

	player := game.NewPlayer(req.BallSize, req.Mode)
	s, err := h.sm.Create(player, client, session.Options{
		Params:             h.settings.Params,
		TickRate:           h.settings.TickRate,
		RequiresPermission: req.RequiresPermission,
	})
	switch {
	case errors.Is(err, session.ErrSessionExists):
		client.SendMessage(ws.NewErrorMessage("session already started"))
		return
	case errors.Is(err, session.ErrTooManySessions):
		client.SendMessage(ws.NewErrorMessage("server is full"))
		return
	case err != nil:
		slog.Error("failed to create session", "client", client.ID, "error", err)
		client.SendMessage(ws.NewErrorMessage("failed to create session"))
		return
	}

	resp, _ := ws.NewMessage(ws.TypeSessionInfo, s.Info())
	s.Send(resp)

	// The prompt waits on a permission_result that arrives through this same
	// dispatch loop, so it must not block here.
	go h.authorize(s)
}

func (h *SessionHandler) authorize(s *session.Session) {
	ctx := s.Context()
	if h.settings.PermissionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.settings.PermissionTimeout)
		defer cancel()
	}

	if !s.Authorize(ctx, h.gate) {
		h.sm.Remove(s.ID)
	}
}

// HandlePermissionResult forwards the client's answer to a pending prompt.
func (h *SessionHandler) HandlePermissionResult(client *ws.Client, msg ws.Message) {
	s := h.sm.FindByClient(client.ID)
	if s == nil {
		client.SendMessage(ws.NewErrorMessage("no active session"))
		return
	}

	var reply session.Reply
	if err := json.Unmarshal(msg.Data, &reply); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid permission result"))
		return
	}

	if err := s.ResolvePermission(reply); err != nil {
		slog.Warn("unexpected permission result", "session", s.ID, "error", err)
		client.SendMessage(ws.NewErrorMessage("no permission prompt pending"))
	}
}

// HandleEndSession stops the client's session.
func (h *SessionHandler) HandleEndSession(client *ws.Client, _ ws.Message) {
	s := h.sm.FindByClient(client.ID)
	if s == nil {
		client.SendMessage(ws.NewErrorMessage("no active session"))
		return
	}
	h.sm.Remove(s.ID)
}

// HandleDisconnect removes any session the client owned.
func (h *SessionHandler) HandleDisconnect(client *ws.Client) {
	if s := h.sm.FindByClient(client.ID); s != nil {
		h.sm.Remove(s.ID)
	}
}
