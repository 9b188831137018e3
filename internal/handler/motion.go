package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/ugaemi/tiltball-server/internal/game"
	"github.com/ugaemi/tiltball-server/internal/physics"
	"github.com/ugaemi/tiltball-server/internal/session"
	"github.com/ugaemi/tiltball-server/internal/ws"
)

// MotionHandler handles tilt input for running sessions.
type MotionHandler struct {
	sm *session.Manager
}

// NewMotionHandler creates a new motion handler.
func NewMotionHandler(sm *session.Manager) *MotionHandler {
	return &MotionHandler{sm: sm}
}

// HandleTilt records the latest orientation reading for the client's ball.
func (h *MotionHandler) HandleTilt(client *ws.Client, msg ws.Message) {
	s := h.runningSession(client)
	if s == nil {
		return
	}

	var reading physics.Reading
	if err := json.Unmarshal(msg.Data, &reading); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid tilt data"))
		return
	}
	// JSON cannot carry NaN or Inf, but keep the session free of them regardless.
	if !reading.Finite() {
		client.SendMessage(ws.NewErrorMessage("tilt angles must be finite"))
		return
	}

	s.SetReading(reading)
}

// HandleReset puts the client's ball back at the centre.
func (h *MotionHandler) HandleReset(client *ws.Client, _ ws.Message) {
	s := h.runningSession(client)
	if s == nil {
		return
	}
	s.Reset()
	slog.Debug("ball reset", "session", s.ID)
}

func (h *MotionHandler) runningSession(client *ws.Client) *session.Session {
	s := h.sm.FindByClient(client.ID)
	if s == nil {
		client.SendMessage(ws.NewErrorMessage("no active session"))
		return nil
	}
	if s.SessionState() != game.StateRunning {
		client.SendMessage(ws.NewErrorMessage("session is not running"))
		return nil
	}
	return s
}
