package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ugaemi/tiltball-server/internal/game"
	"github.com/ugaemi/tiltball-server/internal/permission"
	"github.com/ugaemi/tiltball-server/internal/physics"
	"github.com/ugaemi/tiltball-server/internal/ws"
)

// Session is one player's ball, driven by that player's tilt readings.
type Session struct {
	ID     string            `json:"id"`
	State  game.SessionState `json:"state"`
	Player *game.Player      `json:"player"`

	client *ws.Client
	host   permission.Host

	params       physics.Params
	tickRate     int
	tickInterval time.Duration

	ball    physics.Ball
	reading physics.Reading
	tick    uint64

	// Game loop control
	ctx    context.Context
	cancel context.CancelFunc
	stopCh chan struct{}

	mu sync.RWMutex
}

// Options tunes a new session. Params are used as given; a TickRate outside
// (0, game.MaxTickRate] falls back to game.TickRate.
type Options struct {
	Params             physics.Params
	TickRate           int
	RequiresPermission bool
}

// New creates a session for player owned by client. The ball rests at the
// centre of the field until permission is granted and the loop starts.
func New(player *game.Player, client *ws.Client, opts Options) *Session {
	rate := opts.TickRate
	if rate <= 0 || rate > game.MaxTickRate {
		rate = game.TickRate
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:           uuid.New().String(),
		State:        game.StateAwaitingPermission,
		Player:       player,
		client:       client,
		host:         implicitHost{},
		params:       opts.Params,
		tickRate:     rate,
		tickInterval: time.Second / time.Duration(rate),
		ball:         physics.NewBall(),
		ctx:          ctx,
		cancel:       cancel,
		stopCh:       make(chan struct{}),
	}
	if opts.RequiresPermission {
		s.host = NewRemoteHost(s.Send)
	}
	return s
}

// Context is cancelled when the session ends.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Host returns the permission host for this session's device.
func (s *Session) Host() permission.Host {
	return s.host
}

// ResolvePermission forwards a permission_result from the client.
func (s *Session) ResolvePermission(reply Reply) error {
	h, ok := s.host.(*RemoteHost)
	if !ok {
		return ErrNoPrompt
	}
	return h.Resolve(reply)
}

// SessionState returns the current state.
func (s *Session) SessionState() game.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.State
}

// Authorize runs the permission gate against the session's host. When
// granted the game loop starts; otherwise the session ends.
func (s *Session) Authorize(ctx context.Context, gate *permission.Gate) bool {
	granted := gate.Request(ctx, s.host)

	msg, _ := ws.NewMessage(ws.TypePermission, permissionMessage{Granted: granted})
	s.Send(msg)

	if !granted {
		slog.Info("orientation permission not granted", "session", s.ID)
		s.Stop()
		return false
	}
	return s.Start()
}

// Start transitions to running and starts the tick loop. It returns false if
// the session is not awaiting permission.
func (s *Session) Start() bool {
	s.mu.Lock()
	if s.State != game.StateAwaitingPermission {
		s.mu.Unlock()
		return false
	}
	s.State = game.StateRunning
	s.mu.Unlock()

	go s.gameLoop()
	slog.Info("session started", "session", s.ID, "tick_interval", s.tickInterval)
	return true
}

// Stop ends the session. Safe to call more than once.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State == game.StateEnded {
		return
	}
	s.State = game.StateEnded
	s.cancel()
	close(s.stopCh)

	slog.Info("session ended", "session", s.ID, "ticks", s.tick)
}

// Send delivers msg to the owning client unless the session has ended.
// Holding the read lock keeps Stop from completing while a send is in flight.
func (s *Session) Send(msg ws.Message) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.State == game.StateEnded {
		return
	}
	s.client.SendMessage(msg)
}

// SetReading records the latest tilt reading. It is used for every tick
// until replaced.
func (s *Session) SetReading(r physics.Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reading = r
}

// Reset puts the ball back at the centre at rest and forgets the last reading.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ball = physics.NewBall()
	s.reading = physics.Reading{}
}

// Ball returns a copy of the ball state.
func (s *Session) Ball() physics.Ball {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ball
}

// Info describes the session to its client.
func (s *Session) Info() InfoMessage {
	return InfoMessage{
		SessionID:        s.ID,
		PlayerID:         s.Player.ID,
		BallSize:         s.Player.BallSize,
		Ball:             s.Player.BallSize.Config(),
		Mode:             s.Player.Mode,
		TimeLimitSeconds: s.Player.TimeLimit().Seconds(),
		TickRate:         s.tickRate,
	}
}

// InfoMessage is the session_info payload.
type InfoMessage struct {
	SessionID        string              `json:"session_id" msgpack:"session_id"`
	PlayerID         string              `json:"player_id" msgpack:"player_id"`
	BallSize         game.BallSize       `json:"ball_size" msgpack:"ball_size"`
	Ball             game.BallSizeConfig `json:"ball" msgpack:"ball"`
	Mode             game.Mode           `json:"mode" msgpack:"mode"`
	TimeLimitSeconds float64             `json:"time_limit_seconds" msgpack:"time_limit_seconds"`
	TickRate         int                 `json:"tick_rate" msgpack:"tick_rate"`
}

type permissionMessage struct {
	Granted bool `json:"granted" msgpack:"granted"`
}

// BallStateMessage is the per-tick ball_state payload.
type BallStateMessage struct {
	Tick uint64  `json:"tick" msgpack:"tick"`
	X    float64 `json:"x" msgpack:"x"`
	Y    float64 `json:"y" msgpack:"y"`
	VX   float64 `json:"vx" msgpack:"vx"`
	VY   float64 `json:"vy" msgpack:"vy"`
}

// advance runs one integration step and returns the resulting snapshot.
func (s *Session) advance() BallStateMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ball = s.ball.Step(s.reading, s.params)
	s.tick++

	return BallStateMessage{
		Tick: s.tick,
		X:    s.ball.Position.X,
		Y:    s.ball.Position.Y,
		VX:   s.ball.Velocity.X,
		VY:   s.ball.Velocity.Y,
	}
}

// gameLoop advances the ball once per tick and pushes the state to the client.
func (s *Session) gameLoop() {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			state := s.advance()
			msg, _ := ws.NewMessage(ws.TypeBallState, state)
			s.Send(msg)
		}
	}
}
