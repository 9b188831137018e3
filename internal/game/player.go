package game

import (
	"time"

	"github.com/google/uuid"
)

// Player is the owner of a tilt session.
type Player struct {
	ID       string    `json:"id"`
	BallSize BallSize  `json:"ball_size"`
	Mode     Mode      `json:"mode"`
	JoinedAt time.Time `json:"-"`
}

func NewPlayer(size BallSize, mode Mode) *Player {
	return &Player{
		ID:       uuid.New().String(),
		BallSize: size,
		Mode:     mode,
		JoinedAt: time.Now(),
	}
}

// TimeLimit returns the player's time budget, or zero in free play.
func (p *Player) TimeLimit() time.Duration {
	if p.Mode != ModeTimeAttack {
		return 0
	}
	return DefaultTimeLimit.For(p.BallSize)
}
