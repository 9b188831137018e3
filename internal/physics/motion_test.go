package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestCalculateVelocity(t *testing.T) {
	tests := []struct {
		name     string
		beta     *float64
		gamma    *float64
		current  Velocity
		expected Velocity
	}{
		{"no reading", nil, nil, Velocity{X: 2, Y: -4}, Velocity{X: 1.96, Y: -3.92}},
		{"zero tilt", ptr(0), ptr(0), Velocity{X: 2, Y: -4}, Velocity{X: 1.96, Y: -3.92}},
		{"gamma drives x", nil, ptr(90), Velocity{}, Velocity{X: 0.5, Y: 0}},
		{"beta drives y", ptr(90), nil, Velocity{}, Velocity{X: 0, Y: 0.5}},
		{"negative tilt", ptr(-90), ptr(-90), Velocity{}, Velocity{X: -0.5, Y: -0.5}},
		{"30 degrees", ptr(30), ptr(30), Velocity{X: 1, Y: 1}, Velocity{X: 0.98 + 0.25, Y: 0.98 + 0.25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateVelocity(tt.beta, tt.gamma, tt.current, DefaultSensitivity, DefaultFriction)
			assert.InDelta(t, tt.expected.X, result.X, 1e-9)
			assert.InDelta(t, tt.expected.Y, result.Y, 1e-9)
		})
	}
}

func TestCalculateVelocity_MissingEqualsZero(t *testing.T) {
	v := Velocity{X: 7.5, Y: -3.25}
	for _, f := range []float64{0.5, 0.9, 0.98, 1} {
		missing := CalculateVelocity(nil, nil, v, 1.3, f)
		zero := CalculateVelocity(ptr(0), ptr(0), v, 1.3, f)
		assert.Equal(t, Velocity{X: v.X * f, Y: v.Y * f}, missing)
		assert.Equal(t, missing, zero)
	}
}

func TestCalculateVelocity_NaNPropagates(t *testing.T) {
	result := CalculateVelocity(ptr(math.NaN()), nil, Velocity{}, DefaultSensitivity, DefaultFriction)
	assert.True(t, math.IsNaN(result.Y))
	assert.Equal(t, 0.0, result.X)
}

func TestUpdatePosition(t *testing.T) {
	tests := []struct {
		name     string
		pos      Position
		vel      Velocity
		expected Position
	}{
		{"zero velocity", Position{X: 12.5, Y: 88}, Velocity{}, Position{X: 12.5, Y: 88}},
		{"moves by damped velocity", Position{X: 50, Y: 50}, Velocity{X: 10, Y: -10}, Position{X: 59.8, Y: 40.2}},
		{"right wall", Position{X: 100, Y: 50}, Velocity{X: 10, Y: 0}, Position{X: 100, Y: 50}},
		{"left wall", Position{X: 1, Y: 50}, Velocity{X: -10, Y: 0}, Position{X: 0, Y: 50}},
		{"top and bottom", Position{X: 50, Y: 99}, Velocity{X: 0, Y: 1e9}, Position{X: 50, Y: 100}},
		{"corner", Position{X: 0, Y: 0}, Velocity{X: -1e9, Y: -1e9}, Position{X: 0, Y: 0}},
		{"infinite velocity", Position{X: 50, Y: 50}, Velocity{X: math.Inf(1), Y: math.Inf(-1)}, Position{X: 100, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := UpdatePosition(tt.pos, tt.vel, DefaultFriction)
			assert.InDelta(t, tt.expected.X, result.X, 1e-9)
			assert.InDelta(t, tt.expected.Y, result.Y, 1e-9)
		})
	}
}

func TestUpdatePosition_StaysInBounds(t *testing.T) {
	positions := []Position{{0, 0}, {100, 100}, {0, 100}, {37.5, 62.5}, {50, 50}}
	velocities := []Velocity{{-1000, 1000}, {0.1, -0.1}, {99, 99}, {-250, -3}, {1e12, -1e12}}

	for _, p := range positions {
		for _, v := range velocities {
			result := UpdatePosition(p, v, DefaultFriction)
			assert.GreaterOrEqual(t, result.X, FieldMin)
			assert.LessOrEqual(t, result.X, FieldMax)
			assert.GreaterOrEqual(t, result.Y, FieldMin)
			assert.LessOrEqual(t, result.Y, FieldMax)
		}
	}
}

func TestZeroTiltConverges(t *testing.T) {
	ball := Ball{Position: Position{X: 50, Y: 50}, Velocity: Velocity{X: 3, Y: -2}}
	params := DefaultParams()

	var prev Ball
	for i := 0; i < 2000; i++ {
		prev = ball
		ball = ball.Step(Reading{}, params)
		require.LessOrEqual(t, math.Abs(ball.Velocity.X), math.Abs(prev.Velocity.X))
		require.LessOrEqual(t, math.Abs(ball.Velocity.Y), math.Abs(prev.Velocity.Y))
	}

	assert.True(t, ball.Settled(1e-9))
	assert.InDelta(t, prev.Position.X, ball.Position.X, 1e-12)
	assert.InDelta(t, prev.Position.Y, ball.Position.Y, 1e-12)
}
