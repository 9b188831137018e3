package physics

import "math"

// Params holds the tuning knobs of the integrator.
type Params struct {
	Sensitivity float64
	Friction    float64
}

// DefaultParams returns the client defaults.
func DefaultParams() Params {
	return Params{
		Sensitivity: DefaultSensitivity,
		Friction:    DefaultFriction,
	}
}

// Velocity applies CalculateVelocity with p's sensitivity and friction.
func (p Params) Velocity(r Reading, current Velocity) Velocity {
	return CalculateVelocity(r.Beta, r.Gamma, current, p.Sensitivity, p.Friction)
}

// Advance applies UpdatePosition with p's friction.
func (p Params) Advance(current Position, v Velocity) Position {
	return UpdatePosition(current, v, p.Friction)
}

// Reading is one device-orientation sample in degrees. Nil means the sensor
// has not reported that axis yet.
type Reading struct {
	Beta  *float64 `json:"beta" msgpack:"beta"`
	Gamma *float64 `json:"gamma" msgpack:"gamma"`
}

// NewReading builds a Reading with both axes present.
func NewReading(beta, gamma float64) Reading {
	return Reading{Beta: &beta, Gamma: &gamma}
}

// Finite reports whether every present angle is a finite number.
func (r Reading) Finite() bool {
	return finite(r.Beta) && finite(r.Gamma)
}

func finite(v *float64) bool {
	return v == nil || (!math.IsNaN(*v) && !math.IsInf(*v, 0))
}

// Ball is the running state a tick driver carries between ticks.
type Ball struct {
	Position Position `json:"position" msgpack:"position"`
	Velocity Velocity `json:"velocity" msgpack:"velocity"`
}

// NewBall returns a ball resting at the centre of the field.
func NewBall() Ball {
	return Ball{Position: Center}
}

// Step computes the next velocity from r and then moves the ball with it.
func (b Ball) Step(r Reading, p Params) Ball {
	v := p.Velocity(r, b.Velocity)
	return Ball{
		Position: p.Advance(b.Position, v),
		Velocity: v,
	}
}

// Settled reports whether the ball's speed on both axes is below eps.
func (b Ball) Settled(eps float64) bool {
	return math.Abs(b.Velocity.X) < eps && math.Abs(b.Velocity.Y) < eps
}
