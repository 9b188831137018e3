package physics

import "math"

// Defaults used by the web client.
const (
	DefaultFriction    = 0.98
	DefaultSensitivity = 0.5
)

// Play-field bounds (percent of the field on each axis)
const (
	FieldMin = 0.0
	FieldMax = 100.0
)

// Position is a point on the play-field, each axis in [FieldMin, FieldMax].
type Position struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// Velocity is the per-tick displacement of the ball. It is not bounded.
type Velocity struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// Center is the middle of the play-field.
var Center = Position{X: FieldMax / 2, Y: FieldMax / 2}

// CalculateVelocity folds a tilt reading into the previous velocity.
// gamma (left/right) drives X and beta (front/back) drives Y.
// A nil angle means no reading yet and counts as 0 degrees.
// Inputs are not validated; NaN and Inf propagate.
func CalculateVelocity(beta, gamma *float64, current Velocity, sensitivity, friction float64) Velocity {
	betaRad := toRadians(beta)
	gammaRad := toRadians(gamma)

	return Velocity{
		X: current.X*friction + math.Sin(gammaRad)*sensitivity,
		Y: current.Y*friction + math.Sin(betaRad)*sensitivity,
	}
}

// UpdatePosition advances a position by the damped velocity and clamps each
// axis to the play-field. The velocity itself is not reflected at the wall.
func UpdatePosition(current Position, velocity Velocity, friction float64) Position {
	dx := velocity.X * friction
	dy := velocity.Y * friction

	return Position{
		X: clamp(current.X + dx),
		Y: clamp(current.Y + dy),
	}
}

func toRadians(deg *float64) float64 {
	if deg == nil {
		return 0
	}
	return *deg * (math.Pi / 180)
}

// clamp saturates v to [FieldMin, FieldMax]. NaN passes through unchanged.
func clamp(v float64) float64 {
	if v < FieldMin {
		return FieldMin
	} else if v > FieldMax {
		return FieldMax
	}
	return v
}
