package game

import "time"

// Session timing
const (
	TickRate     = 60 // ticks per second
	TickInterval = time.Second / TickRate
	MaxTickRate  = 1000
)

// Session limits
const (
	MaxSessions = 1000
)
