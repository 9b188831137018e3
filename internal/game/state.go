package game

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

type SessionState int

const (
	StateAwaitingPermission SessionState = iota
	StateRunning
	StateEnded
)

func (s SessionState) String() string {
	switch s {
	case StateAwaitingPermission:
		return "awaiting_permission"
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

type Mode int

const (
	ModeFree Mode = iota
	ModeTimeAttack
)

func (m Mode) String() string {
	switch m {
	case ModeTimeAttack:
		return "timeAttack"
	default:
		return "free"
	}
}

// MarshalJSON serializes Mode as a string.
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON deserializes Mode from a string. An empty string is free play.
func (m *Mode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return m.parse(s)
}

// EncodeMsgpack serializes Mode as its label.
func (m Mode) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(m.String())
}

// DecodeMsgpack deserializes Mode from its label.
func (m *Mode) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := dec.DecodeString()
	if err != nil {
		return err
	}
	return m.parse(s)
}

func (m *Mode) parse(s string) error {
	switch s {
	case "", "free":
		*m = ModeFree
	case "timeAttack":
		*m = ModeTimeAttack
	default:
		return fmt.Errorf("unknown game mode %q", s)
	}
	return nil
}
