package ws

import "encoding/json"

// Message represents a WebSocket message with type-based routing.
type Message struct {
	Type string          `json:"type" msgpack:"type"`
	Data json.RawMessage `json:"data,omitempty" msgpack:"-"`

	// Payload is the typed body used when the message is encoded as msgpack.
	Payload any `json:"-" msgpack:"data,omitempty"`
}

// Message types - Session
const (
	TypeStartSession = "start_session"
	TypeEndSession   = "end_session"
	TypeSessionInfo  = "session_info"
	TypeReset        = "reset"
)

// Message types - Permission
const (
	TypePermissionRequest = "permission_request"
	TypePermissionResult  = "permission_result"
	TypePermission        = "permission"
)

// Message types - Motion
const (
	TypeTilt      = "tilt"
	TypeBallState = "ball_state"
)

// Message types - System
const (
	TypeError = "error"
)

// ErrorMessage is sent when an error occurs.
type ErrorMessage struct {
	Message string `json:"message" msgpack:"message"`
}

// NewErrorMessage creates a Message with an error payload.
func NewErrorMessage(msg string) Message {
	payload := ErrorMessage{Message: msg}
	data, _ := json.Marshal(payload)
	return Message{Type: TypeError, Data: data, Payload: payload}
}

// NewMessage creates a Message with a typed payload.
func NewMessage(msgType string, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Data: data, Payload: payload}, nil
}
