package ws

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes outgoing messages for a client. Incoming messages are always JSON.
type Codec int

const (
	CodecJSON Codec = iota
	CodecMsgpack
)

func (c Codec) String() string {
	switch c {
	case CodecMsgpack:
		return "msgpack"
	default:
		return "json"
	}
}

// ParseCodec maps the ?codec= query value to a Codec. Empty selects JSON.
func ParseCodec(s string) (Codec, error) {
	switch s {
	case "", "json":
		return CodecJSON, nil
	case "msgpack":
		return CodecMsgpack, nil
	}
	return CodecJSON, fmt.Errorf("unsupported codec %q", s)
}

// Encode serializes msg for the wire.
func (c Codec) Encode(msg Message) ([]byte, error) {
	switch c {
	case CodecMsgpack:
		return msgpack.Marshal(&msg)
	default:
		return json.Marshal(msg)
	}
}

// FrameType is the WebSocket frame type carrying this codec's output.
func (c Codec) FrameType() int {
	if c == CodecMsgpack {
		return websocket.BinaryMessage
	}
	return websocket.TextMessage
}
