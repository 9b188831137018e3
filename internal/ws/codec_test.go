package ws

import (
	"encoding/json"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type samplePayload struct {
	Tick int     `json:"tick" msgpack:"tick"`
	X    float64 `json:"x" msgpack:"x"`
}

func TestParseCodec(t *testing.T) {
	tests := []struct {
		in       string
		expected Codec
		wantErr  bool
	}{
		{"", CodecJSON, false},
		{"json", CodecJSON, false},
		{"msgpack", CodecMsgpack, false},
		{"protobuf", CodecJSON, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseCodec(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func TestCodecJSON_Encode(t *testing.T) {
	msg, err := NewMessage(TypeBallState, samplePayload{Tick: 3, X: 42.5})
	require.NoError(t, err)

	data, err := CodecJSON.Encode(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"ball_state","data":{"tick":3,"x":42.5}}`, string(data))
	assert.Equal(t, websocket.TextMessage, CodecJSON.FrameType())
}

func TestCodecMsgpack_Encode(t *testing.T) {
	msg, err := NewMessage(TypeBallState, samplePayload{Tick: 7, X: 12.25})
	require.NoError(t, err)

	data, err := CodecMsgpack.Encode(msg)
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, CodecMsgpack.FrameType())

	var decoded struct {
		Type string        `msgpack:"type"`
		Data samplePayload `msgpack:"data"`
	}
	require.NoError(t, msgpack.Unmarshal(data, &decoded))
	assert.Equal(t, TypeBallState, decoded.Type)
	assert.Equal(t, 7, decoded.Data.Tick)
	assert.Equal(t, 12.25, decoded.Data.X)
}

func TestNewErrorMessage(t *testing.T) {
	msg := NewErrorMessage("boom")
	assert.Equal(t, TypeError, msg.Type)

	var body ErrorMessage
	require.NoError(t, json.Unmarshal(msg.Data, &body))
	assert.Equal(t, "boom", body.Message)
}

func TestSendMessage_UsesClientCodec(t *testing.T) {
	c := &Client{ID: "c1", Codec: CodecMsgpack, Send: make(chan []byte, 1)}
	c.SendMessage(NewErrorMessage("nope"))

	data := <-c.Send
	var decoded struct {
		Type string       `msgpack:"type"`
		Data ErrorMessage `msgpack:"data"`
	}
	require.NoError(t, msgpack.Unmarshal(data, &decoded))
	assert.Equal(t, TypeError, decoded.Type)
	assert.Equal(t, "nope", decoded.Data.Message)
}
