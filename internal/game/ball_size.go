package game

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

type BallSize int

const (
	SizeSmall BallSize = iota
	SizeMedium
	SizeLarge
	SizeXLarge
)

// AllSizes lists every preset in ascending order.
var AllSizes = []BallSize{SizeSmall, SizeMedium, SizeLarge, SizeXLarge}

func (s BallSize) String() string {
	switch s {
	case SizeSmall:
		return "small"
	case SizeMedium:
		return "medium"
	case SizeLarge:
		return "large"
	case SizeXLarge:
		return "xlarge"
	default:
		return "unknown"
	}
}

// ParseBallSize maps a size label to a BallSize.
func ParseBallSize(label string) (BallSize, error) {
	switch label {
	case "small":
		return SizeSmall, nil
	case "medium":
		return SizeMedium, nil
	case "large":
		return SizeLarge, nil
	case "xlarge":
		return SizeXLarge, nil
	}
	return 0, fmt.Errorf("unknown ball size %q", label)
}

// MarshalJSON serializes BallSize as a string.
func (s BallSize) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON deserializes BallSize from a string. An empty string selects
// the medium preset.
func (s *BallSize) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "" {
		*s = SizeMedium
		return nil
	}
	size, err := ParseBallSize(str)
	if err != nil {
		return err
	}
	*s = size
	return nil
}

// EncodeMsgpack serializes BallSize as its label.
func (s BallSize) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(s.String())
}

// DecodeMsgpack deserializes BallSize from its label.
func (s *BallSize) DecodeMsgpack(dec *msgpack.Decoder) error {
	str, err := dec.DecodeString()
	if err != nil {
		return err
	}
	size, err := ParseBallSize(str)
	if err != nil {
		return err
	}
	*s = size
	return nil
}

// BallSizeConfig is the drawing preset for a ball size.
type BallSizeConfig struct {
	Radius    float64 `json:"radius" msgpack:"radius"`
	LineWidth float64 `json:"line_width" msgpack:"line_width"`
}

var ballSizes = map[BallSize]BallSizeConfig{
	SizeSmall:  {Radius: 10, LineWidth: 20},
	SizeMedium: {Radius: 20, LineWidth: 40},
	SizeLarge:  {Radius: 35, LineWidth: 70},
	SizeXLarge: {Radius: 70, LineWidth: 140},
}

// Config returns the preset for s. Unknown sizes fall back to medium.
func (s BallSize) Config() BallSizeConfig {
	if c, ok := ballSizes[s]; ok {
		return c
	}
	return ballSizes[SizeMedium]
}

// TimeLimit is the time budget per ball size in time-attack mode.
type TimeLimit struct {
	Small  time.Duration
	Medium time.Duration
	Large  time.Duration
	XLarge time.Duration
}

// DefaultTimeLimit is the time budget per size in time-attack mode.
var DefaultTimeLimit = TimeLimit{
	Small:  60 * time.Second,
	Medium: 45 * time.Second,
	Large:  30 * time.Second,
	XLarge: 20 * time.Second,
}

// For returns the budget for s.
func (t TimeLimit) For(s BallSize) time.Duration {
	switch s {
	case SizeSmall:
		return t.Small
	case SizeLarge:
		return t.Large
	case SizeXLarge:
		return t.XLarge
	default:
		return t.Medium
	}
}
