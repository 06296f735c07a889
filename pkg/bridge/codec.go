// Package bridge carries player signals and commands across a text channel,
// such as the message port between a web view's script context and Go.
//
// Inbound frames are JSON objects of the form
//
//	{"event": "stateChange", "data": "PLAYING"}
//
// and are turned into raw signals for a [surface.Sink]. Outbound commands are
// encoded as
//
//	{"command": "seekTo", "args": [42.5]}
package bridge

import (
	"encoding/json"
	"errors"
)

// MessageCodec encodes and decodes frames.
type MessageCodec interface {
	// Encode converts a Go value to bytes for the script side.
	Encode(value any) ([]byte, error)

	// Decode converts bytes received from the script side to a Go value.
	Decode(data []byte) (any, error)
}

// JsonCodec implements MessageCodec using JSON encoding.
type JsonCodec struct{}

// Encode serializes the value to JSON bytes.
func (c JsonCodec) Encode(value any) ([]byte, error) {
	return json.Marshal(value)
}

// Decode deserializes JSON bytes to a Go value.
func (c JsonCodec) Decode(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// DefaultCodec is the codec used by new bridges.
var DefaultCodec MessageCodec = JsonCodec{}

// Standard errors for frame handling.
var (
	// ErrEmptyFrame indicates a frame with no content.
	ErrEmptyFrame = errors.New("empty frame")

	// ErrUnknownEvent indicates a frame naming an event that is not an
	// inbound signal.
	ErrUnknownEvent = errors.New("unknown event")

	// ErrClosed indicates the bridge no longer accepts frames.
	ErrClosed = errors.New("bridge closed")
)
