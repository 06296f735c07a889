package bridge

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/go-drift/ytplayer/pkg/errors"
	"github.com/go-drift/ytplayer/pkg/event"
	"github.com/go-drift/ytplayer/pkg/surface"
)

// CommandFrame is the wire form of an outbound command.
type CommandFrame struct {
	Command surface.Command `json:"command"`
	Args    []any           `json:"args"`
}

// Bridge decodes inbound frames into raw signals and encodes outbound
// commands. HandleFrame may be called from any goroutine.
type Bridge struct {
	codec  MessageCodec
	sink   surface.Sink
	closed atomic.Bool
}

// New creates a bridge that delivers decoded signals to sink.
func New(sink surface.Sink) *Bridge {
	return NewWithCodec(sink, DefaultCodec)
}

// NewWithCodec creates a bridge with a specific codec.
func NewWithCodec(sink surface.Sink, codec MessageCodec) *Bridge {
	return &Bridge{codec: codec, sink: sink}
}

// HandleFrame decodes one inbound frame and forwards it to the sink.
//
// A frame that cannot be decoded, or that names an unknown event, is reported
// with [errors.KindParsing], dropped, and the error is returned.
func (b *Bridge) HandleFrame(data []byte) error {
	if b.closed.Load() {
		return ErrClosed
	}
	category, payload, err := b.decodeFrame(data)
	if err != nil {
		errors.Report(&errors.BridgeError{
			Op:    "bridge.HandleFrame",
			Kind:  errors.KindParsing,
			Event: string(category),
			Err:   err,
		})
		return err
	}
	if b.sink != nil {
		b.sink(category, payload)
	}
	return nil
}

// EncodeCommand renders an outbound command frame.
func (b *Bridge) EncodeCommand(cmd surface.Command, args ...any) ([]byte, error) {
	if args == nil {
		args = []any{}
	}
	data, err := b.codec.Encode(CommandFrame{Command: cmd, Args: args})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", cmd, err)
	}
	return data, nil
}

// Close stops the bridge. Later frames are rejected with ErrClosed.
func (b *Bridge) Close() {
	b.closed.Store(true)
}

func (b *Bridge) decodeFrame(data []byte) (event.Category, string, error) {
	if len(data) == 0 {
		return "", "", ErrEmptyFrame
	}
	decoded, err := b.codec.Decode(data)
	if err != nil {
		return "", "", fmt.Errorf("decode frame: %w", err)
	}
	m, ok := decoded.(map[string]any)
	if !ok {
		return "", "", &errors.ParseError{DataType: "frame", Got: decoded}
	}

	name, ok := m["event"].(string)
	if !ok {
		return "", "", &errors.ParseError{DataType: "event name", Got: m["event"]}
	}
	category := event.Category(name)
	if !category.Known() {
		return category, "", fmt.Errorf("%w: %q", ErrUnknownEvent, name)
	}

	payload, err := payloadString(m["data"])
	if err != nil {
		return category, "", &errors.ParseError{Event: name, DataType: "payload", Got: m["data"]}
	}
	return category, payload, nil
}

// payloadString renders a frame payload as the raw token the event codec
// expects. Runtimes send numbers for telemetry and strings for everything else.
func payloadString(data any) (string, error) {
	switch v := data.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("unsupported payload type %T", data)
	}
}
