// Package channel implements the method channel between the UI layer and the
// wallpaper bridge: the wire envelopes, their JSON codec and the dispatcher
// that turns a call into a reply.
package channel

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MethodCall is a single invocation received from the UI layer.
type MethodCall struct {
	// ID correlates the reply with the call. Transports assign one when it is empty.
	ID string `json:"id,omitempty"`
	// Channel is optional; when set it must name the wallpaper channel.
	Channel   string          `json:"channel,omitempty"`
	Method    string          `json:"method"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// Status tells the caller which reply variant it received.
type Status string

// Reply statuses.
const (
	StatusSuccess        Status = "success"
	StatusError          Status = "error"
	StatusNotImplemented Status = "notImplemented"
)

// Reply is the answer to a MethodCall.
type Reply struct {
	ID      string `json:"id,omitempty"`
	Status  Status `json:"status"`
	Result  any    `json:"result,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Success builds a success reply.
func Success(id string, result any) Reply {
	return Reply{ID: id, Status: StatusSuccess, Result: result}
}

// Failure builds an error reply from a channel error.
func Failure(id string, err *ChannelError) Reply {
	return Reply{ID: id, Status: StatusError, Code: err.Code, Message: err.Message, Details: err.Details}
}

// NotImplemented builds the reply for a method the bridge does not handle.
func NotImplemented(id string) Reply {
	return Reply{ID: id, Status: StatusNotImplemented}
}

// ChannelError is an error reported back over the channel.
type ChannelError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *ChannelError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

// NewChannelError creates a new ChannelError with the given code and message.
func NewChannelError(code, message string) *ChannelError {
	return &ChannelError{Code: code, Message: message}
}

// ErrMalformedCall is returned when a message is not a method call envelope.
var ErrMalformedCall = errors.New("malformed method call")

// Codec encodes and decodes channel envelopes.
type Codec interface {
	DecodeCall(data []byte) (MethodCall, error)
	EncodeReply(reply Reply) ([]byte, error)
}

// JSONCodec implements Codec using JSON.
type JSONCodec struct{}

// DecodeCall parses a method call envelope.
func (JSONCodec) DecodeCall(data []byte) (MethodCall, error) {
	var call MethodCall
	if err := json.Unmarshal(data, &call); err != nil {
		return MethodCall{}, fmt.Errorf("%w: %w", ErrMalformedCall, err)
	}
	if call.Method == "" {
		return call, fmt.Errorf("%w: method is required", ErrMalformedCall)
	}
	return call, nil
}

// EncodeReply serializes a reply.
func (JSONCodec) EncodeReply(reply Reply) ([]byte, error) {
	return json.Marshal(reply)
}

// DefaultCodec is the codec used by the transports.
var DefaultCodec Codec = JSONCodec{}
