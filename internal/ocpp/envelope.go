package ocpp

import (
	"encoding/json"
	"errors"
	"fmt"
)

type MessageType int

const (
	MessageTypeCall       MessageType = 2
	MessageTypeCallResult MessageType = 3
	MessageTypeCallError  MessageType = 4
)

// Decode failures fall into exactly two kinds: text that is not JSON at all,
// and valid JSON with the wrong shape. Callers match with errors.Is.
var (
	ErrMalformedJSON     = errors.New("malformed json")
	ErrMalformedEnvelope = errors.New("malformed envelope")
)

// Envelope is the decoded wire frame. Which fields are set depends on Type:
// a Call carries Action and Payload, a CallResult only Payload, a CallError
// the error triple. MessageId is opaque and echoed back verbatim.
type Envelope struct {
	Type      MessageType
	MessageId string

	Action  string
	Payload json.RawMessage

	ErrorCode        string
	ErrorDescription string
	ErrorDetails     json.RawMessage
}

// DecodeEnvelope parses a raw frame into an Envelope. It validates only the
// array shape; per-action payload fields are the dispatcher's business.
func DecodeEnvelope(data []byte) (*Envelope, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		if !json.Valid(data) {
			return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
		}
		return nil, fmt.Errorf("%w: not an array", ErrMalformedEnvelope)
	}
	if len(parts) < 3 {
		return nil, fmt.Errorf("%w: %d elements, need at least 3", ErrMalformedEnvelope, len(parts))
	}

	var typeId int
	if err := json.Unmarshal(parts[0], &typeId); err != nil {
		return nil, fmt.Errorf("%w: message type must be a number", ErrMalformedEnvelope)
	}
	env := &Envelope{Type: MessageType(typeId)}
	if err := json.Unmarshal(parts[1], &env.MessageId); err != nil {
		return nil, fmt.Errorf("%w: message id must be a string", ErrMalformedEnvelope)
	}

	switch env.Type {
	case MessageTypeCall:
		if len(parts) != 4 {
			return nil, fmt.Errorf("%w: call has %d elements, want 4", ErrMalformedEnvelope, len(parts))
		}
		if err := json.Unmarshal(parts[2], &env.Action); err != nil || env.Action == "" {
			return nil, fmt.Errorf("%w: missing action", ErrMalformedEnvelope)
		}
		env.Payload = parts[3]
	case MessageTypeCallResult:
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: call result has %d elements, want 3", ErrMalformedEnvelope, len(parts))
		}
		env.Payload = parts[2]
	case MessageTypeCallError:
		if len(parts) != 5 {
			return nil, fmt.Errorf("%w: call error has %d elements, want 5", ErrMalformedEnvelope, len(parts))
		}
		if err := json.Unmarshal(parts[2], &env.ErrorCode); err != nil {
			return nil, fmt.Errorf("%w: error code must be a string", ErrMalformedEnvelope)
		}
		if err := json.Unmarshal(parts[3], &env.ErrorDescription); err != nil {
			return nil, fmt.Errorf("%w: error description must be a string", ErrMalformedEnvelope)
		}
		env.ErrorDetails = parts[4]
	default:
		return nil, fmt.Errorf("%w: unknown message type %d", ErrMalformedEnvelope, typeId)
	}
	return env, nil
}

// EncodeCallResult builds the 3-element CallResult array.
func EncodeCallResult(messageId string, payload any) ([]byte, error) {
	return json.Marshal([]any{int(MessageTypeCallResult), messageId, payload})
}

// EncodeCallError builds the 5-element CallError array. Nil details become an
// empty object.
func EncodeCallError(messageId, code, description string, details any) ([]byte, error) {
	if details == nil {
		details = map[string]any{}
	}
	return json.Marshal([]any{int(MessageTypeCallError), messageId, code, description, details})
}
