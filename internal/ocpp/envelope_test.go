package ocpp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCall(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`[2,"19223201","StartTransaction",{"idTag":"TAG1","meterStart":100}]`))
	require.NoError(t, err)

	assert.Equal(t, MessageTypeCall, env.Type)
	assert.Equal(t, "19223201", env.MessageId)
	assert.Equal(t, "StartTransaction", env.Action)
	assert.JSONEq(t, `{"idTag":"TAG1","meterStart":100}`, string(env.Payload))
}

func TestDecodeCallResult(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`[3,"42",{"currentTime":"2026-01-01T00:00:00Z"}]`))
	require.NoError(t, err)

	assert.Equal(t, MessageTypeCallResult, env.Type)
	assert.Equal(t, "42", env.MessageId)
	assert.JSONEq(t, `{"currentTime":"2026-01-01T00:00:00Z"}`, string(env.Payload))
}

func TestDecodeCallError(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`[4,"42","ProtocolError","Missing required payload field: idTag",{}]`))
	require.NoError(t, err)

	assert.Equal(t, MessageTypeCallError, env.Type)
	assert.Equal(t, "ProtocolError", env.ErrorCode)
	assert.Equal(t, "Missing required payload field: idTag", env.ErrorDescription)
	assert.JSONEq(t, `{}`, string(env.ErrorDetails))
}

func TestDecodeClassifiesFailures(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want error
	}{
		{name: "not json at all", raw: `this is not json`, want: ErrMalformedJSON},
		{name: "truncated json", raw: `[2,"1","Boot`, want: ErrMalformedJSON},
		{name: "json object, not array", raw: `{"action":"Heartbeat"}`, want: ErrMalformedEnvelope},
		{name: "json string, not array", raw: `"Heartbeat"`, want: ErrMalformedEnvelope},
		{name: "too few elements", raw: `[2,"1"]`, want: ErrMalformedEnvelope},
		{name: "call without payload", raw: `[2,"1","Heartbeat"]`, want: ErrMalformedEnvelope},
		{name: "call with extra element", raw: `[2,"1","Heartbeat",{},{}]`, want: ErrMalformedEnvelope},
		{name: "non-string message id", raw: `[2,1,"Heartbeat",{}]`, want: ErrMalformedEnvelope},
		{name: "non-numeric type", raw: `["2","1","Heartbeat",{}]`, want: ErrMalformedEnvelope},
		{name: "unknown type id", raw: `[5,"1","Heartbeat",{}]`, want: ErrMalformedEnvelope},
		{name: "call result with four elements", raw: `[3,"1",{},{}]`, want: ErrMalformedEnvelope},
		{name: "call error with four elements", raw: `[4,"1","InternalError","oops"]`, want: ErrMalformedEnvelope},
		{name: "missing action", raw: `[2,"1",null,{}]`, want: ErrMalformedEnvelope},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeEnvelope([]byte(tc.raw))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestEncodeCallResult(t *testing.T) {
	out, err := EncodeCallResult("7", HeartbeatResponse{CurrentTime: "2026-01-01T00:00:00Z"})
	require.NoError(t, err)

	var parts []json.RawMessage
	require.NoError(t, json.Unmarshal(out, &parts))
	require.Len(t, parts, 3)
	assert.Equal(t, "3", string(parts[0]))
	assert.Equal(t, `"7"`, string(parts[1]))
	assert.JSONEq(t, `{"currentTime":"2026-01-01T00:00:00Z"}`, string(parts[2]))
}

func TestEncodeCallErrorDefaultsDetails(t *testing.T) {
	out, err := EncodeCallError("7", ErrorCodeNotImplemented, "Unknown action: Reset", nil)
	require.NoError(t, err)

	var parts []json.RawMessage
	require.NoError(t, json.Unmarshal(out, &parts))
	require.Len(t, parts, 5)
	assert.Equal(t, "4", string(parts[0]))
	assert.Equal(t, `"7"`, string(parts[1]))
	assert.Equal(t, `"NotImplemented"`, string(parts[2]))
	assert.Equal(t, `"Unknown action: Reset"`, string(parts[3]))
	assert.JSONEq(t, `{}`, string(parts[4]))
}
