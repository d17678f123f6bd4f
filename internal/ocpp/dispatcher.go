package ocpp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

const defaultHeartbeatInterval = 300 * time.Second

// CallFault is a protocol-level failure to be sent back as a CallError.
type CallFault struct {
	Code        string
	Description string
}

// Dispatcher routes decoded Calls to action handlers, validates required
// payload fields, and advances session state through the lifecycle manager.
type Dispatcher struct {
	lifecycle *Lifecycle
	interval  time.Duration
}

func NewDispatcher(lifecycle *Lifecycle, heartbeatInterval time.Duration) *Dispatcher {
	if heartbeatInterval <= 0 {
		heartbeatInterval = defaultHeartbeatInterval
	}
	return &Dispatcher{lifecycle: lifecycle, interval: heartbeatInterval}
}

// Dispatch handles one Call. A nil CallFault means the returned payload goes
// out as a CallResult. Handler errors never escape: this is the single
// boundary that turns them into InternalError faults.
func (d *Dispatcher) Dispatch(ctx context.Context, action string, payload json.RawMessage) (any, *CallFault) {
	switch action {
	case BootNotificationFeature:
		return BootNotificationResponse{
			CurrentTime: isoNow(),
			Interval:    int(d.interval.Seconds()),
			Status:      StatusAccepted,
		}, nil
	case HeartbeatFeature:
		return HeartbeatResponse{CurrentTime: isoNow()}, nil
	case StartTransactionFeature:
		return d.handleStartTransaction(ctx, payload)
	case StopTransactionFeature:
		return d.handleStopTransaction(ctx, payload)
	default:
		return nil, &CallFault{
			Code:        ErrorCodeNotImplemented,
			Description: fmt.Sprintf("Unknown action: %s", action),
		}
	}
}

func (d *Dispatcher) handleStartTransaction(ctx context.Context, payload json.RawMessage) (any, *CallFault) {
	var req StartTransactionRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, &CallFault{Code: ErrorCodeProtocolError, Description: "Invalid StartTransaction payload"}
	}
	if req.IdTag == "" {
		return nil, &CallFault{Code: ErrorCodeProtocolError, Description: "Missing required payload field: idTag"}
	}

	meterStart := 0.0
	if req.MeterStart != nil {
		meterStart = *req.MeterStart
	}

	id, err := d.lifecycle.OpenSession(ctx, req.IdTag, timestampOrNow(req.Timestamp), meterStart)
	if err != nil {
		return nil, internalFault(err)
	}
	return StartTransactionResponse{
		IdTagInfo:     IdTagInfo{Status: StatusAccepted},
		TransactionId: id,
	}, nil
}

func (d *Dispatcher) handleStopTransaction(ctx context.Context, payload json.RawMessage) (any, *CallFault) {
	var req StopTransactionRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, &CallFault{Code: ErrorCodeProtocolError, Description: "Invalid StopTransaction payload"}
	}
	if req.TransactionId == nil || req.MeterStop == nil {
		return nil, &CallFault{Code: ErrorCodeProtocolError, Description: "Missing required payload fields"}
	}

	if err := d.lifecycle.CloseSession(ctx, *req.TransactionId, timestampOrNow(req.Timestamp), *req.MeterStop); err != nil {
		return nil, internalFault(err)
	}
	return StopTransactionResponse{
		IdTagInfo: IdTagInfo{Status: StatusAccepted},
		MeterStop: *req.MeterStop,
	}, nil
}

func internalFault(err error) *CallFault {
	return &CallFault{Code: ErrorCodeInternalError, Description: fmt.Sprintf("Server error: %v", err)}
}

func isoNow() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// timestampOrNow resolves a payload timestamp with a fixed precedence: a
// parseable provided value wins, anything else falls back to the server
// clock. Charge points in the field send both RFC3339 and zone-less forms;
// an unparseable value is logged, never a hard error.
func timestampOrNow(s string) time.Time {
	if s == "" {
		return time.Now().UTC()
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse("2006-01-02T15:04:05.999999999", s); err == nil {
		return t.UTC()
	}
	log.Printf("unparseable timestamp %q, using server time", s)
	return time.Now().UTC()
}
