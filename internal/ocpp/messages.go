package ocpp

// OCPP 1.6 error codes this central system emits.
const (
	ErrorCodeProtocolError  = "ProtocolError"
	ErrorCodeNotImplemented = "NotImplemented"
	ErrorCodeInternalError  = "InternalError"
)

// Feature names of the handled core-profile subset.
const (
	BootNotificationFeature = "BootNotification"
	HeartbeatFeature        = "Heartbeat"
	StartTransactionFeature = "StartTransaction"
	StopTransactionFeature  = "StopTransaction"
)

const StatusAccepted = "Accepted"

type IdTagInfo struct {
	Status string `json:"status"`
}

type BootNotificationRequest struct {
	ChargePointVendor string `json:"chargePointVendor,omitempty"`
	ChargePointModel  string `json:"chargePointModel,omitempty"`
}

type BootNotificationResponse struct {
	CurrentTime string `json:"currentTime"`
	Interval    int    `json:"interval"`
	Status      string `json:"status"`
}

type HeartbeatResponse struct {
	CurrentTime string `json:"currentTime"`
}

// Pointer fields distinguish absent from zero; required-field checks happen in
// the dispatcher, not here.
type StartTransactionRequest struct {
	ConnectorId *int     `json:"connectorId,omitempty"`
	IdTag       string   `json:"idTag"`
	MeterStart  *float64 `json:"meterStart,omitempty"`
	Timestamp   string   `json:"timestamp,omitempty"`
}

type StartTransactionResponse struct {
	IdTagInfo     IdTagInfo `json:"idTagInfo"`
	TransactionId int64     `json:"transactionId"`
}

type StopTransactionRequest struct {
	TransactionId *int64   `json:"transactionId,omitempty"`
	MeterStop     *float64 `json:"meterStop,omitempty"`
	Timestamp     string   `json:"timestamp,omitempty"`
	IdTag         string   `json:"idTag,omitempty"`
	Reason        string   `json:"reason,omitempty"`
}

type StopTransactionResponse struct {
	IdTagInfo IdTagInfo `json:"idTagInfo"`
	MeterStop float64   `json:"meterStop"`
}
