package models

import "time"

type SessionStatus string

const (
	StatusCharging SessionStatus = "Charging"
	StatusFinished SessionStatus = "Finished"
	// StatusFaulted is a terminal state reserved for charge-point-reported
	// faults; none of the handled actions produces it yet.
	StatusFaulted SessionStatus = "Faulted"
)

// Session is one charging transaction as reported by a charge point. Id is
// assigned by the store and doubles as the OCPP transactionId.
type Session struct {
	Id         int64
	IdTag      string
	StartTime  time.Time
	EndTime    *time.Time
	Status     SessionStatus
	MeterValue float64
}
