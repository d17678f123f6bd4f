package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Connection metrics
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ocpp_connections_active",
		Help: "The current number of connected charge points.",
	})
	TotalConnections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ocpp_connections_total",
		Help: "The total number of charge point connections accepted.",
	})

	// Message metrics
	MessagesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ocpp_messages_received_total",
		Help: "The total number of frames received from charge points.",
	})
	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ocpp_messages_sent_total",
		Help: "The total number of frames sent to charge points.",
	})
	DecodeErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ocpp_decode_errors_total",
		Help: "The total number of frames dropped as malformed.",
	})
	CallErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ocpp_call_errors_total",
		Help: "The total number of CallError responses, by error code.",
	}, []string{"code"})

	// Session metrics
	SessionsOpened = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ocpp_sessions_opened_total",
		Help: "The total number of charging sessions created.",
	})
	SessionsClosed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ocpp_sessions_closed_total",
		Help: "The total number of charging sessions finished.",
	})
)
