package ws

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"csms/internal/metrics"
	"csms/internal/ocpp"
)

var upgrader = websocket.Upgrader{
	CheckOrigin:  func(r *http.Request) bool { return true },
	Subprotocols: []string{"ocpp1.6"},
}

// Supervisor runs one receive/dispatch/send loop per charge point connection.
// Connections share nothing in memory; all coordination goes through the
// session store below the dispatcher.
type Supervisor struct {
	dispatcher *ocpp.Dispatcher
}

func NewSupervisor(dispatcher *ocpp.Dispatcher) *Supervisor {
	return &Supervisor{dispatcher: dispatcher}
}

// HandleConnection upgrades the request and serves the message loop until the
// transport fails or the charge point disconnects. A dropped connection just
// ends the loop; the charge point is expected to reconnect on its own.
func (s *Supervisor) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	connId := uuid.New().String()
	metrics.TotalConnections.Inc()
	metrics.ActiveConnections.Inc()
	defer metrics.ActiveConnections.Dec()

	log.Printf("charge point connected (conn=%s, remote=%s)", connId, conn.RemoteAddr())
	s.serve(r.Context(), connId, conn)
	log.Printf("charge point disconnected (conn=%s)", connId)
}

func (s *Supervisor) serve(ctx context.Context, connId string, conn *websocket.Conn) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) &&
				!errors.Is(err, net.ErrClosed) {
				log.Printf("read error (conn=%s): %v", connId, err)
			}
			return
		}
		metrics.MessagesReceived.Inc()

		env, err := ocpp.DecodeEnvelope(raw)
		if err != nil {
			// No message id to correlate a CallError with, so nothing is
			// sent back; the connection stays open.
			metrics.DecodeErrors.Inc()
			log.Printf("dropping malformed frame (conn=%s): %v", connId, err)
			continue
		}
		if env.Type != ocpp.MessageTypeCall {
			log.Printf("ignoring frame of type %d (conn=%s, messageId=%s)", env.Type, connId, env.MessageId)
			continue
		}

		result, fault := s.dispatcher.Dispatch(ctx, env.Action, env.Payload)

		var out []byte
		if fault != nil {
			metrics.CallErrors.WithLabelValues(fault.Code).Inc()
			out, err = ocpp.EncodeCallError(env.MessageId, fault.Code, fault.Description, nil)
		} else {
			out, err = ocpp.EncodeCallResult(env.MessageId, result)
		}
		if err != nil {
			log.Printf("encode failed (conn=%s, action=%s): %v", connId, env.Action, err)
			continue
		}

		if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
			if fault != nil {
				// CallError delivery is best effort: log and move on.
				log.Printf("failed to send CallError (conn=%s): %v", connId, err)
				continue
			}
			log.Printf("write error (conn=%s): %v", connId, err)
			return
		}
		metrics.MessagesSent.Inc()
	}
}
