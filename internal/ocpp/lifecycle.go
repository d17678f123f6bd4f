package ocpp

import (
	"context"
	"log"
	"time"

	"csms/internal/metrics"
	"csms/internal/models"
)

// SessionStore is the durable backing for charging sessions, the only state
// shared between connections. Implemented by repo.SessionsRepo; tests use an
// in-memory fake.
type SessionStore interface {
	Create(ctx context.Context, idTag string, startTime time.Time, meterStart float64) (int64, error)
	Finish(ctx context.Context, id int64, endTime time.Time, meterValue float64, status models.SessionStatus) (int64, error)
	ListAll(ctx context.Context) ([]models.Session, error)
}

// Lifecycle owns the Charging -> {Finished, Faulted} state machine and the
// mapping between an OCPP transactionId and a stored session row.
type Lifecycle struct {
	store SessionStore
}

func NewLifecycle(store SessionStore) *Lifecycle { return &Lifecycle{store: store} }

// OpenSession creates a new session; every session starts out Charging.
func (l *Lifecycle) OpenSession(ctx context.Context, idTag string, startTime time.Time, meterStart float64) (int64, error) {
	id, err := l.store.Create(ctx, idTag, startTime, meterStart)
	if err != nil {
		return 0, err
	}
	metrics.SessionsOpened.Inc()
	return id, nil
}

// CloseSession finishes a session unconditionally, with no read-before-write.
// The charge point is trusted: an id that matches no row updates nothing,
// which is logged and otherwise accepted (OCPP defines no error code for an
// unknown transaction at this layer).
func (l *Lifecycle) CloseSession(ctx context.Context, id int64, endTime time.Time, meterStop float64) error {
	n, err := l.store.Finish(ctx, id, endTime, meterStop, models.StatusFinished)
	if err != nil {
		return err
	}
	if n == 0 {
		log.Printf("StopTransaction for unknown transactionId %d updated no rows", id)
		return nil
	}
	metrics.SessionsClosed.Inc()
	return nil
}
