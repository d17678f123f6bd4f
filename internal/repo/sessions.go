package repo

import (
	"context"
	"errors"
	"time"

	"csms/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionsRepo struct{ db *pgxpool.Pool }

func NewSessionsRepo(db *pgxpool.Pool) *SessionsRepo { return &SessionsRepo{db: db} }

// Create inserts one Charging session and returns its assigned id. The insert
// and the id fetch happen in the same statement, so concurrent creates never
// observe each other's uncommitted ids.
func (r *SessionsRepo) Create(ctx context.Context, idTag string, startTime time.Time, meterStart float64) (int64, error) {
	row := r.db.QueryRow(ctx, `
		insert into sessions (id_tag, start_time, status, meter_value)
		values ($1,$2,$3,$4)
		returning id
	`, idTag, startTime, models.StatusCharging, meterStart)

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Finish writes the terminal fields of a session and reports how many rows
// matched. There is deliberately no status guard: a second stop overwrites
// end_time and meter_value again, and callers detect no-ops by the count.
func (r *SessionsRepo) Finish(ctx context.Context, id int64, endTime time.Time, meterValue float64, status models.SessionStatus) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		update sessions set end_time=$2, meter_value=$3, status=$4
		where id=$1
	`, id, endTime, meterValue, status)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *SessionsRepo) GetByID(ctx context.Context, id int64) (*models.Session, error) {
	row := r.db.QueryRow(ctx, `
		select id, id_tag, start_time, end_time, status, coalesce(meter_value, 0)
		from sessions where id=$1
	`, id)

	var s models.Session
	if err := row.Scan(&s.Id, &s.IdTag, &s.StartTime, &s.EndTime, &s.Status, &s.MeterValue); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// ListAll returns every session in insertion order, as a point-in-time
// snapshot.
func (r *SessionsRepo) ListAll(ctx context.Context) ([]models.Session, error) {
	rows, err := r.db.Query(ctx, `
		select id, id_tag, start_time, end_time, status, coalesce(meter_value, 0)
		from sessions
		order by id asc
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Session
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(&s.Id, &s.IdTag, &s.StartTime, &s.EndTime, &s.Status, &s.MeterValue); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
