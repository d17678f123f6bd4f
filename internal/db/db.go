package db

import (
	"context"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	Pool *pgxpool.Pool
}

func Connect(ctx context.Context, url string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.MaxConnIdleTime = 5 * time.Minute
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &DB{Pool: pool}, nil
}

// ConnectWithRetry keeps dialing until the database answers or maxWait runs
// out. The server is often started before Postgres finishes coming up.
func ConnectWithRetry(ctx context.Context, url string, maxWait time.Duration) (*DB, error) {
	var d *DB
	operation := func() error {
		var err error
		d, err = Connect(ctx, url)
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = maxWait

	err := backoff.RetryNotify(operation, backoff.WithContext(bo, ctx), func(err error, next time.Duration) {
		log.Printf("database not ready: %v (retrying in %s)", err, next)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Init ensures the sessions table exists.
func (d *DB) Init(ctx context.Context) error {
	_, err := d.Pool.Exec(ctx, `
		create table if not exists sessions (
			id bigserial primary key,
			id_tag text not null,
			start_time timestamptz not null,
			end_time timestamptz,
			status text not null,
			meter_value double precision
		)
	`)
	return err
}

func (d *DB) Close() {
	if d != nil && d.Pool != nil {
		d.Pool.Close()
	}
}
