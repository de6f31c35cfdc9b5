// Package leaselock implements non-renewing, expiring leases used as
// per-key cooldowns. A lease is held until it expires or its holder
// releases it; nobody else can take the key meanwhile.
package leaselock

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var ErrBusy = errors.New("lease lock busy")

var errEmptyKey = errors.New("lease lock key is empty")

// DefaultTTL is used when a non-positive TTL is requested.
const DefaultTTL = 5 * time.Minute

type Lease struct {
	Key       string
	Token     string
	ExpiresAt time.Time
}

// Locker hands out leases. TryAcquire never waits: it returns ErrBusy when
// the key is held by a lease that has not expired.
type Locker interface {
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (Lease, error)
	Release(ctx context.Context, l Lease) error
}

type dbConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Client stores leases in the app_locks table.
type Client struct {
	db dbConn
}

func New(pool *pgxpool.Pool) *Client {
	return &Client{db: pool}
}

func (c *Client) TryAcquire(ctx context.Context, key string, ttl time.Duration) (Lease, error) {
	if key == "" {
		return Lease{}, errEmptyKey
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	token, err := gonanoid.New()
	if err != nil {
		return Lease{}, err
	}

	l := Lease{Key: key, Token: token}
	err = c.db.QueryRow(ctx, tryAcquireSQL, key, token, ttl.Milliseconds()).Scan(&l.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lease{}, ErrBusy
	}
	if err != nil {
		return Lease{}, err
	}
	return l, nil
}

// Release ends the lease early. Releasing a lease that expired or was taken
// over is a no-op.
func (c *Client) Release(ctx context.Context, l Lease) error {
	_, err := c.db.Exec(ctx, releaseSQL, l.Key, l.Token)
	return err
}

const tryAcquireSQL = `
INSERT INTO app_locks (lock_key, locked_by, expires_at)
VALUES ($1, $2, now() + ($3::bigint * interval '1 millisecond'))
ON CONFLICT (lock_key) DO UPDATE
SET locked_by  = EXCLUDED.locked_by,
    expires_at = EXCLUDED.expires_at
WHERE app_locks.expires_at < now()
RETURNING expires_at;
`

const releaseSQL = `
DELETE FROM app_locks
WHERE lock_key = $1 AND locked_by = $2;
`
