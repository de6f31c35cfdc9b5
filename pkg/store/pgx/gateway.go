package pgx

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/diretoriaja/portal/internal/util"
	"github.com/diretoriaja/portal/pkg/logger"
	"github.com/diretoriaja/portal/pkg/store"
)

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
}

// Gateway implements store.Gateway and store.Writer on PostgreSQL. Queries
// are built with squirrel; transient failures are retried up to maxTries
// times and reported as store.ErrUpstreamUnavailable.
type Gateway struct {
	conn     pgxIConn
	maxTries int
	backoff  time.Duration
}

type GatewayOption func(*Gateway)

func WithMaxTries(n int) GatewayOption {
	return func(g *Gateway) {
		g.maxTries = n
	}
}

func WithBackoff(d time.Duration) GatewayOption {
	return func(g *Gateway) {
		g.backoff = d
	}
}

func NewGateway(conn pgxIConn, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		conn:     conn,
		maxTries: 3,
		backoff:  100 * time.Millisecond,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(g)
	}
	return g
}

func (g *Gateway) Find(ctx context.Context, collection string, q store.Query) ([]store.Row, error) {
	query, args, err := buildSelect(collection, q)
	if err != nil {
		return nil, err
	}

	return retry(ctx, g, "find "+collection, func(ctx context.Context) ([]store.Row, error) {
		rows, err := g.conn.Query(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		maps, err := pgxv5.CollectRows(rows, pgxv5.RowToMap)
		if err != nil {
			return nil, err
		}
		out := make([]store.Row, 0, len(maps))
		for _, m := range maps {
			out = append(out, normalizeRow(m))
		}
		return out, nil
	})
}

func (g *Gateway) Count(ctx context.Context, collection string, filters []store.Filter) (int64, error) {
	query, args, err := buildCount(collection, filters)
	if err != nil {
		return 0, err
	}

	return retry(ctx, g, "count "+collection, func(ctx context.Context) (int64, error) {
		var n int64
		err := g.conn.QueryRow(ctx, query, args...).Scan(&n)
		return n, err
	})
}

func (g *Gateway) GetOne(ctx context.Context, collection string, filters []store.Filter) (store.Row, error) {
	rows, err := g.Find(ctx, collection, store.Query{Filters: filters, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	return rows[0], nil
}

func (g *Gateway) UpdateField(ctx context.Context, collection string, filters []store.Filter, field string, value any) (int64, error) {
	query, args, err := buildUpdate(collection, filters, field, value)
	if err != nil {
		return 0, err
	}

	logger.Debug("[Gateway] Updating field", "collection", collection, "field", field)
	return retry(ctx, g, "update "+collection, func(ctx context.Context) (int64, error) {
		tag, err := g.conn.Exec(ctx, query, args...)
		if err != nil {
			return 0, err
		}
		return tag.RowsAffected(), nil
	})
}

func retry[T any](ctx context.Context, g *Gateway, op string, fn func(context.Context) (T, error)) (T, error) {
	res, err := util.RetryWithBackoff(ctx, g.maxTries, g.backoff, func(ctx context.Context) (T, error) {
		res, err := fn(ctx)
		if err == nil {
			return res, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && !transient(pgErr) {
			return res, util.Permanent(err)
		}
		logger.Debug("[Gateway] Query failed", "op", op, "err", err)
		return res, err
	})
	if err != nil {
		var zero T
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && !transient(pgErr) {
			return zero, fmt.Errorf("%s: %w", op, err)
		}
		return zero, fmt.Errorf("%s: %w: %w", op, store.ErrUpstreamUnavailable, err)
	}
	return res, nil
}

// transient reports whether a server error is worth retrying: connection
// exceptions (class 08), insufficient resources (53), operator intervention
// (57) and serialization failures (40001).
func transient(err *pgconn.PgError) bool {
	if len(err.Code) < 2 {
		return false
	}
	switch err.Code[:2] {
	case "08", "53", "57":
		return true
	}
	return err.Code == "40001"
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func ident(name string) string {
	return pgxv5.Identifier{name}.Sanitize()
}

func where(filters []store.Filter) []sq.Sqlizer {
	out := make([]sq.Sqlizer, 0, len(filters))
	for _, f := range filters {
		col := ident(f.Field)
		switch f.Op {
		case store.OpEq:
			out = append(out, sq.Eq{col: f.Value})
		case store.OpGte:
			out = append(out, sq.GtOrEq{col: f.Value})
		case store.OpNotNull:
			out = append(out, sq.NotEq{col: nil})
		case store.OpIsNull:
			out = append(out, sq.Eq{col: nil})
		}
	}
	return out
}

func buildSelect(collection string, q store.Query) (string, []any, error) {
	if err := q.Validate(collection); err != nil {
		return "", nil, err
	}

	cols := []string{"*"}
	if len(q.Columns) > 0 {
		cols = make([]string, 0, len(q.Columns))
		for _, c := range q.Columns {
			cols = append(cols, ident(c))
		}
	}

	b := psql.Select(cols...).From(ident(collection))
	for _, w := range where(q.Filters) {
		b = b.Where(w)
	}
	for _, o := range q.OrderBy {
		dir := "DESC"
		if o.Ascending {
			dir = "ASC"
		}
		b = b.OrderBy(ident(o.Field) + " " + dir + " NULLS LAST")
	}
	if q.Limit > 0 {
		b = b.Limit(uint64(q.Limit))
	}
	return b.ToSql()
}

func buildCount(collection string, filters []store.Filter) (string, []any, error) {
	if err := store.ValidateIdentifier(collection); err != nil {
		return "", nil, err
	}
	if err := store.ValidateFilters(filters); err != nil {
		return "", nil, err
	}

	b := psql.Select("count(*)").From(ident(collection))
	for _, w := range where(filters) {
		b = b.Where(w)
	}
	return b.ToSql()
}

func buildUpdate(collection string, filters []store.Filter, field string, value any) (string, []any, error) {
	if err := store.ValidateIdentifier(collection); err != nil {
		return "", nil, err
	}
	if err := store.ValidateIdentifier(field); err != nil {
		return "", nil, err
	}
	if err := store.ValidateFilters(filters); err != nil {
		return "", nil, err
	}
	if len(filters) == 0 {
		return "", nil, fmt.Errorf("update of %s without filters: %w", collection, store.ErrValidation)
	}

	b := psql.Update(ident(collection)).Set(ident(field), value)
	for _, w := range where(filters) {
		b = b.Where(w)
	}
	return b.ToSql()
}
