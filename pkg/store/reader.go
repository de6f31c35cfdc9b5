package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diretoriaja/portal/pkg/common"
	"github.com/diretoriaja/portal/pkg/logger"
)

// Reader wraps a Gateway with the typed reads used by the summary builders
// and the HTTP handlers. Reads keyed by a storage key or national identifier
// return empty results when the key is empty instead of querying.
type Reader struct {
	gw Gateway
}

func NewReader(gw Gateway) *Reader {
	return &Reader{gw: gw}
}

func (r *Reader) Gateway() Gateway {
	return r.gw
}

func find[T any](ctx context.Context, gw Gateway, collection string, q Query, decode func(Row) T) ([]T, error) {
	rows, err := gw.Find(ctx, collection, q)
	if err != nil {
		return nil, err
	}
	return DecodeAll(rows, decode), nil
}

// WithFallback runs primary and only runs secondary when primary fails or
// returns an empty value. The secondary result is returned as-is.
func WithFallback[T any](
	ctx context.Context,
	primary, secondary func(context.Context) (T, error),
	empty func(T) bool,
) (T, error) {
	res, err := primary(ctx)
	if err == nil && !empty(res) {
		return res, nil
	}
	if err != nil {
		logger.Warn("[Store] Primary read failed, using fallback", "err", err)
	}
	return secondary(ctx)
}

// Politicos lists the figures flagged for the portal.
func (r *Reader) Politicos(ctx context.Context) ([]common.Politico, error) {
	return find(ctx, r.gw, CollectionPoliticos, Query{
		Filters: []Filter{Eq("usar_diretoriaja", true)},
		OrderBy: []Order{Asc("name")},
	}, DecodePolitico)
}

func (r *Reader) Politico(ctx context.Context, id int64) (common.Politico, error) {
	row, err := r.gw.GetOne(ctx, CollectionPoliticos, []Filter{Eq("id", id)})
	if err != nil {
		return common.Politico{}, fmt.Errorf("politico %d: %w", id, err)
	}
	return DecodePolitico(row), nil
}

// StorageKey resolves the uuid of a figure. An empty key with a nil error
// means the figure exists but has no storage key.
func (r *Reader) StorageKey(ctx context.Context, id int64) (string, error) {
	row, err := r.gw.GetOne(ctx, CollectionPoliticos, []Filter{Eq("id", id)})
	if err != nil {
		return "", fmt.Errorf("politico %d: %w", id, err)
	}
	return row.String("uuid"), nil
}

// Concorrentes returns the figures linked to id as competitors. Links that
// point to a missing figure are skipped.
func (r *Reader) Concorrentes(ctx context.Context, id int64) ([]common.Politico, error) {
	links, err := r.gw.Find(ctx, CollectionConcorrentes, Query{
		Columns: []string{"concorrente_id"},
		Filters: []Filter{Eq("politico_id", id)},
	})
	if err != nil {
		return nil, err
	}

	out := make([]common.Politico, 0, len(links))
	for _, link := range links {
		p, err := r.Politico(ctx, link.Int64("concorrente_id"))
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *Reader) Fontes(ctx context.Context) ([]common.FonteNoticia, error) {
	return find(ctx, r.gw, CollectionFontes, Query{
		Filters: []Filter{Eq("ativo", true)},
		OrderBy: []Order{Desc("peso_confiabilidade")},
	}, DecodeFonte)
}

// TrendingTopics lists trending items ordered by category then rank. An
// empty category returns every category.
func (r *Reader) TrendingTopics(ctx context.Context, category string) ([]common.TrendingTopic, error) {
	q := Query{OrderBy: []Order{Asc("category"), Asc("rank")}}
	if category != "" {
		q.Filters = []Filter{Eq("category", category)}
	}
	return find(ctx, r.gw, CollectionTrending, q, DecodeTrendingTopic)
}

func (r *Reader) ColetaLogs(ctx context.Context, limit int) ([]common.ColetaLog, error) {
	return find(ctx, r.gw, CollectionColetaLogs, Query{
		OrderBy: []Order{Desc("iniciado_em")},
		Limit:   limit,
	}, DecodeColetaLog)
}

// ConsultaLogs lists court-record inquiry logs, newest first. storageKey and
// fonte are optional filters.
func (r *Reader) ConsultaLogs(ctx context.Context, storageKey, fonte string, limit int) ([]common.ConsultaLog, error) {
	q := Query{OrderBy: []Order{Desc("iniciado_em")}, Limit: limit}
	if storageKey != "" {
		q.Filters = append(q.Filters, Eq("politico_id", storageKey))
	}
	if fonte != "" {
		q.Filters = append(q.Filters, Eq("fonte", fonte))
	}
	return find(ctx, r.gw, CollectionConsultaLogs, q, DecodeConsultaLog)
}

// UltimaConsulta returns the start time of the most recent inquiry, or nil.
func (r *Reader) UltimaConsulta(ctx context.Context, storageKey string) (*time.Time, error) {
	if storageKey == "" {
		return nil, nil
	}
	rows, err := r.gw.Find(ctx, CollectionConsultaLogs, Query{
		Columns: []string{"iniciado_em"},
		Filters: []Filter{Eq("politico_id", storageKey)},
		OrderBy: []Order{Desc("iniciado_em")},
		Limit:   1,
	})
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0].Time("iniciado_em"), nil
}
