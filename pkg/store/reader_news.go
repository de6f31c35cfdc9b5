package store

import (
	"context"
	"fmt"

	"github.com/diretoriaja/portal/pkg/common"

	"golang.org/x/sync/errgroup"
)

func (r *Reader) Noticia(ctx context.Context, id string) (common.Noticia, error) {
	if id == "" {
		return common.Noticia{}, fmt.Errorf("empty noticia id: %w", ErrValidation)
	}
	row, err := r.gw.GetOne(ctx, CollectionNoticias, []Filter{Eq("id", id)})
	if err != nil {
		return common.Noticia{}, fmt.Errorf("noticia %s: %w", id, err)
	}
	return DecodeNoticia(row), nil
}

// NoticiasPolitico returns a figure's news with relevancia_total >= minScore,
// most relevant first.
func (r *Reader) NoticiasPolitico(ctx context.Context, politicoID int64, limit int, minScore float64) ([]common.Noticia, error) {
	filters := []Filter{Eq("politico_id", politicoID)}
	if minScore > 0 {
		filters = append(filters, Gte("relevancia_total", minScore))
	}
	return find(ctx, r.gw, CollectionNoticias, Query{
		Filters: filters,
		OrderBy: []Order{Desc("relevancia_total")},
		Limit:   limit,
	}, DecodeNoticia)
}

func (r *Reader) CountNoticias(ctx context.Context, politicoID int64) (int64, error) {
	return r.gw.Count(ctx, CollectionNoticias, []Filter{Eq("politico_id", politicoID)})
}

// NoticiasCidade returns every news item tagged with the city, regardless of
// its scope.
func (r *Reader) NoticiasCidade(ctx context.Context, cidade string, limit int) ([]common.Noticia, error) {
	if cidade == "" {
		return nil, nil
	}
	return find(ctx, r.gw, CollectionNoticias, Query{
		Filters: []Filter{Eq("cidade", cidade)},
		OrderBy: []Order{Desc("relevancia_total")},
		Limit:   limit,
	}, DecodeNoticia)
}

func (r *Reader) NoticiasGerais(ctx context.Context, limit int) ([]common.Noticia, error) {
	return find(ctx, r.gw, CollectionNoticias, Query{
		Filters: []Filter{Eq("tipo", TipoGeral)},
		OrderBy: []Order{Desc("relevancia_total")},
		Limit:   limit,
	}, DecodeNoticia)
}

// NoticiasEstado returns every state-scoped item of uf.
func (r *Reader) NoticiasEstado(ctx context.Context, uf string, limit int) ([]common.Noticia, error) {
	if uf == "" {
		return nil, nil
	}
	return find(ctx, r.gw, CollectionNoticias, Query{
		Filters: []Filter{Eq("tipo", TipoEstado), Eq("estado", uf)},
		OrderBy: []Order{Desc("relevancia_total")},
		Limit:   limit,
	}, DecodeNoticia)
}

// NoticiasNivelEstado returns state-level items of uf that carry no city,
// such as news about the governor or the state assembly.
func (r *Reader) NoticiasNivelEstado(ctx context.Context, uf string, limit int) ([]common.Noticia, error) {
	if uf == "" {
		return nil, nil
	}
	return find(ctx, r.gw, CollectionNoticias, Query{
		Filters: []Filter{Eq("tipo", TipoEstado), Eq("estado", uf), IsNull("cidade")},
		OrderBy: []Order{Desc("relevancia_total")},
		Limit:   limit,
	}, DecodeNoticia)
}

// NoticiasCapital returns city-scoped items about the capital of uf. Unknown
// state codes yield no items.
func (r *Reader) NoticiasCapital(ctx context.Context, uf string, limit int) ([]common.Noticia, error) {
	capital := Capital(uf)
	if capital == "" {
		return nil, nil
	}
	return find(ctx, r.gw, CollectionNoticias, Query{
		Filters: []Filter{Eq("tipo", TipoCidade), Eq("cidade", capital)},
		OrderBy: []Order{Desc("relevancia_total")},
		Limit:   limit,
	}, DecodeNoticia)
}

// NoticiasCapitais returns capital news grouped by state code. States with
// no news are left out.
func (r *Reader) NoticiasCapitais(ctx context.Context, limitPorCapital int) (map[string][]common.Noticia, error) {
	estados := Estados()
	found := make([][]common.Noticia, len(estados))

	g := new(errgroup.Group)
	g.SetLimit(8)
	for i, uf := range estados {
		g.Go(func() error {
			noticias, err := r.NoticiasCapital(ctx, uf, limitPorCapital)
			if err != nil {
				return err
			}
			found[i] = noticias
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string][]common.Noticia)
	for i, uf := range estados {
		if len(found[i]) > 0 {
			out[uf] = found[i]
		}
	}
	return out, nil
}
