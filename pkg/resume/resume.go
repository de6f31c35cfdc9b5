// Package resume builds the aggregated overview of a figure and of its
// competitors. Every section besides the profile is optional: a section that
// fails or times out is returned empty and the failure is only logged.
package resume

import (
	"context"
	"time"

	"github.com/diretoriaja/portal/internal/util"
	"github.com/diretoriaja/portal/pkg/common"
	"github.com/diretoriaja/portal/pkg/diversify"
	"github.com/diretoriaja/portal/pkg/logger"
	"github.com/diretoriaja/portal/pkg/store"
	"golang.org/x/sync/errgroup"
)

// DefaultBranchTimeout bounds each optional section.
const DefaultBranchTimeout = 4 * time.Second

// PoolFactor is how many candidates per requested item are read before
// diversification.
const PoolFactor = 3

type Options struct {
	NewsLimit        int
	MinScore         float64
	PostsLimit       int
	StateNewsLimit   int
	CapitalNewsLimit int
	CityNewsLimit    int
}

func DefaultOptions() Options {
	return Options{
		NewsLimit:        5,
		MinScore:         30,
		PostsLimit:       5,
		StateNewsLimit:   3,
		CapitalNewsLimit: 3,
		CityNewsLimit:    5,
	}
}

// Resumo is the overview of one figure.
type Resumo struct {
	Politico            common.Politico     `json:"politico"`
	TopNoticias         []common.Noticia    `json:"top_noticias"`
	TopInstagram        []common.SocialPost `json:"top_instagram"`
	Concorrentes        []common.Politico   `json:"concorrentes"`
	NoticiasCidade      []common.Noticia    `json:"noticias_cidade"`
	NoticiasEstado      []common.Noticia    `json:"noticias_estado"`
	NoticiasCapital     []common.Noticia    `json:"noticias_capital"`
	TotalNoticias       int64               `json:"total_noticias"`
	TotalPostsInstagram int64               `json:"total_posts_instagram"`
	TotalMencoes        int64               `json:"total_mencoes"`
}

type Builder struct {
	reader         *store.Reader
	branchTimeout  time.Duration
	parallelRivals int
	now            func() time.Time
}

type BuilderOption func(*Builder)

func WithBranchTimeout(d time.Duration) BuilderOption {
	return func(b *Builder) {
		if d > 0 {
			b.branchTimeout = d
		}
	}
}

// WithParallelCompetitors caps how many competitors are summarized at once.
func WithParallelCompetitors(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.parallelRivals = n
		}
	}
}

// WithClock replaces time.Now for the mention windows.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

func NewBuilder(reader *store.Reader, opts ...BuilderOption) *Builder {
	b := &Builder{
		reader:         reader,
		branchTimeout:  DefaultBranchTimeout,
		parallelRivals: 4,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// News returns the best news of a figure. With diversificar set, a larger
// pool is read and interleaved by source before truncation.
func (b *Builder) News(ctx context.Context, politicoID int64, limit int, minScore float64, diversificar bool) ([]common.Noticia, error) {
	if limit <= 0 {
		return []common.Noticia{}, nil
	}
	if !diversificar {
		items, err := b.reader.NoticiasPolitico(ctx, politicoID, limit, minScore)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []common.Noticia{}
		}
		return items, nil
	}

	pool, err := b.reader.NoticiasPolitico(ctx, politicoID, limit*PoolFactor, minScore)
	if err != nil {
		return nil, err
	}
	return diversify.Diversify(pool, limit), nil
}

// Build assembles the overview of a figure. Only the profile lookup can fail
// the call; every other section degrades to empty.
func (b *Builder) Build(ctx context.Context, politicoID int64, opts Options) (Resumo, error) {
	p, err := b.reader.Politico(ctx, politicoID)
	if err != nil {
		return Resumo{}, err
	}

	out := Resumo{Politico: p}
	t := b.branchTimeout

	var eg errgroup.Group
	eg.Go(util.DegradeSlice(ctx, t, "top_noticias", &out.TopNoticias, func(ctx context.Context) ([]common.Noticia, error) {
		return b.News(ctx, p.ID, opts.NewsLimit, opts.MinScore, true)
	}))
	eg.Go(util.DegradeSlice(ctx, t, "top_instagram", &out.TopInstagram, func(ctx context.Context) ([]common.SocialPost, error) {
		return b.reader.SocialPostsWithFallback(ctx, p.ID, opts.PostsLimit)
	}))
	eg.Go(util.DegradeSlice(ctx, t, "concorrentes", &out.Concorrentes, func(ctx context.Context) ([]common.Politico, error) {
		return b.reader.Concorrentes(ctx, p.ID)
	}))
	eg.Go(util.DegradeSlice(ctx, t, "noticias_cidade", &out.NoticiasCidade, func(ctx context.Context) ([]common.Noticia, error) {
		if p.Cidade == "" {
			return nil, nil
		}
		return b.reader.NoticiasCidade(ctx, p.Cidade, opts.CityNewsLimit)
	}))
	eg.Go(util.DegradeSlice(ctx, t, "noticias_estado", &out.NoticiasEstado, func(ctx context.Context) ([]common.Noticia, error) {
		if p.Estado == "" {
			return nil, nil
		}
		return b.reader.NoticiasNivelEstado(ctx, p.Estado, opts.StateNewsLimit)
	}))
	eg.Go(util.DegradeSlice(ctx, t, "noticias_capital", &out.NoticiasCapital, func(ctx context.Context) ([]common.Noticia, error) {
		if p.Estado == "" {
			return nil, nil
		}
		return b.reader.NoticiasCapital(ctx, p.Estado, opts.CapitalNewsLimit)
	}))
	eg.Go(util.Degrade(ctx, t, "total_noticias", &out.TotalNoticias, 0, func(ctx context.Context) (int64, error) {
		return b.reader.CountNoticias(ctx, p.ID)
	}))
	eg.Go(util.Degrade(ctx, t, "total_posts_instagram", &out.TotalPostsInstagram, 0, func(ctx context.Context) (int64, error) {
		return b.reader.CountSocialPosts(ctx, p.ID)
	}))
	eg.Go(util.Degrade(ctx, t, "total_mencoes", &out.TotalMencoes, 0, func(ctx context.Context) (int64, error) {
		return b.reader.CountMentions(ctx, p.ID)
	}))

	// branches never return an error
	_ = eg.Wait()

	logger.Debug("[Resume] Built", "politico", p.ID, "noticias", len(out.TopNoticias), "concorrentes", len(out.Concorrentes))
	return out, nil
}
