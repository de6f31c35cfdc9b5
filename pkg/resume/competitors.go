package resume

import (
	"cmp"
	"context"
	"slices"

	"github.com/diretoriaja/portal/internal/util"
	"github.com/diretoriaja/portal/pkg/common"
	"github.com/diretoriaja/portal/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// CompetitorPostsLimit is the number of posts shown per competitor.
const CompetitorPostsLimit = 3

// ConcorrenteResumo is the reduced overview of one competitor.
type ConcorrenteResumo struct {
	Politico       common.Politico     `json:"politico"`
	Noticias       []common.Noticia    `json:"noticias"`
	TotalNoticias  int64               `json:"total_noticias"`
	Instagram      []common.SocialPost `json:"instagram"`
	TotalInstagram int64               `json:"total_instagram"`
}

// Competitors summarizes every competitor of a figure with newsLimit
// diversified news each. Competitors without a storage key are skipped.
// Only the competitor list itself can fail the call.
func (b *Builder) Competitors(ctx context.Context, politicoID int64, newsLimit int) ([]ConcorrenteResumo, error) {
	rivals, err := b.reader.Concorrentes(ctx, politicoID)
	if err != nil {
		return nil, err
	}

	rivals = slices.DeleteFunc(rivals, func(p common.Politico) bool {
		if p.UUID == "" {
			logger.Debug("[Resume] Skipping competitor without storage key", "politico", politicoID, "concorrente", p.ID)
			return true
		}
		return false
	})

	out := make([]ConcorrenteResumo, len(rivals))

	var eg errgroup.Group
	eg.SetLimit(b.parallelRivals)
	for i, rival := range rivals {
		eg.Go(func() error {
			out[i] = b.competitor(ctx, rival, newsLimit)
			return nil
		})
	}
	_ = eg.Wait()

	return out, nil
}

func (b *Builder) competitor(ctx context.Context, p common.Politico, newsLimit int) ConcorrenteResumo {
	r := ConcorrenteResumo{Politico: p}
	t := b.branchTimeout

	var eg errgroup.Group
	eg.Go(util.DegradeSlice(ctx, t, "concorrente_noticias", &r.Noticias, func(ctx context.Context) ([]common.Noticia, error) {
		return b.News(ctx, p.ID, newsLimit, 0, true)
	}))
	eg.Go(util.DegradeSlice(ctx, t, "concorrente_instagram", &r.Instagram, func(ctx context.Context) ([]common.SocialPost, error) {
		return b.reader.SocialPostsWithFallback(ctx, p.ID, CompetitorPostsLimit)
	}))
	eg.Go(util.Degrade(ctx, t, "concorrente_total_noticias", &r.TotalNoticias, 0, func(ctx context.Context) (int64, error) {
		return b.reader.CountNoticias(ctx, p.ID)
	}))
	eg.Go(util.Degrade(ctx, t, "concorrente_total_instagram", &r.TotalInstagram, 0, func(ctx context.Context) (int64, error) {
		return b.reader.CountSocialPosts(ctx, p.ID)
	}))
	_ = eg.Wait()

	return r
}

// CompetitorNews merges the diversified news of every competitor, most
// relevant first, capped at limit items per competitor.
func (b *Builder) CompetitorNews(ctx context.Context, politicoID int64, limit int) ([]common.Noticia, error) {
	rivals, err := b.reader.Concorrentes(ctx, politicoID)
	if err != nil {
		return nil, err
	}
	if len(rivals) == 0 || limit <= 0 {
		return []common.Noticia{}, nil
	}

	perRival := make([][]common.Noticia, len(rivals))

	var eg errgroup.Group
	eg.SetLimit(b.parallelRivals)
	for i, rival := range rivals {
		eg.Go(util.DegradeSlice(ctx, b.branchTimeout, "concorrente_noticias", &perRival[i], func(ctx context.Context) ([]common.Noticia, error) {
			return b.News(ctx, rival.ID, limit, 0, true)
		}))
	}
	_ = eg.Wait()

	merged := slices.Concat(perRival...)
	slices.SortStableFunc(merged, func(x, y common.Noticia) int {
		return cmp.Compare(y.RelevanciaTotal, x.RelevanciaTotal)
	})
	if capped := limit * len(rivals); len(merged) > capped {
		merged = merged[:capped]
	}
	if merged == nil {
		merged = []common.Noticia{}
	}
	return merged, nil
}
