package resume

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/diretoriaja/portal/pkg/common"
	"github.com/diretoriaja/portal/pkg/store"
	"github.com/diretoriaja/portal/pkg/store/memory"
)

func news(id string, politicoID int64, fonte string, score float64) store.Row {
	return store.Row{
		"id": id, "politico_id": politicoID, "tipo": store.TipoPolitico,
		"url": "https://example.com/" + id, "fonte_id": fonte, "relevancia_total": score,
	}
}

func newGateway() *memory.Gateway {
	gw := memory.New()
	gw.Insert(store.CollectionPoliticos,
		store.Row{"id": int64(1), "uuid": "u1", "name": "Ana Souza", "cidade": "Campinas", "estado": "SP"},
		store.Row{"id": int64(2), "uuid": "u2", "name": "Bruno Lima"},
		store.Row{"id": int64(3), "name": "Carla Dias"},
	)
	gw.Insert(store.CollectionConcorrentes,
		store.Row{"politico_id": int64(1), "concorrente_id": int64(2)},
		store.Row{"politico_id": int64(1), "concorrente_id": int64(3)},
		store.Row{"politico_id": int64(1), "concorrente_id": int64(99)},
	)
	gw.Insert(store.CollectionNoticias,
		news("n1", 1, "A", 90),
		news("n2", 1, "A", 85),
		news("n3", 1, "B", 80),
		news("n4", 1, "C", 20),
		news("b1", 2, "X", 70),
		news("b2", 2, "X", 60),
		news("b3", 2, "Y", 50),
		news("z1", 3, "Z", 75),
		store.Row{"id": "c1", "tipo": store.TipoCidade, "cidade": "Campinas", "estado": "SP", "relevancia_total": 40.0},
		store.Row{"id": "e1", "tipo": store.TipoEstado, "estado": "SP", "relevancia_total": 60.0},
		store.Row{"id": "e2", "tipo": store.TipoEstado, "estado": "SP", "cidade": "Santos", "relevancia_total": 65.0},
		store.Row{"id": "k1", "tipo": store.TipoCidade, "cidade": "São Paulo", "estado": "SP", "relevancia_total": 55.0},
	)
	gw.Insert(store.CollectionSocialPosts,
		store.Row{"id": "p1", "politico_id": int64(1), "plataforma": "instagram", "engagement_score": 10.0},
		store.Row{"id": "p2", "politico_id": int64(1), "plataforma": "instagram", "engagement_score": 5.0},
		store.Row{"id": "p3", "politico_id": int64(1), "plataforma": "twitter", "engagement_score": 50.0},
	)
	gw.Insert(store.CollectionInstagramPosts,
		store.Row{"id": "l1", "politico_id": int64(2), "likes": int64(4)},
	)
	gw.Insert(store.CollectionSocialMentions,
		store.Row{"id": "m1", "politico_id": int64(1)},
		store.Row{"id": "m2", "politico_id": int64(1)},
		store.Row{"id": "m3", "politico_id": int64(1)},
	)
	return gw
}

func noticiaIDs(items []common.Noticia) []string {
	out := make([]string, 0, len(items))
	for _, n := range items {
		out = append(out, n.ID)
	}
	return out
}

func TestBuild(t *testing.T) {
	t.Parallel()

	b := NewBuilder(store.NewReader(newGateway()))
	opts := DefaultOptions()
	opts.NewsLimit = 2

	got, err := b.Build(context.Background(), 1, opts)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got.Politico.Name != "Ana Souza" {
		t.Fatalf("unexpected politico: %+v", got.Politico)
	}
	checks := []struct {
		name string
		got  []string
		want []string
	}{
		{"top_noticias", noticiaIDs(got.TopNoticias), []string{"n1", "n3"}},
		{"noticias_cidade", noticiaIDs(got.NoticiasCidade), []string{"c1"}},
		{"noticias_estado", noticiaIDs(got.NoticiasEstado), []string{"e1"}},
		{"noticias_capital", noticiaIDs(got.NoticiasCapital), []string{"k1"}},
	}
	for _, c := range checks {
		if !reflect.DeepEqual(c.got, c.want) {
			t.Fatalf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if len(got.TopInstagram) != 2 || got.TopInstagram[0].ID != "p1" {
		t.Fatalf("unexpected top_instagram: %+v", got.TopInstagram)
	}
	if len(got.Concorrentes) != 2 {
		t.Fatalf("unexpected concorrentes: %+v", got.Concorrentes)
	}
	if got.TotalNoticias != 4 || got.TotalPostsInstagram != 2 || got.TotalMencoes != 3 {
		t.Fatalf("unexpected totals: %d %d %d", got.TotalNoticias, got.TotalPostsInstagram, got.TotalMencoes)
	}
}

func TestBuildWithoutLocation(t *testing.T) {
	t.Parallel()

	b := NewBuilder(store.NewReader(newGateway()))
	got, err := b.Build(context.Background(), 2, DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	for name, items := range map[string][]common.Noticia{
		"cidade":  got.NoticiasCidade,
		"estado":  got.NoticiasEstado,
		"capital": got.NoticiasCapital,
	} {
		if items == nil || len(items) != 0 {
			t.Fatalf("expected empty %s news, got %#v", name, items)
		}
	}
	if len(got.TopInstagram) != 1 || got.TopInstagram[0].ID != "l1" {
		t.Fatalf("expected legacy fallback, got %+v", got.TopInstagram)
	}
}

func TestBuildSurvivesFailingCompetitors(t *testing.T) {
	t.Parallel()

	gw := newGateway()
	gw.Fail(store.CollectionConcorrentes, errors.New("connection reset"))
	b := NewBuilder(store.NewReader(gw))

	got, err := b.Build(context.Background(), 1, DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got.Concorrentes == nil || len(got.Concorrentes) != 0 {
		t.Fatalf("expected empty concorrentes, got %#v", got.Concorrentes)
	}
	if len(got.TopNoticias) == 0 || got.TotalNoticias != 4 {
		t.Fatalf("other sections should be intact: %+v", got)
	}
}

func TestBuildBranchTimeout(t *testing.T) {
	t.Parallel()

	gw := newGateway()
	gw.Delay(store.CollectionSocialMentions, time.Second)
	b := NewBuilder(store.NewReader(gw), WithBranchTimeout(20*time.Millisecond))

	start := time.Now()
	got, err := b.Build(context.Background(), 1, DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("slow branch was not cut off: %v", elapsed)
	}
	if got.TotalMencoes != 0 {
		t.Fatalf("expected zero mentions, got %d", got.TotalMencoes)
	}
	if got.TotalNoticias != 4 {
		t.Fatalf("expected 4 news, got %d", got.TotalNoticias)
	}
}

func TestBuildProfileErrors(t *testing.T) {
	t.Parallel()

	b := NewBuilder(store.NewReader(newGateway()))
	if _, err := b.Build(context.Background(), 99, DefaultOptions()); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	gw := newGateway()
	gw.Fail(store.CollectionPoliticos, errors.New("down"))
	b = NewBuilder(store.NewReader(gw))
	if _, err := b.Build(context.Background(), 1, DefaultOptions()); !errors.Is(err, store.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestNews(t *testing.T) {
	t.Parallel()

	b := NewBuilder(store.NewReader(newGateway()))
	ctx := context.Background()

	tests := []struct {
		name         string
		limit        int
		minScore     float64
		diversificar bool
		want         []string
	}{
		{"diversified", 2, 0, true, []string{"n1", "n3"}},
		{"plain", 2, 0, false, []string{"n1", "n2"}},
		{"min score", 10, 50, true, []string{"n1", "n2", "n3"}},
		{"zero limit", 0, 0, true, []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := b.News(ctx, 1, tc.limit, tc.minScore, tc.diversificar)
			if err != nil {
				t.Fatalf("News() error = %v", err)
			}
			if ids := noticiaIDs(got); !reflect.DeepEqual(ids, tc.want) {
				t.Fatalf("News() = %v, want %v", ids, tc.want)
			}
		})
	}
}

func TestCompetitors(t *testing.T) {
	t.Parallel()

	b := NewBuilder(store.NewReader(newGateway()))
	got, err := b.Competitors(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("Competitors() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected only the competitor with a storage key, got %+v", got)
	}
	c := got[0]
	if c.Politico.ID != 2 {
		t.Fatalf("unexpected competitor: %+v", c.Politico)
	}
	if ids := noticiaIDs(c.Noticias); !reflect.DeepEqual(ids, []string{"b1", "b3"}) {
		t.Fatalf("Noticias = %v", ids)
	}
	if c.TotalNoticias != 3 || c.TotalInstagram != 1 || len(c.Instagram) != 1 {
		t.Fatalf("unexpected competitor totals: %+v", c)
	}
}

func TestCompetitorsListFailure(t *testing.T) {
	t.Parallel()

	gw := newGateway()
	gw.Fail(store.CollectionConcorrentes, errors.New("down"))
	b := NewBuilder(store.NewReader(gw))
	if _, err := b.Competitors(context.Background(), 1, 2); !errors.Is(err, store.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestCompetitorNews(t *testing.T) {
	t.Parallel()

	b := NewBuilder(store.NewReader(newGateway()))
	ctx := context.Background()

	got, err := b.CompetitorNews(ctx, 1, 2)
	if err != nil {
		t.Fatalf("CompetitorNews() error = %v", err)
	}
	if ids := noticiaIDs(got); !reflect.DeepEqual(ids, []string{"z1", "b1", "b3"}) {
		t.Fatalf("CompetitorNews() = %v", ids)
	}

	got, err = b.CompetitorNews(ctx, 2, 2)
	if err != nil {
		t.Fatalf("CompetitorNews() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty list for a figure without competitors, got %#v", got)
	}
}

func TestTwitterInsights(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour
	gw := newGateway()
	gw.Insert(store.CollectionSocialMentions,
		store.Row{"id": "t1", "politico_id": int64(2), "plataforma": "twitter", "engagement_score": 10.0, "posted_at": now.Add(-day)},
		store.Row{"id": "t2", "politico_id": int64(2), "plataforma": "twitter", "engagement_score": 30.0, "posted_at": now.Add(-2 * day)},
		store.Row{"id": "t3", "politico_id": int64(2), "plataforma": "twitter", "engagement_score": 20.0, "posted_at": now.Add(-3 * day)},
		store.Row{"id": "t4", "politico_id": int64(2), "plataforma": "twitter", "engagement_score": 5.0, "posted_at": now.Add(-4 * day)},
		store.Row{"id": "t5", "politico_id": int64(2), "plataforma": "twitter", "engagement_score": 99.0, "posted_at": now.Add(-9 * day)},
		store.Row{"id": "t6", "politico_id": int64(2), "plataforma": "bluesky", "engagement_score": 99.0, "posted_at": now},
		store.Row{"id": "t7", "politico_id": int64(3), "plataforma": "twitter", "engagement_score": 1.0, "posted_at": now},
	)
	gw.Insert(store.CollectionTwitterInsights,
		store.Row{"politico_id": int64(2), "twitter_username": "brunolima", "followers_count": int64(1500), "computed_at": now.Add(-day)},
	)
	b := NewBuilder(store.NewReader(gw), WithClock(func() time.Time { return now }))

	got, err := b.TwitterInsights(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("TwitterInsights() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected one entry per existing competitor, got %+v", got)
	}

	bruno := got[0]
	if bruno.Politico.ID != 2 || bruno.TwitterUsername != "brunolima" || bruno.MentionsWindowDays != DefaultDaysBack {
		t.Fatalf("unexpected first entry: %+v", bruno)
	}
	if bruno.FollowersCount == nil || *bruno.FollowersCount != 1500 {
		t.Fatalf("unexpected followers: %v", bruno.FollowersCount)
	}
	if ids := mentionIDs(bruno.TopMentions); !reflect.DeepEqual(ids, []string{"t2", "t3", "t1"}) {
		t.Fatalf("TopMentions = %v", ids)
	}

	carla := got[1]
	if carla.Politico.ID != 3 || carla.FollowersCount != nil {
		t.Fatalf("unexpected second entry: %+v", carla)
	}
	if ids := mentionIDs(carla.TopMentions); !reflect.DeepEqual(ids, []string{"t7"}) {
		t.Fatalf("TopMentions = %v", ids)
	}

	wide, err := b.TwitterInsights(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("TwitterInsights() error = %v", err)
	}
	if ids := mentionIDs(wide[0].TopMentions); !reflect.DeepEqual(ids, []string{"t5", "t2", "t3"}) {
		t.Fatalf("TopMentions over 10 days = %v", ids)
	}
}

func TestTwitterInsightsSnapshotFailureDegrades(t *testing.T) {
	t.Parallel()

	gw := newGateway()
	gw.Fail(store.CollectionTwitterInsights, errors.New("down"))
	b := NewBuilder(store.NewReader(gw))

	got, err := b.TwitterInsights(context.Background(), 1, DefaultDaysBack)
	if err != nil {
		t.Fatalf("TwitterInsights() error = %v", err)
	}
	for _, in := range got {
		if in.FollowersCount != nil || in.TopMentions == nil {
			t.Fatalf("unexpected entry: %+v", in)
		}
	}
}

func mentionIDs(items []common.SocialMention) []string {
	out := make([]string, 0, len(items))
	for _, m := range items {
		out = append(out, m.ID)
	}
	return out
}
