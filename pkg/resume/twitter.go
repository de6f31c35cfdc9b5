package resume

import (
	"context"
	"time"

	"github.com/diretoriaja/portal/internal/util"
	"github.com/diretoriaja/portal/pkg/common"
	"golang.org/x/sync/errgroup"
)

// TopMentionsLimit is the number of mentions shown per competitor.
const TopMentionsLimit = 3

const (
	DefaultDaysBack = 7
	MaxDaysBack     = 30
)

const twitterPlataforma = "twitter"

// TwitterInsight is the Twitter/X overview of one competitor.
type TwitterInsight struct {
	Politico           common.Politico        `json:"politico"`
	TwitterUsername    string                 `json:"twitter_username,omitempty"`
	FollowersCount     *int64                 `json:"followers_count"`
	SnapshotAt         *time.Time             `json:"snapshot_at,omitempty"`
	MentionsWindowDays int                    `json:"mentions_window_days"`
	TopMentions        []common.SocialMention `json:"top_mentions"`
}

// TwitterInsights returns, for every competitor, the newest follower snapshot
// and the most engaging Twitter/X mentions of the last daysBack days. Only
// the competitor list itself can fail the call.
func (b *Builder) TwitterInsights(ctx context.Context, politicoID int64, daysBack int) ([]TwitterInsight, error) {
	if daysBack <= 0 {
		daysBack = DefaultDaysBack
	}
	rivals, err := b.reader.Concorrentes(ctx, politicoID)
	if err != nil {
		return nil, err
	}

	since := b.now().AddDate(0, 0, -daysBack)
	out := make([]TwitterInsight, len(rivals))

	var eg errgroup.Group
	eg.SetLimit(b.parallelRivals)
	for i, rival := range rivals {
		eg.Go(func() error {
			out[i] = b.twitterInsight(ctx, rival, since, daysBack)
			return nil
		})
	}
	_ = eg.Wait()

	return out, nil
}

func (b *Builder) twitterInsight(ctx context.Context, p common.Politico, since time.Time, daysBack int) TwitterInsight {
	r := TwitterInsight{Politico: p, MentionsWindowDays: daysBack}
	t := b.branchTimeout

	var snap *common.TwitterSnapshot
	var eg errgroup.Group
	eg.Go(util.Degrade(ctx, t, "twitter_snapshot", &snap, nil, func(ctx context.Context) (*common.TwitterSnapshot, error) {
		return b.reader.TwitterSnapshot(ctx, p.ID)
	}))
	eg.Go(util.DegradeSlice(ctx, t, "twitter_mentions", &r.TopMentions, func(ctx context.Context) ([]common.SocialMention, error) {
		return b.reader.RecentMentions(ctx, p.ID, twitterPlataforma, since, TopMentionsLimit)
	}))
	_ = eg.Wait()

	if snap != nil {
		r.TwitterUsername = snap.TwitterUsername
		r.FollowersCount = snap.FollowersCount
		r.SnapshotAt = snap.ComputedAt
	}
	return r
}
