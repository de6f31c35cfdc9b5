package store

import (
	"context"
	"time"

	"github.com/diretoriaja/portal/pkg/common"
)

// SocialPosts reads the unified collection. An empty plataforma matches
// every platform.
func (r *Reader) SocialPosts(ctx context.Context, politicoID int64, plataforma string, limit int) ([]common.SocialPost, error) {
	filters := []Filter{Eq("politico_id", politicoID)}
	if plataforma != "" {
		filters = append(filters, Eq("plataforma", plataforma))
	}
	return find(ctx, r.gw, CollectionSocialPosts, Query{
		Filters: filters,
		OrderBy: []Order{Desc("engagement_score")},
		Limit:   limit,
	}, DecodeSocialPost)
}

// InstagramPosts reads the legacy collection.
func (r *Reader) InstagramPosts(ctx context.Context, politicoID int64, limit int) ([]common.SocialPost, error) {
	return find(ctx, r.gw, CollectionInstagramPosts, Query{
		Filters: []Filter{Eq("politico_id", politicoID)},
		OrderBy: []Order{Desc("engagement_score")},
		Limit:   limit,
	}, DecodeSocialPost)
}

// SocialPostsWithFallback reads instagram posts from the unified collection
// and falls back to the legacy one when the unified read fails or is empty.
func (r *Reader) SocialPostsWithFallback(ctx context.Context, politicoID int64, limit int) ([]common.SocialPost, error) {
	return WithFallback(ctx,
		func(ctx context.Context) ([]common.SocialPost, error) {
			return r.SocialPosts(ctx, politicoID, "instagram", limit)
		},
		func(ctx context.Context) ([]common.SocialPost, error) {
			return r.InstagramPosts(ctx, politicoID, limit)
		},
		func(posts []common.SocialPost) bool { return len(posts) == 0 },
	)
}

// CountSocialPosts counts instagram posts with the same fallback policy as
// SocialPostsWithFallback.
func (r *Reader) CountSocialPosts(ctx context.Context, politicoID int64) (int64, error) {
	return WithFallback(ctx,
		func(ctx context.Context) (int64, error) {
			return r.gw.Count(ctx, CollectionSocialPosts, []Filter{
				Eq("politico_id", politicoID),
				Eq("plataforma", "instagram"),
			})
		},
		func(ctx context.Context) (int64, error) {
			return r.gw.Count(ctx, CollectionInstagramPosts, []Filter{Eq("politico_id", politicoID)})
		},
		func(n int64) bool { return n == 0 },
	)
}

// SocialMentions returns mentions of a figure, most engaging first.
func (r *Reader) SocialMentions(ctx context.Context, politicoID int64, plataforma string, limit int) ([]common.SocialMention, error) {
	filters := []Filter{Eq("politico_id", politicoID)}
	if plataforma != "" {
		filters = append(filters, Eq("plataforma", plataforma))
	}
	return find(ctx, r.gw, CollectionSocialMentions, Query{
		Filters: filters,
		OrderBy: []Order{Desc("engagement_score")},
		Limit:   limit,
	}, DecodeSocialMention)
}

// RecentMentions returns the most engaging mentions on one platform posted
// at or after since.
func (r *Reader) RecentMentions(ctx context.Context, politicoID int64, plataforma string, since time.Time, limit int) ([]common.SocialMention, error) {
	return find(ctx, r.gw, CollectionSocialMentions, Query{
		Filters: []Filter{
			Eq("politico_id", politicoID),
			Eq("plataforma", plataforma),
			Gte("posted_at", since),
		},
		OrderBy: []Order{Desc("engagement_score")},
		Limit:   limit,
	}, DecodeSocialMention)
}

// MentionsByAssunto returns the newest mentions about one subject.
func (r *Reader) MentionsByAssunto(ctx context.Context, politicoID int64, assunto string, limit int) ([]common.SocialMention, error) {
	return find(ctx, r.gw, CollectionSocialMentions, Query{
		Filters: []Filter{Eq("politico_id", politicoID), Eq("assunto", assunto)},
		OrderBy: []Order{Desc("posted_at")},
		Limit:   limit,
	}, DecodeSocialMention)
}

func (r *Reader) CountMentions(ctx context.Context, politicoID int64) (int64, error) {
	return r.gw.Count(ctx, CollectionSocialMentions, []Filter{Eq("politico_id", politicoID)})
}

// MentionTopics returns topic rollups ordered by mention volume.
func (r *Reader) MentionTopics(ctx context.Context, politicoID int64, limit int) ([]common.MentionTopic, error) {
	return find(ctx, r.gw, CollectionMentionTopics, Query{
		Filters: []Filter{Eq("politico_id", politicoID)},
		OrderBy: []Order{Desc("total_mencoes")},
		Limit:   limit,
	}, DecodeMentionTopic)
}

// TwitterSnapshot returns the newest follower snapshot of a figure, or nil
// when none was collected.
func (r *Reader) TwitterSnapshot(ctx context.Context, politicoID int64) (*common.TwitterSnapshot, error) {
	rows, err := r.gw.Find(ctx, CollectionTwitterInsights, Query{
		Filters: []Filter{Eq("politico_id", politicoID)},
		OrderBy: []Order{Desc("computed_at")},
		Limit:   1,
	})
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	snap := DecodeTwitterSnapshot(rows[0])
	return &snap, nil
}
