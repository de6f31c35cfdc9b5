package routes

import (
	"net/http"

	"github.com/diretoriaja/portal/internal/server/middleware"
	"github.com/diretoriaja/portal/pkg/common"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// MaxSocialMentions caps the mentions listing.
const MaxSocialMentions = 8

// instagramStatsWindow is how many recent posts the stats are computed over.
const instagramStatsWindow = 100

func GetInstagramHandler(c echo.Context) error {
	type instagramParams struct {
		PoliticoID int64 `param:"id" validate:"required"`
		Limit      int   `query:"limit" validate:"min=1,max=50"`
	}

	params := &instagramParams{Limit: 10}
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	reader := c.(*middleware.AppContext).App.Reader
	posts, err := reader.SocialPostsWithFallback(c.Request().Context(), params.PoliticoID, params.Limit)
	if err != nil {
		return respondError(c, err, msgPoliticoNotFound)
	}

	return c.JSON(http.StatusOK, orEmpty(posts))
}

type instagramStats struct {
	PoliticoID      int64              `json:"politico_id"`
	TotalPosts      int                `json:"total_posts"`
	TotalLikes      int64              `json:"total_likes"`
	TotalComments   int64              `json:"total_comments"`
	MediaEngagement float64            `json:"media_engagement"`
	TopPost         *common.SocialPost `json:"top_post"`
}

func newInstagramStats(politicoID int64, posts []common.SocialPost) instagramStats {
	stats := instagramStats{PoliticoID: politicoID, TotalPosts: len(posts)}
	if len(posts) == 0 {
		return stats
	}
	for _, p := range posts {
		stats.TotalLikes += p.Likes
		stats.TotalComments += p.Comments
	}
	stats.MediaEngagement = decimal.NewFromInt(stats.TotalLikes + stats.TotalComments).
		Div(decimal.NewFromInt(int64(len(posts)))).
		Round(2).
		InexactFloat64()
	top := posts[0]
	stats.TopPost = &top
	return stats
}

func GetInstagramStatsHandler(c echo.Context) error {
	params := new(politicoParams)
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	reader := c.(*middleware.AppContext).App.Reader
	posts, err := reader.SocialPostsWithFallback(c.Request().Context(), params.PoliticoID, instagramStatsWindow)
	if err != nil {
		return respondError(c, err, msgPoliticoNotFound)
	}

	return c.JSON(http.StatusOK, newInstagramStats(params.PoliticoID, posts))
}

func GetSocialPostsHandler(c echo.Context) error {
	type socialParams struct {
		PoliticoID int64  `param:"id" validate:"required"`
		Plataforma string `query:"plataforma" validate:"omitempty,oneof=instagram twitter facebook tiktok youtube"`
		Limit      int    `query:"limit" validate:"min=1,max=50"`
	}

	params := &socialParams{Limit: 10}
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	reader := c.(*middleware.AppContext).App.Reader
	posts, err := reader.SocialPosts(c.Request().Context(), params.PoliticoID, params.Plataforma, params.Limit)
	if err != nil {
		return respondError(c, err, msgPoliticoNotFound)
	}

	return c.JSON(http.StatusOK, orEmpty(posts))
}

func GetSocialMentionsHandler(c echo.Context) error {
	type mentionsParams struct {
		PoliticoID int64  `param:"id" validate:"required"`
		Plataforma string `query:"plataforma" validate:"omitempty,oneof=bluesky twitter google_trends google_search"`
		Limit      int    `query:"limit" validate:"min=1"`
	}

	params := &mentionsParams{Limit: MaxSocialMentions}
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	ctx := c.Request().Context()
	reader := c.(*middleware.AppContext).App.Reader

	if _, err := reader.Politico(ctx, params.PoliticoID); err != nil {
		return respondError(c, err, msgPoliticoNotFound)
	}

	mentions, err := reader.SocialMentions(ctx, params.PoliticoID, params.Plataforma, min(params.Limit, MaxSocialMentions))
	if err != nil {
		return respondError(c, err, msgPoliticoNotFound)
	}

	return c.JSON(http.StatusOK, orEmpty(mentions))
}

func GetMentionTopicsHandler(c echo.Context) error {
	params := new(politicoParams)
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	svc := c.(*middleware.AppContext).App.Topics
	stats, err := svc.Topics(c.Request().Context(), params.PoliticoID)
	if err != nil {
		return respondError(c, err, msgPoliticoNotFound)
	}

	return c.JSON(http.StatusOK, orEmpty(stats))
}

func GetAssuntosHandler(c echo.Context) error {
	type assuntosParams struct {
		PoliticoID int64 `param:"id" validate:"required"`
		Limite     int   `query:"limite" validate:"min=1,max=50"`
	}

	params := &assuntosParams{Limite: 10}
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	svc := c.(*middleware.AppContext).App.Topics
	res, err := svc.Assuntos(c.Request().Context(), params.PoliticoID, params.Limite)
	if err != nil {
		return respondError(c, err, msgPoliticoNotFound)
	}

	return c.JSON(http.StatusOK, res)
}
