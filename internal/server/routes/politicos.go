package routes

import (
	"net/http"

	"github.com/diretoriaja/portal/internal/server/middleware"
	"github.com/diretoriaja/portal/pkg/common"
	"github.com/diretoriaja/portal/pkg/resume"

	"github.com/labstack/echo/v4"
)

type politicoParams struct {
	PoliticoID int64 `param:"id" validate:"required"`
}

func GetPoliticosHandler(c echo.Context) error {
	reader := c.(*middleware.AppContext).App.Reader

	politicos, err := reader.Politicos(c.Request().Context())
	if err != nil {
		return respondError(c, err, msgPoliticoNotFound)
	}
	if politicos == nil {
		politicos = []common.Politico{}
	}

	return c.JSON(http.StatusOK, politicos)
}

func GetPoliticoHandler(c echo.Context) error {
	params := new(politicoParams)
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	reader := c.(*middleware.AppContext).App.Reader
	p, err := reader.Politico(c.Request().Context(), params.PoliticoID)
	if err != nil {
		return respondError(c, err, msgPoliticoNotFound)
	}

	return c.JSON(http.StatusOK, p)
}

func GetResumoHandler(c echo.Context) error {
	params := new(politicoParams)
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	builder := c.(*middleware.AppContext).App.Resume
	res, err := builder.Build(c.Request().Context(), params.PoliticoID, resume.DefaultOptions())
	if err != nil {
		return respondError(c, err, msgPoliticoNotFound)
	}

	return c.JSON(http.StatusOK, res)
}

func GetConcorrentesHandler(c echo.Context) error {
	params := new(politicoParams)
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	reader := c.(*middleware.AppContext).App.Reader
	concorrentes, err := reader.Concorrentes(c.Request().Context(), params.PoliticoID)
	if err != nil {
		return respondError(c, err, msgPoliticoNotFound)
	}

	return c.JSON(http.StatusOK, concorrentes)
}

func GetConcorrentesResumoHandler(c echo.Context) error {
	type concorrentesResumoParams struct {
		PoliticoID    int64 `param:"id" validate:"required"`
		Limit         int   `query:"limit" validate:"min=1,max=20"`
		LimitNoticias int   `query:"limit_noticias" validate:"omitempty,min=1,max=20"`
	}

	params := &concorrentesResumoParams{Limit: resume.DefaultOptions().NewsLimit}
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}
	if params.LimitNoticias > 0 {
		params.Limit = params.LimitNoticias
	}

	builder := c.(*middleware.AppContext).App.Resume
	res, err := builder.Competitors(c.Request().Context(), params.PoliticoID, params.Limit)
	if err != nil {
		return respondError(c, err, msgPoliticoNotFound)
	}

	return c.JSON(http.StatusOK, res)
}

func GetConcorrentesNoticiasHandler(c echo.Context) error {
	type concorrentesNoticiasParams struct {
		PoliticoID int64 `param:"id" validate:"required"`
		Limit      int   `query:"limit" validate:"min=1,max=50"`
	}

	params := &concorrentesNoticiasParams{Limit: 10}
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	builder := c.(*middleware.AppContext).App.Resume
	res, err := builder.CompetitorNews(c.Request().Context(), params.PoliticoID, params.Limit)
	if err != nil {
		return respondError(c, err, msgPoliticoNotFound)
	}

	return c.JSON(http.StatusOK, res)
}

func GetConcorrentesTwitterInsightsHandler(c echo.Context) error {
	type twitterInsightsParams struct {
		PoliticoID int64 `param:"id" validate:"required"`
		DaysBack   int   `query:"days_back" validate:"min=1,max=30"`
	}

	params := &twitterInsightsParams{DaysBack: resume.DefaultDaysBack}
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	builder := c.(*middleware.AppContext).App.Resume
	res, err := builder.TwitterInsights(c.Request().Context(), params.PoliticoID, params.DaysBack)
	if err != nil {
		return respondError(c, err, msgPoliticoNotFound)
	}

	return c.JSON(http.StatusOK, orEmpty(res))
}
