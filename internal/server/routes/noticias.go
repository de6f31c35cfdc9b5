package routes

import (
	"net/http"
	"strings"

	"github.com/diretoriaja/portal/internal/server/middleware"
	"github.com/diretoriaja/portal/pkg/common"
	"github.com/diretoriaja/portal/pkg/store"

	"github.com/labstack/echo/v4"
)

// TopMinScore is the relevance floor of the top news listing.
const TopMinScore = 50

func GetNoticiasPoliticoHandler(c echo.Context) error {
	type noticiasParams struct {
		PoliticoID   int64   `param:"id" validate:"required"`
		Limit        int     `query:"limit" validate:"min=1,max=100"`
		MinScore     float64 `query:"min_score" validate:"min=0,max=100"`
		Diversificar bool    `query:"diversificar"`
	}

	params := &noticiasParams{Limit: 20, Diversificar: true}
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	builder := c.(*middleware.AppContext).App.Resume
	noticias, err := builder.News(c.Request().Context(), params.PoliticoID, params.Limit, params.MinScore, params.Diversificar)
	if err != nil {
		return respondError(c, err, msgPoliticoNotFound)
	}

	return c.JSON(http.StatusOK, noticias)
}

func GetTopNoticiasHandler(c echo.Context) error {
	type topNoticiasParams struct {
		PoliticoID int64 `param:"id" validate:"required"`
		Limit      int   `query:"limit" validate:"min=1,max=20"`
	}

	params := &topNoticiasParams{Limit: 5}
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	builder := c.(*middleware.AppContext).App.Resume
	noticias, err := builder.News(c.Request().Context(), params.PoliticoID, params.Limit, TopMinScore, false)
	if err != nil {
		return respondError(c, err, msgPoliticoNotFound)
	}

	return c.JSON(http.StatusOK, noticias)
}

func GetNoticiasPoliticaHandler(c echo.Context) error {
	reader := c.(*middleware.AppContext).App.Reader

	noticias, err := reader.NoticiasGerais(c.Request().Context(), 30)
	if err != nil {
		return respondError(c, err, msgNoticiaNotFound)
	}

	return c.JSON(http.StatusOK, orEmpty(noticias))
}

func GetNoticiasEstadoHandler(c echo.Context) error {
	type estadoParams struct {
		Estado string `param:"uf" validate:"required,len=2"`
		Limit  int    `query:"limit" validate:"min=1,max=100"`
	}

	params := &estadoParams{Limit: 30}
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	reader := c.(*middleware.AppContext).App.Reader
	noticias, err := reader.NoticiasEstado(c.Request().Context(), strings.ToUpper(params.Estado), params.Limit)
	if err != nil {
		return respondError(c, err, msgNoticiaNotFound)
	}

	return c.JSON(http.StatusOK, orEmpty(noticias))
}

func GetNoticiasCapitalHandler(c echo.Context) error {
	type capitalParams struct {
		Estado string `param:"uf" validate:"required,len=2"`
		Limit  int    `query:"limit" validate:"min=1,max=20"`
	}

	params := &capitalParams{Limit: 3}
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	reader := c.(*middleware.AppContext).App.Reader
	noticias, err := reader.NoticiasCapital(c.Request().Context(), strings.ToUpper(params.Estado), params.Limit)
	if err != nil {
		return respondError(c, err, msgNoticiaNotFound)
	}

	return c.JSON(http.StatusOK, orEmpty(noticias))
}

type noticiasCapitaisResponse struct {
	NoticiasPorEstado  map[string][]common.Noticia `json:"noticias_por_estado"`
	EstadosComNoticias []string                    `json:"estados_com_noticias"`
	TotalEstados       int                         `json:"total_estados"`
}

func GetNoticiasCapitaisHandler(c echo.Context) error {
	type capitaisParams struct {
		LimitPorCapital int `query:"limit_por_capital" validate:"min=1,max=10"`
	}

	params := &capitaisParams{LimitPorCapital: 3}
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	reader := c.(*middleware.AppContext).App.Reader
	porEstado, err := reader.NoticiasCapitais(c.Request().Context(), params.LimitPorCapital)
	if err != nil {
		return respondError(c, err, msgNoticiaNotFound)
	}

	estados := []string{}
	for _, uf := range store.Estados() {
		if _, ok := porEstado[uf]; ok {
			estados = append(estados, uf)
		}
	}

	return c.JSON(http.StatusOK, noticiasCapitaisResponse{
		NoticiasPorEstado:  porEstado,
		EstadosComNoticias: estados,
		TotalEstados:       len(estados),
	})
}

func GetNoticiasCidadeHandler(c echo.Context) error {
	type cidadeParams struct {
		Cidade string `param:"cidade" validate:"required"`
		Limit  int    `query:"limit" validate:"min=1,max=100"`
	}

	params := &cidadeParams{Limit: 20}
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	reader := c.(*middleware.AppContext).App.Reader
	noticias, err := reader.NoticiasCidade(c.Request().Context(), params.Cidade, params.Limit)
	if err != nil {
		return respondError(c, err, msgNoticiaNotFound)
	}

	return c.JSON(http.StatusOK, orEmpty(noticias))
}

func GetNoticiaAnaliseHandler(c echo.Context) error {
	type analiseParams struct {
		NoticiaID string `param:"id" validate:"required"`
	}

	params := new(analiseParams)
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	svc := c.(*middleware.AppContext).App.Relevance
	analise, err := svc.Analyze(c.Request().Context(), params.NoticiaID)
	if err != nil {
		return respondError(c, err, msgNoticiaNotFound)
	}

	return c.JSON(http.StatusOK, analise)
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
