package routes

import (
	"fmt"
	"net/http"

	"github.com/diretoriaja/portal/internal/queue"
	"github.com/diretoriaja/portal/internal/server/middleware"
	"github.com/diretoriaja/portal/pkg/store"

	"github.com/labstack/echo/v4"
)

func ExecutarColetaHandler(c echo.Context) error {
	type executarParams struct {
		Tipo   string `query:"tipo"`
		DryRun bool   `query:"dry_run"`
	}

	params := &executarParams{Tipo: queue.DefaultTipo}
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	trigger := c.(*middleware.AppContext).App.Coleta
	if trigger == nil {
		return respondError(c, fmt.Errorf("%w: %w", store.ErrUpstreamUnavailable, queue.ErrNoBroker), "")
	}

	ack, err := trigger.Trigger(c.Request().Context(), params.Tipo, params.DryRun)
	if err != nil {
		return respondError(c, err, "")
	}

	return c.JSON(http.StatusAccepted, ack)
}

func GetColetaLogsHandler(c echo.Context) error {
	type coletaLogsParams struct {
		Limit int `query:"limit" validate:"min=1,max=200"`
	}

	params := &coletaLogsParams{Limit: 50}
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	reader := c.(*middleware.AppContext).App.Reader
	logs, err := reader.ColetaLogs(c.Request().Context(), params.Limit)
	if err != nil {
		return respondError(c, err, "")
	}

	return c.JSON(http.StatusOK, orEmpty(logs))
}

func GetTrendingHandler(c echo.Context) error {
	type trendingParams struct {
		Category string `query:"category" validate:"omitempty,oneof=politica twitter google"`
	}

	params := new(trendingParams)
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	reader := c.(*middleware.AppContext).App.Reader
	trending, err := reader.TrendingTopics(c.Request().Context(), params.Category)
	if err != nil {
		return respondError(c, err, "")
	}

	return c.JSON(http.StatusOK, orEmpty(trending))
}

func GetFontesHandler(c echo.Context) error {
	reader := c.(*middleware.AppContext).App.Reader

	fontes, err := reader.Fontes(c.Request().Context())
	if err != nil {
		return respondError(c, err, "")
	}

	return c.JSON(http.StatusOK, orEmpty(fontes))
}

func UpdateFontePesoHandler(c echo.Context) error {
	type fontePesoParams struct {
		FonteID            string   `param:"id" json:"-" validate:"required"`
		PesoConfiabilidade *float64 `json:"peso_confiabilidade" validate:"required"`
	}

	params := new(fontePesoParams)
	b := &echo.DefaultBinder{}
	if err := b.BindPathParams(c, params); err != nil {
		return invalidParams(c)
	}
	if err := b.BindBody(c, params); err != nil {
		return invalidParams(c)
	}
	if err := c.Validate(params); err != nil {
		return invalidParams(c)
	}

	writer := c.(*middleware.AppContext).App.Writer
	if err := store.SetFontePeso(c.Request().Context(), writer, params.FonteID, *params.PesoConfiabilidade); err != nil {
		return respondError(c, err, msgFonteNotFound)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":   "ok",
		"mensagem": fmt.Sprintf("Peso atualizado para %v", *params.PesoConfiabilidade),
	})
}
