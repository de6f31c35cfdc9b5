package routes

import (
	"net/http"

	"github.com/diretoriaja/portal/internal/server/middleware"
	"github.com/diretoriaja/portal/pkg/legal"
	"github.com/diretoriaja/portal/pkg/store"

	"github.com/labstack/echo/v4"
)

func GetProcessosHandler(c echo.Context) error {
	type processosParams struct {
		PoliticoID int64  `param:"id" validate:"required"`
		Tribunal   string `query:"tribunal"`
		Tipo       string `query:"tipo"`
		Status     string `query:"status"`
		Limit      int    `query:"limit" validate:"min=1,max=200"`
	}

	params := &processosParams{Limit: 50}
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	svc := c.(*middleware.AppContext).App.Legal
	res, err := svc.Processos(c.Request().Context(), params.PoliticoID, store.ProcessoFilter{
		Tribunal: params.Tribunal,
		Tipo:     params.Tipo,
		Status:   params.Status,
	}, params.Limit)
	if err != nil {
		return respondError(c, err, msgPoliticoNotFound)
	}

	return c.JSON(http.StatusOK, res)
}

func GetDoacoesHandler(c echo.Context) error {
	type doacoesParams struct {
		PoliticoID int64  `param:"id" validate:"required"`
		Tipo       string `query:"tipo" validate:"oneof=feitas recebidas todas"`
		Eleicao    string `query:"eleicao"`
		Limit      int    `query:"limit" validate:"min=1,max=500"`
	}

	params := &doacoesParams{Tipo: string(legal.DoacoesTodas), Limit: 100}
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	svc := c.(*middleware.AppContext).App.Legal
	res, err := svc.Doacoes(c.Request().Context(), params.PoliticoID, legal.DoacaoTipo(params.Tipo), params.Eleicao, params.Limit)
	if err != nil {
		return respondError(c, err, msgPoliticoNotFound)
	}

	return c.JSON(http.StatusOK, res)
}

func GetFiliacoesHandler(c echo.Context) error {
	params := new(politicoParams)
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	svc := c.(*middleware.AppContext).App.Legal
	res, err := svc.Filiacoes(c.Request().Context(), params.PoliticoID)
	if err != nil {
		return respondError(c, err, msgPoliticoNotFound)
	}

	return c.JSON(http.StatusOK, res)
}

func GetCandidaturasHandler(c echo.Context) error {
	type candidaturasParams struct {
		PoliticoID int64  `param:"id" validate:"required"`
		Eleicao    string `query:"eleicao"`
	}

	params := new(candidaturasParams)
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	svc := c.(*middleware.AppContext).App.Legal
	res, err := svc.Candidaturas(c.Request().Context(), params.PoliticoID, params.Eleicao)
	if err != nil {
		return respondError(c, err, msgPoliticoNotFound)
	}

	return c.JSON(http.StatusOK, res)
}

func GetResumoProcessualHandler(c echo.Context) error {
	params := new(politicoParams)
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	svc := c.(*middleware.AppContext).App.Legal
	res, err := svc.Summary(c.Request().Context(), params.PoliticoID)
	if err != nil {
		return respondError(c, err, msgPoliticoNotFound)
	}

	return c.JSON(http.StatusOK, res)
}

func GetConsultaLogsHandler(c echo.Context) error {
	type consultaLogsParams struct {
		PoliticoID int64  `query:"politico_id" validate:"min=0"`
		Fonte      string `query:"fonte"`
		Limit      int    `query:"limit" validate:"min=1,max=200"`
	}

	params := &consultaLogsParams{Limit: 50}
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	var politicoID *int64
	if params.PoliticoID > 0 {
		politicoID = &params.PoliticoID
	}

	svc := c.(*middleware.AppContext).App.Legal
	logs, err := svc.ConsultaLogs(c.Request().Context(), politicoID, params.Fonte, params.Limit)
	if err != nil {
		return respondError(c, err, msgPoliticoNotFound)
	}

	return c.JSON(http.StatusOK, logs)
}

func UpdateCPFHandler(c echo.Context) error {
	type updateCPFParams struct {
		PoliticoID int64  `param:"id" validate:"required"`
		CPF        string `query:"cpf" validate:"required"`
	}

	params := new(updateCPFParams)
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	cpf, err := legal.NormalizeCPF(params.CPF)
	if err != nil {
		return respondError(c, err, msgPoliticoNotFound)
	}

	writer := c.(*middleware.AppContext).App.Writer
	if err := store.SetCPF(c.Request().Context(), writer, params.PoliticoID, cpf); err != nil {
		return respondError(c, err, msgPoliticoNotFound)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":   "ok",
		"mensagem": "CPF atualizado com sucesso",
	})
}
