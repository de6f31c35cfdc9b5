package routes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/diretoriaja/portal/internal/proxy"
	"github.com/diretoriaja/portal/pkg/leaselock"
	"github.com/diretoriaja/portal/pkg/logger"
	"github.com/diretoriaja/portal/pkg/store"

	"github.com/labstack/echo/v4"
)

const (
	msgPoliticoNotFound = "Político não encontrado"
	msgNoticiaNotFound  = "Notícia não encontrada"
	msgFonteNotFound    = "Fonte não encontrada"
	msgInvalidParams    = "Invalid request params"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable,omitempty"`
}

// bind reads path and query parameters for every method and validates them.
// echo's Bind only reads the query string on GET, DELETE and HEAD.
func bind(c echo.Context, params any) error {
	b := &echo.DefaultBinder{}
	if err := b.BindPathParams(c, params); err != nil {
		return err
	}
	if err := b.BindQueryParams(c, params); err != nil {
		return err
	}
	return c.Validate(params)
}

func invalidParams(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidParams, Code: "validation"})
}

// respondError maps a service error to its HTTP response. notFound is the
// message sent for store.ErrNotFound.
func respondError(c echo.Context, err error, notFound string) error {
	var status *proxy.StatusError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: notFound, Code: "not_found"})
	case errors.Is(err, store.ErrValidation):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: validationMessage(err), Code: "validation"})
	case errors.Is(err, leaselock.ErrBusy):
		return c.JSON(http.StatusConflict, errorResponse{
			Error: "Coleta já iniciada recentemente, aguarde antes de tentar novamente",
			Code:  "busy",
		})
	case errors.Is(err, proxy.ErrForbiddenHost):
		return c.JSON(http.StatusForbidden, errorResponse{Error: "Domínio não permitido", Code: "forbidden"})
	case errors.Is(err, proxy.ErrTooLarge):
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "Imagem excede o tamanho máximo", Code: "too_large"})
	case errors.Is(err, proxy.ErrTimeout):
		return c.JSON(http.StatusGatewayTimeout, errorResponse{Error: "Timeout ao carregar imagem", Code: "timeout"})
	case errors.As(err, &status):
		return c.JSON(status.Code, errorResponse{Error: "Erro ao carregar imagem", Code: "origin_status"})
	case errors.Is(err, store.ErrUpstreamUnavailable):
		logger.Warn("[Server] Upstream unavailable", "path", c.Path(), "err", err)
		return c.JSON(http.StatusServiceUnavailable, errorResponse{
			Error:     "Serviço de dados indisponível",
			Code:      "upstream_unavailable",
			Retryable: true,
		})
	}

	logger.Error("[Server] Request failed", "path", c.Path(), "err", err)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal server error", Code: "internal"})
}

// validationMessage drops the sentinel text so clients see the reason only.
func validationMessage(err error) string {
	msg := err.Error()
	msg = strings.TrimSuffix(msg, ": "+store.ErrValidation.Error())
	msg = strings.TrimPrefix(msg, store.ErrValidation.Error()+"\n")
	return msg
}
