package routes

import (
	"errors"
	"net/http"

	"github.com/diretoriaja/portal/internal/server/middleware"
	"github.com/diretoriaja/portal/pkg/store"

	"github.com/labstack/echo/v4"
)

func ProxyImageHandler(c echo.Context) error {
	type proxyParams struct {
		URL string `query:"url" validate:"required,url"`
	}

	params := new(proxyParams)
	if err := bind(c, params); err != nil {
		return invalidParams(c)
	}

	images := c.(*middleware.AppContext).App.Images
	if images == nil {
		return respondError(c, errors.Join(store.ErrUpstreamUnavailable, errors.New("image proxy disabled")), "")
	}

	obj, err := images.Fetch(c.Request().Context(), params.URL)
	if err != nil {
		return respondError(c, err, "")
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	c.Response().Header().Set("Access-Control-Allow-Origin", "*")
	return c.Blob(http.StatusOK, obj.ContentType, obj.Data)
}
