package middleware

import (
	"github.com/diretoriaja/portal/internal/proxy"
	"github.com/diretoriaja/portal/internal/queue"
	"github.com/diretoriaja/portal/pkg/legal"
	"github.com/diretoriaja/portal/pkg/relevance"
	"github.com/diretoriaja/portal/pkg/resume"
	"github.com/diretoriaja/portal/pkg/store"
	"github.com/diretoriaja/portal/pkg/topics"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/labstack/echo/v4"
)

type AppUser struct {
	UserID      int64
	Role        string
	Permissions []string
}

// App carries the services shared by every request. Coleta and Images may
// be nil when the broker or the proxy are not configured. Key may be nil
// when no JWKS endpoint is set, in which case only the master key
// authenticates.
type App struct {
	Reader    *store.Reader
	Writer    store.Writer
	Relevance *relevance.Service
	Topics    *topics.Service
	Resume    *resume.Builder
	Legal     *legal.Service
	Coleta    *queue.Trigger
	Images    *proxy.ImageProxy

	Key          keyfunc.Keyfunc
	MasterAPIKey string
}

type AppContext struct {
	echo.Context
	App  *App
	User *AppUser
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app, nil}
			return next(cc)
		}
	}
}
