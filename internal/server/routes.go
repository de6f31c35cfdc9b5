package server

import (
	"net/http"

	"github.com/diretoriaja/portal/internal/server/middleware"
	"github.com/diretoriaja/portal/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Figure routes
	e.GET("/politicos", routes.GetPoliticosHandler)
	e.GET("/politicos/:id", routes.GetPoliticoHandler)
	e.GET("/politicos/:id/resumo", routes.GetResumoHandler)
	e.GET("/politicos/:id/concorrentes", routes.GetConcorrentesHandler)
	e.GET("/politicos/:id/concorrentes/resumo", routes.GetConcorrentesResumoHandler)
	e.GET("/politicos/:id/concorrentes/noticias", routes.GetConcorrentesNoticiasHandler)
	e.GET("/politicos/:id/concorrentes/twitter_insights", routes.GetConcorrentesTwitterInsightsHandler)

	// News routes
	e.GET("/politicos/:id/noticias", routes.GetNoticiasPoliticoHandler)
	e.GET("/politicos/:id/noticias/top", routes.GetTopNoticiasHandler)
	e.GET("/noticias/politica", routes.GetNoticiasPoliticaHandler)
	e.GET("/noticias/estado/:uf", routes.GetNoticiasEstadoHandler)
	e.GET("/noticias/capital/:uf", routes.GetNoticiasCapitalHandler)
	e.GET("/noticias/capitais", routes.GetNoticiasCapitaisHandler)
	e.GET("/noticias/cidade/:cidade", routes.GetNoticiasCidadeHandler)
	e.GET("/noticias/:id/analise", routes.GetNoticiaAnaliseHandler)

	// Social routes
	e.GET("/politicos/:id/instagram", routes.GetInstagramHandler)
	e.GET("/politicos/:id/instagram/stats", routes.GetInstagramStatsHandler)
	e.GET("/politicos/:id/social", routes.GetSocialPostsHandler)
	e.GET("/politicos/:id/social_mentions", routes.GetSocialMentionsHandler)
	e.GET("/politicos/:id/mention_topics", routes.GetMentionTopicsHandler)
	e.GET("/politicos/:id/assuntos", routes.GetAssuntosHandler)

	// Court record and electoral routes
	e.GET("/politicos/:id/processos", routes.GetProcessosHandler)
	e.GET("/politicos/:id/doacoes", routes.GetDoacoesHandler)
	e.GET("/politicos/:id/filiacoes", routes.GetFiliacoesHandler)
	e.GET("/politicos/:id/candidaturas", routes.GetCandidaturasHandler)
	e.GET("/politicos/:id/resumo-processual", routes.GetResumoProcessualHandler)

	e.GET("/trending", routes.GetTrendingHandler)
	e.GET("/fontes", routes.GetFontesHandler)
	e.GET("/proxy/image", routes.ProxyImageHandler)

	// Admin routes
	e.POST("/coleta/executar", routes.ExecutarColetaHandler, middleware.AuthMiddleware, middleware.RequirePermission("coleta.execute"))
	e.GET("/coleta/logs", routes.GetColetaLogsHandler, middleware.AuthMiddleware, middleware.RequireAnyPermission("coleta.view", "coleta.execute"))
	e.GET("/consulta-processual/logs", routes.GetConsultaLogsHandler, middleware.AuthMiddleware, middleware.RequirePermission("consulta.view"))
	e.PUT("/politicos/:id/cpf", routes.UpdateCPFHandler, middleware.AuthMiddleware, middleware.RequirePermission("politico.update:cpf"))
	e.PUT("/fontes/:id/peso", routes.UpdateFontePesoHandler, middleware.AuthMiddleware, middleware.RequirePermission("fonte.update"))
}
