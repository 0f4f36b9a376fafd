package handler

import (
	_ "github.com/Tofuswang/journey/docs"
	"github.com/Tofuswang/journey/internal/middleware"
	"github.com/Tofuswang/journey/internal/web"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterConfig struct {
	Templates    *web.Templates
	AllowOrigins []string

	// TrustedProxies may report the client IP via X-Forwarded-For.
	// Nil trusts none, so the rate limiter keys on the peer address.
	TrustedProxies []string

	// SubmitPerMin and SubmitBurst throttle POSTs per client IP; 0 disables.
	SubmitPerMin int
	SubmitBurst  int
}

// Router wires every page, API and ops route onto a new gin engine.
func (h *Handler) Router(cfg RouterConfig) *gin.Engine {
	registerValidation()

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		panic("trusted proxies: " + err.Error())
	}
	router.Use(middleware.RequestLogger(h.logger), gin.Recovery())
	router.Use(middleware.CORS(cfg.AllowOrigins))
	if cfg.Templates == nil {
		tmpl, err := web.Load()
		if err != nil {
			panic("load templates: " + err.Error())
		}
		cfg.Templates = tmpl
	}
	router.HTMLRender = cfg.Templates

	submitLimit := middleware.SubmitRateLimit(cfg.SubmitPerMin, cfg.SubmitBurst)

	router.GET("/", h.Home)
	router.GET("/journeys/new", h.NewJourneyForm)
	router.POST("/journeys", submitLimit, h.SubmitJourney)
	router.GET("/about", h.About)
	router.GET("/legal/:page", h.Legal)

	api := router.Group("/api")
	{
		api.POST("/journeys", submitLimit, h.CreateJourney)
		api.GET("/journeys", h.ListJourneys)
		api.GET("/journeys/:id", h.GetJourney)
		api.GET("/journeys/:id/csv", h.DownloadCSV)
		api.GET("/journeys/:id/chart", h.GetChart)
		api.GET("/journeys/:id/chart.svg", h.GetChartSVG)
		api.GET("/stats", h.GetStats)
		api.GET("/prompt-template", h.PromptTemplate)
	}

	router.GET("/healthz", h.Healthz)
	router.GET("/readyz", h.Readyz)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.NoRoute(h.NotFound)

	return router
}
