package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups every HTTP handler of the service
type Handlers struct {
	Health       *HealthHandler
	Entities     *EntitySet
	Analytics    *AnalyticsHandlers
	Applications *ApplicationHandlers
	Sync         *SyncHandlers
	Documents    *DocumentHandlers
	WebSocket    *WebSocketHandler
}

// RegisterRoutes mounts probes, metrics and the /api/v1 surface on router
func RegisterRoutes(router *gin.Engine, h *Handlers) {
	router.GET("/health", h.Health.Health)
	router.GET("/ready", h.Health.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		h.Entities.Properties.Register(api.Group("/properties"))
		h.Entities.Tenants.Register(api.Group("/tenants"))
		h.Entities.WorkOrders.Register(api.Group("/workOrders"))
		h.Entities.Transactions.Register(api.Group("/transactions"))

		docs := api.Group("/documents")
		h.Entities.Documents.Register(docs)
		docs.POST("/:id/payload", h.Documents.UploadPayload)
		docs.GET("/:id/payload", h.Documents.GetPayload)

		apps := api.Group("/applications")
		{
			apps.GET("", h.Applications.List)
			apps.GET("/stats", h.Applications.Stats)
			apps.POST("", h.Entities.Applications.Create)
			apps.GET("/:id", h.Entities.Applications.Get)
			apps.PUT("/:id", h.Entities.Applications.Update)
			apps.DELETE("/:id", h.Entities.Applications.Delete)
			apps.POST("/:id/status", h.Applications.ChangeStatus)
			apps.POST("/:id/convert", h.Applications.Convert)
		}

		sync := api.Group("/sync")
		{
			sync.POST("/localstorage", h.Sync.ImportSnapshot)
			sync.POST("/refresh", h.Sync.Refresh)
			sync.GET("/status", h.Sync.Status)
		}

		analytics := api.Group("/analytics")
		{
			analytics.GET("/dashboard", h.Analytics.GetDashboard)
			analytics.GET("/dashboard/export", h.Analytics.ExportDashboardReport)
			analytics.GET("/property-types", h.Analytics.GetPropertyTypes)
			analytics.GET("/rankings", h.Analytics.GetRankings)
			analytics.GET("/portfolio", h.Analytics.GetPortfolio)
			analytics.GET("/correlations", h.Analytics.GetCorrelations)
			analytics.GET("/financial", h.Analytics.GetFinancial)
			analytics.GET("/expenses", h.Analytics.GetExpenses)
			analytics.GET("/performance", h.Analytics.GetPerformance)
			analytics.GET("/maintenance", h.Analytics.GetMaintenance)
			analytics.GET("/leases", h.Analytics.GetLeases)
			analytics.GET("/collection", h.Analytics.GetCollection)
			analytics.GET("/projections", h.Analytics.GetProjections)
		}

		api.GET("/notifications", h.Analytics.GetNotifications)
		api.GET("/export/:collection", h.Analytics.ExportCollection)
		api.POST("/assistant/ask", Ask)

		if h.WebSocket != nil {
			api.GET("/ws/notifications", h.WebSocket.Handle)
		}
	}
}
