package handlers

import (
	"github.com/gin-gonic/gin"

	"civicpulse/internal/lifecycle"
	"civicpulse/internal/middleware"
)

// Router bundles the handlers mounted under /api.
type Router struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Grievance *GrievanceHandler
	Analytics *AnalyticsHandler
	AI        *AIHandler
	Audit     *AuditHandler
}

// Register mounts every API route on api.
func (h *Router) Register(api *gin.RouterGroup) {
	api.GET("/health", Health)

	// Public auth routes
	auth := api.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/register", h.Auth.Register)

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/me", h.Auth.Me)

	adminOnly := middleware.RequireRoles(lifecycle.RoleAdmin)
	staff := middleware.RequireRoles(lifecycle.RoleAdmin, lifecycle.RoleOfficer)

	users := protected.Group("/users")
	users.GET("", h.Users.ListUsers)
	users.GET("/role/:role", h.Users.ListUsersByRole)
	users.GET("/:id", h.Users.GetUser)
	users.GET("/:id/performance", h.Users.GetPerformance)
	users.POST("/:id/warnings", adminOnly, h.Users.AddWarning)
	users.POST("/:id/appreciations", adminOnly, h.Users.AddAppreciation)

	grievances := protected.Group("/grievances")
	grievances.POST("", h.Grievance.CreateGrievance)
	grievances.GET("", h.Grievance.ListGrievances)
	grievances.GET("/user/:userId", h.Grievance.ListByUser)
	grievances.GET("/officer/:officerId", h.Grievance.ListByOfficer)
	grievances.GET("/status/:status", h.Grievance.ListByStatus)
	grievances.GET("/:id", h.Grievance.GetGrievance)
	grievances.PATCH("/:id", h.Grievance.UpdateGrievance)
	grievances.POST("/:id/feedback", h.Grievance.SubmitFeedback)
	grievances.GET("/:id/feedback", h.Grievance.ListFeedback)
	grievances.POST("/:id/upload", h.Grievance.UploadImage)
	grievances.POST("/:id/sla/calculate", staff, h.Grievance.CalculateSLA)
	grievances.POST("/:id/resolution-draft", staff, h.Grievance.DraftResolution)

	analytics := grievances.Group("/analytics")
	analytics.GET("/all", h.Analytics.Summary)
	analytics.GET("/officer/:id", h.Analytics.OfficerSummary)
	analytics.GET("/complete", h.Analytics.Complete)
	analytics.GET("/zones", h.Analytics.Zones)
	analytics.GET("/sla", h.Analytics.SLA)
	analytics.GET("/sla/officer/:id", h.Analytics.OfficerSLA)
	analytics.GET("/heatmap", h.Analytics.HeatMap)
	analytics.GET("/grievance-analysis", h.Analytics.GrievanceAnalysis)
	analytics.GET("/grievance-analysis/officer/:id", h.Analytics.OfficerGrievanceAnalysis)

	protected.POST("/ai/categorize", h.AI.Categorize)
	protected.GET("/audit-logs", adminOnly, h.Audit.ListAuditLogs)
}
