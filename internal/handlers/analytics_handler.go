package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"civicpulse/internal/services"
)

// AnalyticsHandler serves the dashboard aggregates.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// respond writes v or the error produced while computing it.
func respond[T any](c *gin.Context, v T, err error) {
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", v)
}

// Summary returns grievance counts across the city
// @Summary     Analytics summary
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} dto.Envelope[dto.AnalyticsData]
// @Router      /grievances/analytics/all [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	v, err := h.analyticsService.Summary(c.Request.Context())
	respond(c, v, err)
}

// OfficerSummary returns grievance counts for one officer
// @Summary     Officer analytics summary
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Officer ID"
// @Success     200 {object} dto.Envelope[dto.AnalyticsData]
// @Router      /grievances/analytics/officer/{id} [get]
func (h *AnalyticsHandler) OfficerSummary(c *gin.Context) {
	v, err := h.analyticsService.OfficerSummary(c.Request.Context(), c.Param("id"))
	respond(c, v, err)
}

// Complete returns every analytics view in one response
// @Summary     Complete analytics
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} dto.Envelope[dto.ComplaintAnalytics]
// @Router      /grievances/analytics/complete [get]
func (h *AnalyticsHandler) Complete(c *gin.Context) {
	v, err := h.analyticsService.Complete(c.Request.Context())
	respond(c, v, err)
}

// Zones returns per-zone counts
// @Summary     Zone analytics
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} dto.Envelope[[]dto.ZoneAnalytics]
// @Router      /grievances/analytics/zones [get]
func (h *AnalyticsHandler) Zones(c *gin.Context) {
	v, err := h.analyticsService.Zones(c.Request.Context())
	respond(c, v, err)
}

// SLA returns deadline performance across the city
// @Summary     SLA metrics
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} dto.Envelope[dto.SLAMetrics]
// @Router      /grievances/analytics/sla [get]
func (h *AnalyticsHandler) SLA(c *gin.Context) {
	v, err := h.analyticsService.SLA(c.Request.Context())
	respond(c, v, err)
}

// OfficerSLA returns deadline performance for one officer
// @Summary     Officer SLA metrics
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Officer ID"
// @Success     200 {object} dto.Envelope[dto.SLAMetrics]
// @Router      /grievances/analytics/sla/officer/{id} [get]
func (h *AnalyticsHandler) OfficerSLA(c *gin.Context) {
	v, err := h.analyticsService.OfficerSLA(c.Request.Context(), c.Param("id"))
	respond(c, v, err)
}

// HeatMap returns the complaint heat map
// @Summary     Complaint heat map
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} dto.Envelope[[]dto.HeatMapPoint]
// @Router      /grievances/analytics/heatmap [get]
func (h *AnalyticsHandler) HeatMap(c *gin.Context) {
	v, err := h.analyticsService.HeatMap(c.Request.Context())
	respond(c, v, err)
}

// GrievanceAnalysis returns the detailed admin breakdown
// @Summary     Grievance analysis
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} dto.Envelope[dto.GrievanceAnalysis]
// @Router      /grievances/analytics/grievance-analysis [get]
func (h *AnalyticsHandler) GrievanceAnalysis(c *gin.Context) {
	v, err := h.analyticsService.GrievanceAnalysis(c.Request.Context())
	respond(c, v, err)
}

// OfficerGrievanceAnalysis returns the detailed breakdown for one officer
// @Summary     Officer grievance analysis
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Officer ID"
// @Success     200 {object} dto.Envelope[dto.GrievanceAnalysis]
// @Router      /grievances/analytics/grievance-analysis/officer/{id} [get]
func (h *AnalyticsHandler) OfficerGrievanceAnalysis(c *gin.Context) {
	v, err := h.analyticsService.OfficerGrievanceAnalysis(c.Request.Context(), c.Param("id"))
	respond(c, v, err)
}
