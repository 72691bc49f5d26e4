package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"civicpulse/internal/pagination"
	"civicpulse/internal/services"
)

// AuditHandler lists recorded audit events.
type AuditHandler struct {
	auditService services.AuditServicer
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditService services.AuditServicer) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ListAuditLogs returns audit events, newest first
// @Summary     List audit logs
// @Tags        audit
// @Produce     json
// @Security    BearerAuth
// @Param       page     query int false "Page number"
// @Param       pageSize query int false "Items per page"
// @Success     200 {object} dto.Envelope[pagination.PageResponse[models.AuditLog]]
// @Failure     403 {object} dto.ErrorResponse "Forbidden"
// @Router      /audit-logs [get]
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	resp, err := h.auditService.List(page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", resp)
}
