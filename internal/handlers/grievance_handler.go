package handlers

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"civicpulse/internal/ai"
	"civicpulse/internal/dto"
	apperrors "civicpulse/internal/errors"
	"civicpulse/internal/lifecycle"
	"civicpulse/internal/logger"
	"civicpulse/internal/services"
	"civicpulse/internal/storage"
)

// GrievanceHandler handles grievance-related requests.
type GrievanceHandler struct {
	grievanceService services.GrievanceServicer
	auditService     services.AuditServicer
	images           storage.ImageStore
	assistant        ai.Assistant
	maxUploadBytes   int64
	now              func() time.Time
}

// NewGrievanceHandler creates a new GrievanceHandler.
func NewGrievanceHandler(
	grievanceService services.GrievanceServicer,
	auditService services.AuditServicer,
	images storage.ImageStore,
	assistant ai.Assistant,
	maxUploadBytes int64,
) *GrievanceHandler {
	return &GrievanceHandler{
		grievanceService: grievanceService,
		auditService:     auditService,
		images:           images,
		assistant:        assistant,
		maxUploadBytes:   maxUploadBytes,
		now:              time.Now,
	}
}

// CreateGrievance files a new grievance for the authenticated citizen
// @Summary     Submit a grievance
// @Tags        grievances
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body dto.CreateGrievanceRequest true "Grievance details"
// @Success     201 {object} dto.Envelope[dto.Grievance] "Grievance submitted"
// @Failure     400 {object} dto.ErrorResponse "Invalid input"
// @Failure     401 {object} dto.ErrorResponse "Unauthorized"
// @Failure     503 {object} dto.ErrorResponse "Could not allocate a grievance code"
// @Router      /grievances [post]
func (h *GrievanceHandler) CreateGrievance(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req dto.CreateGrievanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	grievance, err := h.grievanceService.CreateGrievance(actor, services.CreateGrievanceInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		Location:    req.Location,
		Image:       req.Image,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor.UserID, services.AuditActionGrievanceCreate, "grievance", grievance.Code, actor.IP,
		map[string]any{"category": grievance.Category, "priority": grievance.Priority})

	respondOK(c, http.StatusCreated, "Grievance submitted successfully", toGrievanceDTO(grievance, h.now()))
}

// ListGrievances returns every grievance, newest first
// @Summary     List grievances
// @Tags        grievances
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} dto.Envelope[[]dto.Grievance]
// @Failure     401 {object} dto.ErrorResponse "Unauthorized"
// @Router      /grievances [get]
func (h *GrievanceHandler) ListGrievances(c *gin.Context) {
	h.list(c, services.GrievanceFilter{})
}

// ListByUser returns the grievances a citizen submitted
// @Summary     List grievances by submitter
// @Tags        grievances
// @Produce     json
// @Security    BearerAuth
// @Param       userId path string true "Citizen ID"
// @Success     200 {object} dto.Envelope[[]dto.Grievance]
// @Router      /grievances/user/{userId} [get]
func (h *GrievanceHandler) ListByUser(c *gin.Context) {
	h.list(c, services.GrievanceFilter{SubmittedBy: c.Param("userId")})
}

// ListByOfficer returns the grievances assigned to an officer
// @Summary     List grievances by officer
// @Tags        grievances
// @Produce     json
// @Security    BearerAuth
// @Param       officerId path string true "Officer ID"
// @Success     200 {object} dto.Envelope[[]dto.Grievance]
// @Router      /grievances/officer/{officerId} [get]
func (h *GrievanceHandler) ListByOfficer(c *gin.Context) {
	h.list(c, services.GrievanceFilter{AssignedOfficerID: c.Param("officerId")})
}

// ListByStatus returns the grievances in one status
// @Summary     List grievances by status
// @Tags        grievances
// @Produce     json
// @Security    BearerAuth
// @Param       status path string true "Grievance status"
// @Success     200 {object} dto.Envelope[[]dto.Grievance]
// @Failure     400 {object} dto.ErrorResponse "Unknown status"
// @Router      /grievances/status/{status} [get]
func (h *GrievanceHandler) ListByStatus(c *gin.Context) {
	status := lifecycle.Status(strings.ToUpper(c.Param("status")))
	if !status.Valid() {
		respondWithError(c, apperrors.ErrInvalidStatus)
		return
	}
	h.list(c, services.GrievanceFilter{Status: status})
}

func (h *GrievanceHandler) list(c *gin.Context, filter services.GrievanceFilter) {
	grievances, err := h.grievanceService.ListGrievances(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", toGrievanceDTOs(grievances, h.now()))
}

// GetGrievance returns one grievance by its GRV- code
// @Summary     Get grievance
// @Tags        grievances
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Grievance code"
// @Success     200 {object} dto.Envelope[dto.Grievance]
// @Failure     404 {object} dto.ErrorResponse "Grievance not found"
// @Router      /grievances/{id} [get]
func (h *GrievanceHandler) GetGrievance(c *gin.Context) {
	grievance, err := h.grievanceService.GetGrievance(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", toGrievanceDTO(grievance, h.now()))
}

// UpdateGrievance applies a partial update and appends a timeline entry when
// the status changes
// @Summary     Update grievance
// @Tags        grievances
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                     true "Grievance code"
// @Param       request body dto.UpdateGrievanceRequest true "Fields to change"
// @Success     200 {object} dto.Envelope[dto.Grievance]
// @Failure     400 {object} dto.ErrorResponse "Invalid input"
// @Failure     403 {object} dto.ErrorResponse "Forbidden"
// @Failure     404 {object} dto.ErrorResponse "Grievance not found"
// @Failure     409 {object} dto.ErrorResponse "Status change is not allowed"
// @Router      /grievances/{id} [patch]
func (h *GrievanceHandler) UpdateGrievance(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req dto.UpdateGrievanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	grievance, err := h.grievanceService.UpdateGrievance(actor, c.Param("id"), services.GrievanceUpdate{
		Status:            req.Status,
		Priority:          req.Priority,
		AssignedOfficerID: req.AssignedOfficerID,
		AssignedAt:        req.AssignedAt,
		Deadline:          req.Deadline,
		ResolutionNote:    req.ResolutionNote,
		ResolutionImage:   req.ResolutionImage,
		ResolvedAt:        req.ResolvedAt,
		LogMessage:        req.LogMessage,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Grievance updated successfully", toGrievanceDTO(grievance, h.now()))
}

// SubmitFeedback records the citizen's rating of a resolved grievance
// @Summary     Submit feedback
// @Tags        grievances
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Grievance code"
// @Param       request body dto.FeedbackRequest true "Rating and comment"
// @Success     201 {object} dto.Envelope[dto.Feedback]
// @Failure     400 {object} dto.ErrorResponse "Invalid rating"
// @Failure     404 {object} dto.ErrorResponse "Grievance not found"
// @Failure     409 {object} dto.ErrorResponse "Feedback not allowed"
// @Router      /grievances/{id}/feedback [post]
func (h *GrievanceHandler) SubmitFeedback(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidRating, err.Error()))
		return
	}

	code := c.Param("id")
	feedback, err := h.grievanceService.AddFeedback(actor, code, req.Rating, req.Comment)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor.UserID, services.AuditActionFeedback, "grievance", code, actor.IP,
		map[string]any{"rating": req.Rating})

	respondOK(c, http.StatusCreated, "Feedback submitted successfully", toFeedbackDTO(code, feedback))
}

// ListFeedback returns the feedback left on a grievance
// @Summary     List feedback
// @Tags        grievances
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Grievance code"
// @Success     200 {object} dto.Envelope[[]dto.Feedback]
// @Failure     404 {object} dto.ErrorResponse "Grievance not found"
// @Router      /grievances/{id}/feedback [get]
func (h *GrievanceHandler) ListFeedback(c *gin.Context) {
	code := c.Param("id")
	feedbacks, err := h.grievanceService.ListFeedback(code)
	if err != nil {
		respondWithError(c, err)
		return
	}

	out := make([]dto.Feedback, 0, len(feedbacks))
	for i := range feedbacks {
		out = append(out, toFeedbackDTO(code, &feedbacks[i]))
	}
	respondOK(c, http.StatusOK, "", out)
}

// UploadImage stores an image for a grievance. The first upload becomes the
// grievance image, later ones the resolution image.
// @Summary     Upload grievance image
// @Tags        grievances
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       id   path     string true "Grievance code"
// @Param       file formData file   true "Image file"
// @Success     200 {object} dto.Envelope[dto.UploadResult]
// @Failure     400 {object} dto.ErrorResponse "Only image files are allowed"
// @Failure     413 {object} dto.ErrorResponse "File too large"
// @Router      /grievances/{id}/upload [post]
func (h *GrievanceHandler) UploadImage(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.ErrEmptyUpload)
		return
	}
	if header.Size == 0 {
		respondWithError(c, apperrors.ErrEmptyUpload)
		return
	}
	if header.Size > h.maxUploadBytes {
		respondWithError(c, apperrors.ErrUploadTooLarge)
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondWithError(c, apperrors.ErrInvalidUpload)
		return
	}

	code := c.Param("id")
	if _, err := h.grievanceService.AuthorizeImage(actor, code); err != nil {
		respondWithError(c, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	if int64(len(data)) > h.maxUploadBytes {
		respondWithError(c, apperrors.ErrUploadTooLarge)
		return
	}

	path, err := h.images.Save(c.Request.Context(), header.Filename, contentType, data)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	field, _, err := h.grievanceService.AttachImage(actor, code, path)
	if err != nil {
		if delErr := h.images.Delete(c.Request.Context(), path); delErr != nil {
			logger.Get().Warnw("failed to remove orphaned upload", "code", code, "path", path, "error", delErr)
		}
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor.UserID, services.AuditActionImageUpload, "grievance", code, actor.IP,
		map[string]any{"field": field, "path": path})
	logger.Get().Infow("grievance image stored", "code", code, "field", field, "bytes", len(data))

	respondOK(c, http.StatusOK, "File uploaded successfully", dto.UploadResult{Path: path, Field: field})
}

// CalculateSLA fills in the priority-based deadline when none is set
// @Summary     Calculate SLA deadline
// @Tags        grievances
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Grievance code"
// @Success     200 {object} dto.Envelope[dto.Grievance]
// @Failure     404 {object} dto.ErrorResponse "Grievance not found"
// @Router      /grievances/{id}/sla/calculate [post]
func (h *GrievanceHandler) CalculateSLA(c *gin.Context) {
	grievance, err := h.grievanceService.CalculateDeadline(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "SLA deadline calculated", toGrievanceDTO(grievance, h.now()))
}

// DraftResolution asks the AI service for a short resolution note
// @Summary     Draft resolution note
// @Tags        ai
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Grievance code"
// @Success     200 {object} dto.Envelope[dto.ResolutionDraft]
// @Failure     404 {object} dto.ErrorResponse "Grievance not found"
// @Router      /grievances/{id}/resolution-draft [post]
func (h *GrievanceHandler) DraftResolution(c *gin.Context) {
	grievance, err := h.grievanceService.GetGrievance(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	note := h.assistant.DraftResolution(c.Request.Context(), grievance.Title, grievance.Description)
	respondOK(c, http.StatusOK, "", dto.ResolutionDraft{Note: note})
}
