package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"civicpulse/internal/dto"
	apperrors "civicpulse/internal/errors"
	"civicpulse/internal/lifecycle"
	"civicpulse/internal/logger"
	"civicpulse/internal/middleware"
	"civicpulse/internal/models"
	"civicpulse/internal/services"
)

// currentActor builds the service Actor from the authenticated request.
// Returns ErrUnauthorized if no user is present.
func currentActor(c *gin.Context) (services.Actor, error) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		return services.Actor{}, apperrors.ErrUnauthorized
	}
	role, _ := c.Get(middleware.ContextRole)
	r, _ := role.(lifecycle.Role)
	return services.Actor{
		UserID: userID,
		Name:   c.GetString(middleware.ContextName),
		Role:   r,
		IP:     c.ClientIP(),
	}, nil
}

// respondOK writes the success envelope.
func respondOK[T any](c *gin.Context, status int, message string, data T) {
	c.JSON(status, dto.Envelope[T]{Success: true, Message: message, Data: data})
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, dto.ErrorResponse{
			Error: dto.ErrorDetail{Code: appErr.Code, Message: appErr.Message},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, dto.ErrorResponse{
		Error: dto.ErrorDetail{Code: apperrors.ErrInternalServer.Code, Message: apperrors.ErrInternalServer.Message},
	})
}

func bindError(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

func toUserDTO(u *models.User) dto.User {
	return dto.User{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Role:               u.Role,
		Department:         u.Department,
		WarningsCount:      u.WarningsCount,
		AppreciationsCount: u.AppreciationsCount,
	}
}

func toUserDTOs(users []models.User) []dto.User {
	out := make([]dto.User, 0, len(users))
	for i := range users {
		out = append(out, toUserDTO(&users[i]))
	}
	return out
}

func toFeedbackDTO(code string, f *models.Feedback) dto.Feedback {
	return dto.Feedback{
		ID:          f.ID,
		GrievanceID: code,
		Rating:      f.Rating,
		Comment:     f.Comment,
		GivenBy:     f.GivenBy,
		GivenByName: f.GivenByName,
		GivenAt:     f.GivenAt,
	}
}

// toGrievanceDTO exposes the public code as the grievance id and derives the
// SLA fields at the instant now.
func toGrievanceDTO(g *models.Grievance, now time.Time) dto.Grievance {
	out := dto.Grievance{
		ID:              g.Code,
		Title:           g.Title,
		Description:     g.Description,
		Category:        g.Category,
		Status:          g.Status,
		Priority:        g.Priority,
		SubmittedBy:     g.SubmittedBy,
		SubmittedAt:     g.SubmittedAt,
		Location:        g.Location(),
		Image:           g.Image,
		AssignedAt:      g.AssignedAt,
		Deadline:        g.Deadline,
		SLAHours:        lifecycle.SLAHours(g.Priority),
		SLAStatus:       lifecycle.SLAStatusAt(g.EffectiveDeadline(), g.ResolvedAt, now),
		Zone:            g.Zone,
		ResolutionNote:  g.ResolutionNote,
		ResolutionImage: g.ResolutionImage,
		ResolvedAt:      g.ResolvedAt,
		Timeline:        make([]lifecycle.TimelineEntry, 0, len(g.Timeline)),
	}
	if g.AssignedOfficerID != nil {
		out.AssignedOfficerID = *g.AssignedOfficerID
	}
	for _, e := range g.Timeline {
		out.Timeline = append(out.Timeline, lifecycle.TimelineEntry{
			Status:    e.Status,
			Timestamp: e.Timestamp,
			Message:   e.Message,
			Actor:     e.Actor,
		})
	}
	for i := range g.Feedbacks {
		out.Feedbacks = append(out.Feedbacks, toFeedbackDTO(g.Code, &g.Feedbacks[i]))
	}
	return out
}

func toGrievanceDTOs(grievances []models.Grievance, now time.Time) []dto.Grievance {
	out := make([]dto.Grievance, 0, len(grievances))
	for i := range grievances {
		out = append(out, toGrievanceDTO(&grievances[i], now))
	}
	return out
}

// Health reports liveness.
// @Summary     Health check
// @Tags        health
// @Produce     json
// @Success     200 {object} map[string]string
// @Router      /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
