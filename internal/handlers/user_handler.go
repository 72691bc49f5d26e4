package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "civicpulse/internal/errors"
	"civicpulse/internal/lifecycle"
	"civicpulse/internal/services"
)

// UserHandler serves user listings and officer management.
type UserHandler struct {
	userService      services.UserServicer
	analyticsService services.AnalyticsServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer, analyticsService services.AnalyticsServicer) *UserHandler {
	return &UserHandler{userService: userService, analyticsService: analyticsService}
}

// ListUsers returns every user
// @Summary     List users
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} dto.Envelope[[]dto.User]
// @Failure     401 {object} dto.ErrorResponse "Unauthorized"
// @Router      /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", toUserDTOs(users))
}

// ListUsersByRole returns users holding one role
// @Summary     List users by role
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       role path string true "CITIZEN, OFFICER or ADMIN"
// @Success     200 {object} dto.Envelope[[]dto.User]
// @Failure     400 {object} dto.ErrorResponse "Unknown role"
// @Router      /users/role/{role} [get]
func (h *UserHandler) ListUsersByRole(c *gin.Context) {
	role := lifecycle.Role(c.Param("role"))
	if !role.Valid() {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown role"))
		return
	}

	users, err := h.userService.ListUsersByRole(role)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", toUserDTOs(users))
}

// GetUser returns one user
// @Summary     Get user
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "User ID"
// @Success     200 {object} dto.Envelope[dto.User]
// @Failure     404 {object} dto.ErrorResponse "User not found"
// @Router      /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", toUserDTO(user))
}

// AddWarning records a warning against an officer
// @Summary     Warn officer
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "User ID"
// @Success     200 {object} dto.Envelope[dto.User]
// @Failure     403 {object} dto.ErrorResponse "Forbidden"
// @Failure     404 {object} dto.ErrorResponse "User not found"
// @Router      /users/{id}/warnings [post]
func (h *UserHandler) AddWarning(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.AddWarning(actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Warning recorded", toUserDTO(user))
}

// AddAppreciation records an appreciation for an officer
// @Summary     Appreciate officer
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "User ID"
// @Success     200 {object} dto.Envelope[dto.User]
// @Failure     403 {object} dto.ErrorResponse "Forbidden"
// @Failure     404 {object} dto.ErrorResponse "User not found"
// @Router      /users/{id}/appreciations [post]
func (h *UserHandler) AddAppreciation(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.AddAppreciation(actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Appreciation recorded", toUserDTO(user))
}

// GetPerformance returns an officer's performance record
// @Summary     Officer performance
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Officer ID"
// @Success     200 {object} dto.Envelope[dto.Performance]
// @Failure     404 {object} dto.ErrorResponse "User not found"
// @Router      /users/{id}/performance [get]
func (h *UserHandler) GetPerformance(c *gin.Context) {
	perf, err := h.analyticsService.Performance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", perf)
}
