package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"civicpulse/internal/dto"
	apperrors "civicpulse/internal/errors"
	"civicpulse/internal/middleware"
	"civicpulse/internal/services"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer, auditService services.AuditServicer) *AuthHandler {
	return &AuthHandler{userService: userService, auditService: auditService}
}

// Login handles user login
// @Summary     Login user
// @Description Authenticate by email and role and get a token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body dto.LoginRequest true "Login credentials"
// @Success     200 {object} dto.Envelope[dto.AuthResponse] "User authenticated and token generated"
// @Failure     400 {object} dto.ErrorResponse "Invalid credentials for selected role"
// @Failure     500 {object} dto.ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	user, err := h.userService.Login(req.Email, req.Role, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	respondOK(c, http.StatusOK, "Login successful", dto.AuthResponse{
		Token:   token,
		User:    toUserDTO(user),
		Message: "Login successful",
	})
}

// Register handles user registration
// @Summary     Register a new user
// @Description Register a citizen, officer or admin. Email is unique per role.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body dto.RegisterRequest true "User registration data"
// @Success     201 {object} dto.Envelope[dto.AuthResponse] "User registered and token generated"
// @Failure     400 {object} dto.ErrorResponse "Invalid input or email already registered"
// @Failure     500 {object} dto.ErrorResponse "Server error"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	user, err := h.userService.Register(req.Name, req.Email, req.Role, req.Department, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(user.ID, services.AuditActionUserRegister, "user", user.ID, c.ClientIP(),
		map[string]any{"role": user.Role})

	respondOK(c, http.StatusCreated, "Registration successful", dto.AuthResponse{
		Token:   token,
		User:    toUserDTO(user),
		Message: "Registration successful",
	})
}

// Me returns the authenticated user's profile
// @Summary     Current user
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} dto.Envelope[dto.User] "User profile"
// @Failure     401 {object} dto.ErrorResponse "Unauthorized"
// @Router      /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(actor.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", toUserDTO(user))
}
