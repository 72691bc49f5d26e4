package services

import (
	"encoding/json"

	"gorm.io/gorm"

	apperrors "civicpulse/internal/errors"
	"civicpulse/internal/logger"
	"civicpulse/internal/models"
	"civicpulse/internal/pagination"
)

// Audit actions.
const (
	AuditActionGrievanceCreate = "grievance.create"
	AuditActionGrievanceUpdate = "grievance.update"
	AuditActionGrievanceAssign = "grievance.assign"
	AuditActionFeedback        = "grievance.feedback"
	AuditActionImageUpload     = "grievance.image"
	AuditActionUserRegister    = "user.register"
	AuditActionUserWarning     = "user.warning"
	AuditActionAppreciation    = "user.appreciation"
)

// auditService handles audit log recording.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log changes", "error", err, "action", action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      changesJSON,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}

// List returns audit entries newest first.
func (s *auditService) List(page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error) {
	resp, err := pagination.Find[models.AuditLog](s.db.Model(&models.AuditLog{}), page, "created_at DESC, id DESC")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &resp, nil
}
