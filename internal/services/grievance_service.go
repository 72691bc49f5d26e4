package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "civicpulse/internal/errors"
	"civicpulse/internal/lifecycle"
	"civicpulse/internal/logger"
	"civicpulse/internal/models"
	"civicpulse/internal/uuid"
)

// maxCodeAttempts bounds the search for an unused GRV- code.
const maxCodeAttempts = 10

// Invalidator is notified after every grievance write.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// grievanceService handles the grievance lifecycle.
type grievanceService struct {
	db          *gorm.DB
	audit       AuditServicer
	invalidator Invalidator
	now         func() time.Time
	newCode     func() string
}

// NewGrievanceService creates a new GrievanceServicer. invalidator may be nil.
func NewGrievanceService(db *gorm.DB, audit AuditServicer, invalidator Invalidator) GrievanceServicer {
	return &grievanceService{
		db:          db,
		audit:       audit,
		invalidator: invalidator,
		now:         time.Now,
		newCode:     func() string { return lifecycle.NewGrievanceCode(nil) },
	}
}

func (s *grievanceService) withTimeline(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Timeline", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Feedbacks", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
}

func (s *grievanceService) changed() {
	if s.invalidator != nil {
		s.invalidator.Invalidate(context.Background())
	}
}

// CreateGrievance files a new grievance in PENDING with a single submission entry.
func (s *grievanceService) CreateGrievance(actor Actor, in CreateGrievanceInput) (*models.Grievance, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	priority := in.Priority
	if priority == "" {
		priority = lifecycle.PriorityMedium
	}
	if !priority.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown priority")
	}

	location := lifecycle.UnknownLocation
	if in.Location != nil {
		location = *in.Location
		if location.Address == "" {
			location.Address = lifecycle.UnknownLocation.Address
		}
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = truncate(description, 60)
	}

	code, err := s.allocateCode()
	if err != nil {
		return nil, err
	}

	now := s.now()
	grievance := &models.Grievance{
		Code:            code,
		Title:           title,
		Description:     description,
		Category:        lifecycle.NormalizeCategory(in.Category),
		Status:          lifecycle.StatusPending,
		Priority:        priority,
		SubmittedBy:     actor.UserID,
		SubmittedAt:     now,
		LocationLat:     location.Lat,
		LocationLng:     location.Lng,
		LocationAddress: location.Address,
		Zone:            lifecycle.ZoneFor(location.Lat, location.Lng),
		Image:           in.Image,
	}
	entry := lifecycle.SubmissionEntry(actor.Name, now)
	grievance.Timeline = []models.TimelineEntry{timelineRow(entry)}

	if err := s.db.Create(grievance).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("grievance submitted", "code", code, "category", grievance.Category, "submitted_by", actor.UserID)
	s.changed()
	return s.GetGrievance(code)
}

func (s *grievanceService) allocateCode() (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code := s.newCode()
		var count int64
		if err := s.db.Unscoped().Model(&models.Grievance{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", apperrors.ErrCodeExhausted
}

// GetGrievance loads a grievance with its timeline and feedback by public code.
func (s *grievanceService) GetGrievance(code string) (*models.Grievance, error) {
	var grievance models.Grievance
	if err := s.withTimeline(s.db).Where("code = ?", code).First(&grievance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGrievanceNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &grievance, nil
}

// ListGrievances returns grievances newest first.
func (s *grievanceService) ListGrievances(filter GrievanceFilter) ([]models.Grievance, error) {
	query := s.withTimeline(s.db).Order("submitted_at DESC")
	if filter.SubmittedBy != "" {
		query = query.Where("submitted_by = ?", filter.SubmittedBy)
	}
	if filter.AssignedOfficerID != "" {
		query = query.Where("assigned_officer_id = ?", filter.AssignedOfficerID)
	}
	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, apperrors.ErrInvalidStatus
		}
		query = query.Where("status = ?", filter.Status)
	}

	var grievances []models.Grievance
	if err := query.Find(&grievances).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return grievances, nil
}

// UpdateGrievance applies a partial update. A status change appends exactly one
// timeline entry; updates that keep the status append nothing.
func (s *grievanceService) UpdateGrievance(actor Actor, code string, upd GrievanceUpdate) (*models.Grievance, error) {
	grievance, err := s.GetGrievance(code)
	if err != nil {
		return nil, err
	}
	if err := authorizeUpdate(actor, grievance, upd); err != nil {
		return nil, err
	}

	now := s.now()
	changes := map[string]any{}
	var entry *lifecycle.TimelineEntry

	if upd.Status != nil && *upd.Status != grievance.Status {
		to := *upd.Status
		if !to.Valid() {
			return nil, apperrors.ErrInvalidStatus
		}
		if !lifecycle.CanTransition(grievance.Status, to) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidTransition,
				"Cannot change status from "+string(grievance.Status)+" to "+string(to))
		}
		changes["status"] = map[string]any{"from": grievance.Status, "to": to}
		e := lifecycle.TransitionEntry(to, upd.LogMessage, actor.Name, now)
		entry = &e

		switch to {
		case lifecycle.StatusResolved:
			if upd.ResolvedAt == nil {
				grievance.ResolvedAt = &now
			}
		case lifecycle.StatusReopened:
			grievance.ResolvedAt = nil
		}
		grievance.Status = to
	}

	if upd.Priority != nil {
		if !upd.Priority.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown priority")
		}
		grievance.Priority = *upd.Priority
		changes["priority"] = *upd.Priority
	}

	if upd.AssignedOfficerID != nil {
		if err := s.ensureOfficer(*upd.AssignedOfficerID); err != nil {
			return nil, err
		}
		officerID := *upd.AssignedOfficerID
		grievance.AssignedOfficerID = &officerID
		assignedAt := now
		if upd.AssignedAt != nil {
			assignedAt = *upd.AssignedAt
		}
		grievance.AssignedAt = &assignedAt
		if grievance.Deadline == nil && upd.Deadline == nil {
			deadline := lifecycle.SLADeadline(grievance.SubmittedAt, grievance.Priority)
			grievance.Deadline = &deadline
		}
		changes["assignedOfficerId"] = officerID
	}
	if upd.Deadline != nil {
		grievance.Deadline = upd.Deadline
	}
	if upd.ResolutionNote != nil {
		grievance.ResolutionNote = *upd.ResolutionNote
	}
	if upd.ResolutionImage != nil {
		grievance.ResolutionImage = *upd.ResolutionImage
	}
	if upd.ResolvedAt != nil {
		grievance.ResolvedAt = upd.ResolvedAt
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Timeline", "Feedbacks").Save(grievance).Error; err != nil {
			return err
		}
		if entry != nil {
			row := timelineRow(*entry)
			row.GrievanceID = grievance.ID
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if len(changes) > 0 {
		action := AuditActionGrievanceUpdate
		if _, ok := changes["assignedOfficerId"]; ok {
			action = AuditActionGrievanceAssign
		}
		s.audit.Log(actor.UserID, action, "grievance", code, actor.IP, changes)
	}

	s.changed()
	return s.GetGrievance(code)
}

// authorizeUpdate restricts officers to their own assignments and citizens to
// reopening their own grievances.
func authorizeUpdate(actor Actor, g *models.Grievance, upd GrievanceUpdate) error {
	switch actor.Role {
	case lifecycle.RoleAdmin:
		return nil
	case lifecycle.RoleOfficer:
		if err := authorizeOwnership(actor, g); err != nil {
			return err
		}
		if upd.AssignedOfficerID != nil && *upd.AssignedOfficerID != actor.UserID {
			return apperrors.WithMessage(apperrors.ErrForbidden, "Only admins can reassign grievances")
		}
		return nil
	case lifecycle.RoleCitizen:
		if err := authorizeOwnership(actor, g); err != nil {
			return err
		}
		onlyReopen := upd.Status != nil && *upd.Status == lifecycle.StatusReopened &&
			upd.Priority == nil && upd.AssignedOfficerID == nil && upd.AssignedAt == nil &&
			upd.Deadline == nil && upd.ResolutionNote == nil && upd.ResolutionImage == nil && upd.ResolvedAt == nil
		if !onlyReopen {
			return apperrors.WithMessage(apperrors.ErrForbidden, "Citizens may only reopen their own grievances")
		}
		return nil
	}
	return apperrors.ErrForbidden
}

func (s *grievanceService) ensureOfficer(userID string) error {
	if !uuid.IsValid(userID) {
		return apperrors.ErrUserNotFound
	}
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if user.Role != lifecycle.RoleOfficer {
		return apperrors.ErrNotAnOfficer
	}
	return nil
}

// AddFeedback records a citizen rating on a resolved grievance. Only one
// feedback entry is accepted per grievance.
func (s *grievanceService) AddFeedback(actor Actor, code string, rating int, comment string) (*models.Feedback, error) {
	if !lifecycle.ValidRating(rating) {
		return nil, apperrors.ErrInvalidRating
	}
	grievance, err := s.GetGrievance(code)
	if err != nil {
		return nil, err
	}
	if actor.Role == lifecycle.RoleCitizen && grievance.SubmittedBy != actor.UserID {
		return nil, apperrors.ErrForbidden
	}
	if !lifecycle.FeedbackAllowed(grievance.Status, len(grievance.Feedbacks)) {
		return nil, apperrors.ErrFeedbackNotAllowed
	}

	feedback := &models.Feedback{
		GrievanceID: grievance.ID,
		Rating:      rating,
		Comment:     strings.TrimSpace(comment),
		GivenBy:     actor.UserID,
		GivenByName: actor.Name,
		GivenAt:     s.now(),
	}
	if err := s.db.Create(feedback).Error; err != nil {
		// a concurrent submission won the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrFeedbackNotAllowed
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.changed()
	return feedback, nil
}

// ListFeedback returns the feedback left on a grievance.
func (s *grievanceService) ListFeedback(code string) ([]models.Feedback, error) {
	grievance, err := s.GetGrievance(code)
	if err != nil {
		return nil, err
	}
	if grievance.Feedbacks == nil {
		return []models.Feedback{}, nil
	}
	return grievance.Feedbacks, nil
}

// AuthorizeImage returns the grievance when actor may attach images to it.
func (s *grievanceService) AuthorizeImage(actor Actor, code string) (*models.Grievance, error) {
	grievance, err := s.GetGrievance(code)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwnership(actor, grievance); err != nil {
		return nil, err
	}
	return grievance, nil
}

// authorizeOwnership limits officers to their assignments and citizens to their
// own submissions.
func authorizeOwnership(actor Actor, g *models.Grievance) error {
	switch actor.Role {
	case lifecycle.RoleAdmin:
		return nil
	case lifecycle.RoleOfficer:
		if g.AssignedOfficerID == nil || *g.AssignedOfficerID != actor.UserID {
			return apperrors.WithMessage(apperrors.ErrForbidden, "Grievance is not assigned to you")
		}
		return nil
	case lifecycle.RoleCitizen:
		if g.SubmittedBy != actor.UserID {
			return apperrors.ErrForbidden
		}
		return nil
	}
	return apperrors.ErrForbidden
}

// AttachImage stores an uploaded image path. The first upload becomes the
// grievance image; later uploads become the resolution image.
func (s *grievanceService) AttachImage(actor Actor, code, path string) (string, *models.Grievance, error) {
	grievance, err := s.AuthorizeImage(actor, code)
	if err != nil {
		return "", nil, err
	}

	field := "image"
	if grievance.Image == "" {
		grievance.Image = path
	} else {
		field = "resolutionImage"
		grievance.ResolutionImage = path
	}

	if err := s.db.Model(grievance).Updates(map[string]any{
		"image":            grievance.Image,
		"resolution_image": grievance.ResolutionImage,
	}).Error; err != nil {
		return "", nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return field, grievance, nil
}

// CalculateDeadline fills in the SLA deadline implied by priority when none is set.
func (s *grievanceService) CalculateDeadline(code string) (*models.Grievance, error) {
	grievance, err := s.GetGrievance(code)
	if err != nil {
		return nil, err
	}
	if grievance.Deadline != nil {
		return grievance, nil
	}
	deadline := lifecycle.SLADeadline(grievance.SubmittedAt, grievance.Priority)
	if err := s.db.Model(grievance).Update("deadline", deadline).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	grievance.Deadline = &deadline
	s.changed()
	return grievance, nil
}

func timelineRow(e lifecycle.TimelineEntry) models.TimelineEntry {
	return models.TimelineEntry{
		Status:    e.Status,
		Timestamp: e.Timestamp,
		Message:   e.Message,
		Actor:     e.Actor,
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}
