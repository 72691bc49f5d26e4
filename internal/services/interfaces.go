package services

import (
	"context"
	"time"

	"civicpulse/internal/dto"
	"civicpulse/internal/lifecycle"
	"civicpulse/internal/models"
	"civicpulse/internal/pagination"
)

// Actor identifies the authenticated caller of a service operation.
type Actor struct {
	UserID string
	Name   string
	Role   lifecycle.Role
	IP     string
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Login(email string, role lifecycle.Role, password string) (*models.User, error)
	Register(name, email string, role lifecycle.Role, department, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	ListUsers() ([]models.User, error)
	ListUsersByRole(role lifecycle.Role) ([]models.User, error)
	AddWarning(actor Actor, userID string) (*models.User, error)
	AddAppreciation(actor Actor, userID string) (*models.User, error)
	SeedDefaultUsers() error
}

// GrievanceFilter narrows a grievance listing. Zero values match everything.
type GrievanceFilter struct {
	SubmittedBy       string
	AssignedOfficerID string
	Status            lifecycle.Status
}

// CreateGrievanceInput carries the citizen-provided fields of a new grievance.
type CreateGrievanceInput struct {
	Title       string
	Description string
	Category    string
	Priority    lifecycle.Priority
	Location    *lifecycle.Location
	Image       string
}

// GrievanceUpdate is a partial update. Nil fields are left unchanged.
type GrievanceUpdate struct {
	Status            *lifecycle.Status
	Priority          *lifecycle.Priority
	AssignedOfficerID *string
	AssignedAt        *time.Time
	Deadline          *time.Time
	ResolutionNote    *string
	ResolutionImage   *string
	ResolvedAt        *time.Time
	LogMessage        string
}

// GrievanceServicer defines the contract for grievance lifecycle operations.
type GrievanceServicer interface {
	CreateGrievance(actor Actor, in CreateGrievanceInput) (*models.Grievance, error)
	GetGrievance(code string) (*models.Grievance, error)
	ListGrievances(filter GrievanceFilter) ([]models.Grievance, error)
	UpdateGrievance(actor Actor, code string, upd GrievanceUpdate) (*models.Grievance, error)
	AddFeedback(actor Actor, code string, rating int, comment string) (*models.Feedback, error)
	ListFeedback(code string) ([]models.Feedback, error)
	AuthorizeImage(actor Actor, code string) (*models.Grievance, error)
	AttachImage(actor Actor, code, path string) (string, *models.Grievance, error)
	CalculateDeadline(code string) (*models.Grievance, error)
}

// AnalyticsServicer computes dashboard aggregates over grievances.
type AnalyticsServicer interface {
	Summary(ctx context.Context) (*dto.AnalyticsData, error)
	OfficerSummary(ctx context.Context, officerID string) (*dto.AnalyticsData, error)
	SLA(ctx context.Context) (*dto.SLAMetrics, error)
	OfficerSLA(ctx context.Context, officerID string) (*dto.SLAMetrics, error)
	Zones(ctx context.Context) ([]dto.ZoneAnalytics, error)
	HeatMap(ctx context.Context) ([]dto.HeatMapPoint, error)
	GrievanceAnalysis(ctx context.Context) (*dto.GrievanceAnalysis, error)
	OfficerGrievanceAnalysis(ctx context.Context, officerID string) (*dto.GrievanceAnalysis, error)
	Complete(ctx context.Context) (*dto.ComplaintAnalytics, error)
	Performance(ctx context.Context, officerID string) (*dto.Performance, error)
	Invalidate(ctx context.Context)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
	List(page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error)
}
