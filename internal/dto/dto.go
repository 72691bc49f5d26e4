// Package dto defines the JSON shapes exchanged between the CivicPulse API,
// its HTTP client and the client-side store.
package dto

import (
	"time"

	"civicpulse/internal/lifecycle"
)

// Envelope wraps every successful API response.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// ErrorDetail is the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is returned for every failed API call.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// User is the public view of an account.
type User struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	Email              string         `json:"email"`
	Role               lifecycle.Role `json:"role"`
	Department         string         `json:"department,omitempty"`
	AverageRating      float64        `json:"averageRating,omitempty"`
	FeedbackCount      int            `json:"feedbackCount,omitempty"`
	WarningsCount      int            `json:"warningsCount,omitempty"`
	AppreciationsCount int            `json:"appreciationsCount,omitempty"`
}

// LoginRequest authenticates by email and role. Password is only checked for
// accounts registered with one.
type LoginRequest struct {
	Email    string         `json:"email" binding:"required,email,max=255"`
	Role     lifecycle.Role `json:"role" binding:"required,user_role"`
	Password string         `json:"password,omitempty" binding:"max=128"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Name       string         `json:"name" binding:"required,max=100"`
	Email      string         `json:"email" binding:"required,email,max=255"`
	Role       lifecycle.Role `json:"role" binding:"required,user_role"`
	Department string         `json:"department,omitempty" binding:"max=100"`
	Password   string         `json:"password,omitempty" binding:"max=128"`
}

// AuthResponse is returned by login and registration.
type AuthResponse struct {
	Token   string `json:"token"`
	User    User   `json:"user"`
	Message string `json:"message"`
}

// Feedback is a rating left by a citizen.
type Feedback struct {
	ID          uint      `json:"id,omitempty"`
	GrievanceID string    `json:"grievanceId"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	GivenBy     string    `json:"givenBy"`
	GivenByName string    `json:"givenByName,omitempty"`
	GivenAt     time.Time `json:"givenAt"`
}

// FeedbackRequest is the body of a feedback submission.
type FeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty" binding:"max=1000"`
}

// Grievance is the public view of a grievance. ID is the GRV- code.
type Grievance struct {
	ID                string                    `json:"id"`
	Title             string                    `json:"title"`
	Description       string                    `json:"description"`
	Category          string                    `json:"category"`
	Status            lifecycle.Status          `json:"status"`
	Priority          lifecycle.Priority        `json:"priority"`
	SubmittedBy       string                    `json:"submittedBy"`
	SubmittedAt       time.Time                 `json:"submittedAt"`
	Location          lifecycle.Location        `json:"location"`
	Image             string                    `json:"image,omitempty"`
	AssignedOfficerID string                    `json:"assignedOfficerId,omitempty"`
	AssignedAt        *time.Time                `json:"assignedAt,omitempty"`
	Deadline          *time.Time                `json:"deadline,omitempty"`
	SLAHours          int                       `json:"slaHours,omitempty"`
	SLAStatus         lifecycle.SLAStatus       `json:"slaStatus,omitempty"`
	Zone              string                    `json:"zone,omitempty"`
	ResolutionNote    string                    `json:"resolutionNote,omitempty"`
	ResolutionImage   string                    `json:"resolutionImage,omitempty"`
	ResolvedAt        *time.Time                `json:"resolvedAt,omitempty"`
	Timeline          []lifecycle.TimelineEntry `json:"timeline"`
	Feedbacks         []Feedback                `json:"feedbacks,omitempty"`
}

// CreateGrievanceRequest is the body of a grievance submission.
type CreateGrievanceRequest struct {
	Title       string              `json:"title" binding:"max=200"`
	Description string              `json:"description" binding:"required,max=2000"`
	Category    string              `json:"category,omitempty" binding:"max=100"`
	Priority    lifecycle.Priority  `json:"priority,omitempty" binding:"omitempty,priority"`
	Location    *lifecycle.Location `json:"location,omitempty"`
	Image       string              `json:"image,omitempty"`
}

// UpdateGrievanceRequest is a partial update. Nil fields are left unchanged.
type UpdateGrievanceRequest struct {
	Status            *lifecycle.Status   `json:"status,omitempty" binding:"omitempty,grievance_status"`
	Priority          *lifecycle.Priority `json:"priority,omitempty" binding:"omitempty,priority"`
	AssignedOfficerID *string             `json:"assignedOfficerId,omitempty"`
	AssignedAt        *time.Time          `json:"assignedAt,omitempty"`
	Deadline          *time.Time          `json:"deadline,omitempty"`
	ResolutionNote    *string             `json:"resolutionNote,omitempty" binding:"omitempty,max=2000"`
	ResolutionImage   *string             `json:"resolutionImage,omitempty"`
	ResolvedAt        *time.Time          `json:"resolvedAt,omitempty"`
	LogMessage        string              `json:"logMessage,omitempty" binding:"max=1000"`
}

// AnalyticsData summarises grievance counts.
type AnalyticsData struct {
	TotalGrievances       int64            `json:"totalGrievances"`
	ResolvedCount         int64            `json:"resolvedCount"`
	PendingCount          int64            `json:"pendingCount"`
	InProgressCount       int64            `json:"inProgressCount"`
	AssignedCount         int64            `json:"assignedCount"`
	ByCategory            map[string]int64 `json:"byCategory"`
	ByStatus              map[string]int64 `json:"byStatus"`
	AverageResolutionDays float64          `json:"averageResolutionDays"`
}

// SLAMetrics reports deadline performance.
type SLAMetrics struct {
	TotalGrievances        int64   `json:"totalGrievances"`
	OnTimeCount            int64   `json:"onTimeCount"`
	DelayedCount           int64   `json:"delayedCount"`
	OverdueCount           int64   `json:"overdueCount"`
	OnTimePercentage       float64 `json:"onTimePercentage"`
	DelayedPercentage      float64 `json:"delayedPercentage"`
	OverduePercentage      float64 `json:"overduePercentage"`
	AverageResolutionHours float64 `json:"averageResolutionHours"`
}

// ZoneAnalytics reports counts for one geographic zone.
type ZoneAnalytics struct {
	ZoneName              string  `json:"zoneName"`
	TotalGrievances       int64   `json:"totalGrievances"`
	ResolvedCount         int64   `json:"resolvedCount"`
	PendingCount          int64   `json:"pendingCount"`
	InProgressCount       int64   `json:"inProgressCount"`
	AverageResolutionDays float64 `json:"averageResolutionDays"`
	IsRedZone             bool    `json:"isRedZone"`
	Latitude              float64 `json:"latitude"`
	Longitude             float64 `json:"longitude"`
	ComplaintDensity      float64 `json:"complaintDensity"`
}

// Heat map zone classes.
const (
	HeatRed   = "RED_ZONE"
	HeatAmber = "AMBER_ZONE"
	HeatGreen = "GREEN_ZONE"
)

// HeatMapPoint is one cell of the complaint heat map.
type HeatMapPoint struct {
	ZoneID         string  `json:"zoneId"`
	ZoneName       string  `json:"zoneName"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	ComplaintCount int64   `json:"complaintCount"`
	Intensity      float64 `json:"intensity"`
	Status         string  `json:"status"`
}

// GrievanceAnalysis is the detailed breakdown used by the admin dashboard.
type GrievanceAnalysis struct {
	StatusDistribution    map[string]int64 `json:"statusDistribution"`
	PriorityDistribution  map[string]int64 `json:"priorityDistribution"`
	CategoryDistribution  map[string]int64 `json:"categoryDistribution"`
	TodayCount            int64            `json:"todayCount"`
	WeekCount             int64            `json:"weekCount"`
	MonthCount            int64            `json:"monthCount"`
	TotalGrievances       int64            `json:"totalGrievances"`
	ResolvedCount         int64            `json:"resolvedCount"`
	PendingCount          int64            `json:"pendingCount"`
	InProgressCount       int64            `json:"inProgressCount"`
	AssignedCount         int64            `json:"assignedCount"`
	AverageResolutionDays float64          `json:"averageResolutionDays"`
	ResolutionRate        float64          `json:"resolutionRate"`
	HighPriorityCount     int64            `json:"highPriorityCount"`
	MediumPriorityCount   int64            `json:"mediumPriorityCount"`
	LowPriorityCount      int64            `json:"lowPriorityCount"`
	TopCategory           string           `json:"topCategory"`
	TopCategoryCount      int64            `json:"topCategoryCount"`
}

// ComplaintAnalytics combines every analytics view.
type ComplaintAnalytics struct {
	CategoryDistribution  map[string]int64   `json:"categoryDistribution"`
	CategoryPercentage    map[string]float64 `json:"categoryPercentage"`
	ZoneAnalytics         []ZoneAnalytics    `json:"zoneAnalytics"`
	SLAMetrics            SLAMetrics         `json:"slaMetrics"`
	HeatMapData           []HeatMapPoint     `json:"heatMapData"`
	TotalGrievances       int64              `json:"totalGrievances"`
	ResolvedCount         int64              `json:"resolvedCount"`
	PendingCount          int64              `json:"pendingCount"`
	AverageResolutionDays float64            `json:"averageResolutionDays"`
	StatusDistribution    map[string]int64   `json:"statusDistribution"`
}

// Performance summarises an officer's record.
type Performance struct {
	OfficerID          string  `json:"officerId"`
	OfficerName        string  `json:"officerName"`
	Department         string  `json:"department,omitempty"`
	AverageRating      float64 `json:"averageRating"`
	FeedbackCount      int64   `json:"feedbackCount"`
	WarningsCount      int     `json:"warningsCount"`
	AppreciationsCount int     `json:"appreciationsCount"`
	ResolvedCount      int64   `json:"resolvedCount"`
	AssignedCount      int64   `json:"assignedCount"`
}

// CategorizeRequest asks the AI service for a category suggestion.
type CategorizeRequest struct {
	Description string `json:"description" binding:"required,max=2000"`
}

// CategorySuggestion is the AI service's answer.
type CategorySuggestion struct {
	Category       string `json:"category"`
	SuggestedTitle string `json:"suggestedTitle"`
}

// ResolutionDraft is an AI-drafted resolution note.
type ResolutionDraft struct {
	Note string `json:"note"`
}

// UploadResult is returned after an image upload.
type UploadResult struct {
	Path  string `json:"path"`
	Field string `json:"field"`
}
