package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"civicpulse/internal/lifecycle"
	"civicpulse/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with the given role and a unique email.
func CreateTestUser(t *testing.T, db *gorm.DB, role lifecycle.Role) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email, role)
}

// CreateTestUserWithEmail creates a user with the given email and role.
// Officers get the default department.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string, role lifecycle.Role) *models.User {
	t.Helper()

	user := &models.User{
		Name:  fmt.Sprintf("Test %s %d", role, nextID()),
		Email: email,
		Role:  role,
	}
	if role == lifecycle.RoleOfficer {
		user.Department = lifecycle.DefaultOfficerDepartment
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// GrievanceOption customises a fixture grievance before it is inserted.
type GrievanceOption func(*models.Grievance)

// WithStatus sets the grievance status.
func WithStatus(status lifecycle.Status) GrievanceOption {
	return func(g *models.Grievance) { g.Status = status }
}

// WithPriority sets the grievance priority.
func WithPriority(p lifecycle.Priority) GrievanceOption {
	return func(g *models.Grievance) { g.Priority = p }
}

// WithOfficer assigns the grievance to officerID.
func WithOfficer(officerID string) GrievanceOption {
	return func(g *models.Grievance) {
		at := g.SubmittedAt
		g.AssignedOfficerID = &officerID
		g.AssignedAt = &at
	}
}

// WithLocation places the grievance and sets its zone.
func WithLocation(lat, lng float64, address string) GrievanceOption {
	return func(g *models.Grievance) {
		g.LocationLat, g.LocationLng, g.LocationAddress = lat, lng, address
		g.Zone = lifecycle.ZoneFor(lat, lng)
	}
}

// WithCategory sets the grievance category.
func WithCategory(category string) GrievanceOption {
	return func(g *models.Grievance) { g.Category = category }
}

// SubmittedAt sets the submission time.
func SubmittedAt(at time.Time) GrievanceOption {
	return func(g *models.Grievance) { g.SubmittedAt = at }
}

// ResolvedAt marks the grievance resolved at the given time.
func ResolvedAt(at time.Time) GrievanceOption {
	return func(g *models.Grievance) {
		g.Status = lifecycle.StatusResolved
		g.ResolvedAt = &at
	}
}

// CreateTestGrievance creates a PENDING grievance submitted by submitterID with
// a single submission timeline entry.
func CreateTestGrievance(t *testing.T, db *gorm.DB, submitterID string, opts ...GrievanceOption) *models.Grievance {
	t.Helper()

	n := nextID()
	g := &models.Grievance{
		Code:            fmt.Sprintf("GRV-%04d", 1000+n%9000),
		Title:           fmt.Sprintf("Test Grievance %d", n),
		Description:     "Streetlight has been out for a week",
		Category:        "Street Lighting",
		Status:          lifecycle.StatusPending,
		Priority:        lifecycle.PriorityMedium,
		SubmittedBy:     submitterID,
		SubmittedAt:     time.Now().UTC().Truncate(time.Second),
		LocationAddress: lifecycle.UnknownLocation.Address,
		Zone:            lifecycle.UnknownZone,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.Timeline = []models.TimelineEntry{{
		Status:    lifecycle.StatusPending,
		Timestamp: g.SubmittedAt,
		Message:   lifecycle.SubmissionMessage,
		Actor:     lifecycle.DefaultSubmitter,
	}}

	if err := db.Create(g).Error; err != nil {
		t.Fatalf("failed to create test grievance: %v", err)
	}
	return g
}
