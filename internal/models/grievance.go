package models

import (
	"time"

	"civicpulse/internal/lifecycle"
)

// Grievance is a citizen-filed complaint tracked through the status lifecycle.
// Code is the public identifier (GRV-NNNN) exposed over the API; ID stays internal.
type Grievance struct {
	Base
	Code              string             `gorm:"size:16;not null;uniqueIndex" json:"code"`
	Title             string             `gorm:"not null" json:"title"`
	Description       string             `gorm:"size:2000;not null" json:"description"`
	Category          string             `gorm:"not null;index" json:"category"`
	Status            lifecycle.Status   `gorm:"type:varchar(16);not null;index" json:"status"`
	Priority          lifecycle.Priority `gorm:"type:varchar(16);not null" json:"priority"`
	SubmittedBy       string             `gorm:"type:uuid;not null;index" json:"submittedBy"`
	SubmittedAt       time.Time          `gorm:"not null;index" json:"submittedAt"`
	LocationLat       float64            `gorm:"not null;default:0" json:"locationLat"`
	LocationLng       float64            `gorm:"not null;default:0" json:"locationLng"`
	LocationAddress   string             `gorm:"not null" json:"locationAddress"`
	Zone              string             `gorm:"size:32;not null;index" json:"zone"`
	Image             string             `json:"image,omitempty"`
	AssignedOfficerID *string            `gorm:"type:uuid;index" json:"assignedOfficerId,omitempty"`
	AssignedAt        *time.Time         `json:"assignedAt,omitempty"`
	Deadline          *time.Time         `json:"deadline,omitempty"`
	ResolutionNote    string             `gorm:"size:2000" json:"resolutionNote,omitempty"`
	ResolutionImage   string             `json:"resolutionImage,omitempty"`
	ResolvedAt        *time.Time         `json:"resolvedAt,omitempty"`

	Timeline  []TimelineEntry `gorm:"foreignKey:GrievanceID;constraint:OnDelete:CASCADE" json:"timeline"`
	Feedbacks []Feedback      `gorm:"foreignKey:GrievanceID;constraint:OnDelete:CASCADE" json:"feedbacks,omitempty"`
}

// Location returns the grievance location in domain form.
func (g *Grievance) Location() lifecycle.Location {
	return lifecycle.Location{Lat: g.LocationLat, Lng: g.LocationLng, Address: g.LocationAddress}
}

// EffectiveDeadline returns the explicit deadline or the one implied by priority.
func (g *Grievance) EffectiveDeadline() time.Time {
	if g.Deadline != nil {
		return *g.Deadline
	}
	return lifecycle.SLADeadline(g.SubmittedAt, g.Priority)
}

// TimelineEntry is one append-only record of a status change.
type TimelineEntry struct {
	ID          uint             `gorm:"primaryKey" json:"-"`
	GrievanceID string           `gorm:"type:uuid;not null;index" json:"-"`
	Status      lifecycle.Status `gorm:"type:varchar(16);not null" json:"status"`
	Timestamp   time.Time        `gorm:"not null" json:"timestamp"`
	Message     string           `gorm:"size:1000;not null" json:"message"`
	Actor       string           `gorm:"not null" json:"actor"`
}

// Feedback is a citizen rating left on a resolved grievance.
type Feedback struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	GrievanceID string    `gorm:"type:uuid;not null;uniqueIndex:idx_feedbacks_grievance_unique" json:"-"`
	Rating      int       `gorm:"not null" json:"rating"`
	Comment     string    `gorm:"size:1000" json:"comment,omitempty"`
	GivenBy     string    `gorm:"type:uuid;not null" json:"givenBy"`
	GivenByName string    `json:"givenByName,omitempty"`
	GivenAt     time.Time `gorm:"not null" json:"givenAt"`
}
