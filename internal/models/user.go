package models

import "civicpulse/internal/lifecycle"

// User represents a citizen, officer or admin account.
// Email is unique per role, not globally: the same person may hold a citizen
// and an officer account under one address.
type User struct {
	Base
	Name               string         `gorm:"not null" json:"name"`
	Email              string         `gorm:"not null;uniqueIndex:idx_users_email_role" json:"email"`
	Role               lifecycle.Role `gorm:"type:varchar(16);not null;uniqueIndex:idx_users_email_role;index" json:"role"`
	Department         string         `json:"department,omitempty"`
	Password           string         `json:"-"`
	WarningsCount      int            `gorm:"not null;default:0" json:"warningsCount"`
	AppreciationsCount int            `gorm:"not null;default:0" json:"appreciationsCount"`
}
