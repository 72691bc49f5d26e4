// Package lifecycle holds the grievance domain rules shared by the API server
// and the client-side store: roles, statuses, priorities, categories, the
// status transition table and timeline entry construction.
package lifecycle

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleCitizen Role = "CITIZEN"
	RoleAdmin   Role = "ADMIN"
	RoleOfficer Role = "OFFICER"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleCitizen, RoleAdmin, RoleOfficer:
		return true
	}
	return false
}

// Status is the grievance status.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusAssigned   Status = "ASSIGNED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
	StatusReopened   Status = "REOPENED"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusPending, StatusAssigned, StatusInProgress, StatusResolved, StatusReopened}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Priority is the grievance priority.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Priorities lists every priority from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// CategoryOther is the fallback category.
const CategoryOther = "Other"

// Categories is the fixed list of grievance categories.
var Categories = []string{
	"Waste Management",
	"Water Supply",
	"Street Lighting",
	"Road Maintenance",
	"Public Health",
	"Traffic & Transport",
	"Parks & Recreation",
	"Electricity",
	CategoryOther,
}

// NormalizeCategory maps a free-text category onto the fixed list. Unknown or
// empty values become "Other".
func NormalizeCategory(category string) string {
	trimmed := strings.TrimSpace(category)
	for _, c := range Categories {
		if strings.EqualFold(c, trimmed) {
			return c
		}
	}
	return CategoryOther
}

// DefaultOfficerDepartment is assigned to officers registered without one.
const DefaultOfficerDepartment = "General Maintenance"

// Default actor names used on timeline entries when no user is known.
const (
	DefaultSubmitter = "Citizen"
	DefaultActor     = "System"
)

// SubmissionMessage is the message of the first timeline entry.
const SubmissionMessage = "Grievance submitted by citizen"

// TimelineEntry is one append-only audit record of a status change.
type TimelineEntry struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Actor     string    `json:"actor"`
}

// Location is where a grievance was reported.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// UnknownLocation is used when a grievance is submitted without a location.
var UnknownLocation = Location{Address: "Unknown City Location"}

var transitions = map[Status]map[Status]struct{}{
	StatusPending:    {StatusAssigned: {}, StatusInProgress: {}, StatusResolved: {}},
	StatusAssigned:   {StatusInProgress: {}, StatusResolved: {}, StatusPending: {}},
	StatusInProgress: {StatusResolved: {}, StatusAssigned: {}},
	StatusResolved:   {StatusReopened: {}},
	StatusReopened:   {StatusAssigned: {}, StatusInProgress: {}, StatusResolved: {}},
}

// CanTransition returns whether a grievance may move from one status to another.
// Staying in the same status is always allowed and is a no-op.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// SubmissionEntry builds the single timeline entry every new grievance starts with.
func SubmissionEntry(actor string, at time.Time) TimelineEntry {
	if actor == "" {
		actor = DefaultSubmitter
	}
	return TimelineEntry{
		Status:    StatusPending,
		Timestamp: at,
		Message:   SubmissionMessage,
		Actor:     actor,
	}
}

// TransitionEntry builds the timeline entry for a status change.
func TransitionEntry(to Status, message, actor string, at time.Time) TimelineEntry {
	if message == "" {
		message = fmt.Sprintf("Status changed to %s", to)
	}
	if actor == "" {
		actor = DefaultActor
	}
	return TimelineEntry{
		Status:    to,
		Timestamp: at,
		Message:   message,
		Actor:     actor,
	}
}

// NewGrievanceCode returns a public grievance identifier of the form GRV-NNNN.
func NewGrievanceCode(rng *rand.Rand) string {
	var n int
	if rng != nil {
		n = rng.Intn(9000)
	} else {
		n = rand.Intn(9000)
	}
	return fmt.Sprintf("GRV-%d", 1000+n)
}

// FeedbackAllowed reports whether a citizen may leave feedback on a grievance
// in the given status that already carries existing feedback entries.
func FeedbackAllowed(status Status, existing int) bool {
	return status == StatusResolved && existing == 0
}

// ValidRating reports whether a feedback rating is within 1..5.
func ValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}
