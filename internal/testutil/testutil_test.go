package testutil_test

import (
	"testing"

	"civicpulse/internal/errors"
	"civicpulse/internal/lifecycle"
	"civicpulse/internal/models"
	"civicpulse/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "grievances", "timeline_entries", "feedbacks", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	citizen := testutil.CreateTestUser(t, db, lifecycle.RoleCitizen)
	if citizen.ID == "" {
		t.Fatal("user should have an ID")
	}

	officer := testutil.CreateTestUser(t, db, lifecycle.RoleOfficer)
	if officer.Department != lifecycle.DefaultOfficerDepartment {
		t.Errorf("expected default department, got %q", officer.Department)
	}

	g := testutil.CreateTestGrievance(t, db, citizen.ID,
		testutil.WithOfficer(officer.ID),
		testutil.WithStatus(lifecycle.StatusAssigned),
		testutil.WithLocation(12.97, 77.59, "MG Road"))
	if g.Code == "" {
		t.Fatal("grievance should have a code")
	}
	if g.Status != lifecycle.StatusAssigned {
		t.Errorf("expected ASSIGNED, got %s", g.Status)
	}
	if g.Zone == lifecycle.UnknownZone {
		t.Error("expected a located zone")
	}

	var entries []models.TimelineEntry
	if err := db.Where("grievance_id = ?", g.ID).Find(&entries).Error; err != nil {
		t.Fatalf("failed to load timeline: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 timeline entry, got %d", len(entries))
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrGrievanceNotFound, "custom message")
	testutil.AssertAppError(t, err, "GRIEVANCE_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}

func TestAssertTimeline(t *testing.T) {
	g := &models.Grievance{Timeline: []models.TimelineEntry{
		{Status: lifecycle.StatusPending},
		{Status: lifecycle.StatusAssigned},
	}}
	testutil.AssertTimeline(t, g, lifecycle.StatusPending, lifecycle.StatusAssigned)
}
