package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"civicpulse/internal/lifecycle"
	"civicpulse/internal/models"
	"civicpulse/internal/testutil"

	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate(context.Context) { c.calls++ }

type grievanceFixture struct {
	db      *gorm.DB
	svc     *grievanceService
	inv     *countingInvalidator
	citizen Actor
	officer Actor
	admin   Actor
}

func newGrievanceFixture(t *testing.T) *grievanceFixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	inv := &countingInvalidator{}
	svc := NewGrievanceService(db, NewAuditService(db), inv).(*grievanceService)
	svc.now = func() time.Time { return fixedNow }

	citizen := testutil.CreateTestUser(t, db, lifecycle.RoleCitizen)
	officer := testutil.CreateTestUser(t, db, lifecycle.RoleOfficer)
	admin := testutil.CreateTestUser(t, db, lifecycle.RoleAdmin)

	return &grievanceFixture{
		db:      db,
		svc:     svc,
		inv:     inv,
		citizen: Actor{UserID: citizen.ID, Name: citizen.Name, Role: lifecycle.RoleCitizen},
		officer: Actor{UserID: officer.ID, Name: officer.Name, Role: lifecycle.RoleOfficer},
		admin:   Actor{UserID: admin.ID, Name: "Super Admin", Role: lifecycle.RoleAdmin},
	}
}

func (f *grievanceFixture) submit(t *testing.T) *models.Grievance {
	t.Helper()
	g, err := f.svc.CreateGrievance(f.citizen, CreateGrievanceInput{
		Title:       "Pothole",
		Description: "Deep pothole near the bus stop",
		Category:    "road maintenance",
		Priority:    lifecycle.PriorityHigh,
		Location:    &lifecycle.Location{Lat: 12.97, Lng: 77.59, Address: "Bus stop"},
	})
	testutil.AssertNoError(t, err)
	return g
}

func statusRef(s lifecycle.Status) *lifecycle.Status { return &s }

func TestCreateGrievance(t *testing.T) {
	t.Run("starts_pending_with_one_entry", func(t *testing.T) {
		f := newGrievanceFixture(t)
		g := f.submit(t)

		if g.Status != lifecycle.StatusPending {
			t.Errorf("expected PENDING, got %s", g.Status)
		}
		if len(g.Timeline) != 1 {
			t.Fatalf("expected 1 timeline entry, got %d", len(g.Timeline))
		}
		if g.Timeline[0].Actor != f.citizen.Name {
			t.Errorf("expected actor %q, got %q", f.citizen.Name, g.Timeline[0].Actor)
		}
		if g.Category != "Road Maintenance" {
			t.Errorf("expected normalised category, got %q", g.Category)
		}
		if g.Zone != lifecycle.ZoneFor(12.97, 77.59) {
			t.Errorf("unexpected zone %q", g.Zone)
		}
		if !g.SubmittedAt.Equal(fixedNow) {
			t.Errorf("expected submittedAt %v, got %v", fixedNow, g.SubmittedAt)
		}
		if f.inv.calls != 1 {
			t.Errorf("expected analytics invalidation, got %d calls", f.inv.calls)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		f := newGrievanceFixture(t)
		g, err := f.svc.CreateGrievance(f.citizen, CreateGrievanceInput{
			Description: "A very long description of an overflowing garbage bin that nobody has cleared for days",
		})
		testutil.AssertNoError(t, err)

		if g.Priority != lifecycle.PriorityMedium {
			t.Errorf("expected MEDIUM, got %s", g.Priority)
		}
		if g.LocationAddress != lifecycle.UnknownLocation.Address {
			t.Errorf("expected unknown location, got %q", g.LocationAddress)
		}
		if g.Zone != lifecycle.UnknownZone {
			t.Errorf("expected UNKNOWN zone, got %q", g.Zone)
		}
		if g.Category != lifecycle.CategoryOther {
			t.Errorf("expected Other, got %q", g.Category)
		}
		if len([]rune(g.Title)) > 63 {
			t.Errorf("title should be truncated, got %q", g.Title)
		}
	})

	t.Run("missing_description", func(t *testing.T) {
		f := newGrievanceFixture(t)
		_, err := f.svc.CreateGrievance(f.citizen, CreateGrievanceInput{Description: "   "})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("code_collisions_retry", func(t *testing.T) {
		f := newGrievanceFixture(t)
		codes := []string{"GRV-1111", "GRV-1111", "GRV-2222"}
		f.svc.newCode = func() string {
			c := codes[0]
			codes = codes[1:]
			return c
		}
		first := f.submit(t)
		second := f.submit(t)
		if first.Code != "GRV-1111" || second.Code != "GRV-2222" {
			t.Errorf("expected GRV-1111 then GRV-2222, got %s then %s", first.Code, second.Code)
		}
	})

	t.Run("code_space_exhausted", func(t *testing.T) {
		f := newGrievanceFixture(t)
		f.svc.newCode = func() string { return "GRV-1111" }
		f.submit(t)

		_, err := f.svc.CreateGrievance(f.citizen, CreateGrievanceInput{Description: "again"})
		testutil.AssertAppError(t, err, "CODE_EXHAUSTED")
	})
}

func TestListGrievances(t *testing.T) {
	f := newGrievanceFixture(t)
	older := testutil.CreateTestGrievance(t, f.db, f.citizen.UserID, testutil.SubmittedAt(fixedNow.Add(-48*time.Hour)))
	newer := testutil.CreateTestGrievance(t, f.db, f.citizen.UserID,
		testutil.SubmittedAt(fixedNow.Add(-time.Hour)),
		testutil.WithOfficer(f.officer.UserID),
		testutil.WithStatus(lifecycle.StatusAssigned))
	testutil.CreateTestGrievance(t, f.db, f.admin.UserID, testutil.SubmittedAt(fixedNow.Add(-24*time.Hour)))

	all, err := f.svc.ListGrievances(GrievanceFilter{})
	testutil.AssertNoError(t, err)
	if len(all) != 3 {
		t.Fatalf("expected 3, got %d", len(all))
	}
	if all[0].Code != newer.Code || all[2].Code != older.Code {
		t.Errorf("expected newest first, got %s ... %s", all[0].Code, all[2].Code)
	}

	mine, err := f.svc.ListGrievances(GrievanceFilter{SubmittedBy: f.citizen.UserID})
	testutil.AssertNoError(t, err)
	if len(mine) != 2 {
		t.Errorf("expected 2 for citizen, got %d", len(mine))
	}

	assigned, err := f.svc.ListGrievances(GrievanceFilter{AssignedOfficerID: f.officer.UserID})
	testutil.AssertNoError(t, err)
	if len(assigned) != 1 || assigned[0].Code != newer.Code {
		t.Errorf("expected only %s for officer, got %d", newer.Code, len(assigned))
	}

	pending, err := f.svc.ListGrievances(GrievanceFilter{Status: lifecycle.StatusPending})
	testutil.AssertNoError(t, err)
	if len(pending) != 2 {
		t.Errorf("expected 2 pending, got %d", len(pending))
	}

	_, err = f.svc.ListGrievances(GrievanceFilter{Status: "DONE"})
	testutil.AssertAppError(t, err, "INVALID_STATUS")
}

func TestGetGrievance(t *testing.T) {
	f := newGrievanceFixture(t)
	_, err := f.svc.GetGrievance("GRV-0000")
	testutil.AssertAppError(t, err, "GRIEVANCE_NOT_FOUND")
}

func TestUpdateGrievance(t *testing.T) {
	t.Run("assign_appends_one_entry", func(t *testing.T) {
		f := newGrievanceFixture(t)
		g := f.submit(t)
		officerID := f.officer.UserID

		updated, err := f.svc.UpdateGrievance(f.admin, g.Code, GrievanceUpdate{
			Status:            statusRef(lifecycle.StatusAssigned),
			AssignedOfficerID: &officerID,
			LogMessage:        "Assigned to roads",
		})
		testutil.AssertNoError(t, err)

		testutil.AssertTimeline(t, updated, lifecycle.StatusPending, lifecycle.StatusAssigned)
		last := updated.Timeline[1]
		if last.Status != lifecycle.StatusAssigned || last.Message != "Assigned to roads" || last.Actor != "Super Admin" {
			t.Errorf("unexpected entry %+v", last)
		}
		if updated.AssignedAt == nil || !updated.AssignedAt.Equal(fixedNow) {
			t.Errorf("expected assignedAt %v, got %v", fixedNow, updated.AssignedAt)
		}
		if updated.Deadline == nil || !updated.Deadline.Equal(fixedNow.Add(48*time.Hour)) {
			t.Errorf("expected 48h deadline, got %v", updated.Deadline)
		}

		var logs []models.AuditLog
		f.db.Where("action = ?", AuditActionGrievanceAssign).Find(&logs)
		if len(logs) != 1 {
			t.Errorf("expected 1 assign audit entry, got %d", len(logs))
		}
	})

	t.Run("no_entry_without_status_change", func(t *testing.T) {
		f := newGrievanceFixture(t)
		g := f.submit(t)
		note := "crew booked"

		updated, err := f.svc.UpdateGrievance(f.admin, g.Code, GrievanceUpdate{
			Status:         statusRef(lifecycle.StatusPending),
			ResolutionNote: &note,
		})
		testutil.AssertNoError(t, err)
		testutil.AssertTimeline(t, updated, lifecycle.StatusPending)
		if updated.ResolutionNote != note {
			t.Errorf("expected note %q, got %q", note, updated.ResolutionNote)
		}
	})

	t.Run("default_message", func(t *testing.T) {
		f := newGrievanceFixture(t)
		g := f.submit(t)

		updated, err := f.svc.UpdateGrievance(f.admin, g.Code, GrievanceUpdate{Status: statusRef(lifecycle.StatusInProgress)})
		testutil.AssertNoError(t, err)
		if msg := updated.Timeline[1].Message; msg != "Status changed to IN_PROGRESS" {
			t.Errorf("unexpected message %q", msg)
		}
	})

	t.Run("resolve_then_reopen", func(t *testing.T) {
		f := newGrievanceFixture(t)
		g := f.submit(t)

		resolved, err := f.svc.UpdateGrievance(f.admin, g.Code, GrievanceUpdate{Status: statusRef(lifecycle.StatusResolved)})
		testutil.AssertNoError(t, err)
		if resolved.ResolvedAt == nil {
			t.Fatal("expected resolvedAt")
		}

		reopened, err := f.svc.UpdateGrievance(f.citizen, g.Code, GrievanceUpdate{Status: statusRef(lifecycle.StatusReopened)})
		testutil.AssertNoError(t, err)
		if reopened.ResolvedAt != nil {
			t.Error("reopen should clear resolvedAt")
		}
		testutil.AssertTimeline(t, reopened, lifecycle.StatusPending, lifecycle.StatusResolved, lifecycle.StatusReopened)
	})

	t.Run("invalid_transition", func(t *testing.T) {
		f := newGrievanceFixture(t)
		g := f.submit(t)

		_, err := f.svc.UpdateGrievance(f.admin, g.Code, GrievanceUpdate{Status: statusRef(lifecycle.StatusReopened)})
		testutil.AssertAppError(t, err, "INVALID_TRANSITION")
	})

	t.Run("assign_to_non_officer", func(t *testing.T) {
		f := newGrievanceFixture(t)
		g := f.submit(t)
		citizenID := f.citizen.UserID

		_, err := f.svc.UpdateGrievance(f.admin, g.Code, GrievanceUpdate{AssignedOfficerID: &citizenID})
		testutil.AssertAppError(t, err, "NOT_AN_OFFICER")
	})

	t.Run("officer_must_own_assignment", func(t *testing.T) {
		f := newGrievanceFixture(t)
		g := f.submit(t)

		_, err := f.svc.UpdateGrievance(f.officer, g.Code, GrievanceUpdate{Status: statusRef(lifecycle.StatusInProgress)})
		testutil.AssertAppError(t, err, "FORBIDDEN")

		officerID := f.officer.UserID
		_, err = f.svc.UpdateGrievance(f.admin, g.Code, GrievanceUpdate{AssignedOfficerID: &officerID})
		testutil.AssertNoError(t, err)

		_, err = f.svc.UpdateGrievance(f.officer, g.Code, GrievanceUpdate{Status: statusRef(lifecycle.StatusInProgress)})
		testutil.AssertNoError(t, err)
	})

	t.Run("citizen_may_only_reopen", func(t *testing.T) {
		f := newGrievanceFixture(t)
		g := f.submit(t)

		_, err := f.svc.UpdateGrievance(f.citizen, g.Code, GrievanceUpdate{Status: statusRef(lifecycle.StatusResolved)})
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})
}

func TestAddFeedback(t *testing.T) {
	resolved := func(t *testing.T) (*grievanceFixture, *models.Grievance) {
		f := newGrievanceFixture(t)
		g := f.submit(t)
		_, err := f.svc.UpdateGrievance(f.admin, g.Code, GrievanceUpdate{Status: statusRef(lifecycle.StatusResolved)})
		testutil.AssertNoError(t, err)
		return f, g
	}

	t.Run("once_after_resolution", func(t *testing.T) {
		f, g := resolved(t)

		fb, err := f.svc.AddFeedback(f.citizen, g.Code, 5, " great ")
		testutil.AssertNoError(t, err)
		if fb.Comment != "great" || fb.GivenBy != f.citizen.UserID {
			t.Errorf("unexpected feedback %+v", fb)
		}

		_, err = f.svc.AddFeedback(f.citizen, g.Code, 4, "")
		testutil.AssertAppError(t, err, "FEEDBACK_NOT_ALLOWED")

		list, err := f.svc.ListFeedback(g.Code)
		testutil.AssertNoError(t, err)
		if len(list) != 1 {
			t.Errorf("expected 1 feedback, got %d", len(list))
		}
	})

	t.Run("unique_per_grievance", func(t *testing.T) {
		f, g := resolved(t)
		first := &models.Feedback{GrievanceID: g.ID, Rating: 4, GivenBy: f.citizen.UserID, GivenAt: fixedNow}
		testutil.AssertNoError(t, f.db.Create(first).Error)

		second := &models.Feedback{GrievanceID: g.ID, Rating: 1, GivenBy: f.citizen.UserID, GivenAt: fixedNow}
		if err := f.db.Create(second).Error; !errors.Is(err, gorm.ErrDuplicatedKey) {
			t.Fatalf("expected duplicate key error, got %v", err)
		}
	})

	t.Run("concurrent_submission_loses", func(t *testing.T) {
		f, g := resolved(t)

		// Another request records its feedback right after this one has
		// loaded the grievance, so the in-memory check still passes.
		armed := true
		err := f.db.Callback().Query().After("gorm:after_query").Register("competing_feedback", func(tx *gorm.DB) {
			if !armed || tx.Statement.Table != "grievances" {
				return
			}
			armed = false
			competing := &models.Feedback{GrievanceID: g.ID, Rating: 2, GivenBy: f.citizen.UserID, GivenAt: fixedNow}
			if err := f.db.Session(&gorm.Session{NewDB: true}).Create(competing).Error; err != nil {
				t.Errorf("failed to record competing feedback: %v", err)
			}
		})
		testutil.AssertNoError(t, err)

		_, err = f.svc.AddFeedback(f.citizen, g.Code, 5, "")
		testutil.AssertAppError(t, err, "FEEDBACK_NOT_ALLOWED")

		var count int64
		f.db.Model(&models.Feedback{}).Where("grievance_id = ?", g.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected exactly 1 feedback row, got %d", count)
		}
	})

	t.Run("not_before_resolution", func(t *testing.T) {
		f := newGrievanceFixture(t)
		g := f.submit(t)

		_, err := f.svc.AddFeedback(f.citizen, g.Code, 5, "")
		testutil.AssertAppError(t, err, "FEEDBACK_NOT_ALLOWED")
	})

	t.Run("rating_range", func(t *testing.T) {
		f, g := resolved(t)
		_, err := f.svc.AddFeedback(f.citizen, g.Code, 6, "")
		testutil.AssertAppError(t, err, "INVALID_RATING")
	})

	t.Run("other_citizens_forbidden", func(t *testing.T) {
		f, g := resolved(t)
		other := testutil.CreateTestUser(t, f.db, lifecycle.RoleCitizen)

		_, err := f.svc.AddFeedback(Actor{UserID: other.ID, Role: lifecycle.RoleCitizen}, g.Code, 3, "")
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("empty_list", func(t *testing.T) {
		f := newGrievanceFixture(t)
		g := f.submit(t)

		list, err := f.svc.ListFeedback(g.Code)
		testutil.AssertNoError(t, err)
		if list == nil || len(list) != 0 {
			t.Errorf("expected empty non-nil list, got %v", list)
		}
	})
}

func TestAttachImage(t *testing.T) {
	f := newGrievanceFixture(t)
	g := testutil.CreateTestGrievance(t, f.db, f.citizen.UserID, testutil.WithOfficer(f.officer.UserID))

	field, _, err := f.svc.AttachImage(f.citizen, g.Code, "/uploads/a.png")
	testutil.AssertNoError(t, err)
	if field != "image" {
		t.Errorf("expected image, got %s", field)
	}

	field, updated, err := f.svc.AttachImage(f.officer, g.Code, "/uploads/b.png")
	testutil.AssertNoError(t, err)
	if field != "resolutionImage" || updated.ResolutionImage != "/uploads/b.png" || updated.Image != "/uploads/a.png" {
		t.Errorf("unexpected result %s %+v", field, updated)
	}

	other := testutil.CreateTestUser(t, f.db, lifecycle.RoleCitizen)
	_, _, err = f.svc.AttachImage(Actor{UserID: other.ID, Role: lifecycle.RoleCitizen}, g.Code, "/uploads/c.png")
	testutil.AssertAppError(t, err, "FORBIDDEN")
}

func TestAuthorizeImage(t *testing.T) {
	f := newGrievanceFixture(t)
	g := testutil.CreateTestGrievance(t, f.db, f.citizen.UserID, testutil.WithOfficer(f.officer.UserID))
	unassigned := testutil.CreateTestUser(t, f.db, lifecycle.RoleOfficer)
	otherCitizen := testutil.CreateTestUser(t, f.db, lifecycle.RoleCitizen)

	tests := []struct {
		name    string
		actor   Actor
		wantErr string
	}{
		{"submitter", f.citizen, ""},
		{"assigned_officer", f.officer, ""},
		{"admin", f.admin, ""},
		{"unassigned_officer", Actor{UserID: unassigned.ID, Role: lifecycle.RoleOfficer}, "FORBIDDEN"},
		{"other_citizen", Actor{UserID: otherCitizen.ID, Role: lifecycle.RoleCitizen}, "FORBIDDEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.svc.AuthorizeImage(tt.actor, g.Code)
			if tt.wantErr != "" {
				testutil.AssertAppError(t, err, tt.wantErr)
				return
			}
			testutil.AssertNoError(t, err)
			if got.Code != g.Code {
				t.Errorf("expected %s, got %s", g.Code, got.Code)
			}
		})
	}

	// unassigned officers cannot attach either
	_, _, err := f.svc.AttachImage(Actor{UserID: unassigned.ID, Role: lifecycle.RoleOfficer}, g.Code, "/uploads/x.png")
	testutil.AssertAppError(t, err, "FORBIDDEN")

	_, err = f.svc.AuthorizeImage(f.admin, "GRV-0000")
	testutil.AssertAppError(t, err, "GRIEVANCE_NOT_FOUND")
}

func TestCalculateDeadline(t *testing.T) {
	f := newGrievanceFixture(t)
	g := testutil.CreateTestGrievance(t, f.db, f.citizen.UserID,
		testutil.WithPriority(lifecycle.PriorityUrgent),
		testutil.SubmittedAt(fixedNow))

	updated, err := f.svc.CalculateDeadline(g.Code)
	testutil.AssertNoError(t, err)
	if updated.Deadline == nil || !updated.Deadline.Equal(fixedNow.Add(24*time.Hour)) {
		t.Fatalf("expected 24h deadline, got %v", updated.Deadline)
	}

	custom := fixedNow.Add(time.Hour)
	f.db.Model(&models.Grievance{}).Where("id = ?", g.ID).Update("deadline", custom)
	again, err := f.svc.CalculateDeadline(g.Code)
	testutil.AssertNoError(t, err)
	if !again.Deadline.Equal(custom) {
		t.Errorf("existing deadline should be kept, got %v", again.Deadline)
	}
}
