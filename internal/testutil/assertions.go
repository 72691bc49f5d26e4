package testutil

import (
	"errors"
	"testing"

	apperrors "civicpulse/internal/errors"
	"civicpulse/internal/lifecycle"
	"civicpulse/internal/models"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertTimeline checks the statuses of a grievance's timeline, oldest first.
func AssertTimeline(t *testing.T, g *models.Grievance, want ...lifecycle.Status) {
	t.Helper()

	if len(g.Timeline) != len(want) {
		t.Fatalf("expected %d timeline entries, got %d", len(want), len(g.Timeline))
	}
	for i, status := range want {
		if g.Timeline[i].Status != status {
			t.Errorf("timeline[%d]: expected %s, got %s", i, status, g.Timeline[i].Status)
		}
	}
}
