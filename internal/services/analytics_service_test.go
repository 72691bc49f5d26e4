package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"civicpulse/internal/dto"
	"civicpulse/internal/lifecycle"
	"civicpulse/internal/models"
	"civicpulse/internal/testutil"
)

// memoryCache is a map-backed cache.Cache for tests.
type memoryCache struct {
	data    map[string][]byte
	sets    int
	deletes int
}

func newMemoryCache() *memoryCache { return &memoryCache{data: map[string][]byte{}} }

func (m *memoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	m.sets++
	return nil
}

func (m *memoryCache) DeletePrefix(_ context.Context, prefix string) error {
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
			m.deletes++
		}
	}
	return nil
}

func newTestAnalytics(t *testing.T, opts AnalyticsOptions) (*analyticsService, *memoryCache, *testFixtureUsers) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	c := newMemoryCache()
	svc := NewAnalyticsService(db, c, opts).(*analyticsService)
	svc.now = func() time.Time { return fixedNow }

	users := &testFixtureUsers{
		citizen: testutil.CreateTestUser(t, db, lifecycle.RoleCitizen),
		officer: testutil.CreateTestUser(t, db, lifecycle.RoleOfficer),
	}
	return svc, c, users
}

type testFixtureUsers struct {
	citizen *models.User
	officer *models.User
}

func TestSummary(t *testing.T) {
	svc, _, u := newTestAnalytics(t, AnalyticsOptions{})
	db := svc.db
	testutil.CreateTestGrievance(t, db, u.citizen.ID, testutil.WithCategory("Water Supply"))
	testutil.CreateTestGrievance(t, db, u.citizen.ID,
		testutil.WithCategory("Water Supply"),
		testutil.WithOfficer(u.officer.ID),
		testutil.WithStatus(lifecycle.StatusInProgress))
	testutil.CreateTestGrievance(t, db, u.citizen.ID,
		testutil.WithCategory("Electricity"),
		testutil.SubmittedAt(fixedNow.Add(-72*time.Hour)),
		testutil.ResolvedAt(fixedNow.Add(-24*time.Hour)))

	got, err := svc.Summary(context.Background())
	testutil.AssertNoError(t, err)

	if got.TotalGrievances != 3 || got.PendingCount != 1 || got.InProgressCount != 1 || got.ResolvedCount != 1 {
		t.Errorf("unexpected counts %+v", got)
	}
	if got.ByCategory["Water Supply"] != 2 {
		t.Errorf("expected 2 water supply, got %d", got.ByCategory["Water Supply"])
	}
	if got.AverageResolutionDays != 2 {
		t.Errorf("expected 2 days average, got %v", got.AverageResolutionDays)
	}

	officer, err := svc.OfficerSummary(context.Background(), u.officer.ID)
	testutil.AssertNoError(t, err)
	if officer.TotalGrievances != 1 {
		t.Errorf("expected 1 for officer, got %d", officer.TotalGrievances)
	}
}

func TestSLA(t *testing.T) {
	svc, _, u := newTestAnalytics(t, AnalyticsOptions{})
	db := svc.db

	// within: submitted an hour ago, HIGH
	testutil.CreateTestGrievance(t, db, u.citizen.ID,
		testutil.WithPriority(lifecycle.PriorityHigh),
		testutil.SubmittedAt(fixedNow.Add(-time.Hour)))
	// overdue: URGENT submitted two days ago
	testutil.CreateTestGrievance(t, db, u.citizen.ID,
		testutil.WithPriority(lifecycle.PriorityUrgent),
		testutil.SubmittedAt(fixedNow.Add(-48*time.Hour)))
	// delayed: LOW resolved after 6 days
	testutil.CreateTestGrievance(t, db, u.citizen.ID,
		testutil.WithPriority(lifecycle.PriorityLow),
		testutil.SubmittedAt(fixedNow.Add(-7*24*time.Hour)),
		testutil.ResolvedAt(fixedNow.Add(-24*time.Hour)))
	// on time: MEDIUM resolved after 10 hours
	testutil.CreateTestGrievance(t, db, u.citizen.ID,
		testutil.SubmittedAt(fixedNow.Add(-20*time.Hour)),
		testutil.ResolvedAt(fixedNow.Add(-10*time.Hour)))

	got, err := svc.SLA(context.Background())
	testutil.AssertNoError(t, err)

	want := dto.SLAMetrics{
		TotalGrievances:        4,
		OnTimeCount:            2,
		DelayedCount:           1,
		OverdueCount:           1,
		OnTimePercentage:       50,
		DelayedPercentage:      25,
		OverduePercentage:      25,
		AverageResolutionHours: 77,
	}
	if *got != want {
		t.Errorf("expected %+v, got %+v", want, *got)
	}
}

func TestZonesAndHeatMap(t *testing.T) {
	svc, _, u := newTestAnalytics(t, AnalyticsOptions{RedZoneThreshold: 2})
	db := svc.db
	for i := 0; i < 3; i++ {
		testutil.CreateTestGrievance(t, db, u.citizen.ID,
			testutil.WithLocation(12.971, 77.591, "MG Road"),
			testutil.SubmittedAt(fixedNow.Add(-time.Duration(i)*time.Hour)))
	}
	testutil.CreateTestGrievance(t, db, u.citizen.ID, testutil.WithLocation(13.05, 77.70, "Hebbal"))
	testutil.CreateTestGrievance(t, db, u.citizen.ID)

	zones, err := svc.Zones(context.Background())
	testutil.AssertNoError(t, err)
	if len(zones) != 3 {
		t.Fatalf("expected 3 zones, got %d", len(zones))
	}
	if zones[0].TotalGrievances != 3 || !zones[0].IsRedZone {
		t.Errorf("busiest zone should be red with 3, got %+v", zones[0])
	}
	if zones[0].ComplaintDensity <= 0 {
		t.Errorf("expected positive density, got %v", zones[0].ComplaintDensity)
	}

	points, err := svc.HeatMap(context.Background())
	testutil.AssertNoError(t, err)
	if len(points) != 2 {
		t.Fatalf("unknown zone should be skipped, got %d points", len(points))
	}
	if points[0].Status != dto.HeatRed || points[0].Intensity != 1 || points[0].ZoneName != "MG Road" {
		t.Errorf("unexpected hottest point %+v", points[0])
	}
	if points[1].Status != dto.HeatGreen || points[1].Intensity != 0.33 {
		t.Errorf("unexpected second point %+v", points[1])
	}
}

func TestGrievanceAnalysis(t *testing.T) {
	svc, _, u := newTestAnalytics(t, AnalyticsOptions{})
	db := svc.db
	testutil.CreateTestGrievance(t, db, u.citizen.ID,
		testutil.WithPriority(lifecycle.PriorityUrgent),
		testutil.WithCategory("Electricity"),
		testutil.SubmittedAt(fixedNow.Add(-time.Hour)))
	testutil.CreateTestGrievance(t, db, u.citizen.ID,
		testutil.WithCategory("Electricity"),
		testutil.SubmittedAt(fixedNow.Add(-3*24*time.Hour)))
	testutil.CreateTestGrievance(t, db, u.citizen.ID,
		testutil.WithPriority(lifecycle.PriorityLow),
		testutil.WithCategory("Public Health"),
		testutil.SubmittedAt(fixedNow.Add(-20*24*time.Hour)),
		testutil.ResolvedAt(fixedNow.Add(-19*24*time.Hour)))

	got, err := svc.GrievanceAnalysis(context.Background())
	testutil.AssertNoError(t, err)

	if got.TodayCount != 1 || got.WeekCount != 2 || got.MonthCount != 3 {
		t.Errorf("unexpected windows today=%d week=%d month=%d", got.TodayCount, got.WeekCount, got.MonthCount)
	}
	if got.HighPriorityCount != 1 || got.MediumPriorityCount != 1 || got.LowPriorityCount != 1 {
		t.Errorf("unexpected priority counts %+v", got)
	}
	if got.TopCategory != "Electricity" || got.TopCategoryCount != 2 {
		t.Errorf("expected Electricity x2, got %s x%d", got.TopCategory, got.TopCategoryCount)
	}
	if got.ResolutionRate != 33.33 {
		t.Errorf("expected 33.33%% resolution rate, got %v", got.ResolutionRate)
	}
}

func TestComplete(t *testing.T) {
	svc, _, u := newTestAnalytics(t, AnalyticsOptions{})
	testutil.CreateTestGrievance(t, svc.db, u.citizen.ID, testutil.WithCategory("Water Supply"))
	testutil.CreateTestGrievance(t, svc.db, u.citizen.ID, testutil.WithCategory("Electricity"))

	got, err := svc.Complete(context.Background())
	testutil.AssertNoError(t, err)
	if got.TotalGrievances != 2 || got.CategoryPercentage["Water Supply"] != 50 {
		t.Errorf("unexpected complete analytics %+v", got)
	}
	if got.SLAMetrics.TotalGrievances != 2 {
		t.Errorf("expected embedded SLA metrics, got %+v", got.SLAMetrics)
	}
}

func TestPerformance(t *testing.T) {
	svc, _, u := newTestAnalytics(t, AnalyticsOptions{})
	db := svc.db
	g1 := testutil.CreateTestGrievance(t, db, u.citizen.ID, testutil.WithOfficer(u.officer.ID), testutil.ResolvedAt(fixedNow))
	g2 := testutil.CreateTestGrievance(t, db, u.citizen.ID, testutil.WithOfficer(u.officer.ID), testutil.ResolvedAt(fixedNow))
	testutil.CreateTestGrievance(t, db, u.citizen.ID, testutil.WithOfficer(u.officer.ID))
	for _, fb := range []models.Feedback{
		{GrievanceID: g1.ID, Rating: 5, GivenBy: u.citizen.ID, GivenAt: fixedNow},
		{GrievanceID: g2.ID, Rating: 2, GivenBy: u.citizen.ID, GivenAt: fixedNow},
	} {
		f := fb
		if err := db.Create(&f).Error; err != nil {
			t.Fatalf("failed to create feedback: %v", err)
		}
	}
	db.Model(u.officer).UpdateColumn("warnings_count", 1)

	got, err := svc.Performance(context.Background(), u.officer.ID)
	testutil.AssertNoError(t, err)
	if got.AssignedCount != 3 || got.ResolvedCount != 2 || got.FeedbackCount != 2 {
		t.Errorf("unexpected counts %+v", got)
	}
	if got.AverageRating != 3.5 || got.WarningsCount != 1 {
		t.Errorf("unexpected rating/warnings %+v", got)
	}

	_, err = svc.Performance(context.Background(), u.citizen.ID)
	testutil.AssertAppError(t, err, "NOT_AN_OFFICER")
}

func TestAnalyticsCaching(t *testing.T) {
	svc, c, u := newTestAnalytics(t, AnalyticsOptions{})
	ctx := context.Background()
	testutil.CreateTestGrievance(t, svc.db, u.citizen.ID)

	first, err := svc.Summary(ctx)
	testutil.AssertNoError(t, err)
	if c.sets != 1 {
		t.Fatalf("expected a cache write, got %d", c.sets)
	}

	testutil.CreateTestGrievance(t, svc.db, u.citizen.ID)
	stale, err := svc.Summary(ctx)
	testutil.AssertNoError(t, err)
	if stale.TotalGrievances != first.TotalGrievances {
		t.Errorf("expected cached total %d, got %d", first.TotalGrievances, stale.TotalGrievances)
	}

	svc.Invalidate(ctx)
	if c.deletes != 1 {
		t.Errorf("expected 1 deleted key, got %d", c.deletes)
	}
	fresh, err := svc.Summary(ctx)
	testutil.AssertNoError(t, err)
	if fresh.TotalGrievances != 2 {
		t.Errorf("expected 2 after invalidation, got %d", fresh.TotalGrievances)
	}
}

func TestGrievanceWritesInvalidateAnalytics(t *testing.T) {
	svc, c, u := newTestAnalytics(t, AnalyticsOptions{})
	ctx := context.Background()
	grievances := NewGrievanceService(svc.db, NewAuditService(svc.db), svc)

	_, err := svc.Summary(ctx)
	testutil.AssertNoError(t, err)

	_, err = grievances.CreateGrievance(Actor{UserID: u.citizen.ID, Role: lifecycle.RoleCitizen}, CreateGrievanceInput{Description: "Leaking pipe"})
	testutil.AssertNoError(t, err)
	if len(c.data) != 0 {
		t.Errorf("expected cache to be cleared, %d keys remain", len(c.data))
	}
}
