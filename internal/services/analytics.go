package services

import (
	"math"
	"sort"
	"time"

	"civicpulse/internal/dto"
	"civicpulse/internal/lifecycle"
	"civicpulse/internal/models"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) * 100 / float64(total))
}

// resolutionDays counts whole days between submission and resolution.
func resolutionDays(g *models.Grievance) (int64, bool) {
	if g.ResolvedAt == nil {
		return 0, false
	}
	return int64(g.ResolvedAt.Sub(g.SubmittedAt) / (24 * time.Hour)), true
}

func averageResolutionDays(grievances []models.Grievance) float64 {
	var sum, n int64
	for i := range grievances {
		if d, ok := resolutionDays(&grievances[i]); ok {
			sum += d
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return round2(float64(sum) / float64(n))
}

func countStatus(grievances []models.Grievance, status lifecycle.Status) int64 {
	var n int64
	for i := range grievances {
		if grievances[i].Status == status {
			n++
		}
	}
	return n
}

func summarize(grievances []models.Grievance) *dto.AnalyticsData {
	out := &dto.AnalyticsData{
		TotalGrievances:       int64(len(grievances)),
		ResolvedCount:         countStatus(grievances, lifecycle.StatusResolved),
		PendingCount:          countStatus(grievances, lifecycle.StatusPending),
		InProgressCount:       countStatus(grievances, lifecycle.StatusInProgress),
		AssignedCount:         countStatus(grievances, lifecycle.StatusAssigned),
		ByCategory:            map[string]int64{},
		ByStatus:              map[string]int64{},
		AverageResolutionDays: averageResolutionDays(grievances),
	}
	for i := range grievances {
		out.ByCategory[grievances[i].Category]++
		out.ByStatus[string(grievances[i].Status)]++
	}
	return out
}

func slaMetrics(grievances []models.Grievance, now time.Time) *dto.SLAMetrics {
	out := &dto.SLAMetrics{TotalGrievances: int64(len(grievances))}
	var resolvedHours float64
	var resolved int64
	for i := range grievances {
		g := &grievances[i]
		switch lifecycle.SLAStatusAt(g.EffectiveDeadline(), g.ResolvedAt, now) {
		case lifecycle.SLAOnTime, lifecycle.SLAWithin:
			out.OnTimeCount++
		case lifecycle.SLADelayed:
			out.DelayedCount++
		case lifecycle.SLAOverdue:
			out.OverdueCount++
		}
		if g.ResolvedAt != nil {
			resolvedHours += g.ResolvedAt.Sub(g.SubmittedAt).Hours()
			resolved++
		}
	}
	out.OnTimePercentage = percent(out.OnTimeCount, out.TotalGrievances)
	out.DelayedPercentage = percent(out.DelayedCount, out.TotalGrievances)
	out.OverduePercentage = percent(out.OverdueCount, out.TotalGrievances)
	if resolved > 0 {
		out.AverageResolutionHours = round2(resolvedHours / float64(resolved))
	}
	return out
}

// groupByZone buckets grievances by zone and returns zone names sorted by
// descending count, then name.
func groupByZone(grievances []models.Grievance) (map[string][]models.Grievance, []string) {
	groups := map[string][]models.Grievance{}
	for _, g := range grievances {
		zone := g.Zone
		if zone == "" {
			zone = lifecycle.ZoneFor(g.LocationLat, g.LocationLng)
		}
		groups[zone] = append(groups[zone], g)
	}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := len(groups[names[i]]), len(groups[names[j]])
		if a != b {
			return a > b
		}
		return names[i] < names[j]
	})
	return groups, names
}

func zoneAnalytics(grievances []models.Grievance, redZoneThreshold int) []dto.ZoneAnalytics {
	groups, names := groupByZone(grievances)
	out := make([]dto.ZoneAnalytics, 0, len(names))
	for _, name := range names {
		members := groups[name]
		total := int64(len(members))
		z := dto.ZoneAnalytics{
			ZoneName:              name,
			TotalGrievances:       total,
			ResolvedCount:         countStatus(members, lifecycle.StatusResolved),
			PendingCount:          countStatus(members, lifecycle.StatusPending),
			InProgressCount:       countStatus(members, lifecycle.StatusInProgress),
			AverageResolutionDays: averageResolutionDays(members),
			IsRedZone:             total > int64(redZoneThreshold),
		}
		if lat, lng, ok := lifecycle.ZoneCentroid(name); ok {
			z.Latitude = lat
			z.Longitude = lng
			if area := lifecycle.ZoneAreaKm2(lat); area > 0 {
				z.ComplaintDensity = round2(float64(total) / area)
			}
		}
		out = append(out, z)
	}
	return out
}

func heatMap(grievances []models.Grievance, redZoneThreshold int) []dto.HeatMapPoint {
	groups, names := groupByZone(grievances)
	var maxCount int64
	for _, name := range names {
		if name == lifecycle.UnknownZone {
			continue
		}
		if n := int64(len(groups[name])); n > maxCount {
			maxCount = n
		}
	}

	out := make([]dto.HeatMapPoint, 0, len(names))
	for _, name := range names {
		lat, lng, ok := lifecycle.ZoneCentroid(name)
		if !ok {
			continue
		}
		members := groups[name]
		count := int64(len(members))
		point := dto.HeatMapPoint{
			ZoneID:         name,
			ZoneName:       latestAddress(members),
			Latitude:       lat,
			Longitude:      lng,
			ComplaintCount: count,
			Status:         heatStatus(count, redZoneThreshold),
		}
		if maxCount > 0 {
			point.Intensity = round2(float64(count) / float64(maxCount))
		}
		out = append(out, point)
	}
	return out
}

func heatStatus(count int64, threshold int) string {
	switch {
	case count > int64(threshold):
		return dto.HeatRed
	case float64(count) > float64(threshold)/2:
		return dto.HeatAmber
	default:
		return dto.HeatGreen
	}
}

func latestAddress(grievances []models.Grievance) string {
	var latest *models.Grievance
	for i := range grievances {
		if latest == nil || grievances[i].SubmittedAt.After(latest.SubmittedAt) {
			latest = &grievances[i]
		}
	}
	if latest == nil {
		return ""
	}
	return latest.LocationAddress
}

func grievanceAnalysis(grievances []models.Grievance, now time.Time) *dto.GrievanceAnalysis {
	total := int64(len(grievances))
	out := &dto.GrievanceAnalysis{
		StatusDistribution:    map[string]int64{},
		PriorityDistribution:  map[string]int64{},
		CategoryDistribution:  map[string]int64{},
		TotalGrievances:       total,
		ResolvedCount:         countStatus(grievances, lifecycle.StatusResolved),
		PendingCount:          countStatus(grievances, lifecycle.StatusPending),
		InProgressCount:       countStatus(grievances, lifecycle.StatusInProgress),
		AssignedCount:         countStatus(grievances, lifecycle.StatusAssigned),
		AverageResolutionDays: averageResolutionDays(grievances),
	}
	out.ResolutionRate = percent(out.ResolvedCount, total)

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, -1, 0)

	for i := range grievances {
		g := &grievances[i]
		out.StatusDistribution[string(g.Status)]++
		out.PriorityDistribution[string(g.Priority)]++
		out.CategoryDistribution[g.Category]++

		switch g.Priority {
		case lifecycle.PriorityHigh, lifecycle.PriorityUrgent:
			out.HighPriorityCount++
		case lifecycle.PriorityMedium:
			out.MediumPriorityCount++
		case lifecycle.PriorityLow:
			out.LowPriorityCount++
		}

		if !g.SubmittedAt.Before(startOfDay) {
			out.TodayCount++
		}
		if g.SubmittedAt.After(weekAgo) {
			out.WeekCount++
		}
		if g.SubmittedAt.After(monthAgo) {
			out.MonthCount++
		}
	}

	out.TopCategory, out.TopCategoryCount = topKey(out.CategoryDistribution)
	return out
}

// topKey returns the key with the highest count, ties broken alphabetically.
func topKey(counts map[string]int64) (string, int64) {
	var best string
	var bestCount int64
	for k, v := range counts {
		if v > bestCount || (v == bestCount && k < best) {
			best, bestCount = k, v
		}
	}
	return best, bestCount
}

func completeAnalytics(grievances []models.Grievance, now time.Time, redZoneThreshold int) *dto.ComplaintAnalytics {
	summary := summarize(grievances)
	out := &dto.ComplaintAnalytics{
		CategoryDistribution:  summary.ByCategory,
		CategoryPercentage:    map[string]float64{},
		ZoneAnalytics:         zoneAnalytics(grievances, redZoneThreshold),
		SLAMetrics:            *slaMetrics(grievances, now),
		HeatMapData:           heatMap(grievances, redZoneThreshold),
		TotalGrievances:       summary.TotalGrievances,
		ResolvedCount:         summary.ResolvedCount,
		PendingCount:          summary.PendingCount,
		AverageResolutionDays: summary.AverageResolutionDays,
		StatusDistribution:    summary.ByStatus,
	}
	for category, n := range summary.ByCategory {
		out.CategoryPercentage[category] = percent(n, summary.TotalGrievances)
	}
	return out
}

func officerPerformance(officer *models.User, assigned []models.Grievance) *dto.Performance {
	out := &dto.Performance{
		OfficerID:          officer.ID,
		OfficerName:        officer.Name,
		Department:         officer.Department,
		WarningsCount:      officer.WarningsCount,
		AppreciationsCount: officer.AppreciationsCount,
		AssignedCount:      int64(len(assigned)),
		ResolvedCount:      countStatus(assigned, lifecycle.StatusResolved),
	}
	var sum int64
	for i := range assigned {
		for _, f := range assigned[i].Feedbacks {
			sum += int64(f.Rating)
			out.FeedbackCount++
		}
	}
	if out.FeedbackCount > 0 {
		out.AverageRating = round2(float64(sum) / float64(out.FeedbackCount))
	}
	return out
}
