package lifecycle

import (
	"fmt"
	"math"
	"time"
)

// SLAStatus classifies a grievance against its resolution deadline.
type SLAStatus string

const (
	SLAWithin  SLAStatus = "WITHIN_SLA"
	SLAOnTime  SLAStatus = "ON_TIME"
	SLADelayed SLAStatus = "DELAYED"
	SLAOverdue SLAStatus = "OVERDUE"
)

// SLAHours returns the resolution window for a priority.
func SLAHours(p Priority) int {
	switch p {
	case PriorityUrgent:
		return 24
	case PriorityHigh:
		return 48
	case PriorityLow:
		return 120
	default:
		return 72
	}
}

// SLADeadline returns the resolution deadline implied by priority.
func SLADeadline(submittedAt time.Time, p Priority) time.Time {
	return submittedAt.Add(time.Duration(SLAHours(p)) * time.Hour)
}

// SLAStatusAt classifies a grievance at the instant now. A nil resolvedAt means
// the grievance is still open.
func SLAStatusAt(deadline time.Time, resolvedAt *time.Time, now time.Time) SLAStatus {
	if resolvedAt != nil {
		if resolvedAt.After(deadline) {
			return SLADelayed
		}
		return SLAOnTime
	}
	if now.After(deadline) {
		return SLAOverdue
	}
	return SLAWithin
}

// zoneGrid is the size of a zone cell in degrees.
const zoneGrid = 0.05

// UnknownZone is used for grievances without coordinates.
const UnknownZone = "UNKNOWN"

// ZoneFor buckets coordinates into a named grid cell.
func ZoneFor(lat, lng float64) string {
	if lat == 0 && lng == 0 {
		return UnknownZone
	}
	latCell := int(math.Floor(lat / zoneGrid))
	lngCell := int(math.Floor(lng / zoneGrid))
	return fmt.Sprintf("Z%d_%d", latCell, lngCell)
}

// ZoneCentroid returns the centre of a zone's grid cell.
func ZoneCentroid(zone string) (lat, lng float64, ok bool) {
	var latCell, lngCell int
	if _, err := fmt.Sscanf(zone, "Z%d_%d", &latCell, &lngCell); err != nil {
		return 0, 0, false
	}
	return (float64(latCell) + 0.5) * zoneGrid, (float64(lngCell) + 0.5) * zoneGrid, true
}

// ZoneAreaKm2 approximates the area of one grid cell at the given latitude.
func ZoneAreaKm2(lat float64) float64 {
	const kmPerDegree = 111.32
	side := zoneGrid * kmPerDegree
	return side * side * math.Cos(lat*math.Pi/180)
}
