package booking

import "glowslots/models"

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2) intersect.
// Touching endpoints never overlap.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && e1 > s2
}

// ConflictChecker finds the first active commitment colliding with an interval.
type ConflictChecker struct {
	// HomeTravelMinutes is assumed for home-service commitments without recorded travel.
	HomeTravelMinutes int
}

// FindConflict returns the first commitment whose footprint overlaps [start, end) for
// staffID on date, or nil. Both the staff-wide interval and every service item
// assigned to the staff are checked. excludeID skips one commitment.
func (c ConflictChecker) FindConflict(staffID, date string, start, end int, commitments []models.Commitment, excludeID string) *models.Commitment {
	for i := range commitments {
		cm := &commitments[i]
		if excludeID != "" && cm.ID == excludeID {
			continue
		}
		if cm.Date != date || !cm.IsActive() {
			continue
		}
		if cm.StaffID == staffID {
			fs, fe := cm.Footprint(cm.Start, cm.End, c.HomeTravelMinutes)
			if Overlaps(start, end, fs, fe) {
				return cm
			}
		}
		for _, item := range cm.Items {
			if item.StaffID != staffID {
				continue
			}
			fs, fe := cm.Footprint(item.Start, item.End, c.HomeTravelMinutes)
			if Overlaps(start, end, fs, fe) {
				return cm
			}
		}
	}
	return nil
}
