package booking

import (
	"sort"

	"glowslots/models"
)

const (
	peakStart = 10 * 60
	peakEnd   = 16 * 60
	noon      = 12 * 60
)

func baseScore(slot models.CandidateSlot) float64 {
	score := 0.0
	if slot.IsHomeService {
		if t := 100 - slot.TravelMinutes; t > 0 {
			score += float64(t)
		}
	}
	if slot.ServiceStart >= peakStart && slot.ServiceStart < peakEnd {
		score += 20
	}
	if slot.ServiceStart < noon {
		score += 10
	}
	return score
}

// ScoreSingle ranks a slot offered by one staff member.
func ScoreSingle(slot models.CandidateSlot, rating float64, yearsOfExperience int) float64 {
	return baseScore(slot) + rating*5 + float64(yearsOfExperience)
}

// ScorePooled ranks a slot offered by a group, using the group's average rating.
func ScorePooled(slot models.CandidateSlot, avgRating float64) float64 {
	return baseScore(slot) + avgRating*10
}

// Sorting is stable so equal scores keep generation order.

func sortCandidates(slots []models.CandidateSlot) {
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Score > slots[j].Score })
}

func sortMerged(slots []models.MergedSlot) {
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Score > slots[j].Score })
}

func sortTeam(slots []models.TeamSlot) {
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Score > slots[j].Score })
}

func averageRating(staff []*models.Staff) float64 {
	if len(staff) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range staff {
		sum += s.Rating
	}
	return sum / float64(len(staff))
}
