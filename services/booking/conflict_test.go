package booking

import (
	"testing"

	"glowslots/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlapsIsSymmetric(t *testing.T) {
	intervals := [][2]int{{0, 30}, {15, 45}, {30, 60}, {60, 90}, {0, 120}, {45, 50}}
	for _, a := range intervals {
		for _, b := range intervals {
			assert.Equal(t, Overlaps(a[0], a[1], b[0], b[1]), Overlaps(b[0], b[1], a[0], a[1]), "%v %v", a, b)
		}
	}
}

func TestOverlapsTouchingNeverConflicts(t *testing.T) {
	for s := 0; s < 1440; s += 45 {
		for _, length := range []int{1, 15, 60} {
			e := s + length
			for _, k := range []int{1, 5, 30, 240} {
				assert.False(t, Overlaps(s, e, e, e+k))
				assert.False(t, Overlaps(e, e+k, s, e))
			}
		}
	}
	assert.True(t, Overlaps(0, 31, 30, 60))
	assert.True(t, Overlaps(10, 20, 0, 60))
}

func TestFindConflict(t *testing.T) {
	checker := ConflictChecker{HomeTravelMinutes: 30}
	commitments := []models.Commitment{
		{ID: "cancelled", StaffID: "amina", Date: monday, Start: 540, End: 600, Status: models.StatusCancelled},
		{ID: "other-day", StaffID: "amina", Date: "2025-03-04", Start: 540, End: 600, Status: models.StatusConfirmed},
		{ID: "other-staff", StaffID: "brian", Date: monday, Start: 540, End: 600, Status: models.StatusConfirmed},
		{ID: "locked", StaffID: "amina", Date: monday, Start: 600, End: 630, Status: models.StatusTempLocked},
		{ID: "home", StaffID: "amina", Date: monday, Start: 780, End: 840, IsHomeService: true, Status: models.StatusScheduled},
		{ID: "team", StaffID: "brian", Date: monday, Start: 900, End: 1020, Status: models.StatusConfirmed,
			Items: []models.CommitmentItem{{ServiceID: "nails", StaffID: "amina", Start: 960, End: 990}}},
	}

	cases := []struct {
		name       string
		start, end int
		exclude    string
		want       string
	}{
		{"free morning", 540, 600, "", ""},
		{"temp lock counts", 615, 645, "", "locked"},
		{"excluded commitment", 615, 645, "locked", ""},
		{"touching lock", 630, 660, "", ""},
		{"home travel before", 740, 760, "", "home"},
		{"home travel after", 860, 875, "", "home"},
		{"clear of home travel", 870, 900, "", ""},
		{"service item", 975, 985, "", "team"},
		{"before service item", 900, 960, "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := checker.FindConflict("amina", monday, tc.start, tc.end, commitments, tc.exclude)
			if tc.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got.ID)
		})
	}
}

func TestFindConflictReturnsFirstMatch(t *testing.T) {
	commitments := []models.Commitment{
		{ID: "first", StaffID: "amina", Date: monday, Start: 600, End: 660, Status: models.StatusConfirmed},
		{ID: "second", StaffID: "amina", Date: monday, Start: 630, End: 690, Status: models.StatusConfirmed},
	}
	got := ConflictChecker{}.FindConflict("amina", monday, 620, 680, commitments, "")
	require.NotNil(t, got)
	assert.Equal(t, "first", got.ID)
}
