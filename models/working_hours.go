package models

import (
	"fmt"
	"sort"
	"time"
)

// MinutesPerDay bounds every TimeOfDay value: 0 <= v < MinutesPerDay.
const MinutesPerDay = 24 * 60

// WorkingInterval represents a contiguous block of a weekday during which a staff
// member or vendor is open.
type WorkingInterval struct {
	Start int `bson:"start" json:"start" validate:"gte=0,lt=1440"`                   // minutes from midnight
	End   int `bson:"end" json:"end" validate:"gt=0,lte=1440,gtfield=Start"` // minutes from midnight
}

// NewWorkingInterval validates start < end within a single day.
func NewWorkingInterval(start, end int) (WorkingInterval, error) {
	wi := WorkingInterval{Start: start, End: end}
	if err := validate.Struct(wi); err != nil {
		return WorkingInterval{}, fmt.Errorf("invalid working interval [%d, %d): %w", start, end, err)
	}
	return wi, nil
}

// Contains reports whether [start, end] lies entirely inside the interval.
func (wi WorkingInterval) Contains(start, end int) bool {
	return start >= wi.Start && end <= wi.End
}

// DayAvailability is the schedule of one weekday.
type DayAvailability struct {
	Available bool              `bson:"available" json:"available"`
	Intervals []WorkingInterval `bson:"intervals" json:"intervals"`
}

// WeeklyHours maps a weekday (0 = Sunday … 6 = Saturday) to its schedule.
type WeeklyHours map[time.Weekday]DayAvailability

// IntervalsFor returns the ordered working intervals of a weekday, or nil when the
// day is closed.
func (w WeeklyHours) IntervalsFor(day time.Weekday) []WorkingInterval {
	d, ok := w[day]
	if !ok || !d.Available || len(d.Intervals) == 0 {
		return nil
	}
	out := make([]WorkingInterval, len(d.Intervals))
	copy(out, d.Intervals)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// Validate checks that every day holds valid, non-overlapping intervals.
func (w WeeklyHours) Validate() error {
	for day := range w {
		if day < time.Sunday || day > time.Saturday {
			return fmt.Errorf("invalid weekday %d", day)
		}
		sorted := w.IntervalsFor(day)
		for i, wi := range sorted {
			if err := validate.Struct(wi); err != nil {
				return fmt.Errorf("%s: %w", day, err)
			}
			if i > 0 && sorted[i-1].End > wi.Start {
				return fmt.Errorf("%s: intervals [%d,%d) and [%d,%d) overlap", day,
					sorted[i-1].Start, sorted[i-1].End, wi.Start, wi.End)
			}
		}
	}
	return nil
}
