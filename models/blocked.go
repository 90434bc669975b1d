package models

import "time"

// Recurrence kinds of a blocked interval.
const (
	RecurDaily   = "daily"
	RecurWeekly  = "weekly"
	RecurMonthly = "monthly"
)

// BlockedInterval is an unavailable window superimposed on working hours.
type BlockedInterval struct {
	BlockID       string `bson:"blockId" json:"blockId"`
	Date          string `bson:"date" json:"date"`   // e.g. "2025-02-25"
	Start         int    `bson:"start" json:"start"` // minutes from midnight
	End           int    `bson:"end" json:"end"`     // minutes from midnight
	IsRecurring   bool   `bson:"isRecurring" json:"isRecurring"`
	RecurringType string `bson:"recurringType,omitempty" json:"recurringType,omitempty"` // "daily", "weekly" or "monthly"
	Reason        string `bson:"reason" json:"reason"` // e.g. "lunch", "training"
}

// AppliesOn reports whether the block covers the given calendar date.
// Non-recurring blocks (and unknown recurrence kinds) match their exact date only;
// recurring blocks repeat from their anchor date onwards.
func (b BlockedInterval) AppliesOn(date time.Time) bool {
	day := date.Format(DateLayout)
	if b.Date == day {
		return true
	}
	if !b.IsRecurring {
		return false
	}
	anchor, err := time.ParseInLocation(DateLayout, b.Date, date.Location())
	if err != nil || anchor.After(date) {
		return false
	}
	switch b.RecurringType {
	case RecurDaily:
		return true
	case RecurWeekly:
		return anchor.Weekday() == date.Weekday()
	case RecurMonthly:
		return anchor.Day() == date.Day()
	default:
		return false
	}
}
