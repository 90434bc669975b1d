package models

import (
	"fmt"
	"time"
)

// Staff is a service provider working for a vendor.
type Staff struct {
	ID                string            `bson:"id" json:"id" validate:"required"`
	VendorID          string            `bson:"vendorId" json:"vendorId" validate:"required"`
	Name              string            `bson:"name" json:"name"`
	Active            bool              `bson:"active" json:"active"`
	Rating            float64           `bson:"rating" json:"rating" validate:"gte=0,lte=5"`
	YearsOfExperience int               `bson:"yearsOfExperience" json:"yearsOfExperience" validate:"gte=0"`
	ServiceIDs        []string          `bson:"serviceIds,omitempty" json:"serviceIds,omitempty"` // empty means every service
	Availability      WeeklyHours       `bson:"availability" json:"availability"`
	BlockedIntervals  []BlockedInterval `bson:"blockedIntervals,omitempty" json:"blockedIntervals,omitempty"`
}

// NewStaff validates a staff record fetched from a directory.
func NewStaff(s Staff) (*Staff, error) {
	if err := validate.Struct(s); err != nil {
		return nil, fmt.Errorf("invalid staff %q: %w", s.ID, err)
	}
	if err := s.Availability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid availability for staff %q: %w", s.ID, err)
	}
	return &s, nil
}

// WorkingIntervals returns the staff's intervals for the weekday of date.
func (s *Staff) WorkingIntervals(date time.Time) []WorkingInterval {
	return s.Availability.IntervalsFor(date.Weekday())
}

// BlocksOn returns the blocked intervals that apply to date.
func (s *Staff) BlocksOn(date time.Time) []BlockedInterval {
	var out []BlockedInterval
	for _, b := range s.BlockedIntervals {
		if b.AppliesOn(date) {
			out = append(out, b)
		}
	}
	return out
}

// Offers reports whether the staff is qualified for every service id.
func (s *Staff) Offers(serviceIDs []string) bool {
	if len(s.ServiceIDs) == 0 {
		return true
	}
	have := make(map[string]struct{}, len(s.ServiceIDs))
	for _, id := range s.ServiceIDs {
		have[id] = struct{}{}
	}
	for _, id := range serviceIDs {
		if id == "" {
			continue
		}
		if _, ok := have[id]; !ok {
			return false
		}
	}
	return true
}

// Ref returns the short form used in slot listings.
func (s *Staff) Ref() StaffRef {
	return StaffRef{StaffID: s.ID, Name: s.Name}
}
