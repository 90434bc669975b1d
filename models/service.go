package models

import (
	"fmt"

	"glowslots/utils"
)

// Service delivery modes.
const (
	ModeInHome  = "in_home"
	ModeInStore = "in_store"
)

// ServiceRequirement is the occupied time of one unit of work.
type ServiceRequirement struct {
	ServiceID           string `json:"serviceId,omitempty"`
	DurationMinutes     int    `json:"durationMinutes" validate:"gt=0"`
	PrepMinutes         int    `json:"prepMinutes" validate:"gte=0"`
	SetupCleanupMinutes int    `json:"setupCleanupMinutes" validate:"gte=0"`
}

// NewServiceRequirement is the fail-fast constructor for a requirement.
func NewServiceRequirement(serviceID string, duration, prep, setupCleanup int) (ServiceRequirement, error) {
	sr := ServiceRequirement{
		ServiceID:           serviceID,
		DurationMinutes:     duration,
		PrepMinutes:         prep,
		SetupCleanupMinutes: setupCleanup,
	}
	if err := sr.Validate(); err != nil {
		return ServiceRequirement{}, err
	}
	return sr, nil
}

// Validate checks the requirement's minute fields.
func (sr ServiceRequirement) Validate() error {
	if err := validate.Struct(sr); err != nil {
		return fmt.Errorf("invalid service requirement %q: %w", sr.ServiceID, err)
	}
	return nil
}

// Total is duration + prep + setup/cleanup.
func (sr ServiceRequirement) Total() int {
	return sr.DurationMinutes + sr.PrepMinutes + sr.SetupCleanupMinutes
}

// TotalMinutes sums the occupied time of a bundle of services.
func TotalMinutes(services []ServiceRequirement) int {
	total := 0
	for _, s := range services {
		total += s.Total()
	}
	return total
}

// ServiceItem is a catalogue entry as stored by vendors, where durations may be
// numbers or strings such as "45 min" or "1 hour".
type ServiceItem struct {
	ID            string      `bson:"id" json:"id"`
	VendorID      string      `bson:"vendorId" json:"vendorId"`
	Name          string      `bson:"name" json:"name"`
	Duration      interface{} `bson:"duration" json:"duration"`
	PrepTime      interface{} `bson:"prepTime,omitempty" json:"prepTime,omitempty"`
	SetupCleanup  interface{} `bson:"setupCleanup,omitempty" json:"setupCleanup,omitempty"`
	Price         float64     `bson:"price" json:"price"`
	HomeAvailable bool        `bson:"homeAvailable" json:"homeAvailable"`
}

// Requirement converts the catalogue entry into a validated requirement.
// A malformed duration falls back to defaultDuration; malformed prep or cleanup
// values count as zero.
func (si ServiceItem) Requirement(defaultDuration int) (ServiceRequirement, error) {
	return NewServiceRequirement(
		si.ID,
		utils.ParseDuration(si.Duration, defaultDuration),
		utils.ParseDuration(si.PrepTime, 0),
		utils.ParseDuration(si.SetupCleanup, 0),
	)
}
