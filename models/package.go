package models

import "fmt"

// ServicePackage is a bundled offering delivered by several staff at once.
type ServicePackage struct {
	ID                    string   `bson:"id" json:"id" validate:"required"`
	VendorID              string   `bson:"vendorId" json:"vendorId" validate:"required"`
	Name                  string   `bson:"name" json:"name"`
	TotalDurationMinutes  int      `bson:"totalDurationMinutes" json:"totalDurationMinutes" validate:"gt=0"`
	RequiredStaffCount    int      `bson:"requiredStaffCount" json:"requiredStaffCount" validate:"gte=1"`
	AssignedStaffIDs      []string `bson:"assignedStaffIds,omitempty" json:"assignedStaffIds,omitempty"`
	DepositAmount         float64  `bson:"depositAmount" json:"depositAmount"`
	TotalAmount           float64  `bson:"totalAmount" json:"totalAmount"`
	AcceptanceWindowHours int      `bson:"acceptanceWindowHours" json:"acceptanceWindowHours"`
}

// NewServicePackage validates a package record.
func NewServicePackage(p ServicePackage) (*ServicePackage, error) {
	if err := validate.Struct(p); err != nil {
		return nil, fmt.Errorf("invalid package %q: %w", p.ID, err)
	}
	return &p, nil
}
