package models

import "fmt"

// Travel modes of a vendor.
const (
	TravelShopOnly = "shop_only"
	TravelHomeOnly = "home_only"
	TravelBoth     = "both"
)

// Vendor holds the business-level configuration a slot search depends on.
type Vendor struct {
	ID             string      `bson:"id" json:"id" validate:"required"`
	Name           string      `bson:"name" json:"name"`
	TravelMode     string      `bson:"travelMode" json:"travelMode" validate:"omitempty,oneof=shop_only home_only both"`
	TravelRadiusKm float64     `bson:"travelRadiusKm" json:"travelRadiusKm" validate:"gte=0"`
	TravelSpeedKmh float64     `bson:"travelSpeedKmh" json:"travelSpeedKmh" validate:"gte=0"`
	BaseLocation   GeoPoint    `bson:"baseLocation" json:"baseLocation"`
	WeeklyHours    WeeklyHours `bson:"weeklyHours" json:"weeklyHours"`
}

// NewVendor validates a vendor record.
func NewVendor(v Vendor) (*Vendor, error) {
	if err := validate.Struct(v); err != nil {
		return nil, fmt.Errorf("invalid vendor %q: %w", v.ID, err)
	}
	if err := v.WeeklyHours.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weekly hours for vendor %q: %w", v.ID, err)
	}
	return &v, nil
}

// SupportsTravel reports whether the vendor goes to the customer.
// An unset mode is treated as shop only.
func (v *Vendor) SupportsTravel() bool {
	return v.TravelMode == TravelHomeOnly || v.TravelMode == TravelBoth
}
