package models

// Commitment statuses. Only the active ones occupy a calendar.
const (
	StatusScheduled  = "scheduled"
	StatusConfirmed  = "confirmed"
	StatusCheckedIn  = "checked-in"
	StatusTempLocked = "temp-locked"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusNoShow     = "no-show"
)

// ActiveStatuses lists the statuses that block a staff member's time.
var ActiveStatuses = []string{StatusScheduled, StatusConfirmed, StatusCheckedIn, StatusTempLocked}

// CommitmentItem is one service line of a multi-service booking with its own staff.
type CommitmentItem struct {
	ServiceID string `bson:"serviceId" json:"serviceId"`
	StaffID   string `bson:"staffId" json:"staffId"`
	Start     int    `bson:"start" json:"start"`
	End       int    `bson:"end" json:"end"`
}

// Commitment represents a previously booked appointment.
type Commitment struct {
	ID            string           `bson:"id" json:"id"`
	VendorID      string           `bson:"vendorId" json:"vendorId"`
	StaffID       string           `bson:"staffId" json:"staffId"`
	Date          string           `bson:"date" json:"date"`   // "YYYY-MM-DD"
	Start         int              `bson:"start" json:"start"` // minutes from midnight
	End           int              `bson:"end" json:"end"`     // minutes from midnight
	TravelMinutes *int             `bson:"travelMinutes,omitempty" json:"travelMinutes,omitempty"`
	BufferBefore  int              `bson:"bufferBefore" json:"bufferBefore"`
	BufferAfter   int              `bson:"bufferAfter" json:"bufferAfter"`
	IsHomeService bool             `bson:"isHomeService" json:"isHomeService"`
	Status        string           `bson:"status" json:"status"`
	Items         []CommitmentItem `bson:"items,omitempty" json:"items,omitempty"`
}

// IsActive reports whether the commitment still occupies time.
func (c *Commitment) IsActive() bool {
	for _, s := range ActiveStatuses {
		if c.Status == s {
			return true
		}
	}
	return false
}

// Travel returns the recorded travel time, or unrecordedHomeTravel when the
// commitment is a home service without a recorded value.
func (c *Commitment) Travel(unrecordedHomeTravel int) int {
	if c.TravelMinutes != nil {
		return *c.TravelMinutes
	}
	if c.IsHomeService {
		return unrecordedHomeTravel
	}
	return 0
}

// Footprint widens [start, end) by the commitment's travel legs and buffers.
func (c *Commitment) Footprint(start, end, unrecordedHomeTravel int) (int, int) {
	travel := c.Travel(unrecordedHomeTravel)
	return start - travel - c.BufferBefore, end + travel + c.BufferAfter
}
