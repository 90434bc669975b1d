package models

// StaffRef identifies a staff member inside a slot listing.
type StaffRef struct {
	StaffID string `json:"staffId"`
	Name    string `json:"name"`
}

// CandidateSlot is a proposed, not reserved, appointment window.
type CandidateSlot struct {
	ServiceStart  int          `json:"serviceStart"` // minutes from midnight
	ServiceEnd    int          `json:"serviceEnd"`   // minutes from midnight
	StartTime     string       `json:"startTime"`    // "HH:MM"
	EndTime       string       `json:"endTime"`      // "HH:MM"
	TravelMinutes int          `json:"travelMinutes"`
	TravelSource  TravelSource `json:"travelSource,omitempty"`
	BufferBefore  int          `json:"bufferBefore"`
	BufferAfter   int          `json:"bufferAfter"`
	IsHomeService bool         `json:"isHomeService"`
	Score         float64      `json:"score"`
}

// Footprint returns the full calendar interval the slot occupies.
func (c CandidateSlot) Footprint() (int, int) {
	travelAfter := 0
	if c.IsHomeService {
		travelAfter = c.TravelMinutes
	}
	return c.ServiceStart - c.TravelMinutes - c.BufferBefore, c.ServiceEnd + travelAfter + c.BufferAfter
}

// MergedSlot is an any-staff bucket: one time window and every staff offering it.
type MergedSlot struct {
	CandidateSlot
	Staff []StaffRef `json:"staff"`
}

// TeamSlot is a window during which the whole team is jointly free.
type TeamSlot struct {
	CandidateSlot
	PackageID             string     `json:"packageId"`
	Members               []StaffRef `json:"members"`
	DepositAmount         float64    `json:"depositAmount"`
	TotalAmount           float64    `json:"totalAmount"`
	AcceptanceWindowHours int        `json:"acceptanceWindowHours"`
}
