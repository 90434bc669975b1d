package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"glowslots/models"
	"glowslots/services/travel"
)

var errStorage = errors.New("storage offline")

// monday is the date most scenarios book against; the fixed clock sits on the
// Sunday before it.
const monday = "2025-03-03"

var sundayMorning = time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fakeStore struct {
	vendors     map[string]*models.Vendor
	staff       []models.Staff
	packages    map[string]*models.ServicePackage
	commitments []models.Commitment

	listStaffErr  error
	commitErrFor  map[string]error
	commitListErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		vendors:      map[string]*models.Vendor{},
		packages:     map[string]*models.ServicePackage{},
		commitErrFor: map[string]error{},
	}
}

func (f *fakeStore) GetVendor(_ context.Context, id string) (*models.Vendor, error) {
	v, ok := f.vendors[id]
	if !ok {
		return nil, fmt.Errorf("vendor %s: %w", id, models.ErrNotFound)
	}
	return v, nil
}

func (f *fakeStore) GetStaff(_ context.Context, vendorID, staffID string) (*models.Staff, error) {
	for i := range f.staff {
		if f.staff[i].ID == staffID && f.staff[i].VendorID == vendorID {
			s := f.staff[i]
			return &s, nil
		}
	}
	return nil, fmt.Errorf("staff %s: %w", staffID, models.ErrNotFound)
}

func (f *fakeStore) ListStaff(_ context.Context, vendorID string) ([]models.Staff, error) {
	if f.listStaffErr != nil {
		return nil, f.listStaffErr
	}
	var out []models.Staff
	for _, s := range f.staff {
		if s.VendorID == vendorID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) GetPackage(_ context.Context, id string) (*models.ServicePackage, error) {
	p, ok := f.packages[id]
	if !ok {
		return nil, fmt.Errorf("package %s: %w", id, models.ErrNotFound)
	}
	return p, nil
}

func (f *fakeStore) ListCommitments(_ context.Context, vendorID string, staffIDs []string, date string) ([]models.Commitment, error) {
	if f.commitListErr != nil {
		return nil, f.commitListErr
	}
	for _, id := range staffIDs {
		if err, ok := f.commitErrFor[id]; ok {
			return nil, err
		}
	}
	var out []models.Commitment
	for _, c := range f.commitments {
		if c.Date == date && (vendorID == "" || c.VendorID == vendorID) {
			out = append(out, c)
		}
	}
	return out, nil
}

type stubTravel struct {
	est   models.TravelEstimate
	err   error
	calls int
}

func (s *stubTravel) Estimate(context.Context, travel.Request) (models.TravelEstimate, error) {
	s.calls++
	return s.est, s.err
}

func (s *stubTravel) EstimateBatch(_ context.Context, _ models.GeoPoint, vendors []*models.Vendor, _ bool) []travel.BatchResult {
	out := make([]travel.BatchResult, len(vendors))
	for i, v := range vendors {
		est := s.est
		out[i] = travel.BatchResult{VendorID: v.ID, Estimate: &est}
	}
	return out
}

func hours(start, end string) models.WorkingInterval {
	s, _ := time.Parse("15:04", start)
	e, _ := time.Parse("15:04", end)
	return models.WorkingInterval{Start: s.Hour()*60 + s.Minute(), End: e.Hour()*60 + e.Minute()}
}

func openOn(day time.Weekday, intervals ...models.WorkingInterval) models.WeeklyHours {
	return models.WeeklyHours{day: {Available: true, Intervals: intervals}}
}

func shopVendor() *models.Vendor {
	return &models.Vendor{
		ID:          "salon",
		TravelMode:  models.TravelShopOnly,
		WeeklyHours: openOn(time.Monday, hours("09:00", "17:00")),
	}
}

func mobileVendor() *models.Vendor {
	v := shopVendor()
	v.TravelMode = models.TravelBoth
	v.TravelRadiusKm = 15
	v.TravelSpeedKmh = 30
	return v
}

func stylist(id string, rating float64, years int, availability models.WeeklyHours) models.Staff {
	return models.Staff{
		ID:                id,
		VendorID:          "salon",
		Name:              "Stylist " + id,
		Active:            true,
		Rating:            rating,
		YearsOfExperience: years,
		Availability:      availability,
	}
}

func service(minutes int) []models.ServiceRequirement {
	return []models.ServiceRequirement{{ServiceID: "cut", DurationMinutes: minutes}}
}

func newTestEngine(store *fakeStore, tr TravelEstimator, now time.Time) *Engine {
	if tr == nil {
		tr = &stubTravel{}
	}
	return NewEngine(Dependencies{
		Staff:       store,
		Vendors:     store,
		Commitments: store,
		Packages:    store,
		Travel:      tr,
		Clock:       fixedClock{now},
	}, Config{Location: time.UTC})
}

func candidateStarts(slots []models.CandidateSlot) []int {
	out := make([]int, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.ServiceStart)
	}
	return out
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }
