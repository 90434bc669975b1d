package booking

import (
	"context"
	"time"

	"glowslots/models"
	"glowslots/services/travel"
)

// Collaborators return errors wrapping models.ErrNotFound for missing records.
// Any other error is treated as a storage failure and returned unchanged.

type StaffDirectory interface {
	GetStaff(ctx context.Context, vendorID, staffID string) (*models.Staff, error)
	ListStaff(ctx context.Context, vendorID string) ([]models.Staff, error)
}

type VendorDirectory interface {
	GetVendor(ctx context.Context, vendorID string) (*models.Vendor, error)
}

// CommitmentSource lists bookings for the given staff on one date. An empty
// vendorID matches every vendor.
type CommitmentSource interface {
	ListCommitments(ctx context.Context, vendorID string, staffIDs []string, date string) ([]models.Commitment, error)
}

type PackageCatalog interface {
	GetPackage(ctx context.Context, packageID string) (*models.ServicePackage, error)
}

type TravelEstimator interface {
	Estimate(ctx context.Context, req travel.Request) (models.TravelEstimate, error)
	EstimateBatch(ctx context.Context, destination models.GeoPoint, vendors []*models.Vendor, useExternalRouting bool) []travel.BatchResult
}

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
