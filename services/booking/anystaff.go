package booking

import (
	"context"

	"glowslots/models"

	"go.uber.org/zap"
)

type bucketKey struct{ start, end int }

type bucket struct {
	slot  models.CandidateSlot
	staff []*models.Staff
}

// GenerateAnyStaffSlots runs the single-staff search for every active, qualified staff
// member of the vendor and merges the results by exact time window. A staff member
// whose search fails is left out; the rest of the pool still answers.
func (e *Engine) GenerateAnyStaffSlots(ctx context.Context, vendorID, date string, services []models.ServiceRequirement, opts Options) ([]models.MergedSlot, error) {
	if vendorID == "" {
		return nil, newValidationError("vendorId", "is required")
	}
	if err := validateServices(services); err != nil {
		return nil, err
	}
	o, err := e.resolve(opts)
	if err != nil {
		return nil, err
	}
	day, err := e.checkDate(date, o.maxDays)
	if err != nil {
		return nil, err
	}
	vendor, err := e.loadVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	pool, err := e.staff.ListStaff(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	plan, ok := e.buildPlan(ctx, vendor, models.TotalMinutes(services), o)
	if !ok {
		return []models.MergedSlot{}, nil
	}

	serviceIDs := make([]string, 0, len(services))
	for _, s := range services {
		serviceIDs = append(serviceIDs, s.ServiceID)
	}

	var order []bucketKey
	buckets := make(map[bucketKey]*bucket)
	for i := range pool {
		staff := &pool[i]
		if !staff.Active || !staff.Offers(serviceIDs) {
			continue
		}
		slots, err := e.staffSlots(ctx, vendorID, staff, day, plan)
		if err != nil {
			e.logger.Warn("skipping staff in any-staff search",
				zap.String("vendorId", vendorID),
				zap.String("staffId", staff.ID),
				zap.Error(err))
			continue
		}
		for _, s := range slots {
			k := bucketKey{s.ServiceStart, s.ServiceEnd}
			b, seen := buckets[k]
			if !seen {
				b = &bucket{slot: s}
				buckets[k] = b
				order = append(order, k)
			}
			b.staff = append(b.staff, staff)
		}
	}

	merged := make([]models.MergedSlot, 0, len(order))
	for _, k := range order {
		b := buckets[k]
		slot := b.slot
		slot.Score = ScorePooled(slot, averageRating(b.staff))
		refs := make([]models.StaffRef, 0, len(b.staff))
		for _, s := range b.staff {
			refs = append(refs, s.Ref())
		}
		merged = append(merged, models.MergedSlot{CandidateSlot: slot, Staff: refs})
	}
	sortMerged(merged)
	return merged, nil
}
