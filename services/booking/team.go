package booking

import (
	"context"
	"errors"

	"glowslots/models"

	"go.uber.org/zap"
)

// GenerateTeamSlots proposes windows during which the package's whole team is free.
// The walk follows the vendor's opening hours and every member must validate the
// full footprint on their own calendar. Without an assigned team the first N active
// staff of the vendor stand in, N being the package's headcount.
func (e *Engine) GenerateTeamSlots(ctx context.Context, packageID, vendorID, date string, customerLocation *models.GeoPoint, opts Options) ([]models.TeamSlot, error) {
	if packageID == "" {
		return nil, newValidationError("packageId", "is required")
	}
	if vendorID == "" {
		return nil, newValidationError("vendorId", "is required")
	}
	if customerLocation != nil {
		opts.CustomerLocation = customerLocation
	}
	o, err := e.resolve(opts)
	if err != nil {
		return nil, err
	}
	day, err := e.checkDate(date, o.maxDays)
	if err != nil {
		return nil, err
	}

	pkg, err := e.loadPackage(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if pkg.VendorID != vendorID {
		return nil, &NotFoundError{Kind: "package", ID: packageID}
	}
	if pkg.TotalDurationMinutes <= 0 {
		return nil, newValidationError("package", "total duration must be positive")
	}
	vendor, err := e.loadVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	team, err := e.resolveTeam(ctx, pkg)
	if err != nil {
		return nil, err
	}
	if len(team) == 0 {
		return []models.TeamSlot{}, nil
	}

	vendorIntervals := vendor.WeeklyHours.IntervalsFor(day.Weekday())
	if len(vendorIntervals) == 0 {
		return []models.TeamSlot{}, nil
	}

	plan, ok := e.buildPlan(ctx, vendor, pkg.TotalDurationMinutes, o)
	if !ok {
		return []models.TeamSlot{}, nil
	}

	dateStr := day.Format(models.DateLayout)
	ids := make([]string, 0, len(team))
	for _, m := range team {
		ids = append(ids, m.ID)
	}
	commitments, err := e.commitments.ListCommitments(ctx, vendorID, ids, dateStr)
	if err != nil {
		return nil, err
	}

	members := make([]dayContext, 0, len(team))
	refs := make([]models.StaffRef, 0, len(team))
	for _, m := range team {
		intervals := m.WorkingIntervals(day)
		if len(m.Availability) == 0 {
			intervals = vendorIntervals
		}
		members = append(members, dayContext{
			staffID:     m.ID,
			date:        dateStr,
			intervals:   intervals,
			commitments: commitments,
			blocks:      m.BlocksOn(day),
		})
		refs = append(refs, m.Ref())
	}
	avg := averageRating(team)

	slots := []models.TeamSlot{}
	for _, c := range walk(vendorIntervals, plan, e.nowMinutes(day)) {
		if !e.validForAll(c, members) {
			continue
		}
		c.Score = ScorePooled(c, avg)
		slots = append(slots, models.TeamSlot{
			CandidateSlot:         c,
			PackageID:             pkg.ID,
			Members:               refs,
			DepositAmount:         pkg.DepositAmount,
			TotalAmount:           pkg.TotalAmount,
			AcceptanceWindowHours: pkg.AcceptanceWindowHours,
		})
	}
	sortTeam(slots)
	return slots, nil
}

func (e *Engine) validForAll(c models.CandidateSlot, members []dayContext) bool {
	for _, m := range members {
		if !e.valid(c, m) {
			return false
		}
	}
	return true
}

// resolveTeam returns the package's assigned team, or the first RequiredStaffCount
// active staff when none is assigned. An empty result means the team cannot be
// formed: a member is missing or inactive, or the vendor has too few staff.
func (e *Engine) resolveTeam(ctx context.Context, pkg *models.ServicePackage) ([]*models.Staff, error) {
	if len(pkg.AssignedStaffIDs) > 0 {
		team := make([]*models.Staff, 0, len(pkg.AssignedStaffIDs))
		for _, id := range pkg.AssignedStaffIDs {
			s, err := e.loadStaff(ctx, pkg.VendorID, id)
			if errors.Is(err, ErrNotFound) {
				e.logger.Warn("assigned team member missing", zap.String("packageId", pkg.ID), zap.String("staffId", id))
				return nil, nil
			}
			if err != nil {
				return nil, err
			}
			if !s.Active {
				e.logger.Debug("assigned team member inactive", zap.String("packageId", pkg.ID), zap.String("staffId", id))
				return nil, nil
			}
			team = append(team, s)
		}
		return team, nil
	}

	need := pkg.RequiredStaffCount
	if need <= 0 {
		need = 1
	}
	pool, err := e.staff.ListStaff(ctx, pkg.VendorID)
	if err != nil {
		return nil, err
	}
	team := make([]*models.Staff, 0, need)
	for i := range pool {
		if len(team) == need {
			break
		}
		if pool[i].Active {
			team = append(team, &pool[i])
		}
	}
	if len(team) < need {
		e.logger.Debug("not enough active staff for package",
			zap.String("packageId", pkg.ID), zap.Int("required", need), zap.Int("available", len(team)))
		return nil, nil
	}
	return team, nil
}
