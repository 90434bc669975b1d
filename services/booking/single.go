package booking

import (
	"context"
	"errors"
	"time"

	"glowslots/models"
	"glowslots/services/travel"
	"glowslots/utils"

	"go.uber.org/zap"
)

// slotPlan is everything the walk needs besides the working intervals.
type slotPlan struct {
	total        int
	travel       int
	travelSource models.TravelSource
	home         bool
	bufferBefore int
	bufferAfter  int
	step         int
}

func (p slotPlan) front() int {
	if p.home {
		return p.travel + p.bufferBefore
	}
	return p.bufferBefore
}

func (p slotPlan) back() int {
	if p.home {
		return p.travel + p.bufferAfter
	}
	return p.bufferAfter
}

// dayContext is the per-staff data a candidate is validated against.
type dayContext struct {
	staffID     string
	date        string
	intervals   []models.WorkingInterval
	commitments []models.Commitment
	blocks      []models.BlockedInterval
}

// GenerateSingleStaffSlots proposes slots for one staff member on date, ranked best first.
// A day off, a vendor that does not travel to a home request, or a location outside
// the travel radius all yield an empty list.
func (e *Engine) GenerateSingleStaffSlots(ctx context.Context, vendorID, staffID, date string, services []models.ServiceRequirement, opts Options) ([]models.CandidateSlot, error) {
	if vendorID == "" {
		return nil, newValidationError("vendorId", "is required")
	}
	if staffID == "" {
		return nil, newValidationError("staffId", "is required")
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
	staff, err := e.loadStaff(ctx, vendorID, staffID)
	if err != nil {
		return nil, err
	}

	plan, ok := e.buildPlan(ctx, vendor, models.TotalMinutes(services), o)
	if !ok {
		return []models.CandidateSlot{}, nil
	}
	return e.staffSlots(ctx, vendorID, staff, day, plan)
}

func validateServices(services []models.ServiceRequirement) error {
	if len(services) == 0 {
		return newValidationError("services", "at least one service is required")
	}
	for _, s := range services {
		if err := s.Validate(); err != nil {
			return newValidationError("services", err.Error())
		}
	}
	return nil
}

// buildPlan resolves travel for home service. ok is false when the request can never
// produce slots: the vendor does not travel or the customer is out of range.
func (e *Engine) buildPlan(ctx context.Context, vendor *models.Vendor, total int, o resolvedOptions) (slotPlan, bool) {
	plan := slotPlan{
		total:        total,
		home:         o.home,
		bufferBefore: o.bufferBefore,
		bufferAfter:  o.bufferAfter,
		step:         o.step,
	}
	if !o.home {
		return plan, true
	}
	if !vendor.SupportsTravel() {
		e.logger.Debug("vendor does not offer home service", zap.String("vendorId", vendor.ID))
		return plan, false
	}

	est, err := e.travel.Estimate(ctx, travel.Request{
		Origin:             vendor.BaseLocation,
		Destination:        o.customerLocation,
		Vendor:             vendor,
		UseExternalRouting: o.useExternalRouting,
	})
	switch {
	case errors.Is(err, travel.ErrOutOfRange):
		e.logger.Debug("customer outside travel radius", zap.String("vendorId", vendor.ID), zap.Error(err))
		return plan, false
	case err != nil:
		e.logger.Warn("travel estimate failed, using conservative fallback",
			zap.String("vendorId", vendor.ID),
			zap.Int("fallbackMinutes", e.cfg.TravelFallbackMinutes),
			zap.Error(err))
		plan.travel = e.cfg.TravelFallbackMinutes
		plan.travelSource = models.SourceFallback
	default:
		plan.travel = est.Minutes
		plan.travelSource = est.Source
	}
	return plan, true
}

// staffSlots generates, validates and scores the candidates of one staff member.
func (e *Engine) staffSlots(ctx context.Context, vendorID string, staff *models.Staff, day time.Time, plan slotPlan) ([]models.CandidateSlot, error) {
	if !staff.Active {
		return []models.CandidateSlot{}, nil
	}
	intervals := staff.WorkingIntervals(day)
	if len(intervals) == 0 {
		return []models.CandidateSlot{}, nil
	}

	dc := dayContext{
		staffID:   staff.ID,
		date:      day.Format(models.DateLayout),
		intervals: intervals,
		blocks:    staff.BlocksOn(day),
	}
	commitments, err := e.commitments.ListCommitments(ctx, vendorID, []string{staff.ID}, dc.date)
	if err != nil {
		return nil, err
	}
	dc.commitments = commitments

	slots := []models.CandidateSlot{}
	for _, c := range walk(intervals, plan, e.nowMinutes(day)) {
		if !e.valid(c, dc) {
			continue
		}
		c.Score = ScoreSingle(c, staff.Rating, staff.YearsOfExperience)
		slots = append(slots, c)
	}
	sortCandidates(slots)
	return slots, nil
}

// walk steps through each interval and emits every candidate whose service fits
// inside the interval once travel and buffers are reserved at both ends. On today's
// date each interval is clipped to the first step boundary at or after nowMinutes.
func walk(intervals []models.WorkingInterval, plan slotPlan, nowMinutes int) []models.CandidateSlot {
	var out []models.CandidateSlot
	step := plan.step
	if step <= 0 || plan.total <= 0 {
		return nil
	}
	for _, wi := range intervals {
		start := wi.Start
		if nowMinutes >= 0 {
			if clip := roundUp(nowMinutes, step); clip > start {
				start = clip
			}
		}
		adjustedEnd := wi.End - plan.back()
		for s := start + plan.front(); s+plan.total <= adjustedEnd; s += step {
			out = append(out, newCandidate(s, plan))
		}
	}
	return out
}

func roundUp(v, step int) int {
	if r := v % step; r != 0 {
		return v + step - r
	}
	return v
}

func newCandidate(start int, plan slotPlan) models.CandidateSlot {
	c := models.CandidateSlot{
		ServiceStart:  start,
		ServiceEnd:    start + plan.total,
		StartTime:     utils.FromMinutes(start),
		EndTime:       utils.FromMinutes(start + plan.total),
		BufferBefore:  plan.bufferBefore,
		BufferAfter:   plan.bufferAfter,
		IsHomeService: plan.home,
	}
	if plan.home {
		c.TravelMinutes = plan.travel
		c.TravelSource = plan.travelSource
	}
	return c
}

// valid checks a candidate's footprint: inside a single working interval, clear of
// every commitment footprint and clear of every blocked interval.
func (e *Engine) valid(c models.CandidateSlot, dc dayContext) bool {
	fs, fe := c.Footprint()

	inside := false
	for _, wi := range dc.intervals {
		if wi.Contains(fs, fe) {
			inside = true
			break
		}
	}
	if !inside {
		return false
	}
	if e.conflicts.FindConflict(dc.staffID, dc.date, fs, fe, dc.commitments, "") != nil {
		return false
	}
	for _, b := range dc.blocks {
		if Overlaps(fs, fe, b.Start, b.End) {
			return false
		}
	}
	return true
}
