package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"glowslots/models"
	"glowslots/services/travel"

	"go.uber.org/zap"
)

// Config holds the engine's business constants.
type Config struct {
	Location                    *time.Location // business timezone; nil means UTC
	TravelFallbackMinutes       int            // used when travel estimation fails; default 30
	CommitmentHomeTravelMinutes int            // default 30
	DefaultStepMinutes          int            // default 15
	MaxAdvanceBookingDays       int            // default 365
}

// Dependencies are the collaborators the engine reads from.
type Dependencies struct {
	Staff       StaffDirectory
	Vendors     VendorDirectory
	Commitments CommitmentSource
	Packages    PackageCatalog
	Travel      TravelEstimator
	Clock       Clock
	Logger      *zap.Logger
}

// Options tune a single slot search.
type Options struct {
	BufferBeforeMinutes   int              `json:"bufferBeforeMinutes"`
	BufferAfterMinutes    int              `json:"bufferAfterMinutes"`
	StepMinutes           int              `json:"stepMinutes"`
	MaxAdvanceBookingDays int              `json:"maxAdvanceBookingDays"`
	UseExternalRoutingAPI *bool            `json:"useExternalRoutingApi"`
	ServiceMode           string           `json:"serviceMode"` // "in_home" or "in_store"; inferred from CustomerLocation when empty
	CustomerLocation      *models.GeoPoint `json:"customerLocation"`
}

// resolvedOptions is Options with defaults applied and the mode decided.
type resolvedOptions struct {
	bufferBefore       int
	bufferAfter        int
	step               int
	maxDays            int
	useExternalRouting bool
	home               bool
	customerLocation   models.GeoPoint
}

// Engine proposes appointment slots. It never reserves them.
type Engine struct {
	staff       StaffDirectory
	vendors     VendorDirectory
	commitments CommitmentSource
	packages    PackageCatalog
	travel      TravelEstimator
	clock       Clock
	logger      *zap.Logger
	cfg         Config
	conflicts   ConflictChecker
}

func NewEngine(deps Dependencies, cfg Config) *Engine {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.TravelFallbackMinutes <= 0 {
		cfg.TravelFallbackMinutes = 30
	}
	if cfg.CommitmentHomeTravelMinutes <= 0 {
		cfg.CommitmentHomeTravelMinutes = 30
	}
	if cfg.DefaultStepMinutes <= 0 {
		cfg.DefaultStepMinutes = 15
	}
	if cfg.MaxAdvanceBookingDays <= 0 {
		cfg.MaxAdvanceBookingDays = 365
	}
	clock := deps.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	estimator := deps.Travel
	if estimator == nil {
		// No cache and no routing provider: haversine only.
		estimator = travel.NewEstimator(travel.Options{Logger: logger})
	}
	return &Engine{
		staff:       deps.Staff,
		vendors:     deps.Vendors,
		commitments: deps.Commitments,
		packages:    deps.Packages,
		travel:      estimator,
		clock:       clock,
		logger:      logger,
		cfg:         cfg,
		conflicts:   ConflictChecker{HomeTravelMinutes: cfg.CommitmentHomeTravelMinutes},
	}
}

func (e *Engine) resolve(opts Options) (resolvedOptions, error) {
	if opts.BufferBeforeMinutes < 0 {
		return resolvedOptions{}, newValidationError("bufferBeforeMinutes", "must not be negative")
	}
	if opts.BufferAfterMinutes < 0 {
		return resolvedOptions{}, newValidationError("bufferAfterMinutes", "must not be negative")
	}
	if opts.StepMinutes < 0 {
		return resolvedOptions{}, newValidationError("stepMinutes", "must not be negative")
	}
	if opts.MaxAdvanceBookingDays < 0 {
		return resolvedOptions{}, newValidationError("maxAdvanceBookingDays", "must not be negative")
	}

	r := resolvedOptions{
		bufferBefore:       opts.BufferBeforeMinutes,
		bufferAfter:        opts.BufferAfterMinutes,
		step:               opts.StepMinutes,
		maxDays:            opts.MaxAdvanceBookingDays,
		useExternalRouting: true,
	}
	if r.step == 0 {
		r.step = e.cfg.DefaultStepMinutes
	}
	if r.maxDays == 0 {
		r.maxDays = e.cfg.MaxAdvanceBookingDays
	}
	if opts.UseExternalRoutingAPI != nil {
		r.useExternalRouting = *opts.UseExternalRoutingAPI
	}

	switch opts.ServiceMode {
	case models.ModeInHome:
		r.home = true
	case models.ModeInStore:
	case "":
		r.home = opts.CustomerLocation != nil
	default:
		return resolvedOptions{}, newValidationError("serviceMode", fmt.Sprintf("unknown mode %q", opts.ServiceMode))
	}
	if r.home {
		if opts.CustomerLocation == nil {
			return resolvedOptions{}, newValidationError("customerLocation", "required for home service")
		}
		loc, err := models.NewGeoPoint(opts.CustomerLocation.Lat, opts.CustomerLocation.Lng)
		if err != nil {
			return resolvedOptions{}, newValidationError("customerLocation", err.Error())
		}
		r.customerLocation = loc
	}
	return r, nil
}

// checkDate parses date in the business timezone and enforces the booking window.
func (e *Engine) checkDate(date string, maxDays int) (time.Time, error) {
	if date == "" {
		return time.Time{}, newValidationError("date", "is required")
	}
	day, err := time.ParseInLocation(models.DateLayout, date, e.cfg.Location)
	if err != nil {
		return time.Time{}, newValidationError("date", "expected YYYY-MM-DD")
	}
	today := e.today()
	if day.Before(today) {
		return time.Time{}, &PastDateError{Date: date, Today: today.Format(models.DateLayout)}
	}
	if day.After(today.AddDate(0, 0, maxDays)) {
		return time.Time{}, &AdvanceWindowExceededError{Date: date, MaxDays: maxDays}
	}
	return day, nil
}

func (e *Engine) now() time.Time {
	return e.clock.Now().In(e.cfg.Location)
}

func (e *Engine) today() time.Time {
	n := e.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, e.cfg.Location)
}

// nowMinutes returns minutes since midnight when day is today, otherwise -1.
func (e *Engine) nowMinutes(day time.Time) int {
	n := e.now()
	if n.Format(models.DateLayout) != day.Format(models.DateLayout) {
		return -1
	}
	return n.Hour()*60 + n.Minute()
}

func (e *Engine) loadVendor(ctx context.Context, vendorID string) (*models.Vendor, error) {
	v, err := e.vendors.GetVendor(ctx, vendorID)
	if errors.Is(err, models.ErrNotFound) || (err == nil && v == nil) {
		return nil, &NotFoundError{Kind: "vendor", ID: vendorID}
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (e *Engine) loadStaff(ctx context.Context, vendorID, staffID string) (*models.Staff, error) {
	s, err := e.staff.GetStaff(ctx, vendorID, staffID)
	if errors.Is(err, models.ErrNotFound) || (err == nil && s == nil) {
		return nil, &NotFoundError{Kind: "staff", ID: staffID}
	}
	if err != nil {
		return nil, err
	}
	if s.VendorID != "" && s.VendorID != vendorID {
		return nil, &NotFoundError{Kind: "staff", ID: staffID}
	}
	return s, nil
}

func (e *Engine) loadPackage(ctx context.Context, packageID string) (*models.ServicePackage, error) {
	p, err := e.packages.GetPackage(ctx, packageID)
	if errors.Is(err, models.ErrNotFound) || (err == nil && p == nil) {
		return nil, &NotFoundError{Kind: "package", ID: packageID}
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// EstimateTravel returns the one-way trip estimate for vendorID.
// Out-of-radius destinations fail with *travel.OutOfRangeError.
func (e *Engine) EstimateTravel(ctx context.Context, origin, destination models.GeoPoint, vendorID string, useExternalRouting bool) (models.TravelEstimate, error) {
	if vendorID == "" {
		return models.TravelEstimate{}, newValidationError("vendorId", "is required")
	}
	for field, p := range map[string]models.GeoPoint{"origin": origin, "destination": destination} {
		if _, err := models.NewGeoPoint(p.Lat, p.Lng); err != nil {
			return models.TravelEstimate{}, newValidationError(field, err.Error())
		}
	}
	vendor, err := e.loadVendor(ctx, vendorID)
	if err != nil {
		return models.TravelEstimate{}, err
	}
	return e.travel.Estimate(ctx, travel.Request{
		Origin:             origin,
		Destination:        destination,
		Vendor:             vendor,
		UseExternalRouting: useExternalRouting,
	})
}

// EstimateTravelBatch estimates from each vendor's base location to destination.
// A vendor that cannot be loaded is reported in its own result.
func (e *Engine) EstimateTravelBatch(ctx context.Context, destination models.GeoPoint, vendorIDs []string, useExternalRouting bool) ([]travel.BatchResult, error) {
	if len(vendorIDs) == 0 {
		return nil, newValidationError("vendorIds", "at least one vendor is required")
	}
	if _, err := models.NewGeoPoint(destination.Lat, destination.Lng); err != nil {
		return nil, newValidationError("destination", err.Error())
	}

	results := make([]travel.BatchResult, len(vendorIDs))
	var (
		vendors []*models.Vendor
		slots   []int
	)
	for i, id := range vendorIDs {
		v, err := e.loadVendor(ctx, id)
		if err != nil {
			results[i] = travel.BatchResult{VendorID: id, Err: err}
			continue
		}
		vendors = append(vendors, v)
		slots = append(slots, i)
	}
	if len(vendors) > 0 {
		for j, r := range e.travel.EstimateBatch(ctx, destination, vendors, useExternalRouting) {
			results[slots[j]] = r
		}
	}
	return results, nil
}

// CheckConflict returns the first active commitment of staffID on date that
// collides with [start, end), or nil.
func (e *Engine) CheckConflict(ctx context.Context, vendorID, staffID, date string, start, end int, excludeID string) (*models.Commitment, error) {
	if staffID == "" {
		return nil, newValidationError("staffId", "is required")
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, newValidationError("date", "expected YYYY-MM-DD")
	}
	if start < 0 || end > models.MinutesPerDay || start >= end {
		return nil, newValidationError("interval", "start must be before end")
	}
	commitments, err := e.commitments.ListCommitments(ctx, vendorID, []string{staffID}, date)
	if err != nil {
		return nil, err
	}
	return e.conflicts.FindConflict(staffID, date, start, end, commitments, excludeID), nil
}
