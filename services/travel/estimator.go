package travel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"glowslots/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Request asks for the one-way trip from Origin to Destination on behalf of Vendor.
type Request struct {
	Origin             models.GeoPoint
	Destination        models.GeoPoint
	Vendor             *models.Vendor
	UseExternalRouting bool
}

// Options configures an Estimator. Zero values fall back to the documented defaults.
type Options struct {
	Store             Store
	Provider          RoutingProvider
	RoutingTimeout    time.Duration // default 4s
	CacheTTL          time.Duration // default 5m
	DefaultSpeedKmh   float64       // used when a vendor has no speed; default 30
	DefaultRadiusKm   float64       // used when a vendor has no radius; 0 means unbounded
	TrafficMultiplier float64       // default 1.2
	BatchConcurrency  int           // default 8
	Logger            *zap.Logger
	Metrics           *Metrics

	// Strategies replaces the cache, routing, haversine chain when set.
	Strategies []Strategy
}

// Estimator runs an ordered chain of strategies and caches what they produce.
type Estimator struct {
	strategies       []Strategy
	store            Store
	cacheTTL         time.Duration
	defaultRadiusKm  float64
	batchConcurrency int
	logger           *zap.Logger
	metrics          *Metrics
}

func NewEstimator(opts Options) *Estimator {
	logger := logOrNop(opts.Logger)
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if opts.DefaultSpeedKmh <= 0 {
		opts.DefaultSpeedKmh = 30
	}
	if opts.TrafficMultiplier <= 0 {
		opts.TrafficMultiplier = 1.2
	}
	if opts.BatchConcurrency <= 0 {
		opts.BatchConcurrency = 8
	}

	strategies := opts.Strategies
	if len(strategies) == 0 {
		strategies = []Strategy{
			&CacheStrategy{Store: opts.Store, Logger: logger, Metrics: opts.Metrics},
			&RoutingStrategy{Provider: opts.Provider, Timeout: opts.RoutingTimeout, Logger: logger, Metrics: opts.Metrics},
			&HaversineStrategy{DefaultSpeedKmh: opts.DefaultSpeedKmh, TrafficMultiplier: opts.TrafficMultiplier},
		}
	}

	return &Estimator{
		strategies:       strategies,
		store:            opts.Store,
		cacheTTL:         opts.CacheTTL,
		defaultRadiusKm:  opts.DefaultRadiusKm,
		batchConcurrency: opts.BatchConcurrency,
		logger:           logger,
		metrics:          opts.Metrics,
	}
}

// Estimate returns the one-way travel estimate for req.
// A vendor that does not travel yields a zero estimate tagged vendor-not-supported.
// A destination beyond the vendor's radius fails with *OutOfRangeError.
func (e *Estimator) Estimate(ctx context.Context, req Request) (models.TravelEstimate, error) {
	if req.Vendor == nil {
		return models.TravelEstimate{}, errors.New("travel: vendor is required")
	}
	if !req.Vendor.SupportsTravel() {
		e.metrics.observeEstimate(string(models.SourceVendorNotSupported))
		return models.TravelEstimate{Source: models.SourceVendorNotSupported}, nil
	}

	km := HaversineKm(req.Origin, req.Destination)
	radius := req.Vendor.TravelRadiusKm
	if radius <= 0 {
		radius = e.defaultRadiusKm
	}
	if radius > 0 && km > radius {
		return models.TravelEstimate{}, &OutOfRangeError{VendorID: req.Vendor.ID, DistanceKm: km, RadiusKm: radius}
	}

	q := Query{
		Origin:             req.Origin,
		Destination:        req.Destination,
		Vendor:             req.Vendor,
		UseExternalRouting: req.UseExternalRouting,
		DistanceKm:         km,
		CacheKey:           CacheKey(req.Origin, req.Destination, req.Vendor.ID),
	}

	for _, s := range e.strategies {
		est, err := s.Estimate(ctx, q)
		if isTryNext(err) {
			continue
		}
		if err != nil {
			return models.TravelEstimate{}, fmt.Errorf("%s strategy: %w", s.Name(), err)
		}
		if est.Source != models.SourceCache {
			e.remember(ctx, q.CacheKey, est)
		}
		e.metrics.observeEstimate(string(est.Source))
		return est, nil
	}
	return models.TravelEstimate{}, ErrNoEstimate
}

func (e *Estimator) remember(ctx context.Context, key string, est models.TravelEstimate) {
	if e.store == nil {
		return
	}
	if err := e.store.Set(ctx, key, est, e.cacheTTL); err != nil {
		e.metrics.observeCacheError()
		e.logger.Warn("travel cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// BatchResult is one vendor's outcome in EstimateBatch.
type BatchResult struct {
	VendorID string                 `json:"vendorId"`
	Estimate *models.TravelEstimate `json:"estimate,omitempty"`
	Err      error                  `json:"-"`
}

// EstimateBatch estimates the trip from every vendor's base location to destination.
// Lookups run concurrently; a failing vendor is reported in its result and never
// aborts the others. Results keep the order of vendors.
func (e *Estimator) EstimateBatch(ctx context.Context, destination models.GeoPoint, vendors []*models.Vendor, useExternalRouting bool) []BatchResult {
	results := make([]BatchResult, len(vendors))

	var g errgroup.Group
	g.SetLimit(e.batchConcurrency)
	for i, v := range vendors {
		i, v := i, v
		g.Go(func() error {
			if v == nil {
				results[i] = BatchResult{Err: errors.New("travel: vendor is required")}
				return nil
			}
			est, err := e.Estimate(ctx, Request{
				Origin:             v.BaseLocation,
				Destination:        destination,
				Vendor:             v,
				UseExternalRouting: useExternalRouting,
			})
			if err != nil {
				results[i] = BatchResult{VendorID: v.ID, Err: err}
				return nil
			}
			results[i] = BatchResult{VendorID: v.ID, Estimate: &est}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
