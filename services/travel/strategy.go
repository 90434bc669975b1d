package travel

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"glowslots/models"

	"go.uber.org/zap"
)

// Query is the input every strategy sees. DistanceKm is the pre-computed
// great-circle distance.
type Query struct {
	Origin             models.GeoPoint
	Destination        models.GeoPoint
	Vendor             *models.Vendor
	UseExternalRouting bool
	DistanceKm         float64
	CacheKey           string
}

// Strategy produces an estimate or returns ErrTryNext.
type Strategy interface {
	Name() string
	Estimate(ctx context.Context, q Query) (models.TravelEstimate, error)
}

// CacheStrategy answers from a Store. Read errors defer to the next strategy.
type CacheStrategy struct {
	Store   Store
	Logger  *zap.Logger
	Metrics *Metrics
}

func (s *CacheStrategy) Name() string { return string(models.SourceCache) }

func (s *CacheStrategy) Estimate(ctx context.Context, q Query) (models.TravelEstimate, error) {
	if s.Store == nil {
		return models.TravelEstimate{}, ErrTryNext
	}
	est, ok, err := s.Store.Get(ctx, q.CacheKey)
	if err != nil {
		s.Metrics.observeCacheError()
		logOrNop(s.Logger).Warn("travel cache read failed", zap.String("key", q.CacheKey), zap.Error(err))
		return models.TravelEstimate{}, ErrTryNext
	}
	if !ok {
		return models.TravelEstimate{}, ErrTryNext
	}
	est.Source = models.SourceCache
	return est, nil
}

// RoutingStrategy asks an external provider, bounded by Timeout. Every failure is
// absorbed and defers to the next strategy.
type RoutingStrategy struct {
	Provider RoutingProvider
	Timeout  time.Duration
	Logger   *zap.Logger
	Metrics  *Metrics
}

func (s *RoutingStrategy) Name() string { return string(models.SourceExternalAPI) }

func (s *RoutingStrategy) Estimate(ctx context.Context, q Query) (models.TravelEstimate, error) {
	if s.Provider == nil || !q.UseExternalRouting {
		return models.TravelEstimate{}, ErrTryNext
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	route, err := s.Provider.Route(ctx, q.Origin, q.Destination)
	if err == nil && route.Duration <= 0 {
		err = fmt.Errorf("%w: non-positive duration", ErrUpstreamUnavailable)
	}
	if err != nil {
		s.Metrics.observeRoutingFailure(failureReason(err))
		logOrNop(s.Logger).Warn("routing provider failed, falling back",
			zap.String("vendorId", vendorID(q.Vendor)), zap.Error(err))
		return models.TravelEstimate{}, ErrTryNext
	}

	km := route.DistanceKm
	if km <= 0 {
		km = q.DistanceKm
	}
	return models.TravelEstimate{
		Minutes: int(math.Ceil(route.Duration.Minutes())),
		Km:      km,
		Source:  models.SourceExternalAPI,
	}, nil
}

// HaversineStrategy always answers from straight-line distance and speed.
type HaversineStrategy struct {
	DefaultSpeedKmh   float64
	TrafficMultiplier float64
}

func (s *HaversineStrategy) Name() string { return string(models.SourceHaversine) }

func (s *HaversineStrategy) Estimate(_ context.Context, q Query) (models.TravelEstimate, error) {
	speed := s.DefaultSpeedKmh
	if q.Vendor != nil && q.Vendor.TravelSpeedKmh > 0 {
		speed = q.Vendor.TravelSpeedKmh
	}
	if speed <= 0 {
		return models.TravelEstimate{}, fmt.Errorf("travel: no travel speed configured for vendor %s", vendorID(q.Vendor))
	}
	multiplier := s.TrafficMultiplier
	if multiplier <= 0 {
		multiplier = 1
	}
	return models.TravelEstimate{
		Minutes: DriveMinutes(q.DistanceKm, speed, multiplier),
		Km:      q.DistanceKm,
		Source:  models.SourceHaversine,
	}, nil
}

func vendorID(v *models.Vendor) string {
	if v == nil {
		return ""
	}
	return v.ID
}

func logOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

func isTryNext(err error) bool {
	return errors.Is(err, ErrTryNext)
}
