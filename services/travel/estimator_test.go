package travel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"glowslots/models"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	route Route
	err   error
	block bool
	calls int32
}

func (f *fakeProvider) Route(ctx context.Context, _, _ models.GeoPoint) (Route, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.block {
		<-ctx.Done()
		return Route{}, ctx.Err()
	}
	return f.route, f.err
}

var (
	equator     = models.GeoPoint{Lat: 0, Lng: 0}
	tenKmEast   = models.GeoPoint{Lat: 0, Lng: 0.09} // ~10.0075 km
	fortyKmEast = models.GeoPoint{Lat: 0, Lng: 0.36}
)

func travellingVendor() *models.Vendor {
	return &models.Vendor{
		ID:             "v1",
		TravelMode:     models.TravelBoth,
		TravelRadiusKm: 15,
		TravelSpeedKmh: 30,
		BaseLocation:   equator,
	}
}

func TestEstimateShopOnlyVendor(t *testing.T) {
	e := NewEstimator(Options{Store: NewMemoryStore()})
	v := travellingVendor()
	v.TravelMode = models.TravelShopOnly

	for _, dest := range []models.GeoPoint{tenKmEast, fortyKmEast, {Lat: 80, Lng: 170}} {
		est, err := e.Estimate(context.Background(), Request{Origin: equator, Destination: dest, Vendor: v})
		require.NoError(t, err)
		assert.Equal(t, models.TravelEstimate{Source: models.SourceVendorNotSupported}, est)
	}
}

func TestEstimateOutOfRange(t *testing.T) {
	e := NewEstimator(Options{})
	_, err := e.Estimate(context.Background(), Request{Origin: equator, Destination: fortyKmEast, Vendor: travellingVendor()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	var oor *OutOfRangeError
	require.True(t, errors.As(err, &oor))
	assert.InDelta(t, 40.03, oor.DistanceKm, 0.05)
	assert.Equal(t, 15.0, oor.RadiusKm)
}

func TestEstimateDefaultRadiusApplies(t *testing.T) {
	v := travellingVendor()
	v.TravelRadiusKm = 0
	e := NewEstimator(Options{DefaultRadiusKm: 5})
	_, err := e.Estimate(context.Background(), Request{Origin: equator, Destination: tenKmEast, Vendor: v})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestEstimateHaversineFallback(t *testing.T) {
	e := NewEstimator(Options{})
	est, err := e.Estimate(context.Background(), Request{Origin: equator, Destination: tenKmEast, Vendor: travellingVendor()})
	require.NoError(t, err)
	assert.Equal(t, models.SourceHaversine, est.Source)
	assert.Equal(t, 25, est.Minutes) // ceil(10.0075 / 30 * 60 * 1.2)
	assert.InDelta(t, 10.0075, est.Km, 0.001)
}

func TestEstimateUsesCacheOnSecondCall(t *testing.T) {
	store := NewMemoryStore()
	provider := &fakeProvider{route: Route{Duration: 12*time.Minute + 30*time.Second, DistanceKm: 11.2}}
	e := NewEstimator(Options{Store: store, Provider: provider})
	req := Request{Origin: equator, Destination: tenKmEast, Vendor: travellingVendor(), UseExternalRouting: true}

	first, err := e.Estimate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.SourceExternalAPI, first.Source)
	assert.Equal(t, 13, first.Minutes)
	assert.Equal(t, 11.2, first.Km)

	second, err := e.Estimate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.SourceCache, second.Source)
	assert.Equal(t, 13, second.Minutes)
	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.calls))
}

func TestEstimateRoutingFailureFallsThrough(t *testing.T) {
	provider := &fakeProvider{err: errors.New("boom")}
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	e := NewEstimator(Options{Provider: provider, Metrics: metrics})

	est, err := e.Estimate(context.Background(), Request{Origin: equator, Destination: tenKmEast, Vendor: travellingVendor(), UseExternalRouting: true})
	require.NoError(t, err)
	assert.Equal(t, models.SourceHaversine, est.Source)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.routingFailures.WithLabelValues("upstream")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.estimates.WithLabelValues("haversine")))
}

func TestEstimateRoutingTimeoutFallsThrough(t *testing.T) {
	provider := &fakeProvider{block: true}
	e := NewEstimator(Options{Provider: provider, RoutingTimeout: 20 * time.Millisecond})

	start := time.Now()
	est, err := e.Estimate(context.Background(), Request{Origin: equator, Destination: tenKmEast, Vendor: travellingVendor(), UseExternalRouting: true})
	require.NoError(t, err)
	assert.Equal(t, models.SourceHaversine, est.Source)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestEstimateSkipsRoutingWhenDisabled(t *testing.T) {
	provider := &fakeProvider{route: Route{Duration: time.Minute}}
	e := NewEstimator(Options{Provider: provider})

	est, err := e.Estimate(context.Background(), Request{Origin: equator, Destination: tenKmEast, Vendor: travellingVendor(), UseExternalRouting: false})
	require.NoError(t, err)
	assert.Equal(t, models.SourceHaversine, est.Source)
	assert.Equal(t, int32(0), atomic.LoadInt32(&provider.calls))
}

func TestEstimateUnreachableRedisFallsThrough(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	e := NewEstimator(Options{Store: NewRedisStore(client)})

	est, err := e.Estimate(context.Background(), Request{Origin: equator, Destination: tenKmEast, Vendor: travellingVendor()})
	require.NoError(t, err)
	assert.Equal(t, models.SourceHaversine, est.Source)
}

type alwaysNext struct{}

func (alwaysNext) Name() string { return "never" }
func (alwaysNext) Estimate(context.Context, Query) (models.TravelEstimate, error) {
	return models.TravelEstimate{}, ErrTryNext
}

func TestEstimateCustomChainExhausted(t *testing.T) {
	e := NewEstimator(Options{Strategies: []Strategy{alwaysNext{}}})
	_, err := e.Estimate(context.Background(), Request{Origin: equator, Destination: tenKmEast, Vendor: travellingVendor()})
	assert.ErrorIs(t, err, ErrNoEstimate)
}

func TestEstimateBatchCollectsPerVendorErrors(t *testing.T) {
	near := travellingVendor()
	far := travellingVendor()
	far.ID = "far"
	far.BaseLocation = models.GeoPoint{Lat: 0, Lng: 0.45}
	shop := travellingVendor()
	shop.ID = "shop"
	shop.TravelMode = models.TravelShopOnly

	e := NewEstimator(Options{Store: NewMemoryStore(), BatchConcurrency: 2})
	results := e.EstimateBatch(context.Background(), tenKmEast, []*models.Vendor{near, far, shop}, false)
	require.Len(t, results, 3)

	assert.Equal(t, "v1", results[0].VendorID)
	require.NoError(t, results[0].Err)
	assert.Equal(t, models.SourceHaversine, results[0].Estimate.Source)

	assert.Equal(t, "far", results[1].VendorID)
	assert.ErrorIs(t, results[1].Err, ErrOutOfRange)
	assert.Nil(t, results[1].Estimate)

	assert.Equal(t, "shop", results[2].VendorID)
	require.NoError(t, results[2].Err)
	assert.Equal(t, models.SourceVendorNotSupported, results[2].Estimate.Source)
}

func TestMemoryStoreExpiry(t *testing.T) {
	now := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", models.TravelEstimate{Minutes: 7}, 5*time.Minute))
	est, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 7, est.Minutes)

	now = now.Add(5 * time.Minute)
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestCacheKeyIncludesVendor(t *testing.T) {
	assert.NotEqual(t, CacheKey(equator, tenKmEast, "a"), CacheKey(equator, tenKmEast, "b"))
	assert.Equal(t, "travel:0.00000,0.00000:0.00000,0.09000:a", CacheKey(equator, tenKmEast, "a"))
}

func TestDriveMinutes(t *testing.T) {
	assert.Equal(t, 0, DriveMinutes(0, 30, 1.2))
	assert.Equal(t, 24, DriveMinutes(10, 30, 1.2))
	assert.Equal(t, 3, DriveMinutes(1, 30, 1.2)) // 2.4 rounds up
}
