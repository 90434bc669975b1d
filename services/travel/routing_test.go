package travel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"glowslots/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matrixServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		assert.Equal(t, "driving", r.URL.Query().Get("mode"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogleRoutingClientSuccess(t *testing.T) {
	srv := matrixServer(t, http.StatusOK, `{"status":"OK","rows":[{"elements":[{"status":"OK","duration":{"value":750},"distance":{"value":8400}}]}]}`)
	c := NewGoogleRoutingClient("secret", srv.URL, time.Second, 0)

	route, err := c.Route(context.Background(), equator, tenKmEast)
	require.NoError(t, err)
	assert.Equal(t, 750*time.Second, route.Duration)
	assert.Equal(t, 8.4, route.DistanceKm)
}

func TestGoogleRoutingClientFailures(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
	}{
		"bad status":    {http.StatusInternalServerError, `{}`},
		"malformed":     {http.StatusOK, `{"status":`},
		"denied":        {http.StatusOK, `{"status":"REQUEST_DENIED","error_message":"bad key"}`},
		"no route":      {http.StatusOK, `{"status":"OK","rows":[{"elements":[{"status":"ZERO_RESULTS"}]}]}`},
		"empty matrix":  {http.StatusOK, `{"status":"OK","rows":[]}`},
		"zero duration": {http.StatusOK, `{"status":"OK","rows":[{"elements":[{"status":"OK","duration":{"value":0}}]}]}`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := matrixServer(t, tc.status, tc.body)
			c := NewGoogleRoutingClient("secret", srv.URL, time.Second, 0)
			_, err := c.Route(context.Background(), equator, tenKmEast)
			assert.ErrorIs(t, err, ErrUpstreamUnavailable)
		})
	}
}

func TestGoogleRoutingClientWithoutKey(t *testing.T) {
	c := NewGoogleRoutingClient("", "http://unused.invalid", time.Second, 0)
	_, err := c.Route(context.Background(), equator, tenKmEast)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestGoogleRoutingClientTimeoutFeedsFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	client := NewGoogleRoutingClient("secret", srv.URL, 50*time.Millisecond, 10)
	e := NewEstimator(Options{Provider: client, RoutingTimeout: time.Second})

	est, err := e.Estimate(context.Background(), Request{
		Origin:             equator,
		Destination:        tenKmEast,
		Vendor:             travellingVendor(),
		UseExternalRouting: true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.SourceHaversine, est.Source)
}
