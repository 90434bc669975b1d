package travel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"glowslots/models"

	"golang.org/x/time/rate"
)

// Route is a routing provider's answer for one origin/destination pair.
type Route struct {
	Duration   time.Duration
	DistanceKm float64
}

// RoutingProvider resolves driving time between two points.
type RoutingProvider interface {
	Route(ctx context.Context, origin, destination models.GeoPoint) (Route, error)
}

// distanceMatrixResponse is the subset of the Google Distance Matrix payload we read.
type distanceMatrixResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Rows         []struct {
		Elements []struct {
			Status   string `json:"status"`
			Duration struct {
				Value float64 `json:"value"` // seconds
			} `json:"duration"`
			Distance struct {
				Value float64 `json:"value"` // metres
			} `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
}

// GoogleRoutingClient calls the Google Distance Matrix API.
type GoogleRoutingClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewGoogleRoutingClient builds a client whose calls never exceed timeout and are
// throttled to requestsPerSecond.
func NewGoogleRoutingClient(apiKey, baseURL string, timeout time.Duration, requestsPerSecond float64) *GoogleRoutingClient {
	limit := rate.Inf
	burst := 1
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
		burst = int(requestsPerSecond)
		if burst < 1 {
			burst = 1
		}
	}
	return &GoogleRoutingClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, burst),
	}
}

func (g *GoogleRoutingClient) Route(ctx context.Context, origin, destination models.GeoPoint) (Route, error) {
	if g.apiKey == "" {
		return Route{}, fmt.Errorf("%w: no api key configured", ErrUpstreamUnavailable)
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return Route{}, fmt.Errorf("%w: rate limit wait: %v", ErrUpstreamUnavailable, err)
	}

	q := url.Values{}
	q.Set("origins", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
	q.Set("destinations", fmt.Sprintf("%f,%f", destination.Lat, destination.Lng))
	q.Set("mode", "driving")
	q.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Route{}, fmt.Errorf("%w: build request: %v", ErrUpstreamUnavailable, err)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return Route{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Route{}, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var payload distanceMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Route{}, fmt.Errorf("%w: decode response: %v", ErrUpstreamUnavailable, err)
	}
	if payload.Status != "OK" {
		return Route{}, fmt.Errorf("%w: api status %s %s", ErrUpstreamUnavailable, payload.Status, payload.ErrorMessage)
	}
	if len(payload.Rows) == 0 || len(payload.Rows[0].Elements) == 0 {
		return Route{}, fmt.Errorf("%w: empty matrix", ErrUpstreamUnavailable)
	}
	el := payload.Rows[0].Elements[0]
	if el.Status != "OK" {
		return Route{}, fmt.Errorf("%w: element status %s", ErrUpstreamUnavailable, el.Status)
	}
	if el.Duration.Value <= 0 {
		return Route{}, fmt.Errorf("%w: missing duration", ErrUpstreamUnavailable)
	}
	return Route{
		Duration:   time.Duration(el.Duration.Value * float64(time.Second)),
		DistanceKm: el.Distance.Value / 1000,
	}, nil
}

// failureReason buckets a routing error for metrics.
func failureReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "upstream"
	}
}
