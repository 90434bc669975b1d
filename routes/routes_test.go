package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"glowslots/handlers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func ok(c *gin.Context) { c.Status(http.StatusNoContent) }

func newBundle() *handlers.HandlerBundle {
	return &handlers.HandlerBundle{
		SingleStaffSlotsHandler:    ok,
		AnyStaffSlotsHandler:       ok,
		TeamSlotsHandler:           ok,
		EstimateTravelHandler:      ok,
		EstimateTravelBatchHandler: ok,
		CheckConflictHandler:       ok,
	}
}

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "glowslots_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	r := gin.New()
	RegisterRoutes(r, newBundle(), reg)

	for _, path := range []string{
		"/api/slots/single", "/api/slots/any", "/api/slots/team",
		"/api/travel/estimate", "/api/travel/batch", "/api/conflicts/check",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, strings.NewReader("{}")))
		assert.Equal(t, http.StatusNoContent, w.Code, path)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "glowslots_test_total 1")
}
