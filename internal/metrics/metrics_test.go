package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSearchMetrics(reg)

	m.ObserveSearch("ok", 120*time.Millisecond)
	m.ObserveSearch("rate_limited", time.Millisecond)
	m.ObservePost("positive")
	m.ObservePost("positive")
	m.ObservePost("neutral")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesTotal.WithLabelValues("rate_limited")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.PostsClassified.WithLabelValues("positive")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PostsClassified.WithLabelValues("neutral")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.SearchDuration))
}

func TestHTTPMetrics_Middleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/search", func(c echo.Context) error {
		return c.String(http.StatusTeapot, "hi")
	})
	e.GET("/metrics", echo.WrapHandler(Handler(NewRegistry())))

	for _, path := range []string{"/api/search", "/api/search", "/metrics"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.NotEqual(t, http.StatusNotFound, rec.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/search", "418")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestsTotal))
}
