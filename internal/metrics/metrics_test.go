package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMiddleware_RecordsDurationAndCount(t *testing.T) {
	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/:catalog", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest("GET", "/api/projects", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	requestsVal := testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/:catalog", "200"))
	if requestsVal != 1 {
		t.Errorf("expected http_requests_total == 1, got %f", requestsVal)
	}

	if testutil.CollectAndCount(m.httpRequestDuration) == 0 {
		t.Error("expected http_request_duration_seconds to have observations")
	}
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	m := New()
	r := gin.New()
	r.Use(m.Middleware())

	req := httptest.NewRequest("GET", "/nowhere", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	val := testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "unknown", "404"))
	if val != 1 {
		t.Errorf("expected unmatched request under the unknown label, got %f", val)
	}
}

func TestObserveFilter(t *testing.T) {
	m := New()

	m.ObserveFilter("blog", 50*time.Microsecond, 3)
	m.ObserveFilter("blog", 20*time.Microsecond, 0)
	m.ObserveFilter("projects", 10*time.Microsecond, 8)

	if n := testutil.CollectAndCount(m.filterResults); n != 2 {
		t.Errorf("expected one series per catalog, got %d", n)
	}
}

func TestCounters(t *testing.T) {
	m := New()

	m.JobFinished("contact_notification", "completed")
	m.JobFinished("contact_notification", "completed")
	m.ContactReceived()
	m.VisitTracked("/blog")

	if v := testutil.ToFloat64(m.jobsTotal.WithLabelValues("contact_notification", "completed")); v != 2 {
		t.Errorf("expected 2 completed jobs, got %f", v)
	}
	if v := testutil.ToFloat64(m.contactMessages); v != 1 {
		t.Errorf("expected 1 contact message, got %f", v)
	}
	if v := testutil.ToFloat64(m.visits.WithLabelValues("/blog")); v != 1 {
		t.Errorf("expected 1 visit, got %f", v)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	m.ObserveRequest("GET", "/", "200", time.Millisecond)
	m.ObserveFilter("blog", time.Millisecond, 1)
	m.JobFinished("visitor_cleanup", "failed")
	m.ContactReceived()
	m.VisitTracked("/")
}

func TestHandler_ExposesRegistry(t *testing.T) {
	m := New()
	m.ContactReceived()

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", http.NoBody))

	if rr.Code != 200 {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	body, err := io.ReadAll(rr.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if !strings.Contains(string(body), "portfolio_contact_messages_total 1") {
		t.Errorf("expected contact counter in exposition, got:\n%s", body)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "unknown"},
		{"/api/:catalog/facets/:facet", "/api/:catalog/facets/:facet"},
		{"/health", "/health"},
	}

	for _, tc := range tests {
		result := normalizePath(tc.input)
		if result != tc.expected {
			t.Errorf("normalizePath(%q) = %q, want %q", tc.input, result, tc.expected)
		}
	}
}
