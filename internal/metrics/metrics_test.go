package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func getTestMetrics() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry(), nil)
}

func TestBusinessCounters(t *testing.T) {
	m := getTestMetrics()

	m.IncrementPostCreated()
	m.IncrementPostCreated()
	m.IncrementPostUpdated()
	m.IncrementPostDeleted()
	m.IncrementAttachmentStored()
	m.IncrementAttachmentDeleted()

	if got := testutil.ToFloat64(m.PostsCreatedTotal); got != 2 {
		t.Errorf("posts created = %f, want 2", got)
	}
	if got := testutil.ToFloat64(m.PostsUpdatedTotal); got != 1 {
		t.Errorf("posts updated = %f, want 1", got)
	}
	if got := testutil.ToFloat64(m.PostsDeletedTotal); got != 1 {
		t.Errorf("posts deleted = %f, want 1", got)
	}
	if got := testutil.ToFloat64(m.AttachmentsStoredTotal); got != 1 {
		t.Errorf("attachments stored = %f, want 1", got)
	}
	if got := testutil.ToFloat64(m.AttachmentsDeletedTotal); got != 1 {
		t.Errorf("attachments deleted = %f, want 1", got)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	m := getTestMetrics()

	m.RecordHTTPRequest("GET", "/api/posts", 200, 50*time.Millisecond)
	m.RecordHTTPRequest("GET", "/api/posts", 200, 70*time.Millisecond)
	m.RecordHTTPRequest("POST", "/api/posts", 400, 10*time.Millisecond)

	if got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/posts", "2xx")); got != 2 {
		t.Errorf("GET 2xx count = %f, want 2", got)
	}
	if got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/posts", "4xx")); got != 1 {
		t.Errorf("POST 4xx count = %f, want 1", got)
	}
}

func TestCategorizeStatus(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{404, "4xx"},
		{500, "5xx"},
		{502, "5xx"},
		{100, "unknown"},
	}

	for _, tt := range tests {
		if got := categorizeStatus(tt.code); got != tt.want {
			t.Errorf("categorizeStatus(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestShouldSkipEndpoint(t *testing.T) {
	for _, path := range []string{"/metrics", "/health", "/ready"} {
		if !ShouldSkipEndpoint(path) {
			t.Errorf("ShouldSkipEndpoint(%q) = false, want true", path)
		}
	}
	if ShouldSkipEndpoint("/api/posts") {
		t.Error("ShouldSkipEndpoint(/api/posts) = true, want false")
	}
}
