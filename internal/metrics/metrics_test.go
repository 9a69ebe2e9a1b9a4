package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHandler_nilMetrics(t *testing.T) {
	var m *Metrics
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	m.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	if got := rr.Body.String(); !strings.Contains(got, "metrics unavailable") {
		t.Fatalf("expected body to mention metrics unavailable, got %q", got)
	}
}

func TestHandler_exposesRegisteredMetrics(t *testing.T) {
	m := New()
	m.ObserveHTTPRequest(http.MethodGet, "/readyz", http.StatusOK, 12*time.Millisecond)
	m.AddPinsDropped(3)
	m.IncIngestRun()
	m.ObserveIngestRunDuration(3 * time.Second)
	m.AddLeadsUpserted(7)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	m.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	body := rr.Body.String()
	if !strings.Contains(body, "cobecium_http_requests_total") {
		t.Fatalf("expected http_requests_total metric to be present")
	}
	if !strings.Contains(body, "cobecium_http_requests_total{method=\"GET\",path=\"/readyz\",status=\"200\"} 1") {
		t.Fatalf("expected labeled request counter to be incremented; body=%s", body)
	}
	if !strings.Contains(body, "cobecium_map_pins_dropped_total 3") {
		t.Fatalf("expected pins dropped counter at 3; body=%s", body)
	}
	if !strings.Contains(body, "cobecium_ingest_runs_total 1") {
		t.Fatalf("expected ingest runs counter to be incremented; body=%s", body)
	}
	if !strings.Contains(body, "cobecium_ingest_run_duration_seconds_count 1") {
		t.Fatalf("expected ingest run duration histogram to have one observation; body=%s", body)
	}
	if !strings.Contains(body, "cobecium_ingest_leads_upserted_total 7") {
		t.Fatalf("expected leads upserted counter at 7; body=%s", body)
	}
}

func TestNilSafety(t *testing.T) {
	var m *Metrics
	m.ObserveHTTPRequest(http.MethodGet, "/", 200, time.Millisecond)
	m.AddPinsDropped(1)
	m.IncIngestRun()
	m.ObserveIngestRunDuration(time.Second)
	m.AddLeadsUpserted(1)
}
