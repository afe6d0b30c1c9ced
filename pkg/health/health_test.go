package health

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckerStates(t *testing.T) {
	c := NewChecker()
	if got := c.State(); got != "starting" {
		t.Fatalf("State() = %q, want starting", got)
	}

	c.SetReady()
	if got := c.State(); got != "ready" {
		t.Fatalf("State() = %q, want ready", got)
	}

	c.SetDraining()
	if got := c.State(); got != "draining" {
		t.Fatalf("State() = %q, want draining", got)
	}
}

func TestLivenessHandler(t *testing.T) {
	c := NewChecker()
	rec := httptest.NewRecorder()
	c.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("liveness status = %d, want 200", rec.Code)
	}
}

func TestReadinessHandler(t *testing.T) {
	c := NewChecker()
	handler := c.ReadinessHandler()

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("starting readiness status = %d, want 503", rec.Code)
	}

	c.SetReady()
	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("ready readiness status = %d, want 200", rec.Code)
	}

	c.SetDraining()
	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("draining readiness status = %d, want 503", rec.Code)
	}
}
