package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agbru/countbench/internal/bench"
	"github.com/agbru/countbench/internal/logging"
)

// TestNewMetrics tests the Metrics constructor.
func TestNewMetrics(t *testing.T) {
	m := NewMetrics()

	if m == nil {
		t.Fatal("NewMetrics returned nil")
	}
	if m.handler == nil {
		t.Error("Metrics.handler should be initialized")
	}
}

// TestMetrics_WritePrometheus tests the Prometheus metrics endpoint.
func TestMetrics_WritePrometheus(t *testing.T) {
	m := NewMetrics()

	m.IncrementActiveRequests()
	defer m.DecrementActiveRequests()

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	rec := httptest.NewRecorder()

	m.WritePrometheus(rec, req)

	body := rec.Body.String()

	t.Run("Contains active requests metric", func(t *testing.T) {
		if !strings.Contains(body, "countbench_active_requests") {
			t.Error("metrics output should contain countbench_active_requests")
		}
	})

	t.Run("Contains total requests metric", func(t *testing.T) {
		if !strings.Contains(body, "countbench_requests_total") {
			t.Error("metrics output should contain countbench_requests_total")
		}
	})

	t.Run("Contains Go runtime metrics", func(t *testing.T) {
		if !strings.Contains(body, "go_") {
			t.Error("metrics output should contain Go runtime metrics")
		}
	})
}

// TestMetrics_ReporterEvents drives the bench.Reporter side and checks the
// counters land in the exposition output.
func TestMetrics_ReporterEvents(t *testing.T) {
	m := NewMetrics()

	m.ConfigStarted(bench.RunConfig{Size: 1000, Predicate: "even", Repeats: 7})
	m.Record(bench.Measurement{Strategy: bench.StrategySequential, Threads: 1, Duration: time.Millisecond, Match: true})
	m.Record(bench.Measurement{Strategy: bench.StrategyPartitioned, Threads: 4, Duration: time.Millisecond, Match: false})
	m.Record(bench.Measurement{Strategy: "pargo/reduce", Unsupported: true})
	m.SweepCompleted(bench.BestResult{Threads: 4, Median: 2 * time.Millisecond, Parallelism: 8, Ratio: 0.5})

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	m.WritePrometheus(rec, req)
	body := rec.Body.String()

	tests := []struct {
		name string
		want string
	}{
		{"configuration counted", "countbench_configurations_total 1"},
		{"sequential measurement counted", `countbench_measurements_total{strategy="sequential"} 1`},
		{"partitioned measurement counted", `countbench_measurements_total{strategy="partitioned"} 1`},
		{"mismatch counted", "countbench_mismatches_total 1"},
		{"unsupported counted", "countbench_unsupported_total 1"},
		{"best threads gauge", "countbench_sweep_best_threads 4"},
		{"best seconds gauge", "countbench_sweep_best_seconds 0.002"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(body, tt.want) {
				t.Errorf("metrics output missing %q", tt.want)
			}
		})
	}
}

// TestMetrics_UnsupportedSkipsMeasurementCount verifies an unsupported policy
// is never counted as a completed measurement or a mismatch.
func TestMetrics_UnsupportedSkipsMeasurementCount(t *testing.T) {
	m := NewMetrics()
	m.Record(bench.Measurement{Strategy: "pargo/atomic", Unsupported: true})

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	m.WritePrometheus(rec, req)
	body := rec.Body.String()

	if strings.Contains(body, `countbench_measurements_total{strategy="pargo/atomic"}`) {
		t.Error("unsupported policy must not appear in countbench_measurements_total")
	}
	if !strings.Contains(body, "countbench_mismatches_total 0") {
		t.Error("unsupported policy must not count as a mismatch")
	}
}

// TestServer_metricsMiddleware tests the request tracking middleware.
func TestServer_metricsMiddleware(t *testing.T) {
	t.Run("Next handler is called", func(t *testing.T) {
		s := &Server{
			metrics: NewMetrics(),
		}

		nextCalled := false
		next := func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
			w.WriteHeader(http.StatusOK)
		}

		handler := s.metricsMiddleware(next)
		req := httptest.NewRequest("GET", "/test", http.NoBody)
		rec := httptest.NewRecorder()

		handler(rec, req)

		if !nextCalled {
			t.Error("next handler was not called")
		}
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})
}

// TestServer_handleMetrics tests the /metrics endpoint handler.
func TestServer_handleMetrics(t *testing.T) {
	t.Run("GET returns metrics", func(t *testing.T) {
		s := &Server{
			metrics: NewMetrics(),
		}

		req := httptest.NewRequest("GET", "/metrics", http.NoBody)
		rec := httptest.NewRecorder()

		s.handleMetrics(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if !strings.Contains(rec.Body.String(), "countbench_") {
			t.Error("response should contain countbench metrics")
		}
	})

	t.Run("POST returns method not allowed", func(t *testing.T) {
		s := &Server{
			metrics: NewMetrics(),
			logger:  logging.NopLogger{},
		}

		req := httptest.NewRequest("POST", "/metrics", http.NoBody)
		rec := httptest.NewRecorder()

		s.handleMetrics(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
		}
	})
}

// TestServer_handleHealth tests the liveness endpoint.
func TestServer_handleHealth(t *testing.T) {
	s := &Server{metrics: NewMetrics()}

	req := httptest.NewRequest("GET", "/healthz", http.NoBody)
	rec := httptest.NewRecorder()

	s.handleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Body.String(); got != "ok\n" {
		t.Errorf("body = %q, want %q", got, "ok\n")
	}
}

// TestSecurityHeaders verifies the conservative response headers.
func TestSecurityHeaders(t *testing.T) {
	nextCalled := false
	handler := securityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	tests := []struct {
		header string
		want   string
	}{
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "DENY"},
		{"Referrer-Policy", "strict-origin-when-cross-origin"},
		{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			if got := rec.Header().Get(tt.header); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
	if !nextCalled {
		t.Error("next handler was not called")
	}
}

// TestServer_Endpoints exercises the wired mux end to end.
func TestServer_Endpoints(t *testing.T) {
	s := New("127.0.0.1:0", NewMetrics(), logging.NopLogger{})
	ts := httptest.NewServer(s.httpServer.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /metrics status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if got := resp.Header.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
}
