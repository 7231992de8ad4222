package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/boardsearch/internal/domain/search/request"
	"github.com/kailas-cloud/boardsearch/internal/domain/search/result"
	chiTransport "github.com/kailas-cloud/boardsearch/internal/transport/chi"
	healthuc "github.com/kailas-cloud/boardsearch/internal/usecase/health"
)

type stubSearcher struct{}

func (stubSearcher) Search(context.Context, string, *request.Request) (result.Response, error) {
	return result.Response{Items: []result.Item{}}, nil
}

type stubHealth struct{}

func (stubHealth) Check(context.Context) healthuc.Report {
	return healthuc.Report{Status: healthuc.Healthy, Checks: map[string]healthuc.CheckResult{}}
}

func newInstrumentedRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(Middleware())
	chiTransport.NewServer(stubSearcher{}, stubHealth{}, zap.NewNop()).Routes(r)
	return r
}

func serve(h http.Handler, target, viewer string) int {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	if viewer != "" {
		req.Header.Set(chiTransport.ViewerHeader, viewer)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr.Code
}

func requests(path, status string) float64 {
	return testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, path, status))
}

func TestMiddleware_SearchRouteByStatus(t *testing.T) {
	h := newInstrumentedRouter()
	okBefore := requests("/api/v1/search", "200")
	deniedBefore := requests("/api/v1/search", "401")

	if code := serve(h, "/api/v1/search?q=sprint", "u1"); code != http.StatusOK {
		t.Fatalf("with viewer: got %d, want %d", code, http.StatusOK)
	}
	if code := serve(h, "/api/v1/search?q=sprint", ""); code != http.StatusUnauthorized {
		t.Fatalf("without viewer: got %d, want %d", code, http.StatusUnauthorized)
	}

	if got := requests("/api/v1/search", "200") - okBefore; got != 1 {
		t.Errorf("200 on search route: got %v, want 1", got)
	}
	if got := requests("/api/v1/search", "401") - deniedBefore; got != 1 {
		t.Errorf("401 on search route: got %v, want 1", got)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected http_request_duration_seconds observations")
	}
}

func TestMiddleware_ExemptRoutesNeedNoViewer(t *testing.T) {
	h := newInstrumentedRouter()

	for _, path := range []string{"/health", "/metrics"} {
		before := requests(path, "200")
		if code := serve(h, path, ""); code != http.StatusOK {
			t.Fatalf("%s: got %d, want %d", path, code, http.StatusOK)
		}
		if got := requests(path, "200") - before; got != 1 {
			t.Errorf("%s: counted %v, want 1", path, got)
		}
	}
}

func TestStatusWriter_DefaultsToOKOnBodyWrite(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &statusWriter{ResponseWriter: rr, status: http.StatusOK}

	_, _ = w.Write([]byte("{}"))
	w.WriteHeader(http.StatusTeapot)

	if w.status != http.StatusOK {
		t.Errorf("status after implicit header: got %d, want %d", w.status, http.StatusOK)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "unknown"},
		{"/api/v1/search", "/api/v1/search"},
		{"/health", "/health"},
	}

	for _, tc := range tests {
		if got := normalizePath(tc.input); got != tc.expected {
			t.Errorf("normalizePath(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
