package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRegisterIdempotentAndCountersWork(t *testing.T) {
	regOK.Store(false)
	reg := prometheus.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	// idempotent: calling again should be no-op
	if err := Register(reg); err != nil {
		t.Fatalf("second register: %v", err)
	}

	IncApplied("a")
	IncApplied("a")
	IncRestored("a")
	IncFailed("a")
	IncSkippedPrivilege("b")
	ObserveBatchDuration("apply", 0.42)
	SetAppliedSetSize(3)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	wantNames := map[string]bool{
		"arcboost_tweaks_applied_total":           false,
		"arcboost_tweaks_restored_total":          false,
		"arcboost_tweaks_failed_total":            false,
		"arcboost_tweaks_skipped_privilege_total": false,
		"arcboost_batch_duration_seconds":         false,
		"arcboost_state_applied_tweaks":           false,
	}
	for _, mf := range mfs {
		n := mf.GetName()
		if _, ok := wantNames[n]; ok {
			wantNames[n] = true
			if len(mf.GetMetric()) == 0 {
				t.Fatalf("metric %s has no samples", n)
			}
		}
	}
	for n, ok := range wantNames {
		if !ok {
			t.Fatalf("expected to find metric %s", n)
		}
	}
}

func TestHelpersNoOpBeforeRegister(t *testing.T) {
	regOK.Store(false)
	// Must not panic or register anything implicitly.
	IncApplied("x")
	IncRestored("x")
	IncFailed("x")
	IncSkippedPrivilege("x")
	ObserveBatchDuration("restore", 1)
	SetAppliedSetSize(0)
}

func TestHandlerServesMetrics(t *testing.T) {
	regOK.Store(false)
	if err := Register(prometheus.DefaultRegisterer); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	IncApplied("x")

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "arcboost_tweaks_applied_total") {
		t.Fatal("expected applied counter in exposition")
	}
}
