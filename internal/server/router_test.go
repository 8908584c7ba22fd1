package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/arcboost/arcboost/internal/engine"
	"github.com/arcboost/arcboost/internal/metrics"
	"github.com/arcboost/arcboost/internal/privilege"
	"github.com/arcboost/arcboost/internal/runner"
	"github.com/arcboost/arcboost/internal/state"
	"github.com/arcboost/arcboost/internal/tweak"
)

func init() { gin.SetMode(gin.TestMode) }

func testEngine(t *testing.T, run runner.Runner, elevated bool) *engine.Engine {
	t.Helper()
	reg, err := tweak.NewRegistry([]tweak.Tweak{
		{ID: "alpha", Name: "Alpha", Category: tweak.CategorySystem, ApplyCmd: "apply alpha", RestoreCmd: "restore alpha"},
		{ID: "bravo", Name: "Bravo", Category: tweak.CategoryNetwork, Elevated: true, ApplyCmd: "apply bravo", RestoreCmd: "restore bravo"},
		{ID: "charlie", Name: "Charlie", Category: tweak.CategoryGraphics, ApplyCmd: "apply charlie"},
	})
	require.NoError(t, err)
	if run == nil {
		run = runner.Func(func(context.Context, string) runner.Result {
			return runner.Result{OK: true, Output: "done"}
		})
	}
	st := state.NewStore(filepath.Join(t.TempDir(), "applied_tweaks.json"))
	gate := privilege.Func(func() bool { return elevated })
	return engine.New(reg, run, gate, st, engine.Options{})
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (int, []byte) {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Code, w.Body.Bytes()
}

func TestTweaksGroupedByCategory(t *testing.T) {
	h := NewRouter(testEngine(t, nil, true), "/api", false).Handler()
	code, body := doJSON(t, h, http.MethodGet, "/api/tweaks", "")
	require.Equal(t, http.StatusOK, code)

	var groups []groupResp
	require.NoError(t, json.Unmarshal(body, &groups))
	require.Len(t, groups, 3)
	require.Equal(t, tweak.CategorySystem, groups[0].Category)
	require.Equal(t, "alpha", groups[0].Tweaks[0].ID)
	// Commands never leak over the wire.
	require.NotContains(t, string(body), "apply alpha")
}

func TestStateEndpoint(t *testing.T) {
	eng := testEngine(t, nil, true)
	_, err := eng.Apply(context.Background(), []string{"alpha"})
	require.NoError(t, err)

	h := NewRouter(eng, "/api", false).Handler()
	code, body := doJSON(t, h, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, code)

	var st stateResp
	require.NoError(t, json.Unmarshal(body, &st))
	require.Equal(t, []string{"alpha"}, st.Applied)
	require.True(t, st.Elevated)
}

func TestApplyEndpoint(t *testing.T) {
	eng := testEngine(t, nil, false)
	h := NewRouter(eng, "/api", false).Handler()

	code, body := doJSON(t, h, http.MethodPost, "/api/apply", `{"ids":["alpha","bravo"]}`)
	require.Equal(t, http.StatusOK, code)

	var res engine.BatchResult
	require.NoError(t, json.Unmarshal(body, &res))
	require.Equal(t, 1, res.Applied)
	require.Equal(t, 1, res.Skipped)
	require.Equal(t, []string{"alpha"}, eng.Applied())
}

func TestApplyAll(t *testing.T) {
	eng := testEngine(t, nil, true)
	h := NewRouter(eng, "/api", false).Handler()

	code, body := doJSON(t, h, http.MethodPost, "/api/apply", `{"all":true}`)
	require.Equal(t, http.StatusOK, code)

	var res engine.BatchResult
	require.NoError(t, json.Unmarshal(body, &res))
	require.Equal(t, 3, res.Applied)
}

func TestApplyValidation(t *testing.T) {
	h := NewRouter(testEngine(t, nil, true), "/api", false).Handler()

	code, _ := doJSON(t, h, http.MethodPost, "/api/apply", `{"ids":[]}`)
	require.Equal(t, http.StatusBadRequest, code)

	code, _ = doJSON(t, h, http.MethodPost, "/api/apply", `{"ids":["nope"]}`)
	require.Equal(t, http.StatusBadRequest, code)

	code, _ = doJSON(t, h, http.MethodPost, "/api/apply", `not json`)
	require.Equal(t, http.StatusBadRequest, code)
}

func TestRestorePlanAndRestore(t *testing.T) {
	eng := testEngine(t, nil, true)
	_, err := eng.Apply(context.Background(), []string{"alpha", "charlie"})
	require.NoError(t, err)

	h := NewRouter(eng, "/api", false).Handler()
	code, body := doJSON(t, h, http.MethodGet, "/api/restore/plan", "")
	require.Equal(t, http.StatusOK, code)

	var plan planResp
	require.NoError(t, json.Unmarshal(body, &plan))
	require.Len(t, plan.Restorable, 1)
	require.Equal(t, "alpha", plan.Restorable[0].ID)
	require.Len(t, plan.Irreversible, 1)

	code, body = doJSON(t, h, http.MethodPost, "/api/restore", "")
	require.Equal(t, http.StatusOK, code)
	var res engine.BatchResult
	require.NoError(t, json.Unmarshal(body, &res))
	require.Equal(t, 1, res.Restored)
	require.Equal(t, []string{"charlie"}, eng.Applied())
}

func TestApplyConflictWhileBatchRuns(t *testing.T) {
	block := make(chan struct{})
	started := make(chan struct{})
	run := runner.Func(func(context.Context, string) runner.Result {
		close(started)
		<-block
		return runner.Result{OK: true}
	})
	eng := testEngine(t, run, true)
	h := NewRouter(eng, "/api", false).Handler()

	done := make(chan struct{})
	go func() {
		defer close(done)
		code, _ := doJSON(t, h, http.MethodPost, "/api/apply", `{"ids":["alpha"]}`)
		require.Equal(t, http.StatusOK, code)
	}()
	<-started

	code, _ := doJSON(t, h, http.MethodPost, "/api/restore", "")
	require.Equal(t, http.StatusConflict, code)

	close(block)
	<-done
}

func TestMetricsEndpointOptIn(t *testing.T) {
	require.NoError(t, metrics.Register(nil))
	eng := testEngine(t, nil, true)

	h := NewRouter(eng, "/api", true).Handler()
	code, body := doJSON(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, string(body), "go_goroutines")

	h = NewRouter(eng, "/api", false).Handler()
	code, _ = doJSON(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusNotFound, code)
}

func TestSanitizeBase(t *testing.T) {
	cases := map[string]string{
		"":      "",
		"/":     "",
		"api":   "/api",
		"/api/": "/api",
		" /v1 ": "/v1",
	}
	for in, want := range cases {
		require.Equal(t, want, sanitizeBase(in), "input %q", in)
	}
}
