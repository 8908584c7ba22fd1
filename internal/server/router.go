package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arcboost/arcboost/internal/engine"
	"github.com/arcboost/arcboost/internal/metrics"
	"github.com/arcboost/arcboost/internal/tweak"
)

// Router provides embeddable HTTP handlers for the tweak engine.
// Endpoints:
//   GET  {basePath}/tweaks        full catalog, grouped by category
//   GET  {basePath}/state         applied ids, last modified, elevation
//   POST {basePath}/apply         body: {"ids": [...]} or {"all": true}
//   GET  {basePath}/restore/plan  restorable vs one-way partition
//   POST {basePath}/restore       restore everything restorable
// A batch request while another batch runs returns 409.
// basePath may be empty or start with '/'; no trailing slash.

type Router struct {
	eng      *engine.Engine
	basePath string
	metrics  bool
}

// NewRouter constructs a Router with a configurable basePath.
// When withMetrics is true, GET /metrics serves Prometheus exposition.
func NewRouter(eng *engine.Engine, basePath string, withMetrics bool) *Router {
	return &Router{eng: eng, basePath: sanitizeBase(basePath), metrics: withMetrics}
}

// Handler returns an http.Handler powered by gin that can be mounted in any server/mux.
func (r *Router) Handler() http.Handler {
	g := gin.New()
	g.Use(gin.Recovery())
	group := g.Group(r.basePath)
	group.GET("/tweaks", r.handleTweaks)
	group.GET("/state", r.handleState)
	group.POST("/apply", r.handleApply)
	group.GET("/restore/plan", r.handlePlan)
	group.POST("/restore", r.handleRestore)
	if r.metrics {
		g.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
	return g
}

// NewServer starts a standalone HTTP server on addr using this router.
// Callers stop it via http.Server's Shutdown or Close.
func NewServer(addr string, router *Router, readTimeout, writeTimeout time.Duration) *http.Server {
	if readTimeout <= 0 {
		readTimeout = 15 * time.Second
	}
	if writeTimeout <= 0 {
		writeTimeout = 15 * time.Second
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}
	go func() { _ = server.ListenAndServe() }()
	return server
}

// --- Handlers ---

type errorResp struct {
	Error string `json:"error"`
}

type groupResp struct {
	Category tweak.Category `json:"category"`
	Tweaks   []tweak.Tweak  `json:"tweaks"`
}

type stateResp struct {
	Applied      []string  `json:"applied"`
	LastModified time.Time `json:"last_modified"`
	Elevated     bool      `json:"elevated"`
}

type applyReq struct {
	IDs []string `json:"ids"`
	All bool     `json:"all"`
}

type planResp struct {
	Restorable   []tweak.Tweak `json:"restorable"`
	Irreversible []tweak.Tweak `json:"irreversible"`
}

func (r *Router) handleTweaks(c *gin.Context) {
	groups := r.eng.Registry().Grouped()
	out := make([]groupResp, 0, len(groups))
	for _, g := range groups {
		out = append(out, groupResp{Category: g.Category, Tweaks: g.Tweaks})
	}
	writeJSON(c, http.StatusOK, out)
}

func (r *Router) handleState(c *gin.Context) {
	writeJSON(c, http.StatusOK, stateResp{
		Applied:      r.eng.Applied(),
		LastModified: r.eng.LastModified(),
		Elevated:     r.eng.Elevated(),
	})
}

func (r *Router) handleApply(c *gin.Context) {
	var req applyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeJSON(c, http.StatusBadRequest, errorResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	ids := req.IDs
	if req.All {
		for _, t := range r.eng.Registry().List() {
			ids = append(ids, t.ID)
		}
	}
	if len(ids) == 0 {
		writeJSON(c, http.StatusBadRequest, errorResp{Error: "ids required (or set all=true)"})
		return
	}
	res, err := r.eng.Apply(c.Request.Context(), ids)
	if err != nil {
		writeBatchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

func (r *Router) handlePlan(c *gin.Context) {
	restorable, irreversible := r.eng.Plan()
	writeJSON(c, http.StatusOK, planResp{Restorable: restorable, Irreversible: irreversible})
}

func (r *Router) handleRestore(c *gin.Context) {
	res, err := r.eng.Restore(c.Request.Context())
	if err != nil {
		writeBatchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

func writeBatchError(c *gin.Context, err error) {
	if errors.Is(err, engine.ErrBatchInFlight) {
		writeJSON(c, http.StatusConflict, errorResp{Error: err.Error()})
		return
	}
	writeJSON(c, http.StatusBadRequest, errorResp{Error: err.Error()})
}
