package arcboost

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	cfg "github.com/arcboost/arcboost/internal/config"
	"github.com/arcboost/arcboost/internal/engine"
	"github.com/arcboost/arcboost/internal/history"
	"github.com/arcboost/arcboost/internal/history/factory"
	"github.com/arcboost/arcboost/internal/logger"
	"github.com/arcboost/arcboost/internal/metrics"
	"github.com/arcboost/arcboost/internal/privilege"
	"github.com/arcboost/arcboost/internal/runner"
	iapi "github.com/arcboost/arcboost/internal/server"
	"github.com/arcboost/arcboost/internal/state"
	"github.com/arcboost/arcboost/internal/tweak"
)

// Re-export core types for external consumers.
// These are aliases so conversions are zero-cost.

type Tweak = tweak.Tweak

type Category = tweak.Category

type TweakGroup = tweak.Group

type BatchResult = engine.BatchResult

type Outcome = engine.Outcome

type OutcomeKind = engine.OutcomeKind

const (
	OutcomeApplied          = engine.OutcomeApplied
	OutcomeRestored         = engine.OutcomeRestored
	OutcomeSkippedPrivilege = engine.OutcomeSkippedPrivilege
	OutcomeFailed           = engine.OutcomeFailed
)

var ErrBatchInFlight = engine.ErrBatchInFlight

type Config = cfg.FileConfig

type HistorySink = history.Sink

func LoadConfig(path string) (Config, error) { return cfg.Load(path) }

// Booster is a thin facade over internal/engine.Engine wired from a Config.
// It provides a stable public API for embedding.
type Booster struct {
	inner *engine.Engine
	sinks []history.Sink
}

// New builds a Booster from cfg: registry, shell runner, privilege gate,
// state store and any configured audit sinks. Call Close when done.
func New(c Config) (*Booster, error) {
	log := logger.New(logger.Config{})
	if c.Log != nil {
		log = logger.New(*c.Log)
	}

	path := c.StatePath
	if path == "" {
		var err error
		path, err = state.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	sinks := make([]history.Sink, 0, len(c.History.Sinks))
	for _, dsn := range c.History.Sinks {
		s, err := factory.NewSinkFromDSN(dsn)
		if err != nil {
			closeSinks(sinks)
			return nil, err
		}
		sinks = append(sinks, s)
	}

	eng := engine.New(tweak.Default(), runner.NewShell(), privilege.Current(), state.NewStore(path), engine.Options{
		Logger: log,
		Sinks:  sinks,
	})
	return &Booster{inner: eng, sinks: sinks}, nil
}

func (b *Booster) Tweaks() []TweakGroup { return b.inner.Registry().Grouped() }
func (b *Booster) Applied() []string    { return b.inner.Applied() }
func (b *Booster) LastModified() time.Time {
	return b.inner.LastModified()
}
func (b *Booster) Elevated() bool { return b.inner.Elevated() }

func (b *Booster) Apply(ctx context.Context, ids []string) (BatchResult, error) {
	return b.inner.Apply(ctx, ids)
}

// ApplyAll applies every tweak in the catalog.
func (b *Booster) ApplyAll(ctx context.Context) (BatchResult, error) {
	list := b.inner.Registry().List()
	ids := make([]string, 0, len(list))
	for _, t := range list {
		ids = append(ids, t.ID)
	}
	return b.inner.Apply(ctx, ids)
}

func (b *Booster) Plan() (restorable, irreversible []Tweak) { return b.inner.Plan() }

func (b *Booster) Restore(ctx context.Context) (BatchResult, error) {
	return b.inner.Restore(ctx)
}

// Close releases any audit sinks holding connections.
func (b *Booster) Close() error {
	return closeSinks(b.sinks)
}

func closeSinks(sinks []history.Sink) error {
	var first error
	for _, s := range sinks {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}

// NewHTTPServer starts an HTTP server exposing the internal API for b.
func NewHTTPServer(sc cfg.ServerConfig, b *Booster, withMetrics bool) *http.Server {
	r := iapi.NewRouter(b.inner, sc.BasePath, withMetrics)
	return iapi.NewServer(sc.Listen, r, sc.ReadTimeout, sc.WriteTimeout)
}

// Metrics helpers (public facade)

func RegisterMetrics(r prometheus.Registerer) error { return metrics.Register(r) }
func RegisterMetricsDefault() error                 { return metrics.Register(prometheus.DefaultRegisterer) }

// ServeMetrics starts an HTTP server on addr exposing /metrics using the default registry.
// It returns any immediate listen error; otherwise it runs the server in the caller goroutine.
func ServeMetrics(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv.ListenAndServe()
}
