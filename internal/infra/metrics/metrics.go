// Package metrics expone métricas Prometheus del bot en un registry propio.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fantasy"

// Outcomes de comandos y uploads.
const (
	OutcomeOK        = "ok"
	OutcomeDuplicate = "duplicate"
	OutcomeUserError = "user_error"
	OutcomeError     = "error"
)

// CacheStats es lo que el score cache reporta después de cada operación.
type CacheStats struct {
	Athletes      int
	Hits          uint64
	Misses        uint64
	Invalidations uint64
}

// Metrics es seguro de usar en nil (no-op), así los tests no necesitan registry.
type Metrics struct {
	registry *prometheus.Registry

	commands       *prometheus.CounterVec
	commandLatency *prometheus.HistogramVec
	draftPicks     prometheus.Counter
	draftRemaining prometheus.Gauge
	uploads        *prometheus.CounterVec
	fetchRuns      *prometheus.CounterVec

	cacheLookups       *prometheus.GaugeVec
	cacheInvalidations prometheus.Gauge
	cacheAthletes      prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		commands: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "discord", Name: "commands_total",
			Help: "Slash commands handled, by command and outcome.",
		}, []string{"command", "outcome"}),
		commandLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "discord", Name: "command_duration_seconds",
			Help:    "Slash command handling latency.",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 12},
		}, []string{"command"}),
		draftPicks: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "draft", Name: "picks_total",
			Help: "Athletes drafted.",
		}),
		draftRemaining: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "draft", Name: "remaining_picks",
			Help: "Picks left in the draft queue.",
		}),
		uploads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "results", Name: "uploads_total",
			Help: "Match uploads, by outcome.",
		}, []string{"outcome"}),
		fetchRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "results", Name: "fetch_runs_total",
			Help: "Automatic fetch passes, by outcome.",
		}, []string{"outcome"}),
		cacheLookups: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "score_cache", Name: "lookups",
			Help: "Total lookups since start, by result (hit|miss).",
		}, []string{"result"}),
		cacheInvalidations: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "score_cache", Name: "invalidations",
			Help: "Whole-cache invalidations since start.",
		}),
		cacheAthletes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "score_cache", Name: "athletes",
			Help: "Athletes with cached entries.",
		}),
	}
}

func (m *Metrics) Command(name, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(name, outcome).Inc()
	m.commandLatency.WithLabelValues(name).Observe(d.Seconds())
}

func (m *Metrics) DraftPick(remaining int) {
	if m == nil {
		return
	}
	m.draftPicks.Inc()
	m.draftRemaining.Set(float64(remaining))
}

func (m *Metrics) DraftRemaining(n int) {
	if m == nil {
		return
	}
	m.draftRemaining.Set(float64(n))
}

func (m *Metrics) Upload(outcome string) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(outcome).Inc()
}

func (m *Metrics) FetchRun(outcome string) {
	if m == nil {
		return
	}
	m.fetchRuns.WithLabelValues(outcome).Inc()
}

// Cache copia el snapshot del cache; el cache no se lee desde el scraper.
func (m *Metrics) Cache(s CacheStats) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues("hit").Set(float64(s.Hits))
	m.cacheLookups.WithLabelValues("miss").Set(float64(s.Misses))
	m.cacheInvalidations.Set(float64(s.Invalidations))
	m.cacheAthletes.Set(float64(s.Athletes))
}

// Handler sirve /metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
