// Package telemetry exports simulation bookkeeping as Prometheus metrics
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/orbit/parameter"
	"github.com/lixenwraith/orbit/physics"
)

// Loss outcomes
const (
	OutcomeDropped = "dropped"
	OutcomeKept    = "kept"
)

// Metrics records world events, satisfies engine.Recorder
type Metrics struct {
	steps        prometheus.Counter
	stepDuration prometheus.Histogram
	bodies       prometheus.Gauge
	merges       prometheus.Counter
	consumed     prometheus.Counter
	losses       *prometheus.CounterVec
	lostMass     prometheus.Counter
	pruned       prometheus.Counter
	injected     prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	ns := parameter.MetricsNamespace
	m := &Metrics{
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "steps_total",
			Help:      "Simulation steps completed",
		}),
		stepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "step_duration_seconds",
			Help:      "Wall-clock time spent in one simulation step",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
		bodies: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "bodies",
			Help:      "Active bodies after the last step",
		}),
		merges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "merges_total",
			Help:      "Collision clusters merged into a single body",
		}),
		consumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "merge_consumed_bodies_total",
			Help:      "Bodies destroyed by accepted merges",
		}),
		losses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "merge_rejections_total",
			Help:      "Collision clusters whose merge was rejected",
		}, []string{"reason", "outcome"}),
		lostMass: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "lost_mass_kg_total",
			Help:      "Mass removed by rejected merges",
		}),
		pruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "pruned_bodies_total",
			Help:      "Bodies dropped beyond the domain edge",
		}),
		injected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "injected_bodies_total",
			Help:      "Bodies added after construction",
		}),
	}

	reg.MustRegister(
		m.steps, m.stepDuration, m.bodies, m.merges, m.consumed,
		m.losses, m.lostMass, m.pruned, m.injected,
	)
	return m
}

func (m *Metrics) ObserveStep(d time.Duration, bodies int) {
	m.steps.Inc()
	m.stepDuration.Observe(d.Seconds())
	m.bodies.Set(float64(bodies))
}

func (m *Metrics) ObserveResolution(res physics.Resolution) {
	for _, mg := range res.Merges {
		m.merges.Inc()
		m.consumed.Add(float64(len(mg.Consumed)))
	}
	for _, l := range res.Losses {
		outcome := OutcomeDropped
		if l.Retained {
			outcome = OutcomeKept
		}
		m.losses.WithLabelValues(l.Reason, outcome).Inc()
		m.lostMass.Add(l.Mass)
	}
}

func (m *Metrics) ObservePrune(n int) {
	m.pruned.Add(float64(n))
}

func (m *Metrics) ObserveInject() {
	m.injected.Inc()
}

// Handler exposes the gatherer in the Prometheus text format
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Serve runs a /metrics endpoint until ctx is cancelled
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(g))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Printf("telemetry: serving metrics on %s", addr)

	select {
	case err := <-errCh:
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics shutdown: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	}
}
