package subsystems

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/roboctl/cmdsched/engine"
)

// DefaultMetricsListen is the address Metrics.Start listens on if Listen is
// left empty.
const DefaultMetricsListen = "127.0.0.1:9233"

// Metrics is a Subsystem that exposes scheduler instrumentation as
// Prometheus counters and gauges. It is not a real shared resource with a
// default command; it is registered purely so the scheduler's own
// ObserveTick hook has a concrete collector to publish to, and so it gets a
// Periodic slot like any other subsystem.
type Metrics struct {
	Listen string

	suid engine.SUID

	ticksTotal     prometheus.Counter
	commandsActive prometheus.Gauge
}

var _ engine.Subsystem = (*Metrics)(nil)

// NewMetrics builds and registers the collectors with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		suid: engine.NewSUID("subsystems.Metrics"),
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cmdsched_ticks_total",
			Help: "Number of scheduler ticks run.",
		}),
		commandsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cmdsched_commands_active",
			Help: "Number of commands active as of the last tick.",
		}),
	}
	prometheus.MustRegister(m.ticksTotal)
	prometheus.MustRegister(m.commandsActive)
	return m
}

// SUID returns this subsystem's stable identity.
func (m *Metrics) SUID() engine.SUID { return m.suid }

// Periodic is a no-op; Metrics is updated from ObserveTick, not from its own
// Periodic hook, since the counts it publishes are scheduler-wide rather
// than specific to this subsystem's tick.
func (m *Metrics) Periodic(time.Duration) {}

// DefaultCommand returns nil: Metrics is never the effective owner of
// anything, it just rides along as a registered subsystem so it gets a
// stable SUID and a Periodic slot.
func (m *Metrics) DefaultCommand() engine.Command { return nil }

// ObserveTick implements graph.MetricsSink, incrementing the tick counter
// and recording the number of commands that ran this tick.
func (m *Metrics) ObserveTick(activeCommands int) {
	m.ticksTotal.Inc()
	m.commandsActive.Set(float64(activeCommands))
}

// Start runs a http server in a goroutine, responding to /metrics the way
// mgmt's `prometheus.Prometheus.Start` runs its own listener goroutine.
func (m *Metrics) Start() {
	listen := m.Listen
	if listen == "" {
		listen = DefaultMetricsListen
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(listen, mux) //nolint:errcheck
}
