package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/doxconf/internal/diagnostics"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	diagnostics   *prom.CounterVec
	buildDuration prom.Histogram
	buildOutcome  *prom.CounterVec
	activeRules   prom.Gauge
}

// NewPrometheusRecorder constructs and registers the metrics on reg.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		diagnostics: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "doxconf",
			Name:      "diagnostics_total",
			Help:      "Diagnostics seen by the filter, by category and whether they were suppressed",
		}, []string{"category", "suppressed"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "doxconf",
			Name:      "build_duration_seconds",
			Help:      "Duration of documentation generator runs",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "doxconf",
			Name:      "build_outcomes_total",
			Help:      "Documentation generator runs by final status",
		}, []string{"outcome"}),
		activeRules: prom.NewGauge(prom.GaugeOpts{
			Namespace: "doxconf",
			Name:      "suppression_rules",
			Help:      "Number of suppression rules in the active rule set",
		}),
	}
	reg.MustRegister(pr.diagnostics, pr.buildDuration, pr.buildOutcome, pr.activeRules)
	return pr
}

func (p *PrometheusRecorder) ObserveDiagnostic(category diagnostics.Category, suppressed bool) {
	if p == nil {
		return
	}
	p.diagnostics.WithLabelValues(string(category), strconv.FormatBool(suppressed)).Inc()
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcome) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetActiveRules(n int) {
	if p == nil {
		return
	}
	p.activeRules.Set(float64(n))
}

// WriteTextfile dumps g in the Prometheus text format, for node_exporter's
// textfile collector or CI artifacts.
func WriteTextfile(path string, g prom.Gatherer) error {
	return prom.WriteToTextfile(path, g)
}
