package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doxconf/internal/diagnostics"
)

var _ Recorder = NoopRecorder{}
var _ Recorder = (*PrometheusRecorder)(nil)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObserveDiagnostic(diagnostics.CategoryLogRecord, true)
	pr.ObserveDiagnostic(diagnostics.CategoryLogRecord, true)
	pr.ObserveDiagnostic(diagnostics.CategoryLogRecord, false)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncBuildOutcome(OutcomeSuccess)
	pr.SetActiveRules(4)

	require.Equal(t, 2.0, testutil.ToFloat64(pr.diagnostics.WithLabelValues("log-record", "true")))
	require.Equal(t, 1.0, testutil.ToFloat64(pr.diagnostics.WithLabelValues("log-record", "false")))
	require.Equal(t, 1.0, testutil.ToFloat64(pr.buildOutcome.WithLabelValues("success")))
	require.Equal(t, 4.0, testutil.ToFloat64(pr.activeRules))

	expected := `
# HELP doxconf_suppression_rules Number of suppression rules in the active rule set
# TYPE doxconf_suppression_rules gauge
doxconf_suppression_rules 4
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "doxconf_suppression_rules"))
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveDiagnostic(diagnostics.CategoryDeprecation, true)
	pr.ObserveBuildDuration(time.Second)
	pr.IncBuildOutcome(OutcomeFailed)
	pr.SetActiveRules(1)
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveDiagnostic(diagnostics.CategoryDeprecation, true)

	path := filepath.Join(t.TempDir(), "doxconf.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `doxconf_diagnostics_total{category="deprecation",suppressed="true"} 1`)
}
