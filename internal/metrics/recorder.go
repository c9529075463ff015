package metrics

import (
	"time"

	"git.home.luguber.info/inful/doxconf/internal/diagnostics"
)

// BuildOutcome labels the final status of a host run.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// Recorder observes diagnostics and host runs. It is a diagnostics.Observer.
type Recorder interface {
	diagnostics.Observer
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcome)
	SetActiveRules(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveDiagnostic(diagnostics.Category, bool) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)           {}
func (NoopRecorder) IncBuildOutcome(BuildOutcome)                 {}
func (NoopRecorder) SetActiveRules(int)                           {}
