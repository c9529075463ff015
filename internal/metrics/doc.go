// Package metrics records what the diagnostic filter did during a build.
//
// Components receive a Recorder by injection. NoopRecorder is the default, so
// callers never check for nil; PrometheusRecorder is swapped in when the
// configuration asks for a metrics file:
//
//	reg := prom.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	runner := host.NewBinaryRunner().WithRecorder(rec)
//	...
//	_ = metrics.WriteTextfile(path, reg)
package metrics
