// Package metrics records task-level observability signals.
//
// Components receive a Recorder by injection. NoopRecorder is the default,
// so instrumentation costs nothing until the watch task enables the
// Prometheus endpoint and swaps in a PrometheusRecorder.
package metrics
