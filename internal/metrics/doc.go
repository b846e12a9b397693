// Package metrics records deploy metrics behind a Recorder interface.
//
// Components receive a Recorder and default to NoopRecorder, so metrics stay
// optional without nil checks. PrometheusRecorder registers its collectors on a
// caller-owned registry; a one-shot CLI run exports them with WriteTextfile for the
// node exporter textfile collector.
package metrics
