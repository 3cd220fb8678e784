// Package metrics records service metrics. The Prometheus implementation
// backs the /metrics endpoint; the no-op one is used by tests and the CLI.
package metrics

import "time"

// Recorder is the metrics surface used by middleware and services.
type Recorder interface {
	// ObserveRequest records one served HTTP request.
	ObserveRequest(method, route string, status int, latency time.Duration)
	// RecordUpload records an accepted pick upload and its row count.
	RecordUpload(kind string, rows int)
	// RecordUploadRejected records an upload that failed validation.
	RecordUploadRejected(kind string)
	// ObserveAnalysis records the duration of one analytics computation.
	ObserveAnalysis(name string, latency time.Duration)
}

// NopRecorder discards all metrics.
type NopRecorder struct{}

var _ Recorder = NopRecorder{}

// NewNop creates a recorder that discards everything.
func NewNop() NopRecorder { return NopRecorder{} }

func (NopRecorder) ObserveRequest(string, string, int, time.Duration) {}
func (NopRecorder) RecordUpload(string, int)                          {}
func (NopRecorder) RecordUploadRejected(string)                       {}
func (NopRecorder) ObserveAnalysis(string, time.Duration)             {}
