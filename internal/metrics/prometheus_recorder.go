package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/apache/tsfile-website/internal/foundation/errors"
)

const namespace = "tsfile_site"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg            *prom.Registry
	deployDuration prom.Histogram
	deployOutcome  *prom.CounterVec
	retries        prom.Counter
	publishedFiles prom.Gauge
	lastSuccess    prom.Gauge
	brokenLinks    *prom.CounterVec
}

var _ Recorder = (*PrometheusRecorder)(nil)

// NewPrometheusRecorder constructs the collectors and registers them on reg (a fresh
// registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		deployDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "deploy_duration_seconds",
			Help:      "Wall time of a publish including retries",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}),
		deployOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "deploy_outcomes_total",
			Help:      "Deploy outcomes by final status",
		}, []string{"outcome"}),
		retries: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "deploy_retries_total",
			Help:      "Publish attempts beyond the first",
		}),
		publishedFiles: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "published_files",
			Help:      "Number of files in the last published tree",
		}),
		lastSuccess: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful deploy",
		}),
		brokenLinks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "broken_links_total",
			Help:      "Broken navbar links found by the link checker",
		}, []string{"kind"}),
	}
	reg.MustRegister(pr.deployDuration, pr.deployOutcome, pr.retries, pr.publishedFiles, pr.lastSuccess, pr.brokenLinks)
	return pr
}

// Registry returns the registry the collectors are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) ObserveDeployDuration(d time.Duration) {
	p.deployDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncDeployOutcome(outcome OutcomeLabel) {
	p.deployOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncRetry() { p.retries.Inc() }

func (p *PrometheusRecorder) SetPublishedFiles(n int) { p.publishedFiles.Set(float64(n)) }

func (p *PrometheusRecorder) SetLastSuccess(t time.Time) {
	p.lastSuccess.Set(float64(t.Unix()))
}

func (p *PrometheusRecorder) IncBrokenLinks(kind string, n int) {
	p.brokenLinks.WithLabelValues(kind).Add(float64(n))
}

// WriteTextfile atomically writes the registry in the node exporter textfile format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return errors.FileSystemError("failed to write metrics textfile").WithCause(err).WithContext("path", path).Build()
	}
	return nil
}
