package metrics

import (
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Recorder tracks the metrics of a single publish run. It is always
// constructed and updated, even when no --metrics-file is given, so
// callers can assert on it directly in tests.
type Recorder struct {
	registry *prometheus.Registry

	tagsPublished prometheus.Counter
	pushFailures  prometheus.Counter
	syncDuration  prometheus.Histogram
	modeUsed      *prometheus.CounterVec
}

// New creates a Recorder with a private registry, so concurrent tests
// (and repeated CLI invocations in one process) never collide on
// prometheus's global DefaultRegisterer.
func New() *Recorder {
	registry := prometheus.NewRegistry()

	r := &Recorder{
		registry: registry,
		tagsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gitlive",
			Name:      "tags_published_total",
			Help:      "Number of live/* tags published to LIVE in this run.",
		}),
		pushFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gitlive",
			Name:      "push_failures_total",
			Help:      "Number of failed push operations against LIVE in this run.",
		}),
		syncDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gitlive",
			Name:      "sync_duration_seconds",
			Help:      "Wall-clock duration of a publish run.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),
		modeUsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gitlive",
			Name:      "runs_total",
			Help:      "Publish runs by mode.",
		}, []string{"mode"}),
	}

	registry.MustRegister(r.tagsPublished, r.pushFailures, r.syncDuration, r.modeUsed)
	return r
}

// TagsPublished adds n to the tags-published counter.
func (r *Recorder) TagsPublished(n int) {
	r.tagsPublished.Add(float64(n))
}

// PushFailures adds n to the push-failures counter.
func (r *Recorder) PushFailures(n int) {
	r.pushFailures.Add(float64(n))
}

// SyncDuration records one run's wall-clock duration.
func (r *Recorder) SyncDuration(d time.Duration) {
	r.syncDuration.Observe(d.Seconds())
}

// ModeUsed increments the per-mode run counter.
func (r *Recorder) ModeUsed(mode string) {
	r.modeUsed.WithLabelValues(mode).Inc()
}

// WriteFile renders the registry in Prometheus text exposition format
// to path, truncating any existing file. A zero-value path is treated
// as "no --metrics-file given" and is a no-op.
func (r *Recorder) WriteFile(path string) error {
	if path == "" {
		return nil
	}

	families, err := r.registry.Gather()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := expfmt.NewEncoder(f, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
