// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	JobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adoption_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	JobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adoption_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adoption_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"task_type"},
	)

	JobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "adoption_jobs_active",
			Help: "Number of jobs currently being processed per worker",
		},
		[]string{"task_type"},
	)

	// MatchScore observes every non-null compatibility score produced.
	MatchScore = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adoption_match_score",
			Help:    "Distribution of adopter/animal compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"task_type"},
	)

	RankedAdopters = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "adoption_ranked_adopters",
			Help:    "Number of interested adopters returned per ranking",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		},
	)

	ProfileCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adoption_profile_cache_lookups_total",
			Help: "Adopter profile cache lookups by result",
		},
		[]string{"result"},
	)
)

// JobTimer tracks one job from activation to completion or failure.
type JobTimer struct {
	taskType string
	start    time.Time
}

func StartJob(taskType string) *JobTimer {
	JobsActive.WithLabelValues(taskType).Inc()
	return &JobTimer{taskType: taskType, start: time.Now()}
}

func (t *JobTimer) Completed() {
	t.finish()
	JobsCompleted.WithLabelValues(t.taskType).Inc()
}

func (t *JobTimer) Failed(errorCode string) {
	t.finish()
	JobsFailed.WithLabelValues(t.taskType, errorCode).Inc()
}

func (t *JobTimer) Elapsed() time.Duration {
	return time.Since(t.start)
}

func (t *JobTimer) finish() {
	JobsActive.WithLabelValues(t.taskType).Dec()
	JobDuration.WithLabelValues(t.taskType).Observe(time.Since(t.start).Seconds())
}

// ObserveScore records a compatibility score; nil scores are skipped.
func ObserveScore(taskType string, score *int) {
	if score != nil {
		MatchScore.WithLabelValues(taskType).Observe(float64(*score))
	}
}
