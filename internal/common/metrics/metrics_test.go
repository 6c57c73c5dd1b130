package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestJobTimer(t *testing.T) {
	const taskType = "metrics-test-task"

	timer := StartJob(taskType)
	assert.Equal(t, 1.0, testutil.ToFloat64(JobsActive.WithLabelValues(taskType)))
	timer.Completed()

	StartJob(taskType).Failed("ANIMAL_NOT_FOUND")

	assert.Equal(t, 0.0, testutil.ToFloat64(JobsActive.WithLabelValues(taskType)))
	assert.Equal(t, 1.0, testutil.ToFloat64(JobsCompleted.WithLabelValues(taskType)))
	assert.Equal(t, 1.0, testutil.ToFloat64(JobsFailed.WithLabelValues(taskType, "ANIMAL_NOT_FOUND")))
}

func TestObserveScore(t *testing.T) {
	const taskType = "score-test-task"
	score := 80

	ObserveScore(taskType, nil)
	ObserveScore(taskType, &score)

	assert.Equal(t, 1, testutil.CollectAndCount(MatchScore, "adoption_match_score"))
}
