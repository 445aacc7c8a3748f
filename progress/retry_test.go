package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hrms/models"
)

func TestCanRetryBoundary(t *testing.T) {
	retryAfter := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	rec := &models.OnboardingProgress{
		SubjectID:   7,
		CurrentStep: string(StepInterviewFailed),
		RetryAfter:  &retryAfter,
	}

	assert.False(t, CanRetry(rec, retryAfter.Add(-time.Second)))
	assert.True(t, CanRetry(rec, retryAfter), "now == retry_after must be retryable")
	assert.True(t, CanRetry(rec, retryAfter.Add(time.Second)))
}

func TestCanRetryMissingCooldownFailsSafe(t *testing.T) {
	rec := &models.OnboardingProgress{
		SubjectID:   7,
		CurrentStep: string(StepInterviewFailed),
	}

	assert.False(t, CanRetry(rec, time.Now()))
	assert.Equal(t, time.Duration(0), RetryRemaining(rec, time.Now()))
}

func TestRetryRemaining(t *testing.T) {
	retryAfter := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	rec := &models.OnboardingProgress{
		SubjectID:   7,
		CurrentStep: string(StepInterviewFailed),
		RetryAfter:  &retryAfter,
	}

	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 16*24*time.Hour, RetryRemaining(rec, now))
	assert.Equal(t, time.Duration(0), RetryRemaining(rec, retryAfter.Add(time.Hour)))
}

func TestRemainingDays(t *testing.T) {
	assert.Equal(t, 0, RemainingDays(0))
	assert.Equal(t, 1, RemainingDays(time.Minute))
	assert.Equal(t, 1, RemainingDays(24*time.Hour))
	assert.Equal(t, 2, RemainingDays(24*time.Hour+time.Minute))
	assert.Equal(t, 16, RemainingDays(16*24*time.Hour))
}
