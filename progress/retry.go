package progress

import (
	"log"
	"time"

	"hrms/models"
)

// CanRetry reports whether the cooldown after an interview failure has
// elapsed. The boundary is inclusive: now == RetryAfter is retryable.
// A failed record missing RetryAfter is inconsistent data; it is logged and
// treated as not retryable rather than letting the gate fail open.
func CanRetry(rec *models.OnboardingProgress, now time.Time) bool {
	if rec.RetryAfter == nil {
		if Step(rec.CurrentStep) == StepInterviewFailed {
			log.Printf("[PROGRESS] data integrity: subject %d is %s without retry_after", rec.SubjectID, StepInterviewFailed)
		}
		return false
	}
	return !now.Before(*rec.RetryAfter)
}

// RetryRemaining returns how long until a retry is permitted, zero if it
// already is (or the record carries no cooldown).
func RetryRemaining(rec *models.OnboardingProgress, now time.Time) time.Duration {
	if rec.RetryAfter == nil {
		return 0
	}
	remaining := rec.RetryAfter.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
