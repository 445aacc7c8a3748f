package progress

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownState means the requested step is not part of the pipeline.
	ErrUnknownState = errors.New("unknown onboarding step")

	// ErrInvalidTransition means the requested step would move the subject
	// backwards, or out of INTERVIEW_FAILED by any path other than a retry.
	ErrInvalidTransition = errors.New("invalid onboarding transition")

	// ErrTerminalState means the subject has already reached COMPLETED.
	ErrTerminalState = errors.New("onboarding already completed")

	// ErrRetryNotYetAllowed is the errors.Is target for RetryNotYetAllowedError.
	ErrRetryNotYetAllowed = errors.New("interview retry not yet allowed")

	// ErrConcurrentModification means a compare-and-swap write lost the race.
	ErrConcurrentModification = errors.New("progress record modified concurrently")

	// ErrStoreUnavailable wraps any storage I/O failure.
	ErrStoreUnavailable = errors.New("progress store unavailable")
)

// RetryNotYetAllowedError carries the remaining cooldown so callers can show
// it to the candidate verbatim instead of a generic failure.
type RetryNotYetAllowedError struct {
	Remaining time.Duration
}

func (e *RetryNotYetAllowedError) Error() string {
	return fmt.Sprintf("interview retry not yet allowed, wait %d more day(s)", RemainingDays(e.Remaining))
}

func (e *RetryNotYetAllowedError) Is(target error) bool {
	return target == ErrRetryNotYetAllowed
}

// RemainingDays rounds a remaining wait up to whole days, minimum 1.
func RemainingDays(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	days := int((d + 24*time.Hour - 1) / (24 * time.Hour))
	if days < 1 {
		days = 1
	}
	return days
}
