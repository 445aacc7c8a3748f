package progress

import (
	"fmt"
	"time"

	"hrms/models"
)

// Step is an onboarding pipeline stage. Steps are persisted by name, never by
// ordinal, so new stages can be inserted without a data migration.
type Step string

const (
	StepNotStarted          Step = "NOT_STARTED"
	StepProfileFilled       Step = "PROFILE_FILLED"
	StepInterviewScheduled  Step = "INTERVIEW_SCHEDULED"
	StepInterviewRound1     Step = "INTERVIEW_ROUND_1"
	StepInterviewRound2     Step = "INTERVIEW_ROUND_2"
	StepInterviewRound3     Step = "INTERVIEW_ROUND_3"
	StepInterviewPassed     Step = "INTERVIEW_PASSED"
	StepInterviewFailed     Step = "INTERVIEW_FAILED"
	StepDocsUploaded        Step = "DOCS_UPLOADED"
	StepOfferLetterUploaded Step = "OFFER_LETTER_UPLOADED"
	StepOfferSigned         Step = "OFFER_SIGNED"
	StepIDCardGenerated     Step = "ID_CARD_GENERATED"
	StepCompleted           Step = "COMPLETED"
)

// stepOrder assigns each step its position in the forward-only pipeline.
// INTERVIEW_PASSED and INTERVIEW_FAILED share a rank: they are the two
// outcomes of the interview rounds and neither may follow the other.
var stepOrder = map[Step]int{
	StepNotStarted:          0,
	StepProfileFilled:       1,
	StepInterviewScheduled:  2,
	StepInterviewRound1:     3,
	StepInterviewRound2:     4,
	StepInterviewRound3:     5,
	StepInterviewPassed:     6,
	StepInterviewFailed:     6,
	StepDocsUploaded:        7,
	StepOfferLetterUploaded: 8,
	StepOfferSigned:         9,
	StepIDCardGenerated:     10,
	StepCompleted:           11,
}

// KnownStep reports whether s is part of the closed step set.
func KnownStep(s Step) bool {
	_, ok := stepOrder[s]
	return ok
}

// DefaultRetryWindow is how long a candidate waits after failing the
// interview before re-applying.
const DefaultRetryWindow = 30 * 24 * time.Hour

// Engine decides step transitions. It is pure: it mutates only the record it
// is handed and performs no I/O.
type Engine struct {
	RetryWindow time.Duration
}

func NewEngine(retryWindow time.Duration) *Engine {
	if retryWindow <= 0 {
		retryWindow = DefaultRetryWindow
	}
	return &Engine{RetryWindow: retryWindow}
}

// Transition moves rec to target if the pipeline allows it. On a transition
// into INTERVIEW_FAILED it stamps FailedAt and RetryAfter in the same step;
// the retry transition back to INTERVIEW_SCHEDULED clears both.
func (e *Engine) Transition(rec *models.OnboardingProgress, target Step, now time.Time) error {
	if !KnownStep(target) {
		return fmt.Errorf("%w: %q", ErrUnknownState, target)
	}

	current := Step(rec.CurrentStep)
	if !KnownStep(current) {
		return fmt.Errorf("%w: record holds %q", ErrUnknownState, current)
	}

	if current == StepCompleted {
		return ErrTerminalState
	}

	if current == StepInterviewFailed {
		if target != StepInterviewScheduled {
			return fmt.Errorf("%w: only an interview retry may leave %s", ErrInvalidTransition, StepInterviewFailed)
		}
		if !CanRetry(rec, now) {
			return &RetryNotYetAllowedError{Remaining: RetryRemaining(rec, now)}
		}
		rec.CurrentStep = string(StepInterviewScheduled)
		rec.FailedAt = nil
		rec.RetryAfter = nil
		return nil
	}

	if stepOrder[target] <= stepOrder[current] {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, target)
	}

	rec.CurrentStep = string(target)
	if target == StepInterviewFailed {
		failedAt := now
		retryAfter := now.Add(e.RetryWindow)
		rec.FailedAt = &failedAt
		rec.RetryAfter = &retryAfter
	}
	return nil
}
