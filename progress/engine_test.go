package progress

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/models"
)

var orderedSteps = []Step{
	StepNotStarted,
	StepProfileFilled,
	StepInterviewScheduled,
	StepInterviewRound1,
	StepInterviewRound2,
	StepInterviewRound3,
	StepInterviewPassed,
	StepInterviewFailed,
	StepDocsUploaded,
	StepOfferLetterUploaded,
	StepOfferSigned,
	StepIDCardGenerated,
	StepCompleted,
}

func recordAt(step Step) *models.OnboardingProgress {
	return &models.OnboardingProgress{
		SubjectID:   1,
		Pipeline:    string(PipelineCandidate),
		CurrentStep: string(step),
	}
}

func TestTransitionForwardOnly(t *testing.T) {
	engine := NewEngine(0)
	now := time.Now()

	for _, current := range orderedSteps {
		if current == StepCompleted || current == StepInterviewFailed {
			continue // terminal and retry-only states have their own tests
		}
		for _, target := range orderedSteps {
			if stepOrder[target] > stepOrder[current] {
				continue
			}
			rec := recordAt(current)
			err := engine.Transition(rec, target, now)
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s must be rejected", current, target)
			assert.Equal(t, string(current), rec.CurrentStep, "rejected transition must not mutate the record")
		}
	}
}

func TestTransitionForwardSucceeds(t *testing.T) {
	engine := NewEngine(0)
	now := time.Now()

	// Scenario: round two cleared, candidate skips round three.
	rec := recordAt(StepInterviewRound2)
	require.NoError(t, engine.Transition(rec, StepInterviewPassed, now))
	assert.Equal(t, string(StepInterviewPassed), rec.CurrentStep)

	rec = recordAt(StepNotStarted)
	require.NoError(t, engine.Transition(rec, StepProfileFilled, now))
	assert.Equal(t, string(StepProfileFilled), rec.CurrentStep)

	rec = recordAt(StepOfferSigned)
	require.NoError(t, engine.Transition(rec, StepCompleted, now))
	assert.Equal(t, string(StepCompleted), rec.CurrentStep)
}

func TestTransitionTerminal(t *testing.T) {
	engine := NewEngine(0)
	now := time.Now()

	for _, target := range orderedSteps {
		rec := recordAt(StepCompleted)
		err := engine.Transition(rec, target, now)
		assert.ErrorIs(t, err, ErrTerminalState, "COMPLETED -> %s", target)
	}
}

func TestTransitionUnknownStep(t *testing.T) {
	engine := NewEngine(0)
	now := time.Now()

	rec := recordAt(StepProfileFilled)
	err := engine.Transition(rec, Step("BADGE_PRINTED"), now)
	assert.ErrorIs(t, err, ErrUnknownState)

	rec = &models.OnboardingProgress{SubjectID: 1, CurrentStep: "garbage"}
	err = engine.Transition(rec, StepProfileFilled, now)
	assert.ErrorIs(t, err, ErrUnknownState)
}

func TestTransitionToFailedStampsCooldown(t *testing.T) {
	engine := NewEngine(DefaultRetryWindow)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	rec := recordAt(StepInterviewRound2)
	require.NoError(t, engine.Transition(rec, StepInterviewFailed, now))

	assert.Equal(t, string(StepInterviewFailed), rec.CurrentStep)
	require.NotNil(t, rec.FailedAt)
	require.NotNil(t, rec.RetryAfter)
	assert.Equal(t, now, *rec.FailedAt)
	assert.Equal(t, now.Add(30*24*time.Hour), *rec.RetryAfter)
}

func TestTransitionPassedToFailedRejected(t *testing.T) {
	engine := NewEngine(0)
	rec := recordAt(StepInterviewPassed)
	err := engine.Transition(rec, StepInterviewFailed, time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRetryTransition(t *testing.T) {
	engine := NewEngine(0)
	failedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	retryAfter := failedAt.Add(30 * 24 * time.Hour)

	failedRecord := func() *models.OnboardingProgress {
		rec := recordAt(StepInterviewFailed)
		rec.FailedAt = &failedAt
		rec.RetryAfter = &retryAfter
		return rec
	}

	t.Run("before cooldown", func(t *testing.T) {
		rec := failedRecord()
		err := engine.Transition(rec, StepInterviewScheduled, retryAfter.Add(-time.Hour))
		require.ErrorIs(t, err, ErrRetryNotYetAllowed)

		var retryErr *RetryNotYetAllowedError
		require.True(t, errors.As(err, &retryErr))
		assert.Equal(t, time.Hour, retryErr.Remaining)
	})

	t.Run("at cooldown boundary", func(t *testing.T) {
		rec := failedRecord()
		require.NoError(t, engine.Transition(rec, StepInterviewScheduled, retryAfter))
		assert.Equal(t, string(StepInterviewScheduled), rec.CurrentStep)
		assert.Nil(t, rec.FailedAt)
		assert.Nil(t, rec.RetryAfter)
	})

	t.Run("non-retry exit is rejected even after cooldown", func(t *testing.T) {
		rec := failedRecord()
		err := engine.Transition(rec, StepDocsUploaded, retryAfter.Add(time.Hour))
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestEngineDefaultWindow(t *testing.T) {
	assert.Equal(t, DefaultRetryWindow, NewEngine(0).RetryWindow)
	assert.Equal(t, 7*24*time.Hour, NewEngine(7*24*time.Hour).RetryWindow)
}
