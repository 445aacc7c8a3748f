package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hrms/models"
)

// stepRedirects maps each step to the page a subject should visit next while
// inside the pipeline. This is deliberately separate from the access gate's
// redirects: the gate decides dashboard admission after completion, this
// table answers "where do I go next" during it.
var stepRedirects = map[Step]string{
	StepNotStarted:          "/create-account",
	StepProfileFilled:       "/schedule-interview",
	StepInterviewScheduled:  "/interview",
	StepInterviewRound1:     "/interview",
	StepInterviewRound2:     "/interview",
	StepInterviewRound3:     "/interview",
	StepInterviewPassed:     "/upload-documents",
	StepInterviewFailed:     "/interview-result",
	StepDocsUploaded:        "/offer-letter",
	StepOfferLetterUploaded: "/sign-offer",
	StepOfferSigned:         "/generate-id-card",
}

// Milestone names one of the four monotonic completion flags.
type Milestone string

const (
	MilestoneDocumentsUploaded   Milestone = "documents_uploaded"
	MilestoneOfferLetterUploaded Milestone = "offer_letter_uploaded"
	MilestoneOnboardingCompleted Milestone = "onboarding_completed"
	MilestoneIDCardGenerated     Milestone = "id_card_generated"
)

// transitionAttempts bounds the compare-and-swap retry loop before a
// conflict is surfaced to the caller.
const transitionAttempts = 3

// Service orchestrates the engine, the gates and the store. All methods are
// read-only except RequestTransition and MarkMilestone.
type Service struct {
	store  Store
	engine *Engine
}

func NewService(store Store, retryWindow time.Duration) *Service {
	return &Service{store: store, engine: NewEngine(retryWindow)}
}

// GetStatus returns the subject's record, creating the default one on first
// access. Calling it twice never creates a duplicate.
func (s *Service) GetStatus(ctx context.Context, subjectID uint, pipeline Pipeline) (*models.OnboardingProgress, error) {
	rec, err := s.store.Load(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		return rec, nil
	}
	return s.store.Create(ctx, subjectID, pipeline)
}

// ResolveRedirect maps the subject's current step to its next-action page.
// Steps with no dedicated page fall through to the dashboard.
func (s *Service) ResolveRedirect(ctx context.Context, subjectID uint, pipeline Pipeline) (string, error) {
	rec, err := s.GetStatus(ctx, subjectID, pipeline)
	if err != nil {
		return "", err
	}
	if path, ok := stepRedirects[Step(rec.CurrentStep)]; ok {
		return pipeline.path(path), nil
	}
	return pipeline.path("/dashboard"), nil
}

// RequestTransition moves the subject to target and persists the result. On a
// compare-and-swap conflict it re-reads and recomputes, up to
// transitionAttempts times, before surfacing ErrConcurrentModification.
// Engine errors pass through unchanged so callers can match their kind.
func (s *Service) RequestTransition(ctx context.Context, subjectID uint, pipeline Pipeline, target Step, now time.Time) (*models.OnboardingProgress, error) {
	var lastErr error
	for attempt := 0; attempt < transitionAttempts; attempt++ {
		rec, err := s.GetStatus(ctx, subjectID, pipeline)
		if err != nil {
			return nil, err
		}

		next := *rec
		if err := s.engine.Transition(&next, target, now); err != nil {
			return nil, err
		}

		err = s.store.CompareAndSwap(ctx, &next, rec.Version)
		if err == nil {
			return &next, nil
		}
		if !errors.Is(err, ErrConcurrentModification) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// CanProceed reports whether the subject may act on the pipeline right now.
// Only a still-cooling-down interview failure blocks.
func (s *Service) CanProceed(ctx context.Context, subjectID uint, now time.Time) (bool, error) {
	rec, err := s.store.Load(ctx, subjectID)
	if err != nil {
		return false, err
	}
	if rec == nil || Step(rec.CurrentStep) != StepInterviewFailed {
		return true, nil
	}
	return CanRetry(rec, now), nil
}

// RetryMessage returns a human-readable wait message when the subject is
// blocked by the retry cooldown. The second return is false when no message
// applies.
func (s *Service) RetryMessage(ctx context.Context, subjectID uint, now time.Time) (string, bool, error) {
	rec, err := s.store.Load(ctx, subjectID)
	if err != nil {
		return "", false, err
	}
	if rec == nil || Step(rec.CurrentStep) != StepInterviewFailed || CanRetry(rec, now) {
		return "", false, nil
	}
	if rec.RetryAfter == nil {
		return "Interview retry is not yet available. Please contact HR.", true, nil
	}
	days := RemainingDays(RetryRemaining(rec, now))
	return fmt.Sprintf("You can re-apply for the interview in %d day(s).", days), true, nil
}

// Evaluate runs the dashboard access gate against the stored record. A
// missing record is passed through as nil so the gate can answer NotStarted;
// unlike GetStatus this never creates a row.
func (s *Service) Evaluate(ctx context.Context, subjectID uint, pipeline Pipeline) (Decision, error) {
	rec, err := s.store.Load(ctx, subjectID)
	if err != nil {
		return Decision{}, err
	}
	return EvaluateAccess(rec, pipeline), nil
}

// MarkMilestone flips one completion flag, using the same compare-and-swap
// discipline as step transitions. Flags are monotonic: setting one also sets
// every earlier flag so the milestone partial order always holds.
func (s *Service) MarkMilestone(ctx context.Context, subjectID uint, pipeline Pipeline, milestone Milestone) (*models.OnboardingProgress, error) {
	var lastErr error
	for attempt := 0; attempt < transitionAttempts; attempt++ {
		rec, err := s.GetStatus(ctx, subjectID, pipeline)
		if err != nil {
			return nil, err
		}

		next := *rec
		if err := applyMilestone(&next, milestone); err != nil {
			return nil, err
		}
		if next == *rec {
			// Already set; nothing to write.
			return rec, nil
		}

		err = s.store.CompareAndSwap(ctx, &next, rec.Version)
		if err == nil {
			return &next, nil
		}
		if !errors.Is(err, ErrConcurrentModification) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func applyMilestone(rec *models.OnboardingProgress, milestone Milestone) error {
	switch milestone {
	case MilestoneIDCardGenerated:
		rec.IDCardGenerated = true
		fallthrough
	case MilestoneOnboardingCompleted:
		rec.OnboardingCompleted = true
		fallthrough
	case MilestoneOfferLetterUploaded:
		rec.OfferLetterUploaded = true
		fallthrough
	case MilestoneDocumentsUploaded:
		rec.DocumentsUploaded = true
		return nil
	default:
		return fmt.Errorf("%w: milestone %q", ErrUnknownState, milestone)
	}
}

// RetryWindow exposes the configured cooldown, mainly for messages and the
// reminder scheduler.
func (s *Service) RetryWindow() time.Duration {
	return s.engine.RetryWindow
}

// FindRetryEligible lists subjects whose interview-failure cooldown has
// elapsed, for the daily reminder job.
func (s *Service) FindRetryEligible(ctx context.Context, now time.Time) ([]models.OnboardingProgress, error) {
	return s.store.FindRetryEligible(ctx, now)
}
