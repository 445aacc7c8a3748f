package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hrms/models"
)

func TestEvaluateAccessNoRecord(t *testing.T) {
	decision := EvaluateAccess(nil, PipelineCandidate)
	assert.False(t, decision.Allowed)
	assert.Equal(t, "/create-account", decision.RedirectTo)
	assert.Equal(t, "NotStarted", decision.Reason)

	decision = EvaluateAccess(nil, PipelineEmployee)
	assert.Equal(t, "/employee/create-account", decision.RedirectTo)
}

func TestEvaluateAccessCompoundCondition(t *testing.T) {
	cases := []struct {
		completed, idCard bool
		allowed           bool
	}{
		{false, false, false},
		{false, true, false},
		{true, false, false},
		{true, true, true},
	}

	for _, tc := range cases {
		rec := &models.OnboardingProgress{
			SubjectID:           1,
			CurrentStep:         string(StepOfferSigned),
			DocumentsUploaded:   true,
			OfferLetterUploaded: true,
			OnboardingCompleted: tc.completed,
			IDCardGenerated:     tc.idCard,
		}
		decision := EvaluateAccess(rec, PipelineCandidate)
		assert.Equal(t, tc.allowed, decision.Allowed,
			"completed=%v idCard=%v", tc.completed, tc.idCard)
	}
}

func TestEvaluateAccessIDCardPending(t *testing.T) {
	rec := &models.OnboardingProgress{
		SubjectID:           1,
		CurrentStep:         string(StepOfferSigned),
		DocumentsUploaded:   true,
		OfferLetterUploaded: true,
		OnboardingCompleted: true,
	}
	decision := EvaluateAccess(rec, PipelineCandidate)
	assert.False(t, decision.Allowed)
	assert.Equal(t, "/generate-id-card", decision.RedirectTo)
	assert.Equal(t, "IDCardPending", decision.Reason)
}

func TestEvaluateAccessOfferPending(t *testing.T) {
	rec := &models.OnboardingProgress{
		SubjectID:         1,
		CurrentStep:       string(StepDocsUploaded),
		DocumentsUploaded: true,
	}
	decision := EvaluateAccess(rec, PipelineCandidate)
	assert.False(t, decision.Allowed)
	assert.Equal(t, "/offer-letter", decision.RedirectTo)
}

func TestEvaluateAccessDocumentsPending(t *testing.T) {
	rec := &models.OnboardingProgress{
		SubjectID:   1,
		CurrentStep: string(StepInterviewPassed),
	}
	decision := EvaluateAccess(rec, PipelineCandidate)
	assert.False(t, decision.Allowed)
	assert.Equal(t, "/upload-documents", decision.RedirectTo)

	// A failed interview is not a cleared one, no matter the ordinal.
	rec.CurrentStep = string(StepInterviewFailed)
	decision = EvaluateAccess(rec, PipelineCandidate)
	assert.Equal(t, "/onboarding", decision.RedirectTo)
}

func TestEvaluateAccessDefaultRedirect(t *testing.T) {
	rec := &models.OnboardingProgress{
		SubjectID:   1,
		CurrentStep: string(StepInterviewScheduled),
	}
	decision := EvaluateAccess(rec, PipelineEmployee)
	assert.False(t, decision.Allowed)
	assert.Equal(t, "/employee/onboarding", decision.RedirectTo)
	assert.Equal(t, "InProgress", decision.Reason)
}

func TestEvaluateAccessSnapshot(t *testing.T) {
	rec := &models.OnboardingProgress{
		SubjectID:           1,
		CurrentStep:         string(StepOfferSigned),
		DocumentsUploaded:   true,
		OfferLetterUploaded: true,
		OnboardingCompleted: true,
		IDCardGenerated:     true,
	}
	before := *rec
	decision := EvaluateAccess(rec, PipelineCandidate)

	assert.Equal(t, MilestoneSnapshot{
		DocumentsUploaded:   true,
		OfferLetterUploaded: true,
		OnboardingCompleted: true,
		IDCardGenerated:     true,
	}, decision.Snapshot)
	assert.Equal(t, before, *rec, "evaluation must not mutate the record")
}
