package progress

import (
	"hrms/models"
)

// Pipeline selects which onboarding flow a subject belongs to. Both pipelines
// run the same engine; only the redirect paths differ.
type Pipeline string

const (
	PipelineCandidate Pipeline = "CANDIDATE"
	PipelineEmployee  Pipeline = "EMPLOYEE"
)

func (p Pipeline) path(suffix string) string {
	if p == PipelineEmployee {
		return "/employee" + suffix
	}
	return suffix
}

// MilestoneSnapshot is attached to every access decision so the UI can render
// progress hints without a second round trip.
type MilestoneSnapshot struct {
	DocumentsUploaded   bool `json:"documents_uploaded"`
	OfferLetterUploaded bool `json:"offer_letter_uploaded"`
	OnboardingCompleted bool `json:"onboarding_completed"`
	IDCardGenerated     bool `json:"id_card_generated"`
}

// Decision is the access gate's answer for the post-onboarding dashboard.
type Decision struct {
	Allowed    bool              `json:"allowed"`
	RedirectTo string            `json:"redirect_to,omitempty"`
	Reason     string            `json:"reason"`
	Snapshot   MilestoneSnapshot `json:"snapshot"`
}

// EvaluateAccess decides dashboard admission from the milestone flags alone;
// the step enum is consulted only to pick the most useful redirect. First
// matching rule wins. Read-only: rec is never mutated.
func EvaluateAccess(rec *models.OnboardingProgress, pipeline Pipeline) Decision {
	if rec == nil {
		return Decision{
			Allowed:    false,
			RedirectTo: pipeline.path("/create-account"),
			Reason:     "NotStarted",
		}
	}

	snapshot := MilestoneSnapshot{
		DocumentsUploaded:   rec.DocumentsUploaded,
		OfferLetterUploaded: rec.OfferLetterUploaded,
		OnboardingCompleted: rec.OnboardingCompleted,
		IDCardGenerated:     rec.IDCardGenerated,
	}

	switch {
	case rec.OnboardingCompleted && rec.IDCardGenerated:
		return Decision{Allowed: true, Reason: "Completed", Snapshot: snapshot}

	case rec.OnboardingCompleted:
		return Decision{
			RedirectTo: pipeline.path("/generate-id-card"),
			Reason:     "IDCardPending",
			Snapshot:   snapshot,
		}

	case rec.DocumentsUploaded:
		return Decision{
			RedirectTo: pipeline.path("/offer-letter"),
			Reason:     "OfferPending",
			Snapshot:   snapshot,
		}

	case interviewCleared(rec):
		return Decision{
			RedirectTo: pipeline.path("/upload-documents"),
			Reason:     "DocumentsPending",
			Snapshot:   snapshot,
		}

	default:
		return Decision{
			RedirectTo: pipeline.path("/onboarding"),
			Reason:     "InProgress",
			Snapshot:   snapshot,
		}
	}
}

// interviewCleared reports whether the subject is past the interview stage
// without having failed it.
func interviewCleared(rec *models.OnboardingProgress) bool {
	current := Step(rec.CurrentStep)
	if !KnownStep(current) || current == StepInterviewFailed {
		return false
	}
	return stepOrder[current] >= stepOrder[StepInterviewPassed]
}
