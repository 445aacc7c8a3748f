package models

import (
	"time"

	"gorm.io/gorm"
)

// OnboardingProgress is the single progression row per subject. CurrentStep is
// persisted as the step's canonical string name so new steps can be inserted
// without renumbering. Version guards every write (compare-and-swap).
type OnboardingProgress struct {
	gorm.Model
	SubjectID           uint       `gorm:"uniqueIndex;not null" json:"subject_id"`
	Pipeline            string     `gorm:"default:'CANDIDATE'" json:"pipeline"`
	CurrentStep         string     `gorm:"default:'NOT_STARTED'" json:"current_step"`
	FailedAt            *time.Time `json:"failed_at,omitempty"`
	RetryAfter          *time.Time `json:"retry_after,omitempty"`
	DocumentsUploaded   bool       `gorm:"default:false" json:"documents_uploaded"`
	OfferLetterUploaded bool       `gorm:"default:false" json:"offer_letter_uploaded"`
	OnboardingCompleted bool       `gorm:"default:false" json:"onboarding_completed"`
	IDCardGenerated     bool       `gorm:"default:false" json:"id_card_generated"`
	Version             uint       `gorm:"default:0" json:"-"`
}
