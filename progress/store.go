package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hrms/models"
)

// Store is the narrow persistence surface the service depends on. The
// production implementation is GORM-backed; tests substitute an in-memory
// fake.
type Store interface {
	// Load returns the subject's record, or (nil, nil) when none exists.
	Load(ctx context.Context, subjectID uint) (*models.OnboardingProgress, error)

	// Create inserts the default record for a subject. It is idempotent: if a
	// record already exists it is returned unchanged.
	Create(ctx context.Context, subjectID uint, pipeline Pipeline) (*models.OnboardingProgress, error)

	// CompareAndSwap persists rec only if the stored version still equals
	// expectedVersion, and bumps the version on success. A lost race returns
	// ErrConcurrentModification.
	CompareAndSwap(ctx context.Context, rec *models.OnboardingProgress, expectedVersion uint) error

	// FindRetryEligible lists failed records whose cooldown has elapsed.
	FindRetryEligible(ctx context.Context, now time.Time) ([]models.OnboardingProgress, error)
}

// GormStore persists progress rows through a shared *gorm.DB handle.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Load(ctx context.Context, subjectID uint) (*models.OnboardingProgress, error) {
	var rec models.OnboardingProgress
	err := s.db.WithContext(ctx).Where("subject_id = ?", subjectID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load subject %d: %v", ErrStoreUnavailable, subjectID, err)
	}
	return &rec, nil
}

func (s *GormStore) Create(ctx context.Context, subjectID uint, pipeline Pipeline) (*models.OnboardingProgress, error) {
	rec := models.OnboardingProgress{
		SubjectID:   subjectID,
		Pipeline:    string(pipeline),
		CurrentStep: string(StepNotStarted),
	}
	// FirstOrCreate keeps lazy creation idempotent under concurrent first
	// requests: the unique index on subject_id guarantees a single row.
	err := s.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		FirstOrCreate(&rec).Error
	if err != nil {
		return nil, fmt.Errorf("%w: create subject %d: %v", ErrStoreUnavailable, subjectID, err)
	}
	return &rec, nil
}

func (s *GormStore) CompareAndSwap(ctx context.Context, rec *models.OnboardingProgress, expectedVersion uint) error {
	result := s.db.WithContext(ctx).
		Model(&models.OnboardingProgress{}).
		Where("subject_id = ? AND version = ?", rec.SubjectID, expectedVersion).
		Updates(map[string]interface{}{
			"current_step":          rec.CurrentStep,
			"failed_at":             rec.FailedAt,
			"retry_after":           rec.RetryAfter,
			"documents_uploaded":    rec.DocumentsUploaded,
			"offer_letter_uploaded": rec.OfferLetterUploaded,
			"onboarding_completed":  rec.OnboardingCompleted,
			"id_card_generated":     rec.IDCardGenerated,
			"version":               expectedVersion + 1,
		})
	if result.Error != nil {
		return fmt.Errorf("%w: write subject %d: %v", ErrStoreUnavailable, rec.SubjectID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrConcurrentModification
	}
	rec.Version = expectedVersion + 1
	return nil
}

func (s *GormStore) FindRetryEligible(ctx context.Context, now time.Time) ([]models.OnboardingProgress, error) {
	var recs []models.OnboardingProgress
	err := s.db.WithContext(ctx).
		Where("current_step = ? AND retry_after IS NOT NULL AND retry_after <= ?", string(StepInterviewFailed), now).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list retry-eligible: %v", ErrStoreUnavailable, err)
	}
	return recs, nil
}
