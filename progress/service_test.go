package progress

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/models"
)

// memStore is an in-memory Store used to exercise the service without a
// database. It honours the same compare-and-swap contract as GormStore.
type memStore struct {
	mu       sync.Mutex
	recs     map[uint]*models.OnboardingProgress
	creates  int
	casCalls int

	loadErr  error
	forceCAS bool // when set, every CompareAndSwap reports a conflict
}

func newMemStore() *memStore {
	return &memStore{recs: map[uint]*models.OnboardingProgress{}}
}

func (m *memStore) Load(ctx context.Context, subjectID uint) (*models.OnboardingProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	rec, ok := m.recs[subjectID]
	if !ok {
		return nil, nil
	}
	clone := *rec
	return &clone, nil
}

func (m *memStore) Create(ctx context.Context, subjectID uint, pipeline Pipeline) (*models.OnboardingProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.recs[subjectID]; ok {
		clone := *rec
		return &clone, nil
	}
	m.creates++
	rec := &models.OnboardingProgress{
		SubjectID:   subjectID,
		Pipeline:    string(pipeline),
		CurrentStep: string(StepNotStarted),
	}
	m.recs[subjectID] = rec
	clone := *rec
	return &clone, nil
}

func (m *memStore) CompareAndSwap(ctx context.Context, rec *models.OnboardingProgress, expectedVersion uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.casCalls++
	if m.forceCAS {
		return ErrConcurrentModification
	}
	current, ok := m.recs[rec.SubjectID]
	if !ok || current.Version != expectedVersion {
		return ErrConcurrentModification
	}
	clone := *rec
	clone.Version = expectedVersion + 1
	m.recs[rec.SubjectID] = &clone
	rec.Version = clone.Version
	return nil
}

func (m *memStore) FindRetryEligible(ctx context.Context, now time.Time) ([]models.OnboardingProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.OnboardingProgress
	for _, rec := range m.recs {
		if rec.CurrentStep == string(StepInterviewFailed) && rec.RetryAfter != nil && !now.Before(*rec.RetryAfter) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (m *memStore) put(rec *models.OnboardingProgress) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *rec
	m.recs[rec.SubjectID] = &clone
}

func TestGetStatusCreatesOnce(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, 0)
	ctx := context.Background()

	first, err := svc.GetStatus(ctx, 42, PipelineCandidate)
	require.NoError(t, err)
	assert.Equal(t, string(StepNotStarted), first.CurrentStep)

	second, err := svc.GetStatus(ctx, 42, PipelineCandidate)
	require.NoError(t, err)
	assert.Equal(t, first.SubjectID, second.SubjectID)
	assert.Equal(t, 1, store.creates, "second call must not create a duplicate")
}

func TestResolveRedirect(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, 0)
	ctx := context.Background()

	// Fresh subject: lazily created at NOT_STARTED.
	path, err := svc.ResolveRedirect(ctx, 1, PipelineCandidate)
	require.NoError(t, err)
	assert.Equal(t, "/create-account", path)

	store.put(&models.OnboardingProgress{SubjectID: 2, CurrentStep: string(StepOfferSigned)})
	path, err = svc.ResolveRedirect(ctx, 2, PipelineCandidate)
	require.NoError(t, err)
	assert.Equal(t, "/generate-id-card", path)

	// Steps with no dedicated page fall through to the dashboard.
	store.put(&models.OnboardingProgress{SubjectID: 3, CurrentStep: string(StepCompleted)})
	path, err = svc.ResolveRedirect(ctx, 3, PipelineCandidate)
	require.NoError(t, err)
	assert.Equal(t, "/dashboard", path)

	store.put(&models.OnboardingProgress{SubjectID: 4, CurrentStep: string(StepProfileFilled), Pipeline: string(PipelineEmployee)})
	path, err = svc.ResolveRedirect(ctx, 4, PipelineEmployee)
	require.NoError(t, err)
	assert.Equal(t, "/employee/schedule-interview", path)
}

func TestRequestTransitionPersists(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, 0)
	ctx := context.Background()

	rec, err := svc.RequestTransition(ctx, 5, PipelineCandidate, StepProfileFilled, time.Now())
	require.NoError(t, err)
	assert.Equal(t, string(StepProfileFilled), rec.CurrentStep)

	stored, err := store.Load(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, string(StepProfileFilled), stored.CurrentStep)
	assert.Equal(t, uint(1), stored.Version)
}

func TestRequestTransitionEngineErrorsPassThrough(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, 0)
	ctx := context.Background()

	store.put(&models.OnboardingProgress{SubjectID: 6, CurrentStep: string(StepCompleted)})
	_, err := svc.RequestTransition(ctx, 6, PipelineCandidate, StepProfileFilled, time.Now())
	assert.ErrorIs(t, err, ErrTerminalState)

	retryAfter := time.Now().Add(10 * 24 * time.Hour)
	store.put(&models.OnboardingProgress{SubjectID: 7, CurrentStep: string(StepInterviewFailed), RetryAfter: &retryAfter})
	_, err = svc.RequestTransition(ctx, 7, PipelineCandidate, StepInterviewScheduled, time.Now())
	assert.ErrorIs(t, err, ErrRetryNotYetAllowed)
}

func TestCanProceedAndRetryMessage(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, 0)
	ctx := context.Background()

	retryAfter := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	store.put(&models.OnboardingProgress{SubjectID: 8, CurrentStep: string(StepInterviewFailed), RetryAfter: &retryAfter})

	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	ok, err := svc.CanProceed(ctx, 8, now)
	require.NoError(t, err)
	assert.False(t, ok)

	msg, blocked, err := svc.RetryMessage(ctx, 8, now)
	require.NoError(t, err)
	require.True(t, blocked)
	assert.Contains(t, msg, "16 day")

	// Cooldown elapsed: proceed, no message.
	ok, err = svc.CanProceed(ctx, 8, retryAfter)
	require.NoError(t, err)
	assert.True(t, ok)

	_, blocked, err = svc.RetryMessage(ctx, 8, retryAfter)
	require.NoError(t, err)
	assert.False(t, blocked)

	// Healthy records never block.
	store.put(&models.OnboardingProgress{SubjectID: 9, CurrentStep: string(StepDocsUploaded)})
	ok, err = svc.CanProceed(ctx, 9, now)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEvaluateDoesNotCreate(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, 0)

	decision, err := svc.Evaluate(context.Background(), 10, PipelineCandidate)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, "/create-account", decision.RedirectTo)
	assert.Equal(t, 0, store.creates)
}

func TestMarkMilestoneCascades(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, 0)
	ctx := context.Background()

	rec, err := svc.MarkMilestone(ctx, 11, PipelineCandidate, MilestoneOnboardingCompleted)
	require.NoError(t, err)
	assert.True(t, rec.OnboardingCompleted)
	assert.True(t, rec.OfferLetterUploaded)
	assert.True(t, rec.DocumentsUploaded)
	assert.False(t, rec.IDCardGenerated)

	// Already set: no write, same version.
	version := rec.Version
	rec, err = svc.MarkMilestone(ctx, 11, PipelineCandidate, MilestoneDocumentsUploaded)
	require.NoError(t, err)
	assert.Equal(t, version, rec.Version)
}

func TestRequestTransitionConcurrentOneWinner(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, 0)
	ctx := context.Background()

	retryAfter := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.put(&models.OnboardingProgress{SubjectID: 12, CurrentStep: string(StepInterviewFailed), RetryAfter: &retryAfter})
	now := retryAfter.Add(time.Hour)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.RequestTransition(ctx, 12, PipelineCandidate, StepInterviewScheduled, now)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		assert.True(t,
			errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrConcurrentModification),
			"unexpected error kind: %v", err)
	}
	assert.Equal(t, 1, successes, "exactly one retry must win")

	stored, err := store.Load(ctx, 12)
	require.NoError(t, err)
	assert.Equal(t, string(StepInterviewScheduled), stored.CurrentStep)
	assert.Nil(t, stored.RetryAfter)
}

func TestRequestTransitionCASExhaustion(t *testing.T) {
	store := newMemStore()
	store.forceCAS = true
	svc := NewService(store, 0)

	store.put(&models.OnboardingProgress{SubjectID: 13, CurrentStep: string(StepNotStarted)})
	_, err := svc.RequestTransition(context.Background(), 13, PipelineCandidate, StepProfileFilled, time.Now())
	assert.ErrorIs(t, err, ErrConcurrentModification)
	assert.Equal(t, transitionAttempts, store.casCalls)
}

func TestStoreFailureSurfaces(t *testing.T) {
	store := newMemStore()
	store.loadErr = ErrStoreUnavailable
	svc := NewService(store, 0)

	_, err := svc.GetStatus(context.Background(), 14, PipelineCandidate)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = svc.Evaluate(context.Background(), 14, PipelineCandidate)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = svc.CanProceed(context.Background(), 14, time.Now())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
