package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"greenloop/internal/core/domain"
	"greenloop/internal/core/rewards"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBooths struct {
	byToken map[string]*domain.Booth
}

func (f *fakeBooths) ResolveBoothByToken(_ context.Context, token string) (*domain.Booth, error) {
	if b, ok := f.byToken[token]; ok {
		return b, nil
	}
	return nil, domain.ErrNotFound
}

type fakeStore struct {
	mu      sync.Mutex
	created []*domain.SubmissionRecord
	fail    error
	block   chan struct{} // when set, CreateSubmission waits until closed
}

func (f *fakeStore) CreateSubmission(_ context.Context, rec *domain.SubmissionRecord) (*domain.SubmissionRecord, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	out := *rec
	out.ID = uint(len(f.created) + 1)
	f.created = append(f.created, &out)
	return &out, nil
}

func testTable(t *testing.T) *rewards.Table {
	t.Helper()
	tbl, err := rewards.NewTable([]rewards.Rate{
		{WasteType: domain.WastePlastic, PointsPerKg: 10},
		{WasteType: domain.WastePaper, PointsPerKg: 5},
	})
	require.NoError(t, err)
	return tbl
}

func activeBooth() *domain.Booth {
	return &domain.Booth{
		ID:     3,
		Name:   "Siam Green Point",
		Status: domain.BoothActive,
	}
}

func newTestWorkflow(t *testing.T, store *fakeStore) *Workflow {
	t.Helper()
	booths := &fakeBooths{byToken: map[string]*domain.Booth{
		"qr-siam": activeBooth(),
		"qr-closed": {
			ID:     4,
			Name:   "Thonburi Eco Booth",
			Status: domain.BoothMaintenance,
		},
	}}
	return New(42, false, booths, store, testTable(t))
}

func fillDraft(t *testing.T, w *Workflow) {
	t.Helper()
	require.NoError(t, w.UpdateDraft(DraftInput{
		WasteType:  domain.WastePlastic,
		QuantityKg: 2.5,
		Photos:     []domain.PhotoMeta{{Name: "bag.jpg", SizeBytes: 1024}},
		Location:   &domain.Coordinate{Latitude: 13.75, Longitude: 100.5},
	}))
}

func TestScanMovesToFormAndBindsBooth(t *testing.T) {
	w := newTestWorkflow(t, &fakeStore{})
	require.Equal(t, StateScan, w.Snapshot().State)

	booth, err := w.Scan(context.Background(), "qr-siam")
	require.NoError(t, err)
	assert.Equal(t, uint(3), booth.ID)

	snap := w.Snapshot()
	assert.Equal(t, StateForm, snap.State)
	require.NotNil(t, snap.Draft.BoothID)
	assert.Equal(t, uint(3), *snap.Draft.BoothID)
	assert.Equal(t, domain.EntryScan, snap.Draft.EntryPath)
}

func TestScanRejectsUnknownAndInactiveBooths(t *testing.T) {
	w := newTestWorkflow(t, &fakeStore{})

	_, err := w.Scan(context.Background(), "qr-nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, StateScan, w.Snapshot().State)

	_, err = w.Scan(context.Background(), "qr-closed")
	assert.Error(t, err)
	assert.Equal(t, StateScan, w.Snapshot().State)
}

func TestSkipScanStartsManualEntry(t *testing.T) {
	w := newTestWorkflow(t, &fakeStore{})
	require.NoError(t, w.SkipScan())

	snap := w.Snapshot()
	assert.Equal(t, StateForm, snap.State)
	assert.Equal(t, domain.EntryManual, snap.Draft.EntryPath)
	assert.Nil(t, snap.Draft.BoothID)
}

func TestCachedIdentityStartsAtForm(t *testing.T) {
	w := New(7, true, &fakeBooths{}, &fakeStore{}, testTable(t))
	assert.Equal(t, StateForm, w.Snapshot().State)
}

func TestSubmitInvalidDraftStaysAtForm(t *testing.T) {
	store := &fakeStore{}
	w := newTestWorkflow(t, store)
	_, err := w.Scan(context.Background(), "qr-siam")
	require.NoError(t, err)

	_, err = w.Submit(context.Background())
	ve, ok := domain.IsValidationError(err)
	require.True(t, ok)
	assert.NotEmpty(t, ve.Fields)

	assert.Equal(t, StateForm, w.Snapshot().State)
	assert.Empty(t, store.created)
}

func TestSubmitValidDraftSucceedsOnce(t *testing.T) {
	store := &fakeStore{}
	w := newTestWorkflow(t, store)
	_, err := w.Scan(context.Background(), "qr-siam")
	require.NoError(t, err)
	fillDraft(t, w)

	rec, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(25), rec.Points)
	assert.Equal(t, domain.VerificationPending, rec.Status)
	assert.Equal(t, uint(42), rec.UserID)

	snap := w.Snapshot()
	assert.Equal(t, StateSuccess, snap.State)
	require.NotNil(t, snap.Summary)
	assert.Equal(t, int64(25), snap.Summary.Points)
	// Draft consumed.
	assert.Nil(t, snap.Draft.BoothID)

	// A second submit from success is not a legal transition.
	_, err = w.Submit(context.Background())
	assert.Error(t, err)
	assert.Len(t, store.created, 1)
}

func TestSubmitPersistenceFailureKeepsDraft(t *testing.T) {
	store := &fakeStore{fail: errors.New("submission store offline")}
	w := newTestWorkflow(t, store)
	_, err := w.Scan(context.Background(), "qr-siam")
	require.NoError(t, err)
	fillDraft(t, w)

	_, err = w.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrPersistenceFailure)

	snap := w.Snapshot()
	assert.Equal(t, StateForm, snap.State)
	assert.Equal(t, 2.5, snap.Draft.QuantityKg, "input preserved for retry")

	// Retry succeeds after the store recovers.
	store.mu.Lock()
	store.fail = nil
	store.mu.Unlock()
	_, err = w.Submit(context.Background())
	assert.NoError(t, err)
}

func TestConcurrentSubmitIsRejectedNotQueued(t *testing.T) {
	store := &fakeStore{block: make(chan struct{})}
	w := newTestWorkflow(t, store)
	_, err := w.Scan(context.Background(), "qr-siam")
	require.NoError(t, err)
	fillDraft(t, w)

	firstDone := make(chan error, 1)
	go func() {
		_, err := w.Submit(context.Background())
		firstDone <- err
	}()

	// Wait for the first submit to reach the store call.
	require.Eventually(t, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return w.submitting
	}, time.Second, time.Millisecond)

	_, err = w.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrSubmitInFlight)

	close(store.block)
	require.NoError(t, <-firstDone)
	assert.Len(t, store.created, 1, "exactly one record for one collection event")
}

func TestResetReturnsToEntryState(t *testing.T) {
	store := &fakeStore{}
	w := newTestWorkflow(t, store)
	_, err := w.Scan(context.Background(), "qr-siam")
	require.NoError(t, err)
	fillDraft(t, w)
	_, err = w.Submit(context.Background())
	require.NoError(t, err)

	w.Reset()
	snap := w.Snapshot()
	assert.Equal(t, StateScan, snap.State)
	assert.Nil(t, snap.Summary)
	assert.Zero(t, snap.Draft.QuantityKg)
}

func TestNextRejectsIllegalTransitions(t *testing.T) {
	_, err := Next(StateScan, eventSubmitSucceeded)
	assert.Error(t, err)

	_, err = Next(StateSuccess, eventSkipScan)
	assert.Error(t, err)

	next, err := Next(StateForm, eventSubmitSucceeded)
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, next)
}
