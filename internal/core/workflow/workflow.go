// Package workflow implements the self-service submission flow as an
// explicit state machine over {scan, form, success}. The transition rules
// live in a pure function (machine.go); the Workflow driver owns the
// draft, serializes submits and talks to the external collaborators.
package workflow

import (
	"context"
	"fmt"
	"sync"

	"greenloop/internal/core/domain"
	"greenloop/internal/core/rewards"
	"greenloop/internal/core/validate"
)

// BoothResolver resolves a scanned QR token to a booth.
type BoothResolver interface {
	ResolveBoothByToken(ctx context.Context, token string) (*domain.Booth, error)
}

// SubmissionStore persists completed submission records.
type SubmissionStore interface {
	CreateSubmission(ctx context.Context, rec *domain.SubmissionRecord) (*domain.SubmissionRecord, error)
}

// DraftInput carries the form fields a user may edit while at the form step.
type DraftInput struct {
	WasteType  domain.WasteType   `json:"waste_type"`
	QuantityKg float64            `json:"quantity_kg"`
	Photos     []domain.PhotoMeta `json:"photos"`
	Notes      string             `json:"notes"`
	Location   *domain.Coordinate `json:"location"`
}

// Workflow drives one user's submission from scan to success. Exactly one
// draft is live per instance and at most one submit may be in flight; a
// second submit while one is outstanding is rejected, not queued.
type Workflow struct {
	mu         sync.Mutex
	state      State
	entryState State
	draft      domain.SubmissionDraft
	summary    *domain.SubmissionRecord
	submitting bool

	userID uint
	booths BoothResolver
	store  SubmissionStore
	table  *rewards.Table
}

// New creates a workflow for one user session. Users with a cached QR
// identity skip the scan step and start directly at the form.
func New(userID uint, hasCachedIdentity bool, booths BoothResolver, store SubmissionStore, table *rewards.Table) *Workflow {
	entry := StateScan
	if hasCachedIdentity {
		entry = StateForm
	}
	w := &Workflow{
		userID:     userID,
		entryState: entry,
		state:      entry,
		booths:     booths,
		store:      store,
		table:      table,
	}
	w.initDraft()
	return w
}

func (w *Workflow) initDraft() {
	entry := domain.EntryScan
	if w.entryState == StateForm {
		entry = domain.EntryManual
	}
	w.draft = domain.SubmissionDraft{EntryPath: entry}
}

// Snapshot is the externally visible view of the workflow.
type Snapshot struct {
	State   State                    `json:"state"`
	Draft   domain.SubmissionDraft   `json:"draft"`
	Summary *domain.SubmissionRecord `json:"summary,omitempty"`
}

// Snapshot returns a copy of the current state, draft and, after a
// successful submit, the retained record summary.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{State: w.state, Draft: w.draft, Summary: w.summary}
}

// Scan resolves a booth QR token and moves scan -> form. Only known,
// active booths are accepted; on failure the workflow stays at scan.
func (w *Workflow) Scan(ctx context.Context, token string) (*domain.Booth, error) {
	w.mu.Lock()
	if err := guard(w.state, eventScanResolved); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	w.mu.Unlock()

	booth, err := w.booths.ResolveBoothByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if booth.Status != domain.BoothActive {
		return nil, fmt.Errorf("booth %q is not active: %w", booth.Name, domain.ErrInvalidInput)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	next, err := Next(w.state, eventScanResolved)
	if err != nil {
		return nil, err
	}
	w.state = next
	w.draft.EntryPath = domain.EntryScan
	w.draft.BoothID = &booth.ID
	return booth, nil
}

// SkipScan is the explicit manual-entry action: scan -> form without a booth.
func (w *Workflow) SkipScan() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	next, err := Next(w.state, eventSkipScan)
	if err != nil {
		return err
	}
	w.state = next
	w.draft.EntryPath = domain.EntryManual
	return nil
}

// UpdateDraft applies form input to the live draft. Allowed only at the
// form step; the draft is not validated until submit.
func (w *Workflow) UpdateDraft(in DraftInput) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateForm {
		return fmt.Errorf("draft can only be edited at the form step: %w", domain.ErrInvalidInput)
	}
	w.draft.WasteType = in.WasteType
	w.draft.QuantityKg = in.QuantityKg
	w.draft.Photos = in.Photos
	w.draft.Notes = in.Notes
	w.draft.Location = in.Location
	return nil
}

// Submit validates the draft, computes points and hands the record to the
// submission store. Validation or persistence failures keep the workflow
// at the form step with the draft intact; success clears the draft,
// retains a summary and moves to the success step exactly once.
func (w *Workflow) Submit(ctx context.Context) (*domain.SubmissionRecord, error) {
	w.mu.Lock()
	if w.submitting {
		w.mu.Unlock()
		return nil, domain.ErrSubmitInFlight
	}
	if err := guard(w.state, eventSubmitSucceeded); err != nil {
		w.mu.Unlock()
		return nil, err
	}

	if fieldErrs := validate.Submission(&w.draft, w.table); len(fieldErrs) > 0 {
		w.mu.Unlock()
		return nil, &domain.ValidationError{Fields: fieldErrs}
	}

	points, err := w.table.Points(w.draft.WasteType, w.draft.QuantityKg)
	if err != nil {
		w.mu.Unlock()
		return nil, err
	}

	rec := &domain.SubmissionRecord{
		BoothID:    w.draft.BoothID,
		UserID:     w.userID,
		WasteType:  w.draft.WasteType,
		QuantityKg: w.draft.QuantityKg,
		Notes:      w.draft.Notes,
		Location:   w.draft.Location,
		PhotoCount: len(w.draft.Photos),
		Points:     points,
		Status:     domain.VerificationPending,
	}

	w.submitting = true
	w.mu.Unlock()

	created, storeErr := w.store.CreateSubmission(ctx, rec)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false

	if storeErr != nil {
		// form -> form: draft retained so the user may retry.
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, storeErr)
	}

	next, err := Next(w.state, eventSubmitSucceeded)
	if err != nil {
		return nil, err
	}
	w.state = next
	w.summary = created
	w.initDraft()
	return created, nil
}

// Reset re-initializes the draft and returns to the workflow's entry state.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = w.entryState
	w.summary = nil
	w.initDraft()
}
