package services

import (
	"context"
	"errors"
	"log"

	"greenloop/internal/adapters/persistence/models"
	"greenloop/internal/adapters/persistence/repositories"
	"greenloop/internal/core/domain"

	"gorm.io/gorm"
)

// Submission service errors
var (
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrSubmissionNotPending = errors.New("submission is not pending verification")
)

// SubmissionService persists self-service submissions and drives the
// operator verification flow for pending records.
type SubmissionService struct {
	submissionRepo repositories.SubmissionRepository
	creditRepo     repositories.CreditRepository
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(submissionRepo repositories.SubmissionRepository, creditRepo repositories.CreditRepository) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		creditRepo:     creditRepo,
	}
}

// CreateSubmission persists a pending self-service record. Implements the
// workflow's SubmissionStore collaborator.
func (s *SubmissionService) CreateSubmission(ctx context.Context, rec *domain.SubmissionRecord) (*domain.SubmissionRecord, error) {
	row := &models.Submission{
		BoothID:    rec.BoothID,
		UserID:     rec.UserID,
		WasteType:  string(rec.WasteType),
		QuantityKg: rec.QuantityKg,
		Notes:      rec.Notes,
		PhotoCount: rec.PhotoCount,
		Points:     rec.Points,
		Status:     string(domain.VerificationPending),
	}
	if rec.Location != nil {
		lat, lng := rec.Location.Latitude, rec.Location.Longitude
		row.Latitude, row.Longitude = &lat, &lng
	}

	if err := s.submissionRepo.Create(ctx, row); err != nil {
		return nil, err
	}

	log.Printf("✅ Submission #%d created: %.2fkg %s by user %d (%d pts pending)",
		row.ID, rec.QuantityKg, rec.WasteType, rec.UserID, rec.Points)
	return row.ToDomain(), nil
}

// GetByID returns one submission record.
func (s *SubmissionService) GetByID(ctx context.Context, id uint) (*domain.SubmissionRecord, error) {
	row, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// ListByUser lists a user's submission history, newest first.
func (s *SubmissionService) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*domain.SubmissionRecord, int64, error) {
	rows, total, err := s.submissionRepo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return toDomainRecords(rows), total, nil
}

// ListPending lists pending records for operators, oldest first.
func (s *SubmissionService) ListPending(ctx context.Context, boothID *uint, offset, limit int) ([]*domain.SubmissionRecord, int64, error) {
	rows, total, err := s.submissionRepo.ListPending(ctx, boothID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return toDomainRecords(rows), total, nil
}

// Verify credits a pending submission through the same atomic ledger path
// as the operator scan-and-credit flow and flips the record to verified.
// fallbackBoothID is used for manual-entry submissions that carry no booth.
func (s *SubmissionService) Verify(ctx context.Context, submissionID, operatorID, fallbackBoothID uint) (*domain.CreditLedgerEntry, error) {
	row, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	if row.Status != string(domain.VerificationPending) {
		return nil, ErrSubmissionNotPending
	}

	boothID := fallbackBoothID
	if row.BoothID != nil {
		boothID = *row.BoothID
	}

	subID := row.ID
	entry, err := s.creditRepo.ApplyCredit(ctx, repositories.ApplyCreditInput{
		UserID:       row.UserID,
		BoothID:      boothID,
		OperatorID:   operatorID,
		SubmissionID: &subID,
		WasteType:    domain.WasteType(row.WasteType),
		QuantityKg:   row.QuantityKg,
		Points:       row.Points,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Submission #%d verified by operator %d: +%d pts", row.ID, operatorID, entry.PointsDelta)
	return entry.ToDomain(), nil
}

// Reject flips a pending submission to rejected without crediting.
func (s *SubmissionService) Reject(ctx context.Context, submissionID, operatorID uint) error {
	err := s.submissionRepo.MarkRejected(ctx, submissionID, operatorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSubmissionNotPending
	}
	return err
}

func toDomainRecords(rows []*models.Submission) []*domain.SubmissionRecord {
	out := make([]*domain.SubmissionRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToDomain())
	}
	return out
}
