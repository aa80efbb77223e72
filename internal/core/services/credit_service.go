package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"greenloop/internal/adapters/persistence/repositories"
	"greenloop/internal/core/domain"
	"greenloop/internal/core/rewards"

	"gorm.io/gorm"
)

// CreditService drives the operator scan-and-credit workflow: resolve the
// user's QR identity, confirm the booth accepts the waste type, compute
// the reward from the shared rate table and apply the credit atomically.
// Credit is instant and irreversible through this service.
type CreditService struct {
	userRepo   repositories.UserRepository
	boothRepo  repositories.BoothRepository
	creditRepo repositories.CreditRepository
	table      *rewards.Table

	mu       sync.Mutex
	inFlight map[uint]bool // operator ID -> credit in flight
}

// NewCreditService creates a new credit service
func NewCreditService(
	userRepo repositories.UserRepository,
	boothRepo repositories.BoothRepository,
	creditRepo repositories.CreditRepository,
	table *rewards.Table,
) *CreditService {
	return &CreditService{
		userRepo:   userRepo,
		boothRepo:  boothRepo,
		creditRepo: creditRepo,
		table:      table,
		inFlight:   make(map[uint]bool),
	}
}

// ResolveUserByToken resolves a scanned user QR token (workflow step 1).
func (s *CreditService) ResolveUserByToken(ctx context.Context, token string) (*domain.User, error) {
	row, err := s.userRepo.GetByQRToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnknownUser
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// ScanAndCreditInput is one weighed collection at a booth.
type ScanAndCreditInput struct {
	UserToken  string           `json:"user_token" validate:"required"`
	BoothID    uint             `json:"booth_id" validate:"required"`
	WasteType  domain.WasteType `json:"waste_type" validate:"required"`
	QuantityKg float64          `json:"quantity_kg" validate:"required,gt=0"`
	Notes      string           `json:"notes,omitempty"`
}

// ScanAndCreditResult is returned to the operator UI (workflow step 6).
type ScanAndCreditResult struct {
	User           *domain.User              `json:"user"`
	Entry          *domain.CreditLedgerEntry `json:"entry"`
	UpdatedBalance int64                     `json:"updated_balance"`
}

// ScanAndCredit runs the full operator workflow. At most one credit is in
// flight per operator; a second attempt while one is outstanding is
// rejected so a single weighing can never be credited twice.
func (s *CreditService) ScanAndCredit(ctx context.Context, operatorID uint, input *ScanAndCreditInput) (*ScanAndCreditResult, error) {
	s.mu.Lock()
	if s.inFlight[operatorID] {
		s.mu.Unlock()
		return nil, domain.ErrSubmitInFlight
	}
	s.inFlight[operatorID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, operatorID)
		s.mu.Unlock()
	}()

	// 1. Identify user
	user, err := s.ResolveUserByToken(ctx, input.UserToken)
	if err != nil {
		return nil, err
	}

	// 2. Authorize booth context
	boothRow, err := s.boothRepo.GetByID(ctx, input.BoothID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoothNotFound
		}
		return nil, err
	}
	booth := boothRow.ToDomain()
	if !booth.Accepts(input.WasteType) {
		return nil, domain.ErrWasteTypeNotAccepted
	}

	// 3-4. Record weighed quantity, compute reward. Operator-verified, so
	// no per-submission cap beyond a positive quantity.
	points, err := s.table.Points(input.WasteType, input.QuantityKg)
	if err != nil {
		return nil, err
	}

	// 5. Apply credit atomically
	entry, err := s.creditRepo.ApplyCredit(ctx, repositories.ApplyCreditInput{
		UserID:     user.ID,
		BoothID:    booth.ID,
		OperatorID: operatorID,
		WasteType:  input.WasteType,
		QuantityKg: input.QuantityKg,
		Points:     points,
	})
	if err != nil {
		return nil, err
	}

	domainEntry := entry.ToDomain()
	user.Balance = domainEntry.ResultingBalance
	user.TotalWasteKg += input.QuantityKg

	log.Printf("✅ Credited %d pts to %s (%.2fkg %s at %s by operator %d)",
		points, user.Handle, input.QuantityKg, input.WasteType, booth.Name, operatorID)

	// 6. Confirm
	return &ScanAndCreditResult{
		User:           user,
		Entry:          domainEntry,
		UpdatedBalance: domainEntry.ResultingBalance,
	}, nil
}

// LedgerHistory lists a user's ledger entries, newest first.
func (s *CreditService) LedgerHistory(ctx context.Context, userID uint, offset, limit int) ([]*domain.CreditLedgerEntry, int64, error) {
	rows, total, err := s.creditRepo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*domain.CreditLedgerEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToDomain())
	}
	return out, total, nil
}
