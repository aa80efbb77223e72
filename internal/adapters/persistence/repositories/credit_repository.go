package repositories

import (
	"context"
	"errors"
	"fmt"

	"greenloop/internal/adapters/persistence/models"
	"greenloop/internal/core/domain"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQL error numbers treated as retryable contention.
const (
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

// ApplyCreditInput carries everything one credit application needs.
type ApplyCreditInput struct {
	UserID       uint
	BoothID      uint
	OperatorID   uint
	SubmissionID *uint // set when crediting a verified self-service submission
	WasteType    domain.WasteType
	QuantityKg   float64
	Points       int64
}

// creditRepository implements CreditRepository interface
type creditRepository struct {
	db *gorm.DB
}

// NewCreditRepository creates a new credit repository
func NewCreditRepository(db *gorm.DB) CreditRepository {
	return &creditRepository{db: db}
}

// ApplyCredit increments the user's balance and cumulative waste and
// appends the ledger entry in one database transaction. The increment is
// a single atomic UPDATE so concurrent credits to the same user from
// different booths can never lose an update; lock contention surfaces as
// domain.ErrConcurrentCreditConflict, which callers may retry. When a
// submission ID is present, the submission is flipped to verified inside
// the same transaction.
func (r *creditRepository) ApplyCredit(ctx context.Context, in ApplyCreditInput) (*models.CreditEntry, error) {
	var entry *models.CreditEntry

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND is_active = ?", in.UserID, true).
			Updates(map[string]interface{}{
				"balance":        gorm.Expr("balance + ?", in.Points),
				"total_waste_kg": gorm.Expr("total_waste_kg + ?", in.QuantityKg),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Unknown or deactivated user, nothing was incremented.
			return domain.ErrUnknownUser
		}

		var user models.User
		if err := tx.First(&user, in.UserID).Error; err != nil {
			return err
		}

		tier := domain.RankTierFor(user.TotalWasteKg)
		if tier != user.RankTier {
			if err := tx.Model(&models.User{}).Where("id = ?", in.UserID).
				Update("rank_tier", tier).Error; err != nil {
				return err
			}
		}

		entry = &models.CreditEntry{
			UserID:           in.UserID,
			BoothID:          in.BoothID,
			OperatorID:       in.OperatorID,
			SubmissionID:     in.SubmissionID,
			WasteType:        string(in.WasteType),
			QuantityKg:       in.QuantityKg,
			PointsDelta:      in.Points,
			ResultingBalance: user.Balance,
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		if in.SubmissionID != nil {
			res := tx.Model(&models.Submission{}).
				Where("id = ? AND status = ?", *in.SubmissionID, "pending").
				Updates(map[string]interface{}{
					"status":      string(domain.VerificationVerified),
					"verified_by": in.OperatorID,
					"verified_at": gorm.Expr("NOW()"),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Another operator verified it first; abort the credit.
				return domain.ErrConcurrentCreditConflict
			}
		}

		return nil
	})

	if err != nil {
		if isLockContention(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrConcurrentCreditConflict, err)
		}
		return nil, err
	}
	return entry, nil
}

// ListByUser lists a user's ledger entries, newest first
func (r *creditRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.CreditEntry, int64, error) {
	var entries []*models.CreditEntry
	var total int64

	r.db.WithContext(ctx).Model(&models.CreditEntry{}).Where("user_id = ?", userID).Count(&total)

	err := r.db.WithContext(ctx).
		Preload("Booth").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&entries).Error

	return entries, total, err
}

// TotalsByType sums credited kilograms per waste type for a user.
func (r *creditRepository) TotalsByType(ctx context.Context, userID uint) (map[string]float64, error) {
	type row struct {
		WasteType string
		TotalKg   float64
	}
	var rows []row

	err := r.db.WithContext(ctx).
		Model(&models.CreditEntry{}).
		Select("waste_type, SUM(quantity_kg) AS total_kg").
		Where("user_id = ?", userID).
		Group("waste_type").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64, len(rows))
	for _, r := range rows {
		totals[r.WasteType] = r.TotalKg
	}
	return totals, nil
}

func isLockContention(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDeadlock || mysqlErr.Number == mysqlErrLockWaitTimeout
	}
	return errors.Is(err, domain.ErrConcurrentCreditConflict)
}
