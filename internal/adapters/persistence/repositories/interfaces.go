package repositories

import (
	"context"

	"greenloop/internal/adapters/persistence/models"
	"greenloop/internal/core/domain"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByHandle(ctx context.Context, handle string) (*models.User, error)
	GetByQRToken(ctx context.Context, token string) (*models.User, error)
	ListTopByBalance(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ListAll(ctx context.Context) ([]*models.User, error)
	UpdateRankTier(ctx context.Context, userID uint, tier string) error
	ExistsByHandle(ctx context.Context, handle string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// BoothRepository defines booth repository interface
type BoothRepository interface {
	Create(ctx context.Context, booth *models.Booth) error
	GetByID(ctx context.Context, id uint) (*models.Booth, error)
	GetByQRToken(ctx context.Context, token string) (*models.Booth, error)
	List(ctx context.Context) ([]*models.Booth, error)
	UpdateStatus(ctx context.Context, id uint, status domain.BoothStatus) error
}

// SubmissionRepository defines submission repository interface
type SubmissionRepository interface {
	Create(ctx context.Context, sub *models.Submission) error
	GetByID(ctx context.Context, id uint) (*models.Submission, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Submission, int64, error)
	ListPending(ctx context.Context, boothID *uint, offset, limit int) ([]*models.Submission, int64, error)
	MarkRejected(ctx context.Context, id, operatorID uint) error
}

// CreditRepository applies credits atomically and reads the ledger.
type CreditRepository interface {
	ApplyCredit(ctx context.Context, in ApplyCreditInput) (*models.CreditEntry, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.CreditEntry, int64, error)
	TotalsByType(ctx context.Context, userID uint) (map[string]float64, error)
}

// RateRepository reads the waste type rate master table.
type RateRepository interface {
	ListActive(ctx context.Context) ([]*models.WasteTypeRate, error)
}
