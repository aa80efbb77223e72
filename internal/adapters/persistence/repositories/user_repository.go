package repositories

import (
	"context"

	"greenloop/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByHandle gets a user by account handle
func (r *userRepository) GetByHandle(ctx context.Context, handle string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("handle = ?", handle).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByQRToken resolves a scanned identity token to a user
func (r *userRepository) GetByQRToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("qr_token = ? AND is_active = ?", token, true).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListTopByBalance lists users ordered by balance (leaderboard)
func (r *userRepository) ListTopByBalance(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	r.db.WithContext(ctx).Model(&models.User{}).Where("is_active = ?", true).Count(&total)

	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("balance DESC, total_waste_kg DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error

	return users, total, err
}

// ListAll lists every user (rank recalculation job)
func (r *userRepository) ListAll(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).Find(&users).Error
	return users, err
}

// UpdateRankTier sets the derived rank tier label
func (r *userRepository) UpdateRankTier(ctx context.Context, userID uint, tier string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("rank_tier", tier).Error
}

// ExistsByHandle checks if a handle is taken
func (r *userRepository) ExistsByHandle(ctx context.Context, handle string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("handle = ?", handle).Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks if an email is taken
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
