package repositories

import (
	"context"

	"greenloop/internal/adapters/persistence/models"
	"greenloop/internal/core/domain"

	"gorm.io/gorm"
)

// boothRepository implements BoothRepository interface
type boothRepository struct {
	db *gorm.DB
}

// NewBoothRepository creates a new booth repository
func NewBoothRepository(db *gorm.DB) BoothRepository {
	return &boothRepository{db: db}
}

// Create creates a new booth
func (r *boothRepository) Create(ctx context.Context, booth *models.Booth) error {
	return r.db.WithContext(ctx).Create(booth).Error
}

// GetByID gets a booth by ID
func (r *boothRepository) GetByID(ctx context.Context, id uint) (*models.Booth, error) {
	var booth models.Booth
	err := r.db.WithContext(ctx).First(&booth, id).Error
	if err != nil {
		return nil, err
	}
	return &booth, nil
}

// GetByQRToken resolves a scanned booth QR token
func (r *boothRepository) GetByQRToken(ctx context.Context, token string) (*models.Booth, error) {
	var booth models.Booth
	err := r.db.WithContext(ctx).Where("qr_token = ?", token).First(&booth).Error
	if err != nil {
		return nil, err
	}
	return &booth, nil
}

// List returns the full booth directory
func (r *boothRepository) List(ctx context.Context) ([]*models.Booth, error) {
	var booths []*models.Booth
	err := r.db.WithContext(ctx).Order("id ASC").Find(&booths).Error
	return booths, err
}

// UpdateStatus changes the operational status of a booth
func (r *boothRepository) UpdateStatus(ctx context.Context, id uint, status domain.BoothStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Booth{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}
