package repositories

import (
	"context"

	"greenloop/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// rateRepository implements RateRepository interface
type rateRepository struct {
	db *gorm.DB
}

// NewRateRepository creates a new waste type rate repository
func NewRateRepository(db *gorm.DB) RateRepository {
	return &rateRepository{db: db}
}

// ListActive returns active rate rows. Loaded once at startup; the rate
// table is immutable for the lifetime of the process.
func (r *rateRepository) ListActive(ctx context.Context) ([]*models.WasteTypeRate, error) {
	var rates []*models.WasteTypeRate
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("code ASC").Find(&rates).Error
	return rates, err
}
