package repositories

import (
	"context"
	"time"

	"greenloop/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// submissionRepository implements SubmissionRepository interface
type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

// Create persists a new submission record
func (r *submissionRepository) Create(ctx context.Context, sub *models.Submission) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

// GetByID gets a submission with relations
func (r *submissionRepository) GetByID(ctx context.Context, id uint) (*models.Submission, error) {
	var sub models.Submission
	err := r.db.WithContext(ctx).
		Preload("Booth").
		Preload("User").
		First(&sub, id).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListByUser lists a user's submissions, newest first
func (r *submissionRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Submission, int64, error) {
	var subs []*models.Submission
	var total int64

	r.db.WithContext(ctx).Model(&models.Submission{}).Where("user_id = ?", userID).Count(&total)

	err := r.db.WithContext(ctx).
		Preload("Booth").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&subs).Error

	return subs, total, err
}

// ListPending lists pending self-service submissions, optionally scoped
// to one booth, oldest first so operators clear the backlog in order.
func (r *submissionRepository) ListPending(ctx context.Context, boothID *uint, offset, limit int) ([]*models.Submission, int64, error) {
	var subs []*models.Submission
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Submission{}).Where("status = ?", "pending")
	if boothID != nil {
		q = q.Where("booth_id = ?", *boothID)
	}
	q.Count(&total)

	listQ := r.db.WithContext(ctx).
		Preload("Booth").
		Preload("User").
		Where("status = ?", "pending")
	if boothID != nil {
		listQ = listQ.Where("booth_id = ?", *boothID)
	}

	err := listQ.
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&subs).Error

	return subs, total, err
}

// MarkRejected flips a pending submission to rejected. The conditional
// WHERE keeps two operators from racing on the same record.
func (r *submissionRepository) MarkRejected(ctx context.Context, id, operatorID uint) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Where("id = ? AND status = ?", id, "pending").
		Updates(map[string]interface{}{
			"status":      "rejected",
			"verified_by": operatorID,
			"verified_at": &now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
