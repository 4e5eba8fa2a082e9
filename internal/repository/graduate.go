package repository

import (
	"context"
	"errors"

	"joinwork/internal/models"

	"gorm.io/gorm"
)

// GraduateRepository defines persistence operations for graduate profiles.
type GraduateRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Graduate, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Graduate, error)
	Create(ctx context.Context, graduate *models.Graduate) error
	Update(ctx context.Context, id int64, updates map[string]any) (*models.Graduate, error)
}

type graduateRepository struct {
	db *gorm.DB
}

// NewGraduateRepository returns a new GraduateRepository implementation.
func NewGraduateRepository(db *gorm.DB) GraduateRepository {
	return &graduateRepository{db: db}
}

func (r *graduateRepository) GetByID(ctx context.Context, id int64) (*models.Graduate, error) {
	var graduate models.Graduate
	if err := r.db.WithContext(ctx).First(&graduate, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Graduate", id)
		}
		return nil, storeError(err)
	}
	return &graduate, nil
}

// GetByUserID returns (nil, nil) when the user has no graduate profile yet.
func (r *graduateRepository) GetByUserID(ctx context.Context, userID int64) (*models.Graduate, error) {
	var graduate models.Graduate
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&graduate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeError(err)
	}
	return &graduate, nil
}

func (r *graduateRepository) Create(ctx context.Context, graduate *models.Graduate) error {
	if err := r.db.WithContext(ctx).Create(graduate).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewAlreadyExistsError("Graduate profile")
		}
		return storeError(err)
	}
	return nil
}

// Update merges only the supplied fields into the stored record.
func (r *graduateRepository) Update(ctx context.Context, id int64, updates map[string]any) (*models.Graduate, error) {
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&models.Graduate{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, storeError(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, models.NewNotFoundError("Graduate", id)
		}
	}
	return r.GetByID(ctx, id)
}
