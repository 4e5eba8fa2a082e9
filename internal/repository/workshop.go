package repository

import (
	"context"

	"joinwork/internal/models"

	"gorm.io/gorm"
)

// WorkshopRepository defines persistence operations for workshop listings.
type WorkshopRepository interface {
	List(ctx context.Context) ([]models.Workshop, error)
	Create(ctx context.Context, workshop *models.Workshop) error
}

type workshopRepository struct {
	db *gorm.DB
}

// NewWorkshopRepository returns a new WorkshopRepository implementation.
func NewWorkshopRepository(db *gorm.DB) WorkshopRepository {
	return &workshopRepository{db: db}
}

func (r *workshopRepository) List(ctx context.Context) ([]models.Workshop, error) {
	var workshops []models.Workshop
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&workshops).Error; err != nil {
		return nil, storeError(err)
	}
	return workshops, nil
}

func (r *workshopRepository) Create(ctx context.Context, workshop *models.Workshop) error {
	if err := r.db.WithContext(ctx).Create(workshop).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewAlreadyExistsError("Workshop")
		}
		return storeError(err)
	}
	return nil
}
