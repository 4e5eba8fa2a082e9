package repository

import (
	"context"
	"errors"

	"joinwork/internal/models"

	"gorm.io/gorm"
)

// CompanyRepository defines persistence operations for company profiles.
type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Company, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Company, error)
	Create(ctx context.Context, company *models.Company) error
}

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository returns a new CompanyRepository implementation.
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Company", id)
		}
		return nil, storeError(err)
	}
	return &company, nil
}

// GetByUserID returns (nil, nil) when the user has no company profile yet.
func (r *companyRepository) GetByUserID(ctx context.Context, userID int64) (*models.Company, error) {
	var company models.Company
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeError(err)
	}
	return &company, nil
}

func (r *companyRepository) Create(ctx context.Context, company *models.Company) error {
	if err := r.db.WithContext(ctx).Create(company).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewAlreadyExistsError("Company profile")
		}
		return storeError(err)
	}
	return nil
}
