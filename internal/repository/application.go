package repository

import (
	"context"
	"errors"
	"strings"

	"joinwork/internal/models"

	"gorm.io/gorm"
)

// ApplicationRepository defines persistence operations for job applications.
//
// Create enforces the one-application-per-(job, graduate) invariant through
// the composite unique index, so concurrent check-then-insert races collapse
// into a single winner; losers observe AlreadyApplied.
type ApplicationRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	FindByJobAndGraduate(ctx context.Context, jobID, graduateID int64) (*models.Application, error)
	ListByJob(ctx context.Context, jobID int64) ([]models.Application, error)
	Create(ctx context.Context, application *models.Application) error
	Update(ctx context.Context, id int64, updates map[string]any) (*models.Application, error)
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository returns a new ApplicationRepository implementation.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	var application models.Application
	if err := r.db.WithContext(ctx).First(&application, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Application", id)
		}
		return nil, storeError(err)
	}
	return &application, nil
}

// FindByJobAndGraduate returns (nil, nil) when the pair has no application.
func (r *applicationRepository) FindByJobAndGraduate(ctx context.Context, jobID, graduateID int64) (*models.Application, error) {
	var application models.Application
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND graduate_id = ?", jobID, graduateID).
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeError(err)
	}
	return &application, nil
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID int64) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("applied_date DESC").
		Find(&applications).Error
	if err != nil {
		return nil, storeError(err)
	}
	return applications, nil
}

func (r *applicationRepository) Create(ctx context.Context, application *models.Application) error {
	if err := r.db.WithContext(ctx).Create(application).Error; err != nil {
		if isUniqueConstraintError(err) {
			// Distinguish a duplicate (job, graduate) pair from an id clash.
			msg := strings.ToLower(err.Error())
			if strings.Contains(msg, "job_id") || strings.Contains(msg, "job_graduate") {
				return models.NewAlreadyAppliedError(application.JobID)
			}
			return models.NewAlreadyExistsError("Application")
		}
		return storeError(err)
	}
	return nil
}

// Update merges only the supplied fields into the stored record.
func (r *applicationRepository) Update(ctx context.Context, id int64, updates map[string]any) (*models.Application, error) {
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&models.Application{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, storeError(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, models.NewNotFoundError("Application", id)
		}
	}
	return r.GetByID(ctx, id)
}
