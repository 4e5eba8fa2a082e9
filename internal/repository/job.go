package repository

import (
	"context"
	"errors"

	"joinwork/internal/models"

	"gorm.io/gorm"
)

// JobFilter narrows a job listing by equality predicates. Nil/empty fields
// are ignored.
type JobFilter struct {
	CompanyID *int64
	Status    string
}

// JobRepository defines persistence operations for job postings.
type JobRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Job, error)
	List(ctx context.Context, filter JobFilter) ([]models.Job, error)
	Create(ctx context.Context, job *models.Job) error
	Update(ctx context.Context, id int64, updates map[string]any) (*models.Job, error)
	Delete(ctx context.Context, id int64) error
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository returns a new JobRepository implementation.
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	var job models.Job
	if err := r.db.WithContext(ctx).First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Job", id)
		}
		return nil, storeError(err)
	}
	return &job, nil
}

func (r *jobRepository) List(ctx context.Context, filter JobFilter) ([]models.Job, error) {
	q := r.db.WithContext(ctx).Model(&models.Job{})
	if filter.CompanyID != nil {
		q = q.Where("company_id = ?", *filter.CompanyID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	var jobs []models.Job
	if err := q.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, storeError(err)
	}
	return jobs, nil
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewAlreadyExistsError("Job")
		}
		return storeError(err)
	}
	return nil
}

// Update merges only the supplied fields into the stored record.
func (r *jobRepository) Update(ctx context.Context, id int64, updates map[string]any) (*models.Job, error) {
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&models.Job{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, storeError(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, models.NewNotFoundError("Job", id)
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes the job only. Its applications are left in place; the
// product treats orphaned applications as a known gap, not something the
// store resolves on its own.
func (r *jobRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Job{}, id)
	if res.Error != nil {
		return storeError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Job", id)
	}
	return nil
}
