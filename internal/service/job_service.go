package service

import (
	"context"
	"time"

	"joinwork/internal/cache"
	"joinwork/internal/models"
	"joinwork/internal/repository"
)

// JobService handles job posting CRUD on behalf of companies and the public
// job board listing.
type JobService struct {
	jobs      repository.JobRepository
	companies repository.CompanyRepository
	counters  repository.CounterRepository
	profiles  *ProfileService
	now       func() time.Time
}

// NewJobService returns a new JobService.
func NewJobService(
	jobs repository.JobRepository,
	companies repository.CompanyRepository,
	counters repository.CounterRepository,
	profiles *ProfileService,
) *JobService {
	return &JobService{
		jobs:      jobs,
		companies: companies,
		counters:  counters,
		profiles:  profiles,
		now:       time.Now,
	}
}

// CreateJobInput is the payload for posting a job.
type CreateJobInput struct {
	UserID         int64
	Title          string
	Description    string
	Location       string
	Salary         *float64
	SkillsRequired string
	EmploymentType string
}

// Create posts a new job for the caller's company, lazily creating the
// company profile on first use.
func (s *JobService) Create(ctx context.Context, in CreateJobInput) (*models.Job, error) {
	if in.Title == "" || in.Description == "" || in.Location == "" {
		return nil, models.NewValidationError("Title, description, and location are required")
	}

	company, err := s.profiles.EnsureCompany(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	id, err := s.counters.Next(ctx, repository.CollectionJobs)
	if err != nil {
		return nil, err
	}

	employmentType := in.EmploymentType
	if employmentType == "" {
		employmentType = "full-time"
	}
	job := &models.Job{
		ID:             id,
		CompanyID:      company.ID,
		Title:          in.Title,
		Description:    in.Description,
		Location:       in.Location,
		Salary:         in.Salary,
		SkillsRequired: in.SkillsRequired,
		EmploymentType: employmentType,
		Status:         models.JobStatusActive,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	cache.InvalidateJobList(ctx)
	return job, nil
}

// List returns jobs matching the filter with the posting company's name
// joined in. The unfiltered listing is served through the cache.
func (s *JobService) List(ctx context.Context, filter repository.JobFilter) ([]models.JobWithCompany, error) {
	if filter.CompanyID == nil && filter.Status == "" {
		var listing []models.JobWithCompany
		err := cache.Aside(ctx, cache.JobListKey(), &listing, cache.JobListTTL, func() error {
			loaded, lerr := s.listWithCompany(ctx, filter)
			if lerr != nil {
				return lerr
			}
			listing = loaded
			return nil
		})
		if err != nil {
			return nil, err
		}
		return listing, nil
	}
	return s.listWithCompany(ctx, filter)
}

func (s *JobService) listWithCompany(ctx context.Context, filter repository.JobFilter) ([]models.JobWithCompany, error) {
	jobs, err := s.jobs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]models.JobWithCompany, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, models.JobWithCompany{
			Job:         job,
			CompanyName: s.companyName(ctx, job.CompanyID),
		})
	}
	return out, nil
}

// Get returns a single job with the company name joined in.
func (s *JobService) Get(ctx context.Context, id int64) (*models.JobWithCompany, error) {
	var out models.JobWithCompany
	err := cache.Aside(ctx, cache.JobKey(id), &out, cache.JobTTL, func() error {
		job, lerr := s.jobs.GetByID(ctx, id)
		if lerr != nil {
			return lerr
		}
		out = models.JobWithCompany{Job: *job, CompanyName: s.companyName(ctx, job.CompanyID)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update applies a partial update to a job owned by the caller's company.
func (s *JobService) Update(ctx context.Context, jobID, callerUserID int64, updates map[string]any) (*models.Job, error) {
	if err := s.requireOwner(ctx, jobID, callerUserID); err != nil {
		return nil, err
	}
	job, err := s.jobs.Update(ctx, jobID, updates)
	if err != nil {
		return nil, err
	}
	cache.InvalidateJob(ctx, jobID)
	return job, nil
}

// Delete removes a job owned by the caller's company. Applications for the
// job are intentionally left behind.
func (s *JobService) Delete(ctx context.Context, jobID, callerUserID int64) error {
	if err := s.requireOwner(ctx, jobID, callerUserID); err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, jobID); err != nil {
		return err
	}
	cache.InvalidateJob(ctx, jobID)
	return nil
}

func (s *JobService) requireOwner(ctx context.Context, jobID, callerUserID int64) error {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	company, err := s.companies.GetByID(ctx, job.CompanyID)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return models.NewForbiddenError("You do not own this job posting")
		}
		return err
	}
	if company.UserID != callerUserID {
		return models.NewForbiddenError("You do not own this job posting")
	}
	return nil
}

func (s *JobService) companyName(ctx context.Context, companyID int64) string {
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return "Unknown Company"
	}
	return company.CompanyName
}
