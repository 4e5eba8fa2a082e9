package service

import (
	"context"
	"time"

	"joinwork/internal/middleware"
	"joinwork/internal/models"
	"joinwork/internal/repository"
)

// ApplicationService coordinates the apply-to-job workflow and the company
// side of application review.
type ApplicationService struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	companies    repository.CompanyRepository
	graduates    repository.GraduateRepository
	users        repository.UserRepository
	counters     repository.CounterRepository
	profiles     *ProfileService
	now          func() time.Time
}

// NewApplicationService returns a new ApplicationService.
func NewApplicationService(
	applications repository.ApplicationRepository,
	jobs repository.JobRepository,
	companies repository.CompanyRepository,
	graduates repository.GraduateRepository,
	users repository.UserRepository,
	counters repository.CounterRepository,
	profiles *ProfileService,
) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		jobs:         jobs,
		companies:    companies,
		graduates:    graduates,
		users:        users,
		counters:     counters,
		profiles:     profiles,
		now:          time.Now,
	}
}

// ApplyInput carries the caller identity and payload for Apply. The resolved
// graduate id is threaded through the workflow as an explicit local, never
// recovered from surrounding scope.
type ApplyInput struct {
	JobID       int64
	UserID      int64
	Role        string
	CoverLetter string
}

// Apply submits an application for a job on behalf of a graduate user.
//
// Ordering is deliberate: resolve the profile before the duplicate check
// (a user without a profile can never have applied), and check for a
// duplicate before allocating an id (no wasted ids on the common retry).
// A concurrent duplicate that slips past the check is rejected by the
// store's uniqueness guarantee at insert time.
func (s *ApplicationService) Apply(ctx context.Context, in ApplyInput) (*models.Application, error) {
	if in.Role != models.RoleGraduate {
		return nil, models.NewForbiddenError("Only graduates can apply for jobs")
	}

	if _, err := s.jobs.GetByID(ctx, in.JobID); err != nil {
		return nil, err
	}

	graduate, err := s.profiles.EnsureGraduate(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	existing, err := s.applications.FindByJobAndGraduate(ctx, in.JobID, graduate.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewAlreadyAppliedError(in.JobID)
	}

	id, err := s.counters.Next(ctx, repository.CollectionApplications)
	if err != nil {
		return nil, err
	}

	application := &models.Application{
		ID:          id,
		JobID:       in.JobID,
		GraduateID:  graduate.ID,
		Status:      models.ApplicationPending,
		CoverLetter: in.CoverLetter,
		AppliedDate: s.now().UTC(),
	}
	if err := s.applications.Create(ctx, application); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "application submitted",
		"application_id", application.ID,
		"job_id", application.JobID,
		"graduate_id", application.GraduateID,
	)
	middleware.ApplicationsSubmitted.Inc()
	return application, nil
}

// ListForJob returns a job's applications with applicant details joined in.
// Only the company that owns the job may list them.
func (s *ApplicationService) ListForJob(ctx context.Context, jobID, callerUserID int64) ([]models.ApplicationWithGraduate, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, job, callerUserID); err != nil {
		return nil, err
	}

	applications, err := s.applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	out := make([]models.ApplicationWithGraduate, 0, len(applications))
	for _, a := range applications {
		entry := models.ApplicationWithGraduate{Application: a}
		graduate, gerr := s.graduates.GetByID(ctx, a.GraduateID)
		if gerr == nil {
			entry.GraduateMajor = graduate.Major
			entry.GraduateUniversity = graduate.University
			entry.GraduateGPA = graduate.GPA
			entry.GraduateSkills = graduate.Skills
			if user, uerr := s.users.GetByID(ctx, graduate.UserID); uerr == nil {
				entry.GraduateName = user.FullName
				entry.GraduateEmail = user.Email
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

// UpdateStatus lets the owning company move an application between pending,
// accepted and rejected.
func (s *ApplicationService) UpdateStatus(ctx context.Context, applicationID, callerUserID int64, status string) (*models.Application, error) {
	if !models.ValidApplicationStatus(status) {
		return nil, models.NewValidationError("Invalid status. Must be accepted, rejected, or pending")
	}

	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.GetByID(ctx, application.JobID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, job, callerUserID); err != nil {
		return nil, err
	}

	return s.applications.Update(ctx, applicationID, map[string]any{"status": status})
}

func (s *ApplicationService) requireOwner(ctx context.Context, job *models.Job, callerUserID int64) error {
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
