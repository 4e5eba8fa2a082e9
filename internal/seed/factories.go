// Package seed provides helpers to create demo data for the JoinWork
// database. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"time"

	"joinwork/internal/models"
	"joinwork/internal/repository"
	"joinwork/internal/server"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
)

// Factory builds domain entities and persists them through the repositories,
// so seeded rows go through the same id allocator as live traffic.
type Factory struct {
	repos server.Repositories
	opts  Options
}

// NewFactory creates a new Factory bound to the provided repository set.
func NewFactory(repos server.Repositories, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{repos: repos, opts: opts}
}

func (f *Factory) hashPassword(plain string) string {
	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		return plain
	}
	hashed, _ := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(hashed)
}

func (f *Factory) createUser(ctx context.Context, role string, overrides ...func(*models.User)) (*models.User, error) {
	id, err := f.repos.Counters.Next(ctx, repository.CollectionUsers)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		ID:           id,
		FullName:     gofakeit.Name(),
		Email:        fmt.Sprintf("%s%d@%s", gofakeit.Username(), gofakeit.Number(100, 999), gofakeit.DomainName()),
		PasswordHash: f.hashPassword("password123"),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.repos.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateGraduate constructs and persists a graduate account with its profile.
func (f *Factory) CreateGraduate(ctx context.Context, overrides ...func(*models.Graduate)) (*models.User, *models.Graduate, error) {
	user, err := f.createUser(ctx, models.RoleGraduate)
	if err != nil {
		return nil, nil, err
	}

	id, err := f.repos.Counters.Next(ctx, repository.CollectionGraduates)
	if err != nil {
		return nil, nil, err
	}
	age := gofakeit.Number(21, 30)
	gpa := float64(gofakeit.Number(200, 400)) / 100
	graduate := &models.Graduate{
		ID:                id,
		UserID:            user.ID,
		University:        gofakeit.Company() + " University",
		Major:             gofakeit.JobDescriptor() + " " + gofakeit.JobLevel(),
		UnifiedCardNumber: fmt.Sprintf("%012d", gofakeit.Number(100000000000, 999999999999)),
		Skills:            fmt.Sprintf("%s, %s, %s", gofakeit.ProgrammingLanguage(), gofakeit.ProgrammingLanguage(), gofakeit.HackerAbbreviation()),
		Age:               &age,
		GPA:               &gpa,
	}
	for _, override := range overrides {
		override(graduate)
	}
	if err := f.repos.Graduates.Create(ctx, graduate); err != nil {
		return nil, nil, err
	}
	return user, graduate, nil
}

// CreateCompany constructs and persists a company account with its profile.
func (f *Factory) CreateCompany(ctx context.Context, overrides ...func(*models.Company)) (*models.User, *models.Company, error) {
	user, err := f.createUser(ctx, models.RoleCompany)
	if err != nil {
		return nil, nil, err
	}

	id, err := f.repos.Counters.Next(ctx, repository.CollectionCompanies)
	if err != nil {
		return nil, nil, err
	}
	company := &models.Company{
		ID:          id,
		UserID:      user.ID,
		CompanyName: gofakeit.Company(),
		Sector:      gofakeit.BuzzWord(),
		Location:    gofakeit.City(),
	}
	for _, override := range overrides {
		override(company)
	}
	if err := f.repos.Companies.Create(ctx, company); err != nil {
		return nil, nil, err
	}
	return user, company, nil
}

// CreateJob constructs and persists a job posting for the given company.
func (f *Factory) CreateJob(ctx context.Context, company *models.Company, overrides ...func(*models.Job)) (*models.Job, error) {
	id, err := f.repos.Counters.Next(ctx, repository.CollectionJobs)
	if err != nil {
		return nil, err
	}
	salary := float64(gofakeit.Number(800, 5000))
	job := &models.Job{
		ID:             id,
		CompanyID:      company.ID,
		Title:          gofakeit.JobTitle(),
		Description:    gofakeit.Paragraph(1, 3, 8, "\n"),
		Location:       gofakeit.City(),
		Salary:         &salary,
		SkillsRequired: fmt.Sprintf("%s, %s", gofakeit.ProgrammingLanguage(), gofakeit.BuzzWord()),
		EmploymentType: "full-time",
		Status:         models.JobStatusActive,
		CreatedAt:      time.Now().UTC().Add(-time.Duration(gofakeit.Number(0, 60*24*30)) * time.Minute),
	}
	for _, override := range overrides {
		override(job)
	}
	if err := f.repos.Jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// CreateApplication persists an application from the graduate to the job.
func (f *Factory) CreateApplication(ctx context.Context, job *models.Job, graduate *models.Graduate, overrides ...func(*models.Application)) (*models.Application, error) {
	id, err := f.repos.Counters.Next(ctx, repository.CollectionApplications)
	if err != nil {
		return nil, err
	}
	application := &models.Application{
		ID:          id,
		JobID:       job.ID,
		GraduateID:  graduate.ID,
		Status:      models.ApplicationPending,
		CoverLetter: gofakeit.Paragraph(1, 2, 10, "\n"),
		AppliedDate: time.Now().UTC().Add(-time.Duration(gofakeit.Number(0, 60*24*7)) * time.Minute),
	}
	for _, override := range overrides {
		override(application)
	}
	if err := f.repos.Applications.Create(ctx, application); err != nil {
		return nil, err
	}
	return application, nil
}

// CreateWorkshop constructs and persists a training workshop.
func (f *Factory) CreateWorkshop(ctx context.Context, overrides ...func(*models.Workshop)) (*models.Workshop, error) {
	id, err := f.repos.Counters.Next(ctx, repository.CollectionWorkshops)
	if err != nil {
		return nil, err
	}
	workshop := &models.Workshop{
		ID:          id,
		Title:       gofakeit.BuzzWord() + " Workshop",
		Description: gofakeit.Paragraph(1, 2, 8, "\n"),
		Provider:    gofakeit.Company(),
		Location:    gofakeit.City(),
		Date:        gofakeit.FutureDate().Format("2006-01-02"),
		CreatedAt:   time.Now().UTC(),
	}
	for _, override := range overrides {
		override(workshop)
	}
	if err := f.repos.Workshops.Create(ctx, workshop); err != nil {
		return nil, err
	}
	return workshop, nil
}
