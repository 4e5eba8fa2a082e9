package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"joinwork/internal/models"
	"joinwork/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type applyFixture struct {
	store        *repository.MemoryStore
	applications *ApplicationService
	jobs         *JobService

	graduateUser *models.User
	companyUser  *models.User
	job          *models.Job
}

// newApplyFixture seeds a company with one active job and a graduate account
// without a profile, so the lazy resolver path is exercised.
func newApplyFixture(t *testing.T) *applyFixture {
	t.Helper()
	store := repository.NewMemoryStore()
	ctx := context.Background()

	profiles := newProfileService(store)
	jobService := NewJobService(store.Jobs(), store.Companies(), store.Counters(), profiles)
	applicationService := NewApplicationService(
		store.Applications(), store.Jobs(), store.Companies(), store.Graduates(),
		store.Users(), store.Counters(), profiles)

	companyUser := &models.User{
		ID: 1, FullName: "Euphrates Tech", Email: "jobs@euphrates.example",
		PasswordHash: "x", Role: models.RoleCompany,
	}
	require.NoError(t, store.Users().Create(ctx, companyUser))

	graduateUser := &models.User{
		ID: 2, FullName: "Ali Hassan", Email: "ali@example.com",
		PasswordHash: "x", Role: models.RoleGraduate,
	}
	require.NoError(t, store.Users().Create(ctx, graduateUser))

	job, err := jobService.Create(ctx, CreateJobInput{
		UserID:      companyUser.ID,
		Title:       "Backend Engineer",
		Description: "Build APIs",
		Location:    "Baghdad",
	})
	require.NoError(t, err)

	return &applyFixture{
		store:        store,
		applications: applicationService,
		jobs:         jobService,
		graduateUser: graduateUser,
		companyUser:  companyUser,
		job:          job,
	}
}

func (f *applyFixture) applyInput() ApplyInput {
	return ApplyInput{
		JobID:       f.job.ID,
		UserID:      f.graduateUser.ID,
		Role:        models.RoleGraduate,
		CoverLetter: "I would like to apply.",
	}
}

func TestApply_Success(t *testing.T) {
	t.Parallel()

	f := newApplyFixture(t)
	ctx := context.Background()

	application, err := f.applications.Apply(ctx, f.applyInput())
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, application.Status)
	assert.NotZero(t, application.ID)
	assert.Equal(t, f.job.ID, application.JobID)
	assert.False(t, application.AppliedDate.IsZero())

	// The lazy resolver created a graduate profile for the applicant.
	graduate, err := f.store.Graduates().GetByUserID(ctx, f.graduateUser.ID)
	require.NoError(t, err)
	require.NotNil(t, graduate)
	assert.Equal(t, graduate.ID, application.GraduateID)
}

func TestApply_NonGraduateForbidden(t *testing.T) {
	t.Parallel()

	f := newApplyFixture(t)
	in := f.applyInput()
	in.UserID = f.companyUser.ID
	in.Role = models.RoleCompany

	_, err := f.applications.Apply(context.Background(), in)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeForbidden))
}

func TestApply_MissingJobNotFound(t *testing.T) {
	t.Parallel()

	f := newApplyFixture(t)
	in := f.applyInput()
	in.JobID = 9999

	_, err := f.applications.Apply(context.Background(), in)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	// A failed apply must not leave a profile-less half-finished state
	// visible as an application.
	list, lerr := f.store.Applications().ListByJob(context.Background(), f.job.ID)
	require.NoError(t, lerr)
	assert.Empty(t, list)
}

func TestApply_DuplicateRejected(t *testing.T) {
	t.Parallel()

	f := newApplyFixture(t)
	ctx := context.Background()

	_, err := f.applications.Apply(ctx, f.applyInput())
	require.NoError(t, err)

	_, err = f.applications.Apply(ctx, f.applyInput())
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeAlreadyApplied), "got %v", err)

	list, err := f.store.Applications().ListByJob(ctx, f.job.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestApply_ConcurrentDuplicatesOneWinner(t *testing.T) {
	t.Parallel()

	f := newApplyFixture(t)
	ctx := context.Background()

	const callers = 16
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.applications.Apply(ctx, f.applyInput())
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.True(t, models.IsCode(err, models.CodeAlreadyApplied), "got %v", err)
	}
	assert.Equal(t, 1, successes)

	list, err := f.store.Applications().ListByJob(ctx, f.job.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// The racing applies also race lazy profile creation; they must all
	// resolve to a single graduate record, and the winning application
	// must reference it.
	grad, err := f.store.Graduates().GetByUserID(ctx, f.graduateUser.ID)
	require.NoError(t, err)
	require.NotNil(t, grad)
	assert.Equal(t, grad.ID, list[0].GraduateID)
}

func TestListForJob_OwnerOnly(t *testing.T) {
	t.Parallel()

	f := newApplyFixture(t)
	ctx := context.Background()

	_, err := f.applications.Apply(ctx, f.applyInput())
	require.NoError(t, err)

	// The owning company sees applicant details joined in.
	list, err := f.applications.ListForJob(ctx, f.job.ID, f.companyUser.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ali Hassan", list[0].GraduateName)
	assert.Equal(t, "ali@example.com", list[0].GraduateEmail)

	// Anyone else is rejected.
	_, err = f.applications.ListForJob(ctx, f.job.ID, f.graduateUser.ID)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeForbidden))
}

func TestUpdateStatus(t *testing.T) {
	t.Parallel()

	f := newApplyFixture(t)
	ctx := context.Background()

	application, err := f.applications.Apply(ctx, f.applyInput())
	require.NoError(t, err)

	t.Run("invalid status rejected", func(t *testing.T) {
		_, err := f.applications.UpdateStatus(ctx, application.ID, f.companyUser.ID, "maybe")
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeValidation))
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		_, err := f.applications.UpdateStatus(ctx, application.ID, f.graduateUser.ID, models.ApplicationAccepted)
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeForbidden))
	})

	t.Run("owner accepts", func(t *testing.T) {
		updated, err := f.applications.UpdateStatus(ctx, application.ID, f.companyUser.ID, models.ApplicationAccepted)
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationAccepted, updated.Status)
	})
}

func TestApply_AppliedDateFromClock(t *testing.T) {
	t.Parallel()

	f := newApplyFixture(t)
	fixed := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	f.applications.now = func() time.Time { return fixed }

	application, err := f.applications.Apply(context.Background(), f.applyInput())
	require.NoError(t, err)
	assert.Equal(t, fixed, application.AppliedDate)
}
