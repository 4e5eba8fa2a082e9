package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"joinwork/internal/models"
)

// Options configuration for the seeder
type Options struct {
	NumGraduates   int
	NumCompanies   int
	JobsPerCompany int
	NumWorkshops   int
	SkipBcrypt     bool
}

// DefaultOptions returns the sizes used by the dev preset.
func DefaultOptions() Options {
	return Options{
		NumGraduates:   20,
		NumCompanies:   5,
		JobsPerCompany: 3,
		NumWorkshops:   4,
	}
}

// Run populates the store with demo data: companies with job postings,
// graduates, a spread of applications, and ministry workshops.
func Run(ctx context.Context, factory *Factory) error {
	opts := factory.opts
	log.Printf("Seeding %d graduates, %d companies x %d jobs, %d workshops...",
		opts.NumGraduates, opts.NumCompanies, opts.JobsPerCompany, opts.NumWorkshops)

	graduates := make([]*models.Graduate, 0, opts.NumGraduates)
	for i := 0; i < opts.NumGraduates; i++ {
		_, graduate, err := factory.CreateGraduate(ctx)
		if err != nil {
			return fmt.Errorf("failed to create graduate: %w", err)
		}
		graduates = append(graduates, graduate)
	}
	log.Printf("created %d graduates", len(graduates))

	jobs := make([]*models.Job, 0, opts.NumCompanies*opts.JobsPerCompany)
	for i := 0; i < opts.NumCompanies; i++ {
		_, company, err := factory.CreateCompany(ctx)
		if err != nil {
			return fmt.Errorf("failed to create company: %w", err)
		}
		for j := 0; j < opts.JobsPerCompany; j++ {
			job, err := factory.CreateJob(ctx, company)
			if err != nil {
				return fmt.Errorf("failed to create job: %w", err)
			}
			jobs = append(jobs, job)
		}
	}
	log.Printf("created %d jobs", len(jobs))

	// Each graduate applies to a couple of random jobs. The (job, graduate)
	// pair is unique, so re-picks of the same job are skipped.
	applications := 0
	for _, graduate := range graduates {
		applied := map[int64]bool{}
		for n := 0; n < 2 && len(jobs) > 0; n++ {
			job := jobs[rand.Intn(len(jobs))]
			if applied[job.ID] {
				continue
			}
			applied[job.ID] = true
			status := models.ApplicationPending
			switch rand.Intn(4) {
			case 0:
				status = models.ApplicationAccepted
			case 1:
				status = models.ApplicationRejected
			}
			if _, err := factory.CreateApplication(ctx, job, graduate, func(a *models.Application) {
				a.Status = status
			}); err != nil {
				return fmt.Errorf("failed to create application: %w", err)
			}
			applications++
		}
	}
	log.Printf("created %d applications", applications)

	for i := 0; i < opts.NumWorkshops; i++ {
		if _, err := factory.CreateWorkshop(ctx); err != nil {
			return fmt.Errorf("failed to create workshop: %w", err)
		}
	}
	log.Printf("created %d workshops", opts.NumWorkshops)

	return nil
}
