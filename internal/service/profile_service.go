package service

import (
	"context"
	"fmt"

	"joinwork/internal/models"
	"joinwork/internal/repository"
)

// ProfileService lazily resolves role-specific profiles for users. A user of
// role graduate or company may reach a profile-requiring action (applying,
// posting a job) before a profile record exists; the resolver creates one
// with default values on first use.
type ProfileService struct {
	users     repository.UserRepository
	graduates repository.GraduateRepository
	companies repository.CompanyRepository
	counters  repository.CounterRepository
}

// NewProfileService returns a new ProfileService.
func NewProfileService(
	users repository.UserRepository,
	graduates repository.GraduateRepository,
	companies repository.CompanyRepository,
	counters repository.CounterRepository,
) *ProfileService {
	return &ProfileService{
		users:     users,
		graduates: graduates,
		companies: companies,
		counters:  counters,
	}
}

// EnsureGraduate returns the graduate profile for userID, creating an empty
// one if none exists. Concurrent first calls race on the insert; the loser
// observes the unique user_id violation and re-reads the winner's record, so
// exactly one profile survives.
func (s *ProfileService) EnsureGraduate(ctx context.Context, userID int64) (*models.Graduate, error) {
	graduate, err := s.graduates.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if graduate != nil {
		return graduate, nil
	}

	id, err := s.counters.Next(ctx, repository.CollectionGraduates)
	if err != nil {
		return nil, err
	}
	graduate = &models.Graduate{ID: id, UserID: userID}
	if err := s.graduates.Create(ctx, graduate); err != nil {
		if models.IsCode(err, models.CodeAlreadyExists) {
			return s.lookupGraduate(ctx, userID)
		}
		return nil, err
	}
	return graduate, nil
}

func (s *ProfileService) lookupGraduate(ctx context.Context, userID int64) (*models.Graduate, error) {
	graduate, err := s.graduates.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if graduate == nil {
		return nil, models.NewNotFoundError("Graduate profile for user", userID)
	}
	return graduate, nil
}

// EnsureCompany returns the company profile for userID, creating one if none
// exists. The default display name is the user's full name, falling back to
// a placeholder when the account record is missing.
func (s *ProfileService) EnsureCompany(ctx context.Context, userID int64) (*models.Company, error) {
	company, err := s.companies.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if company != nil {
		return company, nil
	}

	name := fmt.Sprintf("Company %d", userID)
	user, err := s.users.GetByID(ctx, userID)
	if err != nil && !models.IsCode(err, models.CodeNotFound) {
		return nil, err
	}
	if user != nil && user.FullName != "" {
		name = user.FullName
	}

	id, err := s.counters.Next(ctx, repository.CollectionCompanies)
	if err != nil {
		return nil, err
	}
	company = &models.Company{ID: id, UserID: userID, CompanyName: name}
	if err := s.companies.Create(ctx, company); err != nil {
		if models.IsCode(err, models.CodeAlreadyExists) {
			return s.lookupCompany(ctx, userID)
		}
		return nil, err
	}
	return company, nil
}

func (s *ProfileService) lookupCompany(ctx context.Context, userID int64) (*models.Company, error) {
	company, err := s.companies.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, models.NewNotFoundError("Company profile for user", userID)
	}
	return company, nil
}
