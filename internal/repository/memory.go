package repository

import (
	"context"
	"strings"
	"sync"

	"joinwork/internal/models"
)

// MemoryStore is a process-local, non-persistent backing for every
// repository interface. A single mutex serializes all operations, which
// makes check-then-insert sequences inside one call atomic, the same
// guarantee the SQL store gets from its unique indexes and transactions.
//
// It backs the "memory" store driver and the service-layer tests.
type MemoryStore struct {
	mu           sync.Mutex
	users        map[int64]models.User
	graduates    map[int64]models.Graduate
	companies    map[int64]models.Company
	jobs         map[int64]models.Job
	applications map[int64]models.Application
	workshops    map[int64]models.Workshop
	counters     map[string]int64
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[int64]models.User),
		graduates:    make(map[int64]models.Graduate),
		companies:    make(map[int64]models.Company),
		jobs:         make(map[int64]models.Job),
		applications: make(map[int64]models.Application),
		workshops:    make(map[int64]models.Workshop),
		counters:     make(map[string]int64),
	}
}

// Counters returns the allocator view of the store.
func (s *MemoryStore) Counters() CounterRepository { return (*memoryCounters)(s) }

// Users returns the user collection view of the store.
func (s *MemoryStore) Users() UserRepository { return (*memoryUsers)(s) }

// Graduates returns the graduate collection view of the store.
func (s *MemoryStore) Graduates() GraduateRepository { return (*memoryGraduates)(s) }

// Companies returns the company collection view of the store.
func (s *MemoryStore) Companies() CompanyRepository { return (*memoryCompanies)(s) }

// Jobs returns the job collection view of the store.
func (s *MemoryStore) Jobs() JobRepository { return (*memoryJobs)(s) }

// Applications returns the application collection view of the store.
func (s *MemoryStore) Applications() ApplicationRepository { return (*memoryApplications)(s) }

// Workshops returns the workshop collection view of the store.
func (s *MemoryStore) Workshops() WorkshopRepository { return (*memoryWorkshops)(s) }

type memoryCounters MemoryStore

func (s *memoryCounters) Next(_ context.Context, collection string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[collection]++
	return s.counters[collection], nil
}

type memoryUsers MemoryStore

func (s *memoryUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, models.NewNotFoundError("User", id)
	}
	return &u, nil
}

func (s *memoryUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *memoryUsers) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; ok {
		return models.NewAlreadyExistsError("User")
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return models.NewAlreadyExistsError("User")
		}
	}
	s.users[user.ID] = *user
	return nil
}

type memoryGraduates MemoryStore

func (s *memoryGraduates) GetByID(_ context.Context, id int64) (*models.Graduate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.graduates[id]
	if !ok {
		return nil, models.NewNotFoundError("Graduate", id)
	}
	return &g, nil
}

func (s *memoryGraduates) GetByUserID(_ context.Context, userID int64) (*models.Graduate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.graduates {
		if g.UserID == userID {
			g := g
			return &g, nil
		}
	}
	return nil, nil
}

func (s *memoryGraduates) Create(_ context.Context, graduate *models.Graduate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.graduates[graduate.ID]; ok {
		return models.NewAlreadyExistsError("Graduate profile")
	}
	for _, g := range s.graduates {
		if g.UserID == graduate.UserID {
			return models.NewAlreadyExistsError("Graduate profile")
		}
	}
	s.graduates[graduate.ID] = *graduate
	return nil
}

func (s *memoryGraduates) Update(_ context.Context, id int64, updates map[string]any) (*models.Graduate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.graduates[id]
	if !ok {
		return nil, models.NewNotFoundError("Graduate", id)
	}
	for k, v := range updates {
		switch k {
		case "university":
			g.University, _ = v.(string)
		case "major":
			g.Major, _ = v.(string)
		case "unified_card_number":
			g.UnifiedCardNumber, _ = v.(string)
		case "skills":
			g.Skills, _ = v.(string)
		case "projects":
			g.Projects, _ = v.(string)
		case "experience":
			g.Experience, _ = v.(string)
		case "age":
			if p, ok := v.(*int); ok {
				g.Age = p
			} else if n, ok := v.(int); ok {
				g.Age = &n
			}
		case "gpa":
			if p, ok := v.(*float64); ok {
				g.GPA = p
			} else if n, ok := v.(float64); ok {
				g.GPA = &n
			}
		}
	}
	s.graduates[id] = g
	return &g, nil
}

type memoryCompanies MemoryStore

func (s *memoryCompanies) GetByID(_ context.Context, id int64) (*models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.companies[id]
	if !ok {
		return nil, models.NewNotFoundError("Company", id)
	}
	return &c, nil
}

func (s *memoryCompanies) GetByUserID(_ context.Context, userID int64) (*models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.companies {
		if c.UserID == userID {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (s *memoryCompanies) Create(_ context.Context, company *models.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.companies[company.ID]; ok {
		return models.NewAlreadyExistsError("Company profile")
	}
	for _, c := range s.companies {
		if c.UserID == company.UserID {
			return models.NewAlreadyExistsError("Company profile")
		}
	}
	s.companies[company.ID] = *company
	return nil
}

type memoryJobs MemoryStore

func (s *memoryJobs) GetByID(_ context.Context, id int64) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, models.NewNotFoundError("Job", id)
	}
	return &j, nil
}

func (s *memoryJobs) List(_ context.Context, filter JobFilter) ([]models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var jobs []models.Job
	for _, j := range s.jobs {
		if filter.CompanyID != nil && j.CompanyID != *filter.CompanyID {
			continue
		}
		if filter.Status != "" && j.Status != filter.Status {
			continue
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func (s *memoryJobs) Create(_ context.Context, job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.ID]; ok {
		return models.NewAlreadyExistsError("Job")
	}
	s.jobs[job.ID] = *job
	return nil
}

func (s *memoryJobs) Update(_ context.Context, id int64, updates map[string]any) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, models.NewNotFoundError("Job", id)
	}
	for k, v := range updates {
		switch k {
		case "title":
			j.Title, _ = v.(string)
		case "description":
			j.Description, _ = v.(string)
		case "location":
			j.Location, _ = v.(string)
		case "salary":
			if p, ok := v.(*float64); ok {
				j.Salary = p
			} else if n, ok := v.(float64); ok {
				j.Salary = &n
			}
		case "skills_required":
			j.SkillsRequired, _ = v.(string)
		case "employment_type":
			j.EmploymentType, _ = v.(string)
		case "status":
			j.Status, _ = v.(string)
		}
	}
	s.jobs[id] = j
	return &j, nil
}

func (s *memoryJobs) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok {
		return models.NewNotFoundError("Job", id)
	}
	delete(s.jobs, id)
	return nil
}

type memoryApplications MemoryStore

func (s *memoryApplications) GetByID(_ context.Context, id int64) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.applications[id]
	if !ok {
		return nil, models.NewNotFoundError("Application", id)
	}
	return &a, nil
}

func (s *memoryApplications) FindByJobAndGraduate(_ context.Context, jobID, graduateID int64) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a := s.findPair(jobID, graduateID); a != nil {
		return a, nil
	}
	return nil, nil
}

// findPair must be called with the lock held.
func (s *memoryApplications) findPair(jobID, graduateID int64) *models.Application {
	for _, a := range s.applications {
		if a.JobID == jobID && a.GraduateID == graduateID {
			a := a
			return &a
		}
	}
	return nil
}

func (s *memoryApplications) ListByJob(_ context.Context, jobID int64) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var applications []models.Application
	for _, a := range s.applications {
		if a.JobID == jobID {
			applications = append(applications, a)
		}
	}
	return applications, nil
}

func (s *memoryApplications) Create(_ context.Context, application *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.applications[application.ID]; ok {
		return models.NewAlreadyExistsError("Application")
	}
	if s.findPair(application.JobID, application.GraduateID) != nil {
		return models.NewAlreadyAppliedError(application.JobID)
	}
	s.applications[application.ID] = *application
	return nil
}

func (s *memoryApplications) Update(_ context.Context, id int64, updates map[string]any) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.applications[id]
	if !ok {
		return nil, models.NewNotFoundError("Application", id)
	}
	for k, v := range updates {
		switch k {
		case "status":
			a.Status, _ = v.(string)
		case "cover_letter":
			a.CoverLetter, _ = v.(string)
		}
	}
	s.applications[id] = a
	return &a, nil
}

type memoryWorkshops MemoryStore

func (s *memoryWorkshops) List(_ context.Context) ([]models.Workshop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var workshops []models.Workshop
	for _, w := range s.workshops {
		workshops = append(workshops, w)
	}
	return workshops, nil
}

func (s *memoryWorkshops) Create(_ context.Context, workshop *models.Workshop) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.workshops[workshop.ID]; ok {
		return models.NewAlreadyExistsError("Workshop")
	}
	s.workshops[workshop.ID] = *workshop
	return nil
}
