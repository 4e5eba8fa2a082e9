package server

import (
	"joinwork/internal/models"
	"joinwork/internal/repository"
	"joinwork/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetJobs handles GET /api/jobs. Supports optional company_id and status
// query filters; the unfiltered listing is cached.
func (s *Server) GetJobs(c *fiber.Ctx) error {
	filter := repository.JobFilter{
		Status: c.Query("status"),
	}
	if companyID := c.QueryInt("company_id", 0); companyID > 0 {
		id := int64(companyID)
		filter.CompanyID = &id
	}

	jobs, err := s.jobService.List(c.Context(), filter)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(jobs)
}

// GetJob handles GET /api/jobs/:id
func (s *Server) GetJob(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	job, err := s.jobService.Get(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(job)
}

// CreateJob handles POST /api/jobs
func (s *Server) CreateJob(c *fiber.Ctx) error {
	var req struct {
		Title          string   `json:"title"`
		Description    string   `json:"description"`
		Location       string   `json:"location"`
		Salary         *float64 `json:"salary"`
		SkillsRequired string   `json:"skills_required"`
		EmploymentType string   `json:"employment_type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	job, err := s.jobService.Create(c.Context(), service.CreateJobInput{
		UserID:         currentUserID(c),
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		Salary:         req.Salary,
		SkillsRequired: req.SkillsRequired,
		EmploymentType: req.EmploymentType,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

// UpdateJob handles PUT /api/jobs/:id. Partial update, owner only.
func (s *Server) UpdateJob(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req map[string]any
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	updates := map[string]any{}
	for _, field := range []string{"title", "description", "location", "skills_required", "employment_type"} {
		if v, ok := req[field].(string); ok {
			updates[field] = v
		}
	}
	if v, ok := req["salary"].(float64); ok {
		updates["salary"] = v
	}
	if v, ok := req["status"].(string); ok {
		if v != models.JobStatusActive && v != models.JobStatusClosed {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Status must be active or closed"))
		}
		updates["status"] = v
	}
	if len(updates) == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No updatable fields provided"))
	}

	job, err := s.jobService.Update(c.Context(), id, currentUserID(c), updates)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(job)
}

// DeleteJob handles DELETE /api/jobs/:id
func (s *Server) DeleteJob(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.jobService.Delete(c.Context(), id, currentUserID(c)); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Job deleted"})
}

// ApplyToJob handles POST /api/jobs/:id/apply
func (s *Server) ApplyToJob(c *fiber.Ctx) error {
	jobID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		CoverLetter string `json:"cover_letter"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	application, err := s.applicationService.Apply(c.Context(), service.ApplyInput{
		JobID:       jobID,
		UserID:      currentUserID(c),
		Role:        currentRole(c),
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(application)
}

// GetJobApplications handles GET /api/jobs/:id/applications
func (s *Server) GetJobApplications(c *fiber.Ctx) error {
	jobID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	applications, err := s.applicationService.ListForJob(c.Context(), jobID, currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(applications)
}
