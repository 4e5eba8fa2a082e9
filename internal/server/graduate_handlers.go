package server

import (
	"joinwork/internal/models"
	"joinwork/internal/repository"
	"joinwork/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreateGraduate handles POST /api/graduates. Explicit profile creation for
// graduates who signed up before the profile fields existed; a second create
// for the same user is a conflict.
func (s *Server) CreateGraduate(c *fiber.Ctx) error {
	var req struct {
		University        string   `json:"university"`
		Major             string   `json:"major"`
		UnifiedCardNumber string   `json:"unified_card_number"`
		Skills            string   `json:"skills"`
		Age               *int     `json:"age"`
		GPA               *float64 `json:"GPA"`
		Projects          string   `json:"projects"`
		Experience        string   `json:"experience"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.UnifiedCardNumber != "" {
		if err := validation.ValidateCardNumber(req.UnifiedCardNumber); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
	}

	userID := currentUserID(c)
	existing, err := s.repos.Graduates.GetByUserID(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewAlreadyExistsError("graduate profile"))
	}

	id, err := s.repos.Counters.Next(c.Context(), repository.CollectionGraduates)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	graduate := &models.Graduate{
		ID:                id,
		UserID:            userID,
		University:        req.University,
		Major:             req.Major,
		UnifiedCardNumber: req.UnifiedCardNumber,
		Skills:            req.Skills,
		Age:               req.Age,
		GPA:               req.GPA,
		Projects:          req.Projects,
		Experience:        req.Experience,
	}
	if err := s.repos.Graduates.Create(c.Context(), graduate); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(graduate)
}

// GetGraduate handles GET /api/graduates/:id
func (s *Server) GetGraduate(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	graduate, err := s.repos.Graduates.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	profile := models.GraduateProfile{Graduate: *graduate}
	if user, uerr := s.repos.Users.GetByID(c.Context(), graduate.UserID); uerr == nil {
		profile.FullName = user.FullName
		profile.Email = user.Email
	}
	return c.JSON(profile)
}

// GetGraduateByUser handles GET /api/graduates/user/:userId. Only the owner
// may look up their own profile this way.
func (s *Server) GetGraduateByUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	if userID != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only access your own profile"))
	}

	graduate, err := s.repos.Graduates.GetByUserID(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if graduate == nil {
		return models.RespondWithAppError(c,
			models.NewNotFoundError("graduate", userID))
	}
	return c.JSON(graduate)
}

// UpdateGraduate handles PUT /api/graduates/:id. Partial update: only the
// fields present in the body are touched.
func (s *Server) UpdateGraduate(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	graduate, err := s.repos.Graduates.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if graduate.UserID != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only update your own profile"))
	}

	var req map[string]any
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	updates := map[string]any{}
	for _, field := range []string{"university", "major", "skills", "projects", "experience"} {
		if v, ok := req[field].(string); ok {
			updates[field] = v
		}
	}
	if v, ok := req["unified_card_number"].(string); ok {
		if verr := validation.ValidateCardNumber(v); verr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(verr.Error()))
		}
		updates["unified_card_number"] = v
	}
	if v, ok := req["age"].(float64); ok {
		updates["age"] = int(v)
	}
	if v, ok := req["GPA"].(float64); ok {
		updates["gpa"] = v
	}
	if len(updates) == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No updatable fields provided"))
	}

	updated, err := s.repos.Graduates.Update(c.Context(), id, updates)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(updated)
}
