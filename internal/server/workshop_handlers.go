package server

import (
	"time"

	"joinwork/internal/models"
	"joinwork/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// GetWorkshops handles GET /api/workshops
func (s *Server) GetWorkshops(c *fiber.Ctx) error {
	workshops, err := s.repos.Workshops.List(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(workshops)
}

// CreateWorkshop handles POST /api/workshops. Ministry only.
func (s *Server) CreateWorkshop(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Provider    string `json:"provider"`
		Location    string `json:"location"`
		Date        string `json:"date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title is required"))
	}

	id, err := s.repos.Counters.Next(c.Context(), repository.CollectionWorkshops)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	workshop := &models.Workshop{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Provider:    req.Provider,
		Location:    req.Location,
		Date:        req.Date,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repos.Workshops.Create(c.Context(), workshop); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(workshop)
}
