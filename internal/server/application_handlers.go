package server

import (
	"joinwork/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UpdateApplicationStatus handles PUT /api/applications/:id. The owning
// company moves an application between pending, accepted and rejected.
func (s *Server) UpdateApplicationStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	application, err := s.applicationService.UpdateStatus(c.Context(), id, currentUserID(c), req.Status)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(application)
}
