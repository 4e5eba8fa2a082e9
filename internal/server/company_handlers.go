package server

import (
	"joinwork/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCompany handles GET /api/companies/:id
func (s *Server) GetCompany(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	company, err := s.repos.Companies.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(company)
}

// GetCompanyByUser handles GET /api/companies/user/:userId. A company looking
// up its own profile gets one created lazily if none exists yet.
func (s *Server) GetCompanyByUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if userID == currentUserID(c) && currentRole(c) == models.RoleCompany {
		company, rerr := s.profileService.EnsureCompany(c.Context(), userID)
		if rerr != nil {
			return models.RespondWithAppError(c, rerr)
		}
		return c.JSON(company)
	}

	company, err := s.repos.Companies.GetByUserID(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if company == nil {
		return models.RespondWithAppError(c,
			models.NewNotFoundError("company", userID))
	}
	return c.JSON(company)
}
