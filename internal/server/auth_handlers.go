package server

import (
	"fmt"
	"strconv"
	"time"

	"joinwork/internal/models"
	"joinwork/internal/repository"
	"joinwork/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Signup handles POST /api/auth/signup. The role-specific profile record is
// created together with the account so most users never hit the lazy
// resolver path.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`

		// Graduate profile fields
		University        string   `json:"university"`
		Major             string   `json:"major"`
		UnifiedCardNumber string   `json:"unified_card_number"`
		Skills            string   `json:"skills"`
		Age               *int     `json:"age"`
		GPA               *float64 `json:"GPA"`

		// Company profile fields
		CompanyName string `json:"company_name"`
		Sector      string `json:"sector"`
		Location    string `json:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	email := validation.NormalizeEmail(req.Email)

	// Validate input
	if req.FullName == "" || email == "" || req.Password == "" || req.Role == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Full name, email, password, and role are required"))
	}
	if err := validation.ValidateEmail(email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateRole(req.Role); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if req.Role == models.RoleGraduate && req.UnifiedCardNumber != "" {
		if err := validation.ValidateCardNumber(req.UnifiedCardNumber); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
	}

	// Check if user already exists
	existing, err := s.repos.Users.GetByEmail(c.Context(), email)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewAlreadyExistsError("user"))
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	userID, err := s.repos.Counters.Next(c.Context(), repository.CollectionUsers)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	user := &models.User{
		ID:           userID,
		FullName:     req.FullName,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         req.Role,
		CreatedAt:    time.Now().UTC(),
	}
	if createErr := s.repos.Users.Create(c.Context(), user); createErr != nil {
		return models.RespondWithAppError(c, createErr)
	}

	// Create the role-specific profile alongside the account. Ministry users
	// have no profile record.
	switch req.Role {
	case models.RoleGraduate:
		graduateID, gerr := s.repos.Counters.Next(c.Context(), repository.CollectionGraduates)
		if gerr != nil {
			return models.RespondWithAppError(c, gerr)
		}
		graduate := &models.Graduate{
			ID:                graduateID,
			UserID:            user.ID,
			University:        req.University,
			Major:             req.Major,
			UnifiedCardNumber: req.UnifiedCardNumber,
			Skills:            req.Skills,
			Age:               req.Age,
			GPA:               req.GPA,
		}
		if gerr := s.repos.Graduates.Create(c.Context(), graduate); gerr != nil {
			return models.RespondWithAppError(c, gerr)
		}
	case models.RoleCompany:
		companyID, cerr := s.repos.Counters.Next(c.Context(), repository.CollectionCompanies)
		if cerr != nil {
			return models.RespondWithAppError(c, cerr)
		}
		companyName := req.CompanyName
		if companyName == "" {
			companyName = req.FullName
		}
		company := &models.Company{
			ID:          companyID,
			UserID:      user.ID,
			CompanyName: companyName,
			Sector:      req.Sector,
			Location:    req.Location,
		}
		if cerr := s.repos.Companies.Create(c.Context(), company); cerr != nil {
			return models.RespondWithAppError(c, cerr)
		}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user.Public(),
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.repos.Users.GetByEmail(c.Context(), validation.NormalizeEmail(req.Email))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	token, err := s.generateToken(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user.Public(),
	})
}

// Me handles GET /api/auth/me
func (s *Server) Me(c *fiber.Ctx) error {
	user, err := s.repos.Users.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"user": user.Public()})
}

// generateToken creates a JWT token for the given user
func (s *Server) generateToken(user *models.User) (string, error) {
	// Validate secret exists
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(user.ID, 10),    // Subject (user ID as string)
		"role":  user.Role,                         // Role (cached in token)
		"email": user.Email,                        // Email (cached in token)
		"iss":   "joinwork-api",                    // Issuer
		"aud":   "joinwork-client",                 // Audience
		"exp":   now.Add(time.Hour * 24 * 7).Unix(), // Expiration (7 days)
		"iat":   now.Unix(),                        // Issued at
		"nbf":   now.Unix(),                        // Not before
		"jti":   s.generateJTI(),                   // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
