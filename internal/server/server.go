// Package server contains HTTP handlers for the JoinWork API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"joinwork/internal/cache"
	"joinwork/internal/config"
	"joinwork/internal/database"
	"joinwork/internal/middleware"
	"joinwork/internal/models"
	"joinwork/internal/repository"
	"joinwork/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Repositories bundles every collection repository behind the store driver.
type Repositories struct {
	Counters     repository.CounterRepository
	Users        repository.UserRepository
	Graduates    repository.GraduateRepository
	Companies    repository.CompanyRepository
	Jobs         repository.JobRepository
	Applications repository.ApplicationRepository
	Workshops    repository.WorkshopRepository
}

// NewGormRepositories builds the repository set backed by a SQL database.
func NewGormRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Counters:     repository.NewCounterRepository(db),
		Users:        repository.NewUserRepository(db),
		Graduates:    repository.NewGraduateRepository(db),
		Companies:    repository.NewCompanyRepository(db),
		Jobs:         repository.NewJobRepository(db),
		Applications: repository.NewApplicationRepository(db),
		Workshops:    repository.NewWorkshopRepository(db),
	}
}

// NewMemoryRepositories builds the repository set backed by the in-memory store.
func NewMemoryRepositories(store *repository.MemoryStore) Repositories {
	return Repositories{
		Counters:     store.Counters(),
		Users:        store.Users(),
		Graduates:    store.Graduates(),
		Companies:    store.Companies(),
		Jobs:         store.Jobs(),
		Applications: store.Applications(),
		Workshops:    store.Workshops(),
	}
}

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	repos Repositories

	profileService     *service.ProfileService
	jobService         *service.JobService
	applicationService *service.ApplicationService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	var db *gorm.DB
	var repos Repositories

	if cfg.StoreDriver == "memory" {
		repos = NewMemoryRepositories(repository.NewMemoryStore())
	} else {
		connected, err := database.Connect(cfg)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		db = connected
		repos = NewGormRepositories(db)
	}

	cache.InitRedis(cfg.RedisURL)

	return newServer(cfg, db, cache.GetClient(), repos), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this with a sqlite database, the memory store, or miniredis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	var repos Repositories
	if cfg.StoreDriver == "memory" || db == nil {
		repos = NewMemoryRepositories(repository.NewMemoryStore())
	} else {
		repos = NewGormRepositories(db)
	}
	return newServer(cfg, db, redisClient, repos), nil
}

func newServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, repos Repositories) *Server {
	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("joinwork-api"),
		repos:          repos,
	}

	server.profileService = service.NewProfileService(
		repos.Users, repos.Graduates, repos.Companies, repos.Counters)
	server.jobService = service.NewJobService(
		repos.Jobs, repos.Companies, repos.Counters, server.profileService)
	server.applicationService = service.NewApplicationService(
		repos.Applications, repos.Jobs, repos.Companies, repos.Graduates,
		repos.Users, repos.Counters, server.profileService)

	return server
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)
	api.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "JoinWork Backend Metrics Dashboard",
	}))

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Get("/me", s.AuthRequired(), s.Me)

	// Public job board
	jobs := api.Group("/jobs")
	jobs.Get("/", s.GetJobs)
	jobs.Get("/:id", s.GetJob)

	// Public workshop listing
	api.Get("/workshops", s.GetWorkshops)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// Graduate profiles
	graduates := protected.Group("/graduates")
	graduates.Post("/", s.RoleRequired(models.RoleGraduate), s.CreateGraduate)
	// Specific /user/:userId route before generic /:id
	graduates.Get("/user/:userId", s.GetGraduateByUser)
	graduates.Get("/:id", s.GetGraduate)
	graduates.Put("/:id", s.RoleRequired(models.RoleGraduate), s.UpdateGraduate)

	// Company profiles
	companies := protected.Group("/companies")
	companies.Get("/user/:userId", s.GetCompanyByUser)
	companies.Get("/:id", s.GetCompany)

	// Job management and applications
	protectedJobs := protected.Group("/jobs")
	protectedJobs.Post("/", s.RoleRequired(models.RoleCompany), s.CreateJob)
	protectedJobs.Post("/:id/apply", s.RoleRequired(models.RoleGraduate), middleware.RateLimit(
		s.redis, 20, time.Minute, "apply"), s.ApplyToJob)
	protectedJobs.Get("/:id/applications", s.RoleRequired(models.RoleCompany), s.GetJobApplications)
	protectedJobs.Put("/:id", s.RoleRequired(models.RoleCompany), s.UpdateJob)
	protectedJobs.Delete("/:id", s.RoleRequired(models.RoleCompany), s.DeleteJob)

	// Application review
	applications := protected.Group("/applications")
	applications.Put("/:id", s.RoleRequired(models.RoleCompany), s.UpdateApplicationStatus)

	// Workshops (ministry-managed)
	protected.Post("/workshops", s.RoleRequired(models.RoleMinistry), s.CreateWorkshop)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			dbStatus = "unhealthy"
		} else if err := sqlDB.PingContext(ctx); err != nil {
			dbStatus = "unhealthy"
		}
	} else if s.config.StoreDriver != "memory" {
		dbStatus = "unavailable"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Redis is optional; the API degrades to uncached reads.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || dbStatus == "unavailable" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		// Parse and validate token
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			// Validate signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})

		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		// Extract claims
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		// Validate issuer and audience
		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "joinwork-api" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "joinwork-client" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		// Extract user ID from subject claim
		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}
		userID, err := strconv.ParseInt(sub, 10, 64)
		if err != nil || userID <= 0 {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		role, _ := claims["role"].(string)

		// Store identity in context
		c.Locals("userID", userID)
		c.Locals("role", role)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// RoleRequired returns middleware that rejects callers whose token role is
// not in the allowed set. Must be placed after AuthRequired.
func (s *Server) RoleRequired(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Insufficient role for this action"))
	}
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "JoinWork API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if cerr := sqlDB.Close(); cerr != nil {
				log.Printf("error closing sql DB: %v", cerr)
			}
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
