package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"joinwork/internal/config"
	"joinwork/internal/models"
	"joinwork/internal/repository"
	"joinwork/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// newTestServer builds a Server over the memory store with routes mounted.
// The prometheus middleware is left nil so repeated test servers do not
// re-register collectors.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	repos := NewMemoryRepositories(repository.NewMemoryStore())
	s := &Server{
		config: &config.Config{
			JWTSecret:   "test-secret-key-for-handler-tests!!",
			StoreDriver: "memory",
			Env:         "test",
		},
		repos: repos,
	}
	s.profileService = service.NewProfileService(
		repos.Users, repos.Graduates, repos.Companies, repos.Counters)
	s.jobService = service.NewJobService(
		repos.Jobs, repos.Companies, repos.Counters, s.profileService)
	s.applicationService = service.NewApplicationService(
		repos.Applications, repos.Jobs, repos.Companies, repos.Graduates,
		repos.Users, repos.Counters, s.profileService)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

// signupUser registers an account through the real endpoint and returns the
// issued token plus the decoded user id.
func signupUser(t *testing.T, app *fiber.App, role, email string, extra map[string]any) (string, int64) {
	t.Helper()

	body := map[string]any{
		"full_name": "Test " + role,
		"email":     email,
		"password":  "secret123",
		"role":      role,
	}
	for k, v := range extra {
		body[k] = v
	}
	resp, decoded := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "signup body: %v", decoded)

	token, _ := decoded["token"].(string)
	require.NotEmpty(t, token)
	user, _ := decoded["user"].(map[string]any)
	require.NotNil(t, user)
	id, _ := user["user_id"].(float64)
	return token, int64(id)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestAuthRequired_RejectsMissingAndBogusTokens(t *testing.T) {
	_, app := newTestServer(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/auth/me", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoleRequired(t *testing.T) {
	_, app := newTestServer(t)

	token, _ := signupUser(t, app, models.RoleGraduate, "grad-role@example.com", nil)

	// A graduate cannot post jobs.
	resp, _ := doJSON(t, app, http.MethodPost, "/api/jobs", token, map[string]any{
		"title": "x", "description": "y", "location": "z",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHealthEndpoints(t *testing.T) {
	_, app := newTestServer(t)

	resp, decoded := doJSON(t, app, http.MethodGet, "/health/live", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "up", decoded["status"])

	// Memory store with no redis still reports ready.
	resp, decoded = doJSON(t, app, http.MethodGet, "/health/ready", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "healthy", decoded["status"])
}
