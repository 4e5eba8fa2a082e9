package server

import (
	"context"
	"net/http"
	"testing"

	"joinwork/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	_, app := newTestServer(t)

	tests := []struct {
		name           string
		body           map[string]any
		expectedStatus int
	}{
		{
			name: "graduate success",
			body: map[string]any{
				"full_name":           "Sara Ahmed",
				"email":               "sara@example.com",
				"password":            "secret123",
				"role":                "graduate",
				"university":          "Baghdad University",
				"unified_card_number": "123456789012",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "company success",
			body: map[string]any{
				"full_name":    "Omar K",
				"email":        "omar@acme.example",
				"password":     "secret123",
				"role":         "company",
				"company_name": "Acme Iraq",
				"sector":       "software",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate email",
			body: map[string]any{
				"full_name": "Sara Again",
				"email":     "SARA@example.com", // same address, different case
				"password":  "secret123",
				"role":      "graduate",
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "missing fields",
			body: map[string]any{
				"email": "incomplete@example.com",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad role",
			body: map[string]any{
				"full_name": "X",
				"email":     "x@example.com",
				"password":  "secret123",
				"role":      "admin",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "short password",
			body: map[string]any{
				"full_name": "X",
				"email":     "short@example.com",
				"password":  "abc",
				"role":      "graduate",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad card number",
			body: map[string]any{
				"full_name":           "X",
				"email":               "card@example.com",
				"password":            "secret123",
				"role":                "graduate",
				"unified_card_number": "12345",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, decoded := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", tt.body)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode, "body: %v", decoded)
		})
	}
}

func TestSignup_CreatesRoleProfile(t *testing.T) {
	s, app := newTestServer(t)

	token, userID := signupUser(t, app, models.RoleGraduate, "profile@example.com", map[string]any{
		"university": "Mosul University",
		"major":      "CS",
	})

	// The graduate profile exists and is reachable through the self route.
	resp, decoded := doJSON(t, app, http.MethodGet,
		"/api/graduates/user/"+itoa(userID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Mosul University", decoded["university"])

	graduate, err := s.repos.Graduates.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, graduate)
	assert.Equal(t, "CS", graduate.Major)
}

func TestLogin(t *testing.T) {
	_, app := newTestServer(t)

	signupUser(t, app, models.RoleGraduate, "login@example.com", nil)

	t.Run("success", func(t *testing.T) {
		resp, decoded := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "Login@Example.com", // normalized on lookup
			"password": "secret123",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, decoded["token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "login@example.com",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown email", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "ghost@example.com",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestMe(t *testing.T) {
	_, app := newTestServer(t)

	token, userID := signupUser(t, app, models.RoleCompany, "me@example.com", nil)

	resp, decoded := doJSON(t, app, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user, _ := decoded["user"].(map[string]any)
	require.NotNil(t, user)
	assert.Equal(t, float64(userID), user["user_id"])
	assert.Equal(t, models.RoleCompany, user["role"])
	// The password hash never leaves the server.
	_, leaked := user["password_hash"]
	assert.False(t, leaked)
}
