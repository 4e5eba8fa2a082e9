package repository

import (
	"context"
	"testing"

	"joinwork/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreate_DuplicateEmailRejected(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &models.User{
		ID: 1, FullName: "Sara Ahmed", Email: "sara@example.com",
		PasswordHash: "x", Role: models.RoleGraduate,
	}))

	err := users.Create(ctx, &models.User{
		ID: 2, FullName: "Other Sara", Email: "sara@example.com",
		PasswordHash: "x", Role: models.RoleGraduate,
	})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeAlreadyExists))
}

func TestUserGetByEmail_MissIsNil(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)

	user, err := users.GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestGraduateUpdate_PartialMerge(t *testing.T) {
	db := newTestDB(t)
	graduates := NewGraduateRepository(db)
	ctx := context.Background()

	gpa := 3.2
	require.NoError(t, graduates.Create(ctx, &models.Graduate{
		ID: 1, UserID: 7, University: "Baghdad University", Major: "CS", GPA: &gpa,
	}))

	updated, err := graduates.Update(ctx, 1, map[string]any{"major": "Software Engineering"})
	require.NoError(t, err)
	assert.Equal(t, "Software Engineering", updated.Major)
	// Untouched fields survive the partial update.
	assert.Equal(t, "Baghdad University", updated.University)
	require.NotNil(t, updated.GPA)
	assert.Equal(t, 3.2, *updated.GPA)
}

func TestGraduateCreate_OneProfilePerUser(t *testing.T) {
	db := newTestDB(t)
	graduates := NewGraduateRepository(db)
	ctx := context.Background()

	require.NoError(t, graduates.Create(ctx, &models.Graduate{ID: 1, UserID: 7}))

	err := graduates.Create(ctx, &models.Graduate{ID: 2, UserID: 7})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeAlreadyExists))
}
