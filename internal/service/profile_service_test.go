package service

import (
	"context"
	"sync"
	"testing"

	"joinwork/internal/models"
	"joinwork/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService(store *repository.MemoryStore) *ProfileService {
	return NewProfileService(store.Users(), store.Graduates(), store.Companies(), store.Counters())
}

func TestEnsureGraduate_CreatesThenReuses(t *testing.T) {
	t.Parallel()

	store := repository.NewMemoryStore()
	profiles := newProfileService(store)
	ctx := context.Background()

	first, err := profiles.EnsureGraduate(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, int64(7), first.UserID)
	assert.NotZero(t, first.ID)

	second, err := profiles.EnsureGraduate(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestEnsureGraduate_ConcurrentCallsOneProfile(t *testing.T) {
	t.Parallel()

	store := repository.NewMemoryStore()
	profiles := newProfileService(store)
	ctx := context.Background()

	const callers = 20
	results := make([]*models.Graduate, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = profiles.EnsureGraduate(ctx, 42)
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
		// Every caller sees the same surviving profile.
		assert.Equal(t, results[0].ID, results[i].ID)
	}
}

func TestEnsureCompany_DefaultsNameFromUser(t *testing.T) {
	t.Parallel()

	store := repository.NewMemoryStore()
	profiles := newProfileService(store)
	ctx := context.Background()

	require.NoError(t, store.Users().Create(ctx, &models.User{
		ID: 3, FullName: "Tigris Software", Email: "hr@tigris.example",
		PasswordHash: "x", Role: models.RoleCompany,
	}))

	company, err := profiles.EnsureCompany(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Tigris Software", company.CompanyName)
}

func TestEnsureCompany_PlaceholderNameWhenUserMissing(t *testing.T) {
	t.Parallel()

	store := repository.NewMemoryStore()
	profiles := newProfileService(store)

	company, err := profiles.EnsureCompany(context.Background(), 99)
	require.NoError(t, err)
	assert.Equal(t, "Company 99", company.CompanyName)
}
