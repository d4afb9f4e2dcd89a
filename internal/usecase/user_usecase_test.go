package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telemart/internal/adapter/repository/memory"
	"telemart/internal/domain/entity"
)

func TestEnsureUserCreatesOnce(t *testing.T) {
	repo := memory.NewUserRepository(memory.NewStore())
	uc := NewUserUseCase(repo)
	ctx := context.Background()

	user, err := uc.EnsureUser(ctx, "uid-1", "a@example.com", "Anika")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, user.Role)

	again, err := uc.EnsureUser(ctx, "uid-1", "changed@example.com", "Other")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", again.Email, "existing users are not overwritten by token claims")

	updated, err := uc.UpdateProfile(ctx, "uid-1", UpdateProfileInput{Name: "Anika R", Phone: "019"})
	require.NoError(t, err)
	assert.Equal(t, "Anika R", updated.Name)
}

func TestIsAdmin(t *testing.T) {
	repo := memory.NewUserRepository(memory.NewStore())
	uc := NewUserUseCase(repo)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &entity.User{ID: "boss", Role: entity.RoleAdmin}))
	require.NoError(t, repo.Create(ctx, &entity.User{ID: "shopper", Role: entity.RoleCustomer}))

	for uid, want := range map[string]bool{"boss": true, "shopper": false, "stranger": false} {
		got, err := uc.IsAdmin(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, want, got, uid)
	}
}
