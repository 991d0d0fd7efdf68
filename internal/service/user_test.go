package service

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo keeps user records in a map.
type fakeUserRepo struct {
	users map[string]entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]entity.User)}
}

func (that *fakeUserRepo) Save(_ context.Context, user *entity.User) error {
	that.users[user.ID] = *user
	return nil
}

func (that *fakeUserRepo) Find(_ context.Context, id string) (*entity.User, error) {
	user, ok := that.users[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return &user, nil
}

func TestUserService(t *testing.T) {
	ctx := context.Background()

	t.Run("Register assigns an id and persists the name", func(t *testing.T) {
		// Given: a user service over an empty store
		svc := NewUserService(newFakeUserRepo())

		// When: a display name registers
		user, err := svc.Register(ctx, "alice")

		// Then: the record carries a generated id and the name
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "alice", user.Name)

		found, err := svc.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user, found)
	})

	t.Run("Error on a missing user", func(t *testing.T) {
		// Given: a user service over an empty store
		svc := NewUserService(newFakeUserRepo())

		// When: reading an unknown id
		_, err := svc.GetUserByID(ctx, "no-such-user")

		// Then: an ErrNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrNotFound)
	})
}
