package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/othello-backend/internal/apperror"
	"github.com/rocketscienceinc/othello-backend/internal/entity"
	"github.com/rocketscienceinc/othello-backend/testing/suite"
)

func TestUserRepository_Create(t *testing.T) {
	t.Run("Create_Success", func(t *testing.T) {
		ctx, st := suite.NewSQLite(t)

		userRepo := NewUserRepository(st.Connection)

		// Given: a new user
		user := &entity.User{Username: "alice", PasswordHash: "hash"}

		// When: Create is called
		err := userRepo.Create(ctx, user)

		// Then: the generated id is filled in
		require.NoError(t, err)
		assert.Positive(t, user.ID)
	})

	t.Run("Create_DuplicateUsername", func(t *testing.T) {
		ctx, st := suite.NewSQLite(t)

		userRepo := NewUserRepository(st.Connection)

		// Given: an existing user
		require.NoError(t, userRepo.Create(ctx, &entity.User{Username: "alice", PasswordHash: "hash"}))

		// When: Create is called again with the same username
		err := userRepo.Create(ctx, &entity.User{Username: "alice", PasswordHash: "other"})

		// Then: ErrUsernameTaken should be returned
		require.ErrorIs(t, err, apperror.ErrUsernameTaken)
	})
}

func TestUserRepository_Find(t *testing.T) {
	ctx, st := suite.NewSQLite(t)

	userRepo := NewUserRepository(st.Connection)

	user := &entity.User{Username: "bob", PasswordHash: "hash"}
	require.NoError(t, userRepo.Create(ctx, user))

	t.Run("FindByUsername_Success", func(t *testing.T) {
		found, err := userRepo.FindByUsername(ctx, "bob")

		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, "hash", found.PasswordHash)
	})

	t.Run("FindByID_Success", func(t *testing.T) {
		found, err := userRepo.FindByID(ctx, user.ID)

		require.NoError(t, err)
		assert.Equal(t, "bob", found.Username)
	})

	t.Run("Find_NotFound", func(t *testing.T) {
		_, err := userRepo.FindByUsername(ctx, "nobody")
		require.ErrorIs(t, err, apperror.ErrUserNotFound)

		_, err = userRepo.FindByID(ctx, 9999)
		require.ErrorIs(t, err, apperror.ErrUserNotFound)
	})
}

func TestUserRepository_Counters(t *testing.T) {
	ctx, st := suite.NewSQLite(t)

	userRepo := NewUserRepository(st.Connection)

	user := &entity.User{Username: "carol", PasswordHash: "hash"}
	require.NoError(t, userRepo.Create(ctx, user))

	// When: recording two wins, a loss and a tie
	require.NoError(t, userRepo.AddWin(ctx, user.ID))
	require.NoError(t, userRepo.AddWin(ctx, user.ID))
	require.NoError(t, userRepo.AddLoss(ctx, user.ID))
	require.NoError(t, userRepo.AddTie(ctx, user.ID))

	// Then: the counters accumulate independently
	found, err := userRepo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.Wins)
	assert.Equal(t, 1, found.Losses)
	assert.Equal(t, 1, found.Ties)
}

func TestUserRepository_TopByWins(t *testing.T) {
	ctx, st := suite.NewSQLite(t)

	userRepo := NewUserRepository(st.Connection)

	// Given: three users with different win counts
	wins := map[string]int{"first": 3, "second": 2, "third": 1}
	for _, username := range []string{"third", "first", "second"} {
		user := &entity.User{Username: username, PasswordHash: "hash"}
		require.NoError(t, userRepo.Create(ctx, user))
		for i := 0; i < wins[username]; i++ {
			require.NoError(t, userRepo.AddWin(ctx, user.ID))
		}
	}

	// When: asking for the top two
	top, err := userRepo.TopByWins(ctx, 2)

	// Then: ordered by wins descending, truncated to the limit
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "first", top[0].Username)
	assert.Equal(t, "second", top[1].Username)
}
