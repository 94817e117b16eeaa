package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/testing/suite"
)

func TestProfileRepository_SetNickname(t *testing.T) {
	ctx, st := suite.New(t)

	profileRepo := NewProfileRepository(st.Storage)

	// Given: a stored nickname
	require.NoError(t, profileRepo.SetNickname(ctx, "local", "Ann"))

	// When: it is replaced
	err := profileRepo.SetNickname(ctx, "local", "Bob")

	// Then: the latest one is returned
	require.NoError(t, err)

	nickname, err := profileRepo.GetNickname(ctx, "local")
	require.NoError(t, err)
	assert.Equal(t, "Bob", nickname)
}

func TestProfileRepository_GetNickname(t *testing.T) {
	t.Run("GetNickname_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		profileRepo := NewProfileRepository(st.Storage)

		// When: the profile was never named
		nickname, err := profileRepo.GetNickname(ctx, "nobody")

		// Then: ErrNicknameNotFound is returned
		require.ErrorIs(t, err, apperror.ErrNicknameNotFound)
		assert.Empty(t, nickname)
	})
}

func TestMemoryProfileRepository(t *testing.T) {
	ctx := context.Background()
	profileRepo := NewMemoryProfileRepository()

	_, err := profileRepo.GetNickname(ctx, "local")
	require.ErrorIs(t, err, apperror.ErrNicknameNotFound)

	require.NoError(t, profileRepo.SetNickname(ctx, "local", "Cleo"))

	nickname, err := profileRepo.GetNickname(ctx, "local")
	require.NoError(t, err)
	assert.Equal(t, "Cleo", nickname)
}
