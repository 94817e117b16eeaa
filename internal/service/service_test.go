package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/repository"
	mockedService "github.com/rocketscienceinc/tictactoe-client/mocks/service"
)

var errRedisDown = errors.New("redis down")

func TestProfileService(t *testing.T) {
	t.Run("Missing nickname is reported as not found", func(t *testing.T) {
		profileService := NewProfileService("local", repository.NewMemoryProfileRepository())

		_, err := profileService.Nickname(context.Background())

		require.ErrorIs(t, err, apperror.ErrNicknameNotFound)
	})

	t.Run("Saved nickname is trimmed and defaulted", func(t *testing.T) {
		ctx := context.Background()
		profileService := NewProfileService("local", repository.NewMemoryProfileRepository())

		// When: a blank name and then a padded name are saved
		blank, err := profileService.SaveNickname(ctx, "  ")
		require.NoError(t, err)

		padded, err := profileService.SaveNickname(ctx, "  Ann ")
		require.NoError(t, err)

		// Then: they are normalized and the last one is kept
		assert.Equal(t, entity.DefaultNickname, blank)
		assert.Equal(t, "Ann", padded)

		nickname, err := profileService.Nickname(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Ann", nickname)
	})
}

func TestStatsService(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	statsService := NewStatsService(logger, "local", repository.NewMemoryHistoryRepository())

	// Given: three recorded matches
	for _, outcome := range []entity.Outcome{entity.OutcomeWin, entity.OutcomeWin, entity.OutcomeLoss} {
		require.NoError(t, statsService.RecordResult(ctx, entity.MatchResult{Nickname: "Ann", Opponent: "Bob", Outcome: outcome}))
	}

	// When: stats and the leaderboard are read
	stats, err := statsService.Stats(ctx)
	require.NoError(t, err)

	board, err := statsService.Leaderboard(ctx, 0)
	require.NoError(t, err)

	// Then: they reflect every match
	assert.Equal(t, entity.Stats{Wins: 2, Losses: 1}, stats)
	assert.Equal(t, []entity.LeaderboardEntry{{ProfileID: "local", Nickname: "Ann", Score: 6}}, board)
}

func TestProfileService_RepositoryErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("Save returns the normalized nickname even when storage fails", func(t *testing.T) {
		// Given: a repository that rejects writes
		mockProfileRepo := mockedService.NewMockprofileRepoDep(t)
		profileService := NewProfileService("local", mockProfileRepo)

		mockProfileRepo.EXPECT().
			SetNickname(mock.Anything, "local", "Ann").
			Return(errRedisDown).
			Once()

		// When: a padded nickname is saved
		nickname, err := profileService.SaveNickname(ctx, " Ann ")

		// Then: the error is wrapped and the caller can still use the name
		require.ErrorIs(t, err, errRedisDown)
		assert.Equal(t, "Ann", nickname)
	})

	t.Run("Load wraps the repository error", func(t *testing.T) {
		mockProfileRepo := mockedService.NewMockprofileRepoDep(t)
		profileService := NewProfileService("local", mockProfileRepo)

		mockProfileRepo.EXPECT().
			GetNickname(mock.Anything, "local").
			Return("", errRedisDown).
			Once()

		_, err := profileService.Nickname(ctx)

		require.ErrorIs(t, err, errRedisDown)
	})
}

func TestStatsService_Repository(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Results are recorded under the local profile", func(t *testing.T) {
		// Given: a repository expecting one record for the local profile
		mockHistoryRepo := mockedService.NewMockhistoryRepoDep(t)
		statsService := NewStatsService(logger, "local", mockHistoryRepo)

		result := entity.MatchResult{MatchID: "match_1", Nickname: "Ann", Opponent: "Bob", Outcome: entity.OutcomeDraw}
		mockHistoryRepo.EXPECT().
			Record(mock.Anything, "local", result).
			Return(nil).
			Once()

		// When: the result is recorded
		err := statsService.RecordResult(ctx, result)

		// Then: it reaches the repository unchanged
		require.NoError(t, err)
	})

	t.Run("Record failure is wrapped", func(t *testing.T) {
		mockHistoryRepo := mockedService.NewMockhistoryRepoDep(t)
		statsService := NewStatsService(logger, "local", mockHistoryRepo)

		mockHistoryRepo.EXPECT().
			Record(mock.Anything, "local", mock.AnythingOfType("entity.MatchResult")).
			Return(errRedisDown).
			Once()

		err := statsService.RecordResult(ctx, entity.MatchResult{Outcome: entity.OutcomeLoss})

		require.ErrorIs(t, err, errRedisDown)
	})

	t.Run("Leaderboard limit falls back to the default size", func(t *testing.T) {
		// Given: a repository expecting the default limit
		mockHistoryRepo := mockedService.NewMockhistoryRepoDep(t)
		statsService := NewStatsService(logger, "local", mockHistoryRepo)

		mockHistoryRepo.EXPECT().
			GetLeaderboard(mock.Anything, DefaultLeaderboardSize).
			Return([]entity.LeaderboardEntry{{Nickname: "Ann", Score: 3}}, nil).
			Once()

		// When: a non-positive limit is requested
		board, err := statsService.Leaderboard(ctx, -1)

		// Then: the default is used
		require.NoError(t, err)
		assert.Equal(t, []entity.LeaderboardEntry{{Nickname: "Ann", Score: 3}}, board)
	})

	t.Run("Stats failure is wrapped", func(t *testing.T) {
		mockHistoryRepo := mockedService.NewMockhistoryRepoDep(t)
		statsService := NewStatsService(logger, "local", mockHistoryRepo)

		mockHistoryRepo.EXPECT().
			GetStats(mock.Anything, "local").
			Return(entity.Stats{}, errRedisDown).
			Once()

		_, err := statsService.Stats(ctx)

		require.ErrorIs(t, err, errRedisDown)
	})
}
