package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

const DefaultLeaderboardSize = 10

type StatsService interface {
	RecordResult(ctx context.Context, result entity.MatchResult) error
	Stats(ctx context.Context) (entity.Stats, error)
	Leaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

type historyRepoDep interface {
	Record(ctx context.Context, profileID string, result entity.MatchResult) error
	GetStats(ctx context.Context, profileID string) (entity.Stats, error)
	GetLeaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

type statsService struct {
	logger      *slog.Logger
	profileID   string
	historyRepo historyRepoDep
}

func NewStatsService(logger *slog.Logger, profileID string, historyRepo historyRepoDep) StatsService {
	return &statsService{
		logger:      logger.With("component", "stats"),
		profileID:   profileID,
		historyRepo: historyRepo,
	}
}

func (that *statsService) RecordResult(ctx context.Context, result entity.MatchResult) error {
	if err := that.historyRepo.Record(ctx, that.profileID, result); err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	that.logger.Info("match recorded", "match", result.MatchID, "opponent", result.Opponent, "outcome", result.Outcome)

	return nil
}

func (that *statsService) Stats(ctx context.Context) (entity.Stats, error) {
	stats, err := that.historyRepo.GetStats(ctx, that.profileID)
	if err != nil {
		return entity.Stats{}, fmt.Errorf("failed to load stats: %w", err)
	}

	return stats, nil
}

func (that *statsService) Leaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}

	entries, err := that.historyRepo.GetLeaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	return entries, nil
}
