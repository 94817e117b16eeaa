package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

const (
	leaderboardKey      = "leaderboard"
	leaderboardNamesKey = "leaderboard:names"
	lastMatchField      = "last-match"
)

type HistoryRepository interface {
	Record(ctx context.Context, profileID string, result entity.MatchResult) error
	GetStats(ctx context.Context, profileID string) (entity.Stats, error)
	GetLeaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

type dbHistory struct {
	client *redis.Client
}

func NewHistoryRepository(client *redis.Client) HistoryRepository {
	return &dbHistory{
		client: client,
	}
}

// Record bumps the profile's counter for the outcome and its leaderboard score in one transaction.
// Scores are keyed by profile id; the nickname only labels the row.
func (that *dbHistory) Record(ctx context.Context, profileID string, result entity.MatchResult) error {
	historyKey := "history:" + profileID

	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, historyKey, string(result.Outcome), 1)
		if result.MatchID != "" {
			pipe.HSet(ctx, historyKey, lastMatchField, result.MatchID)
		}
		pipe.ZIncrBy(ctx, leaderboardKey, float64(entity.OutcomePoints(result.Outcome)), profileID)
		pipe.HSet(ctx, leaderboardNamesKey, profileID, entity.NormalizeNickname(result.Nickname))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record match result: %w", err)
	}

	return nil
}

func (that *dbHistory) GetStats(ctx context.Context, profileID string) (entity.Stats, error) {
	historyKey := "history:" + profileID

	fields, err := that.client.HGetAll(ctx, historyKey).Result()
	if err != nil {
		return entity.Stats{}, fmt.Errorf("failed to get history: %w", err)
	}

	var stats entity.Stats
	for _, counter := range []struct {
		field string
		value *int
	}{
		{string(entity.OutcomeWin), &stats.Wins},
		{string(entity.OutcomeLoss), &stats.Losses},
		{string(entity.OutcomeDraw), &stats.Draws},
	} {
		raw, ok := fields[counter.field]
		if !ok {
			continue
		}

		if *counter.value, err = strconv.Atoi(raw); err != nil {
			return entity.Stats{}, fmt.Errorf("failed to parse %s counter: %w", counter.field, err)
		}
	}

	return stats, nil
}

func (that *dbHistory) GetLeaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := that.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	profileIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		profileID, _ := row.Member.(string)
		profileIDs = append(profileIDs, profileID)
	}

	names, err := that.client.HMGet(ctx, leaderboardNamesKey, profileIDs...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard names: %w", err)
	}

	entries := make([]entity.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		nickname, _ := names[i].(string)
		entries = append(entries, entity.LeaderboardEntry{
			ProfileID: profileIDs[i],
			Nickname:  entity.NormalizeNickname(nickname),
			Score:     int(row.Score),
		})
	}

	return entries, nil
}

type memoryHistory struct {
	mu     sync.RWMutex
	stats  map[string]entity.Stats
	scores map[string]int
	names  map[string]string
}

func NewMemoryHistoryRepository() HistoryRepository {
	return &memoryHistory{
		stats:  make(map[string]entity.Stats),
		scores: make(map[string]int),
		names:  make(map[string]string),
	}
}

func (that *memoryHistory) Record(_ context.Context, profileID string, result entity.MatchResult) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	stats := that.stats[profileID]
	stats.Add(result.Outcome)
	that.stats[profileID] = stats
	that.scores[profileID] += entity.OutcomePoints(result.Outcome)
	that.names[profileID] = entity.NormalizeNickname(result.Nickname)

	return nil
}

func (that *memoryHistory) GetStats(_ context.Context, profileID string) (entity.Stats, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.stats[profileID], nil
}

func (that *memoryHistory) GetLeaderboard(_ context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	entries := make([]entity.LeaderboardEntry, 0, len(that.scores))
	for profileID, score := range that.scores {
		entries = append(entries, entity.LeaderboardEntry{ProfileID: profileID, Nickname: that.names[profileID], Score: score})
	}

	// Same order as ZREVRANGE: score, then member descending.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].ProfileID > entries[j].ProfileID
	})

	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}
