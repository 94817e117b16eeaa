package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
)

const nicknameField = "nickname"

type ProfileRepository interface {
	GetNickname(ctx context.Context, profileID string) (string, error)
	SetNickname(ctx context.Context, profileID, nickname string) error
}

type dbProfile struct {
	client *redis.Client
}

func NewProfileRepository(client *redis.Client) ProfileRepository {
	return &dbProfile{
		client: client,
	}
}

func (that *dbProfile) SetNickname(ctx context.Context, profileID, nickname string) error {
	profileKey := "profile:" + profileID

	if err := that.client.HSet(ctx, profileKey, nicknameField, nickname).Err(); err != nil {
		return fmt.Errorf("failed to set nickname: %w", err)
	}

	return nil
}

func (that *dbProfile) GetNickname(ctx context.Context, profileID string) (string, error) {
	profileKey := "profile:" + profileID

	nickname, err := that.client.HGet(ctx, profileKey, nicknameField).Result()
	if errors.Is(err, redis.Nil) {
		return "", apperror.ErrNicknameNotFound
	}

	if err != nil {
		return "", fmt.Errorf("failed to get nickname: %w", err)
	}

	return nickname, nil
}

type memoryProfile struct {
	mu        sync.RWMutex
	nicknames map[string]string
}

// NewMemoryProfileRepository keeps nicknames for the lifetime of the process.
func NewMemoryProfileRepository() ProfileRepository {
	return &memoryProfile{
		nicknames: make(map[string]string),
	}
}

func (that *memoryProfile) SetNickname(_ context.Context, profileID, nickname string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.nicknames[profileID] = nickname

	return nil
}

func (that *memoryProfile) GetNickname(_ context.Context, profileID string) (string, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	nickname, ok := that.nicknames[profileID]
	if !ok {
		return "", apperror.ErrNicknameNotFound
	}

	return nickname, nil
}
