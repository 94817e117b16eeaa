package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

type ProfileService interface {
	Nickname(ctx context.Context) (string, error)
	SaveNickname(ctx context.Context, nickname string) (string, error)
}

type profileRepoDep interface {
	GetNickname(ctx context.Context, profileID string) (string, error)
	SetNickname(ctx context.Context, profileID, nickname string) error
}

type profileService struct {
	profileID   string
	profileRepo profileRepoDep
}

// NewProfileService serves the nickname of the local profile identified by profileID.
func NewProfileService(profileID string, profileRepo profileRepoDep) ProfileService {
	return &profileService{
		profileID:   profileID,
		profileRepo: profileRepo,
	}
}

func (that *profileService) Nickname(ctx context.Context) (string, error) {
	nickname, err := that.profileRepo.GetNickname(ctx, that.profileID)
	if err != nil {
		return "", fmt.Errorf("failed to load nickname: %w", err)
	}

	return nickname, nil
}

// SaveNickname normalizes and stores nickname, returning what was stored.
func (that *profileService) SaveNickname(ctx context.Context, nickname string) (string, error) {
	nickname = entity.NormalizeNickname(nickname)

	if err := that.profileRepo.SetNickname(ctx, that.profileID, nickname); err != nil {
		return nickname, fmt.Errorf("failed to save nickname: %w", err)
	}

	return nickname, nil
}
