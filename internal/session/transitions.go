package session

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

// transitions lists the views reachable from each view. Idle is reachable from anywhere.
var transitions = map[entity.ViewState][]entity.ViewState{
	entity.ViewIdle:             {entity.ViewLobby, entity.ViewNicknamePrompt, entity.ViewSearching},
	entity.ViewNicknamePrompt:   {entity.ViewLobby, entity.ViewSearching},
	entity.ViewLobby:            {entity.ViewNicknamePrompt, entity.ViewSearching, entity.ViewRoomPendingHost, entity.ViewRoomPendingGuest},
	entity.ViewSearching:        {entity.ViewPlaying, entity.ViewRoomPendingGuest, entity.ViewLobby},
	entity.ViewRoomPendingHost:  {entity.ViewPlaying, entity.ViewResult, entity.ViewLobby},
	entity.ViewRoomPendingGuest: {entity.ViewPlaying, entity.ViewResult, entity.ViewSearching, entity.ViewLobby},
	entity.ViewPlaying:          {entity.ViewResult, entity.ViewLobby},
	entity.ViewResult:           {entity.ViewSearching, entity.ViewNicknamePrompt, entity.ViewLobby},
}

// CanTransition reports whether the view may change from one state to another.
// Staying in the same state is always allowed.
func CanTransition(from, to entity.ViewState) bool {
	if from == to || to == entity.ViewIdle {
		return true
	}

	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

func checkTransition(from, to entity.ViewState) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", apperror.ErrInvalidTransition, from, to)
	}

	return nil
}
