package session

import (
	"net/url"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

// Snapshot is a consistent copy of everything the presentation layer renders.
type Snapshot struct {
	View        entity.ViewState
	Game        entity.GameState
	Session     entity.Session
	Remaining   int
	Mode        entity.Mode
	RoomCode    string
	ShareLink   string
	CanContinue bool
	Opponent    string
	Error       string
}

// Outcome is the local result once the game is finished.
func (that Snapshot) Outcome() (entity.Outcome, bool) {
	if !that.Game.IsFinished() {
		return "", false
	}

	return entity.OutcomeFor(that.Game.Winner, that.Session.Symbol), true
}

// MyTurn reports whether the server expects a move from the local participant.
func (that Snapshot) MyTurn() bool {
	return that.View == entity.ViewPlaying && !that.Game.IsFinished() &&
		that.Session.Symbol.IsPlayer() && that.Game.Turn == that.Session.Symbol
}

func (that *Machine) Snapshot() Snapshot {
	snapshot := Snapshot{
		View:        that.view,
		Game:        that.game,
		Session:     that.session,
		Remaining:   that.turn.Remaining(),
		Mode:        that.mode,
		RoomCode:    that.roomCode,
		CanContinue: that.view.IsRoomPending() && that.matchReady,
		Opponent:    that.opponent,
		Error:       that.lastError,
	}

	if that.mode == entity.ModeCreate && that.roomCode != "" && that.shareBase != "" {
		snapshot.ShareLink = that.shareBase + "/?room=" + url.QueryEscape(that.roomCode)
	}

	return snapshot
}
