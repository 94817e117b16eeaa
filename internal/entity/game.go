package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
)

const BoardSize = 9

// Symbol is the mark a participant places on the board. The zero value is an empty cell.
type Symbol uint8

const (
	EmptyCell Symbol = iota
	PlayerX
	PlayerO
)

func (that Symbol) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return ""
	}
}

func (that Symbol) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent returns the other player's symbol.
func (that Symbol) Opponent() Symbol {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

// Winner is the verdict of a finished game.
type Winner uint8

const (
	WinnerNone Winner = iota
	WinnerX
	WinnerO
	WinnerDraw
)

// WinnerOf returns the verdict that credits the given symbol.
func WinnerOf(symbol Symbol) Winner {
	switch symbol {
	case PlayerX:
		return WinnerX
	case PlayerO:
		return WinnerO
	default:
		return WinnerNone
	}
}

// Symbol returns the winning symbol, or EmptyCell for a draw or an undecided game.
func (that Winner) Symbol() Symbol {
	switch that {
	case WinnerX:
		return PlayerX
	case WinnerO:
		return PlayerO
	default:
		return EmptyCell
	}
}

func (that Winner) String() string {
	switch that {
	case WinnerX:
		return "X"
	case WinnerO:
		return "O"
	case WinnerDraw:
		return "draw"
	default:
		return "none"
	}
}

// GameState is the authoritative board as reported by the server.
type GameState struct {
	Board    [BoardSize]Symbol
	Turn     Symbol
	Finished bool
	Winner   Winner
}

func NewGameState() GameState {
	return GameState{Turn: PlayerX}
}

func (that GameState) IsFinished() bool {
	return that.Finished
}

// Validate checks the invariants every snapshot must hold on its own.
func (that GameState) Validate() error {
	for i, cell := range that.Board {
		if cell != EmptyCell && !cell.IsPlayer() {
			return fmt.Errorf("%w: cell %d holds %d", apperror.ErrMalformedFrame, i, cell)
		}
	}

	if !that.Turn.IsPlayer() && !that.Finished {
		return fmt.Errorf("%w: turn %d", apperror.ErrMalformedFrame, that.Turn)
	}

	if !that.Finished && that.Winner != WinnerNone {
		return fmt.Errorf("%w: winner %s on unfinished game", apperror.ErrMalformedFrame, that.Winner)
	}

	return nil
}

// CanAdvanceTo reports whether next may replace the current state during play:
// at most one cell changes, and only from empty to a symbol.
func (that GameState) CanAdvanceTo(next GameState) error {
	changed := 0
	for i := range that.Board {
		if that.Board[i] == next.Board[i] {
			continue
		}

		if that.Board[i] != EmptyCell {
			return fmt.Errorf("%w: cell %d overwritten", apperror.ErrStaleSnapshot, i)
		}

		changed++
	}

	if changed > 1 {
		return fmt.Errorf("%w: %d cells changed", apperror.ErrStaleSnapshot, changed)
	}

	return nil
}
