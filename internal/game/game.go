// Package game holds the tic-tac-toe rules. The client never applies them to its own
// state; they back the in-process peer server used by tests.
package game

import (
	"errors"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

var (
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrGameFinished = errors.New("game is already finished")
	ErrInvalidCell  = errors.New("invalid cell index")

	WinCombos = [][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// MakeMove places symbol on cell and settles the verdict or passes the turn.
func MakeMove(state *entity.GameState, symbol entity.Symbol, cell int) error {
	if state.Finished {
		return ErrGameFinished
	}

	if cell < 0 || cell >= entity.BoardSize {
		return ErrInvalidCell
	}

	if state.Board[cell] != entity.EmptyCell {
		return ErrCellOccupied
	}

	if state.Turn != symbol {
		return ErrNotYourTurn
	}

	state.Board[cell] = symbol

	switch winner := checkGameStatus(state.Board); winner {
	case entity.WinnerX, entity.WinnerO, entity.WinnerDraw:
		state.Finished = true
		state.Winner = winner
	default:
		state.Turn = symbol.Opponent()
	}

	return nil
}

// PassTurn hands the turn to the opponent when symbol's time runs out.
func PassTurn(state *entity.GameState, symbol entity.Symbol) error {
	if state.Finished {
		return ErrGameFinished
	}

	if state.Turn != symbol {
		return ErrNotYourTurn
	}

	state.Turn = symbol.Opponent()

	return nil
}

// Forfeit ends the game against symbol.
func Forfeit(state *entity.GameState, symbol entity.Symbol) {
	if state.Finished {
		return
	}

	state.Finished = true
	state.Winner = entity.WinnerOf(symbol.Opponent())
}

func checkGameStatus(board [entity.BoardSize]entity.Symbol) entity.Winner {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return entity.WinnerOf(a)
		}
	}

	for _, cell := range board {
		if cell == entity.EmptyCell {
			return entity.WinnerNone
		}
	}

	return entity.WinnerDraw
}
