package entity

const DefaultNickname = "Guest"

// Mode is the pairing flow a connection attempt was opened for.
type Mode string

const (
	ModeQuick  Mode = "quick"
	ModeCreate Mode = "create"
	ModeJoin   Mode = "join"
)

func (that Mode) IsValid() bool {
	return that == ModeQuick || that == ModeCreate || that == ModeJoin
}

// Session holds the local participant's identity within the current match.
type Session struct {
	Nickname string
	Symbol   Symbol
	MatchID  string
}

// ClearMatch drops everything bound to the current match but keeps the nickname.
func (that *Session) ClearMatch() {
	that.Symbol = EmptyCell
	that.MatchID = ""
}

func (that Session) InMatch() bool {
	return that.Symbol.IsPlayer()
}

// Outcome is the local participant's result of a finished match.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeDraw Outcome = "draw"
)

// MatchResult is what gets recorded once a match reaches its verdict.
type MatchResult struct {
	MatchID  string
	Nickname string
	Opponent string
	Outcome  Outcome
}

// OutcomeFor interprets a verdict from the point of view of symbol.
func OutcomeFor(winner Winner, symbol Symbol) Outcome {
	switch {
	case winner == WinnerDraw || winner == WinnerNone:
		return OutcomeDraw
	case winner.Symbol() == symbol:
		return OutcomeWin
	default:
		return OutcomeLoss
	}
}
