package entity

import "strings"

// Stats are the accumulated results of one profile.
type Stats struct {
	Wins   int
	Losses int
	Draws  int
}

func (that Stats) Played() int {
	return that.Wins + that.Losses + that.Draws
}

// Score weights a win as three points and a draw as one.
func (that Stats) Score() int {
	return that.Wins*3 + that.Draws
}

func (that *Stats) Add(outcome Outcome) {
	switch outcome {
	case OutcomeWin:
		that.Wins++
	case OutcomeLoss:
		that.Losses++
	case OutcomeDraw:
		that.Draws++
	}
}

// OutcomePoints is the leaderboard score an outcome adds.
func OutcomePoints(outcome Outcome) int {
	switch outcome {
	case OutcomeWin:
		return 3
	case OutcomeDraw:
		return 1
	default:
		return 0
	}
}

// LeaderboardEntry is one profile's standing, shown under the nickname it last played with.
type LeaderboardEntry struct {
	ProfileID string
	Nickname  string
	Score     int
}

// NormalizeNickname trims input and falls back to the default name.
func NormalizeNickname(nickname string) string {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return DefaultNickname
	}

	return nickname
}
