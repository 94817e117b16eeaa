package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/session"
)

// lowTime is when the countdown starts being printed on every tick.
const lowTime = 5

// Render turns a snapshot into the text shown for it.
func Render(snapshot session.Snapshot) string {
	var b strings.Builder

	if snapshot.Error != "" {
		fmt.Fprintf(&b, "! %s\n", snapshot.Error)
	}

	switch snapshot.View {
	case entity.ViewIdle:
		b.WriteString("Bye.\n")
	case entity.ViewLobby:
		fmt.Fprintf(&b, "Lobby (%s). quick | create | join CODE | name [NAME] | stats | top\n", nickname(snapshot))
	case entity.ViewNicknamePrompt:
		b.WriteString("Enter your nickname: name NAME (or cancel)\n")
	case entity.ViewSearching:
		b.WriteString("Searching for an opponent... (cancel)\n")
	case entity.ViewRoomPendingHost:
		if snapshot.RoomCode == "" {
			b.WriteString("Creating room... (cancel)\n")
			break
		}

		fmt.Fprintf(&b, "Room code: %s\n", snapshot.RoomCode)
		if snapshot.ShareLink != "" {
			fmt.Fprintf(&b, "Share: %s\n", snapshot.ShareLink)
		}
		renderPending(&b, snapshot, "Waiting for a guest... (cancel)")
	case entity.ViewRoomPendingGuest:
		fmt.Fprintf(&b, "Room code: %s\n", snapshot.RoomCode)
		renderPending(&b, snapshot, "Joining room... (cancel)")
	case entity.ViewPlaying:
		b.WriteString(Board(snapshot.Game))
		fmt.Fprintf(&b, "You are %s vs %s. ", snapshot.Session.Symbol, snapshot.Opponent)
		if snapshot.MyTurn() {
			fmt.Fprintf(&b, "Your turn (%ds): move 1-9\n", snapshot.Remaining)
		} else {
			fmt.Fprintf(&b, "%s's turn (%ds)\n", snapshot.Opponent, snapshot.Remaining)
		}
	case entity.ViewResult:
		b.WriteString(Board(snapshot.Game))
		b.WriteString(resultLine(snapshot))
		b.WriteString("again | leave\n")
	}

	return b.String()
}

// Board draws the grid; empty cells show the number that moves there.
func Board(game entity.GameState) string {
	var b strings.Builder

	for row := 0; row < 3; row++ {
		if row > 0 {
			b.WriteString("---+---+---\n")
		}

		for col := 0; col < 3; col++ {
			i := row*3 + col
			if col > 0 {
				b.WriteString("|")
			}

			cell := game.Board[i].String()
			if cell == "" {
				cell = strconv.Itoa(i + 1)
			}
			fmt.Fprintf(&b, " %s ", cell)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func renderPending(b *strings.Builder, snapshot session.Snapshot, waiting string) {
	if snapshot.CanContinue {
		fmt.Fprintf(b, "%s is here. continue | cancel\n", snapshot.Opponent)
		return
	}

	b.WriteString(waiting + "\n")
}

func resultLine(snapshot session.Snapshot) string {
	outcome, _ := snapshot.Outcome()

	switch outcome {
	case entity.OutcomeWin:
		return "You win!\n"
	case entity.OutcomeLoss:
		return snapshot.Opponent + " wins.\n"
	default:
		return "Draw.\n"
	}
}

func nickname(snapshot session.Snapshot) string {
	if snapshot.Session.Nickname == "" {
		return "no nickname"
	}
	return snapshot.Session.Nickname
}
