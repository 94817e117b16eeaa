// Package console is a line-based frontend: it turns typed commands into session
// operations and prints every changed snapshot.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/session"
)

var (
	ErrQuit           = errors.New("quit")
	ErrUnknownCommand = errors.New("unknown command")
)

type sessionClient interface {
	RequestPairing(ctx context.Context, mode entity.Mode, roomCode string) bool
	RequestQuickMatch(ctx context.Context) bool
	RequestNickname() bool
	ConfirmNickname(ctx context.Context, nickname string) bool
	SubmitMove(index int) bool
	Continue() bool
	Cancel() bool
	Leave() bool
	PlayAgain(ctx context.Context) bool
	Snapshot(ctx context.Context) (session.Snapshot, error)
}

type statsReader interface {
	Stats(ctx context.Context) (entity.Stats, error)
	Leaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

type Console struct {
	logger *slog.Logger
	client sessionClient
	stats  statsReader

	mu       sync.Mutex
	out      io.Writer
	rendered session.Snapshot
	seen     bool
}

func New(logger *slog.Logger, client sessionClient, stats statsReader, out io.Writer) *Console {
	return &Console{
		logger: logger.With("component", "console"),
		client: client,
		stats:  stats,
		out:    out,
	}
}

// Show prints snapshot unless only the countdown moved and there is plenty of time left.
func (that *Console) Show(snapshot session.Snapshot) {
	that.mu.Lock()
	defer that.mu.Unlock()

	previous := that.rendered
	that.rendered = snapshot

	if that.seen {
		previous.Remaining = snapshot.Remaining
		if previous == snapshot && (!snapshot.MyTurn() || snapshot.Remaining > lowTime) {
			return
		}
	}
	that.seen = true

	fmt.Fprint(that.out, Render(snapshot))
}

// Run reads commands from in until it is exhausted, ctx is done or the user quits.
func (that *Console) Run(ctx context.Context, in io.Reader) error {
	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-readCtx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("failed to read input: %w", err)
					}
				default:
				}
				return nil
			}

			err := that.Execute(ctx, line)
			switch {
			case errors.Is(err, ErrQuit):
				return nil
			case err != nil:
				that.printf("%v\n", err)
			}
		}
	}
}

// Execute runs one command line.
func (that *Console) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	name := strings.ToLower(fields[0])
	arg := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	that.logger.Debug("command", "name", name)

	if index, err := strconv.Atoi(name); err == nil {
		that.client.SubmitMove(index - 1)
		return nil
	}

	switch name {
	case "quick", "q":
		that.client.RequestQuickMatch(ctx)
	case "create":
		that.client.RequestPairing(ctx, entity.ModeCreate, "")
	case "join":
		that.client.RequestPairing(ctx, entity.ModeJoin, arg)
	case "name":
		return that.name(ctx, arg)
	case "move", "m":
		index, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("move needs a cell number 1-9: %w", err)
		}
		that.client.SubmitMove(index - 1)
	case "continue", "c":
		that.client.Continue()
	case "cancel":
		that.client.Cancel()
	case "leave":
		that.client.Leave()
	case "again":
		that.client.PlayAgain(ctx)
	case "stats":
		return that.printStats(ctx)
	case "top":
		return that.printLeaderboard(ctx)
	case "help", "?":
		that.printf("quick | create | join CODE | name NAME | 1-9 | continue | cancel | leave | again | stats | top | quit\n")
	case "quit", "exit":
		return ErrQuit
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	return nil
}

func (that *Console) name(ctx context.Context, nickname string) error {
	snapshot, err := that.client.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}

	if snapshot.View == entity.ViewLobby {
		that.client.RequestNickname()
		if nickname == "" {
			return nil
		}
	}

	that.client.ConfirmNickname(ctx, nickname)

	return nil
}

func (that *Console) printStats(ctx context.Context) error {
	if that.stats == nil {
		return nil
	}

	stats, err := that.stats.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}

	that.printf("Played %d: %d won, %d lost, %d drawn (score %d)\n",
		stats.Played(), stats.Wins, stats.Losses, stats.Draws, stats.Score())

	return nil
}

func (that *Console) printLeaderboard(ctx context.Context) error {
	if that.stats == nil {
		return nil
	}

	entries, err := that.stats.Leaderboard(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to load leaderboard: %w", err)
	}

	if len(entries) == 0 {
		that.printf("No games recorded yet.\n")
		return nil
	}

	for i, entry := range entries {
		that.printf("%2d. %-16s %d\n", i+1, entry.Nickname, entry.Score)
	}

	return nil
}

func (that *Console) printf(format string, args ...any) {
	that.mu.Lock()
	defer that.mu.Unlock()

	fmt.Fprintf(that.out, format, args...)
}
