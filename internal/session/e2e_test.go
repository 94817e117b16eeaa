package session_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/repository"
	"github.com/rocketscienceinc/tictactoe-client/internal/service"
	"github.com/rocketscienceinc/tictactoe-client/internal/session"
	"github.com/rocketscienceinc/tictactoe-client/internal/transport/websocket"
	"github.com/rocketscienceinc/tictactoe-client/testing/peer"
)

const (
	eventually = 3 * time.Second
	poll       = 10 * time.Millisecond
)

type player struct {
	client *session.Client
	stats  service.StatsService
}

func startPlayer(ctx context.Context, t *testing.T, server *peer.Server, nickname string) *player {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	profileRepo := repository.NewMemoryProfileRepository()
	require.NoError(t, profileRepo.SetNickname(ctx, "local", nickname))

	p := &player{
		stats: service.NewStatsService(logger, "local", repository.NewMemoryHistoryRepository()),
	}
	p.client = session.NewClient(logger, session.Options{
		Dialer:      websocket.NewDialer(time.Second),
		Endpoint:    server.Endpoint(),
		DialTimeout: time.Second,
		TurnSeconds: 30,
		Profile:     service.NewProfileService("local", profileRepo),
		Stats:       p.stats,
	})

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = p.client.Run(runCtx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	require.True(t, p.client.Start(ctx))

	return p
}

func (that *player) waitFor(t *testing.T, what string, cond func(session.Snapshot) bool) session.Snapshot {
	t.Helper()

	var last session.Snapshot
	require.Eventually(t, func() bool {
		snapshot, err := that.client.Snapshot(context.Background())
		if err != nil {
			return false
		}
		last = snapshot
		return cond(snapshot)
	}, eventually, poll, what)

	return last
}

func inView(view entity.ViewState) func(session.Snapshot) bool {
	return func(snapshot session.Snapshot) bool { return snapshot.View == view }
}

func TestEndToEnd_PrivateRoom(t *testing.T) {
	ctx := context.Background()
	server := peer.Start(slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(server.Close)

	ann := startPlayer(ctx, t, server, "Ann")
	bob := startPlayer(ctx, t, server, "Bob")

	// Given: Ann hosts a room
	ann.client.RequestPairing(ctx, entity.ModeCreate, "")
	hosted := ann.waitFor(t, "room code", func(s session.Snapshot) bool { return s.RoomCode != "" })
	require.Equal(t, entity.ViewRoomPendingHost, hosted.View)

	// When: Bob joins with the code and both continue
	bob.client.RequestPairing(ctx, entity.ModeJoin, hosted.RoomCode)

	ann.waitFor(t, "host ready", func(s session.Snapshot) bool { return s.CanContinue })
	bob.waitFor(t, "guest ready", func(s session.Snapshot) bool { return s.CanContinue })
	ann.client.Continue()
	bob.client.Continue()

	annView := ann.waitFor(t, "ann playing", inView(entity.ViewPlaying))
	bobView := bob.waitFor(t, "bob playing", inView(entity.ViewPlaying))

	// Then: the host plays X against the guest
	assert.Equal(t, entity.PlayerX, annView.Session.Symbol)
	assert.Equal(t, "Bob", annView.Opponent)
	assert.Equal(t, entity.PlayerO, bobView.Session.Symbol)
	assert.Equal(t, "Ann", bobView.Opponent)
	assert.Equal(t, 0, server.OpenRooms())

	// When: Ann takes the top row while Bob plays the middle
	moves := []struct {
		who  *player
		cell int
	}{
		{ann, 0}, {bob, 3}, {ann, 1}, {bob, 4}, {ann, 2},
	}
	for i, move := range moves {
		move.who.waitFor(t, "turn", func(s session.Snapshot) bool { return s.MyTurn() })
		move.who.client.SubmitMove(move.cell)

		placed := i + 1
		move.who.waitFor(t, "move applied", func(s session.Snapshot) bool {
			filled := 0
			for _, cell := range s.Game.Board {
				if cell != entity.EmptyCell {
					filled++
				}
			}
			return filled == placed
		})
	}

	// Then: both see the verdict and each recorded their own outcome
	annResult := ann.waitFor(t, "ann result", inView(entity.ViewResult))
	bobResult := bob.waitFor(t, "bob result", inView(entity.ViewResult))

	assert.Equal(t, entity.WinnerX, annResult.Game.Winner)
	assert.Equal(t, entity.WinnerX, bobResult.Game.Winner)

	annStats, err := ann.stats.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.Stats{Wins: 1}, annStats)

	bobStats, err := bob.stats.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.Stats{Losses: 1}, bobStats)
}

func TestEndToEnd_QuickMatchOpponentLeaves(t *testing.T) {
	ctx := context.Background()
	server := peer.Start(slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(server.Close)

	ann := startPlayer(ctx, t, server, "Ann")
	bob := startPlayer(ctx, t, server, "Bob")

	// Given: Ann waits in the queue and Bob is paired with her
	ann.client.RequestQuickMatch(ctx)
	ann.waitFor(t, "ann searching", inView(entity.ViewSearching))
	bob.client.RequestQuickMatch(ctx)

	ann.waitFor(t, "ann playing", inView(entity.ViewPlaying))
	bob.waitFor(t, "bob playing", inView(entity.ViewPlaying))

	// When: Ann leaves
	ann.client.Leave()

	// Then: Ann is back in the lobby and Bob wins by default
	ann.waitFor(t, "ann lobby", inView(entity.ViewLobby))
	result := bob.waitFor(t, "bob result", inView(entity.ViewResult))
	assert.Equal(t, entity.WinnerO, result.Game.Winner)
}

func TestEndToEnd_UnknownRoom(t *testing.T) {
	ctx := context.Background()
	server := peer.Start(slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(server.Close)

	bob := startPlayer(ctx, t, server, "Bob")

	bob.client.RequestPairing(ctx, entity.ModeJoin, "ZZZZ")

	snapshot := bob.waitFor(t, "join error", func(s session.Snapshot) bool { return s.Error != "" })
	assert.Equal(t, entity.ViewLobby, snapshot.View)
	assert.Equal(t, "Room not found", snapshot.Error)
	assert.Empty(t, snapshot.RoomCode)
}
