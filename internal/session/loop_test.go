package session_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/session"
	"github.com/rocketscienceinc/tictactoe-client/internal/timer"
	"github.com/rocketscienceinc/tictactoe-client/testing/wsfake"
)

func TestLoop(t *testing.T) {
	t.Run("Closures run in posting order on one goroutine", func(t *testing.T) {
		// Given: a running loop
		loop := session.NewLoop(0)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = loop.Run(ctx) }()

		// When: many producers post while one reads back
		var order []int
		for i := range 50 {
			require.True(t, loop.Post(func() { order = append(order, i) }))
		}

		var got []int
		require.NoError(t, loop.Do(ctx, func() { got = append(got, order...) }))

		// Then: everything ran in order
		require.Len(t, got, 50)
		for i, v := range got {
			assert.Equal(t, i, v)
		}
	})

	t.Run("Posting after stop is refused", func(t *testing.T) {
		loop := session.NewLoop(1)
		loop.Stop()

		assert.False(t, loop.Post(func() {}))
		assert.Error(t, loop.Do(context.Background(), func() {}))
	})

	t.Run("Idle hook runs after every closure", func(t *testing.T) {
		loop := session.NewLoop(0)
		idle := 0
		loop.OnIdle(func() { idle++ })

		loop.Post(func() {})
		loop.Post(func() {})

		ctx, cancel := context.WithTimeout(context.Background(), waitFor)
		defer cancel()
		require.True(t, loop.Next(ctx))
		require.True(t, loop.Next(ctx))

		assert.Equal(t, 2, idle)
	})
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to entity.ViewState
		allowed  bool
	}{
		{entity.ViewLobby, entity.ViewSearching, true},
		{entity.ViewSearching, entity.ViewPlaying, true},
		{entity.ViewRoomPendingGuest, entity.ViewSearching, true},
		{entity.ViewPlaying, entity.ViewResult, true},
		{entity.ViewResult, entity.ViewNicknamePrompt, true},
		{entity.ViewPlaying, entity.ViewIdle, true},
		{entity.ViewLobby, entity.ViewPlaying, false},
		{entity.ViewSearching, entity.ViewResult, false},
		{entity.ViewRoomPendingHost, entity.ViewSearching, false},
		{entity.ViewResult, entity.ViewPlaying, false},
		{entity.ViewIdle, entity.ViewResult, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, session.CanTransition(tt.from, tt.to))
		})
	}
}

func TestClient(t *testing.T) {
	// Given: a client running its loop with an observer attached
	dialer := wsfake.NewDialer()
	client := session.NewClient(slog.New(slog.NewTextHandler(io.Discard, nil)), session.Options{
		Dialer:    dialer,
		Endpoint:  "ws://test",
		Scheduler: &timer.ManualScheduler{},
	})

	var mu sync.Mutex
	var views []entity.ViewState
	client.Subscribe(func(snapshot session.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		views = append(views, snapshot.View)
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- client.Run(ctx) }()

	// When: the user starts, names themselves and asks for a quick match
	require.True(t, client.Start(ctx))
	require.True(t, client.RequestQuickMatch(ctx))
	require.True(t, client.ConfirmNickname(ctx, "Cleo"))

	snapshot, err := client.Snapshot(ctx)
	require.NoError(t, err)

	// Then: the session is searching under the confirmed name
	assert.Equal(t, entity.ViewSearching, snapshot.View)
	assert.Equal(t, "Cleo", snapshot.Session.Nickname)
	assert.Equal(t, 1, dialer.Live())

	// When: the client is stopped
	cancel()
	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("client did not stop")
	}

	// Then: the connection is released and observers saw each distinct view once
	assert.Equal(t, 0, dialer.Live())
	assert.False(t, client.SubmitMove(0))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []entity.ViewState{
		entity.ViewLobby, entity.ViewNicknamePrompt, entity.ViewSearching, entity.ViewIdle,
	}, views)
}
