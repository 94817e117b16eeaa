package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

// Client is the presentation-facing side of a session. Its methods may be called from any
// goroutine; each one queues the operation on the session loop and returns immediately.
type Client struct {
	loop    *Loop
	machine *Machine

	mu        sync.Mutex
	observers []func(Snapshot)
	last      Snapshot
	published bool
}

func NewClient(logger *slog.Logger, opts Options) *Client {
	loop := NewLoop(0)

	client := &Client{loop: loop}
	client.machine = NewMachine(logger, loop.Post, opts)
	loop.OnIdle(client.publish)

	return client
}

// Subscribe registers fn to receive every changed snapshot. fn runs on the session loop
// and must not block.
func (that *Client) Subscribe(fn func(Snapshot)) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.observers = append(that.observers, fn)
}

// Run drives the session until ctx is done, then shuts it down.
func (that *Client) Run(ctx context.Context) error {
	err := that.loop.Run(ctx)

	that.machine.Shutdown()
	that.publish()

	return err
}

func (that *Client) Start(ctx context.Context) bool {
	return that.loop.Post(func() { that.machine.Start(ctx) })
}

func (that *Client) RequestPairing(ctx context.Context, mode entity.Mode, roomCode string) bool {
	return that.loop.Post(func() { that.machine.RequestPairing(ctx, mode, roomCode) })
}

func (that *Client) RequestQuickMatch(ctx context.Context) bool {
	return that.loop.Post(func() { that.machine.RequestQuickMatch(ctx) })
}

func (that *Client) ConfirmNickname(ctx context.Context, nickname string) bool {
	return that.loop.Post(func() { that.machine.ConfirmNickname(ctx, nickname) })
}

func (that *Client) RequestNickname() bool {
	return that.loop.Post(that.machine.RequestNickname)
}

func (that *Client) CancelNickname() bool {
	return that.loop.Post(that.machine.CancelNickname)
}

func (that *Client) SubmitMove(index int) bool {
	return that.loop.Post(func() { that.machine.SubmitMove(index) })
}

func (that *Client) Continue() bool {
	return that.loop.Post(that.machine.Continue)
}

func (that *Client) Cancel() bool {
	return that.loop.Post(that.machine.Cancel)
}

func (that *Client) Leave() bool {
	return that.loop.Post(that.machine.Leave)
}

func (that *Client) PlayAgain(ctx context.Context) bool {
	return that.loop.Post(func() { that.machine.PlayAgain(ctx) })
}

func (that *Client) Shutdown() bool {
	return that.loop.Post(that.machine.Shutdown)
}

// Snapshot waits for the loop and returns the current state.
func (that *Client) Snapshot(ctx context.Context) (Snapshot, error) {
	var snapshot Snapshot

	err := that.loop.Do(ctx, func() { snapshot = that.machine.Snapshot() })

	return snapshot, err
}

func (that *Client) publish() {
	snapshot := that.machine.Snapshot()

	that.mu.Lock()
	if that.published && snapshot == that.last {
		that.mu.Unlock()
		return
	}
	that.last = snapshot
	that.published = true
	observers := append([]func(Snapshot){}, that.observers...)
	that.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}
