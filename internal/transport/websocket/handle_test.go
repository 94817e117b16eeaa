package websocket_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/session"
	"github.com/rocketscienceinc/tictactoe-client/internal/transport/websocket"
	"github.com/rocketscienceinc/tictactoe-client/testing/wsfake"
)

const waitFor = 2 * time.Second

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startLoop runs an event loop for callbacks until the test ends.
func startLoop(t *testing.T) *session.Loop {
	t.Helper()

	loop := session.NewLoop(0)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		_ = loop.Run(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		<-done
	})

	return loop
}

// queue collects posted closures without running them.
type queue chan func()

func (that queue) post(fn func()) bool {
	that <- fn
	return true
}

func (that queue) next(t *testing.T) func() {
	t.Helper()

	select {
	case fn := <-that:
		return fn
	case <-time.After(waitFor):
		t.Fatal("nothing was posted")
		return nil
	}
}

func TestHandle_DeliversFramesInOrder(t *testing.T) {
	// Given: an open handle over a scripted connection
	loop := startLoop(t)
	dialer := wsfake.NewDialer()
	frames := make(chan string, 8)

	handle, err := websocket.Open(context.Background(), discardLogger(), dialer, "ws://test", loop.Post, websocket.Callbacks{
		OnFrame: func(_ *websocket.Handle, data []byte) { frames <- string(data) },
	})
	require.NoError(t, err)
	t.Cleanup(handle.Close)

	// When: the server sends three frames
	conn := dialer.Last()
	conn.Push("one")
	conn.Push("two")
	conn.Push("three")

	// Then: they arrive in the order they were sent
	for _, want := range []string{"one", "two", "three"} {
		select {
		case got := <-frames:
			assert.Equal(t, want, got)
		case <-time.After(waitFor):
			t.Fatalf("frame %q was not delivered", want)
		}
	}
}

func TestHandle_Close(t *testing.T) {
	t.Run("No callback runs once Close has returned", func(t *testing.T) {
		ctx := context.Background()
		loop := startLoop(t)

		for range 500 {
			// Given: a handle whose server floods frames
			dialer := wsfake.NewDialer()
			closedReturned := false
			late := 0

			handle, err := websocket.Open(ctx, discardLogger(), dialer, "ws://test", loop.Post, websocket.Callbacks{
				OnFrame: func(*websocket.Handle, []byte) {
					if closedReturned {
						late++
					}
				},
				OnClose: func(*websocket.Handle, error) {
					if closedReturned {
						late++
					}
				},
			})
			require.NoError(t, err)

			conn := dialer.Last()
			flooding := make(chan struct{})
			go func() {
				defer close(flooding)
				for !conn.IsClosed() {
					conn.TryPush("frame")
					runtime.Gosched()
				}
			}()

			// When: the loop closes the handle mid-flood
			require.NoError(t, loop.Do(ctx, func() {
				handle.Close()
				closedReturned = true
			}))

			<-flooding
			select {
			case <-handle.Done():
			case <-time.After(waitFor):
				t.Fatal("reader goroutine did not exit")
			}

			// Then: everything posted before the reader stopped ran, and none of it reached a callback
			require.NoError(t, loop.Do(ctx, func() {}))
			require.Zero(t, late, "callbacks ran after Close returned")
			assert.True(t, conn.ClosedByClient())
		}
	})

	t.Run("Close wins over frames already queued on the loop", func(t *testing.T) {
		// Given: a frame and a peer close, both posted but not yet run
		posted := make(queue, 4)
		dialer := wsfake.NewDialer()
		calls := 0

		handle, err := websocket.Open(context.Background(), discardLogger(), dialer, "ws://test", posted.post, websocket.Callbacks{
			OnFrame: func(*websocket.Handle, []byte) { calls++ },
			OnClose: func(*websocket.Handle, error) { calls++ },
		})
		require.NoError(t, err)

		dialer.Last().Push("late")
		frame := posted.next(t)

		// When: the handle is closed before they run
		handle.Close()
		frame()

		// Then: neither callback fires
		<-handle.Done()
		assert.Zero(t, calls)
		assert.Empty(t, posted)
	})

	t.Run("Close is idempotent and send becomes a no-op", func(t *testing.T) {
		dialer := wsfake.NewDialer()
		handle, err := websocket.Open(context.Background(), discardLogger(), dialer, "ws://test", startLoop(t).Post, websocket.Callbacks{})
		require.NoError(t, err)

		handle.Close()
		handle.Close()

		assert.False(t, handle.IsOpen())
		assert.False(t, handle.Send([]byte(`{"type":"leave"}`)))
		assert.Empty(t, dialer.Last().Sent())
		assert.True(t, dialer.Last().WriteDeadline().IsZero())
	})
}

func TestHandle_SendSetsWriteDeadline(t *testing.T) {
	// Given: an open handle
	dialer := wsfake.NewDialer()
	handle, err := websocket.Open(context.Background(), discardLogger(), dialer, "ws://test", startLoop(t).Post, websocket.Callbacks{})
	require.NoError(t, err)
	t.Cleanup(handle.Close)

	before := time.Now()

	// When: a frame is sent
	require.True(t, handle.Send([]byte(`{"type":"timeout"}`)))

	// Then: the write was bounded by a deadline in the near future
	deadline := dialer.Last().WriteDeadline()
	assert.True(t, deadline.After(before))
	assert.True(t, deadline.Before(before.Add(time.Minute)))
	assert.Equal(t, []string{`{"type":"timeout"}`}, dialer.Last().Sent())
}

func TestHandle_UnsolicitedClose(t *testing.T) {
	// Given: an open handle
	dialer := wsfake.NewDialer()
	closed := make(chan error, 2)

	handle, err := websocket.Open(context.Background(), discardLogger(), dialer, "ws://test", startLoop(t).Post, websocket.Callbacks{
		OnClose: func(_ *websocket.Handle, err error) { closed <- err },
	})
	require.NoError(t, err)

	// When: the server drops the connection
	dialer.Last().Drop()

	// Then: the close callback fires once with a connection error
	select {
	case err = <-closed:
		require.ErrorIs(t, err, apperror.ErrConnection)
	case <-time.After(waitFor):
		t.Fatal("close callback did not fire")
	}

	<-handle.Done()
	handle.Close()
	assert.Empty(t, closed)
	assert.False(t, handle.IsOpen())
}

func TestOpen_DialFailure(t *testing.T) {
	dialer := wsfake.NewDialer()
	dialer.FailWith(errors.New("refused"))

	handle, err := websocket.Open(context.Background(), discardLogger(), dialer, "ws://test", startLoop(t).Post, websocket.Callbacks{})

	require.ErrorIs(t, err, apperror.ErrConnection)
	assert.Nil(t, handle)
}

func TestGorillaDialer_RoundTrip(t *testing.T) {
	// Given: an echo server
	upgrader := gorilla.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			kind, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err = conn.WriteMessage(kind, data); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	frames := make(chan string, 1)
	endpoint := "ws" + strings.TrimPrefix(srv.URL, "http")

	// When: a frame is sent through a real handle
	handle, err := websocket.Open(context.Background(), discardLogger(), websocket.NewDialer(waitFor), endpoint, startLoop(t).Post, websocket.Callbacks{
		OnFrame: func(_ *websocket.Handle, data []byte) { frames <- string(data) },
	})
	require.NoError(t, err)
	t.Cleanup(handle.Close)

	require.True(t, handle.Send([]byte(`{"type":"timeout"}`)))

	// Then: it comes back unchanged
	select {
	case got := <-frames:
		assert.Equal(t, `{"type":"timeout"}`, got)
	case <-time.After(waitFor):
		t.Fatal("echo not received")
	}
}
