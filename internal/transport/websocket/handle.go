package websocket

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
)

const (
	closeWriteWait = time.Second
	writeTimeout   = 5 * time.Second
)

var handleSeq atomic.Uint64

// Conn is the part of *websocket.Conn a Handle uses.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Dialer opens a connection to the game server.
type Dialer interface {
	Dial(ctx context.Context, endpoint string) (Conn, error)
}

// Callbacks receive inbound events. They run inside closures handed to the post function
// given to Open, in arrival order. A callback never runs after Close has returned on the
// goroutine that executes those closures.
type Callbacks struct {
	OnFrame func(handle *Handle, data []byte)
	OnClose func(handle *Handle, err error)
}

// Handle owns exactly one realtime connection.
type Handle struct {
	id     uint64
	logger *slog.Logger
	conn   Conn
	post   func(fn func()) bool

	mu        sync.Mutex
	open      bool
	attached  bool
	callbacks Callbacks

	done chan struct{}
}

// Open dials endpoint and starts delivering inbound frames to callbacks through post,
// which is expected to queue fn on the owner's event loop.
func Open(ctx context.Context, logger *slog.Logger, dialer Dialer, endpoint string, post func(fn func()) bool, callbacks Callbacks) (*Handle, error) {
	conn, err := dialer.Dial(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %w", apperror.ErrConnection, endpoint, err)
	}

	id := handleSeq.Add(1)
	handle := &Handle{
		id:        id,
		logger:    logger.With("component", "transport", "handle", id),
		conn:      conn,
		post:      post,
		open:      true,
		attached:  true,
		callbacks: callbacks,
		done:      make(chan struct{}),
	}

	go handle.readLoop()

	handle.logger.Debug("connection opened", "endpoint", endpoint)

	return handle, nil
}

func (that *Handle) ID() uint64 {
	return that.id
}

func (that *Handle) IsOpen() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.open
}

// Send writes one text frame. It drops the frame and returns false when the handle is not
// open or the peer does not take it within the write timeout.
func (that *Handle) Send(frame []byte) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.open {
		return false
	}

	if err := that.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		that.logger.Warn("failed to set write deadline", "error", err)
		return false
	}

	if err := that.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		that.logger.Warn("failed to send frame", "error", err)
		return false
	}

	return true
}

// Close detaches the callbacks and then closes the connection. It is idempotent.
func (that *Handle) Close() {
	that.mu.Lock()
	that.attached = false
	that.callbacks = Callbacks{}
	wasOpen := that.open
	that.open = false
	that.mu.Unlock()

	if !wasOpen {
		return
	}

	message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
	_ = that.conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(closeWriteWait))

	if err := that.conn.Close(); err != nil {
		that.logger.Debug("failed to close connection", "error", err)
	}

	that.logger.Debug("connection closed")
}

// Done is closed once the reader goroutine has exited.
func (that *Handle) Done() <-chan struct{} {
	return that.done
}

func (that *Handle) isAttached() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.attached
}

// callbacksIfAttached is read at delivery time, so a Close that ran before the closure wins.
func (that *Handle) callbacksIfAttached() (Callbacks, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.callbacks, that.attached
}

func (that *Handle) readLoop() {
	defer close(that.done)

	for {
		_, data, err := that.conn.ReadMessage()
		if err != nil {
			that.closedByPeer(err)
			return
		}

		if !that.isAttached() {
			continue
		}

		delivered := that.post(func() {
			callbacks, attached := that.callbacksIfAttached()
			if attached && callbacks.OnFrame != nil {
				callbacks.OnFrame(that, data)
			}
		})
		if !delivered {
			that.logger.Debug("frame dropped, event loop stopped")
		}
	}
}

func (that *Handle) closedByPeer(err error) {
	that.mu.Lock()
	wasOpen := that.open
	that.open = false
	that.mu.Unlock()

	if !wasOpen {
		return
	}

	_ = that.conn.Close()

	that.logger.Info("connection closed by peer", "error", err)

	closeErr := fmt.Errorf("%w: %w", apperror.ErrConnection, err)
	that.post(func() {
		callbacks, attached := that.callbacksIfAttached()
		if !attached {
			return
		}

		that.mu.Lock()
		that.attached = false
		that.callbacks = Callbacks{}
		that.mu.Unlock()

		if callbacks.OnClose != nil {
			callbacks.OnClose(that, closeErr)
		}
	})
}
