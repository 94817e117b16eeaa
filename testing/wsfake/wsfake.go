// Package wsfake provides an in-memory websocket connection and dialer for tests.
package wsfake

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	transport "github.com/rocketscienceinc/tictactoe-client/internal/transport/websocket"
)

var ErrClosed = errors.New("fake connection closed")

// Conn is a scripted connection: the test pushes inbound frames and inspects sent ones.
type Conn struct {
	inbound chan []byte
	closed  chan struct{}
	once    sync.Once

	mu            sync.Mutex
	sent          [][]byte
	byClient      bool
	writeDeadline time.Time
}

func NewConn() *Conn {
	return &Conn{
		inbound: make(chan []byte, 64),
		closed:  make(chan struct{}),
	}
}

// Push queues a frame as if the server had sent it.
func (that *Conn) Push(frame string) {
	that.inbound <- []byte(frame)
}

// TryPush queues a frame unless the inbound buffer is full or the connection is closed.
func (that *Conn) TryPush(frame string) bool {
	if that.IsClosed() {
		return false
	}

	select {
	case that.inbound <- []byte(frame):
		return true
	default:
		return false
	}
}

// Drop closes the connection from the server side.
func (that *Conn) Drop() {
	that.once.Do(func() { close(that.closed) })
}

func (that *Conn) ReadMessage() (int, []byte, error) {
	select {
	case data := <-that.inbound:
		return websocket.TextMessage, data, nil
	default:
	}

	select {
	case data := <-that.inbound:
		return websocket.TextMessage, data, nil
	case <-that.closed:
		return 0, nil, ErrClosed
	}
}

func (that *Conn) WriteMessage(_ int, data []byte) error {
	if that.IsClosed() {
		return ErrClosed
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.sent = append(that.sent, append([]byte(nil), data...))

	return nil
}

func (that *Conn) WriteControl(int, []byte, time.Time) error {
	return nil
}

func (that *Conn) SetWriteDeadline(deadline time.Time) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.writeDeadline = deadline

	return nil
}

// WriteDeadline returns the deadline set before the last write.
func (that *Conn) WriteDeadline() time.Time {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.writeDeadline
}

func (that *Conn) Close() error {
	that.mu.Lock()
	if !that.IsClosed() {
		that.byClient = true
	}
	that.mu.Unlock()

	that.Drop()

	return nil
}

func (that *Conn) IsClosed() bool {
	select {
	case <-that.closed:
		return true
	default:
		return false
	}
}

// ClosedByClient reports whether Close was called before the server dropped the connection.
func (that *Conn) ClosedByClient() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.byClient
}

// Sent returns the frames written so far, as strings.
func (that *Conn) Sent() []string {
	that.mu.Lock()
	defer that.mu.Unlock()

	frames := make([]string, 0, len(that.sent))
	for _, frame := range that.sent {
		frames = append(frames, string(frame))
	}

	return frames
}

// Dialer hands out a new Conn for every Dial and remembers all of them.
type Dialer struct {
	mu    sync.Mutex
	conns []*Conn
	err   error
}

func NewDialer() *Dialer {
	return &Dialer{}
}

// FailWith makes subsequent dials fail with err; nil restores success.
func (that *Dialer) FailWith(err error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.err = err
}

func (that *Dialer) Dial(_ context.Context, _ string) (transport.Conn, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.err != nil {
		return nil, that.err
	}

	conn := NewConn()
	that.conns = append(that.conns, conn)

	return conn, nil
}

// Last returns the most recently dialed connection, or nil.
func (that *Dialer) Last() *Conn {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.conns) == 0 {
		return nil
	}

	return that.conns[len(that.conns)-1]
}

func (that *Dialer) Opened() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.conns)
}

// Live counts connections that are neither closed by the client nor dropped by the server.
func (that *Dialer) Live() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	live := 0
	for _, conn := range that.conns {
		if !conn.IsClosed() {
			live++
		}
	}

	return live
}
