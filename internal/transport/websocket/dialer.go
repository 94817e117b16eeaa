package websocket

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// GorillaDialer dials with github.com/gorilla/websocket.
type GorillaDialer struct {
	dialer *websocket.Dialer
}

func NewDialer(handshakeTimeout time.Duration) *GorillaDialer {
	return &GorillaDialer{
		dialer: &websocket.Dialer{
			Proxy:            websocket.DefaultDialer.Proxy,
			HandshakeTimeout: handshakeTimeout,
		},
	}
}

func (that *GorillaDialer) Dial(ctx context.Context, endpoint string) (Conn, error) {
	conn, resp, err := that.dialer.DialContext(ctx, endpoint, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	if err != nil {
		return nil, fmt.Errorf("failed to dial: %w", err)
	}

	return conn, nil
}
