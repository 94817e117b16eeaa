package matchmaking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/protocol"
	"github.com/rocketscienceinc/tictactoe-client/internal/transport/websocket"
)

const DefaultJoinError = "Unable to join room"

// Sink receives the interpreted outcome of server frames. It is always called on the
// event loop, and only for frames of the current connection attempt.
type Sink interface {
	RoomCreated(roomCode string)
	Searching()
	MatchStarted(start protocol.MatchStart, immediate bool)
	StateUpdated(update protocol.StateUpdate)
	JoinFailed(message string)
	OpponentLeft()
	ConnectionLost(err error)
}

type Options struct {
	Dialer      websocket.Dialer
	Endpoint    string
	DialTimeout time.Duration
}

// Coordinator drives the pairing flows and is the sole owner of the transport handle.
// Every method must be called on the event loop that post feeds.
type Coordinator struct {
	logger *slog.Logger
	opts   Options
	post   func(fn func()) bool
	sink   Sink

	attempt *attempt
}

type attempt struct {
	request  protocol.PairingRequest
	handle   *websocket.Handle
	roomCode string
}

func New(logger *slog.Logger, opts Options, post func(fn func()) bool, sink Sink) *Coordinator {
	return &Coordinator{
		logger: logger.With("component", "matchmaking"),
		opts:   opts,
		post:   post,
		sink:   sink,
	}
}

// BeginPairing tears down any previous attempt, opens a new connection and sends the pairing request.
func (that *Coordinator) BeginPairing(ctx context.Context, request protocol.PairingRequest) error {
	log := that.logger.With("method", "BeginPairing", "mode", request.Mode)

	that.Teardown()

	frame, err := protocol.Encode(request)
	if err != nil {
		return fmt.Errorf("failed to encode pairing request: %w", err)
	}

	if that.opts.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, that.opts.DialTimeout)
		defer cancel()
	}

	handle, err := websocket.Open(ctx, that.logger, that.opts.Dialer, that.opts.Endpoint, that.post, websocket.Callbacks{
		OnFrame: that.handleFrame,
		OnClose: that.handleClose,
	})
	if err != nil {
		return fmt.Errorf("failed to open connection: %w", err)
	}

	that.attempt = &attempt{request: request, handle: handle, roomCode: request.RoomCode}

	if !handle.Send(frame) {
		that.Teardown()
		return fmt.Errorf("%w: pairing request not delivered", apperror.ErrNotOpen)
	}

	log.Info("pairing request sent", "handle", handle.ID())

	return nil
}

// Send forwards an intent on the current connection. It reports false when nothing is open.
func (that *Coordinator) Send(intent protocol.Intent) bool {
	if !that.IsOpen() {
		return false
	}

	frame, err := protocol.Encode(intent)
	if err != nil {
		that.logger.Error("failed to encode intent", "error", err)
		return false
	}

	return that.attempt.handle.Send(frame)
}

// Teardown closes the current connection, if any, and forgets the attempt.
func (that *Coordinator) Teardown() {
	if that.attempt == nil {
		return
	}

	that.attempt.handle.Close()
	that.attempt = nil
}

func (that *Coordinator) Active() bool {
	return that.attempt != nil
}

func (that *Coordinator) IsOpen() bool {
	return that.attempt != nil && that.attempt.handle.IsOpen()
}

func (that *Coordinator) Mode() entity.Mode {
	if that.attempt == nil {
		return ""
	}
	return that.attempt.request.Mode
}

func (that *Coordinator) RoomCode() string {
	if that.attempt == nil {
		return ""
	}
	return that.attempt.roomCode
}

func (that *Coordinator) owns(handle *websocket.Handle) bool {
	return that.attempt != nil && that.attempt.handle == handle
}

func (that *Coordinator) handleFrame(handle *websocket.Handle, data []byte) {
	log := that.logger.With("method", "handleFrame", "handle", handle.ID())

	if !that.owns(handle) {
		log.Debug("dropping frame from a torn down connection")
		return
	}

	event, err := protocol.Decode(data)
	if err != nil {
		if errors.Is(err, apperror.ErrUnknownFrame) {
			log.Debug("dropping unknown frame", "error", err)
		} else {
			log.Warn("dropping malformed frame", "error", err)
		}
		return
	}

	mode := that.attempt.request.Mode

	switch msg := event.(type) {
	case protocol.Waiting:
		if mode != entity.ModeCreate {
			that.sink.Searching()
			return
		}

		if msg.RoomCode == "" {
			log.Warn("waiting frame without a room code for a created room")
			return
		}

		that.attempt.roomCode = msg.RoomCode
		that.sink.RoomCreated(msg.RoomCode)
	case protocol.MatchStart:
		that.sink.MatchStarted(msg, mode == entity.ModeQuick)
	case protocol.StateUpdate:
		that.sink.StateUpdated(msg)
	case protocol.JoinError:
		message := msg.Message
		if message == "" {
			message = DefaultJoinError
		}

		that.Teardown()
		that.sink.JoinFailed(message)
	case protocol.OpponentLeft:
		that.sink.OpponentLeft()
	}
}

func (that *Coordinator) handleClose(handle *websocket.Handle, err error) {
	if !that.owns(handle) {
		return
	}

	that.attempt = nil
	that.sink.ConnectionLost(err)
}
