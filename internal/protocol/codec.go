package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

// Intent is a client → server message.
type Intent interface {
	intentType() string
}

// PairingRequest opens a pairing flow. It is sent once per connection, right after it opens.
type PairingRequest struct {
	Mode     entity.Mode
	Nickname string
	RoomCode string
}

type Move struct {
	Index int
}

type Timeout struct{}

type Leave struct{}

func (that PairingRequest) intentType() string { return string(that.Mode) }
func (Move) intentType() string                { return TypeMove }
func (Timeout) intentType() string             { return TypeTimeout }
func (Leave) intentType() string               { return TypeLeave }

// Event is a server → client message.
type Event interface {
	eventType() string
}

type Waiting struct {
	RoomCode string
}

type MatchStart struct {
	MatchID      string
	State        entity.GameState
	YouAre       entity.Symbol
	OpponentName string
}

type StateUpdate struct {
	MatchID string
	State   entity.GameState
}

type JoinError struct {
	Message string
}

type OpponentLeft struct{}

func (Waiting) eventType() string      { return TypeWaiting }
func (MatchStart) eventType() string   { return TypeMatchStart }
func (StateUpdate) eventType() string  { return TypeStateUpdate }
func (JoinError) eventType() string    { return TypeJoinError }
func (OpponentLeft) eventType() string { return TypeOpponentLeft }

// Encode serializes an outbound intent into a text frame.
func Encode(intent Intent) ([]byte, error) {
	var frame any

	switch msg := intent.(type) {
	case PairingRequest:
		if !msg.Mode.IsValid() {
			return nil, fmt.Errorf("%w: pairing mode %q", apperror.ErrUnknownFrame, msg.Mode)
		}

		var roomCode *string
		if msg.RoomCode != "" {
			code := msg.RoomCode
			roomCode = &code
		}

		frame = pairingFrame{Type: string(msg.Mode), Nickname: msg.Nickname, RoomCode: roomCode}
	case Move:
		index := msg.Index
		frame = moveFrame{Type: TypeMove, Index: &index}
	case Timeout, Leave:
		frame = envelope{Type: msg.intentType()}
	default:
		return nil, fmt.Errorf("%w: %T", apperror.ErrUnknownFrame, intent)
	}

	data, err := json.Marshal(frame)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s frame: %w", intent.intentType(), err)
	}

	return data, nil
}

// Decode parses an inbound frame. Unknown types and frames that break the snapshot
// invariants return an error; callers drop them.
func Decode(data []byte) (Event, error) {
	var head envelope
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedFrame, err)
	}

	switch head.Type {
	case TypeWaiting:
		var frame waitingFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedFrame, err)
		}

		return Waiting{RoomCode: frame.RoomCode}, nil
	case TypeMatchStart:
		var frame matchStartFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedFrame, err)
		}

		state, err := stateFromFrame(frame.State)
		if err != nil {
			return nil, err
		}

		you, ok := symbolFromWire(frame.YouAre)
		if !ok || !you.IsPlayer() {
			return nil, fmt.Errorf("%w: youAre %d", apperror.ErrMalformedFrame, frame.YouAre)
		}

		return MatchStart{
			MatchID:      frame.State.MatchID,
			State:        state,
			YouAre:       you,
			OpponentName: frame.OpponentName,
		}, nil
	case TypeStateUpdate:
		var frame stateUpdateFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedFrame, err)
		}

		state, err := stateFromFrame(frame.State)
		if err != nil {
			return nil, err
		}

		return StateUpdate{MatchID: frame.State.MatchID, State: state}, nil
	case TypeJoinError:
		var frame joinErrorFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedFrame, err)
		}

		return JoinError{Message: frame.Message}, nil
	case TypeOpponentLeft:
		return OpponentLeft{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownFrame, head.Type)
	}
}

func stateFromFrame(frame *StateFrame) (entity.GameState, error) {
	var state entity.GameState

	if frame == nil {
		return state, fmt.Errorf("%w: missing state", apperror.ErrMalformedFrame)
	}

	if len(frame.Board) != entity.BoardSize {
		return state, fmt.Errorf("%w: board has %d cells", apperror.ErrMalformedFrame, len(frame.Board))
	}

	for i, cell := range frame.Board {
		symbol, ok := symbolFromWire(cell)
		if !ok {
			return state, fmt.Errorf("%w: cell %d holds %d", apperror.ErrMalformedFrame, i, cell)
		}
		state.Board[i] = symbol
	}

	turn, ok := symbolFromWire(frame.Turn)
	if !ok {
		return state, fmt.Errorf("%w: turn %d", apperror.ErrMalformedFrame, frame.Turn)
	}
	state.Turn = turn
	state.Finished = frame.Finished

	winner, ok := symbolFromWire(frame.Winner)
	if !ok {
		return state, fmt.Errorf("%w: winner %d", apperror.ErrMalformedFrame, frame.Winner)
	}

	switch {
	case winner.IsPlayer():
		state.Winner = entity.WinnerOf(winner)
	case frame.Finished:
		state.Winner = entity.WinnerDraw
	default:
		state.Winner = entity.WinnerNone
	}

	if err := state.Validate(); err != nil {
		return state, err
	}

	return state, nil
}

func symbolFromWire(value int) (entity.Symbol, bool) {
	switch value {
	case 0:
		return entity.EmptyCell, true
	case 1:
		return entity.PlayerX, true
	case 2:
		return entity.PlayerO, true
	default:
		return entity.EmptyCell, false
	}
}
