package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

// DecodeIntent is the server side of Encode.
func DecodeIntent(data []byte) (Intent, error) {
	var head envelope
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedFrame, err)
	}

	switch head.Type {
	case TypeQuick, TypeCreate, TypeJoin:
		var frame pairingFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedFrame, err)
		}

		request := PairingRequest{Mode: entity.Mode(frame.Type), Nickname: frame.Nickname}
		if frame.RoomCode != nil {
			request.RoomCode = *frame.RoomCode
		}

		return request, nil
	case TypeMove:
		var frame moveFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedFrame, err)
		}

		if frame.Index == nil {
			return nil, fmt.Errorf("%w: move without index", apperror.ErrMalformedFrame)
		}

		return Move{Index: *frame.Index}, nil
	case TypeTimeout:
		return Timeout{}, nil
	case TypeLeave:
		return Leave{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownFrame, head.Type)
	}
}

// EncodeEvent is the server side of Decode.
func EncodeEvent(event Event) ([]byte, error) {
	var frame any

	switch msg := event.(type) {
	case Waiting:
		frame = waitingFrame{Type: TypeWaiting, RoomCode: msg.RoomCode}
	case MatchStart:
		frame = matchStartFrame{
			Type:         TypeMatchStart,
			State:        StateToFrame(msg.MatchID, msg.State),
			YouAre:       int(msg.YouAre),
			OpponentName: msg.OpponentName,
		}
	case StateUpdate:
		frame = stateUpdateFrame{Type: TypeStateUpdate, State: StateToFrame(msg.MatchID, msg.State)}
	case JoinError:
		frame = joinErrorFrame{Type: TypeJoinError, Message: msg.Message}
	case OpponentLeft:
		frame = envelope{Type: TypeOpponentLeft}
	default:
		return nil, fmt.Errorf("%w: %T", apperror.ErrUnknownFrame, event)
	}

	data, err := json.Marshal(frame)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s frame: %w", event.eventType(), err)
	}

	return data, nil
}

// StateToFrame converts a snapshot to its wire form.
func StateToFrame(matchID string, state entity.GameState) *StateFrame {
	frame := &StateFrame{
		MatchID:  matchID,
		Board:    make([]int, entity.BoardSize),
		Turn:     int(state.Turn),
		Finished: state.Finished,
		Winner:   int(state.Winner.Symbol()),
	}

	for i, cell := range state.Board {
		frame.Board[i] = int(cell)
	}

	return frame
}
