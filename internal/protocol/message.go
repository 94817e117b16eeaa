package protocol

// Client → server frame types.
const (
	TypeQuick   = "quick"
	TypeCreate  = "create"
	TypeJoin    = "join"
	TypeMove    = "move"
	TypeTimeout = "timeout"
	TypeLeave   = "leave"
)

// Server → client frame types.
const (
	TypeWaiting      = "waiting"
	TypeMatchStart   = "match_start"
	TypeStateUpdate  = "state_update"
	TypeJoinError    = "join_error"
	TypeOpponentLeft = "opponent_left"
)

// envelope is the part every frame shares.
type envelope struct {
	Type string `json:"type"`
}

// pairingFrame always carries roomCode, null when there is none.
type pairingFrame struct {
	Type     string  `json:"type"`
	Nickname string  `json:"nickname"`
	RoomCode *string `json:"roomCode"`
}

type moveFrame struct {
	Type  string `json:"type"`
	Index *int   `json:"index"`
}

type waitingFrame struct {
	Type     string `json:"type"`
	RoomCode string `json:"roomCode,omitempty"`
}

type matchStartFrame struct {
	Type         string      `json:"type"`
	State        *StateFrame `json:"state"`
	YouAre       int         `json:"youAre"`
	OpponentName string      `json:"opponentName"`
}

type stateUpdateFrame struct {
	Type  string      `json:"type"`
	State *StateFrame `json:"state"`
}

type joinErrorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// StateFrame is the wire form of a game snapshot. Cells and symbols are 0 (empty), 1 (X), 2 (O);
// winner 0 on a finished game means a draw.
type StateFrame struct {
	MatchID  string `json:"matchId,omitempty"`
	Board    []int  `json:"board"`
	Turn     int    `json:"turn"`
	Finished bool   `json:"finished"`
	Winner   int    `json:"winner"`
}
