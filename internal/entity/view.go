package entity

// ViewState is what the user currently sees. Exactly one is active.
type ViewState uint8

const (
	ViewIdle ViewState = iota
	ViewNicknamePrompt
	ViewLobby
	ViewRoomPendingHost
	ViewRoomPendingGuest
	ViewSearching
	ViewPlaying
	ViewResult
)

var viewNames = map[ViewState]string{
	ViewIdle:             "idle",
	ViewNicknamePrompt:   "nickname",
	ViewLobby:            "lobby",
	ViewRoomPendingHost:  "room-host",
	ViewRoomPendingGuest: "room-guest",
	ViewSearching:        "searching",
	ViewPlaying:          "playing",
	ViewResult:           "result",
}

func (that ViewState) String() string {
	if name, ok := viewNames[that]; ok {
		return name
	}
	return "unknown"
}

func (that ViewState) IsRoomPending() bool {
	return that == ViewRoomPendingHost || that == ViewRoomPendingGuest
}
