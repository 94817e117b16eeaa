package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/matchmaking"
	"github.com/rocketscienceinc/tictactoe-client/internal/protocol"
	"github.com/rocketscienceinc/tictactoe-client/internal/timer"
	"github.com/rocketscienceinc/tictactoe-client/internal/transport/websocket"
)

const (
	MsgEmptyRoomCode   = "Please enter a room code"
	MsgConnectionLost  = "Connection lost"
	MsgUnableToConnect = "Unable to connect to server"

	defaultOpponent = "Opponent"
	storeTimeout    = 2 * time.Second
)

type ProfileService interface {
	Nickname(ctx context.Context) (string, error)
	SaveNickname(ctx context.Context, nickname string) (string, error)
}

type StatsService interface {
	RecordResult(ctx context.Context, result entity.MatchResult) error
}

type Options struct {
	Dialer      websocket.Dialer
	Endpoint    string
	DialTimeout time.Duration

	TurnSeconds  int
	TickInterval time.Duration
	// Scheduler drives the turn timer. Nil means real ticks posted onto the loop.
	Scheduler timer.Scheduler

	ShareBase string

	Profile ProfileService
	Stats   StatsService
}

// Machine is the session state machine. It owns the view, the game snapshot and the
// local identity, and is the Sink of its own matchmaking coordinator.
// It is not safe for concurrent use; every method runs on the event loop.
type Machine struct {
	logger      *slog.Logger
	coordinator *matchmaking.Coordinator
	turn        *timer.Turn
	profile     ProfileService
	stats       StatsService
	shareBase   string

	view       entity.ViewState
	game       entity.GameState
	session    entity.Session
	opponent   string
	mode       entity.Mode
	roomCode   string
	matchReady bool
	recorded   bool
	quickAfter bool
	lastError  string
}

func NewMachine(logger *slog.Logger, post func(fn func()) bool, opts Options) *Machine {
	machine := &Machine{
		logger:    logger.With("component", "session"),
		profile:   opts.Profile,
		stats:     opts.Stats,
		shareBase: strings.TrimRight(opts.ShareBase, "/"),
		view:      entity.ViewIdle,
		game:      entity.NewGameState(),
	}

	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = timer.NewLoopScheduler(post)
	}

	interval := opts.TickInterval
	if interval <= 0 {
		interval = time.Second
	}

	machine.turn = timer.NewTurn(opts.TurnSeconds, interval, scheduler, machine.onTurnTimeout)
	machine.coordinator = matchmaking.New(logger, matchmaking.Options{
		Dialer:      opts.Dialer,
		Endpoint:    opts.Endpoint,
		DialTimeout: opts.DialTimeout,
	}, post, machine)

	return machine
}

func (that *Machine) View() entity.ViewState {
	return that.view
}

// Start loads the stored nickname and shows the lobby.
func (that *Machine) Start(ctx context.Context) {
	log := that.logger.With("method", "Start")

	if that.view != entity.ViewIdle {
		log.Debug("already started", "view", that.view)
		return
	}

	if that.profile != nil {
		nickname, err := that.profile.Nickname(ctx)
		switch {
		case err == nil:
			that.session.Nickname = nickname
		case errors.Is(err, apperror.ErrNicknameNotFound):
			log.Debug("no stored nickname")
		default:
			log.Warn("failed to load nickname", "error", err)
		}
	}

	that.transition(entity.ViewLobby)
}

// RequestPairing starts the flow for mode. roomCode is only used to join.
func (that *Machine) RequestPairing(ctx context.Context, mode entity.Mode, roomCode string) {
	log := that.logger.With("method", "RequestPairing", "mode", mode)

	if that.view != entity.ViewLobby && that.view != entity.ViewIdle {
		log.Debug("ignored outside the lobby", "view", that.view)
		return
	}

	switch mode {
	case entity.ModeQuick:
		that.RequestQuickMatch(ctx)
	case entity.ModeCreate:
		that.beginPairing(ctx, entity.ModeCreate, "")
	case entity.ModeJoin:
		roomCode = strings.TrimSpace(roomCode)
		if roomCode == "" {
			that.lastError = MsgEmptyRoomCode
			return
		}

		that.beginPairing(ctx, entity.ModeJoin, roomCode)
	default:
		log.Debug("unknown pairing mode")
	}
}

// RequestQuickMatch enters the queue, asking for a nickname first when there is none.
func (that *Machine) RequestQuickMatch(ctx context.Context) {
	if that.view != entity.ViewLobby && that.view != entity.ViewIdle {
		that.logger.Debug("quick match ignored", "view", that.view)
		return
	}

	if that.session.Nickname == "" {
		that.quickAfter = true
		that.lastError = ""
		that.transition(entity.ViewNicknamePrompt)
		return
	}

	that.beginPairing(ctx, entity.ModeQuick, "")
}

// ConfirmNickname stores the nickname and resumes a pending quick match.
func (that *Machine) ConfirmNickname(ctx context.Context, nickname string) {
	log := that.logger.With("method", "ConfirmNickname")

	if that.view != entity.ViewNicknamePrompt {
		log.Debug("no nickname prompt open", "view", that.view)
		return
	}

	nickname = entity.NormalizeNickname(nickname)

	if that.profile != nil {
		saved, err := that.profile.SaveNickname(ctx, nickname)
		if err != nil {
			log.Warn("failed to save nickname", "error", err)
		} else {
			nickname = saved
		}
	}

	that.session.Nickname = nickname

	if that.quickAfter {
		that.quickAfter = false
		that.beginPairing(ctx, entity.ModeQuick, "")
		return
	}

	that.transition(entity.ViewLobby)
}

// RequestNickname opens the nickname prompt from the lobby to rename.
func (that *Machine) RequestNickname() {
	if that.view != entity.ViewLobby {
		that.logger.Debug("rename ignored", "view", that.view)
		return
	}

	that.quickAfter = false
	that.lastError = ""
	that.transition(entity.ViewNicknamePrompt)
}

func (that *Machine) CancelNickname() {
	if that.view != entity.ViewNicknamePrompt {
		return
	}

	that.quickAfter = false
	that.transition(entity.ViewLobby)
}

// SubmitMove forwards a move for cell index. Anything the server would not accept
// from this client right now is dropped.
func (that *Machine) SubmitMove(index int) {
	log := that.logger.With("method", "SubmitMove", "index", index)

	if that.view != entity.ViewPlaying || that.game.IsFinished() || index < 0 || index >= entity.BoardSize {
		log.Debug("move ignored", "view", that.view, "finished", that.game.Finished)
		return
	}

	if !that.coordinator.Send(protocol.Move{Index: index}) {
		log.Debug("move dropped, connection not open")
	}
}

// Continue moves a ready room into play.
func (that *Machine) Continue() {
	if !that.view.IsRoomPending() || !that.matchReady {
		that.logger.Debug("continue ignored", "view", that.view, "ready", that.matchReady)
		return
	}

	if !that.transition(entity.ViewPlaying) {
		return
	}

	if !that.game.IsFinished() {
		that.turn.Reset()
	}
}

// Cancel abandons a pairing attempt or nickname prompt without notifying the server.
func (that *Machine) Cancel() {
	switch that.view {
	case entity.ViewSearching, entity.ViewRoomPendingHost, entity.ViewRoomPendingGuest, entity.ViewNicknamePrompt:
	default:
		that.logger.Debug("cancel ignored", "view", that.view)
		return
	}

	that.quickAfter = false
	that.coordinator.Teardown()
	that.clearMatch()
	that.transition(entity.ViewLobby)
}

// Leave tells the server the local participant is leaving and returns to the lobby.
func (that *Machine) Leave() {
	switch that.view {
	case entity.ViewPlaying, entity.ViewResult, entity.ViewSearching, entity.ViewRoomPendingHost, entity.ViewRoomPendingGuest:
	default:
		that.logger.Debug("leave ignored", "view", that.view)
		return
	}

	that.coordinator.Send(protocol.Leave{})
	that.coordinator.Teardown()
	that.clearMatch()
	that.transition(entity.ViewLobby)
}

// PlayAgain drops the finished match and queues for a new quick match.
func (that *Machine) PlayAgain(ctx context.Context) {
	if that.view != entity.ViewResult {
		that.logger.Debug("play again ignored", "view", that.view)
		return
	}

	that.coordinator.Teardown()
	that.clearMatch()

	if that.session.Nickname == "" {
		that.quickAfter = true
		that.transition(entity.ViewNicknamePrompt)
		return
	}

	that.beginPairing(ctx, entity.ModeQuick, "")
}

// Shutdown releases the connection and the timer and returns to Idle.
func (that *Machine) Shutdown() {
	that.coordinator.Teardown()
	that.turn.Stop()
	that.clearMatch()
	that.quickAfter = false
	that.transition(entity.ViewIdle)
}

func (that *Machine) beginPairing(ctx context.Context, mode entity.Mode, roomCode string) {
	log := that.logger.With("method", "beginPairing", "mode", mode)

	target := entity.ViewSearching
	switch mode {
	case entity.ModeCreate:
		target = entity.ViewRoomPendingHost
	case entity.ModeJoin:
		target = entity.ViewRoomPendingGuest
	}

	if err := checkTransition(that.view, target); err != nil {
		log.Debug("pairing rejected", "error", err)
		return
	}

	that.clearMatch()
	that.mode = mode
	that.roomCode = roomCode
	that.transition(target)

	nickname := that.session.Nickname
	if nickname == "" {
		nickname = entity.DefaultNickname
	}

	request := protocol.PairingRequest{Mode: mode, Nickname: nickname, RoomCode: roomCode}
	if err := that.coordinator.BeginPairing(ctx, request); err != nil {
		log.Warn("failed to begin pairing", "error", err)

		that.clearMatch()
		that.lastError = MsgUnableToConnect
		that.transition(entity.ViewLobby)
	}
}

// RoomCreated records the code the server assigned to a hosted room.
func (that *Machine) RoomCreated(roomCode string) {
	if that.view != entity.ViewRoomPendingHost {
		that.logger.Debug("room code ignored", "view", that.view)
		return
	}

	that.roomCode = roomCode
}

// Searching is the server queueing the client without a room code.
func (that *Machine) Searching() {
	if that.matchReady {
		that.logger.Debug("waiting ignored after match start")
		return
	}

	that.transition(entity.ViewSearching)
}

// MatchStarted binds the local identity and the first snapshot of a match.
func (that *Machine) MatchStarted(start protocol.MatchStart, immediate bool) {
	log := that.logger.With("method", "MatchStarted", "match", start.MatchID)

	switch that.view {
	case entity.ViewSearching, entity.ViewRoomPendingHost, entity.ViewRoomPendingGuest:
	default:
		log.Debug("match start ignored", "view", that.view)
		return
	}

	that.session.Symbol = start.YouAre
	that.session.MatchID = start.MatchID
	that.opponent = start.OpponentName
	if that.opponent == "" {
		that.opponent = defaultOpponent
	}
	that.game = start.State
	that.matchReady = true
	that.recorded = false

	switch {
	case immediate:
		that.transition(entity.ViewPlaying)
	case that.view == entity.ViewSearching:
		that.transition(entity.ViewRoomPendingGuest)
	}

	log.Info("match started", "symbol", that.session.Symbol, "opponent", that.opponent, "view", that.view)

	if that.game.IsFinished() {
		that.finish()
		return
	}

	that.turn.Reset()
	that.syncTimer()
}

// StateUpdated applies an authoritative snapshot for the current match.
func (that *Machine) StateUpdated(update protocol.StateUpdate) {
	log := that.logger.With("method", "StateUpdated")

	if !that.matchReady {
		log.Debug("snapshot before match start dropped", "view", that.view)
		return
	}

	switch that.view {
	case entity.ViewPlaying, entity.ViewRoomPendingHost, entity.ViewRoomPendingGuest:
	default:
		log.Debug("snapshot ignored", "view", that.view)
		return
	}

	if update.MatchID != "" && that.session.MatchID != "" && update.MatchID != that.session.MatchID {
		log.Debug("snapshot for another match dropped", "match", update.MatchID)
		return
	}

	if err := that.game.CanAdvanceTo(update.State); err != nil {
		log.Warn("snapshot dropped", "error", err)
		return
	}

	that.game = update.State

	if that.game.IsFinished() {
		that.finish()
		return
	}

	that.turn.Reset()
	that.syncTimer()
}

// JoinFailed returns to the lobby with the server's message. The coordinator has
// already released the connection.
func (that *Machine) JoinFailed(message string) {
	that.logger.Info("join failed", "message", message)

	that.clearMatch()
	that.lastError = message
	that.transition(entity.ViewLobby)
}

// OpponentLeft ends the match in favour of the local participant.
func (that *Machine) OpponentLeft() {
	log := that.logger.With("method", "OpponentLeft")

	if !that.session.InMatch() {
		log.Debug("no match to end")
		return
	}

	switch that.view {
	case entity.ViewPlaying, entity.ViewRoomPendingHost, entity.ViewRoomPendingGuest:
	default:
		log.Debug("opponent left ignored", "view", that.view)
		return
	}

	that.coordinator.Teardown()

	that.game.Finished = true
	that.game.Winner = entity.WinnerOf(that.session.Symbol)

	that.finish()
	that.session.MatchID = ""
}

// ConnectionLost handles an unsolicited close. It acts on the view current right now.
func (that *Machine) ConnectionLost(err error) {
	log := that.logger.With("method", "ConnectionLost", "view", that.view)

	switch that.view {
	case entity.ViewPlaying, entity.ViewSearching, entity.ViewRoomPendingHost, entity.ViewRoomPendingGuest:
		log.Warn("connection lost", "error", err)

		that.clearMatch()
		that.lastError = MsgConnectionLost
		that.transition(entity.ViewLobby)
	default:
		log.Debug("connection closed", "error", err)
	}
}

func (that *Machine) finish() {
	if !that.transition(entity.ViewResult) {
		return
	}

	that.turn.Stop()
	that.recordResult()
}

func (that *Machine) recordResult() {
	if that.recorded || that.stats == nil {
		return
	}
	that.recorded = true

	result := entity.MatchResult{
		MatchID:  that.session.MatchID,
		Nickname: that.session.Nickname,
		Opponent: that.opponent,
		Outcome:  entity.OutcomeFor(that.game.Winner, that.session.Symbol),
	}
	if result.Nickname == "" {
		result.Nickname = entity.DefaultNickname
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := that.stats.RecordResult(ctx, result); err != nil {
		that.logger.Warn("failed to record result", "error", err, "outcome", result.Outcome)
	}
}

func (that *Machine) onTurnTimeout() {
	if that.view != entity.ViewPlaying || that.game.IsFinished() {
		return
	}

	that.logger.Debug("turn timed out")

	if !that.coordinator.Send(protocol.Timeout{}) {
		that.logger.Debug("timeout dropped, connection not open")
	}
}

// transition moves the view if the table allows it and keeps the timer in line with the result.
func (that *Machine) transition(to entity.ViewState) bool {
	if err := checkTransition(that.view, to); err != nil {
		that.logger.Warn("transition rejected", "error", err)
		return false
	}

	if that.view != to {
		that.logger.Debug("view changed", "from", that.view, "to", to)
	}

	that.view = to
	that.syncTimer()

	return true
}

func (that *Machine) syncTimer() {
	if that.view != entity.ViewPlaying || that.game.IsFinished() {
		that.turn.Stop()
	}
}

// clearMatch forgets everything bound to the current match or attempt. The nickname stays.
func (that *Machine) clearMatch() {
	that.session.ClearMatch()
	that.game = entity.NewGameState()
	that.opponent = ""
	that.mode = ""
	that.roomCode = ""
	that.matchReady = false
	that.recorded = false
	that.lastError = ""
	that.turn.Stop()
}
