// Package peer is an in-process game server that speaks the client wire protocol.
// It pairs quick-match players, hosts private rooms and enforces the game rules.
package peer

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/game"
	"github.com/rocketscienceinc/tictactoe-client/internal/protocol"
)

const roomNotFound = "Room not found"

type player struct {
	conn *websocket.Conn
	name string

	writeMu sync.Mutex
}

func (that *player) send(logger *slog.Logger, event protocol.Event) {
	data, err := protocol.EncodeEvent(event)
	if err != nil {
		logger.Error("failed to encode event", "error", err)
		return
	}

	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err = that.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		logger.Debug("failed to send event", "error", err)
	}
}

type match struct {
	id    string
	state entity.GameState
	x, o  *player
}

func (that *match) symbolOf(p *player) entity.Symbol {
	switch p {
	case that.x:
		return entity.PlayerX
	case that.o:
		return entity.PlayerO
	default:
		return entity.EmptyCell
	}
}

func (that *match) other(p *player) *player {
	if p == that.x {
		return that.o
	}
	return that.x
}

type Server struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader
	http     *httptest.Server

	mu      sync.Mutex
	waiting *player
	rooms   map[string]*player
	matches map[*player]*match
}

// Start serves the protocol on a local test listener.
func Start(logger *slog.Logger) *Server {
	server := &Server{
		logger:  logger.With("component", "peer"),
		rooms:   make(map[string]*player),
		matches: make(map[*player]*match),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", server.handleConnection)
	server.http = httptest.NewServer(mux)

	return server
}

// Endpoint is the websocket URL clients dial.
func (that *Server) Endpoint() string {
	return "ws" + strings.TrimPrefix(that.http.URL, "http") + "/ws"
}

func (that *Server) Close() {
	that.http.CloseClientConnections()
	that.http.Close()
}

func (that *Server) OpenRooms() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.rooms)
}

func (that *Server) handleConnection(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleConnection")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("failed to upgrade", "error", err)
		return
	}
	defer conn.Close()

	_, data, err := conn.ReadMessage()
	if err != nil {
		return
	}

	intent, err := protocol.DecodeIntent(data)
	if err != nil {
		log.Debug("bad opening frame", "error", err)
		return
	}

	request, ok := intent.(protocol.PairingRequest)
	if !ok {
		log.Debug("opening frame is not a pairing request")
		return
	}

	self := &player{conn: conn, name: entity.NormalizeNickname(request.Nickname)}

	if !that.pair(self, request) {
		return
	}

	defer that.disconnect(self)

	for {
		_, data, err = conn.ReadMessage()
		if err != nil {
			return
		}

		intent, err = protocol.DecodeIntent(data)
		if err != nil {
			log.Debug("dropping frame", "error", err)
			continue
		}

		that.handleIntent(self, intent)
	}
}

// pair registers p according to the request. It reports false when the connection must end.
func (that *Server) pair(p *player, request protocol.PairingRequest) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	switch request.Mode {
	case entity.ModeCreate:
		code := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
		that.rooms[code] = p
		p.send(that.logger, protocol.Waiting{RoomCode: code})
	case entity.ModeJoin:
		host, ok := that.rooms[request.RoomCode]
		if !ok {
			p.send(that.logger, protocol.JoinError{Message: roomNotFound})
			return false
		}

		delete(that.rooms, request.RoomCode)
		that.startMatch(host, p)
	default:
		if that.waiting == nil {
			that.waiting = p
			p.send(that.logger, protocol.Waiting{})
			return true
		}

		host := that.waiting
		that.waiting = nil
		that.startMatch(host, p)
	}

	return true
}

func (that *Server) startMatch(x, o *player) {
	m := &match{
		id:    "match_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8],
		state: entity.NewGameState(),
		x:     x,
		o:     o,
	}
	that.matches[x] = m
	that.matches[o] = m

	x.send(that.logger, protocol.MatchStart{MatchID: m.id, State: m.state, YouAre: entity.PlayerX, OpponentName: o.name})
	o.send(that.logger, protocol.MatchStart{MatchID: m.id, State: m.state, YouAre: entity.PlayerO, OpponentName: x.name})

	that.logger.Info("match started", "match", m.id, "x", x.name, "o", o.name)
}

func (that *Server) handleIntent(p *player, intent protocol.Intent) {
	that.mu.Lock()
	defer that.mu.Unlock()

	m, ok := that.matches[p]
	if !ok {
		return
	}

	symbol := m.symbolOf(p)

	var err error
	switch msg := intent.(type) {
	case protocol.Move:
		err = game.MakeMove(&m.state, symbol, msg.Index)
	case protocol.Timeout:
		err = game.PassTurn(&m.state, symbol)
	case protocol.Leave:
		that.forfeit(p, m)
		return
	default:
		return
	}

	if err != nil {
		that.logger.Debug("intent rejected", "match", m.id, "error", err)
		return
	}

	update := protocol.StateUpdate{MatchID: m.id, State: m.state}
	m.x.send(that.logger, update)
	m.o.send(that.logger, update)

	if m.state.Finished {
		delete(that.matches, m.x)
		delete(that.matches, m.o)
	}
}

// forfeit ends m against p and tells the opponent.
func (that *Server) forfeit(p *player, m *match) {
	game.Forfeit(&m.state, m.symbolOf(p))

	delete(that.matches, m.x)
	delete(that.matches, m.o)

	m.other(p).send(that.logger, protocol.OpponentLeft{})
}

func (that *Server) disconnect(p *player) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.waiting == p {
		that.waiting = nil
	}

	for code, host := range that.rooms {
		if host == p {
			delete(that.rooms, code)
		}
	}

	if m, ok := that.matches[p]; ok {
		that.forfeit(p, m)
	}
}
