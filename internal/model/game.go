package model

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/benbeisheim/greedychess-backend/internal/chess"
	"github.com/benbeisheim/greedychess-backend/internal/ws"
)

var (
	ErrGameFull         = errors.New("game is full")
	ErrNotParticipant   = errors.New("player is not in this game")
	ErrInvalidMode      = errors.New("invalid game mode")
	ErrAlreadyConnected = errors.New("connection already exists")
	ErrNotAuthorized    = errors.New("not authorized to join this game")
	errAgentModeNoAgent = errors.New("agent mode requires an agent")
)

// Mode selects who plays the second seat.
type Mode string

const (
	ModeTwoPlayer Mode = "twoPlayer"
	ModeAgent     Mode = "agent"
)

// ParseMode accepts the client spellings of a mode. Empty means two players.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", string(ModeTwoPlayer), "2p":
		return ModeTwoPlayer, nil
	case string(ModeAgent), "ai":
		return ModeAgent, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Agent picks moves for the computer seat.
type Agent interface {
	Name() string
	ChooseMove(b chess.Board, side chess.Side) (chess.Move, bool)
}

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type client struct {
	conn Conn
	mu   sync.Mutex
}

func (c *client) send(msg ws.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// The connections for a specific game
type GameConnections struct {
	clients map[string]*client // playerID -> connection
	mu      sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		clients: make(map[string]*client),
	}
}

type GameOptions struct {
	Mode Mode
	// Start is the opening position. Nil means the standard start.
	Start *chess.GameState
	// Agent and AgentSide are used in agent mode only.
	Agent     Agent
	AgentSide chess.Side
	Logger    *log.Logger
}

// The Game struct focuses on a single game's state and its observers
type Game struct {
	ID   string
	Mode Mode

	mu        sync.Mutex
	state     chess.GameState
	seats     [2]string // indexed by chess.Side
	agent     Agent
	agentSide chess.Side
	lastMove  *chess.Move
	history   []Ply
	stalled   bool

	connections *GameConnections
	logger      *log.Logger
}

// GameView is the state sent to clients.
type GameView struct {
	ID          string       `json:"gameId"`
	Mode        Mode         `json:"mode"`
	Board       chess.Board  `json:"board"`
	ToMove      chess.Side   `json:"toMove"`
	Status      chess.Status `json:"status"`
	Checkmated  *chess.Side  `json:"checkmated"`
	InCheck     bool         `json:"inCheck"`
	Stalled     bool         `json:"stalled"`
	FEN         string       `json:"fen"`
	LastMove    *chess.Move  `json:"lastMove"`
	MoveHistory []Ply        `json:"moveHistory"`
	Players     Players      `json:"players"`
}

func NewGame(id string, opts GameOptions) (*Game, error) {
	if opts.Mode == "" {
		opts.Mode = ModeTwoPlayer
	}
	if opts.Mode == ModeAgent && opts.Agent == nil {
		return nil, errAgentModeNoAgent
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	g := &Game{
		ID:          id,
		Mode:        opts.Mode,
		state:       chess.NewGame(),
		connections: NewGameConnections(),
		logger:      opts.Logger.With("game", id),
	}
	if opts.Start != nil {
		g.state = *opts.Start
	}
	if g.Mode == ModeAgent {
		g.agent = opts.Agent
		g.agentSide = opts.AgentSide
	}

	// An agent playing the side to move opens the game.
	g.agentReply()
	return g, nil
}

// AddPlayer seats playerID and returns its color. A player already seated
// gets its existing color back.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if side, ok := g.sideOf(playerID); ok {
		return ColorOf(side), nil
	}

	for _, side := range g.humanSides() {
		if g.seats[side] == "" {
			g.seats[side] = playerID
			g.logger.Info("player joined", "player", playerID, "color", side)
			return ColorOf(side), nil
		}
	}
	return "", ErrGameFull
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.sideOf(playerID)
	return ok
}

// MakeMove applies a move for playerID. In agent mode the agent answers
// before MakeMove returns.
func (g *Game) MakeMove(playerID string, m chess.Move) error {
	if err := g.makeMove(playerID, m); err != nil {
		return err
	}
	g.broadcastState()
	return nil
}

func (g *Game) makeMove(playerID string, m chess.Move) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	side, ok := g.sideOf(playerID)
	if !ok {
		return ErrNotParticipant
	}
	if g.state.Over() {
		return chess.ErrGameOver
	}
	if side != g.state.ToMove {
		return chess.ErrNotYourTurn
	}

	if err := g.apply(m, false); err != nil {
		return err
	}
	g.agentReply()
	return nil
}

// apply plays m on the current state and records it. Callers hold g.mu.
func (g *Game) apply(m chess.Move, byAgent bool) error {
	before := g.state.Board
	next, err := chess.ApplySelectedMove(g.state, m)
	if err != nil {
		return err
	}
	g.state = next
	g.lastMove = &m
	g.history = append(g.history, newPly(before, m, byAgent))
	g.logger.Debug("move applied", "move", m, "agent", byAgent, "toMove", next.ToMove)
	if next.Over() {
		g.logger.Info("checkmate", "mated", next.Checkmated)
	}
	return nil
}

// agentReply lets the agent move while it holds the side to move. Callers
// hold g.mu, except during construction.
func (g *Game) agentReply() {
	if g.agent == nil || g.state.Over() || g.state.ToMove != g.agentSide {
		return
	}
	m, ok := g.agent.ChooseMove(g.state.Board, g.agentSide)
	if !ok {
		g.stalled = true
		g.logger.Warn("agent has no move", "agent", g.agent.Name(), "side", g.agentSide)
		return
	}
	if err := g.apply(m, true); err != nil {
		g.stalled = true
		g.logger.Error("agent move rejected", "agent", g.agent.Name(), "move", m, "err", err)
	}
}

// Reset starts over from the standard position. Only seated players may reset.
func (g *Game) Reset(playerID string) error {
	if err := g.reset(playerID); err != nil {
		return err
	}
	g.broadcastState()
	return nil
}

func (g *Game) reset(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.sideOf(playerID); !ok {
		return ErrNotParticipant
	}
	g.state = chess.NewGame()
	g.lastMove = nil
	g.history = nil
	g.stalled = false
	g.logger.Info("game reset", "player", playerID)
	g.agentReply()
	return nil
}

// LegalMoves lists where the piece on sq may go. It is empty for an empty
// square, an opponent's piece, or a finished game.
func (g *Game) LegalMoves(sq chess.Square) ([]chess.Square, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.LegalMoves(sq)
}

// Suggest asks a for a move for the side to move without applying it.
func (g *Game) Suggest(a Agent) (chess.Move, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Over() {
		return chess.Move{}, false
	}
	return a.ChooseMove(g.state.Board, g.state.ToMove)
}

func (g *Game) State() chess.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Game) View() GameView {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.view()
}

func (g *Game) view() GameView {
	v := GameView{
		ID:          g.ID,
		Mode:        g.Mode,
		Board:       g.state.Board,
		ToMove:      g.state.ToMove,
		Status:      g.state.Status,
		InCheck:     g.state.InCheck(),
		Stalled:     g.stalled,
		FEN:         chess.EncodeFEN(g.state),
		MoveHistory: slices.Clone(g.history),
		Players: Players{
			White: g.clientPlayer(chess.White),
			Black: g.clientPlayer(chess.Black),
		},
	}
	if v.MoveHistory == nil {
		v.MoveHistory = []Ply{}
	}
	if g.state.Over() {
		mated := g.state.Checkmated
		v.Checkmated = &mated
	}
	if g.lastMove != nil {
		last := *g.lastMove
		v.LastMove = &last
	}
	return v
}

func (g *Game) clientPlayer(side chess.Side) ClientPlayer {
	p := ClientPlayer{ID: g.seats[side], Color: ColorOf(side)}
	if g.agent != nil && side == g.agentSide {
		p.Agent = g.agent.Name()
	}
	return p
}

func (g *Game) sideOf(playerID string) (chess.Side, bool) {
	if playerID == "" {
		return chess.White, false
	}
	for _, side := range g.humanSides() {
		if g.seats[side] == playerID {
			return side, true
		}
	}
	return chess.White, false
}

func (g *Game) humanSides() []chess.Side {
	if g.agent != nil {
		return []chess.Side{g.agentSide.Opposite()}
	}
	return []chess.Side{chess.White, chess.Black}
}

func (g *Game) hasOpenSeat() bool {
	for _, side := range g.humanSides() {
		if g.seats[side] == "" {
			return true
		}
	}
	return false
}

// RegisterConnection attaches conn for playerID and sends it the current
// state. Seated players and, while a seat is open, anyone else may connect.
func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.mu.Lock()
	_, seated := g.sideOf(playerID)
	authorized := seated || g.hasOpenSeat()
	g.mu.Unlock()

	if !authorized {
		return ErrNotAuthorized
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.clients[playerID]; exists {
		g.connections.mu.Unlock()
		return ErrAlreadyConnected
	}
	c := &client{conn: conn}
	g.connections.clients[playerID] = c
	g.connections.mu.Unlock()
	g.logger.Debug("connection registered", "player", playerID)

	msg, err := ws.NewMessage(ws.MessageTypeGameState, g.View())
	if err != nil {
		return err
	}
	if err := c.send(msg); err != nil {
		g.UnregisterConnection(playerID, conn)
		return err
	}
	return nil
}

// UnregisterConnection detaches conn if it is still the one held for playerID.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if c, exists := g.connections.clients[playerID]; exists && c.conn == conn {
		delete(g.connections.clients, playerID)
		g.logger.Debug("connection unregistered", "player", playerID)
	}
}

// SendTo writes msg to playerID's connection, if any.
func (g *Game) SendTo(playerID string, msg ws.Message) error {
	g.connections.mu.RLock()
	c, ok := g.connections.clients[playerID]
	g.connections.mu.RUnlock()
	if !ok {
		return nil
	}
	return c.send(msg)
}

func (g *Game) ConnectionCount() int {
	g.connections.mu.RLock()
	defer g.connections.mu.RUnlock()
	return len(g.connections.clients)
}

// broadcastState sends the current view to every connection and drops the
// ones that fail.
func (g *Game) broadcastState() {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, g.View())
	if err != nil {
		g.logger.Error("failed to encode state", "err", err)
		return
	}

	g.connections.mu.RLock()
	active := make(map[string]*client, len(g.connections.clients))
	for playerID, c := range g.connections.clients {
		active[playerID] = c
	}
	g.connections.mu.RUnlock()

	for playerID, c := range active {
		if err := c.send(msg); err != nil {
			g.logger.Warn("failed to send state", "player", playerID, "err", err)
			g.UnregisterConnection(playerID, c.conn)
			c.conn.Close()
		}
	}
}
