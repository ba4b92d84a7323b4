package pkg

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/qnkhuat/termchess/pkg/engine"
)

const MessageQueueSize = 20

// Match is one game between two players plus any viewers. It keeps the
// authoritative board: moves are validated here before being relayed.
type Match struct {
	Id      string
	Players [2]*Player
	Viewers []*Player
	Board   *engine.Board
	In      chan MessageTransport

	lastActivity time.Time
	drawOffer    PlayerColor
	newGameOffer PlayerColor
	nextId       int
	mover        *Player
	loser        PlayerColor
	done         chan struct{}
	sync.Mutex
}

func NewMatch(id string) *Match {
	board, err := BoardFromFEN(engine.StartFEN)
	if err != nil {
		log.Panic(err)
	}
	m := &Match{
		Id:           id,
		Board:        board,
		In:           make(chan MessageTransport, MessageQueueSize),
		lastActivity: time.Now(),
		drawOffer:    Unknown,
		newGameOffer: Unknown,
		loser:        Unknown,
		nextId:       1,
		done:         make(chan struct{}),
	}
	board.Subscribe(engine.SubscriberFunc(m.onEvent))
	return m
}

// Run handles incoming messages until Close is called.
func (m *Match) Run() {
	for {
		select {
		case msg := <-m.In:
			m.Handle(msg)
		case <-m.done:
			return
		}
	}
}

func (m *Match) Close() {
	m.Lock()
	defer m.Unlock()
	select {
	case <-m.done:
		return
	default:
		close(m.done)
	}
	for _, p := range m.all() {
		p.Disconnect()
		close(p.Out)
	}
	m.Players = [2]*Player{}
	m.Viewers = nil
}

func (m *Match) all() []*Player {
	var out []*Player
	for _, p := range m.Players {
		if p != nil {
			out = append(out, p)
		}
	}
	return append(out, m.Viewers...)
}

func (m *Match) player(id int) *Player {
	for _, p := range m.all() {
		if p.Id == id {
			return p
		}
	}
	return nil
}

// Waiting reports whether the match still needs a second player.
func (m *Match) Waiting() bool {
	m.Lock()
	defer m.Unlock()
	return m.Players[0] == nil || m.Players[1] == nil
}

func (m *Match) IdleSince() time.Time {
	m.Lock()
	defer m.Unlock()
	return m.lastActivity
}

// AddPlayer seats p as White, then Black, then as a viewer, and sends it the
// current position.
func (m *Match) AddPlayer(p *Player) {
	m.Lock()
	defer m.Unlock()

	switch {
	case m.Players[0] == nil:
		p.Color = White
		m.Players[0] = p
	case m.Players[1] == nil:
		p.Color = Black
		m.Players[1] = p
	default:
		p.Color = Viewer
		m.Viewers = append(m.Viewers, p)
	}
	p.Id = m.nextId
	m.nextId++
	m.lastActivity = time.Now()

	p.Send(MessageConnect{
		Color:   p.Color,
		Fen:     m.Board.FEN(),
		IsTurn:  ColorOf(m.Board.Turn()) == p.Color,
		MatchId: m.Id,
	})
	m.broadcast(MessageChat{
		Name:    "Server",
		Message: fmt.Sprintf("%s has joined as %s", p.Name, p.Color),
	}, p)

	log.Printf("Match %s: added %s as %s", m.Id, p.Name, p.Color)
}

// Handle processes one message from a player.
func (m *Match) Handle(t MessageTransport) {
	m.Lock()
	defer m.Unlock()

	select {
	case <-m.done:
		return
	default:
	}

	p := m.player(t.PlayerId)
	if p == nil {
		log.Printf("Match %s: message from unknown player %d", m.Id, t.PlayerId)
		return
	}
	msg, err := Unwrap(t)
	if err != nil {
		log.Printf("Match %s: %v", m.Id, err)
		return
	}
	m.lastActivity = time.Now()

	switch msg := msg.(type) {
	case *MessageMove:
		m.handleMove(p, msg.Move)
	case *MessageAction:
		m.handleAction(p, msg.Action)
	case *MessageChat:
		msg.Name = p.Name
		m.broadcast(*msg, nil)
	case *MessageLeave:
		m.handleLeave(p)
	default:
		log.Printf("Match %s: unexpected %s from %s", m.Id, msg.Type(), p.Name)
	}
}

func (m *Match) handleMove(p *Player, text string) {
	if p.Color.Side() != m.Board.Turn() {
		log.Printf("Match %s: %s moved out of turn", m.Id, p.Name)
		m.resync(p)
		return
	}
	mv, err := engine.ParseMove(text)
	if err == nil {
		m.mover = p
		err = m.Board.ApplyRemoteMove(mv, mv.Promo)
		m.mover = nil
	}
	if err != nil {
		log.Printf("Match %s: rejected %q from %s: %v", m.Id, text, p.Name, err)
		m.resync(p)
	}
}

func (m *Match) handleAction(p *Player, a Action) {
	if p.Color == Viewer {
		return
	}
	switch a {
	case ActionResignYes:
		m.endGame(engine.ReasonResignation, p.Color)
	case ActionDrawOffer:
		m.drawOffer = p.Color
		m.sendOpponent(p, MessageAction{Action: ActionDrawPrompt})
	case ActionDrawAccept:
		if m.drawOffer != Unknown && m.drawOffer != p.Color {
			m.endGame(engine.ReasonAgreement, Unknown)
		}
		m.drawOffer = Unknown
	case ActionDrawReject:
		m.drawOffer = Unknown
		m.sendOpponent(p, MessageAction{Action: ActionDrawReject})
	case ActionNewGameOffer:
		m.newGameOffer = p.Color
		m.sendOpponent(p, MessageAction{Action: ActionNewGamePrompt})
	case ActionNewGameAccept:
		if m.newGameOffer != Unknown && m.newGameOffer != p.Color {
			m.newGame()
		}
		m.newGameOffer = Unknown
	case ActionNewGameReject:
		m.newGameOffer = Unknown
		m.sendOpponent(p, MessageAction{Action: ActionNewGameReject})
	default:
		log.Printf("Match %s: ignoring action %q", m.Id, a)
	}
}

// handleLeave frees the seat. Leaving a running game abandons it; an empty
// match starts over.
func (m *Match) handleLeave(p *Player) {
	log.Printf("Match %s: %s left", m.Id, p.Name)
	switch p.Color {
	case White, Black:
		m.Players[p.Color] = nil
		switch {
		case m.Players[1-p.Color] == nil:
			m.Board.ResetBoard()
		case !m.Board.GameIsOver():
			m.endGame(engine.ReasonAbandonment, p.Color)
		}
	default:
		for i, v := range m.Viewers {
			if v == p {
				m.Viewers = append(m.Viewers[:i], m.Viewers[i+1:]...)
				break
			}
		}
	}
	close(p.Out)
}

// endGame ends the game for a reason the board cannot see for itself.
// loser is Unknown for a draw.
func (m *Match) endGame(reason engine.Reason, loser PlayerColor) {
	m.loser = loser
	defer func() { m.loser = Unknown }()
	if err := m.Board.EndGame(reason); err != nil && !errors.Is(err, engine.ErrGameOver) {
		log.Printf("Match %s: %v", m.Id, err)
	}
}

func (m *Match) newGame() {
	m.Board.ResetBoard()
	m.drawOffer = Unknown
	for _, p := range m.all() {
		p.Send(MessageConnect{
			Color:   p.Color,
			Fen:     m.Board.FEN(),
			IsTurn:  p.Color == White,
			MatchId: m.Id,
		})
	}
}

func (m *Match) resync(p *Player) {
	p.Send(MessageGame{Fen: m.Board.FEN(), IsTurn: ColorOf(m.Board.Turn()) == p.Color})
}

// onEvent relays board events. It runs while the match lock is held.
func (m *Match) onEvent(e engine.Event) {
	switch e := e.(type) {
	case engine.MoveCompleted:
		m.broadcast(MessageMove{Move: e.Move.String()}, m.mover)
	case engine.GameOver:
		m.broadcast(MessageGameOver{Reason: string(e.Reason), Winner: m.winner(e.Reason)}, nil)
		log.Printf("Match %s: game over by %s", m.Id, e.Reason)
	}
}

// winner works out who won. After checkmate the side to move lost.
func (m *Match) winner(reason engine.Reason) PlayerColor {
	switch {
	case reason == engine.ReasonCheckmate:
		return ColorOf(m.Board.Turn().Other())
	case m.loser == White:
		return Black
	case m.loser == Black:
		return White
	}
	return Unknown
}

func (m *Match) broadcast(msg MessageInterface, except *Player) {
	for _, p := range m.all() {
		if p != except {
			p.Send(msg)
		}
	}
}

func (m *Match) sendOpponent(p *Player, msg MessageInterface) {
	for _, o := range m.Players {
		if o != nil && o != p {
			o.Send(msg)
		}
	}
}
