// Package engine implements the chess rules: move generation, pins, check,
// castling, en passant and promotion, driven through a pick-up / put-down
// command surface and an event bus.
package engine

import (
	"io"
	"log"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

type CheckState uint8

const (
	NoCheck CheckState = iota
	SingleCheck
	DoubleCheck
)

func (c CheckState) String() string {
	switch c {
	case SingleCheck:
		return "SingleCheck"
	case DoubleCheck:
		return "DoubleCheck"
	}
	return "NoCheck"
}

// holdState is the pick-up / put-down latch.
type holdState uint8

const (
	idle holdState = iota
	holding
	awaitingPromotion
)

// Board owns the 64 squares and all state derived from them.
type Board struct {
	squares   [numOfSquaresInBoard]*Piece
	turn      Side
	castling  CastleRights
	enPassant Coord
	check     CheckState
	checker   Coord
	kingPos   [2]Coord

	lastCaptured *Piece
	lastMove     Move
	userSide     Side

	halfmove int
	fullmove int

	state  holdState
	held   *Piece
	status Reason

	events *Bus
	logger *log.Logger
}

type Option func(*boardConfig)

type boardConfig struct {
	fen      string
	logger   *log.Logger
	userSide Side
	subs     []Subscriber
}

// WithFEN starts the board from fen instead of the standard position.
func WithFEN(fen string) Option {
	return func(c *boardConfig) { c.fen = fen }
}

// WithLogger sets the logger used for load warnings. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(c *boardConfig) { c.logger = l }
}

func WithUserSide(s Side) Option {
	return func(c *boardConfig) { c.userSide = s }
}

// WithSubscriber subscribes s before the position is loaded, so it also
// sees a GameOver raised by the initial position.
func WithSubscriber(s Subscriber) Option {
	return func(c *boardConfig) { c.subs = append(c.subs, s) }
}

// NewBoard builds a board from the standard position or the WithFEN option.
func NewBoard(opts ...Option) (*Board, error) {
	cfg := boardConfig{
		fen:      StartFEN,
		logger:   log.New(io.Discard, "", 0),
		userSide: InvalidSide,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	b := &Board{
		events:   &Bus{},
		logger:   cfg.logger,
		userSide: InvalidSide,
	}
	b.clear()
	for _, s := range cfg.subs {
		b.events.Subscribe(s)
	}
	if err := b.LoadFEN(cfg.fen); err != nil {
		return nil, err
	}
	b.userSide = cfg.userSide
	return b, nil
}

// clear empties the board and every piece of derived state. The user side,
// logger and subscribers survive.
func (b *Board) clear() {
	b.squares = [numOfSquaresInBoard]*Piece{}
	b.turn = White
	b.castling = NoCastleRights
	b.enPassant = NoCoord
	b.check = NoCheck
	b.checker = NoCoord
	b.kingPos = [2]Coord{NoCoord, NoCoord}
	b.lastCaptured = nil
	b.lastMove = NoMove
	b.halfmove = 0
	b.fullmove = 1
	b.state = idle
	b.held = nil
	b.status = ReasonNone
}

func (b *Board) Events() *Bus { return b.events }

// Subscribe is a shorthand for b.Events().Subscribe.
func (b *Board) Subscribe(s Subscriber) (unsubscribe func()) {
	return b.events.Subscribe(s)
}

func (b *Board) at(c Coord) *Piece {
	if !c.OnBoard() {
		return nil
	}
	return b.squares[c.Index()]
}

// Piece returns the piece on c, or nil.
func (b *Board) Piece(c Coord) *Piece { return b.at(c) }

func (b *Board) Turn() Side                 { return b.turn }
func (b *Board) CastleRights() CastleRights { return b.castling }
func (b *Board) EnPassantTarget() Coord     { return b.enPassant }
func (b *Board) CheckState() CheckState     { return b.check }
func (b *Board) UserSide() Side             { return b.userSide }
func (b *Board) Status() Reason             { return b.status }
func (b *Board) GameIsOver() bool           { return b.status != ReasonNone }
func (b *Board) AwaitingPromotion() bool    { return b.state == awaitingPromotion }
func (b *Board) HalfmoveClock() int         { return b.halfmove }
func (b *Board) FullmoveNumber() int        { return b.fullmove }

// Checker is the square of the checking piece. Only meaningful in SingleCheck.
func (b *Board) Checker() Coord { return b.checker }

func (b *Board) KingPos(s Side) Coord {
	if !s.valid() {
		return NoCoord
	}
	return b.kingPos[s]
}

// LastMove returns the last move made and false when there is none yet.
func (b *Board) LastMove() (Move, bool) {
	return b.lastMove, b.lastMove != NoMove
}

// Held returns the square of the latched piece.
func (b *Board) Held() (Coord, bool) {
	if b.held == nil {
		return NoCoord, false
	}
	return b.held.square, true
}

// Pieces returns every piece of a side in square order.
func (b *Board) Pieces(s Side) []*Piece {
	var out []*Piece
	for _, p := range b.squares {
		if p != nil && p.side == s {
			out = append(out, p)
		}
	}
	return out
}

// LegalMovesFrom returns the legal moves of the piece on c.
func (b *Board) LegalMovesFrom(c Coord) []Move {
	if p := b.at(c); p != nil {
		return p.LegalMoves()
	}
	return nil
}

// AllLegalMoves returns every legal move of the side to move.
func (b *Board) AllLegalMoves() []Move {
	var out []Move
	for _, p := range b.squares {
		if p != nil && p.side == b.turn {
			out = append(out, p.legal...)
		}
	}
	return out
}

// FindMove looks up the legal move from src to dest. The returned record
// carries the move type and the rights it revokes.
func (b *Board) FindMove(src, dest Coord) (Move, bool) {
	p := b.at(src)
	if p == nil || p.side != b.turn {
		return NoMove, false
	}
	for _, m := range p.legal {
		if m.Dest == dest {
			return m, true
		}
	}
	return NoMove, false
}

// attackMap is the union of the squares attacked by a side.
func (b *Board) attackMap(s Side) (out [numOfSquaresInBoard]bool) {
	for _, p := range b.squares {
		if p == nil || p.side != s {
			continue
		}
		for _, sq := range p.attacked {
			out[sq.Index()] = true
		}
	}
	return out
}

// IsAttacked reports whether any piece of side s attacks c.
func (b *Board) IsAttacked(c Coord, s Side) bool {
	if !c.OnBoard() {
		return false
	}
	return b.attackMap(s)[c.Index()]
}

// updateLegalMoves recomputes everything derived from the placement in four
// strict phases: pseudo-legal moves and attacks for all pieces, check state,
// pins for the side to move, legal moves for the side to move.
func (b *Board) updateLegalMoves() {
	for _, p := range b.squares {
		if p != nil {
			p.updatePseudoLegalAndAttacked(b)
		}
	}

	b.updateCheckState()

	for _, p := range b.squares {
		if p == nil {
			continue
		}
		if p.side == b.turn {
			p.updatePin(b)
		} else {
			p.pinnedBy = NoCoord
			p.legal = p.legal[:0]
		}
	}

	for _, p := range b.squares {
		if p != nil && p.side == b.turn {
			p.updateLegalMoves(b)
		}
	}
}

func (b *Board) updateCheckState() {
	b.check = NoCheck
	b.checker = NoCoord
	king := b.kingPos[b.turn]
	if !king.OnBoard() {
		return
	}
	count := 0
	for _, p := range b.squares {
		if p == nil || p.side == b.turn {
			continue
		}
		for _, sq := range p.attacked {
			if sq == king {
				if count == 0 {
					b.checker = p.square
				}
				count++
				break
			}
		}
	}
	switch {
	case count >= 2:
		b.check = DoubleCheck
	case count == 1:
		b.check = SingleCheck
	}
}

// relocate moves the piece on src to dest and returns whatever stood on dest.
func (b *Board) relocate(src, dest Coord) *Piece {
	p := b.at(src)
	if p == nil {
		integrityf("no piece on %s to move to %s", src, dest)
	}
	captured := b.at(dest)
	b.squares[src.Index()] = nil
	b.squares[dest.Index()] = p
	p.square = dest
	if p.kind == Rook {
		p.hasMoved = true
	}
	if p.kind == King {
		b.kingPos[p.side] = dest
	}
	return captured
}

// movePiece captures whatever stands on the destination, moves the piece
// there and records the move.
func (b *Board) movePiece(m Move) {
	if captured := b.relocate(m.Src, m.Dest); captured != nil {
		b.lastCaptured = captured
	}
	b.lastMove = m
}

// capture removes the piece on c into the last captured slot.
func (b *Board) capture(c Coord) {
	p := b.at(c)
	if p == nil {
		integrityf("nothing to capture on %s", c)
	}
	b.squares[c.Index()] = nil
	b.lastCaptured = p
}

func (b *Board) place(p *Piece) {
	b.squares[p.square.Index()] = p
	if p.kind == King {
		b.kingPos[p.side] = p.square
	}
}

// postMoveUpdate finishes a ply after movePiece: special move handling,
// event, turn toggle, recomputation and the game over check, in that order.
func (b *Board) postMoveUpdate(promo PromoType) {
	m := b.lastMove
	mover := b.at(m.Dest)
	if mover == nil {
		integrityf("moved piece missing from %s", m.Dest)
	}
	pawnMove := mover.kind == Pawn

	switch m.Type {
	case DoublePush:
		b.enPassant = Coord{m.Src.X, (m.Src.Y + m.Dest.Y) / 2}
	case EnPassant:
		b.capture(m.captureSquare())
	case Castle:
		rank := m.Dest.Y
		from, to := Coord{7, rank}, Coord{5, rank}
		if m.Dest.X == 2 {
			from, to = Coord{0, rank}, Coord{3, rank}
		}
		rook := b.at(from)
		if rook == nil || rook.kind != Rook || rook.side != mover.side {
			integrityf("castle %s found no rook on %s", m, from)
		}
		b.relocate(from, to)
	case Promotion:
		kind := promo.Kind()
		if kind == NoKind {
			integrityf("promotion %s without a piece choice", m)
		}
		b.squares[m.Dest.Index()] = nil
		b.place(newPiece(kind, mover.side, m.Dest))
		m.Promo = promo
		b.lastMove = m
	}

	b.castling.Revoke(m.RightsToRevoke)
	if m.Type != DoublePush {
		b.enPassant = NoCoord
	}

	if pawnMove || m.WasCapture {
		b.halfmove = 0
	} else {
		b.halfmove++
	}
	if b.turn == Black {
		b.fullmove++
	}

	b.events.Publish(MoveCompleted{Move: m, WasOpponentsMove: m.WasOpponentsMove})

	b.turn = b.turn.Other()
	b.lastCaptured = nil
	b.updateLegalMoves()
	b.checkGameOver()
}

// checkGameOver ends the game when the side to move has no legal moves.
func (b *Board) checkGameOver() {
	if b.status != ReasonNone {
		return
	}
	for _, p := range b.squares {
		if p != nil && p.side == b.turn && len(p.legal) > 0 {
			return
		}
	}
	reason := ReasonStalemate
	if b.check != NoCheck {
		reason = ReasonCheckmate
	}
	b.status = reason
	b.events.Publish(GameOver{Reason: reason})
}

// Clone deep-copies the position. The copy has no subscribers and no
// latched piece.
func (b *Board) Clone() *Board {
	c := *b
	c.events = &Bus{}
	c.held = nil
	if c.state == holding {
		c.state = idle
	}
	c.lastCaptured = nil
	for i, p := range b.squares {
		if p != nil {
			c.squares[i] = p.clone()
		}
	}
	return &c
}
