package engine

import "unicode"

// Kind is the closed set of piece kinds.
type Kind uint8

const (
	Pawn Kind = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoKind
)

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	}
	return "None"
}

// Letter is the FEN letter of the kind for White.
func (k Kind) Letter() byte {
	return "PNBRQK?"[k]
}

func kindFromLetter(r rune) (Kind, Side, bool) {
	side := White
	if unicode.IsLower(r) {
		side = Black
	}
	switch unicode.ToUpper(r) {
	case 'P':
		return Pawn, side, true
	case 'N':
		return Knight, side, true
	case 'B':
		return Bishop, side, true
	case 'R':
		return Rook, side, true
	case 'Q':
		return Queen, side, true
	case 'K':
		return King, side, true
	}
	return NoKind, InvalidSide, false
}

// Piece is a piece on the board along with its cached move lists.
// The lists are only valid between commands: pseudo-legal moves and
// attacked squares for every piece, legal moves and pin info only for
// the side to move.
type Piece struct {
	kind   Kind
	side   Side
	square Coord

	pseudo   []Move
	legal    []Move
	attacked []Coord
	pinnedBy Coord

	// Rooks only: castling rights bookkeeping.
	hasMoved bool
	wing     Wing
}

func newPiece(kind Kind, side Side, sq Coord) *Piece {
	return &Piece{
		kind:     kind,
		side:     side,
		square:   sq,
		pinnedBy: NoCoord,
		hasMoved: true,
		wing:     Neither,
	}
}

func (p *Piece) Kind() Kind { return p.kind }
func (p *Piece) Side() Side { return p.side }
func (p *Piece) Square() Coord { return p.square }
func (p *Piece) PinnedBy() Coord { return p.pinnedBy }
func (p *Piece) Pinned() bool { return p.pinnedBy != NoCoord }
func (p *Piece) HasMoved() bool { return p.hasMoved }
func (p *Piece) Wing() Wing { return p.wing }

// LegalMoves returns the fully legal moves. Empty for the side not to move.
func (p *Piece) LegalMoves() []Move {
	return append([]Move(nil), p.legal...)
}

func (p *Piece) PseudoLegalMoves() []Move {
	return append([]Move(nil), p.pseudo...)
}

func (p *Piece) AttackedSquares() []Coord {
	return append([]Coord(nil), p.attacked...)
}

// Letter is the FEN letter, upper case for White.
func (p *Piece) Letter() byte {
	l := p.kind.Letter()
	if p.side == Black {
		l = byte(unicode.ToLower(rune(l)))
	}
	return l
}

func (p *Piece) String() string {
	return p.side.String() + " " + p.kind.String() + " " + p.square.String()
}

// castleRight is the right this rook still guards, if any.
func (p *Piece) castleRight() CastleRights {
	if p.kind != Rook || p.hasMoved || p.wing == Neither {
		return NoCastleRights
	}
	return RightFor(p.side, p.wing)
}

func (p *Piece) clone() *Piece {
	c := *p
	c.pseudo = append([]Move(nil), p.pseudo...)
	c.legal = append([]Move(nil), p.legal...)
	c.attacked = append([]Coord(nil), p.attacked...)
	return &c
}

func (p *Piece) updatePseudoLegalAndAttacked(b *Board) {
	p.pseudo = p.pseudo[:0]
	p.attacked = p.attacked[:0]
	switch p.kind {
	case Pawn:
		p.pawnMoves(b)
	case Knight:
		p.stepMoves(b, knightOffsets)
	case Bishop:
		p.slideMoves(b, diagonalDirs)
	case Rook:
		p.slideMoves(b, orthogonalDirs)
	case Queen:
		p.slideMoves(b, diagonalDirs)
		p.slideMoves(b, orthogonalDirs)
	case King:
		p.stepMoves(b, kingOffsets)
		p.castleMoves(b)
	}
}

func (p *Piece) updateLegalMoves(b *Board) {
	p.legal = p.legal[:0]
	if p.kind == King {
		p.kingLegalMoves(b)
		return
	}
	p.filterLegalMoves(b)
}
