package engine

import (
	"fmt"
	"strings"
)

type MoveType uint8

const (
	Normal MoveType = iota
	DoublePush
	EnPassant
	Castle
	Promotion
)

func (t MoveType) String() string {
	switch t {
	case Normal:
		return "Normal"
	case DoublePush:
		return "DoublePush"
	case EnPassant:
		return "EnPassant"
	case Castle:
		return "Castle"
	case Promotion:
		return "Promotion"
	default:
		return "Unknown MoveType"
	}
}

// PromoType is the piece a pawn turns into.
type PromoType uint8

const (
	PromoNone PromoType = iota
	PromoQueen
	PromoRook
	PromoBishop
	PromoKnight
)

// PromoTypes lists the choices offered to a promoting player.
var PromoTypes = []PromoType{PromoQueen, PromoRook, PromoBishop, PromoKnight}

func (p PromoType) Kind() Kind {
	switch p {
	case PromoQueen:
		return Queen
	case PromoRook:
		return Rook
	case PromoBishop:
		return Bishop
	case PromoKnight:
		return Knight
	}
	return NoKind
}

func (p PromoType) String() string {
	if p == PromoNone {
		return "None"
	}
	return p.Kind().String()
}

// letter is the UCI suffix for the promotion.
func (p PromoType) letter() string {
	switch p {
	case PromoQueen:
		return "q"
	case PromoRook:
		return "r"
	case PromoBishop:
		return "b"
	case PromoKnight:
		return "n"
	}
	return ""
}

// ParsePromoType accepts UCI letters (q, r, b, n) and kind names.
func ParsePromoType(s string) (PromoType, error) {
	switch strings.ToLower(s) {
	case "q", "queen":
		return PromoQueen, nil
	case "r", "rook":
		return PromoRook, nil
	case "b", "bishop":
		return PromoBishop, nil
	case "n", "knight":
		return PromoKnight, nil
	case "", "none":
		return PromoNone, nil
	}
	return PromoNone, fmt.Errorf("bad promotion %q", s)
}

// Move records a single ply. RightsToRevoke is filled in by move generation
// so applying a move never needs to inspect the rooks again.
type Move struct {
	Src              Coord
	Dest             Coord
	Type             MoveType
	Promo            PromoType
	RightsToRevoke   CastleRights
	WasCapture       bool
	WasOpponentsMove bool
}

// NoMove is the zero-value placeholder used before any move was made.
var NoMove = Move{Src: NoCoord, Dest: NoCoord}

// String renders the move in UCI form, e.g. "e2e4" or "a7a8q".
func (m Move) String() string {
	return m.Src.String() + m.Dest.String() + m.Promo.letter()
}

// ParseMove parses UCI move text. Only Src, Dest and Promo are filled in;
// the board resolves the rest with FindMove.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("bad move %q", s)
	}
	src, err := ParseCoord(s[0:2])
	if err != nil {
		return NoMove, err
	}
	dest, err := ParseCoord(s[2:4])
	if err != nil {
		return NoMove, err
	}
	if src == NoCoord || dest == NoCoord {
		return NoMove, fmt.Errorf("bad move %q", s)
	}
	promo, err := ParsePromoType(s[4:])
	if err != nil {
		return NoMove, err
	}
	return Move{Src: src, Dest: dest, Promo: promo}, nil
}

// captureSquare is the square whose occupant the move removes.
func (m Move) captureSquare() Coord {
	if m.Type == EnPassant {
		return Coord{m.Dest.X, m.Src.Y}
	}
	return m.Dest
}
