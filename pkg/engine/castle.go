package engine

import "strings"

// Wing is the side of the board a rook started on.
type Wing int8

const (
	Neither Wing = iota
	QueenSide
	KingSide
)

func (w Wing) String() string {
	switch w {
	case QueenSide:
		return "QueenSide"
	case KingSide:
		return "KingSide"
	}
	return "Neither"
}

// rookFile is the file the wing's rook starts on.
func (w Wing) rookFile() int {
	if w == QueenSide {
		return 0
	}
	return numFiles - 1
}

// CastleRights is a set of the four castling rights.
type CastleRights uint8

const (
	WhiteShort CastleRights = 1 << iota
	WhiteLong
	BlackShort
	BlackLong

	NoCastleRights  CastleRights = 0
	AllCastleRights              = WhiteShort | WhiteLong | BlackShort | BlackLong
)

// RightFor returns the single right for a side and wing.
func RightFor(s Side, w Wing) CastleRights {
	switch {
	case s == White && w == KingSide:
		return WhiteShort
	case s == White && w == QueenSide:
		return WhiteLong
	case s == Black && w == KingSide:
		return BlackShort
	case s == Black && w == QueenSide:
		return BlackLong
	}
	return NoCastleRights
}

// BothRights returns the mask of both wings for a side.
func BothRights(s Side) CastleRights {
	return RightFor(s, KingSide) | RightFor(s, QueenSide)
}

// Has reports whether every right in r is present.
func (c CastleRights) Has(r CastleRights) bool {
	return r != NoCastleRights && c&r == r
}

func (c CastleRights) HasAny(s Side) bool {
	return c&BothRights(s) != 0
}

func (c *CastleRights) Add(r CastleRights) {
	*c |= r
}

// Revoke clears every right in mask.
func (c *CastleRights) Revoke(mask CastleRights) {
	*c &^= mask
}

func (c *CastleRights) RevokeBoth(s Side) {
	c.Revoke(BothRights(s))
}

// String renders the rights the way FEN does, e.g. "KQkq" or "-".
func (c CastleRights) String() string {
	if c == NoCastleRights {
		return "-"
	}
	var b strings.Builder
	for _, r := range []struct {
		right CastleRights
		char  byte
	}{{WhiteShort, 'K'}, {WhiteLong, 'Q'}, {BlackShort, 'k'}, {BlackLong, 'q'}} {
		if c.Has(r.right) {
			b.WriteByte(r.char)
		}
	}
	return b.String()
}
