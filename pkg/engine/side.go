package engine

// Side is one of the two players.
type Side int8

const (
	White Side = iota
	Black
	InvalidSide
)

func (s Side) String() string {
	switch s {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "Invalid"
	}
}

func (s Side) Other() Side {
	switch s {
	case White:
		return Black
	case Black:
		return White
	}
	return InvalidSide
}

// forward is the rank direction pawns of this side advance in.
func (s Side) forward() int {
	if s == Black {
		return -1
	}
	return 1
}

// homeRank is the rank the side's king and rooks start on.
func (s Side) homeRank() int {
	if s == Black {
		return numRanks - 1
	}
	return 0
}

func (s Side) pawnRank() int {
	if s == Black {
		return numRanks - 2
	}
	return 1
}

func (s Side) promotionRank() int {
	if s == Black {
		return 0
	}
	return numRanks - 1
}

func (s Side) valid() bool { return s == White || s == Black }
