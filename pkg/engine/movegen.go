package engine

type offset struct{ dx, dy int }

var (
	orthogonalDirs = []offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonalDirs   = []offset{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	kingOffsets    = append(append([]offset(nil), orthogonalDirs...), diagonalDirs...)
	knightOffsets  = []offset{
		{1, 2}, {2, 1}, {2, -1}, {1, -2},
		{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	}
)

// addMove appends a pseudo-legal move and precomputes the castling rights it revokes.
func (p *Piece) addMove(b *Board, dest Coord, typ MoveType) {
	m := Move{Src: p.square, Dest: dest, Type: typ}
	switch p.kind {
	case King:
		m.RightsToRevoke = BothRights(p.side)
	case Rook:
		m.RightsToRevoke = p.castleRight()
	}
	if target := b.at(m.captureSquare()); target != nil {
		m.WasCapture = true
		m.RightsToRevoke |= target.castleRight()
	}
	p.pseudo = append(p.pseudo, m)
}

// slideMoves walks each direction until the ray leaves the board or hits a piece.
// A ray that hits the enemy king marks one more square so the king cannot
// retreat along the line of the check.
func (p *Piece) slideMoves(b *Board, dirs []offset) {
	for _, d := range dirs {
		for sq := p.square.Add(d.dx, d.dy); sq.OnBoard(); sq = sq.Add(d.dx, d.dy) {
			p.attacked = append(p.attacked, sq)
			target := b.at(sq)
			if target == nil {
				p.addMove(b, sq, Normal)
				continue
			}
			if target.side != p.side {
				p.addMove(b, sq, Normal)
				if target.kind == King {
					if behind := sq.Add(d.dx, d.dy); behind.OnBoard() {
						p.attacked = append(p.attacked, behind)
					}
				}
			}
			break
		}
	}
}

// stepMoves handles the single-step movers: knight and king.
func (p *Piece) stepMoves(b *Board, offsets []offset) {
	for _, o := range offsets {
		sq := p.square.Add(o.dx, o.dy)
		if !sq.OnBoard() {
			continue
		}
		p.attacked = append(p.attacked, sq)
		if target := b.at(sq); target == nil || target.side != p.side {
			p.addMove(b, sq, Normal)
		}
	}
}

func (p *Piece) castleMoves(b *Board) {
	rank := p.side.homeRank()
	if p.square != (Coord{4, rank}) {
		return
	}
	for _, w := range []Wing{KingSide, QueenSide} {
		if !b.castling.Has(RightFor(p.side, w)) {
			continue
		}
		rook := b.at(Coord{w.rookFile(), rank})
		if rook == nil || rook.kind != Rook || rook.side != p.side {
			continue
		}
		lo, hi := 5, 6
		if w == QueenSide {
			lo, hi = 1, 3
		}
		empty := true
		for x := lo; x <= hi; x++ {
			if b.at(Coord{x, rank}) != nil {
				empty = false
				break
			}
		}
		if !empty {
			continue
		}
		p.addMove(b, castleDest(p.side, w), Castle)
	}
}

// castleDest is where the king lands when castling on a wing.
func castleDest(s Side, w Wing) Coord {
	if w == QueenSide {
		return Coord{2, s.homeRank()}
	}
	return Coord{6, s.homeRank()}
}

func (p *Piece) pawnMoves(b *Board) {
	dir := p.side.forward()
	last := p.side.promotionRank()

	pushType := func(dest Coord, typ MoveType) MoveType {
		if dest.Y == last {
			return Promotion
		}
		return typ
	}

	one := p.square.Add(0, dir)
	if one.OnBoard() && b.at(one) == nil {
		p.addMove(b, one, pushType(one, Normal))
		two := one.Add(0, dir)
		if p.square.Y == p.side.pawnRank() && two.OnBoard() && b.at(two) == nil {
			p.addMove(b, two, DoublePush)
		}
	}

	for _, dx := range []int{-1, 1} {
		sq := p.square.Add(dx, dir)
		if !sq.OnBoard() {
			continue
		}
		p.attacked = append(p.attacked, sq)
		target := b.at(sq)
		switch {
		case target != nil && target.side != p.side:
			p.addMove(b, sq, pushType(sq, Normal))
		case target == nil && sq == b.enPassant:
			victim := b.at(Coord{sq.X, p.square.Y})
			if victim != nil && victim.kind == Pawn && victim.side != p.side {
				p.addMove(b, sq, EnPassant)
			}
		}
	}
}
