package engine

import "golang.org/x/exp/slices"

// updatePin records the enemy slider pinning p to its king, if any.
func (p *Piece) updatePin(b *Board) {
	p.pinnedBy = NoCoord
	king := b.kingPos[p.side]
	if p.kind == King || !king.OnBoard() {
		return
	}

	var sliders [2]Kind
	switch {
	case SameLine(king, p.square):
		sliders = [2]Kind{Rook, Queen}
	case SameDiagonal(king, p.square):
		sliders = [2]Kind{Bishop, Queen}
	default:
		return
	}

	dx, dy := sign(p.square.X-king.X), sign(p.square.Y-king.Y)
	passed := false
	for sq := king.Add(dx, dy); sq.OnBoard(); sq = sq.Add(dx, dy) {
		other := b.at(sq)
		if other == nil {
			continue
		}
		if !passed {
			if other != p {
				return
			}
			passed = true
			continue
		}
		if other.side != p.side && (other.kind == sliders[0] || other.kind == sliders[1]) {
			p.pinnedBy = sq
		}
		return
	}
}

// filterLegalMoves produces the legal moves of a non-king piece from its
// pseudo-legal moves, the pin state and the board check state.
func (p *Piece) filterLegalMoves(b *Board) {
	king := b.kingPos[p.side]
	switch b.check {
	case DoubleCheck:
		return
	case SingleCheck:
		if p.Pinned() {
			return
		}
		blocks := between(king, b.checker)
		for _, m := range p.pseudo {
			if m.captureSquare() != b.checker && !slices.Contains(blocks, m.Dest) {
				continue
			}
			if m.Type == EnPassant && b.enPassantExposesKing(m) {
				continue
			}
			p.legal = append(p.legal, m)
		}
	default:
		for _, m := range p.pseudo {
			if p.Pinned() && !collinear(king, p.pinnedBy, m.Dest) {
				continue
			}
			if m.Type == EnPassant && b.enPassantExposesKing(m) {
				continue
			}
			p.legal = append(p.legal, m)
		}
	}
}

// enPassantExposesKing reports whether taking en passant would empty the
// rank between the king and an enemy rook or queen.
func (b *Board) enPassantExposesKing(m Move) bool {
	mover := b.at(m.Src)
	king := b.kingPos[mover.side]
	if king.Y != m.Src.Y {
		return false
	}
	victim := m.captureSquare()
	dx := sign(m.Src.X - king.X)
	for sq := king.Add(dx, 0); sq.OnBoard(); sq = sq.Add(dx, 0) {
		if sq == m.Src || sq == victim {
			continue
		}
		other := b.at(sq)
		if other == nil {
			continue
		}
		return other.side != mover.side && (other.kind == Rook || other.kind == Queen)
	}
	return false
}

// kingLegalMoves drops destinations the other side attacks, and castling
// while in check or through an attacked square.
func (p *Piece) kingLegalMoves(b *Board) {
	attacked := b.attackMap(p.side.Other())
	for _, m := range p.pseudo {
		if attacked[m.Dest.Index()] {
			continue
		}
		if m.Type == Castle {
			if b.check != NoCheck {
				continue
			}
			pass := Coord{(m.Src.X + m.Dest.X) / 2, m.Src.Y}
			if attacked[pass.Index()] {
				continue
			}
		}
		p.legal = append(p.legal, m)
	}
}
