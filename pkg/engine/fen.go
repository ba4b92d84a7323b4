package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// LoadFEN replaces the position with the one described by fen. Only the
// placement field is required; missing fields default to White to move, no
// castling, no en passant. A wrong number of kings is logged, not returned.
// On error the board is left untouched.
func (b *Board) LoadFEN(fen string) error {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return fmt.Errorf("empty string: %w", ErrMalformedFEN)
	}

	next := &Board{events: b.events, logger: b.logger, userSide: b.userSide}
	next.clear()

	if err := next.parsePlacement(fields[0]); err != nil {
		return err
	}
	if len(fields) > 1 {
		switch fields[1] {
		case "w":
			next.turn = White
		case "b":
			next.turn = Black
		default:
			return fmt.Errorf("side to move %q: %w", fields[1], ErrMalformedFEN)
		}
	}
	if len(fields) > 2 {
		if err := next.parseCastling(fields[2]); err != nil {
			return err
		}
	}
	if len(fields) > 3 {
		if err := next.parseEnPassant(fields[3]); err != nil {
			return err
		}
	}
	counters := []*int{&next.halfmove, &next.fullmove}
	for i := 4; i < len(fields) && i < 6; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil || v < 0 {
			return fmt.Errorf("move counter %q: %w", fields[i], ErrMalformedFEN)
		}
		*counters[i-4] = v
	}

	next.checkKings()

	*b = *next
	b.updateLegalMoves()
	b.checkGameOver()
	return nil
}

func (b *Board) parsePlacement(field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != numRanks {
		return fmt.Errorf("%d ranks in %q: %w", len(ranks), field, ErrMalformedFEN)
	}
	for i, rank := range ranks {
		y := numRanks - 1 - i
		x := 0
		for _, r := range rank {
			if r >= '1' && r <= '8' {
				x += int(r - '0')
				continue
			}
			kind, side, ok := kindFromLetter(r)
			if !ok {
				return fmt.Errorf("piece %q: %w", r, ErrMalformedFEN)
			}
			if x >= numFiles {
				return fmt.Errorf("rank %d too long: %w", y+1, ErrMalformedFEN)
			}
			b.place(newPiece(kind, side, Coord{x, y}))
			x++
		}
		if x != numFiles {
			return fmt.Errorf("rank %d has %d files: %w", y+1, x, ErrMalformedFEN)
		}
	}
	return nil
}

// parseCastling grants each listed right and tags the matching rook with its
// wing. A right whose king or rook is not on its home square is dropped.
func (b *Board) parseCastling(field string) error {
	if field == "-" {
		return nil
	}
	for _, r := range field {
		var side Side
		var wing Wing
		switch r {
		case 'K':
			side, wing = White, KingSide
		case 'Q':
			side, wing = White, QueenSide
		case 'k':
			side, wing = Black, KingSide
		case 'q':
			side, wing = Black, QueenSide
		default:
			return fmt.Errorf("castling %q: %w", field, ErrMalformedFEN)
		}
		rank := side.homeRank()
		king := b.at(Coord{4, rank})
		rook := b.at(Coord{wing.rookFile(), rank})
		if king == nil || king.kind != King || king.side != side ||
			rook == nil || rook.kind != Rook || rook.side != side {
			b.logger.Printf("FEN castling right %c has no king or rook at home, dropped", r)
			continue
		}
		rook.wing = wing
		rook.hasMoved = false
		b.castling.Add(RightFor(side, wing))
	}
	return nil
}

func (b *Board) parseEnPassant(field string) error {
	sq, err := ParseCoord(field)
	if err != nil {
		return fmt.Errorf("en passant %q: %w", field, ErrMalformedFEN)
	}
	if sq == NoCoord {
		return nil
	}
	// The target sits behind a pawn of the side that just moved.
	want := numRanks - 3
	if b.turn == Black {
		want = 2
	}
	if sq.Y != want {
		b.logger.Printf("FEN en passant target %s is not on rank %d, ignored", sq, want+1)
		return nil
	}
	b.enPassant = sq
	return nil
}

// checkKings logs a position without exactly one king per side.
func (b *Board) checkKings() {
	var counts [2]int
	for _, p := range b.squares {
		if p != nil && p.kind == King {
			counts[p.side]++
		}
	}
	for _, s := range []Side{White, Black} {
		if counts[s] != 1 {
			b.logger.Printf("malformed FEN: %d %s kings", counts[s], s)
		}
	}
}

// Placement renders the piece placement field of the position.
func (b *Board) Placement() string {
	var sb strings.Builder
	for y := numRanks - 1; y >= 0; y-- {
		empty := 0
		for x := 0; x < numFiles; x++ {
			p := b.at(Coord{x, y})
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p.Letter())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if y > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// FEN renders all six fields of the position.
func (b *Board) FEN() string {
	turn := "w"
	if b.turn == Black {
		turn = "b"
	}
	return fmt.Sprintf("%s %s %s %s %d %d",
		b.Placement(), turn, b.castling, b.enPassant, b.halfmove, b.fullmove)
}
