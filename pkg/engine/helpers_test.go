package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder keeps every event it sees, in order.
type recorder struct {
	events []Event
}

func (r *recorder) OnEvent(e Event) { r.events = append(r.events, e) }

func (r *recorder) gameOvers() []GameOver {
	var out []GameOver
	for _, e := range r.events {
		if g, ok := e.(GameOver); ok {
			out = append(out, g)
		}
	}
	return out
}

func newTestBoard(t *testing.T, fen string) (*Board, *recorder) {
	t.Helper()
	rec := &recorder{}
	b, err := NewBoard(WithFEN(fen), WithSubscriber(rec))
	require.NoError(t, err)
	assertInvariants(t, b)
	return b, rec
}

func sq(t *testing.T, s string) Coord {
	t.Helper()
	c, err := ParseCoord(s)
	require.NoError(t, err)
	return c
}

// play makes a move through PickUp / PutDown and, for a fifth promotion
// letter, EndPromotion.
func play(t *testing.T, b *Board, uci string) {
	t.Helper()
	m, err := ParseMove(uci)
	require.NoError(t, err)
	require.NoError(t, b.PickUp(m.Src), "pick up %s", uci)
	require.NoError(t, b.PutDown(m.Dest), "put down %s", uci)
	if m.Promo != PromoNone {
		require.True(t, b.AwaitingPromotion())
		require.NoError(t, b.EndPromotion(m.Promo))
	}
	assertInvariants(t, b)
}

func playAll(t *testing.T, b *Board, moves string) {
	t.Helper()
	for _, m := range strings.Fields(moves) {
		play(t, b, m)
	}
}

func legalUCI(b *Board) []string {
	var out []string
	for _, m := range b.AllLegalMoves() {
		if m.Type == Promotion {
			for _, p := range PromoTypes {
				m.Promo = p
				out = append(out, m.String())
			}
			continue
		}
		out = append(out, m.String())
	}
	return out
}

func destinations(moves []Move) []string {
	var out []string
	for _, m := range moves {
		out = append(out, m.Dest.String())
	}
	return out
}

// assertInvariants checks the properties that hold between commands.
func assertInvariants(t *testing.T, b *Board) {
	t.Helper()
	if b.AwaitingPromotion() {
		return
	}

	for _, s := range []Side{White, Black} {
		kings := 0
		for _, p := range b.Pieces(s) {
			if p.Kind() == King {
				kings++
				assert.Equal(t, p.Square(), b.KingPos(s), "%s king position", s)
			}
		}
		assert.Equal(t, 1, kings, "%s kings", s)
	}

	for _, p := range b.Pieces(b.Turn()) {
		pseudo := p.PseudoLegalMoves()
		for _, m := range p.LegalMoves() {
			assert.Contains(t, pseudo, m, "legal move %s of %s", m, p)
		}
	}
	for _, p := range b.Pieces(b.Turn().Other()) {
		assert.Empty(t, p.LegalMoves(), "%s should have no legal moves", p)
	}

	assert.False(t, b.IsAttacked(b.KingPos(b.Turn().Other()), b.Turn()),
		"%s left its king attacked", b.Turn().Other())

	if last, ok := b.LastMove(); ok {
		assert.Equal(t, last.Type == DoublePush, b.EnPassantTarget() != NoCoord,
			"en passant target %s after %s", b.EnPassantTarget(), last)
	}

	for _, s := range []Side{White, Black} {
		for _, w := range []Wing{KingSide, QueenSide} {
			if !b.CastleRights().Has(RightFor(s, w)) {
				continue
			}
			rank := s.homeRank()
			king := b.Piece(Coord{4, rank})
			rook := b.Piece(Coord{w.rookFile(), rank})
			if assert.NotNil(t, king) && assert.NotNil(t, rook) {
				assert.Equal(t, King, king.Kind())
				assert.Equal(t, Rook, rook.Kind())
				assert.Equal(t, s, rook.Side())
				assert.False(t, rook.HasMoved())
			}
		}
	}
}
