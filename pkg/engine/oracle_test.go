package engine

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var oracleFENs = []string{
	StartFEN,
	kiwipeteFEN,
	position3FEN,
	position4FEN,
	position5FEN,
	"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
	"8/8/8/K2pP2r/8/8/8/4k3 w - d6 0 1",
	"4k3/P7/8/8/8/8/8/4K3 w - - 0 1",
}

func notnilGame(t *testing.T, fen string) *chess.Game {
	t.Helper()
	opt, err := chess.FEN(fen)
	require.NoError(t, err)
	return chess.NewGame(opt, chess.UseNotation(chess.UCINotation{}))
}

func notnilMoves(g *chess.Game) []string {
	var out []string
	for _, m := range g.ValidMoves() {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

func sortedLegalUCI(b *Board) []string {
	out := legalUCI(b)
	sort.Strings(out)
	return out
}

// TestLegalMovesMatchNotnil plays seeded random games and compares the full
// legal move list with github.com/notnil/chess after every ply.
func TestLegalMovesMatchNotnil(t *testing.T) {
	for i, fen := range oracleFENs {
		for seed := int64(1); seed <= 4; seed++ {
			rng := rand.New(rand.NewSource(seed*100 + int64(i)))
			b, err := NewBoard(WithFEN(fen))
			require.NoError(t, err)
			g := notnilGame(t, fen)

			for ply := 0; ply < 60 && !b.GameIsOver() && g.Outcome() == chess.NoOutcome; ply++ {
				ours := sortedLegalUCI(b)
				require.Equal(t, notnilMoves(g), ours, "fen %s seed %d ply %d: %s", fen, seed, ply, b.FEN())

				uci := ours[rng.Intn(len(ours))]
				m, err := ParseMove(uci)
				require.NoError(t, err)
				require.NoError(t, b.ApplyRemoteMove(m, m.Promo), uci)
				require.NoError(t, g.MoveStr(uci), uci)
				assertInvariants(t, b)
			}
			if b.GameIsOver() {
				assert.Empty(t, g.ValidMoves())
				switch b.Status() {
				case ReasonCheckmate:
					assert.Equal(t, chess.Checkmate, g.Method())
				case ReasonStalemate:
					assert.Equal(t, chess.Stalemate, g.Method())
				}
			}
		}
	}
}

// TestMoveCountsMatchDragontooth compares legal move counts with
// github.com/dylhunn/dragontoothmg one ply below each reference position.
func TestMoveCountsMatchDragontooth(t *testing.T) {
	for _, fen := range oracleFENs {
		b, err := NewBoard(WithFEN(fen))
		require.NoError(t, err)
		dt := dragontoothmg.ParseFen(fen)
		require.Len(t, legalUCI(b), len(dt.GenerateLegalMoves()), fen)

		for _, m := range b.AllLegalMoves() {
			if m.Type == Promotion {
				continue
			}
			c := b.Clone()
			c.play(m, PromoNone)
			dt := dragontoothmg.ParseFen(c.FEN())
			assert.Len(t, legalUCI(c), len(dt.GenerateLegalMoves()), "after %s: %s", m, c.FEN())
		}
	}
}
