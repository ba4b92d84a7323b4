package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	kiwipeteFEN  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	position3FEN = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	position4FEN = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	position5FEN = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
)

func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		nodes []uint64
	}{
		{"start", StartFEN, []uint64{20, 400, 8902}},
		{"kiwipete", kiwipeteFEN, []uint64{48, 2039}},
		{"position3", position3FEN, []uint64{14, 191, 2812}},
		{"position4", position4FEN, []uint64{6, 264, 9467}},
		{"position5", position5FEN, []uint64{44, 1486}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBoard(WithFEN(tt.fen))
			require.NoError(t, err)
			for depth, want := range tt.nodes {
				assert.Equal(t, want, Perft(b, depth+1), "depth %d", depth+1)
			}
		})
	}
}

func TestPerftLeavesBoardUntouched(t *testing.T) {
	b, err := NewBoard(WithFEN(kiwipeteFEN))
	require.NoError(t, err)
	Perft(b, 2)
	assert.Equal(t, kiwipeteFEN, b.FEN())
}

func TestDivide(t *testing.T) {
	b, err := NewBoard(WithFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1"))
	require.NoError(t, err)
	div := Divide(b, 1)
	for _, m := range []string{"a7a8q", "a7a8r", "a7a8b", "a7a8n"} {
		assert.Equal(t, uint64(1), div[m], m)
	}
	assert.Len(t, div, 9)

	var total uint64
	for _, n := range Divide(b, 2) {
		total += n
	}
	assert.Equal(t, Perft(b, 2), total)
}

func BenchmarkPerftStart(b *testing.B) {
	board, err := NewBoard()
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Perft(board, 3)
	}
}
