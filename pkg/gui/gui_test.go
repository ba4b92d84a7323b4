package gui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/qnkhuat/termchess/pkg/engine"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoard(t *testing.T, fen string) *engine.Board {
	t.Helper()
	b, err := engine.NewBoard(engine.WithFEN(fen))
	require.NoError(t, err)
	return b
}

func TestCellSquareMapping(t *testing.T) {
	sq, ok := CellToSquare(7, 1, false)
	require.True(t, ok)
	assert.Equal(t, "a1", sq.String())

	sq, ok = CellToSquare(7, 1, true)
	require.True(t, ok)
	assert.Equal(t, "h8", sq.String())

	_, ok = CellToSquare(8, 3, false)
	assert.False(t, ok)
	_, ok = CellToSquare(2, 0, false)
	assert.False(t, ok)

	for _, flip := range []bool{false, true} {
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				row, col := SquareToCell(engine.Sq(x, y), flip)
				back, ok := CellToSquare(row, col, flip)
				require.True(t, ok)
				assert.Equal(t, engine.Sq(x, y), back)
			}
		}
	}
}

func TestRenderTable(t *testing.T) {
	b := newBoard(t, engine.StartFEN)
	table := tview.NewTable()
	RenderTable(table, NewGameState(b, engine.White, ThemeBasic))

	assert.Equal(t, TableSize, table.GetRowCount())
	assert.Equal(t, TableSize, table.GetColumnCount())
	assert.Equal(t, " ♔ ", table.GetCell(7, 5).Text)
	assert.Equal(t, " ♚ ", table.GetCell(0, 5).Text)
	assert.Equal(t, "1", table.GetCell(7, 0).Text)
	assert.Equal(t, "a", table.GetCell(8, 1).Text)

	RenderTable(table, NewGameState(b, engine.Black, ThemeBasic))
	assert.Equal(t, " ♚ ", table.GetCell(7, 4).Text)
	assert.Equal(t, "8", table.GetCell(7, 0).Text)
	assert.Equal(t, "h", table.GetCell(8, 1).Text)
}

func TestRenderHighlights(t *testing.T) {
	b := newBoard(t, engine.StartFEN)
	e2, _ := engine.ParseCoord("e2")
	require.NoError(t, b.PickUp(e2))

	gs := NewGameState(b, engine.White, ThemeBasic).WithHeldHints()
	assert.Len(t, gs.Hints, 2)

	table := tview.NewTable()
	RenderTable(table, gs)
	assert.Equal(t, ThemeBasic.SquareHeld, table.GetCell(SquareToCell(e2, false)).BackgroundColor)
	e4, _ := engine.ParseCoord("e4")
	assert.Equal(t, ThemeBasic.SquareHint, table.GetCell(SquareToCell(e4, false)).BackgroundColor)
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "White to move", StatusText(newBoard(t, engine.StartFEN)))
	assert.Equal(t, "Checkmate. Black wins",
		StatusText(newBoard(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")))
	assert.Equal(t, "Stalemate. Draw", StatusText(newBoard(t, "7k/8/8/8/8/8/2q5/K7 w - - 0 1")))
	assert.Equal(t, "Black to move, check!", StatusText(newBoard(t, "4k3/8/8/8/8/8/8/4R1K1 b - - 0 1")))
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	WriteSVG(&buf, NewGameState(newBoard(t, engine.StartFEN), engine.White, ThemeBasic))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "</svg>")
	assert.Contains(t, out, "♔")
	assert.Equal(t, 64, strings.Count(out, "<rect")-1)
}

func TestThemes(t *testing.T) {
	hex := ThemeNight.Hex()
	hex.Name = "custom"
	theme, err := ImportThemes("custom", []ThemeHex{hex})
	require.NoError(t, err)
	assert.Equal(t, ThemeNight.SquareDark.Hex(), theme.SquareDark.Hex())
	assert.Equal(t, "custom", theme.Name)

	theme, err = ImportThemes("basic", nil)
	require.NoError(t, err)
	assert.Equal(t, ThemeBasic, theme)

	_, err = ImportThemes("missing", nil)
	assert.Error(t, err)

	themes, err := ReadThemes(strings.NewReader(`[{"name":"x","squareDark":"#ff0000"}]`))
	require.NoError(t, err)
	require.Len(t, themes, 1)
	assert.Equal(t, "x", themes[0].Name)
}
