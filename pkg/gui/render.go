package gui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/termchess/pkg/engine"
	"github.com/rivo/tview"
)

const (
	numOfSquaresInRow = 8
	// The table has one extra column for ranks and one extra row for files.
	TableSize = numOfSquaresInRow + 1
)

var glyphs = [2][6]string{
	{"♙", "♘", "♗", "♖", "♕", "♔"},
	{"♟", "♞", "♝", "♜", "♛", "♚"},
}

// Glyph returns the unicode figure for p, or a blank for an empty square.
func Glyph(p *engine.Piece) string {
	if p == nil {
		return " "
	}
	return glyphs[p.Side()][p.Kind()]
}

// CellToSquare converts a table cell to a board square. ok is false for the
// label cells.
func CellToSquare(row, col int, flip bool) (sq engine.Coord, ok bool) {
	if row < 0 || row >= numOfSquaresInRow || col < 1 || col > numOfSquaresInRow {
		return engine.NoCoord, false
	}
	x, y := col-1, numOfSquaresInRow-1-row
	if flip {
		x, y = numOfSquaresInRow-1-x, numOfSquaresInRow-1-y
	}
	return engine.Sq(x, y), true
}

// SquareToCell is the inverse of CellToSquare.
func SquareToCell(sq engine.Coord, flip bool) (row, col int) {
	x, y := sq.X, sq.Y
	if flip {
		x, y = numOfSquaresInRow-1-x, numOfSquaresInRow-1-y
	}
	return numOfSquaresInRow - 1 - y, x + 1
}

// squareBg returns the theme's color corresponding to the square
func squareBg(gs GameState, sq engine.Coord) tcell.Color {
	b := gs.Board
	t := gs.Theme

	if b.CheckState() != engine.NoCheck && sq == b.KingPos(b.Turn()) {
		return t.SquareCheck
	}
	if held, ok := b.Held(); ok && held == sq {
		return t.SquareHeld
	}
	if gs.isHint(sq) {
		return t.SquareHint
	}
	if last, ok := b.LastMove(); ok && (last.Src == sq || last.Dest == sq) {
		return t.SquareHigh
	}
	if (sq.X+sq.Y)%2 == 0 {
		return t.SquareDark
	}
	return t.SquareLight
}

func pieceColor(p *engine.Piece, t Theme) tcell.Color {
	if p != nil && p.Side() == engine.Black {
		return t.Black
	}
	return t.White
}

// RenderTable fills table with the position in gs.
func RenderTable(table *tview.Table, gs GameState) {
	t := gs.Theme
	for row := 0; row < numOfSquaresInRow; row++ {
		sq, _ := CellToSquare(row, 1, gs.Flip)
		table.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("%d", sq.Y+1)).
			SetTextColor(t.Rank).
			SetAlign(tview.AlignCenter).
			SetSelectable(false))

		for col := 1; col <= numOfSquaresInRow; col++ {
			sq, _ := CellToSquare(row, col, gs.Flip)
			p := gs.Board.Piece(sq)
			table.SetCell(row, col, tview.NewTableCell(" "+Glyph(p)+" ").
				SetTextColor(pieceColor(p, t)).
				SetBackgroundColor(squareBg(gs, sq)).
				SetAlign(tview.AlignCenter))
		}
	}

	table.SetCell(numOfSquaresInRow, 0, tview.NewTableCell("").SetSelectable(false))
	for col := 1; col <= numOfSquaresInRow; col++ {
		sq, _ := CellToSquare(0, col, gs.Flip)
		table.SetCell(numOfSquaresInRow, col, tview.NewTableCell(string(rune('a'+sq.X))).
			SetTextColor(t.File).
			SetAlign(tview.AlignCenter).
			SetSelectable(false))
	}
}

// StatusText describes whose turn it is, or how the game ended.
func StatusText(b *engine.Board) string {
	if b.GameIsOver() {
		switch b.Status() {
		case engine.ReasonCheckmate:
			return fmt.Sprintf("Checkmate. %s wins", b.Turn().Other())
		case engine.ReasonStalemate:
			return "Stalemate. Draw"
		case engine.ReasonAgreement:
			return "Draw by agreement"
		default:
			return fmt.Sprintf("Game over by %s", b.Status())
		}
	}
	if b.AwaitingPromotion() {
		return fmt.Sprintf("%s is promoting", b.Turn())
	}
	text := fmt.Sprintf("%s to move", b.Turn())
	if b.CheckState() != engine.NoCheck {
		text += ", check!"
	}
	return text
}
