package gui

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/termchess/pkg/engine"
)

const (
	svgSquare = 48
	svgMargin = 20
)

func cssColor(c tcell.Color) string {
	v := c.Hex()
	if v < 0 {
		return "none"
	}
	return fmt.Sprintf("#%06x", v)
}

// WriteSVG draws the position in gs as a standalone SVG document.
func WriteSVG(w io.Writer, gs GameState) {
	size := svgMargin + numOfSquaresInRow*svgSquare
	canvas := svg.New(w)
	canvas.Start(size, size)
	canvas.Rect(0, 0, size, size, "fill:white")

	for y := 0; y < numOfSquaresInRow; y++ {
		for x := 0; x < numOfSquaresInRow; x++ {
			sq := engine.Sq(x, y)
			row, col := SquareToCell(sq, gs.Flip)
			px := svgMargin + (col-1)*svgSquare
			py := row * svgSquare
			canvas.Rect(px, py, svgSquare, svgSquare, "fill:"+cssColor(squareBg(gs, sq)))
			if p := gs.Board.Piece(sq); p != nil {
				canvas.Text(px+svgSquare/2, py+svgSquare*3/4, Glyph(p),
					"text-anchor:middle;font-size:36px;fill:black")
			}
		}
	}

	label := "text-anchor:middle;font-size:12px;fill:" + cssColor(gs.Theme.Rank)
	for i := 0; i < numOfSquaresInRow; i++ {
		sq, _ := CellToSquare(i, i+1, gs.Flip)
		canvas.Text(svgMargin/2, i*svgSquare+svgSquare/2, fmt.Sprintf("%d", sq.Y+1), label)
		canvas.Text(svgMargin+i*svgSquare+svgSquare/2, size-svgMargin/4, string(rune('a'+sq.X)), label)
	}
	canvas.Title(StatusText(gs.Board))
	canvas.End()
}
