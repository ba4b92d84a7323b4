package gui

import (
	"github.com/qnkhuat/termchess/pkg/engine"
)

// GameState encapsulates everything needed to draw a board
type GameState struct {
	Board *engine.Board
	Theme Theme
	Flip  bool           // Black at the bottom
	Hints []engine.Coord // Legal destinations of the held piece
}

// NewGameState draws b from side's point of view.
func NewGameState(b *engine.Board, side engine.Side, t Theme) GameState {
	return GameState{Board: b, Theme: t, Flip: side == engine.Black}
}

// WithHeldHints fills Hints from the piece the user is holding.
func (gs GameState) WithHeldHints() GameState {
	gs.Hints = nil
	if sq, ok := gs.Board.Held(); ok {
		for _, m := range gs.Board.LegalMovesFrom(sq) {
			gs.Hints = append(gs.Hints, m.Dest)
		}
	}
	return gs
}

func (gs GameState) isHint(c engine.Coord) bool {
	for _, h := range gs.Hints {
		if h == c {
			return true
		}
	}
	return false
}
