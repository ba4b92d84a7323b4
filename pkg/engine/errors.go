package engine

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedFEN        = errors.New("malformed FEN")
	ErrInvalidPickUp       = errors.New("no piece of the side to move on that square")
	ErrNoPieceHeld         = errors.New("no piece held")
	ErrRejectedMove        = errors.New("move is not legal")
	ErrPromotionOutOfOrder = errors.New("awaiting promotion choice")
	ErrNotPromoting        = errors.New("no promotion in progress")
	ErrInvalidPromotion    = errors.New("invalid promotion piece")
	ErrGameOver            = errors.New("game is over")
)

// IntegrityError is raised with panic when the board reaches a state the
// rules make impossible. There is no recovery from it.
type IntegrityError struct {
	Msg string
}

func (e IntegrityError) Error() string {
	return "engine integrity violation: " + e.Msg
}

func integrityf(format string, args ...interface{}) {
	panic(IntegrityError{Msg: fmt.Sprintf(format, args...)})
}
