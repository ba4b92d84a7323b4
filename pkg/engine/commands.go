package engine

import "fmt"

// PickUp latches the piece on sq if it belongs to the side to move (and to
// the local user, when one is set).
func (b *Board) PickUp(sq Coord) error {
	if b.state == awaitingPromotion {
		return ErrPromotionOutOfOrder
	}
	if b.GameIsOver() {
		return ErrGameOver
	}
	p := b.at(sq)
	if p == nil || p.side != b.turn || (b.userSide.valid() && p.side != b.userSide) {
		return fmt.Errorf("pick up %s: %w", sq, ErrInvalidPickUp)
	}
	b.held = p
	b.state = holding
	return nil
}

// Release drops the latched piece without moving it.
func (b *Board) Release() {
	if b.state == holding {
		b.state = idle
	}
	b.held = nil
}

// PutDown tries to move the latched piece to sq. The piece is released
// whether or not the move is accepted. A promotion stops half way and
// publishes PromotionBegin; EndPromotion finishes the ply.
func (b *Board) PutDown(sq Coord) error {
	if b.state == awaitingPromotion {
		return ErrPromotionOutOfOrder
	}
	p := b.held
	b.Release()
	if p == nil {
		return ErrNoPieceHeld
	}
	if !sq.OnBoard() {
		return fmt.Errorf("put down off board: %w", ErrRejectedMove)
	}
	m, ok := b.FindMove(p.square, sq)
	if !ok {
		return fmt.Errorf("%s to %s: %w", p, sq, ErrRejectedMove)
	}

	b.movePiece(m)
	if m.Type == Promotion {
		b.state = awaitingPromotion
		b.events.Publish(PromotionBegin{Side: p.side, Square: sq})
		return nil
	}
	b.postMoveUpdate(PromoNone)
	return nil
}

// EndPromotion completes a ply paused by PutDown.
func (b *Board) EndPromotion(promo PromoType) error {
	if b.state != awaitingPromotion {
		return ErrNotPromoting
	}
	if promo.Kind() == NoKind {
		return ErrInvalidPromotion
	}
	b.state = idle
	b.postMoveUpdate(promo)
	return nil
}

// ApplyRemoteMove plays the opponent's move through the full pipeline. Only
// Src and Dest of m are used to find the legal move; promo picks the
// promotion piece and falls back to m.Promo.
func (b *Board) ApplyRemoteMove(m Move, promo PromoType) error {
	if b.state == awaitingPromotion {
		return ErrPromotionOutOfOrder
	}
	if b.GameIsOver() {
		return ErrGameOver
	}
	resolved, ok := b.FindMove(m.Src, m.Dest)
	if !ok {
		return fmt.Errorf("remote move %s: %w", m, ErrRejectedMove)
	}
	if resolved.Type == Promotion {
		if promo == PromoNone {
			promo = m.Promo
		}
		if promo.Kind() == NoKind {
			return fmt.Errorf("remote move %s: %w", m, ErrInvalidPromotion)
		}
	}
	b.Release()
	resolved.WasOpponentsMove = true
	b.movePiece(resolved)
	b.postMoveUpdate(promo)
	return nil
}

// ResetBoard reloads the standard position and clears all state, including
// the user side. Subscribers are kept.
func (b *Board) ResetBoard() {
	if err := b.LoadFEN(StartFEN); err != nil {
		integrityf("start position does not load: %v", err)
	}
	b.userSide = InvalidSide
}

func (b *Board) SetUserSide(s Side) {
	b.userSide = s
}

// EndGame ends the game for a reason decided outside the board, such as a
// resignation. It publishes GameOver.
func (b *Board) EndGame(reason Reason) error {
	if b.GameIsOver() {
		return ErrGameOver
	}
	if reason == ReasonNone {
		return fmt.Errorf("end game without a reason")
	}
	b.Release()
	if b.state == awaitingPromotion {
		b.state = idle
	}
	b.status = reason
	b.events.Publish(GameOver{Reason: reason})
	return nil
}

// play applies a legal move without publishing PromotionBegin. Used by perft.
func (b *Board) play(m Move, promo PromoType) {
	b.movePiece(m)
	b.postMoveUpdate(promo)
}
