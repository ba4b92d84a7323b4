package engine

// Perft counts the leaf positions reachable in depth plies. Every
// promotion choice counts as its own move.
func Perft(b *Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range b.AllLegalMoves() {
		promos := []PromoType{PromoNone}
		if m.Type == Promotion {
			promos = PromoTypes
		}
		for _, promo := range promos {
			if depth == 1 {
				nodes++
				continue
			}
			c := b.Clone()
			c.play(m, promo)
			nodes += Perft(c, depth-1)
		}
	}
	return nodes
}

// Divide returns the perft count below each root move, keyed by UCI text.
func Divide(b *Board, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth < 1 {
		return out
	}
	for _, m := range b.AllLegalMoves() {
		promos := []PromoType{PromoNone}
		if m.Type == Promotion {
			promos = PromoTypes
		}
		for _, promo := range promos {
			c := b.Clone()
			c.play(m, promo)
			m.Promo = promo
			out[m.String()] = Perft(c, depth-1)
		}
	}
	return out
}
