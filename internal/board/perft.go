package board

// Perft counts the leaf positions reachable in exactly depth plies. Positions
// where the side to move has no legal move contribute nothing.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		next := *b
		if _, err := next.Apply(m.String()); err != nil {
			continue
		}
		nodes += Perft(&next, depth-1)
	}
	return nodes
}
