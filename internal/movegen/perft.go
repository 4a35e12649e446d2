package movegen

import "github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/board"

// Perft counts the leaf nodes of the legal move tree of depth plies, with c to
// move on b. b is not modified.
func Perft(b *board.Board, c board.Color, depth int) uint64 {
	if depth <= 0 {
		return 1
	}

	moves := New(b).GenAllLegalMoves(c)
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		child := b.Clone()
		child.Apply(m)
		nodes += Perft(child, c.Other(), depth-1)
	}
	return nodes
}

// Divide runs Perft below every root move and returns the counts keyed by the
// UCI form of the move. progress, if not nil, is called after each root move.
func Divide(b *board.Board, c board.Color, depth int, progress func(done, total int)) map[string]uint64 {
	moves := New(b).GenAllLegalMoves(c)
	counts := make(map[string]uint64, len(moves))
	for i, m := range moves {
		child := b.Clone()
		child.Apply(m)
		counts[m.String()] = Perft(child, c.Other(), depth-1)
		if progress != nil {
			progress(i+1, len(moves))
		}
	}
	return counts
}
