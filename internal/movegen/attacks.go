package movegen

import "github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/board"

// attackMap counts, per square, how many pieces of one side attack it.
type attackMap [board.BoardSize]int

// computeAttacks crawls every piece of color by in attack mode.
func computeAttacks(b *board.Board, by board.Color) attackMap {
	var am attackMap
	for i, p := range b.FetchPieces(by) {
		if p.IsEmpty() {
			continue
		}
		targets := crawl(b, board.Square(i), attackMode)
		for targets != 0 {
			am[targets.PopLSB()]++
		}
	}
	return am
}

func (am *attackMap) isAttacked(sq board.Square) bool {
	return sq.IsValid() && am[sq] > 0
}

// squares returns the attacked squares as a set.
func (am *attackMap) squares() board.Bitboard {
	var bb board.Bitboard
	for i, n := range am {
		if n > 0 {
			bb = bb.Set(board.Square(i))
		}
	}
	return bb
}

// underAttack reports whether the king of color c is attacked. Rays are cast out of the king's square, so the board can be
// any position, including a simulated one. A missing king is never attacked.
func underAttack(b *board.Board, c board.Color) bool {
	if !b.HasKing(c) {
		return false
	}
	king := b.KingSquare(c)
	owner := b.PieceAt(king)

	found := false
	hit := func(*ray, board.Square) { found = true }
	castRays(b, king, movements[board.Queen], sliderThreatJudge(owner), hit)
	if !found {
		castRays(b, king, movements[board.Knight], hostileJudge(owner, board.Knight), hit)
	}
	if !found {
		castRays(b, king, pawnCaptureProbe(c), hostileJudge(owner, board.Pawn), hit)
	}
	if !found {
		castRays(b, king, movements[board.King], hostileJudge(owner, board.King), hit)
	}
	return found
}
