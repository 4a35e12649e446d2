package movegen

import (
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/board"
)

// analysis is everything the legal filter needs to know about one side's king.
// It is built fresh for every generation call and passed around explicitly.
type analysis struct {
	color board.Color
	king  board.Square

	// attacks counts enemy attackers per square
	attacks attackMap
	// pins maps a pinned piece to the vector of the line it is pinned on
	pins map[board.Square]int
	// defense holds the squares that resolve a single check
	defense  board.Bitboard
	checkers int
}

// analyze panics with ErrNoKing if c has no king.
func analyze(b *board.Board, c board.Color) *analysis {
	king := b.KingSquare(c)
	a := &analysis{
		color:   c,
		king:    king,
		attacks: computeAttacks(b, c.Other()),
		pins:    findPins(b, king),
	}
	a.findThreats(b)

	if DebugMoveValidation && a.checkers != a.attacks[king] {
		logx.Errorf("movegen: %v king on %v has %d checkers but %d attackers\n%v",
			c, king, a.checkers, a.attacks[king], b)
	}
	return a
}

func findPins(b *board.Board, king board.Square) map[board.Square]int {
	pins := make(map[board.Square]int)
	castRays(b, king, movements[board.Queen], pinJudge(b.PieceAt(king)), func(r *ray, _ board.Square) {
		pins[r.trail[0]] = r.vector
	})
	return pins
}

// findThreats casts a queen ray set, knight leaps, pawn diagonals and king
// steps from the king. An adjacent enemy king only shows up in illegal
// positions. Every hostile piece found is a checker; its square and, for sliders,
// the squares in between form the defense set.
func (a *analysis) findThreats(b *board.Board) {
	owner := b.PieceAt(a.king)
	record := func(r *ray, sq board.Square) {
		a.checkers++
		a.defense = a.defense.Set(sq)
		for _, s := range r.trail {
			a.defense = a.defense.Set(s)
		}
	}

	castRays(b, a.king, movements[board.Queen], sliderThreatJudge(owner), record)
	castRays(b, a.king, movements[board.Knight], hostileJudge(owner, board.Knight), record)
	castRays(b, a.king, pawnCaptureProbe(a.color), hostileJudge(owner, board.Pawn), record)
	castRays(b, a.king, movements[board.King], hostileJudge(owner, board.King), record)
}

func (a *analysis) inCheck() bool {
	return a.checkers > 0
}

// castleDestinations returns the squares the king may castle to.
func (a *analysis) castleDestinations(b *board.Board) board.Bitboard {
	king := b.PieceAt(a.king)
	if king.HasMoved() || a.inCheck() {
		return board.Empty
	}

	var dests board.Bitboard
	castRays(b, a.king, castling, castlingJudge(king, &a.attacks), func(r *ray, _ board.Square) {
		dests = dests.Set(r.trail[board.CastleMoveDistance-1])
	})
	return dests
}
