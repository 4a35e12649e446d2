// Package movegen generates legal chess moves for a board.Board.
//
// Pieces are walked over the linear 0..63 square index by "crawlers" driven by
// a small movement table. The opponent's attack counts, the pins against the
// king and the squares that resolve a check are recomputed on every call and
// used to filter the crawled moves down to legal ones.
package movegen

import "github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/board"

// Step offsets over the linear square index.
const (
	north = 8
	south = -8
	east  = 1
	west  = -1
)

var (
	lineVectors     = []int{north, south, east, west}
	diagonalVectors = []int{north + east, north + west, south + east, south + west}
	royalVectors    = []int{north, south, east, west, north + east, north + west, south + east, south + west}
	knightVectors   = []int{17, 15, 10, 6, -6, -10, -15, -17}
)

// movement describes how a piece type travels: the vectors it steps along, how
// many steps it may take and the largest file change one step can make.
type movement struct {
	vectors     []int
	maxDistance int
	maxFileStep int
}

// movements is indexed by piece type. Pawns are handled by crawlPawn.
var movements = [...]movement{
	board.Knight: {knightVectors, 1, 2},
	board.Bishop: {diagonalVectors, 7, 1},
	board.Rook:   {lineVectors, 7, 1},
	board.Queen:  {royalVectors, 7, 1},
	board.King:   {royalVectors, 1, 1},
}

// castling walks the back rank from the king toward both rooks.
var castling = movement{vectors: []int{east, west}, maxDistance: 4, maxFileStep: 1}

// pawnCaptureProbe returns the squares a pawn of color c captures on, as vectors.
// Seen from a king, they are the squares enemy pawns check it from.
func pawnCaptureProbe(c board.Color) movement {
	dir := c.PawnDirection()
	return movement{vectors: []int{dir + east, dir + west}, maxDistance: 1, maxFileStep: 1}
}

func isDiagonal(vector int) bool {
	switch vector {
	case north + east, north + west, south + east, south + west:
		return true
	}
	return false
}

// slidesAlong reports whether p is a slider that moves along vector's axis.
func slidesAlong(p board.Piece, vector int) bool {
	if isDiagonal(vector) {
		return p.IsDiagonalPiece()
	}
	return p.IsLinePiece()
}

// crawlMode selects what a crawl yields.
type crawlMode int

const (
	// moveMode yields pseudo-legal destinations: empty squares and captures.
	moveMode crawlMode = iota
	// attackMode yields every attacked square. Squares held by the crawling side
	// count as attacked, and sliders continue through the enemy king so it
	// cannot step back along the line it is attacked on.
	attackMode
)

// crawl returns the destinations of the piece on from.
func crawl(b *board.Board, from board.Square, mode crawlMode) board.Bitboard {
	piece := b.PieceAt(from)
	switch {
	case piece.IsEmpty():
		return board.Empty
	case piece.IsPawn():
		return crawlPawn(b, from, piece, mode)
	}

	m := movements[piece.Type()]
	var dests board.Bitboard
	for _, v := range m.vectors {
		cur := int(from)
		for step := 0; step < m.maxDistance; step++ {
			next := cur + v
			if board.Wraps(cur, next, m.maxFileStep) {
				break
			}
			sq := board.Square(next)
			target := b.FetchPiece(next, board.NoColor)
			if target.IsEmpty() {
				dests = dests.Set(sq)
				cur = next
				continue
			}

			if mode == attackMode {
				dests = dests.Set(sq)
				if target.IsKing() && target.IsEnemyOf(piece) {
					cur = next
					continue
				}
			} else if target.IsEnemyOf(piece) {
				dests = dests.Set(sq)
			}
			break
		}
	}
	return dests
}

// crawlPawn handles the pawn's split between pushes and captures. The double
// push needs an unmoved pawn and an empty square in front of it.
func crawlPawn(b *board.Board, from board.Square, pawn board.Piece, mode crawlMode) board.Bitboard {
	dir := pawn.Color().PawnDirection()

	var dests board.Bitboard
	for _, side := range [...]int{east, west} {
		to := int(from) + dir + side
		if board.Wraps(int(from), to, 1) {
			continue
		}
		sq := board.Square(to)
		if mode == attackMode || b.FetchPiece(to, board.NoColor).IsEnemyOf(pawn) || b.IsEnPassantMove(from, sq) {
			dests = dests.Set(sq)
		}
	}
	if mode == attackMode {
		return dests
	}

	one := int(from) + dir
	if !board.InBounds(one) || b.FetchPiece(one, board.NoColor).IsOccupied() {
		return dests
	}
	dests = dests.Set(board.Square(one))

	two := one + dir
	if !pawn.HasMoved() && board.InBounds(two) && b.FetchPiece(two, board.NoColor).IsEmpty() {
		dests = dests.Set(board.Square(two))
	}
	return dests
}

// line returns every square on the line through origin along ±vector,
// origin excluded.
func line(origin board.Square, vector int) board.Bitboard {
	var bb board.Bitboard
	for _, v := range [...]int{vector, -vector} {
		cur := int(origin)
		for {
			next := cur + v
			if board.Wraps(cur, next, 1) {
				break
			}
			bb = bb.Set(board.Square(next))
			cur = next
		}
	}
	return bb
}
