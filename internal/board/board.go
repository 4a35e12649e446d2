package board

import (
	"fmt"
	"strings"
)

const (
	// BoardSize is the number of squares on the board.
	BoardSize = 64
	// CastleMoveDistance is the number of files a castling king travels.
	CastleMoveDistance = 2
)

// Board represents a chess position as a 64-square array.
//
// squares is authoritative; colorSquares holds one sparse view per color and
// kingSquare caches where each king stands. Every mutation goes through
// AddPiece/RemovePiece so the three never disagree.
type Board struct {
	squares      [BoardSize]Piece
	colorSquares [2][BoardSize]Piece

	// King positions (cached for check detection), NoSquare if absent
	kingSquare [2]Square

	// Square skipped by the last double pawn push, NoSquare if none
	enPassant Square

	// Last move, kept for display only
	lastFrom, lastTo Square
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	b := &Board{}
	b.Clear()
	return b
}

// Clear resets the board to an empty board.
func (b *Board) Clear() {
	*b = Board{
		enPassant: NoSquare,
		lastFrom:  NoSquare,
		lastTo:    NoSquare,
	}
	b.kingSquare[White] = NoSquare
	b.kingSquare[Black] = NoSquare
}

// Clone creates a deep copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// PieceAt returns the piece at the given square, or NoPiece if empty or off the board.
func (b *Board) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return b.squares[sq]
}

// FetchPiece returns the piece at the linear index i as seen through the color
// filter: White or Black only see their own pieces, NoColor sees everything.
// Indices off the board yield NoPiece so geometric probes need no bounds checks.
func (b *Board) FetchPiece(i int, filter Color) Piece {
	if !InBounds(i) {
		return NoPiece
	}
	switch filter {
	case White, Black:
		return b.colorSquares[filter][i]
	default:
		return b.squares[i]
	}
}

// FetchPieces returns a copy of the squares as seen through the color filter.
func (b *Board) FetchPieces(filter Color) [BoardSize]Piece {
	switch filter {
	case White, Black:
		return b.colorSquares[filter]
	default:
		return b.squares
	}
}

// IsEmpty returns true if the square is empty.
func (b *Board) IsEmpty(sq Square) bool {
	return b.PieceAt(sq).IsEmpty()
}

// Count returns the number of pieces of color c on the board.
func (b *Board) Count(c Color) int {
	n := 0
	for _, p := range b.FetchPieces(c) {
		if p.IsOccupied() {
			n++
		}
	}
	return n
}

// HasKing reports whether a king of color c is on the board.
func (b *Board) HasKing(c Color) bool {
	return c < NoColor && b.kingSquare[c] != NoSquare
}

// KingSquare returns the square of the king of color c.
// It panics with ErrNoKing if that king does not exist.
func (b *Board) KingSquare(c Color) Square {
	if !b.HasKing(c) {
		panic(fmt.Errorf("%w: %s", ErrNoKing, c))
	}
	return b.kingSquare[c]
}

// EnPassantSquare returns the square skipped by the last double pawn push,
// or NoSquare.
func (b *Board) EnPassantSquare() Square {
	return b.enPassant
}

// SetEnPassantSquare overrides the en passant target, e.g. from a FEN record.
func (b *Board) SetEnPassantSquare(sq Square) {
	if !sq.IsValid() {
		sq = NoSquare
	}
	b.enPassant = sq
}

// LastMove returns the origin and destination of the last move made.
func (b *Board) LastMove() (from, to Square, ok bool) {
	return b.lastFrom, b.lastTo, b.lastFrom != NoSquare
}

// AddPiece places a piece on an empty square.
// Returns false if the square is off the board, occupied, or the piece is empty.
func (b *Board) AddPiece(piece Piece, sq Square) bool {
	if !sq.IsValid() || piece.IsEmpty() || b.squares[sq].IsOccupied() {
		return false
	}

	c := piece.Color()
	b.squares[sq] = piece
	b.colorSquares[c][sq] = piece

	if piece.IsKing() {
		b.kingSquare[c] = sq
	}
	return true
}

// RemovePiece removes the piece on a square.
// Returns false if the square is off the board or already empty.
func (b *Board) RemovePiece(sq Square) bool {
	if !sq.IsValid() || b.squares[sq].IsEmpty() {
		return false
	}

	piece := b.squares[sq]
	c := piece.Color()
	b.squares[sq] = NoPiece
	b.colorSquares[c][sq] = NoPiece

	if piece.IsKing() && b.kingSquare[c] == sq {
		b.kingSquare[c] = NoSquare
	}
	return true
}

// Apply makes a generated move. Promotions use the type carried by the move.
func (b *Board) Apply(m Move) Piece {
	promo := Queen
	if m.IsPromotion() {
		promo = m.Promotion()
	}
	return b.MakeMove(m.From(), m.To(), promo)
}

// MakeMove moves the piece on from to to and performs every side effect of the
// move: en passant removal, rook relocation when castling, promotion to promo,
// and en passant target bookkeeping. It returns the captured piece, if any.
//
// Legality is not checked; moves are expected to come from the move generator.
// It panics with ErrInvalidMove if a square is off the board, the squares are
// equal or from is empty, and with ErrInvalidPromotion for a bad promo type on
// a promoting move.
func (b *Board) MakeMove(from, to Square, promo PieceType) Piece {
	if !from.IsValid() || !to.IsValid() {
		panic(fmt.Errorf("%w: impossible move %d -> %d", ErrInvalidMove, from, to))
	}
	if from == to {
		panic(fmt.Errorf("%w: piece cannot null-move on %s", ErrInvalidMove, from))
	}
	moving := b.squares[from]
	if moving.IsEmpty() {
		panic(fmt.Errorf("%w: there is no piece on %s", ErrInvalidMove, from))
	}

	placed := moving.Moved()
	if b.IsPromotionMove(from, to) {
		promoted, err := moving.PromoteTo(promo)
		if err != nil {
			panic(err)
		}
		placed = promoted
	}

	captured := b.squares[to]
	switch {
	case b.IsEnPassantMove(from, to):
		behind := Square(int(to) - moving.Color().PawnDirection())
		captured = b.squares[behind]
		b.RemovePiece(behind)
	case b.IsCastleMove(from, to):
		if rookFrom, rookTo, ok := b.FindCastlingRook(from, to); ok {
			b.relocate(rookFrom, rookTo)
		}
	}

	b.RemovePiece(from)
	b.RemovePiece(to)
	b.AddPiece(placed, to)

	b.updateEnPassant(from, to, moving)
	b.lastFrom, b.lastTo = from, to
	return captured
}

// relocate moves a piece without any move classification (castling rooks).
func (b *Board) relocate(from, to Square) {
	piece := b.squares[from]
	b.RemovePiece(from)
	b.RemovePiece(to)
	b.AddPiece(piece.Moved(), to)
}

// FindCastlingRook returns where the rook castling with a king moving from
// kingFrom to kingTo stands and where it must go. The rook is probed one square
// toward the edge (king side) or two squares toward the a-file (queen side) from
// the king's destination.
func (b *Board) FindCastlingRook(kingFrom, kingTo Square) (rookFrom, rookTo Square, ok bool) {
	king := b.PieceAt(kingFrom)
	if !king.IsKing() {
		return NoSquare, NoSquare, false
	}

	var from, to int
	if kingTo > kingFrom {
		from, to = int(kingTo)+1, int(kingTo)-1
	} else {
		from, to = int(kingTo)-2, int(kingTo)+1
	}
	if Wraps(int(kingTo), from, CastleMoveDistance) {
		return NoSquare, NoSquare, false
	}

	rook := b.squares[from]
	if !rook.IsRook() || !rook.IsTeamedWith(king) {
		return NoSquare, NoSquare, false
	}
	return Square(from), Square(to), true
}

// IsCastleMove reports whether moving from -> to is a king travelling two files.
func (b *Board) IsCastleMove(from, to Square) bool {
	return b.PieceAt(from).IsKing() &&
		RankDistance(from, to) == 0 &&
		FileDistance(from, to) == CastleMoveDistance
}

// IsEnPassantMove reports whether moving from -> to is a pawn capturing en passant:
// a diagonal step onto the empty en passant target with an enemy pawn behind it.
func (b *Board) IsEnPassantMove(from, to Square) bool {
	pawn := b.PieceAt(from)
	if !pawn.IsPawn() || b.enPassant == NoSquare || to != b.enPassant {
		return false
	}
	dir := pawn.Color().PawnDirection()
	delta := int(to) - int(from)
	if FileDistance(from, to) != 1 || (delta != dir+1 && delta != dir-1) {
		return false
	}
	if b.squares[to].IsOccupied() {
		return false
	}
	victim := b.FetchPiece(int(to)-dir, NoColor)
	return victim.IsPawn() && victim.IsEnemyOf(pawn)
}

// IsPromotionMove reports whether moving from -> to brings a pawn to the back rank.
func (b *Board) IsPromotionMove(from, to Square) bool {
	return b.PieceAt(from).IsPawn() && to.OnBack()
}

// updateEnPassant records the skipped square after a double pawn push and
// clears the target after any other move.
func (b *Board) updateEnPassant(from, to Square, piece Piece) {
	if piece.IsPawn() && RankDistance(from, to) == 2 {
		b.enPassant = Square((int(from) + int(to)) / 2)
		return
	}
	b.enPassant = NoSquare
}

// String returns a visual representation of the board.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := b.PieceAt(NewSquare(file, rank))
			if piece.IsEmpty() {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "En passant: %s\n", b.enPassant)
	if from, to, ok := b.LastMove(); ok {
		fmt.Fprintf(&sb, "Last move: %s%s\n", from, to)
	}
	return sb.String()
}
