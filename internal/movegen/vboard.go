package movegen

import "github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/board"

// VBoard is a throwaway copy of a board used to simulate a single move.
// The bound board is never modified while a move is being classified.
type VBoard struct {
	board *board.Board
}

// NewVBoard copies b.
func NewVBoard(b *board.Board) VBoard {
	return VBoard{board: b.Clone()}
}

// ApplyMove plays from -> to with every side effect (en passant removal,
// castling rook, promotion to promo).
func (v VBoard) ApplyMove(from, to board.Square, promo board.PieceType) {
	v.board.MakeMove(from, to, promo)
}

// IsKingAttacked reports whether the king of color c stands attacked.
func (v VBoard) IsKingAttacked(c board.Color) bool {
	return underAttack(v.board, c)
}
