package movegen

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/board"
)

// DebugMoveValidation enables log diagnostics when the king analysis disagrees
// with the attack map.
var DebugMoveValidation = false

// ErrNoKing is raised when moves are requested for a side without a king.
var ErrNoKing = board.ErrNoKing

// promotionOrder is the order promotions are expanded in.
var promotionOrder = [...]board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight}

// MoveGenerator generates legal moves for the board it is bound to.
//
// It keeps no state between calls; every call re-derives attacks, pins and
// checks from the board. A generator and its board must not be used from
// more than one goroutine at a time.
type MoveGenerator struct {
	board *board.Board
}

// New returns a generator bound to b.
func New(b *board.Board) *MoveGenerator {
	return &MoveGenerator{board: b}
}

// SetBoard rebinds the generator to b.
func (g *MoveGenerator) SetBoard(b *board.Board) {
	g.board = b
}

// Board returns the bound board.
func (g *MoveGenerator) Board() *board.Board {
	return g.board
}

// GenAllLegalMoves returns every legal move of color c, with flags. A promotion
// yields four moves (queen, rook, bishop, knight), each with its own check flag.
// It panics with ErrNoKing if c has no king.
func (g *MoveGenerator) GenAllLegalMoves(c board.Color) []board.Move {
	a := analyze(g.board, c)

	moves := make([]board.Move, 0, 48)
	for i, p := range g.board.FetchPieces(c) {
		if p.IsEmpty() {
			continue
		}
		from := board.Square(i)
		dests := g.legalDestinations(a, from)
		for dests != 0 {
			to := dests.PopLSB()
			if g.board.IsPromotionMove(from, to) {
				for _, pt := range promotionOrder {
					moves = append(moves, board.NewMove(from, to, g.flags(from, to, pt)))
				}
				continue
			}
			moves = append(moves, board.NewMove(from, to, g.flags(from, to, board.Queen)))
		}
	}
	return moves
}

// GenLegalPieceMoves returns the legal destinations of the piece on sq.
// An empty square has none.
func (g *MoveGenerator) GenLegalPieceMoves(sq board.Square) board.Bitboard {
	piece := g.board.PieceAt(sq)
	if piece.IsEmpty() {
		return board.Empty
	}
	return g.legalDestinations(analyze(g.board, piece.Color()), sq)
}

// GetMoveFlags classifies from -> to on the bound board. Promotions are
// classified as queen promotions.
func (g *MoveGenerator) GetMoveFlags(from, to board.Square) board.Flags {
	return g.flags(from, to, board.Queen)
}

// IsMoveCheck reports whether playing from -> to leaves the opponent's king in
// check, discovered checks included. Promotions are tested as queen promotions.
func (g *MoveGenerator) IsMoveCheck(from, to board.Square) bool {
	return g.isCheck(from, to, board.Queen)
}

// InCheck reports whether the king of color c is attacked.
func (g *MoveGenerator) InCheck(c board.Color) bool {
	return analyze(g.board, c).inCheck()
}

// PinnedPieces returns the squares of the pieces of color c pinned to their king,
// in ascending order.
func (g *MoveGenerator) PinnedPieces(c board.Color) []board.Square {
	pinned := maps.Keys(findPins(g.board, g.board.KingSquare(c)))
	slices.Sort(pinned)
	return pinned
}

// legalDestinations filters the crawled moves of the piece on from.
func (g *MoveGenerator) legalDestinations(a *analysis, from board.Square) board.Bitboard {
	b := g.board
	piece := b.PieceAt(from)
	if !piece.IsColor(a.color) {
		return board.Empty
	}

	pseudo := crawl(b, from, moveMode)
	if piece.IsKing() {
		return pseudo&^a.attacks.squares() | a.castleDestinations(b)
	}
	if a.checkers >= 2 {
		return board.Empty
	}

	// En passant is settled on a simulated board: the capture can uncover the
	// king along the rank or remove a checking pawn.
	var enPassant board.Bitboard
	if ep := b.EnPassantSquare(); piece.IsPawn() && pseudo.IsSet(ep) && b.IsEnPassantMove(from, ep) {
		enPassant = board.SquareBB(ep)
		pseudo = pseudo.Clear(ep)
	}

	if vector, pinned := a.pins[from]; pinned {
		pseudo &= line(a.king, vector)
	}
	if a.inCheck() {
		pseudo &= a.defense
	}

	if enPassant != 0 {
		v := NewVBoard(b)
		v.ApplyMove(from, enPassant.LSB(), board.Queen)
		if !v.IsKingAttacked(a.color) {
			pseudo |= enPassant
		}
	}
	return pseudo
}

func (g *MoveGenerator) flags(from, to board.Square, promo board.PieceType) board.Flags {
	b := g.board
	mover := b.PieceAt(from)
	enPassant := b.IsEnPassantMove(from, to)
	return board.NewFlags(
		enPassant || b.PieceAt(to).IsEnemyOf(mover),
		b.IsCastleMove(from, to),
		b.IsPromotionMove(from, to),
		enPassant,
		g.isCheck(from, to, promo),
		promo,
	)
}

// isCheck plays the move on a VBoard and looks for attackers of the enemy king.
// Nonsense squares or an empty origin are never a check.
func (g *MoveGenerator) isCheck(from, to board.Square, promo board.PieceType) bool {
	b := g.board
	mover := b.PieceAt(from)
	if !from.IsValid() || !to.IsValid() || from == to || mover.IsEmpty() {
		return false
	}
	enemy := mover.Color().Other()
	if !b.HasKing(enemy) {
		return false
	}
	if b.IsPromotionMove(from, to) && !promo.IsPromotionOption() {
		promo = board.Queen
	}

	v := NewVBoard(b)
	v.ApplyMove(from, to, promo)
	return v.IsKingAttacked(enemy)
}
