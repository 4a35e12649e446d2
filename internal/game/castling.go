package game

import "github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/board"

// CastlingRights represents the available castling options.
// The board carries them implicitly as unmoved kings and rooks; this type is
// the FEN view of that state.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c board.Color, kingSide bool) bool {
	return cr&castleRight(c, kingSide) != 0
}

func castleRight(c board.Color, kingSide bool) CastlingRights {
	if c == board.White {
		if kingSide {
			return WhiteKingSideCastle
		}
		return WhiteQueenSideCastle
	}
	if kingSide {
		return BlackKingSideCastle
	}
	return BlackQueenSideCastle
}

// castleHome returns where the king and the rook of one castling right start.
func castleHome(c board.Color, kingSide bool) (king, rook board.Square) {
	rank := 0
	if c == board.Black {
		rank = 7
	}
	if kingSide {
		return board.NewSquare(4, rank), board.NewSquare(7, rank)
	}
	return board.NewSquare(4, rank), board.NewSquare(0, rank)
}

func unmovedOn(b *board.Board, sq board.Square, pt board.PieceType, c board.Color) bool {
	p := b.PieceAt(sq)
	return p.Type() == pt && p.IsColor(c) && !p.HasMoved()
}

// castlingRightsOf derives the rights from the unmoved kings and rooks on b.
func castlingRightsOf(b *board.Board) CastlingRights {
	cr := NoCastling
	for _, c := range [...]board.Color{board.White, board.Black} {
		for _, kingSide := range [...]bool{true, false} {
			king, rook := castleHome(c, kingSide)
			if unmovedOn(b, king, board.King, c) && unmovedOn(b, rook, board.Rook, c) {
				cr |= castleRight(c, kingSide)
			}
		}
	}
	return cr
}

// applyCastlingRights stamps as moved every home rook whose right is absent
// from cr, and every home king that has no right left.
func applyCastlingRights(b *board.Board, cr CastlingRights) {
	for _, c := range [...]board.Color{board.White, board.Black} {
		for _, kingSide := range [...]bool{true, false} {
			if cr.CanCastle(c, kingSide) {
				continue
			}
			_, rook := castleHome(c, kingSide)
			if unmovedOn(b, rook, board.Rook, c) {
				stampMoved(b, rook)
			}
		}
		king, _ := castleHome(c, true)
		if !cr.CanCastle(c, true) && !cr.CanCastle(c, false) && unmovedOn(b, king, board.King, c) {
			stampMoved(b, king)
		}
	}
}

func stampMoved(b *board.Board, sq board.Square) {
	p := b.PieceAt(sq)
	b.RemovePiece(sq)
	b.AddPiece(p.Moved(), sq)
}
