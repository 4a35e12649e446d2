package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartPlacement is the piece placement field of the starting position.
const StartPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

// LoadBoard clears the board and places the pieces described by a FEN piece
// placement field (ranks 8 to 1, digits compress empty squares). Anything after
// the first space is ignored, so a complete FEN record is accepted too.
//
// The placement is validated strictly: exactly 8 ranks of exactly 8 files and
// only piece letters or digits 1-8. On error the board is left untouched.
// The number of kings is not validated here; the move generator requires one
// king per side and panics otherwise.
//
// Pawns off their starting rank, kings off e1/e8 and rooks off the corners are
// loaded as already moved, so no double push or castling is offered from them.
func (b *Board) LoadBoard(placement string) error {
	fields := strings.Fields(placement)
	if len(fields) == 0 {
		return fmt.Errorf("%w: empty placement", ErrInvalidPlacement)
	}

	fresh := NewBoard()
	if err := parsePiecePlacement(fresh, fields[0]); err != nil {
		return err
	}
	*b = *fresh
	return nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidPlacement, len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return fmt.Errorf("%w: too many squares in rank %d", ErrInvalidPlacement, rank+1)
			}

			if c >= '1' && c <= '8' {
				// Skip empty squares
				file += int(c - '0')
				continue
			}

			piece := PieceFromChar(byte(c))
			if piece == NoPiece || c > 0x7f {
				return fmt.Errorf("%w: invalid piece character: %c", ErrInvalidPlacement, c)
			}
			sq := NewSquare(file, rank)
			if !onHomeSquare(piece, sq) {
				piece = piece.Moved()
			}
			b.AddPiece(piece, sq)
			file++
		}

		if file != 8 {
			return fmt.Errorf("%w: invalid number of squares in rank %d: got %d", ErrInvalidPlacement, rank+1, file)
		}
	}

	return nil
}

// onHomeSquare reports whether a pawn, king or rook stands where it starts the
// game. Other pieces never need a moved stamp and always report true.
func onHomeSquare(piece Piece, sq Square) bool {
	c := piece.Color()
	switch piece.Type() {
	case Pawn:
		return sq.RelativeRank(c) == 1
	case King:
		return sq.RelativeRank(c) == 0 && sq.File() == 4
	case Rook:
		return sq.RelativeRank(c) == 0 && sq.OnSide()
	default:
		return true
	}
}

// Placement returns the FEN piece placement field of the board.
func (b *Board) Placement() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := b.PieceAt(NewSquare(file, rank))
			if piece.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	return sb.String()
}
