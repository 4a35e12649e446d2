package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/board"
	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/movegen"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = board.StartPlacement + " w KQkq - 0 1"

// ParseFEN parses a FEN string and returns a Game starting from it.
//
// Castling rights are carried over to the board by stamping the kings and
// rooks that lost them as moved. The position must hold exactly one king
// per side.
func ParseFEN(fen string) (*Game, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, fmt.Errorf("%w: need at least 4 fields, got %d", ErrInvalidFEN, len(parts))
	}

	// Parse piece placement (field 0)
	b := board.NewBoard()
	if err := b.LoadBoard(parts[0]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFEN, err)
	}
	for _, c := range [...]board.Color{board.White, board.Black} {
		if n := countKings(b, c); n != 1 {
			return nil, fmt.Errorf("%w: %s has %d kings", ErrInvalidFEN, c, n)
		}
	}

	g := &Game{
		board:          b,
		fullMoveNumber: 1,
		repetitions:    make(map[uint64]int),
	}

	// Parse side to move (field 1)
	switch parts[1] {
	case "w":
		g.toMove = board.White
	case "b":
		g.toMove = board.Black
	default:
		return nil, fmt.Errorf("%w: invalid side to move: %s", ErrInvalidFEN, parts[1])
	}

	// Parse castling rights (field 2)
	cr, err := parseCastlingRights(parts[2])
	if err != nil {
		return nil, err
	}
	applyCastlingRights(b, cr)

	// Parse en passant square (field 3)
	if parts[3] != "-" {
		sq, err := ParseEnPassant(parts[3], g.toMove)
		if err != nil {
			return nil, err
		}
		b.SetEnPassantSquare(sq)
	}

	// Parse half-move clock (field 4, optional)
	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil || hmc < 0 {
			return nil, fmt.Errorf("%w: invalid half-move clock: %s", ErrInvalidFEN, parts[4])
		}
		g.halfMoveClock = hmc
	}

	// Parse full-move number (field 5, optional)
	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil || fmn < 1 {
			return nil, fmt.Errorf("%w: invalid full-move number: %s", ErrInvalidFEN, parts[5])
		}
		g.fullMoveNumber = fmn
	}

	g.gen = movegen.New(g.board)
	if g.gen.InCheck(g.toMove.Other()) {
		return nil, fmt.Errorf("%w: %s is in check but not to move", ErrInvalidFEN, g.toMove.Other())
	}
	g.startFEN = g.ToFEN()
	g.refresh()
	return g, nil
}

// ParseEnPassant parses an en passant target. It must lie on the square a
// pawn of the side not to move just skipped.
func ParseEnPassant(s string, toMove board.Color) (board.Square, error) {
	sq, err := board.ParseSquare(s)
	if err != nil {
		return board.NoSquare, fmt.Errorf("%w: invalid en passant square: %s", ErrInvalidFEN, s)
	}
	if sq.RelativeRank(toMove) != 5 {
		return board.NoSquare, fmt.Errorf("%w: en passant square %s with %s to move", ErrInvalidFEN, s, toMove)
	}
	return sq, nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(castling string) (CastlingRights, error) {
	if castling == "-" {
		return NoCastling, nil
	}

	cr := NoCastling
	for _, c := range castling {
		switch c {
		case 'K':
			cr |= WhiteKingSideCastle
		case 'Q':
			cr |= WhiteQueenSideCastle
		case 'k':
			cr |= BlackKingSideCastle
		case 'q':
			cr |= BlackQueenSideCastle
		default:
			return NoCastling, fmt.Errorf("%w: invalid castling character: %c", ErrInvalidFEN, c)
		}
	}
	return cr, nil
}

func countKings(b *board.Board, c board.Color) int {
	n := 0
	for _, p := range b.FetchPieces(c) {
		if p.IsKing() {
			n++
		}
	}
	return n
}

// ToFEN returns the FEN representation of the current position.
// Castling rights are derived from the unmoved kings and rooks.
func (g *Game) ToFEN() string {
	var sb strings.Builder

	sb.WriteString(g.board.Placement())

	// Side to move
	sb.WriteByte(' ')
	if g.toMove == board.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(castlingRightsOf(g.board).String())

	sb.WriteByte(' ')
	sb.WriteString(g.board.EnPassantSquare().String())

	// Half-move clock and full-move number
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(g.halfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(g.fullMoveNumber))

	return sb.String()
}
