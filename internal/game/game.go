// Package game plays full games on top of the board and the move generator:
// FEN records, turn order, clocks, move history and game status.
package game

import (
	"errors"
	"fmt"

	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/board"
	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/movegen"
)

var (
	// ErrInvalidFEN is returned for malformed FEN records.
	ErrInvalidFEN = errors.New("invalid FEN")
	// ErrIllegalMove is returned when a move is not legal in the current position.
	ErrIllegalMove = errors.New("illegal move")
	// ErrGameOver is returned when a move is played after the game has ended.
	ErrGameOver = errors.New("game is over")
)

// fiftyMoveLimit is the half-move clock value that draws the game.
const fiftyMoveLimit = 100

// Status is the state of a game.
type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	FiftyMoveDraw
	InsufficientMaterial
	ThreefoldRepetition
)

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case FiftyMoveDraw:
		return "draw by fifty-move rule"
	case InsufficientMaterial:
		return "draw by insufficient material"
	case ThreefoldRepetition:
		return "draw by threefold repetition"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// IsOver reports whether no more moves may be played.
func (s Status) IsOver() bool {
	return s != Ongoing
}

// Game owns one board and the generator bound to it. Moves are applied
// strictly in turn. A Game is not safe for concurrent use; see Session.
type Game struct {
	board *board.Board
	gen   *movegen.MoveGenerator

	toMove         board.Color
	halfMoveClock  int
	fullMoveNumber int

	startFEN    string
	moves       []board.Move
	san         []string
	repetitions map[uint64]int

	// legal moves of toMove, refreshed after every move
	legal []board.Move
}

// New returns a game at the starting position.
func New() *Game {
	g, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return g
}

// refresh regenerates the legal moves and counts the position.
func (g *Game) refresh() {
	g.legal = g.gen.GenAllLegalMoves(g.toMove)
	g.repetitions[positionKey(g.board, g.toMove, g.legal)]++
}

// Board returns a copy of the current board.
func (g *Game) Board() *board.Board {
	return g.board.Clone()
}

// SideToMove returns the color to move.
func (g *Game) SideToMove() board.Color {
	return g.toMove
}

// HalfMoveClock returns the plies since the last capture or pawn move.
func (g *Game) HalfMoveClock() int {
	return g.halfMoveClock
}

// FullMoveNumber returns the current move number, starting at 1.
func (g *Game) FullMoveNumber() int {
	return g.fullMoveNumber
}

// StartFEN returns the position the game started from.
func (g *Game) StartFEN() string {
	return g.startFEN
}

// LegalMoves returns the legal moves of the side to move.
func (g *Game) LegalMoves() []board.Move {
	out := make([]board.Move, len(g.legal))
	copy(out, g.legal)
	return out
}

// LegalDestinations returns the legal destinations of the piece on sq.
func (g *Game) LegalDestinations(sq board.Square) board.Bitboard {
	if !g.board.PieceAt(sq).IsColor(g.toMove) {
		return board.Empty
	}
	return g.gen.GenLegalPieceMoves(sq)
}

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool {
	return g.gen.InCheck(g.toMove)
}

// History returns the moves played so far.
func (g *Game) History() []board.Move {
	out := make([]board.Move, len(g.moves))
	copy(out, g.moves)
	return out
}

// SANHistory returns the moves played so far in Standard Algebraic Notation.
func (g *Game) SANHistory() []string {
	out := make([]string, len(g.san))
	copy(out, g.san)
	return out
}

// Status returns the state of the game. Checkmate and stalemate take
// precedence over the draw rules.
func (g *Game) Status() Status {
	switch {
	case len(g.legal) == 0 && g.InCheck():
		return Checkmate
	case len(g.legal) == 0:
		return Stalemate
	case g.halfMoveClock >= fiftyMoveLimit:
		return FiftyMoveDraw
	case insufficientMaterial(g.board):
		return InsufficientMaterial
	case g.repetitions[positionKey(g.board, g.toMove, g.legal)] >= 3:
		return ThreefoldRepetition
	}
	return Ongoing
}

// Winner returns the winning color after a checkmate, NoColor otherwise.
func (g *Game) Winner() board.Color {
	if g.Status() == Checkmate {
		return g.toMove.Other()
	}
	return board.NoColor
}

// Find returns the legal move from -> to. promo selects the promotion piece
// and is ignored for other moves.
func (g *Game) Find(from, to board.Square, promo board.PieceType) (board.Move, bool) {
	for _, m := range g.legal {
		if m.From() != from || m.To() != to {
			continue
		}
		if m.IsPromotion() && m.Promotion() != promo {
			continue
		}
		return m, true
	}
	return board.NoMove, false
}

// Play plays a legal move of the side to move.
func (g *Game) Play(m board.Move) error {
	if status := g.Status(); status.IsOver() {
		return fmt.Errorf("%w: %s", ErrGameOver, status)
	}
	promo := board.Queen
	if m.IsPromotion() {
		promo = m.Promotion()
	}
	legal, ok := g.Find(m.From(), m.To(), promo)
	if !ok {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}

	san := g.SAN(legal)
	mover := g.board.PieceAt(legal.From())
	g.board.Apply(legal)

	if mover.IsPawn() || legal.IsCapture() {
		g.halfMoveClock = 0
	} else {
		g.halfMoveClock++
	}
	if g.toMove == board.Black {
		g.fullMoveNumber++
	}
	g.toMove = g.toMove.Other()
	g.moves = append(g.moves, legal)
	g.san = append(g.san, san)
	g.refresh()
	return nil
}

// PlayUCI plays a move given in UCI form, e.g. "e2e4" or "e7e8q".
// A promotion without a piece letter promotes to a queen.
func (g *Game) PlayUCI(s string) (board.Move, error) {
	if status := g.Status(); status.IsOver() {
		return board.NoMove, fmt.Errorf("%w: %s", ErrGameOver, status)
	}
	from, to, promo, err := ParseUCIMove(s)
	if err != nil {
		return board.NoMove, err
	}
	m, ok := g.Find(from, to, promo)
	if !ok {
		return board.NoMove, fmt.Errorf("%w: %s", ErrIllegalMove, s)
	}
	if err := g.Play(m); err != nil {
		return board.NoMove, err
	}
	return m, nil
}

// ParseUCIMove splits a UCI move string into its squares and promotion type.
func ParseUCIMove(s string) (from, to board.Square, promo board.PieceType, err error) {
	if len(s) != 4 && len(s) != 5 {
		return board.NoSquare, board.NoSquare, board.NoPieceType, fmt.Errorf("%w: %q is not a UCI move", ErrIllegalMove, s)
	}
	if from, err = board.ParseSquare(s[0:2]); err != nil {
		return board.NoSquare, board.NoSquare, board.NoPieceType, fmt.Errorf("%w: %w", ErrIllegalMove, err)
	}
	if to, err = board.ParseSquare(s[2:4]); err != nil {
		return board.NoSquare, board.NoSquare, board.NoPieceType, fmt.Errorf("%w: %w", ErrIllegalMove, err)
	}

	promo = board.Queen
	if len(s) == 5 {
		promo = board.PieceFromChar(s[4]).Type()
		if !promo.IsPromotionOption() || s[4] < 'a' {
			return board.NoSquare, board.NoSquare, board.NoPieceType, fmt.Errorf("%w: bad promotion piece in %q", ErrIllegalMove, s)
		}
	}
	return from, to, promo, nil
}

// insufficientMaterial reports positions where neither side can mate: bare
// kings, a single minor piece, or only bishops all on one square color.
func insufficientMaterial(b *board.Board) bool {
	minors := 0
	bishopColors := [2]bool{}
	knights := false

	for i, p := range b.FetchPieces(board.NoColor) {
		switch p.Type() {
		case board.NoPieceType, board.King:
		case board.Knight:
			minors++
			knights = true
		case board.Bishop:
			minors++
			sq := board.Square(i)
			bishopColors[(sq.File()+sq.Rank())%2] = true
		default:
			return false
		}
	}

	if minors <= 1 {
		return true
	}
	return !knights && !(bishopColors[0] && bishopColors[1])
}
