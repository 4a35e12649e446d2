package game

import (
	"fmt"
	"strings"

	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/board"
	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/movegen"
)

const pieceLetters = " PNBRQK"

// SAN converts a legal move of the side to move to Standard Algebraic Notation.
func (g *Game) SAN(m board.Move) string {
	if m == board.NoMove {
		return "-"
	}

	from := m.From()
	to := m.To()
	piece := g.board.PieceAt(from)
	if piece.IsEmpty() {
		return m.String() // Fallback to UCI
	}

	var sb strings.Builder

	if m.IsCastle() {
		if to > from {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else {
		pt := piece.Type()
		if pt != board.Pawn {
			sb.WriteByte(pieceLetters[pt])
			sb.WriteString(g.disambiguation(m, pt))
		}

		if m.IsCapture() {
			if pt == board.Pawn {
				// Pawn captures include the file of origin
				sb.WriteByte('a' + byte(from.File()))
			}
			sb.WriteByte('x')
		}

		sb.WriteString(to.String())

		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte(pieceLetters[m.Promotion()])
		}
	}

	// Check/checkmate marker
	if m.IsCheck() {
		after := g.board.Clone()
		after.Apply(m)
		if len(movegen.New(after).GenAllLegalMoves(piece.Color().Other())) == 0 {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('+')
		}
	}

	return sb.String()
}

// disambiguation returns the origin file, rank or square needed to tell m
// apart from moves of other pieces of the same type to the same square.
func (g *Game) disambiguation(m board.Move, pt board.PieceType) string {
	from := m.From()
	var candidates []board.Square
	for _, other := range g.legal {
		if other.To() != m.To() || other.From() == from {
			continue
		}
		if g.board.PieceAt(other.From()).Type() == pt {
			candidates = append(candidates, other.From())
		}
	}

	// No ambiguity
	if len(candidates) == 0 {
		return ""
	}

	sameFile := false
	sameRank := false
	for _, sq := range candidates {
		if sq.File() == from.File() {
			sameFile = true
		}
		if sq.Rank() == from.Rank() {
			sameRank = true
		}
	}

	if !sameFile {
		return string(rune('a' + from.File()))
	}
	if !sameRank {
		return string(rune('1' + from.Rank()))
	}
	return from.String()
}

// ParseSAN finds the legal move written as s in Standard Algebraic Notation.
func (g *Game) ParseSAN(s string) (board.Move, error) {
	orig := s
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#!?")

	// Handle castling
	switch s {
	case "O-O", "0-0":
		return g.findCastle(orig, true)
	case "O-O-O", "0-0-0":
		return g.findCastle(orig, false)
	}

	// Parse promotion
	promo := board.NoPieceType
	if idx := strings.Index(s, "="); idx >= 0 && idx+1 < len(s) {
		promo = board.PieceFromChar(s[idx+1]).Type()
		s = s[:idx]
	}

	isCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	// Determine piece type
	pt := board.Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		pt = board.PieceFromChar(s[0]).Type()
		s = s[1:]
	}

	// Parse destination (last 2 characters)
	if len(s) < 2 || pt == board.NoPieceType {
		return board.NoMove, fmt.Errorf("%w: cannot parse %q", ErrIllegalMove, orig)
	}
	dest, err := board.ParseSquare(s[len(s)-2:])
	if err != nil {
		return board.NoMove, fmt.Errorf("%w: %w", ErrIllegalMove, err)
	}
	s = s[:len(s)-2]

	// Parse disambiguation (file, rank, or both)
	disambigFile, disambigRank := -1, -1
	for _, c := range s {
		if c >= 'a' && c <= 'h' {
			disambigFile = int(c - 'a')
		} else if c >= '1' && c <= '8' {
			disambigRank = int(c - '1')
		}
	}

	var matches []board.Move
	for _, m := range g.legal {
		if m.To() != dest {
			continue
		}
		from := m.From()
		if g.board.PieceAt(from).Type() != pt {
			continue
		}
		if disambigFile >= 0 && from.File() != disambigFile {
			continue
		}
		if disambigRank >= 0 && from.Rank() != disambigRank {
			continue
		}
		if isCapture && !m.IsCapture() {
			continue
		}
		if m.IsPromotion() {
			want := promo
			if want == board.NoPieceType {
				want = board.Queen
			}
			if m.Promotion() != want {
				continue
			}
		}
		matches = append(matches, m)
	}

	switch len(matches) {
	case 0:
		return board.NoMove, fmt.Errorf("%w: %s", ErrIllegalMove, orig)
	case 1:
		return matches[0], nil
	default:
		return board.NoMove, fmt.Errorf("%w: %s is ambiguous", ErrIllegalMove, orig)
	}
}

func (g *Game) findCastle(s string, kingSide bool) (board.Move, error) {
	for _, m := range g.legal {
		if m.IsCastle() && (m.To() > m.From()) == kingSide {
			return m, nil
		}
	}
	return board.NoMove, fmt.Errorf("%w: %s", ErrIllegalMove, s)
}

// PlaySAN plays a move given in Standard Algebraic Notation.
func (g *Game) PlaySAN(s string) (board.Move, error) {
	if status := g.Status(); status.IsOver() {
		return board.NoMove, fmt.Errorf("%w: %s", ErrGameOver, status)
	}
	m, err := g.ParseSAN(s)
	if err != nil {
		return board.NoMove, err
	}
	if err := g.Play(m); err != nil {
		return board.NoMove, err
	}
	return m, nil
}
