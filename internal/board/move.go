package board

import (
	"fmt"
	"strings"
)

// Move encodes a chess move in 20 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-19: flags (see Flags)
type Move uint32

// Flags is the flag bundle of a move:
// bit 0: capture
// bit 1: castle
// bit 2: promotion
// bit 3: en passant
// bit 4: check
// bits 5-7: promotion piece type
type Flags uint16

// Move flags
const (
	FlagCapture Flags = 1 << iota
	FlagCastle
	FlagPromotion
	FlagEnPassant
	FlagCheck

	FlagsNone Flags = 0
)

const (
	fromShift  = 0
	toShift    = 6
	flagsShift = 12

	squareMask    Move  = 0x3F
	flagsMask     Move  = 0xFF
	promoShift          = 5
	promoMask     Flags = 0b111 << promoShift
	quietExcluder       = FlagCapture | FlagCastle | FlagPromotion | FlagEnPassant | FlagCheck
)

// NoMove represents an invalid or null move (a1a1 without flags).
const NoMove Move = 0

// NewFlags builds a flag bundle from its parts. The promotion type is only
// stored when promotion is set.
func NewFlags(capture, castle, promotion, enPassant, check bool, promo PieceType) Flags {
	var f Flags
	if capture {
		f |= FlagCapture
	}
	if castle {
		f |= FlagCastle
	}
	if enPassant {
		f |= FlagEnPassant
	}
	if check {
		f |= FlagCheck
	}
	if promotion {
		f |= FlagPromotion
		f = f.WithPromotion(promo)
	}
	return f
}

// WithPromotion returns the flags with the promotion type field set to pt.
func (f Flags) WithPromotion(pt PieceType) Flags {
	return f&^promoMask | Flags(pt&0b111)<<promoShift
}

// WithCheck returns the flags with the check bit set or cleared.
func (f Flags) WithCheck(check bool) Flags {
	if check {
		return f | FlagCheck
	}
	return f &^ FlagCheck
}

// Has reports whether every bit of flag is set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// Promotion returns the promotion piece type stored in the flags.
func (f Flags) Promotion() PieceType {
	return PieceType((f & promoMask) >> promoShift)
}

// NewMove packs origin, destination and flags into a Move.
func NewMove(from, to Square, flags Flags) Move {
	return Move(from)&squareMask<<fromShift |
		Move(to)&squareMask<<toShift |
		Move(flags)&flagsMask<<flagsShift
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m >> fromShift & squareMask)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square(m >> toShift & squareMask)
}

// Flags returns the flag bundle.
func (m Move) Flags() Flags {
	return Flags(m >> flagsShift & flagsMask)
}

// Promotion returns the promotion piece type (only valid if IsPromotion() is true).
func (m Move) Promotion() PieceType {
	return m.Flags().Promotion()
}

func (m Move) IsCapture() bool   { return m.Flags().Has(FlagCapture) }
func (m Move) IsCastle() bool    { return m.Flags().Has(FlagCastle) }
func (m Move) IsPromotion() bool { return m.Flags().Has(FlagPromotion) }
func (m Move) IsEnPassant() bool { return m.Flags().Has(FlagEnPassant) }
func (m Move) IsCheck() bool     { return m.Flags().Has(FlagCheck) }

// IsQuiet returns true if none of the capture, castle, promotion, en passant
// or check flags are set.
func (m Move) IsQuiet() bool {
	return m.Flags()&quietExcluder == 0
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.Promotion().Char())
	}
	return s
}

// Describe lists the flag names of the move followed by its squares,
// e.g. "Capture, Check from e4 to f5".
func (m Move) Describe() string {
	var names []string
	if m.IsCapture() {
		names = append(names, "Capture")
	}
	if m.IsEnPassant() {
		names = append(names, "En Passant")
	}
	if m.IsPromotion() {
		names = append(names, "Promotion to "+m.Promotion().String())
	}
	if m.IsCastle() {
		names = append(names, "Castle")
	}
	if m.IsCheck() {
		names = append(names, "Check")
	}
	if len(names) == 0 {
		names = append(names, "Quiet Move")
	}
	return fmt.Sprintf("%s from %s to %s", strings.Join(names, ", "), m.From(), m.To())
}
