package board

import "fmt"

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// PawnDirection returns the index offset of a single pawn push for the color.
func (c Color) PawnDirection() int {
	switch c {
	case White:
		return 8
	case Black:
		return -8
	default:
		return 0
	}
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	chars := []byte{' ', 'p', 'n', 'b', 'r', 'q', 'k'}
	if pt > King {
		return ' '
	}
	return chars[pt]
}

// IsPromotionOption reports whether a pawn may promote to the type.
func (pt PieceType) IsPromotionOption() bool {
	switch pt {
	case Queen, Rook, Bishop, Knight:
		return true
	}
	return false
}

// Piece packs a piece into a single byte:
// bits 0-2: piece type (NoPieceType means the square is empty)
// bit 3:    color (0=White, 1=Black)
// bit 4:    has moved
type Piece uint8

const (
	typeMask  Piece = 0b00111
	colorMask Piece = 0b01000
	movedMask Piece = 0b10000
	colorBit        = 3
)

// NoPiece is the empty square. It is also returned for out of bounds probes.
const NoPiece Piece = 0

// NewPiece creates an unmoved Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt == NoPieceType || pt > King || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) | Piece(c)<<colorBit
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	return PieceType(p & typeMask)
}

// Color returns the Color of the piece, or NoColor for an empty square.
func (p Piece) Color() Color {
	if p.IsEmpty() {
		return NoColor
	}
	return Color((p & colorMask) >> colorBit)
}

// HasMoved reports whether the piece has moved at least once.
func (p Piece) HasMoved() bool {
	return !p.IsEmpty() && p&movedMask != 0
}

func (p Piece) IsEmpty() bool    { return p.Type() == NoPieceType }
func (p Piece) IsOccupied() bool { return !p.IsEmpty() }
func (p Piece) IsPawn() bool     { return p.Type() == Pawn }
func (p Piece) IsKnight() bool   { return p.Type() == Knight }
func (p Piece) IsBishop() bool   { return p.Type() == Bishop }
func (p Piece) IsRook() bool     { return p.Type() == Rook }
func (p Piece) IsQueen() bool    { return p.Type() == Queen }
func (p Piece) IsKing() bool     { return p.Type() == King }

// IsSlider reports whether the piece slides (bishop, rook or queen).
func (p Piece) IsSlider() bool {
	return p.IsBishop() || p.IsRook() || p.IsQueen()
}

// IsLeaper reports whether the piece jumps a fixed offset (knight or king).
func (p Piece) IsLeaper() bool {
	return p.IsKnight() || p.IsKing()
}

// IsDiagonalPiece reports whether the piece slides along diagonals.
func (p Piece) IsDiagonalPiece() bool {
	return p.IsBishop() || p.IsQueen()
}

// IsLinePiece reports whether the piece slides along ranks and files.
func (p Piece) IsLinePiece() bool {
	return p.IsRook() || p.IsQueen()
}

// IsColor reports whether the piece is occupied and of color c.
func (p Piece) IsColor(c Color) bool {
	return !p.IsEmpty() && p.Color() == c
}

// IsTeamedWith reports whether both pieces exist and share a color.
func (p Piece) IsTeamedWith(other Piece) bool {
	if p.IsEmpty() || other.IsEmpty() {
		return false
	}
	return p.Color() == other.Color()
}

// IsEnemyOf reports whether both pieces exist and have opposite colors.
func (p Piece) IsEnemyOf(other Piece) bool {
	if p.IsEmpty() || other.IsEmpty() {
		return false
	}
	return p.Color() != other.Color()
}

// Moved returns the piece stamped as having moved. Already moved pieces are
// returned unchanged.
func (p Piece) Moved() Piece {
	if p.IsEmpty() {
		return p
	}
	return p | movedMask
}

// PromoteTo returns the piece a pawn becomes when it promotes to pt.
func (p Piece) PromoteTo(pt PieceType) (Piece, error) {
	if !p.IsPawn() {
		return NoPiece, fmt.Errorf("%w: %s cannot promote", ErrInvalidPromotion, p.Type())
	}
	if !pt.IsPromotionOption() {
		return NoPiece, fmt.Errorf("%w: cannot promote to %s", ErrInvalidPromotion, pt)
	}
	return NewPiece(pt, p.Color()).Moved(), nil
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p.IsEmpty() {
		return " "
	}
	c := p.Type().Char()
	if p.Color() == White {
		c -= 'a' - 'A'
	}
	return string(c)
}

// PieceFromChar converts a FEN character to an unmoved Piece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return NewPiece(Pawn, White)
	case 'N':
		return NewPiece(Knight, White)
	case 'B':
		return NewPiece(Bishop, White)
	case 'R':
		return NewPiece(Rook, White)
	case 'Q':
		return NewPiece(Queen, White)
	case 'K':
		return NewPiece(King, White)
	case 'p':
		return NewPiece(Pawn, Black)
	case 'n':
		return NewPiece(Knight, Black)
	case 'b':
		return NewPiece(Bishop, Black)
	case 'r':
		return NewPiece(Rook, Black)
	case 'q':
		return NewPiece(Queen, Black)
	case 'k':
		return NewPiece(King, Black)
	default:
		return NoPiece
	}
}
