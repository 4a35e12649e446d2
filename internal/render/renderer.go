// Package render draws board positions to PNG images.
package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/board"
)

// MinSquareSize is the smallest square that still fits a readable piece.
const MinSquareSize = 16

// ErrSquareSize is returned for square sizes below MinSquareSize.
var ErrSquareSize = errors.New("square size too small")

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:     color.RGBA{181, 136, 99, 255},  // Brown
		LegalMoveColor: color.RGBA{130, 151, 105, 200}, // Green dots
		LastMoveColor:  color.RGBA{205, 210, 106, 255}, // Yellow-green outline
		CheckColor:     color.RGBA{255, 100, 100, 180}, // Red
	}
}

// Marks are the overlays drawn on top of the squares.
type Marks struct {
	// Destinations get a dot, typically the legal moves of one piece.
	Destinations board.Bitboard
	// Check is the square of a king in check, or NoSquare.
	Check board.Square
}

// NoMarks draws the bare position.
var NoMarks = Marks{Check: board.NoSquare}

// Renderer handles all drawing operations.
type Renderer struct {
	sprites    *spriteSet
	theme      *Theme
	face       font.Face
	squareSize int
	flipped    bool
}

// NewRenderer creates a renderer for squares of squareSize pixels. Black is
// drawn at the bottom when flipped is set.
func NewRenderer(squareSize int, flipped bool) (*Renderer, error) {
	if squareSize < MinSquareSize {
		return nil, ErrSquareSize
	}
	sprites, err := newSpriteSet(squareSize)
	if err != nil {
		return nil, err
	}

	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(squareSize) / 5,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}

	return &Renderer{
		sprites:    sprites,
		theme:      DefaultTheme(),
		face:       face,
		squareSize: squareSize,
		flipped:    flipped,
	}, nil
}

// SetTheme replaces the color scheme.
func (r *Renderer) SetTheme(t *Theme) {
	r.theme = t
}

// BoardSize returns the board size in pixels.
func (r *Renderer) BoardSize() int {
	return 8 * r.squareSize
}

// SquareSize returns the size of one square in pixels.
func (r *Renderer) SquareSize() int {
	return r.squareSize
}

// SquareToScreen converts a board square to the pixel position of its top
// left corner.
func (r *Renderer) SquareToScreen(sq board.Square) (int, int) {
	file, rank := sq.File(), sq.Rank()
	if r.flipped {
		file, rank = 7-file, 7-rank
	}
	return file * r.squareSize, (7 - rank) * r.squareSize
}

// ScreenToSquare converts pixel coordinates to a board square.
func (r *Renderer) ScreenToSquare(x, y int) board.Square {
	size := r.BoardSize()
	if x < 0 || x >= size || y < 0 || y >= size {
		return board.NoSquare
	}
	file := x / r.squareSize
	rank := 7 - y/r.squareSize
	if r.flipped {
		file, rank = 7-file, 7-rank
	}
	return board.NewSquare(file, rank)
}

// Render draws b with its last move outlined and the given marks.
func (r *Renderer) Render(b *board.Board, marks Marks) *image.RGBA {
	size := r.BoardSize()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	filler := rasterx.NewFiller(size, size, scanner)

	r.drawSquares(filler)
	if marks.Check.IsValid() {
		r.fillSquare(filler, marks.Check, r.theme.CheckColor)
	}
	if from, to, ok := b.LastMove(); ok {
		stroker := rasterx.NewStroker(size, size, scanner)
		r.outlineSquare(stroker, from)
		r.outlineSquare(stroker, to)
	}
	r.drawCoordinates(img)

	for sq := board.A1; sq <= board.H8; sq++ {
		sprite := r.sprites.get(b.PieceAt(sq))
		if sprite == nil {
			continue
		}
		x, y := r.SquareToScreen(sq)
		dst := image.Rect(x, y, x+r.squareSize, y+r.squareSize)
		draw.Draw(img, dst, sprite, image.Point{}, draw.Over)
	}

	dots := marks.Destinations
	for !dots.Empty() {
		r.drawLegalMoveIndicator(filler, dots.PopLSB())
	}
	return img
}

// WritePNG renders b and encodes it as PNG.
func (r *Renderer) WritePNG(w io.Writer, b *board.Board, marks Marks) error {
	return png.Encode(w, r.Render(b, marks))
}

func (r *Renderer) drawSquares(f *rasterx.Filler) {
	for sq := board.A1; sq <= board.H8; sq++ {
		c := r.theme.LightSquare
		if (sq.File()+sq.Rank())%2 == 0 {
			c = r.theme.DarkSquare
		}
		r.fillSquare(f, sq, c)
	}
}

// fillSquare draws a colored overlay on a square.
func (r *Renderer) fillSquare(f *rasterx.Filler, sq board.Square, c color.RGBA) {
	x, y := r.SquareToScreen(sq)
	f.SetColor(c)
	rasterx.AddRect(float64(x), float64(y), float64(x+r.squareSize), float64(y+r.squareSize), 0, f)
	f.Draw()
	f.Clear()
}

func (r *Renderer) outlineSquare(s *rasterx.Stroker, sq board.Square) {
	width := float64(r.squareSize) / 16
	x, y := r.SquareToScreen(sq)
	inset := width / 2

	s.SetStroke(fixed.Int26_6(width*64), 4<<6, rasterx.ButtCap, nil, rasterx.FlatGap, rasterx.MiterClip)
	s.SetColor(r.theme.LastMoveColor)
	rasterx.AddRect(float64(x)+inset, float64(y)+inset,
		float64(x+r.squareSize)-inset, float64(y+r.squareSize)-inset, 0, s)
	s.Draw()
	s.Clear()
}

// drawLegalMoveIndicator draws a circle on a legal move square.
func (r *Renderer) drawLegalMoveIndicator(f *rasterx.Filler, sq board.Square) {
	x, y := r.SquareToScreen(sq)
	half := float64(r.squareSize) / 2
	f.SetColor(r.theme.LegalMoveColor)
	rasterx.AddCircle(float64(x)+half, float64(y)+half, float64(r.squareSize)*0.15, f)
	f.Draw()
	f.Clear()
}

// drawCoordinates labels files along the bottom edge and ranks along the
// left edge, each in the color of the opposite square.
func (r *Renderer) drawCoordinates(dst draw.Image) {
	pad := r.squareSize / 16
	metrics := r.face.Metrics()

	for i := 0; i < 8; i++ {
		// Bottom row
		sq := r.ScreenToSquare(i*r.squareSize, r.BoardSize()-1)
		d := font.Drawer{Dst: dst, Src: image.NewUniform(r.labelColor(sq)), Face: r.face}
		label := string(rune('a' + sq.File()))
		width := d.MeasureString(label).Ceil()
		d.Dot = fixed.P((i+1)*r.squareSize-width-pad, r.BoardSize()-pad)
		d.DrawString(label)

		// Left column
		sq = r.ScreenToSquare(0, i*r.squareSize)
		d.Src = image.NewUniform(r.labelColor(sq))
		d.Dot = fixed.P(pad, i*r.squareSize+pad+metrics.Ascent.Ceil())
		d.DrawString(string(rune('1' + sq.Rank())))
	}
}

func (r *Renderer) labelColor(sq board.Square) color.RGBA {
	if (sq.File()+sq.Rank())%2 == 0 {
		return r.theme.LightSquare
	}
	return r.theme.DarkSquare
}
