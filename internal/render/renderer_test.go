package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/board"
)

func startBoard(t *testing.T) *board.Board {
	t.Helper()
	b := board.NewBoard()
	if err := b.LoadBoard(board.StartPlacement); err != nil {
		t.Fatal(err)
	}
	return b
}

func center(r *Renderer, img *image.RGBA, sq board.Square) color.RGBA {
	x, y := r.SquareToScreen(sq)
	return img.RGBAAt(x+r.SquareSize()/2, y+r.SquareSize()/2)
}

func TestNewRendererRejectsTinySquares(t *testing.T) {
	if _, err := NewRenderer(MinSquareSize-1, false); !errors.Is(err, ErrSquareSize) {
		t.Errorf("NewRenderer error = %v, want ErrSquareSize", err)
	}
}

func TestSquareMapping(t *testing.T) {
	tests := []struct {
		flipped bool
		sq      board.Square
		x, y    int
	}{
		{false, board.A1, 0, 7 * 32},
		{false, board.H8, 7 * 32, 0},
		{false, board.E4, 4 * 32, 4 * 32},
		{true, board.A1, 7 * 32, 0},
		{true, board.H8, 0, 7 * 32},
	}

	for _, tt := range tests {
		r, err := NewRenderer(32, tt.flipped)
		if err != nil {
			t.Fatal(err)
		}
		x, y := r.SquareToScreen(tt.sq)
		if x != tt.x || y != tt.y {
			t.Errorf("flipped=%v SquareToScreen(%s) = (%d,%d), want (%d,%d)", tt.flipped, tt.sq, x, y, tt.x, tt.y)
		}
		if got := r.ScreenToSquare(x+5, y+5); got != tt.sq {
			t.Errorf("flipped=%v ScreenToSquare = %s, want %s", tt.flipped, got, tt.sq)
		}
	}

	r, _ := NewRenderer(32, false)
	if got := r.ScreenToSquare(-1, 0); got != board.NoSquare {
		t.Errorf("off-board point mapped to %s", got)
	}
}

func TestRenderStartPosition(t *testing.T) {
	r, err := NewRenderer(48, false)
	if err != nil {
		t.Fatal(err)
	}
	theme := DefaultTheme()
	img := r.Render(startBoard(t), NoMarks)

	if got := img.Bounds().Dx(); got != 8*48 {
		t.Fatalf("image width = %d, want %d", got, 8*48)
	}
	if got := center(r, img, board.E4); got != theme.LightSquare {
		t.Errorf("empty light square e4 = %v, want %v", got, theme.LightSquare)
	}
	if got := center(r, img, board.D4); got != theme.DarkSquare {
		t.Errorf("empty dark square d4 = %v, want %v", got, theme.DarkSquare)
	}

	// Pieces cover the square centers.
	if got := center(r, img, board.E1); got == theme.DarkSquare || got == theme.LightSquare {
		t.Error("king on e1 was not drawn")
	}
}

func TestRenderMarks(t *testing.T) {
	r, err := NewRenderer(48, false)
	if err != nil {
		t.Fatal(err)
	}
	theme := DefaultTheme()

	b := startBoard(t)
	b.MakeMove(board.E2, board.E4, board.NoPieceType)

	marks := Marks{
		Destinations: board.SquareBB(board.D5).Set(board.D4),
		Check:        board.NoSquare,
	}
	img := r.Render(b, marks)

	if got := center(r, img, board.D5); got == theme.LightSquare {
		t.Error("destination d5 has no indicator")
	}
	if got := center(r, img, board.D4); got == theme.DarkSquare {
		t.Error("destination d4 has no indicator")
	}
	if got := center(r, img, board.E3); got != theme.DarkSquare {
		t.Errorf("unmarked square e3 = %v", got)
	}

	// Last move is outlined along the square edge.
	x, y := r.SquareToScreen(board.E2)
	if got := img.RGBAAt(x+r.SquareSize()/2, y+1); got != theme.LastMoveColor {
		t.Errorf("e2 outline = %v, want %v", got, theme.LastMoveColor)
	}

	img = r.Render(b, Marks{Check: board.H3})
	if got := center(r, img, board.H3); got == theme.LightSquare {
		t.Error("check square not highlighted")
	}
}

func TestWritePNG(t *testing.T) {
	r, err := NewRenderer(32, true)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := r.WritePNG(&buf, startBoard(t), NoMarks); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 256 || img.Bounds().Dy() != 256 {
		t.Errorf("decoded size = %v", img.Bounds())
	}
}

func TestPieceSVGParses(t *testing.T) {
	for _, c := range []board.Color{board.White, board.Black} {
		for pt := board.Pawn; pt <= board.King; pt++ {
			p := board.NewPiece(pt, c)
			if _, err := rasterize(pieceSVG(p), 24); err != nil {
				t.Errorf("%s: %v", p, err)
			}
		}
	}
}
