package render

import (
	"fmt"
	"image"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/board"
)

// Piece outlines on a 45x45 canvas. Every piece stands on the same plinth.
const plinth = `<rect x="11" y="31" width="23" height="5"/>`

var pieceShapes = map[board.PieceType]string{
	board.Pawn: `<circle cx="22.5" cy="14" r="5"/>
		<path d="M15 31 L19 20 L26 20 L30 31 Z"/>`,
	board.Knight: `<path d="M14 31 L16 24 L21 21 L13 22 L11 18 L19 10 L21 7 L23 10 L30 15 L32 31 Z"/>
		<circle cx="18" cy="14" r="1"/>`,
	board.Bishop: `<circle cx="22.5" cy="8" r="2.5"/>
		<path d="M22.5 11 L29 20 L26 31 L19 31 L16 20 Z"/>`,
	board.Rook: `<path d="M13 10 L17 10 L17 13 L20.5 13 L20.5 10 L24.5 10 L24.5 13 L28 13 L28 10 L32 10 L32 17 L29 19 L29 31 L16 31 L16 19 L13 17 Z"/>`,
	board.Queen: `<path d="M11 13 L16 25 L17 11 L22.5 24 L28 11 L29 25 L34 13 L31 31 L14 31 Z"/>
		<circle cx="11" cy="12" r="2"/>
		<circle cx="17" cy="10" r="2"/>
		<circle cx="22.5" cy="9" r="2"/>
		<circle cx="28" cy="10" r="2"/>
		<circle cx="34" cy="12" r="2"/>`,
	board.King: `<path d="M21 5 L24 5 L24 8 L27 8 L27 11 L24 11 L24 15 L21 15 L21 11 L18 11 L18 8 L21 8 Z"/>
		<path d="M14 31 L11 21 L22.5 16 L34 21 L31 31 Z"/>`,
}

// pieceSVG builds the icon document for p.
func pieceSVG(p board.Piece) string {
	fill, stroke := "#ffffff", "#000000"
	if p.Color() == board.Black {
		fill, stroke = "#000000", "#ffffff"
	}

	var sb strings.Builder
	sb.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="45" height="45" viewBox="0 0 45 45">`)
	fmt.Fprintf(&sb, `<g fill="%s" stroke="%s" stroke-width="1.5" stroke-linejoin="round">`, fill, stroke)
	sb.WriteString(pieceShapes[p.Type()])
	sb.WriteString(plinth)
	sb.WriteString(`</g></svg>`)
	return sb.String()
}

// spriteSet holds one rasterized image per colored piece.
type spriteSet struct {
	pieces map[board.Piece]*image.RGBA
	size   int
}

func newSpriteSet(size int) (*spriteSet, error) {
	s := &spriteSet{
		pieces: make(map[board.Piece]*image.RGBA),
		size:   size,
	}
	for _, c := range []board.Color{board.White, board.Black} {
		for pt := board.Pawn; pt <= board.King; pt++ {
			p := board.NewPiece(pt, c)
			img, err := rasterize(pieceSVG(p), size)
			if err != nil {
				return nil, fmt.Errorf("render %s: %w", p, err)
			}
			s.pieces[p] = img
		}
	}
	return s, nil
}

// get ignores the moved bit.
func (s *spriteSet) get(p board.Piece) *image.RGBA {
	if p.IsEmpty() {
		return nil
	}
	return s.pieces[board.NewPiece(p.Type(), p.Color())]
}

func rasterize(svg string, size int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
	if err != nil {
		return nil, err
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return rgba, nil
}
