package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/schollz/progressbar/v3"

	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/board"
)

// printer writes boards and move lists, colored unless disabled.
type printer struct {
	au  aurora.Aurora
	out io.Writer
}

func newPrinter(out io.Writer, color bool) *printer {
	return &printer{au: aurora.NewAurora(color), out: out}
}

// Board prints b with rank 8 at the top. dots marks destination squares and
// check marks a king in check.
func (p *printer) Board(b *board.Board, dots board.Bitboard, check board.Square) {
	from, to, hasLast := b.LastMove()

	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			sq := board.NewSquare(file, rank)
			sb.WriteString(p.square(b.PieceAt(sq), sq, dots.IsSet(sq),
				sq == check, hasLast && (sq == from || sq == to)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("   a  b  c  d  e  f  g  h\n")
	fmt.Fprint(p.out, sb.String())
}

func (p *printer) square(piece board.Piece, sq board.Square, dot, check, last bool) string {
	cell := " . "
	if dot && piece.IsEmpty() {
		cell = " * "
	}
	if piece.IsOccupied() {
		cell = " " + piece.String() + " "
	}

	v := p.au.Black(cell)
	if piece.IsOccupied() && piece.Color() == board.White {
		v = p.au.Blue(cell).Bold()
	}

	switch {
	case check:
		return v.BgRed().String()
	case dot:
		return v.BgYellow().String()
	case last:
		return v.BgCyan().String()
	case (sq.File()+sq.Rank())%2 == 0:
		return v.BgGreen().String()
	default:
		return v.BgWhite().String()
	}
}

// Moves prints one legal move per line with its flags.
func (p *printer) Moves(moves []board.Move) {
	for _, m := range moves {
		line := fmt.Sprintf("%-6s %s", m.String(), m.Describe())
		switch {
		case m.IsCheck():
			fmt.Fprintln(p.out, p.au.Yellow(line))
		case m.IsCapture():
			fmt.Fprintln(p.out, p.au.Red(line))
		default:
			fmt.Fprintln(p.out, line)
		}
	}
}

// Errorf prints a highlighted error line.
func (p *printer) Errorf(format string, args ...any) {
	fmt.Fprintln(p.out, p.au.Red(fmt.Sprintf(format, args...)).Bold())
}

// bar is a progress bar over the root moves of a perft run.
type bar progressbar.ProgressBar

func newBar(out io.Writer, total int, description string) *bar {
	return (*bar)(progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        aurora.Yellow("█").String(),
			SaucerHead:    aurora.Yellow("█").String(),
			SaucerPadding: " ",
			BarStart:      "|",
			BarEnd:        "|",
		}),
	))
}

func (b *bar) Goto(i int) error {
	return (*progressbar.ProgressBar)(b).Set(i)
}

func (b *bar) Close() {
	(*progressbar.ProgressBar)(b).Finish()
	(*progressbar.ProgressBar)(b).Close()
}
