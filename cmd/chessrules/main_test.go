package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/config"
)

func testApp(t *testing.T, input string) (*app, *bytes.Buffer) {
	t.Helper()
	c, err := config.Default()
	if err != nil {
		t.Fatal(err)
	}
	c.DataDir = t.TempDir()
	c.Perft.Depth = 2

	var out bytes.Buffer
	return &app{
		conf:  c,
		print: newPrinter(&out, false),
		in:    strings.NewReader(input),
		out:   &out,
	}, &out
}

func TestMovesCommand(t *testing.T) {
	a, out := testApp(t, "")
	if err := runMoves(a, []string{"-square", "g1"}); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "2 legal moves") {
		t.Errorf("output: %q", got)
	}
	for _, mv := range []string{"g1f3", "g1h3"} {
		if !strings.Contains(got, mv) {
			t.Errorf("missing %s in %q", mv, got)
		}
	}
}

func TestPerftAndDivideCommands(t *testing.T) {
	a, out := testApp(t, "")
	if err := runPerft(a, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Nodes: 400\n") {
		t.Errorf("perft output: %q", out.String())
	}

	out.Reset()
	if err := runDivide(a, []string{"-depth", "1"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Moves: 20\nNodes: 20\n") {
		t.Errorf("divide output: %q", out.String())
	}

	if err := runPerft(a, []string{"-fen", "bad"}); err == nil {
		t.Error("bad FEN should fail")
	}
}

func TestRenderCommand(t *testing.T) {
	a, _ := testApp(t, "")
	path := filepath.Join(t.TempDir(), "board.png")
	if err := runRender(a, []string{"-o", path, "-square", "e2", "-size", "24"}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestPlaySavesGame(t *testing.T) {
	a, out := testApp(t, "e4\ne7e5\nKe3\nfen\nquit\n")
	if err := runPlay(a, nil); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2") {
		t.Errorf("fen not printed: %q", got)
	}
	if !strings.Contains(got, "illegal move") {
		t.Errorf("illegal move not reported: %q", got)
	}
	if !strings.Contains(got, "saved game") {
		t.Fatalf("game not saved: %q", got)
	}

	out.Reset()
	if err := runGames(a, []string{"stats"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "games 1") || !strings.Contains(out.String(), "ongoing 1") {
		t.Errorf("stats output: %q", out.String())
	}
}

func TestUCICommand(t *testing.T) {
	a, out := testApp(t, "position startpos moves e2e4\nperft\nquit\n")
	if err := runUCI(a, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Nodes searched: 600") {
		t.Errorf("uci output: %q", out.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestBarReportsErrors(t *testing.T) {
	if err := newBar(io.Discard, 10, "ok").Goto(5); err != nil {
		t.Errorf("Goto on a working writer: %v", err)
	}
	if err := newBar(io.Discard, 10, "overflow").Goto(11); err == nil {
		t.Error("Goto past the total should fail")
	}
	if err := newBar(failingWriter{}, 10, "broken").Goto(5); err == nil {
		t.Error("Goto should return the write error")
	}
}
