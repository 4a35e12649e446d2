package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/board"
	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/config"
	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/game"
	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/movegen"
	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/render"
	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/storage"
	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/uci"
)

type app struct {
	conf  config.Config
	print *printer
	in    io.Reader
	out   io.Writer
}

func newApp(c config.Config, color bool) *app {
	return &app{
		conf:  c,
		print: newPrinter(os.Stdout, color),
		in:    os.Stdin,
		out:   os.Stdout,
	}
}

// openStorage opens the game database under the configured data directory.
func (a *app) openStorage() (*storage.Storage, error) {
	dataDir := a.conf.DataDir
	if dataDir == "" {
		var err error
		if dataDir, err = storage.GetDataDir(); err != nil {
			return nil, err
		}
	}
	dbDir, err := storage.DatabaseDirIn(dataDir)
	if err != nil {
		return nil, err
	}
	return storage.Open(dbDir)
}

// positionFlags registers the -fen flag shared by most commands.
func positionFlags(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fen := fs.String("fen", game.StartFEN, "position in FEN")
	return fs, fen
}

func runMoves(a *app, args []string) error {
	fs, fen := positionFlags("moves")
	square := fs.String("square", "", "only moves of the piece on this square")
	if err := fs.Parse(args); err != nil {
		return err
	}
	g, err := game.ParseFEN(*fen)
	if err != nil {
		return err
	}

	moves := g.LegalMoves()
	dots := board.Empty
	if *square != "" {
		sq, err := board.ParseSquare(*square)
		if err != nil {
			return err
		}
		dots = g.LegalDestinations(sq)
		filtered := moves[:0]
		for _, m := range moves {
			if m.From() == sq {
				filtered = append(filtered, m)
			}
		}
		moves = filtered
	}

	a.print.Board(g.Board(), dots, checkSquare(g))
	fmt.Fprintf(a.out, "\n%s to move, %d legal moves\n", g.SideToMove(), len(moves))
	a.print.Moves(moves)
	return nil
}

func depthFlag(a *app, fs *flag.FlagSet) *int {
	return fs.Int("depth", a.conf.Perft.Depth, "search depth in plies")
}

func runPerft(a *app, args []string) error {
	fs, fen := positionFlags("perft")
	depth := depthFlag(a, fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	g, err := game.ParseFEN(*fen)
	if err != nil {
		return err
	}

	start := time.Now()
	nodes := movegen.Perft(g.Board(), g.SideToMove(), *depth)
	elapsed := time.Since(start)

	fmt.Fprintf(a.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(a.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Fprintf(a.out, "NPS: %.0f\n", nps)
	}
	return nil
}

func runDivide(a *app, args []string) error {
	fs, fen := positionFlags("divide")
	depth := depthFlag(a, fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	g, err := game.ParseFEN(*fen)
	if err != nil {
		return err
	}

	var progress *bar
	counts := movegen.Divide(g.Board(), g.SideToMove(), *depth, func(done, total int) {
		if progress == nil {
			progress = newBar(os.Stderr, total, fmt.Sprintf("divide %d", *depth))
		}
		if err := progress.Goto(done); err != nil {
			logx.Errorf("divide progress: %v", err)
		}
	})
	if progress != nil {
		progress.Close()
		fmt.Fprintln(os.Stderr)
	}

	moves := maps.Keys(counts)
	slices.Sort(moves)
	var total uint64
	for _, m := range moves {
		fmt.Fprintf(a.out, "%s: %d\n", m, counts[m])
		total += counts[m]
	}
	fmt.Fprintf(a.out, "\nMoves: %d\nNodes: %d\n", len(moves), total)
	return nil
}

func runRender(a *app, args []string) error {
	fs, fen := positionFlags("render")
	square := fs.String("square", "", "mark the legal destinations of this square")
	flip := fs.Bool("flip", a.conf.Render.Flipped, "draw black at the bottom")
	size := fs.Int("size", a.conf.Render.SquareSize, "square size in pixels")
	output := fs.String("o", "board.png", "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	g, err := game.ParseFEN(*fen)
	if err != nil {
		return err
	}

	r, err := render.NewRenderer(*size, *flip)
	if err != nil {
		return err
	}
	marks := render.Marks{Check: checkSquare(g)}
	if *square != "" {
		sq, err := board.ParseSquare(*square)
		if err != nil {
			return err
		}
		marks.Destinations = g.LegalDestinations(sq)
	}

	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	if err := r.WritePNG(f, g.Board(), marks); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logx.Infof("wrote %s", *output)
	return nil
}

func runUCI(a *app, args []string) error {
	u := uci.New(a.in, a.out)
	u.PerftDepth = a.conf.Perft.Depth
	return u.Run()
}

// runPlay reads moves (UCI or SAN) and commands from stdin. The game is saved
// on exit when at least one move was played.
func runPlay(a *app, args []string) error {
	fs, fen := positionFlags("play")
	if err := fs.Parse(args); err != nil {
		return err
	}
	g, err := game.ParseFEN(*fen)
	if err != nil {
		return err
	}

	ctx := context.Background()
	session := game.NewSession(g)
	defer session.Close()

	show := func() error {
		snap, err := session.Snapshot(ctx)
		if err != nil {
			return err
		}
		check := board.NoSquare
		if snap.InCheck {
			check = snap.Board.KingSquare(snap.ToMove)
		}
		a.print.Board(snap.Board, board.Empty, check)
		fmt.Fprintf(a.out, "%s to move, %s\n", snap.ToMove, snap.Status)
		return nil
	}
	if err := show(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(a.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			return a.saveSession(ctx, session)
		case "moves":
			moves, err := session.LegalMoves(ctx)
			if err != nil {
				return err
			}
			a.print.Moves(moves)
			continue
		case "fen":
			snap, err := session.Snapshot(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, snap.FEN)
			continue
		}

		if _, err := session.Play(ctx, line); err != nil {
			if errors.Is(err, game.ErrIllegalMove) || errors.Is(err, game.ErrGameOver) {
				a.print.Errorf("%v", err)
				continue
			}
			return err
		}
		if err := show(); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return a.saveSession(ctx, session)
}

func (a *app) saveSession(ctx context.Context, session *game.Session) error {
	snap, err := session.Snapshot(ctx)
	if err != nil {
		return err
	}
	if len(snap.History) == 0 {
		return nil
	}
	s, err := a.openStorage()
	if err != nil {
		return err
	}
	defer s.Close()

	r := storage.NewRecord(snap)
	if err := s.Save(r); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "saved game %s\n", r.ID)
	return nil
}

func runGames(a *app, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	s, err := a.openStorage()
	if err != nil {
		return err
	}
	defer s.Close()

	switch args[0] {
	case "list":
		records, err := s.List()
		if err != nil {
			return err
		}
		for _, r := range records {
			fmt.Fprintf(a.out, "%s  %s  %3d moves  %s\n",
				r.ID, r.UpdatedAt.Local().Format(time.DateTime), len(r.Moves), r.Status)
		}
	case "show":
		if len(args) < 2 {
			return errors.New("show needs a game ID")
		}
		r, err := s.Load(args[1])
		if err != nil {
			return err
		}
		g, err := r.Restore()
		if err != nil {
			return err
		}
		a.print.Board(g.Board(), board.Empty, checkSquare(g))
		fmt.Fprintf(a.out, "%s\n%s\n", strings.Join(r.SAN, " "), r.Status)
	case "delete":
		if len(args) < 2 {
			return errors.New("delete needs a game ID")
		}
		return s.Delete(args[1])
	case "stats":
		records, err := s.List()
		if err != nil {
			return err
		}
		sum := storage.Summarize(records)
		fmt.Fprintf(a.out, "games %d, white wins %d, black wins %d, draws %d, ongoing %d (%.0f%% decisive)\n",
			sum.Games, sum.WhiteWins, sum.BlackWins, sum.Draws, sum.Ongoing, sum.DecisiveRate())
	default:
		return fmt.Errorf("unknown games command %q", args[0])
	}
	return nil
}

func checkSquare(g *game.Game) board.Square {
	if !g.InCheck() {
		return board.NoSquare
	}
	return g.Board().KingSquare(g.SideToMove())
}
