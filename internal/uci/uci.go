// Package uci speaks the position and perft subset of the Universal Chess
// Interface, plus a few inspection commands.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/game"
	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/movegen"
)

const defaultPerftDepth = 4

// UCI implements the protocol loop over one game.
type UCI struct {
	game *game.Game
	in   io.Reader
	out  io.Writer

	// PerftDepth is used when perft is given no depth.
	PerftDepth int
}

// New creates a protocol handler reading commands from in.
func New(in io.Reader, out io.Writer) *UCI {
	return &UCI{
		game:       game.New(),
		in:         in,
		out:        out,
		PerftDepth: defaultPerftDepth,
	}
}

// Game returns the current game.
func (u *UCI) Game() *game.Game {
	return u.game
}

// Run reads commands until quit or end of input.
func (u *UCI) Run() error {
	scanner := bufio.NewScanner(u.in)

	for scanner.Scan() {
		if !u.Execute(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// Execute handles one command line. It returns false after quit.
func (u *UCI) Execute(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}

	parts := strings.Fields(line)
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "uci":
		u.handleUCI()
	case "isready":
		u.println("readyok")
	case "ucinewgame":
		u.game = game.New()
	case "position":
		if movegen.DebugMoveValidation {
			logx.Debugf("position %s", strings.Join(args, " "))
		}
		u.handlePosition(args)
	case "go":
		u.handleGo(args)
	case "quit":
		return false
	// Debug commands
	case "d":
		u.handleDisplay()
	case "moves":
		u.handleMoves()
	case "perft":
		u.handlePerft(args)
	default:
		u.printf("Unknown command: %s\n", cmd)
	}
	return true
}

func (u *UCI) println(s string) {
	fmt.Fprintln(u.out, s)
}

func (u *UCI) printf(format string, args ...any) {
	fmt.Fprintf(u.out, format, args...)
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	u.println("id name chessrules")
	u.println("id author Tastychemicals")
	u.println("uciok")
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
//
// On any error the previous position is kept.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	var g *game.Game
	switch args[0] {
	case "startpos":
		g = game.New()
	case "fen":
		var err error
		g, err = game.ParseFEN(strings.Join(args[1:movesAt], " "))
		if err != nil {
			u.printf("info string Invalid FEN: %v\n", err)
			return
		}
	default:
		return
	}

	if movesAt < len(args) {
		for _, moveStr := range args[movesAt+1:] {
			if _, err := g.PlayUCI(moveStr); err != nil {
				u.printf("info string Invalid move: %v\n", err)
				return
			}
		}
	}
	u.game = g

	if movegen.DebugMoveValidation {
		logx.Debugf("after position setup: fen=%s inCheck=%v legal=%d",
			g.ToFEN(), g.InCheck(), len(g.LegalMoves()))
	}
}

// handleGo only supports "go perft <depth>"; searching is out of scope.
func (u *UCI) handleGo(args []string) {
	if len(args) > 0 && args[0] == "perft" {
		u.handlePerft(args[1:])
		return
	}
	u.println("info string only go perft is supported")
}

func (u *UCI) handleDisplay() {
	u.printf("%s\n", u.game.Board())
	u.printf("Fen: %s\n", u.game.ToFEN())
	u.printf("Status: %s\n", u.game.Status())
}

func (u *UCI) handleMoves() {
	legal := u.game.LegalMoves()
	moves := make([]string, len(legal))
	for i, m := range legal {
		moves[i] = m.String()
	}
	slices.Sort(moves)
	u.println(strings.Join(moves, " "))
}

// handlePerft prints the node count below each root move, then the total.
func (u *UCI) handlePerft(args []string) {
	depth := u.PerftDepth
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 1 {
			u.printf("info string Invalid depth: %s\n", args[0])
			return
		}
		depth = d
	}

	start := time.Now()
	counts := movegen.Divide(u.game.Board(), u.game.SideToMove(), depth, nil)
	elapsed := time.Since(start)

	moves := maps.Keys(counts)
	slices.Sort(moves)
	var nodes uint64
	for _, m := range moves {
		u.printf("%s: %d\n", m, counts[m])
		nodes += counts[m]
	}

	u.printf("\nNodes searched: %d\n", nodes)
	logx.Infof("perft %d: %d nodes in %v", depth, nodes, elapsed)
}
