// chessrules inspects chess positions: legal moves, perft counts, PNG
// diagrams, interactive play and saved games.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/config"
)

var (
	configFile = flag.String("f", "", "the config file")
	noColor    = flag.Bool("nocolor", false, "disable colored output")
)

type command struct {
	name  string
	usage string
	run   func(app *app, args []string) error
}

var commands = []command{
	{"moves", "moves [-fen FEN] [-square SQ]  list legal moves", runMoves},
	{"perft", "perft [-fen FEN] [-depth N]     count leaf nodes", runPerft},
	{"divide", "divide [-fen FEN] [-depth N]    perft below each root move", runDivide},
	{"render", "render [-fen FEN] [-square SQ] [-flip] -o FILE  write a PNG diagram", runRender},
	{"play", "play [-fen FEN]                 play moves from stdin", runPlay},
	{"uci", "uci                             run the protocol loop on stdin", runUCI},
	{"games", "games list|show ID|delete ID|stats  manage saved games", runGames},
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: chessrules [-f config.yaml] [-nocolor] <command> [args]\n\ncommands:\n")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %s\n", c.usage)
	}
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	c, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := c.SetupLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer logx.Close()

	a := newApp(c, !*noColor)
	name := flag.Arg(0)
	for _, cmd := range commands {
		if cmd.name != name {
			continue
		}
		if err := cmd.run(a, flag.Args()[1:]); err != nil {
			a.print.Errorf("%s: %v", name, err)
			logx.Close()
			os.Exit(1)
		}
		return
	}

	usage()
	os.Exit(2)
}
