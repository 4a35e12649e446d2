package movegen

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/board"
)

func mustLoad(t *testing.T, placement string) *board.Board {
	t.Helper()
	b := board.NewBoard()
	if err := b.LoadBoard(placement); err != nil {
		t.Fatalf("LoadBoard(%q): %v", placement, err)
	}
	return b
}

func squares(sqs ...board.Square) board.Bitboard {
	var bb board.Bitboard
	for _, sq := range sqs {
		bb = bb.Set(sq)
	}
	return bb
}

func movesFrom(moves []board.Move, from board.Square) []board.Move {
	var out []board.Move
	for _, m := range moves {
		if m.From() == from {
			out = append(out, m)
		}
	}
	return out
}

func TestStartingPositionMoves(t *testing.T) {
	g := New(mustLoad(t, board.StartPlacement))
	moves := g.GenAllLegalMoves(board.White)
	if len(moves) != 20 {
		t.Fatalf("got %d moves, want 20", len(moves))
	}

	pawn, knight := 0, 0
	for _, m := range moves {
		switch g.Board().PieceAt(m.From()).Type() {
		case board.Pawn:
			pawn++
		case board.Knight:
			knight++
		}
		if !m.IsQuiet() {
			t.Errorf("%s should be quiet, flags %08b", m, m.Flags())
		}
	}
	if pawn != 16 || knight != 4 {
		t.Errorf("pawn moves = %d, knight moves = %d, want 16 and 4", pawn, knight)
	}
	if got := len(g.GenAllLegalMoves(board.Black)); got != 20 {
		t.Errorf("black has %d moves, want 20", got)
	}
}

func TestDoublePushNeedsEmptyPath(t *testing.T) {
	g := New(mustLoad(t, "4k3/8/8/8/8/4n3/4P3/4K3"))
	if got := g.GenLegalPieceMoves(board.E2); got != board.Empty {
		t.Errorf("blocked pawn moves = %v", got.Squares())
	}

	g = New(mustLoad(t, "4k3/8/8/8/4n3/8/4P3/4K3"))
	if got := g.GenLegalPieceMoves(board.E2); got != squares(board.E3) {
		t.Errorf("half blocked pawn moves = %v, want [e3]", got.Squares())
	}
}

func TestPinnedPieceStaysOnLine(t *testing.T) {
	tests := []struct {
		name      string
		placement string
		pinned    board.Square
		want      board.Bitboard
	}{
		{
			name:      "RookOnFile",
			placement: "4k3/4q3/8/8/8/8/4R3/4K3",
			pinned:    board.E2,
			want:      squares(board.E3, board.E4, board.E5, board.E6, board.E7),
		},
		{
			name:      "BishopOnDiagonal",
			placement: "4k3/8/8/b7/8/8/3B4/4K3",
			pinned:    board.D2,
			want:      squares(board.C3, board.B4, board.A5),
		},
		{
			name:      "KnightCannotMove",
			placement: "4k3/8/8/8/8/8/r2NK3/8",
			pinned:    board.D2,
			want:      board.Empty,
		},
		{
			name:      "RookAcrossDiagonal",
			placement: "4k3/8/8/8/7b/8/5R2/4K3",
			pinned:    board.F2,
			want:      board.Empty,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			g := New(mustLoad(t, tt.placement))
			if got := g.GenLegalPieceMoves(tt.pinned); got != tt.want {
				t.Errorf("moves of %s = %v, want %v", tt.pinned, got.Squares(), tt.want.Squares())
			}
			pinned := g.PinnedPieces(board.White)
			if len(pinned) != 1 || pinned[0] != tt.pinned {
				t.Errorf("PinnedPieces = %v, want [%s]", pinned, tt.pinned)
			}
		})
	}
}

func TestTwoBlockersAreNotPinned(t *testing.T) {
	g := New(mustLoad(t, "4k3/4q3/8/8/4R3/8/4R3/4K3"))
	if pinned := g.PinnedPieces(board.White); len(pinned) != 0 {
		t.Errorf("PinnedPieces = %v, want none", pinned)
	}
	if got := g.GenLegalPieceMoves(board.E2); !got.IsSet(board.A2) || !got.IsSet(board.H2) {
		t.Errorf("e2 rook should move freely along the rank, got %v", got.Squares())
	}
}

func TestSingleCheckRestrictsMoves(t *testing.T) {
	// Rook on e7 checks the king on e1 down the file.
	g := New(mustLoad(t, "3k4/4r3/8/8/8/8/3B4/4K1N1"))
	moves := g.GenAllLegalMoves(board.White)

	want := map[string]bool{"d2e3": true, "g1e2": true, "e1d1": true, "e1f1": true, "e1f2": true}
	if len(moves) != len(want) {
		t.Errorf("got %d moves %v, want %d", len(moves), moves, len(want))
	}
	for _, m := range moves {
		if !want[m.String()] {
			t.Errorf("unexpected move %s", m)
		}
	}
	if !g.InCheck(board.White) {
		t.Error("white should be in check")
	}
}

func TestAdjacentKingsGiveCheck(t *testing.T) {
	g := New(mustLoad(t, "8/8/8/8/8/8/3kK3/8"))
	for _, c := range []board.Color{board.White, board.Black} {
		if !g.InCheck(c) {
			t.Errorf("%s king next to the enemy king should be in check", c)
		}
	}
	if !underAttack(g.board, board.White) {
		t.Error("underAttack should see the enemy king")
	}
}

func TestCheckerCanBeCaptured(t *testing.T) {
	// Knight on d3 checks; the bishop on f1 can only capture it.
	g := New(mustLoad(t, "4k3/8/8/8/8/3n4/8/4KB2"))
	got := g.GenLegalPieceMoves(board.F1)
	if got != squares(board.D3) {
		t.Errorf("bishop moves = %v, want [d3]", got.Squares())
	}
	if got := g.GenLegalPieceMoves(board.E1); got != squares(board.D1, board.D2, board.E2) {
		t.Errorf("king moves = %v, want [d1 d2 e2]", got.Squares())
	}
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	// Rook on e8 and knight on d3 both check the king on e1.
	g := New(mustLoad(t, "k3r3/8/8/8/8/3n4/8/R3K3"))
	moves := g.GenAllLegalMoves(board.White)

	if len(moves) != 3 {
		t.Errorf("got %d moves %v, want 3", len(moves), moves)
	}
	for _, m := range moves {
		if m.From() != board.E1 {
			t.Errorf("non-king move %s in double check", m)
		}
		if m.To() == board.E2 || m.To() == board.F2 || m.To() == board.C1 {
			t.Errorf("king walks into an attacked square or castles: %s", m)
		}
	}
}

func TestKingCannotRetreatAlongCheckingLine(t *testing.T) {
	g := New(mustLoad(t, "4k3/8/8/8/8/8/8/r3K3"))
	got := g.GenLegalPieceMoves(board.E1)
	if got.IsSet(board.F1) || got.IsSet(board.D1) {
		t.Errorf("king moves %v include a square on the checking rank", got.Squares())
	}
	if got != squares(board.D2, board.E2, board.F2) {
		t.Errorf("king moves = %v, want [d2 e2 f2]", got.Squares())
	}
}

func TestKingCannotCaptureDefendedPiece(t *testing.T) {
	g := New(mustLoad(t, "4k3/8/8/8/8/8/3rr3/4K3"))
	got := g.GenLegalPieceMoves(board.E1)
	if got.IsSet(board.D2) {
		t.Error("d2 rook is defended by the e2 rook")
	}
	if got.IsSet(board.E2) {
		t.Error("e2 rook is defended by the d2 rook")
	}
}

func TestCastling(t *testing.T) {
	movedKing := func(b *board.Board) {
		b.RemovePiece(board.E1)
		b.AddPiece(board.NewPiece(board.King, board.White).Moved(), board.E1)
	}
	movedRook := func(b *board.Board) {
		b.RemovePiece(board.H1)
		b.AddPiece(board.NewPiece(board.Rook, board.White).Moved(), board.H1)
	}

	tests := []struct {
		name      string
		placement string
		modify    func(*board.Board)
		kingSide  bool
		queenSide bool
	}{
		{"BothSides", "r3k2r/8/8/8/8/8/8/R3K2R", nil, true, true},
		{"KingMoved", "r3k2r/8/8/8/8/8/8/R3K2R", movedKing, false, false},
		{"RookMoved", "r3k2r/8/8/8/8/8/8/R3K2R", movedRook, false, true},
		{"KingSideBlocked", "r3k2r/8/8/8/8/8/8/R3KB1R", nil, false, true},
		{"QueenSideKnightBlocks", "r3k2r/8/8/8/8/8/8/RN2K2R", nil, true, false},
		{"CrossingSquareAttacked", "r3kr2/8/8/8/8/8/8/R3K2R", nil, false, true},
		{"LandingSquareAttacked", "4k1r1/8/8/8/8/8/8/R3K2R", nil, false, true},
		{"RookPathAttackedOnly", "1r2k3/8/8/8/8/8/8/R3K2R", nil, true, true},
		{"InCheck", "4k3/4r3/8/8/8/8/8/R3K2R", nil, false, false},
		{"EnemyRook", "4k3/8/8/8/8/8/8/r3K2r", nil, false, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			b := mustLoad(t, tt.placement)
			if tt.modify != nil {
				tt.modify(b)
			}
			got := New(b).GenLegalPieceMoves(board.E1)
			if got.IsSet(board.G1) != tt.kingSide {
				t.Errorf("king side castling offered = %v, want %v", got.IsSet(board.G1), tt.kingSide)
			}
			if got.IsSet(board.C1) != tt.queenSide {
				t.Errorf("queen side castling offered = %v, want %v", got.IsSet(board.C1), tt.queenSide)
			}
		})
	}
}

func TestCastlingFlagsAndCheck(t *testing.T) {
	g := New(mustLoad(t, "5k2/8/8/8/8/8/8/4K2R"))
	flags := g.GetMoveFlags(board.E1, board.G1)
	if !flags.Has(board.FlagCastle) {
		t.Error("e1g1 should be flagged as castling")
	}
	if !flags.Has(board.FlagCheck) {
		t.Error("the rook on f1 gives check after castling")
	}
	if flags.Has(board.FlagCapture) {
		t.Error("castling is not a capture")
	}
}

func TestEnPassant(t *testing.T) {
	b := mustLoad(t, "4k3/3p4/8/4P3/8/8/8/4K3")
	g := New(b)

	b.MakeMove(board.D7, board.D5, board.Queen)
	if !g.GenLegalPieceMoves(board.E5).IsSet(board.D6) {
		t.Fatal("e5d6 en passant should be legal right after d7d5")
	}

	var ep board.Move
	for _, m := range g.GenAllLegalMoves(board.White) {
		if m.From() == board.E5 && m.To() == board.D6 {
			ep = m
		}
	}
	if !ep.IsEnPassant() || !ep.IsCapture() {
		t.Errorf("e5d6 flags = %08b, want en passant and capture", ep.Flags())
	}

	// One tempo later the right is gone.
	b.MakeMove(board.E1, board.E2, board.Queen)
	b.MakeMove(board.E8, board.E7, board.Queen)
	if g.GenLegalPieceMoves(board.E5).IsSet(board.D6) {
		t.Error("en passant must expire after one move")
	}
}

func TestEnPassantExposingKingOnRank(t *testing.T) {
	b := mustLoad(t, "8/8/8/8/k2Pp2R/8/8/4K3")
	b.SetEnPassantSquare(board.D3)
	got := New(b).GenLegalPieceMoves(board.E4)
	if got != squares(board.E3) {
		t.Errorf("e4 pawn moves = %v, want [e3]", got.Squares())
	}
}

func TestEnPassantCapturesCheckingPawn(t *testing.T) {
	b := mustLoad(t, "8/8/8/2k5/3Pp3/8/8/4K3")
	b.SetEnPassantSquare(board.D3)
	got := New(b).GenLegalPieceMoves(board.E4)
	if got != squares(board.D3) {
		t.Errorf("e4 pawn moves = %v, want [d3]", got.Squares())
	}
}

func TestPromotionExpansion(t *testing.T) {
	g := New(mustLoad(t, "4k3/1P6/8/8/8/8/8/4K3"))
	promos := movesFrom(g.GenAllLegalMoves(board.White), board.B7)
	if len(promos) != 4 {
		t.Fatalf("got %d promotions, want 4", len(promos))
	}

	want := []struct {
		pt    board.PieceType
		check bool
	}{
		{board.Queen, true},
		{board.Rook, true},
		{board.Bishop, false},
		{board.Knight, false},
	}
	for i, m := range promos {
		if !m.IsPromotion() || m.Promotion() != want[i].pt {
			t.Errorf("promotion %d = %s, want %s", i, m, want[i].pt)
		}
		if m.IsCheck() != want[i].check {
			t.Errorf("%s check = %v, want %v", m, m.IsCheck(), want[i].check)
		}
	}
}

func TestDiscoveredCheck(t *testing.T) {
	g := New(mustLoad(t, "4k3/8/8/8/8/8/4N3/4R1K1"))
	knightMoves := movesFrom(g.GenAllLegalMoves(board.White), board.E2)
	if len(knightMoves) != 5 {
		t.Fatalf("got %d knight moves, want 5", len(knightMoves))
	}
	for _, m := range knightMoves {
		if !m.IsCheck() {
			t.Errorf("%s uncovers the rook and must be flagged as check", m)
		}
		if !g.IsMoveCheck(m.From(), m.To()) {
			t.Errorf("IsMoveCheck(%s) = false", m)
		}
	}
}

func TestMissingKing(t *testing.T) {
	g := New(mustLoad(t, "4k3/8/8/8/8/8/8/R7"))
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNoKing) {
			t.Fatalf("panic = %v, want ErrNoKing", r)
		}
	}()
	g.GenAllLegalMoves(board.White)
}

func TestMissingEnemyKingMeansNoCheck(t *testing.T) {
	g := New(mustLoad(t, "8/8/8/8/8/8/8/R3K3"))
	moves := g.GenAllLegalMoves(board.White)
	if len(moves) == 0 {
		t.Fatal("expected moves")
	}
	for _, m := range moves {
		if m.IsCheck() {
			t.Errorf("%s flagged as check without an enemy king", m)
		}
	}
}

func TestIsMoveCheckMatchesGeneratedFlags(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	starts := []string{
		board.StartPlacement,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R",
	}

	for _, start := range starts {
		b := mustLoad(t, start)
		g := New(b)
		c := board.White
		for ply := 0; ply < 60; ply++ {
			moves := g.GenAllLegalMoves(c)
			if len(moves) == 0 {
				break
			}
			for _, m := range moves {
				if m.IsPromotion() && m.Promotion() != board.Queen {
					continue
				}
				if got := g.IsMoveCheck(m.From(), m.To()); got != m.IsCheck() {
					t.Errorf("%s on %s: IsMoveCheck = %v, flag = %v", m, b.Placement(), got, m.IsCheck())
				}
				if got := g.GetMoveFlags(m.From(), m.To()); !m.IsPromotion() && got != m.Flags() {
					t.Errorf("%s on %s: GetMoveFlags = %08b, generated %08b", m, b.Placement(), got, m.Flags())
				}
			}
			b.Apply(moves[rng.Intn(len(moves))])
			c = c.Other()
		}
	}
}
