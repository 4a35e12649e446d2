package game

import "github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/board"

// Zobrist hash keys for repetition detection.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece      [2][7][64]uint64 // [Color][PieceType][Square] - 7 to handle NoPieceType safely
	zobristEnPassant  [8]uint64        // One per file
	zobristCastling   [16]uint64       // All 16 castling combinations
	zobristSideToMove uint64           // XOR when black to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := &prng{state: 0x98F107A2BEEF1234}

	for c := board.White; c <= board.Black; c++ {
		for pt := board.Pawn; pt <= board.King; pt++ {
			for sq := board.A1; sq <= board.H8; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}
	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}
	for i := 0; i < 16; i++ {
		zobristCastling[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// positionKey hashes everything that makes two positions the same for the
// repetition rule. The en passant file only counts when a capture is possible.
func positionKey(b *board.Board, toMove board.Color, legal []board.Move) uint64 {
	var h uint64
	for i, p := range b.FetchPieces(board.NoColor) {
		if p.IsEmpty() {
			continue
		}
		h ^= zobristPiece[p.Color()][p.Type()][i]
	}

	h ^= zobristCastling[castlingRightsOf(b)]
	for _, m := range legal {
		if m.IsEnPassant() {
			h ^= zobristEnPassant[m.To().File()]
			break
		}
	}
	if toMove == board.Black {
		h ^= zobristSideToMove
	}
	return h
}
