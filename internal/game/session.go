package game

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/board"
)

// ErrSessionClosed is returned by requests made after Close.
var ErrSessionClosed = errors.New("session closed")

// Snapshot is a read-only view of a game at one point in time.
type Snapshot struct {
	FEN      string
	ToMove   board.Color
	Status   Status
	InCheck  bool
	Board    *board.Board
	History  []string
	SAN      []string
	StartFEN string
}

// Session serializes all access to one Game through a single goroutine.
// It is safe for concurrent use.
type Session struct {
	ID string

	requests  chan func(*Game)
	done      chan struct{}
	closeOnce sync.Once
}

// NewSession starts a session owning g.
func NewSession(g *Game) *Session {
	s := &Session{
		ID:       uuid.NewString(),
		requests: make(chan func(*Game)),
		done:     make(chan struct{}),
	}
	go s.loop(g)
	logx.Infof("session %s started from %s", s.ID, g.StartFEN())
	return s
}

func (s *Session) loop(g *Game) {
	for {
		select {
		case req := <-s.requests:
			req(g)
		case <-s.done:
			return
		}
	}
}

// do runs f on the session goroutine and waits for it to finish.
func (s *Session) do(ctx context.Context, f func(*Game)) error {
	finished := make(chan struct{})
	req := func(g *Game) {
		defer close(finished)
		f(g)
	}

	select {
	case s.requests <- req:
	case <-s.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	<-finished
	return nil
}

// LegalMoves returns the legal moves of the side to move.
func (s *Session) LegalMoves(ctx context.Context) ([]board.Move, error) {
	var moves []board.Move
	err := s.do(ctx, func(g *Game) {
		moves = g.LegalMoves()
	})
	return moves, err
}

// Play plays a move given in UCI form or, failing that, in SAN.
func (s *Session) Play(ctx context.Context, move string) (board.Move, error) {
	var (
		played  board.Move
		playErr error
	)
	err := s.do(ctx, func(g *Game) {
		played, playErr = g.PlayUCI(move)
		if errors.Is(playErr, ErrIllegalMove) {
			m, sanErr := g.PlaySAN(move)
			if _, _, _, uciErr := ParseUCIMove(move); sanErr == nil || uciErr != nil {
				played, playErr = m, sanErr
			}
		}
		if playErr != nil {
			return
		}
		if status := g.Status(); status.IsOver() {
			logx.WithContext(ctx).Infof("session %s: %s ends the game, %s", s.ID, move, status)
		}
	})
	if err != nil {
		return board.NoMove, err
	}
	if playErr != nil {
		logx.WithContext(ctx).Errorf("session %s: %v", s.ID, playErr)
	}
	return played, playErr
}

// Snapshot returns the current state of the game.
func (s *Session) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := s.do(ctx, func(g *Game) {
		snap = g.Snapshot()
	})
	return snap, err
}

// Close stops the session goroutine. Pending and later requests fail with
// ErrSessionClosed.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		logx.Infof("session %s closed", s.ID)
	})
}

// Snapshot returns the current state of the game.
func (g *Game) Snapshot() Snapshot {
	history := make([]string, len(g.moves))
	for i, m := range g.moves {
		history[i] = m.String()
	}
	return Snapshot{
		FEN:      g.ToFEN(),
		ToMove:   g.toMove,
		Status:   g.Status(),
		InCheck:  g.InCheck(),
		Board:    g.Board(),
		History:  history,
		SAN:      g.SANHistory(),
		StartFEN: g.startFEN,
	}
}
