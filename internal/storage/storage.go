package storage

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/bytedance/sonic"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/board"
	"github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/game"
)

// Storage keys
const (
	keyGamePrefix = "game/"
)

// ErrGameNotFound is returned when no record exists for an ID.
var ErrGameNotFound = errors.New("game not found")

// Record is a saved game: the starting position plus every move played.
type Record struct {
	ID        string    `json:"id"`
	StartFEN  string    `json:"start_fen"`
	Moves     []string  `json:"moves"`
	SAN       []string  `json:"san"`
	FEN       string    `json:"fen"`
	Status    string    `json:"status"`
	Winner    string    `json:"winner,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRecord captures a game snapshot. The record has no ID until it is
// saved.
func NewRecord(snap game.Snapshot) *Record {
	r := &Record{
		StartFEN: snap.StartFEN,
		Moves:    snap.History,
		SAN:      snap.SAN,
		FEN:      snap.FEN,
		Status:   snap.Status.String(),
	}
	if snap.Status == game.Checkmate {
		r.Winner = snap.ToMove.Other().String()
	}
	return r
}

// Restore replays the record into a fresh game.
func (r *Record) Restore() (*game.Game, error) {
	g, err := game.ParseFEN(r.StartFEN)
	if err != nil {
		return nil, err
	}
	for i, mv := range r.Moves {
		if _, err := g.PlayUCI(mv); err != nil {
			return nil, fmt.Errorf("record %s, move %d: %w", r.ID, i+1, err)
		}
	}
	return g, nil
}

// Summary counts saved games by outcome.
type Summary struct {
	Games     int `json:"games"`
	WhiteWins int `json:"white_wins"`
	BlackWins int `json:"black_wins"`
	Draws     int `json:"draws"`
	Ongoing   int `json:"ongoing"`
}

// Summarize tallies the outcomes of records.
func Summarize(records []*Record) Summary {
	var s Summary
	for _, r := range records {
		s.Games++
		switch {
		case r.Status == game.Ongoing.String():
			s.Ongoing++
		case r.Winner == board.White.String():
			s.WhiteWins++
		case r.Winner == board.Black.String():
			s.BlackWins++
		default:
			s.Draws++
		}
	}
	return s
}

// DecisiveRate returns the share of finished games that ended in mate (0-100).
func (s Summary) DecisiveRate() float64 {
	finished := s.Games - s.Ongoing
	if finished == 0 {
		return 0
	}
	return float64(s.WhiteWins+s.BlackWins) / float64(finished) * 100
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the default data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens (or creates) the database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	logx.Infof("storage opened at %s", dir)
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte {
	return []byte(keyGamePrefix + id)
}

// Save writes r, assigning an ID and creation time on first save.
func (s *Storage) Save(r *Record) error {
	now := time.Now().UTC()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now

	data, err := sonic.Marshal(r)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(r.ID), data)
	})
	if err != nil {
		return err
	}
	logx.Infof("saved game %s (%d moves, %s)", r.ID, len(r.Moves), r.Status)
	return nil
}

// Load reads the record stored under id.
func (s *Storage) Load(id string) (*Record, error) {
	r := new(Record)

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrGameNotFound, id)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return sonic.Unmarshal(val, r)
		})
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// List returns every saved game, most recently updated first.
func (s *Storage) List() ([]*Record, error) {
	var records []*Record

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyGamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			r := new(Record)
			err := it.Item().Value(func(val []byte) error {
				return sonic.Unmarshal(val, r)
			})
			if err != nil {
				logx.Errorf("skipping unreadable record %s: %v", it.Item().Key(), err)
				continue
			}
			records = append(records, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].UpdatedAt.After(records[j].UpdatedAt)
	})
	return records, nil
}

// Delete removes the record stored under id.
func (s *Storage) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(gameKey(id)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", ErrGameNotFound, id)
			}
			return err
		}
		return txn.Delete(gameKey(id))
	})
}
