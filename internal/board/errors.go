package board

import "errors"

var (
	// ErrInvalidMove is raised by MakeMove when its preconditions do not hold.
	ErrInvalidMove = errors.New("invalid move")
	// ErrInvalidPromotion is returned when a piece cannot promote to the requested type.
	ErrInvalidPromotion = errors.New("invalid promotion")
	// ErrNoKing is raised when a king position is queried for a side without a king.
	ErrNoKing = errors.New("king does not exist")
	// ErrInvalidPlacement is returned by LoadBoard for malformed placement strings.
	ErrInvalidPlacement = errors.New("invalid piece placement")
)
