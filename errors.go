package libgo

import "errors"

// Every failure the engine can report is one of these sentinels, usually
// wrapped with position or move context. None of them are fatal; the engine
// panics only on internal bookkeeping violations.
var (
	ErrOutOfBounds   = errors.New("vertex is off the board")
	ErrOccupied      = errors.New("vertex is occupied")
	ErrIllegalMove   = errors.New("illegal move")
	ErrInvalidSize   = errors.New("invalid board size")
	ErrNothingToUndo = errors.New("move history is empty, can't undo")
)
