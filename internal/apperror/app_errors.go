package apperror

import "errors"

var (
	ErrOutOfBounds      = errors.New("position is out of bounds")
	ErrPositionOccupied = errors.New("position is already occupied")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrTableFull        = errors.New("table is already full")
	ErrTableNotReady    = errors.New("table is not ready")
	ErrNoLegalMove      = errors.New("no legal move available")
	ErrNotFound         = errors.New("not found")
)
