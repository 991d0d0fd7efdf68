package entity

import (
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

// BoardSize is the fixed dimension of the grid.
const BoardSize = 15

// Move addresses a single cell, 0-indexed from the top-left corner.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board holds the grid and the role that moves next. A move either fully
// succeeds (mark placed and turn flipped) or leaves the board untouched.
type Board struct {
	Cells [BoardSize][BoardSize]Role `json:"cells"`
	Turn  Role                       `json:"turn"`
}

func NewBoard() *Board {
	return &Board{
		Turn: RoleBlack,
	}
}

// Place puts the role's mark on the cell and flips the turn. All validation
// happens before the first mutation, so a failed call has no effect.
func (that *Board) Place(move Move, role Role) error {
	if move.Row < 0 || move.Row >= BoardSize || move.Col < 0 || move.Col >= BoardSize {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfBounds, move.Row, move.Col)
	}

	if that.Turn != role {
		return apperror.ErrNotYourTurn
	}

	if that.Cells[move.Row][move.Col] != EmptyCell {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrPositionOccupied, move.Row, move.Col)
	}

	that.Cells[move.Row][move.Col] = role
	that.Turn = role.Other()

	return nil
}

// IsFull reports whether every cell is occupied.
func (that *Board) IsFull() bool {
	for row := range that.Cells {
		for col := range that.Cells[row] {
			if that.Cells[row][col] == EmptyCell {
				return false
			}
		}
	}

	return true
}

// Snapshot returns a copy of the board safe to read without the table lock.
func (that *Board) Snapshot() Board {
	return *that
}
