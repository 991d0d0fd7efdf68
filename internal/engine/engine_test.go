package engine

import (
	"testing"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullBoard returns a board with no empty cell left.
func fullBoard() entity.Board {
	var board entity.Board
	for row := range board.Cells {
		for col := range board.Cells[row] {
			if (col+2*row)%4 < 2 {
				board.Cells[row][col] = entity.RoleBlack
			} else {
				board.Cells[row][col] = entity.RoleWhite
			}
		}
	}
	return board
}

func TestEngine_Recommend_ImmediateWin(t *testing.T) {
	tests := []struct {
		name     string
		cells    [][2]int
		expected entity.Move
	}{
		{
			name:     "Horizontal four is completed",
			cells:    [][2]int{{7, 3}, {7, 4}, {7, 5}, {7, 6}},
			expected: entity.Move{Row: 7, Col: 2},
		},
		{
			name:     "Vertical four is completed",
			cells:    [][2]int{{3, 7}, {4, 7}, {5, 7}, {6, 7}},
			expected: entity.Move{Row: 2, Col: 7},
		},
		{
			name:     "Diagonal four is completed",
			cells:    [][2]int{{3, 3}, {4, 4}, {5, 5}, {6, 6}},
			expected: entity.Move{Row: 2, Col: 2},
		},
		{
			name:     "Anti-diagonal four is completed",
			cells:    [][2]int{{3, 11}, {4, 10}, {5, 9}, {6, 8}},
			expected: entity.Move{Row: 2, Col: 12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: black already holds an open four
			var board entity.Board
			board.Turn = entity.RoleBlack
			for _, cell := range tt.cells {
				board.Cells[cell[0]][cell[1]] = entity.RoleBlack
			}

			// When: the engine recommends a move for black
			move, err := New(1).Recommend(board, entity.RoleBlack)

			// Then: it completes the line, first winning cell in row-major order
			require.NoError(t, err)
			assert.Equal(t, tt.expected, move)
		})
	}
}

func TestEngine_Recommend_ImmediateBlock(t *testing.T) {
	t.Run("Blocks the opponent's open four", func(t *testing.T) {
		// Given: black holds an open four and white is to move
		var board entity.Board
		board.Turn = entity.RoleWhite
		for col := 3; col < 7; col++ {
			board.Cells[7][col] = entity.RoleBlack
		}

		// When: the engine recommends a move for white
		move, err := New(1).Recommend(board, entity.RoleWhite)

		// Then: it occupies the first extension cell in row-major order
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 7, Col: 2}, move)
	})

	t.Run("Blocks the vertical open four", func(t *testing.T) {
		// Given: black holds a vertical open four
		var board entity.Board
		board.Turn = entity.RoleWhite
		for row := 5; row < 9; row++ {
			board.Cells[row][2] = entity.RoleBlack
		}

		// When: the engine recommends a move for white
		move, err := New(1).Recommend(board, entity.RoleWhite)

		// Then: it occupies the first extension cell in row-major order
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 4, Col: 2}, move)
	})

	t.Run("Blocks the opponent's open three before it becomes an open four", func(t *testing.T) {
		// Given: black holds an open three
		var board entity.Board
		board.Turn = entity.RoleWhite
		for col := 5; col < 8; col++ {
			board.Cells[7][col] = entity.RoleBlack
		}

		// When: the engine recommends a move for white
		move, err := New(1).Recommend(board, entity.RoleWhite)

		// Then: it takes an extension cell that would complete the open four
		require.NoError(t, err)
		assert.Contains(t, []entity.Move{{Row: 7, Col: 4}, {Row: 7, Col: 8}}, move)
	})
}

func TestEngine_Recommend_Heuristic(t *testing.T) {
	t.Run("Opens in the center of an empty board", func(t *testing.T) {
		// Given: an empty board
		var board entity.Board
		board.Turn = entity.RoleBlack

		// When: the engine recommends the first move
		move, err := New(1).Recommend(board, entity.RoleBlack)

		// Then: it plays the center
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 7, Col: 7}, move)
	})

	t.Run("Deterministic for the same position", func(t *testing.T) {
		// Given: a mid-game position
		var board entity.Board
		board.Cells[7][7] = entity.RoleBlack
		board.Cells[7][8] = entity.RoleWhite
		board.Cells[8][7] = entity.RoleBlack

		// When: the engine is asked twice
		first, err := New(2).Recommend(board, entity.RoleWhite)
		require.NoError(t, err)
		second, err := New(2).Recommend(board, entity.RoleWhite)
		require.NoError(t, err)

		// Then: it answers the same cell both times
		assert.Equal(t, first, second)
	})

	t.Run("Error when the board is full", func(t *testing.T) {
		// Given: a full board
		board := fullBoard()

		// When: the engine is asked for a move
		_, err := New(1).Recommend(board, entity.RoleBlack)

		// Then: an ErrNoLegalMove error should be returned
		require.ErrorIs(t, err, apperror.ErrNoLegalMove)
	})
}

func TestEngine_Recommend_Random(t *testing.T) {
	t.Run("Plays a legal move", func(t *testing.T) {
		// Given: a board with a single free cell
		board := fullBoard()
		board.Cells[9][4] = entity.EmptyCell

		// When: the degraded random engine picks a move
		move, err := NewRandom().Recommend(board, entity.RoleBlack)

		// Then: it picks the only legal cell
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 9, Col: 4}, move)
	})

	t.Run("Error when the board is full", func(t *testing.T) {
		// Given: a full board
		board := fullBoard()

		// When: the degraded random engine picks a move
		_, err := NewRandom().Recommend(board, entity.RoleBlack)

		// Then: an ErrNoLegalMove error should be returned
		require.ErrorIs(t, err, apperror.ErrNoLegalMove)
	})
}
