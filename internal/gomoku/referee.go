package gomoku

import "github.com/rocketscienceinc/gomoku-backend/internal/entity"

// WinLength is the number of consecutive same-role marks needed to win.
const WinLength = 5

// Directions are the four scan axes: horizontal, vertical and both diagonals.
// The reverse of each axis is covered by the backward leg of the scan.
var Directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// Outcome is the derived result of a board, recomputed after every move.
type Outcome struct {
	Winner   entity.Role `json:"winner,omitempty"`
	Finished bool        `json:"finished"`
}

// IsDraw reports a finished game with no winner.
func (that Outcome) IsDraw() bool {
	return that.Finished && that.Winner == entity.EmptyCell
}

// CheckWinner scans every occupied cell along the four axes and returns the
// role owning a run of at least WinLength, or EmptyCell if there is none.
func CheckWinner(board *entity.Board) entity.Role {
	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			role := board.Cells[row][col]
			if role == entity.EmptyCell {
				continue
			}

			for _, dir := range Directions {
				if countLine(board, row, col, dir[0], dir[1], role) >= WinLength {
					return role
				}
			}
		}
	}

	return entity.EmptyCell
}

// Resolve derives the outcome of the board: a win, a draw on a full board,
// or a game still in progress.
func Resolve(board *entity.Board) Outcome {
	if winner := CheckWinner(board); winner != entity.EmptyCell {
		return Outcome{Winner: winner, Finished: true}
	}

	if board.IsFull() {
		return Outcome{Finished: true}
	}

	return Outcome{}
}

// countLine counts the run through (row, col) along one axis, walking both
// forward and backward until the edge or a foreign mark.
func countLine(board *entity.Board, row, col, dr, dc int, role entity.Role) int {
	count := 1

	for i := 1; i < WinLength; i++ {
		r, c := row+dr*i, col+dc*i
		if r < 0 || r >= entity.BoardSize || c < 0 || c >= entity.BoardSize {
			break
		}
		if board.Cells[r][c] != role {
			break
		}
		count++
	}

	for i := 1; i < WinLength; i++ {
		r, c := row-dr*i, col-dc*i
		if r < 0 || r >= entity.BoardSize || c < 0 || c >= entity.BoardSize {
			break
		}
		if board.Cells[r][c] != role {
			break
		}
		count++
	}

	return count
}
