package engine

import (
	"math/rand"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

// DefaultDepth is the default look-ahead depth of the heuristic search.
const DefaultDepth = 3

// Pattern scores used by the heuristic. The magnitudes keep a nearly
// completed line dominant over any positional or adjacency bonus.
const (
	scoreFive      = 100000
	scoreOpenFour  = 10000
	scoreOpenThree = 1000

	adjacentOwnBonus      = 50
	adjacentOpponentMalus = 30
)

// Engine recommends moves for a role from a board snapshot. It holds no
// state across calls besides its configuration.
type Engine struct {
	depth  int
	random bool
}

// New returns a deterministic engine with the given look-ahead depth.
// A non-positive depth falls back to DefaultDepth.
func New(depth int) *Engine {
	if depth <= 0 {
		depth = DefaultDepth
	}

	return &Engine{depth: depth}
}

// NewRandom returns a degraded engine that plays a uniform-random legal move.
func NewRandom() *Engine {
	return &Engine{random: true}
}

// Recommend picks a cell for the role. Priority order: an exact immediate
// win, then an exact block of the opponent's win or open four, then the best
// depth-limited heuristic score. Ties break in row-major scan order.
func (that *Engine) Recommend(board entity.Board, role entity.Role) (entity.Move, error) {
	if that.random {
		return that.randomMove(&board)
	}

	opponent := role.Other()

	// steps 1 and 2 are exact: the mark is tried on the owned snapshot and
	// the resulting line measured the same way the win detector counts
	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			if board.Cells[row][col] != entity.EmptyCell {
				continue
			}

			if wouldWin(&board, row, col, role) {
				return entity.Move{Row: row, Col: col}, nil
			}
		}
	}

	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			if board.Cells[row][col] != entity.EmptyCell {
				continue
			}

			if wouldWin(&board, row, col, opponent) || wouldOpenFour(&board, row, col, opponent) {
				return entity.Move{Row: row, Col: col}, nil
			}
		}
	}

	var (
		bestMove  entity.Move
		bestScore int
		found     bool
	)

	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			if board.Cells[row][col] != entity.EmptyCell {
				continue
			}

			score := that.simulateMove(&board, row, col, role, that.depth)
			if !found || score > bestScore {
				bestMove = entity.Move{Row: row, Col: col}
				bestScore = score
				found = true
			}
		}
	}

	if !found {
		return entity.Move{}, apperror.ErrNoLegalMove
	}

	return bestMove, nil
}

// randomMove picks any empty cell with uniform probability.
func (that *Engine) randomMove(board *entity.Board) (entity.Move, error) {
	available := make([]entity.Move, 0, entity.BoardSize*entity.BoardSize)
	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			if board.Cells[row][col] == entity.EmptyCell {
				available = append(available, entity.Move{Row: row, Col: col})
			}
		}
	}

	if len(available) == 0 {
		return entity.Move{}, apperror.ErrNoLegalMove
	}

	return available[rand.Intn(len(available))], nil //nolint: gosec // it's ok
}

// wouldWin reports whether marking (row, col) completes a run of WinLength
// for the role.
func wouldWin(board *entity.Board, row, col int, role entity.Role) bool {
	board.Cells[row][col] = role
	defer func() { board.Cells[row][col] = entity.EmptyCell }()

	for _, dir := range gomoku.Directions {
		run, _ := measureRun(board, row, col, dir[0], dir[1], role)
		if run >= gomoku.WinLength {
			return true
		}
	}

	return false
}

// wouldOpenFour reports whether marking (row, col) gives the role four
// consecutive marks with at least one empty extension cell.
func wouldOpenFour(board *entity.Board, row, col int, role entity.Role) bool {
	board.Cells[row][col] = role
	defer func() { board.Cells[row][col] = entity.EmptyCell }()

	for _, dir := range gomoku.Directions {
		run, openEnds := measureRun(board, row, col, dir[0], dir[1], role)
		if run >= gomoku.WinLength-1 && openEnds >= 1 {
			return true
		}
	}

	return false
}

// measureRun returns the length of the consecutive run through (row, col)
// along one axis and how many of its two ends extend into an empty cell.
func measureRun(board *entity.Board, row, col, dr, dc int, role entity.Role) (run, openEnds int) {
	run = 1

	for _, sign := range [2]int{1, -1} {
		i := 1
		for {
			r, c := row+dr*i*sign, col+dc*i*sign
			if r < 0 || r >= entity.BoardSize || c < 0 || c >= entity.BoardSize {
				break
			}
			if board.Cells[r][c] != role {
				if board.Cells[r][c] == entity.EmptyCell {
					openEnds++
				}
				break
			}
			run++
			i++
		}
	}

	return run, openEnds
}

// evaluatePosition scores placing the role's mark on (row, col): a positional
// bias toward the center, an adjacency bias for neighboring marks and a
// pattern bias per direction for runs the move would extend.
func (that *Engine) evaluatePosition(board *entity.Board, row, col int, role entity.Role) int {
	score := 0

	center := entity.BoardSize / 2
	distanceToCenter := abs(row-center) + abs(col-center)
	score += (10 - distanceToCenter) * 10

	adjacentOwn := 0
	adjacentOpponent := 0
	for _, dir := range gomoku.Directions {
		r, c := row+dir[0], col+dir[1]
		if r < 0 || r >= entity.BoardSize || c < 0 || c >= entity.BoardSize {
			continue
		}

		switch board.Cells[r][c] {
		case role:
			adjacentOwn++
		case entity.EmptyCell:
		default:
			adjacentOpponent++
		}
	}
	score += adjacentOwn * adjacentOwnBonus
	score -= adjacentOpponent * adjacentOpponentMalus

	for _, dir := range gomoku.Directions {
		count, empty := that.scanDirection(board, row, col, dir[0], dir[1], role)

		switch {
		case count >= gomoku.WinLength-1:
			score += scoreFive
		case count == 3 && empty >= 1:
			score += scoreOpenFour
		case count == 2 && empty >= 2:
			score += scoreOpenThree
		}
	}

	return score
}

// scanDirection walks up to WinLength-1 cells forward and backward along one
// axis, counting own marks still connected to the evaluated cell and the
// empty extension cells that keep the run open.
func (that *Engine) scanDirection(board *entity.Board, row, col, dr, dc int, role entity.Role) (count, empty int) {
	for _, sign := range [2]int{1, -1} {
		consecutive := true

		for i := 1; i < gomoku.WinLength; i++ {
			r, c := row+dr*i*sign, col+dc*i*sign
			if r < 0 || r >= entity.BoardSize || c < 0 || c >= entity.BoardSize {
				break
			}

			switch board.Cells[r][c] {
			case role:
				if consecutive {
					count++
				}
			case entity.EmptyCell:
				empty++
				consecutive = true
			default:
				consecutive = false
			}
		}
	}

	return count, empty
}

// simulateMove scores a move and subtracts half of the opponent's best
// response, recursing with swapped roles until the depth budget runs out.
func (that *Engine) simulateMove(board *entity.Board, row, col int, role entity.Role, depth int) int {
	if depth == 0 {
		return that.evaluatePosition(board, row, col, role)
	}

	score := that.evaluatePosition(board, row, col, role)
	opponent := role.Other()

	bestOpponentScore := 0
	for r := 0; r < entity.BoardSize; r++ {
		for c := 0; c < entity.BoardSize; c++ {
			if board.Cells[r][c] != entity.EmptyCell {
				continue
			}

			if opponentScore := that.simulateMove(board, r, c, opponent, depth-1); opponentScore > bestOpponentScore {
				bestOpponentScore = opponentScore
			}
		}
	}

	return score - bestOpponentScore/2
}

func abs(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
