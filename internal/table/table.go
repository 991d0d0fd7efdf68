package table

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/engine"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

const (
	StatusWaiting  = "waiting"
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

// eventQueueSize bounds each participant's delivery queue. A full queue
// suspends that participant's delivery goroutine only; nothing is dropped.
const eventQueueSize = 32

// participant is a connected human. Events go through an ordered outbox that
// a dedicated goroutine drains into the bounded delivery channel, so a slow
// consumer stalls its own delivery and nothing else.
type participant struct {
	name   string
	events chan Event

	mu      sync.Mutex
	pending []Event
	wake    chan struct{}
	done    chan struct{}
}

func newParticipant(name string) *participant {
	that := &participant{
		name:   name,
		events: make(chan Event, eventQueueSize),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	go that.deliver()

	return that
}

// enqueue appends the event to the outbox. It never blocks, so fan-out under
// the table lock is issued independently per recipient.
func (that *participant) enqueue(event Event) {
	that.mu.Lock()
	that.pending = append(that.pending, event)
	that.mu.Unlock()

	select {
	case that.wake <- struct{}{}:
	default:
	}
}

// deliver moves outbox events into the bounded channel in order, suspending
// while the consumer has no capacity. The channel closes once the
// participant is stopped.
func (that *participant) deliver() {
	defer close(that.events)

	for {
		that.mu.Lock()
		if len(that.pending) == 0 {
			that.mu.Unlock()

			select {
			case <-that.wake:
				continue
			case <-that.done:
				return
			}
		}

		event := that.pending[0]
		that.pending = that.pending[1:]
		that.mu.Unlock()

		select {
		case that.events <- event:
		case <-that.done:
			return
		}
	}
}

// stop ends delivery. Events still queued for the departed consumer are
// discarded.
func (that *participant) stop() {
	close(that.done)
}

// aiController binds a search engine to the role it plays.
type aiController struct {
	role   entity.Role
	engine *engine.Engine
}

// Table is the session coordinator of one game. It owns the board and the
// participant registry; every mutation serializes through its lock, including
// the AI reply to a human move.
type Table struct {
	logger      *slog.Logger
	searchDepth int

	mu           sync.Mutex
	board        *entity.Board
	participants map[entity.Role]*participant
	ai           *aiController
	status       string
}

func New(logger *slog.Logger, searchDepth int) *Table {
	return &Table{
		logger:      logger.With("component", "table"),
		searchDepth: searchDepth,

		board:        entity.NewBoard(),
		participants: make(map[entity.Role]*participant),
		status:       StatusWaiting,
	}
}

// Join seats a participant: the first one gets black, the second white. While
// only one human is seated an AI controller holds the other role; a second
// human displaces it. Returns the receive side of the participant's queue.
func (that *Table) Join(name string) (entity.Role, <-chan Event, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.participants) >= 2 {
		return "", nil, apperror.ErrTableFull
	}

	role := entity.RoleBlack
	if _, ok := that.participants[role]; ok {
		role = entity.RoleWhite
	}

	if that.ai != nil && that.ai.role == role {
		that.ai = nil
	}

	joined := newParticipant(name)
	that.participants[role] = joined

	board := that.board.Snapshot()
	joined.enqueue(Event{Action: EventBoardState, Board: &board})
	that.broadcast(Event{Action: EventPlayerJoined, Role: role, Name: name})

	if len(that.participants) == 1 {
		that.ai = &aiController{
			role:   role.Other(),
			engine: engine.New(that.searchDepth),
		}
	}

	if that.status != StatusFinished {
		that.status = StatusOngoing
	}

	that.logger.Info("participant joined", "role", role, "name", name)

	return role, joined.events, nil
}

// SubmitMove applies the participant's move and, when the opposing role is
// AI-controlled and the game goes on, the AI's reply within the same critical
// section, so no other actor can interleave between the two.
func (that *Table) SubmitMove(role entity.Role, move entity.Move) (gomoku.Outcome, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	actors := len(that.participants)
	if that.ai != nil {
		actors++
	}

	if actors < 2 || that.status != StatusOngoing {
		return gomoku.Outcome{}, apperror.ErrTableNotReady
	}

	outcome, err := that.applyMove(role, move)
	if err != nil {
		return gomoku.Outcome{}, err
	}

	if outcome.Finished || that.ai == nil || that.board.Turn != that.ai.role {
		return outcome, nil
	}

	board := that.board.Snapshot()
	aiMove, err := that.ai.engine.Recommend(board, that.ai.role)
	if err != nil {
		// unreachable on a non-full board; the human keeps the turn advantage
		that.logger.Error("engine found no move", "error", err)
		return outcome, nil
	}

	outcome, err = that.applyMove(that.ai.role, aiMove)
	if err != nil {
		that.logger.Error("engine produced an illegal move", "error", err, "move", aiMove)
		return gomoku.Outcome{}, err
	}

	return outcome, nil
}

// Leave unseats a participant and tells the remaining one. When the last
// human leaves, the board and the AI binding reset for the next game.
func (that *Table) Leave(role entity.Role) {
	that.mu.Lock()
	defer that.mu.Unlock()

	leaving, ok := that.participants[role]
	if !ok {
		return
	}

	delete(that.participants, role)
	leaving.stop()

	that.broadcast(Event{Action: EventPlayerLeft, Role: role})

	if len(that.participants) == 0 {
		that.board = entity.NewBoard()
		that.ai = nil
		that.status = StatusWaiting
	}

	that.logger.Info("participant left", "role", role, "name", leaving.name)
}

// Shutdown notifies every participant that the server is going away. The
// board is left as is; process termination is the caller's job.
func (that *Table) Shutdown() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.broadcast(Event{Action: EventShutdown})
}

// Status reports the table's lifecycle state.
func (that *Table) Status() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.status
}

// applyMove mutates the board and fans out the resulting events. Callers hold
// the lock.
func (that *Table) applyMove(role entity.Role, move entity.Move) (gomoku.Outcome, error) {
	if err := that.board.Place(move, role); err != nil {
		return gomoku.Outcome{}, err
	}

	board := that.board.Snapshot()
	that.broadcast(Event{Action: EventMoveApplied, Role: role, Move: &move})
	that.broadcast(Event{Action: EventBoardState, Board: &board})

	outcome := gomoku.Resolve(that.board)
	if outcome.Finished {
		that.status = StatusFinished
		that.broadcast(Event{Action: EventGameOver, Outcome: &outcome})

		that.logger.Info("game over", "winner", outcome.Winner, "draw", outcome.IsDraw())

		return outcome, nil
	}

	if next, ok := that.participants[that.board.Turn]; ok {
		next.enqueue(Event{Action: EventTurn, Role: that.board.Turn})
	}

	return outcome, nil
}

// broadcast queues the event for every participant, each through its own
// outbox.
func (that *Table) broadcast(event Event) {
	for _, p := range that.participants {
		p.enqueue(event)
	}
}
