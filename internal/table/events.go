package table

import (
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

const (
	EventMoveApplied  = "move:applied"
	EventBoardState   = "board:state"
	EventTurn         = "turn"
	EventPlayerJoined = "player:joined"
	EventPlayerLeft   = "player:left"
	EventGameOver     = "game:over"
	EventShutdown     = "server:shutdown"
)

// Event is a state-change notification fanned out to participants. Only the
// fields relevant to the action are set. The action routes the event; on the
// wire the transport lifts it into its message envelope.
type Event struct {
	Action  string          `json:"-"`
	Role    entity.Role     `json:"role,omitempty"`
	Name    string          `json:"name,omitempty"`
	Move    *entity.Move    `json:"move,omitempty"`
	Board   *entity.Board   `json:"board,omitempty"`
	Outcome *gomoku.Outcome `json:"outcome,omitempty"`
}
