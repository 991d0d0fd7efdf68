package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/table"
)

const (
	ActionJoin = "join"
	ActionMove = "move"

	ActionJoinAccepted = "join:accepted"
	ActionJoinRejected = "join:rejected"
	ActionError        = "error"
)

// Message is the wire envelope for every frame in both directions: inbound
// requests, transport-level responses and coordinator events alike.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type JoinPayload struct {
	Name string `json:"name"`
}

type MovePayload struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type ResponsePayload struct {
	Player *entity.Player `json:"player,omitempty"`
	Role   entity.Role    `json:"role,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func newMessage(action string, payload ResponsePayload) Message {
	return Message{
		Action:  action,
		Payload: json.RawMessage(mustMarshal(payload)),
	}
}

// newEventMessage lifts a coordinator event's action into the envelope and
// carries the rest of the event as the payload.
func newEventMessage(event table.Event) Message {
	return Message{
		Action:  event.Action,
		Payload: json.RawMessage(mustMarshal(event)),
	}
}

func mustMarshal(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
