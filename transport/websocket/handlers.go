package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/table"
)

// handleConnection runs the whole lifecycle of one participant: handshake,
// join, event pump, move loop and leave on disconnect.
func (that *Server) handleConnection(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleConnection")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log.Info("WebSocket connection established", "remote", conn.RemoteAddr())

	player, events, err := that.join(ctx, conn)
	if err != nil {
		log.Error("join failed", "error", err)
		return
	}

	// errors go back on the same single-writer loop as coordinator events
	outbound := make(chan Message, 8)

	writerDone := make(chan struct{})
	go that.writeLoop(conn, events, outbound, writerDone)

	that.readLoop(conn, player.Role, outbound)

	// leaving closes the event queue, which releases the writer
	that.table.Leave(player.Role)
	<-writerDone

	if err = that.players.RemoveSession(ctx, player.ID); err != nil {
		log.Error("failed to remove session", "error", err, "playerID", player.ID)
	}

	log.Info("connection closed", "role", player.Role, "name", player.Name)
}

// join waits for the first frame, which must carry the display name, seats
// the participant and registers its session.
func (that *Server) join(ctx context.Context, conn *websocket.Conn) (*entity.Player, <-chan table.Event, error) {
	var message Message
	if err := conn.ReadJSON(&message); err != nil {
		return nil, nil, fmt.Errorf("failed to read join request: %w", err)
	}

	if message.Action != ActionJoin {
		_ = conn.WriteJSON(newMessage(ActionJoinRejected, ResponsePayload{Error: "expected a join request"}))
		return nil, nil, fmt.Errorf("unexpected first action: %s", message.Action)
	}

	var payload JoinPayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		_ = conn.WriteJSON(newMessage(ActionJoinRejected, ResponsePayload{Error: "malformed join payload"}))
		return nil, nil, fmt.Errorf("failed to unmarshal join payload: %w", err)
	}

	if _, err := that.users.Register(ctx, payload.Name); err != nil {
		return nil, nil, fmt.Errorf("failed to register user: %w", err)
	}

	role, events, err := that.table.Join(payload.Name)
	if err != nil {
		_ = conn.WriteJSON(newMessage(ActionJoinRejected, ResponsePayload{Error: err.Error()}))
		return nil, nil, fmt.Errorf("failed to join table: %w", err)
	}

	player, err := that.players.RegisterSession(ctx, payload.Name, role)
	if err != nil {
		that.table.Leave(role)
		return nil, nil, fmt.Errorf("failed to register session: %w", err)
	}

	if err = conn.WriteJSON(newMessage(ActionJoinAccepted, ResponsePayload{Player: player, Role: role})); err != nil {
		that.table.Leave(role)
		return nil, nil, fmt.Errorf("failed to send join response: %w", err)
	}

	return player, events, nil
}

// writeLoop is the only writer on the connection. It drains coordinator
// events and transport-level responses until the participant is unseated.
func (that *Server) writeLoop(conn *websocket.Conn, events <-chan table.Event, outbound <-chan Message, done chan<- struct{}) {
	defer close(done)

	log := that.logger.With("method", "writeLoop")

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(newEventMessage(event)); err != nil {
				log.Error("failed to write event", "error", err)
				return
			}
		case message := <-outbound:
			if err := conn.WriteJSON(message); err != nil {
				log.Error("failed to write message", "error", err)
				return
			}
		}
	}
}

// readLoop handles inbound frames until the connection drops. A bad frame is
// answered with an error message to this participant only.
func (that *Server) readLoop(conn *websocket.Conn, role entity.Role, outbound chan<- Message) {
	log := that.logger.With("method", "readLoop", "role", role)

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			log.Info("connection read ended", "error", err)
			return
		}

		switch message.Action {
		case ActionMove:
			var payload MovePayload
			if err := json.Unmarshal(message.Payload, &payload); err != nil {
				that.reply(outbound, newMessage(ActionError, ResponsePayload{Error: "malformed move payload"}))
				continue
			}

			move := entity.Move{Row: payload.Row, Col: payload.Col}
			if _, err := that.table.SubmitMove(role, move); err != nil {
				that.reply(outbound, newMessage(ActionError, ResponsePayload{Error: err.Error()}))
			}
		default:
			that.reply(outbound, newMessage(ActionError, ResponsePayload{Error: "unknown action: " + message.Action}))
		}
	}
}

func (that *Server) reply(outbound chan<- Message, message Message) {
	select {
	case outbound <- message:
	default:
		that.logger.Warn("outbound queue full, reply dropped", "action", message.Action)
	}
}
