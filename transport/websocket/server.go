package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/table"
)

type gameTable interface {
	Join(name string) (entity.Role, <-chan table.Event, error)
	SubmitMove(role entity.Role, move entity.Move) (gomoku.Outcome, error)
	Leave(role entity.Role)
}

type playerService interface {
	RegisterSession(ctx context.Context, name string, role entity.Role) (*entity.Player, error)
	RemoveSession(ctx context.Context, id string) error
}

type userService interface {
	Register(ctx context.Context, name string) (*entity.User, error)
}

type Server struct {
	logger *slog.Logger

	table   gameTable
	players playerService
	users   userService

	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, gameTable gameTable, players playerService, users userService) *Server {
	return &Server{
		logger: logger.With("component", "websocket"),

		table:   gameTable,
		players: players,
		users:   users,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(_ *http.Request) bool { return true },
		},
	}
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.handleConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down websocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
