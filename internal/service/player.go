package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/pkg"
)

type PlayerService interface {
	RegisterSession(ctx context.Context, name string, role entity.Role) (*entity.Player, error)
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	RemoveSession(ctx context.Context, id string) error
}

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	DeleteByID(ctx context.Context, id string) error
}

type playerService struct {
	playerRepo playerRepo
}

func NewPlayerService(playerRepo playerRepo) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
	}
}

// RegisterSession - records which role a connected participant occupies.
func (that *playerService) RegisterSession(ctx context.Context, name string, role entity.Role) (*entity.Player, error) {
	player := &entity.Player{
		ID:   pkg.GenerateNewSessionID(),
		Name: name,
		Role: role,
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to register session: %w", err)
	}

	return player, nil
}

func (that *playerService) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	existingPlayer, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get player by id %w", err)
	}

	return existingPlayer, nil
}

func (that *playerService) RemoveSession(ctx context.Context, id string) error {
	if err := that.playerRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}

	return nil
}
