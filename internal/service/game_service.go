package service

import (
	"context"
	"errors"
	"reda_kids_backend/internal/model"
	"reda_kids_backend/internal/repository"
	"reda_kids_backend/internal/util"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GameService struct {
	GameRepo  *repository.GameRepository
	LevelRepo *repository.GameLevelRepository
}

func NewGameService(gameRepo *repository.GameRepository, levelRepo *repository.GameLevelRepository) *GameService {
	return &GameService{
		GameRepo:  gameRepo,
		LevelRepo: levelRepo,
	}
}

type GameInput struct {
	ID           string
	Name         string
	Description  string
	Enabled      *bool
	DisplayOrder *int
}

type LevelInput struct {
	Level           int
	ActivitiesCount int
	Config          map[string]interface{}
}

func (s *GameService) ListGames(ctx context.Context, includeDisabled bool) ([]model.Game, error) {
	return s.GameRepo.List(ctx, !includeDisabled)
}

func (s *GameService) GetGame(ctx context.Context, id string) (*model.Game, error) {
	game, err := s.GameRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

// ListLevels returns the levels of a game ordered by level number.
func (s *GameService) ListLevels(ctx context.Context, gameID string) ([]model.GameLevel, error) {
	if _, err := s.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	levels, err := s.LevelRepo.FindByGameID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return sortedLevels(levels), nil
}

func (s *GameService) CreateGame(ctx context.Context, in GameInput) (*model.Game, error) {
	if _, err := s.GameRepo.FindByID(ctx, in.ID); err == nil {
		return nil, util.ErrGameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	game := &model.Game{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		Enabled:     true,
	}
	if in.DisplayOrder != nil {
		game.DisplayOrder = *in.DisplayOrder
	}
	if err := s.GameRepo.Create(game); err != nil {
		return nil, err
	}

	// the column default turns a false insert into true
	if in.Enabled != nil && !*in.Enabled {
		game.Enabled = false
		if err := s.GameRepo.Update(game); err != nil {
			return nil, err
		}
	}
	return game, nil
}

func (s *GameService) UpdateGame(ctx context.Context, id string, in GameInput) (*model.Game, error) {
	game, err := s.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		game.Name = in.Name
	}
	if in.Description != "" {
		game.Description = in.Description
	}
	if in.Enabled != nil {
		game.Enabled = *in.Enabled
	}
	if in.DisplayOrder != nil {
		game.DisplayOrder = *in.DisplayOrder
	}

	if err := s.GameRepo.Update(game); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *GameService) CreateLevel(ctx context.Context, gameID string, in LevelInput) (*model.GameLevel, error) {
	if _, err := s.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	if err := s.ensureLevelFree(gameID, in.Level, 0); err != nil {
		return nil, err
	}

	level := &model.GameLevel{
		GameID:          gameID,
		Level:           in.Level,
		ActivitiesCount: in.ActivitiesCount,
		Config:          datatypes.JSONMap(in.Config),
	}
	if err := s.LevelRepo.Create(level); err != nil {
		return nil, err
	}
	return level, nil
}

func (s *GameService) UpdateLevel(id uint, in LevelInput) (*model.GameLevel, error) {
	level, err := s.findLevel(id)
	if err != nil {
		return nil, err
	}

	if in.Level > 0 && in.Level != level.Level {
		if err := s.ensureLevelFree(level.GameID, in.Level, level.ID); err != nil {
			return nil, err
		}
		level.Level = in.Level
	}
	if in.ActivitiesCount > 0 {
		level.ActivitiesCount = in.ActivitiesCount
	}
	if in.Config != nil {
		level.Config = datatypes.JSONMap(in.Config)
	}

	if err := s.LevelRepo.Update(level); err != nil {
		return nil, err
	}
	return level, nil
}

func (s *GameService) DeleteLevel(id uint) error {
	level, err := s.findLevel(id)
	if err != nil {
		return err
	}
	return s.LevelRepo.Delete(level)
}

func (s *GameService) findLevel(id uint) (*model.GameLevel, error) {
	level, err := s.LevelRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLevelNotFound
		}
		return nil, err
	}
	return level, nil
}

func (s *GameService) ensureLevelFree(gameID string, number int, selfID uint) error {
	existing, err := s.LevelRepo.FindByGameAndLevel(gameID, number)
	if err == nil && existing.ID != selfID {
		return util.ErrLevelExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}
