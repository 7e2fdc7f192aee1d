package model

import (
	"time"

	"gorm.io/datatypes"
)

// Game ids keep their "game-" prefix in storage, e.g. "game-calculos".
type Game struct {
	ID           string      `gorm:"primaryKey;size:64" json:"id"`
	Name         string      `gorm:"size:100;not null" json:"name"`
	Description  string      `gorm:"type:text" json:"description"`
	Enabled      bool        `gorm:"default:true" json:"enabled"`
	DisplayOrder int         `gorm:"default:0" json:"displayOrder"`
	Levels       []GameLevel `gorm:"foreignKey:GameID" json:"levels,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func (Game) TableName() string {
	return "games"
}

// GameLevel is the static configuration of one level of a game.
// Config holds free-form settings such as number ranges, the operation and UI hints.
type GameLevel struct {
	ID              uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	GameID          string            `gorm:"size:64;not null;uniqueIndex:idx_game_level" json:"gameId"`
	Level           int               `gorm:"not null;uniqueIndex:idx_game_level" json:"level"`
	ActivitiesCount int               `gorm:"not null;default:0" json:"activitiesCount"`
	Config          datatypes.JSONMap `gorm:"type:json" json:"config"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

func (GameLevel) TableName() string {
	return "game_levels"
}
