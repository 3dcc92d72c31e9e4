package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Score is a single play record. GameID, PlayerID and PlayedAt are fixed at
// creation; only the score value and the winner flag may change afterwards.
type Score struct {
	ID       string    `json:"id" gorm:"primaryKey;size:36"`
	GameID   string    `json:"game_id" gorm:"not null;index;size:36"`
	PlayerID string    `json:"player_id" gorm:"not null;index;size:36"`
	Score    int       `json:"score" gorm:"not null"`
	IsWinner bool      `json:"is_winner" gorm:"not null;default:false"`
	PlayedAt time.Time `json:"played_at"`

	// Relationships
	Game   *Game   `json:"game,omitempty"`
	Player *Player `json:"player,omitempty"`

	// Denormalized names for list/overview responses, filled after load.
	GameName   string `json:"game_name,omitempty" gorm:"-"`
	PlayerName string `json:"player_name,omitempty" gorm:"-"`
}

func (s *Score) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.PlayedAt.IsZero() {
		s.PlayedAt = time.Now().UTC()
	}
	return nil
}
