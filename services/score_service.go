package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"scoreboard/models"

	"gorm.io/gorm"
)

type ScoreService struct {
	db *gorm.DB
}

func NewScoreService(db *gorm.DB) *ScoreService {
	return &ScoreService{db: db}
}

type CreateScoreRequest struct {
	GameID   string      `json:"game_id"`
	PlayerID string      `json:"player_id"`
	Score    interface{} `json:"score"`
	IsWinner bool        `json:"is_winner"`
}

type UpdateScoreRequest struct {
	// Both fields are optional; an absent field leaves the stored value
	// untouched. Game, player and played-at are immutable after creation.
	Score    interface{} `json:"score"`
	IsWinner *bool       `json:"is_winner"`
}

// coerceScore interprets a decoded JSON score value as an integer. Clients
// send either a number or a numeric string.
func coerceScore(value interface{}) (int, error) {
	switch v := value.(type) {
	case float64:
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, errValidation("score must be an integer")
		}
		return int(n), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, errValidation("score must be an integer")
		}
		return n, nil
	case int:
		return v, nil
	default:
		return 0, errValidation("score must be an integer")
	}
}

func (s *ScoreService) Create(ctx context.Context, req CreateScoreRequest) (*models.Score, error) {
	if req.GameID == "" || req.PlayerID == "" || req.Score == nil {
		return nil, errValidation("game_id, player_id, and score are required")
	}

	value, err := coerceScore(req.Score)
	if err != nil {
		return nil, err
	}

	// Both references must resolve before anything is written.
	var game models.Game
	if err := s.db.WithContext(ctx).First(&game, "id = ?", req.GameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("game", req.GameID)
		}
		return nil, err
	}
	var player models.Player
	if err := s.db.WithContext(ctx).First(&player, "id = ?", req.PlayerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("player", req.PlayerID)
		}
		return nil, err
	}

	score := models.Score{
		GameID:   req.GameID,
		PlayerID: req.PlayerID,
		Score:    value,
		IsWinner: req.IsWinner,
		PlayedAt: time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&score).Error; err != nil {
		return nil, err
	}

	score.Game = &game
	score.Player = &player
	score.GameName = game.Name
	score.PlayerName = player.Name

	return &score, nil
}

func (s *ScoreService) Update(ctx context.Context, id string, req UpdateScoreRequest) (*models.Score, error) {
	var score models.Score
	if err := s.db.WithContext(ctx).First(&score, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("score", id)
		}
		return nil, err
	}

	updates := map[string]interface{}{}

	if req.Score != nil {
		value, err := coerceScore(req.Score)
		if err != nil {
			return nil, err
		}
		updates["score"] = value
	}
	if req.IsWinner != nil {
		updates["is_winner"] = *req.IsWinner
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&score).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, id)
}

func (s *ScoreService) Delete(ctx context.Context, id string) error {
	var score models.Score
	if err := s.db.WithContext(ctx).First(&score, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound("score", id)
		}
		return err
	}

	return s.db.WithContext(ctx).Delete(&score).Error
}

func (s *ScoreService) List(ctx context.Context) ([]models.Score, error) {
	var scores []models.Score
	err := s.db.WithContext(ctx).
		Preload("Game").
		Preload("Player").
		Order("played_at DESC").
		Find(&scores).Error
	if err != nil {
		return nil, err
	}

	fillNames(scores)
	return scores, nil
}

func (s *ScoreService) Get(ctx context.Context, id string) (*models.Score, error) {
	var score models.Score
	err := s.db.WithContext(ctx).
		Preload("Game").
		Preload("Player").
		First(&score, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("score", id)
		}
		return nil, err
	}

	if score.Game != nil {
		score.GameName = score.Game.Name
	}
	if score.Player != nil {
		score.PlayerName = score.Player.Name
	}

	return &score, nil
}

func fillNames(scores []models.Score) {
	for i := range scores {
		if scores[i].Game != nil {
			scores[i].GameName = scores[i].Game.Name
		}
		if scores[i].Player != nil {
			scores[i].PlayerName = scores[i].Player.Name
		}
	}
}
