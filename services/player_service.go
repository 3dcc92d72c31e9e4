package services

import (
	"context"
	"errors"
	"strings"

	"scoreboard/models"
	"scoreboard/storage"

	"gorm.io/gorm"
)

type PlayerService struct {
	db    *gorm.DB
	blobs storage.Store
}

func NewPlayerService(db *gorm.DB, blobs storage.Store) *PlayerService {
	return &PlayerService{
		db:    db,
		blobs: blobs,
	}
}

type UpdatePlayerRequest struct {
	// Name is applied only when non-empty; an empty form value leaves the
	// current name untouched.
	Name   string
	Avatar *Attachment
}

// PlayerWithCount annotates a player with the number of scores referencing
// them. The count is computed per read, never stored.
type PlayerWithCount struct {
	models.Player
	ScoreCount int64 `json:"score_count"`
}

func (s *PlayerService) Create(ctx context.Context, name string, avatar *Attachment) (*models.Player, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errValidation("name is required")
	}

	player := models.Player{Name: name}

	if !avatar.empty() {
		url, err := s.blobs.Upload(ctx, "players/"+avatar.Filename, avatar.Data, avatar.ContentType)
		if err != nil {
			return nil, err
		}
		player.AvatarURL = url
	}

	if err := s.db.WithContext(ctx).Create(&player).Error; err != nil {
		return nil, err
	}

	return &player, nil
}

func (s *PlayerService) Update(ctx context.Context, id string, req UpdatePlayerRequest) (*models.Player, error) {
	var player models.Player
	if err := s.db.WithContext(ctx).First(&player, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("player", id)
		}
		return nil, err
	}

	updates := map[string]interface{}{}

	if req.Name != "" {
		updates["name"] = req.Name
	}

	if !req.Avatar.empty() {
		// Replace the old avatar first so the previous blob is not leaked.
		discardBlob(ctx, s.blobs, player.AvatarURL)

		url, err := s.blobs.Upload(ctx, "players/"+req.Avatar.Filename, req.Avatar.Data, req.Avatar.ContentType)
		if err != nil {
			return nil, err
		}
		updates["avatar_url"] = url
	}

	if len(updates) == 0 {
		return &player, nil
	}

	if err := s.db.WithContext(ctx).Model(&player).Updates(updates).Error; err != nil {
		return nil, err
	}

	return &player, nil
}

// Delete removes a player, their avatar, and every score referencing them,
// with the score cascade and the player row removal in one transaction.
func (s *PlayerService) Delete(ctx context.Context, id string) error {
	var player models.Player
	if err := s.db.WithContext(ctx).First(&player, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound("player", id)
		}
		return err
	}

	discardBlob(ctx, s.blobs, player.AvatarURL)

	tx := s.db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("player_id = ?", id).Delete(&models.Score{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&player).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (s *PlayerService) List(ctx context.Context) ([]PlayerWithCount, error) {
	var players []models.Player
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&players).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		PlayerID string
		Count    int64
	}
	if err := s.db.WithContext(ctx).Model(&models.Score{}).
		Select("player_id, count(*) as count").
		Group("player_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.PlayerID] = row.Count
	}

	result := make([]PlayerWithCount, len(players))
	for i, player := range players {
		result[i] = PlayerWithCount{
			Player:     player,
			ScoreCount: counts[player.ID],
		}
	}

	return result, nil
}

func (s *PlayerService) Get(ctx context.Context, id string) (*models.Player, error) {
	var player models.Player
	err := s.db.WithContext(ctx).
		Preload("Scores", func(db *gorm.DB) *gorm.DB {
			return db.Order("scores.played_at DESC")
		}).
		Preload("Scores.Game").
		First(&player, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("player", id)
		}
		return nil, err
	}

	for i := range player.Scores {
		if player.Scores[i].Game != nil {
			player.Scores[i].GameName = player.Scores[i].Game.Name
		}
	}

	return &player, nil
}
