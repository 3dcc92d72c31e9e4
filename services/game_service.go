package services

import (
	"context"
	"errors"
	"strings"

	"scoreboard/models"
	"scoreboard/storage"

	"gorm.io/gorm"
)

type GameService struct {
	db    *gorm.DB
	blobs storage.Store
}

func NewGameService(db *gorm.DB, blobs storage.Store) *GameService {
	return &GameService{
		db:    db,
		blobs: blobs,
	}
}

type UpdateGameRequest struct {
	// Name is applied only when non-empty; an empty form value leaves the
	// current name untouched.
	Name  string
	Image *Attachment
}

// GameWithCount annotates a game with the number of scores referencing it.
// The count is computed per read, never stored.
type GameWithCount struct {
	models.Game
	ScoreCount int64 `json:"score_count"`
}

func (s *GameService) Create(ctx context.Context, name string, image *Attachment) (*models.Game, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errValidation("name is required")
	}

	game := models.Game{Name: name}

	if !image.empty() {
		url, err := s.blobs.Upload(ctx, "games/"+image.Filename, image.Data, image.ContentType)
		if err != nil {
			return nil, err
		}
		game.ImageURL = url
	}

	if err := s.db.WithContext(ctx).Create(&game).Error; err != nil {
		return nil, err
	}

	return &game, nil
}

func (s *GameService) Update(ctx context.Context, id string, req UpdateGameRequest) (*models.Game, error) {
	var game models.Game
	if err := s.db.WithContext(ctx).First(&game, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("game", id)
		}
		return nil, err
	}

	updates := map[string]interface{}{}

	if req.Name != "" {
		updates["name"] = req.Name
	}

	if !req.Image.empty() {
		// Replace the old image first so the previous blob is not leaked.
		discardBlob(ctx, s.blobs, game.ImageURL)

		url, err := s.blobs.Upload(ctx, "games/"+req.Image.Filename, req.Image.Data, req.Image.ContentType)
		if err != nil {
			return nil, err
		}
		updates["image_url"] = url
	}

	if len(updates) == 0 {
		return &game, nil
	}

	if err := s.db.WithContext(ctx).Model(&game).Updates(updates).Error; err != nil {
		return nil, err
	}

	return &game, nil
}

// Delete removes a game, its image, and every score referencing it. The score
// cascade and the game row removal happen in one transaction so readers never
// observe a partially deleted game.
func (s *GameService) Delete(ctx context.Context, id string) error {
	var game models.Game
	if err := s.db.WithContext(ctx).First(&game, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound("game", id)
		}
		return err
	}

	discardBlob(ctx, s.blobs, game.ImageURL)

	tx := s.db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("game_id = ?", id).Delete(&models.Score{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&game).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (s *GameService) List(ctx context.Context) ([]GameWithCount, error) {
	var games []models.Game
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&games).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		GameID string
		Count  int64
	}
	if err := s.db.WithContext(ctx).Model(&models.Score{}).
		Select("game_id, count(*) as count").
		Group("game_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.GameID] = row.Count
	}

	result := make([]GameWithCount, len(games))
	for i, game := range games {
		result[i] = GameWithCount{
			Game:       game,
			ScoreCount: counts[game.ID],
		}
	}

	return result, nil
}

func (s *GameService) Get(ctx context.Context, id string) (*models.Game, error) {
	var game models.Game
	err := s.db.WithContext(ctx).
		Preload("Scores", func(db *gorm.DB) *gorm.DB {
			return db.Order("scores.played_at DESC")
		}).
		Preload("Scores.Player").
		First(&game, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("game", id)
		}
		return nil, err
	}

	for i := range game.Scores {
		if game.Scores[i].Player != nil {
			game.Scores[i].PlayerName = game.Scores[i].Player.Name
		}
	}

	return &game, nil
}
