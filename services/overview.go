package services

import (
	"context"
	"sort"
	"time"

	"scoreboard/models"
)

// OverviewService builds the grouped per-game read model out of the flat
// score list. The grouping is derived on every call and never persisted.
type OverviewService struct {
	scores *ScoreService
}

func NewOverviewService(scores *ScoreService) *OverviewService {
	return &OverviewService{scores: scores}
}

type ScoreEntry struct {
	PlayerName string    `json:"player_name"`
	Score      int       `json:"score"`
	IsWinner   bool      `json:"is_winner"`
	PlayedAt   time.Time `json:"played_at"`
}

type GameSummary struct {
	GameName string       `json:"game_name"`
	Latest   time.Time    `json:"latest"`
	Scores   []ScoreEntry `json:"scores"`
}

func (s *OverviewService) Summaries(ctx context.Context) ([]GameSummary, error) {
	scores, err := s.scores.List(ctx)
	if err != nil {
		return nil, err
	}
	return BuildOverview(scores), nil
}

// BuildOverview groups scores by game name. Each group carries the game's
// scores and its latest activity (the max played-at in the group); groups are
// ordered by latest activity descending, ties broken by game name.
func BuildOverview(scores []models.Score) []GameSummary {
	groups := make(map[string]*GameSummary)
	var order []string

	for _, score := range scores {
		name := score.GameName
		if name == "" && score.Game != nil {
			name = score.Game.Name
		}

		group, ok := groups[name]
		if !ok {
			group = &GameSummary{
				GameName: name,
				Latest:   score.PlayedAt,
			}
			groups[name] = group
			order = append(order, name)
		}

		group.Scores = append(group.Scores, ScoreEntry{
			PlayerName: score.PlayerName,
			Score:      score.Score,
			IsWinner:   score.IsWinner,
			PlayedAt:   score.PlayedAt,
		})

		if score.PlayedAt.After(group.Latest) {
			group.Latest = score.PlayedAt
		}
	}

	result := make([]GameSummary, 0, len(order))
	for _, name := range order {
		result = append(result, *groups[name])
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Latest.Equal(result[j].Latest) {
			return result[i].GameName < result[j].GameName
		}
		return result[i].Latest.After(result[j].Latest)
	})

	return result
}
