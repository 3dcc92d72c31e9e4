package services

import (
	"reflect"
	"testing"
	"time"

	"scoreboard/models"
)

func mkScore(game, player string, value int, winner bool, playedAt time.Time) models.Score {
	return models.Score{
		GameName:   game,
		PlayerName: player,
		Score:      value,
		IsWinner:   winner,
		PlayedAt:   playedAt,
	}
}

func TestBuildOverviewGroupsByGame(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	scores := []models.Score{
		mkScore("Catan", "Alice", 10, false, base),
		mkScore("Azul", "Bob", 20, true, base.Add(2*time.Hour)),
		mkScore("Catan", "Bob", 15, true, base.Add(1*time.Hour)),
	}

	summaries := BuildOverview(scores)
	if len(summaries) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(summaries))
	}

	// Azul's single score is the most recent activity overall.
	if summaries[0].GameName != "Azul" {
		t.Errorf("First group = %q, want Azul", summaries[0].GameName)
	}
	if summaries[1].GameName != "Catan" {
		t.Errorf("Second group = %q, want Catan", summaries[1].GameName)
	}

	catan := summaries[1]
	if len(catan.Scores) != 2 {
		t.Fatalf("Catan group has %d entries, want 2", len(catan.Scores))
	}
	if !catan.Latest.Equal(base.Add(1 * time.Hour)) {
		t.Errorf("Catan latest = %v, want %v", catan.Latest, base.Add(1*time.Hour))
	}
}

func TestBuildOverviewLatestIsMaxNotLast(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	// Newest score first, as the score list endpoint returns them.
	scores := []models.Score{
		mkScore("Catan", "Alice", 10, false, base.Add(3*time.Hour)),
		mkScore("Catan", "Bob", 15, false, base),
	}

	summaries := BuildOverview(scores)
	if !summaries[0].Latest.Equal(base.Add(3 * time.Hour)) {
		t.Errorf("Latest = %v, want the max played-at %v", summaries[0].Latest, base.Add(3*time.Hour))
	}
}

func TestBuildOverviewTieBreaksByName(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	scores := []models.Score{
		mkScore("Zombicide", "Alice", 1, false, at),
		mkScore("Azul", "Bob", 2, false, at),
	}

	summaries := BuildOverview(scores)
	if summaries[0].GameName != "Azul" || summaries[1].GameName != "Zombicide" {
		t.Errorf("Tie-break order = [%q, %q], want name ascending", summaries[0].GameName, summaries[1].GameName)
	}
}

func TestBuildOverviewIdempotent(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	scores := []models.Score{
		mkScore("Catan", "Alice", 10, false, base),
		mkScore("Azul", "Bob", 20, true, base.Add(time.Hour)),
		mkScore("Catan", "Bob", 15, true, base.Add(2*time.Hour)),
	}

	first := BuildOverview(scores)
	second := BuildOverview(scores)
	if !reflect.DeepEqual(first, second) {
		t.Error("Two runs over the same score list produced different groupings")
	}
}

func TestBuildOverviewEmpty(t *testing.T) {
	if got := BuildOverview(nil); len(got) != 0 {
		t.Errorf("Expected no groups for an empty score list, got %d", len(got))
	}
}
