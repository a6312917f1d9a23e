package memory

import (
	"context"
	"testing"
	"time"

	"github.com/israelis-abroad/footballmap/internal/domain/player"
)

func TestPlayerRepository_UpsertIsIdempotentPerExternalID(t *testing.T) {
	ctx := context.Background()
	repo := NewPlayerRepository(nil)

	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(24 * time.Hour)

	if err := repo.Upsert(ctx, player.Player{ExternalID: "77", Name: "Dor Peretz", Team: "Venezia", Country: "Italy", Goals: 1, LastUpdated: first}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.Upsert(ctx, player.Player{ExternalID: "77", Name: "Dor Peretz", Team: "Venezia", Country: "Italy", Goals: 3, LastUpdated: second}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	rows, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(rows))
	}
	if rows[0].Goals != 3 {
		t.Fatalf("expected latest goals=3, got %d", rows[0].Goals)
	}
	if !rows[0].LastUpdated.After(first) {
		t.Fatalf("expected newer last_updated, got %s", rows[0].LastUpdated)
	}
	if rows[0].ID != 1 {
		t.Fatalf("expected id to be kept, got %d", rows[0].ID)
	}
	if rows[0].City != player.UnknownCity {
		t.Fatalf("expected unknown city fallback, got %q", rows[0].City)
	}
}

func TestPlayerRepository_KeepsImageWhenUpdateOmitsIt(t *testing.T) {
	ctx := context.Background()
	img := "https://media.example/p/5.png"
	repo := NewPlayerRepository([]player.Player{{ExternalID: "5", Name: "A", ImageURL: &img}})

	if err := repo.Upsert(ctx, player.Player{ExternalID: "5", Name: "A"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	rows, _ := repo.ListAll(ctx)
	if rows[0].ImageURL == nil || *rows[0].ImageURL != img {
		t.Fatalf("expected image to survive update, got %v", rows[0].ImageURL)
	}
	total, _ := repo.Count(ctx)
	if total != 1 {
		t.Fatalf("expected count=1, got %d", total)
	}
}

func TestPlayerRepository_RejectsMissingExternalID(t *testing.T) {
	repo := NewPlayerRepository(nil)
	if err := repo.Upsert(context.Background(), player.Player{Name: "nobody"}); err == nil {
		t.Fatalf("expected error for empty player_id")
	}
}
