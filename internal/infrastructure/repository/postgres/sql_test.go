package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/israelis-abroad/footballmap/internal/domain/player"
	"github.com/lib/pq"
)

func TestDescribeStoreError(t *testing.T) {
	t.Run("maps undefined table to schema missing", func(t *testing.T) {
		err := describeStoreError(&pq.Error{Code: "42P01", Message: `relation "football_players" does not exist`})
		if !errors.Is(err, ErrSchemaMissing) {
			t.Fatalf("expected ErrSchemaMissing, got %v", err)
		}
	})

	t.Run("keeps wrapped unrelated errors", func(t *testing.T) {
		orig := fmt.Errorf("dial: %w", errors.New("connection refused"))
		if got := describeStoreError(orig); got != orig {
			t.Fatalf("expected original error, got %v", got)
		}
	})
}

func TestNullableString(t *testing.T) {
	if got := nullableString(sql.NullString{}); got != nil {
		t.Fatalf("expected nil for null string, got %q", *got)
	}
	got := nullableString(sql.NullString{String: "https://img/1.png", Valid: true})
	if got == nil || *got != "https://img/1.png" {
		t.Fatalf("unexpected value: %v", got)
	}
}

func TestBuildUpsertPlayerQuery(t *testing.T) {
	updated := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	query, args, err := buildUpsertPlayerQuery(player.Player{
		ExternalID:  " 1234 ",
		Name:        "Manor Solomon",
		Team:        "Leeds",
		Country:     "England",
		GamesPlayed: 30,
		Goals:       4,
		Assists:     6,
		Position:    "Midfielder",
		LastUpdated: updated,
	})
	if err != nil {
		t.Fatalf("build upsert query: %v", err)
	}

	if !strings.HasPrefix(query, "INSERT INTO football_players (player_id, name, date_of_birth, team, country, city,") {
		t.Fatalf("unexpected insert prefix: %s", query)
	}
	if !strings.Contains(query, "ON CONFLICT (player_id)") {
		t.Fatalf("expected upsert keyed by player_id: %s", query)
	}
	if !strings.Contains(query, "last_updated  = EXCLUDED.last_updated") {
		t.Fatalf("expected last_updated refresh on conflict: %s", query)
	}
	if len(args) != 13 {
		t.Fatalf("expected 13 args, got %d", len(args))
	}
	if args[0] != "1234" {
		t.Fatalf("expected trimmed external id, got %v", args[0])
	}
	if args[5] != player.UnknownCity {
		t.Fatalf("expected unknown city fallback, got %v", args[5])
	}
	if args[12] != updated {
		t.Fatalf("expected last_updated arg, got %v", args[12])
	}
}

func TestRowToPlayer(t *testing.T) {
	dob := time.Date(1999, 7, 24, 0, 0, 0, 0, time.UTC)
	got := rowToPlayer(playerTableModel{
		ID:          9,
		ExternalID:  "55",
		Name:        "Oscar Gloukh",
		DateOfBirth: sql.NullTime{Time: dob, Valid: true},
		City:        "Salzburg",
	})
	if got.ID != 9 || got.ExternalID != "55" || got.City != "Salzburg" {
		t.Fatalf("unexpected mapping: %+v", got)
	}
	if got.DateOfBirth == nil || !got.DateOfBirth.Equal(dob) {
		t.Fatalf("unexpected date of birth: %v", got.DateOfBirth)
	}
	if got.ImageURL != nil {
		t.Fatalf("expected nil image")
	}
}
