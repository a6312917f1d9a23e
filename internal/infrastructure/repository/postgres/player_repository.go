package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/israelis-abroad/footballmap/internal/domain/player"
	qb "github.com/israelis-abroad/footballmap/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

const playersTable = "football_players"

// Every mutable column is refreshed on conflict; id and player_id never change.
const upsertPlayerSuffix = `ON CONFLICT (player_id)
DO UPDATE SET
	name          = EXCLUDED.name,
	date_of_birth = COALESCE(EXCLUDED.date_of_birth, football_players.date_of_birth),
	team          = EXCLUDED.team,
	country       = EXCLUDED.country,
	city          = EXCLUDED.city,
	games_played  = EXCLUDED.games_played,
	goals         = EXCLUDED.goals,
	assists       = EXCLUDED.assists,
	position      = EXCLUDED.position,
	player_number = EXCLUDED.player_number,
	image         = COALESCE(EXCLUDED.image, football_players.image),
	last_updated  = EXCLUDED.last_updated`

var playerSelectColumns = []string{
	"id",
	"player_id",
	"name",
	"date_of_birth",
	"team",
	"country",
	"city",
	"games_played",
	"goals",
	"assists",
	"position",
	"player_number",
	"image",
	"last_updated",
}

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Upsert(ctx context.Context, p player.Player) error {
	query, args, err := buildUpsertPlayerQuery(p)
	if err != nil {
		return fmt.Errorf("build upsert football_players query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert football_players player_id=%s: %w", p.ExternalID, describeStoreError(err))
	}
	return nil
}

func (r *PlayerRepository) ListAll(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From(playersTable).OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select football_players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select football_players: %w", describeStoreError(err))
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToPlayer(row))
	}
	return out, nil
}

func (r *PlayerRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From(playersTable).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count football_players query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count football_players: %w", describeStoreError(err))
	}
	return total, nil
}

func buildUpsertPlayerQuery(p player.Player) (string, []any, error) {
	lastUpdated := p.LastUpdated
	if lastUpdated.IsZero() {
		lastUpdated = time.Now().UTC()
	}

	return qb.InsertModel(playersTable, playerInsertModel{
		ExternalID:   strings.TrimSpace(p.ExternalID),
		Name:         p.Name,
		DateOfBirth:  p.DateOfBirth,
		Team:         p.Team,
		Country:      p.Country,
		City:         player.CityOrUnknown(p.City),
		GamesPlayed:  p.GamesPlayed,
		Goals:        p.Goals,
		Assists:      p.Assists,
		Position:     p.Position,
		PlayerNumber: p.PlayerNumber,
		Image:        p.ImageURL,
		LastUpdated:  lastUpdated,
	}, upsertPlayerSuffix)
}

func rowToPlayer(row playerTableModel) player.Player {
	out := player.Player{
		ID:           row.ID,
		ExternalID:   row.ExternalID,
		Name:         row.Name,
		Team:         row.Team,
		Country:      row.Country,
		City:         row.City,
		GamesPlayed:  row.GamesPlayed,
		Goals:        row.Goals,
		Assists:      row.Assists,
		Position:     row.Position,
		PlayerNumber: row.PlayerNumber,
		ImageURL:     nullableString(row.Image),
	}
	if row.DateOfBirth.Valid {
		dob := row.DateOfBirth.Time
		out.DateOfBirth = &dob
	}
	if row.LastUpdated.Valid {
		out.LastUpdated = row.LastUpdated.Time
	}
	return out
}
