package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID           int64          `db:"id"`
	ExternalID   string         `db:"player_id"`
	Name         string         `db:"name"`
	DateOfBirth  sql.NullTime   `db:"date_of_birth"`
	Team         string         `db:"team"`
	Country      string         `db:"country"`
	City         string         `db:"city"`
	GamesPlayed  int            `db:"games_played"`
	Goals        int            `db:"goals"`
	Assists      int            `db:"assists"`
	Position     string         `db:"position"`
	PlayerNumber int            `db:"player_number"`
	Image        sql.NullString `db:"image"`
	LastUpdated  sql.NullTime   `db:"last_updated"`
}

type playerInsertModel struct {
	ExternalID   string     `db:"player_id"`
	Name         string     `db:"name"`
	DateOfBirth  *time.Time `db:"date_of_birth"`
	Team         string     `db:"team"`
	Country      string     `db:"country"`
	City         string     `db:"city"`
	GamesPlayed  int        `db:"games_played"`
	Goals        int        `db:"goals"`
	Assists      int        `db:"assists"`
	Position     string     `db:"position"`
	PlayerNumber int        `db:"player_number"`
	Image        *string    `db:"image"`
	LastUpdated  time.Time  `db:"last_updated"`
}
