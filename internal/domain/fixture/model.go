package fixture

import "time"

// Summary is one upcoming match reshaped for the map's side panel.
// It is built per request and never stored.
type Summary struct {
	League    string
	HomeTeam  string
	AwayTeam  string
	KickoffAt time.Time
	HomeImage string
	AwayImage string
}

// NextGames is the result of resolving a team and listing its next fixtures.
type NextGames struct {
	TeamName string
	Games    []Summary
}
