package player

import (
	"strings"
	"time"
)

// UnknownCity is stored when the provider does not report the club's city.
const UnknownCity = "Unknown"

// Player is one Israeli footballer playing for a club outside Israel.
type Player struct {
	ID           int64
	ExternalID   string `validate:"required"`
	Name         string `validate:"required"`
	DateOfBirth  *time.Time
	Team         string `validate:"required"`
	Country      string `validate:"required"`
	City         string `validate:"required"`
	GamesPlayed  int    `validate:"gte=0"`
	Goals        int    `validate:"gte=0"`
	Assists      int    `validate:"gte=0"`
	Position     string
	PlayerNumber int `validate:"gte=0"`
	ImageURL     *string
	LastUpdated  time.Time
}

// CityOrUnknown returns the club city, falling back to UnknownCity.
func CityOrUnknown(city string) string {
	city = strings.TrimSpace(city)
	if city == "" {
		return UnknownCity
	}
	return city
}
