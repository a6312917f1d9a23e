package player

import "context"

// Repository describes the football_players store.
type Repository interface {
	Upsert(ctx context.Context, p Player) error
	ListAll(ctx context.Context) ([]Player, error)
	Count(ctx context.Context) (int, error)
}
