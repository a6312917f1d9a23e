package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/israelis-abroad/footballmap/internal/domain/player"
)

// PlayerRepository keeps football_players rows in process memory. It backs
// STORE_BACKEND=memory and the use case tests.
type PlayerRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   []player.Player
	index  map[string]int
	now    func() time.Time
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{
		index: make(map[string]int, len(players)),
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, p := range players {
		_ = r.Upsert(context.Background(), p)
	}
	return r
}

func (r *PlayerRepository) Upsert(_ context.Context, p player.Player) error {
	key := strings.TrimSpace(p.ExternalID)
	if key == "" {
		return fmt.Errorf("upsert football_players: player_id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p.ExternalID = key
	p.City = player.CityOrUnknown(p.City)
	if p.LastUpdated.IsZero() {
		p.LastUpdated = r.now()
	}

	if idx, ok := r.index[key]; ok {
		existing := r.rows[idx]
		p.ID = existing.ID
		if p.DateOfBirth == nil {
			p.DateOfBirth = existing.DateOfBirth
		}
		if p.ImageURL == nil {
			p.ImageURL = existing.ImageURL
		}
		r.rows[idx] = p
		return nil
	}

	r.nextID++
	p.ID = r.nextID
	r.index[key] = len(r.rows)
	r.rows = append(r.rows, p)
	return nil
}

func (r *PlayerRepository) ListAll(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.rows))
	out = append(out, r.rows...)
	return out, nil
}

func (r *PlayerRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rows), nil
}
