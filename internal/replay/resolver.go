package replay

import (
	"context"
	"sync"

	"github.com/peterkuimelis/poketcg/internal/carddata"
	"github.com/rs/zerolog/log"
)

// Fetcher resolves a card id to remote metadata. *carddata.Client satisfies
// it; tests substitute fakes.
type Fetcher interface {
	Fetch(ctx context.Context, cardID int) (carddata.RemoteCard, error)
}

// Resolver caches remote card metadata lookups for rendering. A failed
// lookup resolves to nil; the renderer degrades gracefully instead of
// failing the whole document. Safe for concurrent use; the web server
// shares one resolver across requests.
type Resolver struct {
	fetcher Fetcher
	mu      sync.Mutex
	cache   map[int]*carddata.RemoteCard
}

func NewResolver(fetcher Fetcher) *Resolver {
	return &Resolver{
		fetcher: fetcher,
		cache:   make(map[int]*carddata.RemoteCard),
	}
}

// Resolve returns metadata for the card id, or nil when the id is absent
// (zero), the lookup fails, or the resolver has no fetcher (offline mode).
func (r *Resolver) Resolve(ctx context.Context, cardID int) *carddata.RemoteCard {
	if cardID == 0 || r.fetcher == nil {
		return nil
	}
	r.mu.Lock()
	if card, ok := r.cache[cardID]; ok {
		r.mu.Unlock()
		return card
	}
	r.mu.Unlock()
	card, err := r.fetcher.Fetch(ctx, cardID)
	if err != nil {
		log.Debug().Int("card_id", cardID).Err(err).Msg("card metadata unavailable")
		return nil
	}
	r.mu.Lock()
	r.cache[cardID] = &card
	r.mu.Unlock()
	return &card
}
