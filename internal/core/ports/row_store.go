package ports

import (
	"context"

	"github.com/ecell-iiitr/gatepass/internal/core/domain"
)

// RowStore wraps the external registration sheet. Every read fetches fresh
// rows from the store; there is no caching layer in front of it.
type RowStore interface {
	// LoadAll returns every row in store order.
	LoadAll(ctx context.Context) ([]domain.Participant, error)
	// FindByID returns the first row whose payment identifier matches id
	// after trimming and lowercasing. Returns domain.ErrParticipantNotFound
	// on a miss.
	FindByID(ctx context.Context, id string) (*domain.Participant, error)
	// Save persists the check-in columns of a previously loaded row. The
	// row is addressed through Participant.StoreRef; there is no
	// optimistic-concurrency check, the last writer wins.
	Save(ctx context.Context, p *domain.Participant) error
}

// Pinger is implemented by stores that can report connectivity for the
// readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}
