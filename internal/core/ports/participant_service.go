package ports

import (
	"context"

	"github.com/ecell-iiitr/gatepass/internal/core/domain"
)

// CheckInResult is returned after a successful check-in.
type CheckInResult struct {
	Name string
}

// ParticipantService defines the check-in use cases.
type ParticipantService interface {
	GetByID(ctx context.Context, id string) (*domain.Participant, error)
	// CheckIn marks the participant as printed, recording who performed the
	// check-in and when. Re-running on an already printed record overwrites
	// the previous attribution.
	CheckIn(ctx context.Context, id, actor string) (*CheckInResult, error)
	// ListHistory returns the checked-in participants in store order.
	ListHistory(ctx context.Context) ([]domain.HistoryEntry, error)
	GetStats(ctx context.Context) (*domain.Stats, error)
}
