package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecell-iiitr/gatepass/internal/api/metrics"
	"github.com/ecell-iiitr/gatepass/internal/core/domain"
	"github.com/ecell-iiitr/gatepass/internal/core/ports"
)

// timestampLayout matches the en-IN locale string the registration sheet has
// always carried, e.g. "31/8/2026, 1:45:30 pm".
const timestampLayout = "2/1/2006, 3:04:05 pm"

// ParticipantService implements lookup, check-in, history and stats on top of
// the row store.
type ParticipantService struct {
	store  ports.RowStore
	locker ports.CheckinLocker
	logger zerolog.Logger
	loc    *time.Location
	now    func() time.Time
}

func NewParticipantService(store ports.RowStore, locker ports.CheckinLocker, logger zerolog.Logger) *ParticipantService {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.FixedZone("IST", 5*3600+30*60)
	}
	return &ParticipantService{
		store:  store,
		locker: locker,
		logger: logger,
		loc:    loc,
		now:    time.Now,
	}
}

func (s *ParticipantService) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrParticipantNotFound) {
			metrics.LookupsTotal.WithLabelValues("miss").Inc()
		}
		return nil, err
	}
	metrics.LookupsTotal.WithLabelValues("hit").Inc()
	return p, nil
}

// CheckIn marks the participant as printed and records the audit trail.
// Writes for the same identifier are serialised through the locker; two
// concurrent check-ins both succeed and the later save keeps the attribution.
func (s *ParticipantService) CheckIn(ctx context.Context, id, actor string) (*ports.CheckInResult, error) {
	unlock, err := s.locker.Lock(ctx, domain.NormalizeID(id))
	if err != nil {
		return nil, err
	}
	defer unlock()

	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	repeat := "first"
	if p.CheckedIn() {
		repeat = "overwrite"
		s.logger.Warn().
			Str("participant_id", p.ID).
			Str("previous_actor", p.CheckedInBy).
			Str("actor", actor).
			Msg("re-checking in an already printed participant, attribution overwritten")
	}

	p.CheckInStatus = domain.StatusPrinted
	p.CheckedInBy = actor
	p.Timestamp = s.now().In(s.loc).Format(timestampLayout)

	if err := s.store.Save(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("participant_id", p.ID).Msg("failed to persist check-in")
		return nil, err
	}

	metrics.CheckinsTotal.WithLabelValues(repeat).Inc()
	s.logger.Info().
		Str("participant_id", p.ID).
		Str("actor", actor).
		Msg("participant checked in")

	return &ports.CheckInResult{Name: p.Name}, nil
}

// ListHistory returns every printed participant in store order.
func (s *ParticipantService) ListHistory(ctx context.Context) ([]domain.HistoryEntry, error) {
	rows, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	history := make([]domain.HistoryEntry, 0)
	for _, p := range rows {
		if !p.CheckedIn() {
			continue
		}
		history = append(history, domain.HistoryEntry{
			ID:          p.ID,
			Name:        p.Name,
			College:     p.College,
			CheckedInBy: p.CheckedInBy,
			Timestamp:   p.Timestamp,
		})
	}
	return history, nil
}

func (s *ParticipantService) GetStats(ctx context.Context) (*domain.Stats, error) {
	rows, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.Stats{Total: len(rows)}
	for _, p := range rows {
		if p.CheckedIn() {
			stats.CheckedIn++
		}
	}
	stats.Pending = stats.Total - stats.CheckedIn
	return stats, nil
}
