package roundsearch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/teepals/roundsearch/internal/domain/round"
	logpkg "github.com/teepals/roundsearch/internal/logger"
	rounduc "github.com/teepals/roundsearch/internal/usecase/round"
)

// RoundService manages stored rounds.
type RoundService struct {
	svc    *rounduc.Service
	logger *zap.Logger
}

// Draft is the mutable input for creating or updating a round.
// Lat and Lng must be set together or both left nil.
type Draft struct {
	HostID      string
	CourseName  string
	Status      string
	Visibility  string
	MaxPlayers  int
	PlayerCount int
	RoundDate   *time.Time
	TeeTime     *time.Time
	Lat         *float64
	Lng         *float64
}

func (d Draft) toInternal() rounduc.Draft {
	return rounduc.Draft{
		HostID:      d.HostID,
		CourseName:  d.CourseName,
		Status:      round.Status(d.Status),
		Visibility:  round.Visibility(d.Visibility),
		MaxPlayers:  d.MaxPlayers,
		PlayerCount: d.PlayerCount,
		RoundDate:   d.RoundDate,
		TeeTime:     d.TeeTime,
		Lat:         d.Lat,
		Lng:         d.Lng,
	}
}

// Create stores a new round and returns it with a generated ID.
func (s *RoundService) Create(ctx context.Context, d Draft) (Round, error) {
	rd, err := s.svc.Create(s.ctx(ctx), d.toInternal())
	if err != nil {
		return Round{}, fmt.Errorf("create round: %w", err)
	}
	return fromRound(&rd), nil
}

// CreateMany stores a batch of rounds in one call.
func (s *RoundService) CreateMany(ctx context.Context, drafts []Draft) ([]Round, error) {
	internal := make([]rounduc.Draft, len(drafts))
	for i, d := range drafts {
		internal[i] = d.toInternal()
	}

	rounds, err := s.svc.CreateMulti(s.ctx(ctx), internal)
	if err != nil {
		return nil, fmt.Errorf("create rounds: %w", err)
	}

	out := make([]Round, len(rounds))
	for i := range rounds {
		out[i] = fromRound(&rounds[i])
	}
	return out, nil
}

// Update replaces the round with the given ID.
func (s *RoundService) Update(ctx context.Context, id string, d Draft) (Round, error) {
	rd, err := s.svc.Update(s.ctx(ctx), id, d.toInternal())
	if err != nil {
		return Round{}, fmt.Errorf("update round: %w", err)
	}
	return fromRound(&rd), nil
}

// Get fetches a round by ID.
func (s *RoundService) Get(ctx context.Context, id string) (Round, error) {
	rd, err := s.svc.Get(s.ctx(ctx), id)
	if err != nil {
		return Round{}, fmt.Errorf("get round: %w", err)
	}
	return fromRound(&rd), nil
}

// Delete removes a round and its index entries.
func (s *RoundService) Delete(ctx context.Context, id string) error {
	if err := s.svc.Delete(s.ctx(ctx), id); err != nil {
		return fmt.Errorf("delete round: %w", err)
	}
	return nil
}

func (s *RoundService) ctx(ctx context.Context) context.Context {
	if s.logger != nil {
		return logpkg.ContextWithLogger(ctx, s.logger)
	}
	return ctx
}
