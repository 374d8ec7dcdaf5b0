// Package round handles the round write path. The geospatial key is
// computed here, at write time, so search never has to encode.
package round

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/teepals/roundsearch/internal/domain"
	domround "github.com/teepals/roundsearch/internal/domain/round"
)

// Draft carries the caller-supplied fields of a round write.
type Draft struct {
	HostID      string
	CourseName  string
	Status      domround.Status
	Visibility  domround.Visibility
	MaxPlayers  int
	PlayerCount int
	RoundDate   *time.Time
	TeeTime     *time.Time
	Lat         *float64
	Lng         *float64
}

// Service coordinates round writes.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New creates a round write service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create validates a draft, assigns a fresh id, computes the geospatial
// key, and stores the round.
func (s *Service) Create(ctx context.Context, d Draft) (domround.Round, error) {
	return s.put(ctx, uuid.NewString(), d, s.now())
}

// Update replaces an existing round, recomputing the geospatial key.
// The creation timestamp of the stored round is preserved.
func (s *Service) Update(ctx context.Context, id string, d Draft) (domround.Round, error) {
	prev, err := s.repo.Get(ctx, id)
	if err != nil {
		return domround.Round{}, err
	}
	return s.put(ctx, id, d, prev.CreatedAt())
}

func (s *Service) put(ctx context.Context, id string, d Draft, createdAt time.Time) (domround.Round, error) {
	key, err := geoKeyFromDraft(d)
	if err != nil {
		return domround.Round{}, fmt.Errorf("%w: %w", domain.ErrInvalidRound, err)
	}

	rd, err := domround.New(
		id, d.HostID, d.CourseName,
		d.Status, d.Visibility,
		d.MaxPlayers, d.PlayerCount,
		d.RoundDate, d.TeeTime,
		key,
		createdAt,
	)
	if err != nil {
		return domround.Round{}, fmt.Errorf("%w: %w", domain.ErrInvalidRound, err)
	}

	if err := s.repo.Put(ctx, &rd); err != nil {
		return domround.Round{}, fmt.Errorf("put round: %w", err)
	}
	return rd, nil
}

// CreateMulti stores a batch of drafts. Used by seeding and imports.
func (s *Service) CreateMulti(ctx context.Context, drafts []Draft) ([]domround.Round, error) {
	rounds := make([]domround.Round, 0, len(drafts))
	now := s.now()
	for i := range drafts {
		key, err := geoKeyFromDraft(drafts[i])
		if err != nil {
			return nil, fmt.Errorf("%w: draft %d: %w", domain.ErrInvalidRound, i, err)
		}
		rd, err := domround.New(
			uuid.NewString(), drafts[i].HostID, drafts[i].CourseName,
			drafts[i].Status, drafts[i].Visibility,
			drafts[i].MaxPlayers, drafts[i].PlayerCount,
			drafts[i].RoundDate, drafts[i].TeeTime,
			key,
			now,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: draft %d: %w", domain.ErrInvalidRound, i, err)
		}
		rounds = append(rounds, rd)
	}
	if err := s.repo.PutMulti(ctx, rounds); err != nil {
		return nil, fmt.Errorf("put rounds: %w", err)
	}
	return rounds, nil
}

// Get loads a round by id.
func (s *Service) Get(ctx context.Context, id string) (domround.Round, error) {
	return s.repo.Get(ctx, id)
}

// Delete removes a round and its index entries.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func geoKeyFromDraft(d Draft) (*domround.GeoKey, error) {
	if d.Lat == nil && d.Lng == nil {
		return nil, nil
	}
	if d.Lat == nil || d.Lng == nil {
		return nil, fmt.Errorf("latitude and longitude must be set together")
	}
	key, err := domround.NewGeoKey(*d.Lat, *d.Lng)
	if err != nil {
		return nil, err
	}
	return &key, nil
}
