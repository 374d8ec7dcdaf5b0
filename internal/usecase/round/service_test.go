package round

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/teepals/roundsearch/internal/domain"
	domround "github.com/teepals/roundsearch/internal/domain/round"
)

// --- Mocks ---

type mockRepo struct {
	stored    map[string]domround.Round
	putErr    error
	getErr    error
	deleteErr error
	deleted   []string
}

func newMockRepo() *mockRepo {
	return &mockRepo{stored: make(map[string]domround.Round)}
}

func (m *mockRepo) Put(_ context.Context, rd *domround.Round) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.stored[rd.ID()] = *rd
	return nil
}

func (m *mockRepo) PutMulti(_ context.Context, rounds []domround.Round) error {
	if m.putErr != nil {
		return m.putErr
	}
	for i := range rounds {
		m.stored[rounds[i].ID()] = rounds[i]
	}
	return nil
}

func (m *mockRepo) Get(_ context.Context, id string) (domround.Round, error) {
	if m.getErr != nil {
		return domround.Round{}, m.getErr
	}
	rd, ok := m.stored[id]
	if !ok {
		return domround.Round{}, domain.ErrRoundNotFound
	}
	return rd, nil
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	delete(m.stored, id)
	return nil
}

func ptr[T any](v T) *T { return &v }

func validDraft() Draft {
	return Draft{
		HostID:     "host-1",
		CourseName: "Cinnabar Hills",
		MaxPlayers: 4,
		TeeTime:    ptr(time.Date(2026, 9, 5, 8, 30, 0, 0, time.UTC)),
		Lat:        ptr(37.3382),
		Lng:        ptr(-121.8863),
	}
}

// --- Tests ---

func TestCreate(t *testing.T) {
	repo := newMockRepo()
	svc := New(repo)

	rd, err := svc.Create(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rd.ID() == "" {
		t.Error("expected a generated id")
	}
	if rd.Status() != domround.StatusOpen || rd.Visibility() != domround.VisibilityPublic {
		t.Errorf("defaults not applied: %s/%s", rd.Status(), rd.Visibility())
	}
	if rd.GeoKey() == nil || rd.GeoKey().Hash() == "" {
		t.Error("geospatial key not computed at write time")
	}
	if _, ok := repo.stored[rd.ID()]; !ok {
		t.Error("round not stored")
	}
}

func TestCreate_DistinctIDs(t *testing.T) {
	repo := newMockRepo()
	svc := New(repo)
	ctx := context.Background()

	a, err := svc.Create(ctx, validDraft())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := svc.Create(ctx, validDraft())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID() == b.ID() {
		t.Error("expected distinct generated ids")
	}
}

func TestCreate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Draft)
	}{
		{"missing host", func(d *Draft) { d.HostID = "" }},
		{"lat without lng", func(d *Draft) { d.Lng = nil }},
		{"lng without lat", func(d *Draft) { d.Lat = nil }},
		{"coordinates out of range", func(d *Draft) { d.Lat = ptr(91.0) }},
		{"unknown status", func(d *Draft) { d.Status = "pending" }},
		{"negative capacity", func(d *Draft) { d.MaxPlayers = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepo()
			svc := New(repo)
			d := validDraft()
			tt.mutate(&d)

			_, err := svc.Create(context.Background(), d)
			if !errors.Is(err, domain.ErrInvalidRound) {
				t.Errorf("expected ErrInvalidRound, got %v", err)
			}
			if len(repo.stored) != 0 {
				t.Error("invalid draft must not be stored")
			}
		})
	}
}

func TestCreate_NoLocation(t *testing.T) {
	repo := newMockRepo()
	svc := New(repo)

	d := validDraft()
	d.Lat, d.Lng = nil, nil
	rd, err := svc.Create(context.Background(), d)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rd.GeoKey() != nil {
		t.Error("expected no geo key for a round without coordinates")
	}
}

func TestUpdate_PreservesCreatedAt(t *testing.T) {
	repo := newMockRepo()
	svc := New(repo)
	svc.now = func() time.Time { return time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	created, err := svc.Create(ctx, validDraft())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	svc.now = func() time.Time { return time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC) }
	d := validDraft()
	d.CourseName = "Coyote Creek"
	updated, err := svc.Update(ctx, created.ID(), d)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.CourseName() != "Coyote Creek" {
		t.Errorf("course = %q", updated.CourseName())
	}
	if !updated.CreatedAt().Equal(created.CreatedAt()) {
		t.Errorf("created at changed: %v -> %v", created.CreatedAt(), updated.CreatedAt())
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := New(newMockRepo())
	_, err := svc.Update(context.Background(), "missing", validDraft())
	if !errors.Is(err, domain.ErrRoundNotFound) {
		t.Errorf("expected ErrRoundNotFound, got %v", err)
	}
}

func TestCreateMulti(t *testing.T) {
	repo := newMockRepo()
	svc := New(repo)

	rounds, err := svc.CreateMulti(context.Background(), []Draft{validDraft(), validDraft()})
	if err != nil {
		t.Fatalf("CreateMulti: %v", err)
	}
	if len(rounds) != 2 || len(repo.stored) != 2 {
		t.Errorf("stored %d rounds, want 2", len(repo.stored))
	}
}

func TestCreateMulti_AbortsOnInvalidDraft(t *testing.T) {
	repo := newMockRepo()
	svc := New(repo)

	bad := validDraft()
	bad.HostID = ""
	_, err := svc.CreateMulti(context.Background(), []Draft{validDraft(), bad})
	if !errors.Is(err, domain.ErrInvalidRound) {
		t.Fatalf("expected ErrInvalidRound, got %v", err)
	}
	if len(repo.stored) != 0 {
		t.Error("nothing should be stored when a draft fails validation")
	}
}

func TestDelete(t *testing.T) {
	repo := newMockRepo()
	svc := New(repo)
	ctx := context.Background()

	rd, err := svc.Create(ctx, validDraft())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, rd.ID()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != rd.ID() {
		t.Errorf("deleted = %v", repo.deleted)
	}
}
