// Package round persists rounds as JSON documents plus the two
// denormalized search indexes: a lexicographic geohash index and a
// tee-time score index.
package round

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teepals/roundsearch/internal/db"
	"github.com/teepals/roundsearch/internal/domain"
	"github.com/teepals/roundsearch/internal/domain/geo"
	domround "github.com/teepals/roundsearch/internal/domain/round"
)

// memberSep separates the geohash from the round id in geo index members.
// It sorts above the geohash alphabet, so prefix ranges never split a member.
const memberSep = "|"

// store is the consumer interface for round persistence (ISP).
type store interface {
	db.DocStore
	db.SortedIndex
}

// Repo implements round storage over the document store.
type Repo struct {
	store  store
	prefix string
}

// New creates a round repository. keyPrefix namespaces every key.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

func (r *Repo) docKey(id string) string { return r.prefix + "round:" + id }
func (r *Repo) geoIndexKey() string     { return r.prefix + "idx:geo" }
func (r *Repo) timeIndexKey() string    { return r.prefix + "idx:time" }

func geoMember(hash, id string) string { return hash + memberSep + id }

// splitGeoMember extracts the round id from a geo index member.
func splitGeoMember(member string) (id string, ok bool) {
	_, id, ok = strings.Cut(member, memberSep)
	return id, ok && id != ""
}

// Put stores a round and synchronizes both indexes, removing stale
// entries when the location or schedule changed.
func (r *Repo) Put(ctx context.Context, rd *domround.Round) error {
	prev, err := r.Get(ctx, rd.ID())
	if err != nil && !errors.Is(err, domain.ErrRoundNotFound) {
		return fmt.Errorf("read previous round %s: %w", rd.ID(), err)
	}
	hadPrev := err == nil

	data, err := encodeDoc(rd)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, r.docKey(rd.ID()), data); err != nil {
		return fmt.Errorf("store round %s: %w", rd.ID(), err)
	}

	if err := r.syncGeoIndex(ctx, rd, &prev, hadPrev); err != nil {
		return err
	}
	return r.syncTimeIndex(ctx, rd)
}

// PutMulti stores several rounds. Used by bulk seeding; each round is
// written independently and the first failure aborts.
func (r *Repo) PutMulti(ctx context.Context, rounds []domround.Round) error {
	for i := range rounds {
		if err := r.Put(ctx, &rounds[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) syncGeoIndex(ctx context.Context, rd, prev *domround.Round, hadPrev bool) error {
	var newMember string
	if k := rd.GeoKey(); k != nil {
		newMember = geoMember(k.Hash(), rd.ID())
	}

	if hadPrev {
		if k := prev.GeoKey(); k != nil {
			oldMember := geoMember(k.Hash(), prev.ID())
			if oldMember != newMember {
				if err := r.store.IndexRemove(ctx, r.geoIndexKey(), oldMember); err != nil {
					return fmt.Errorf("drop stale geo index for %s: %w", rd.ID(), err)
				}
			}
		}
	}

	if newMember == "" {
		return nil
	}
	if err := r.store.IndexAdd(ctx, r.geoIndexKey(), newMember, 0); err != nil {
		return fmt.Errorf("index round %s by geohash: %w", rd.ID(), err)
	}
	return nil
}

func (r *Repo) syncTimeIndex(ctx context.Context, rd *domround.Round) error {
	if _, ok := rd.EffectiveDate(); !ok {
		if err := r.store.IndexRemove(ctx, r.timeIndexKey(), rd.ID()); err != nil {
			return fmt.Errorf("drop time index for %s: %w", rd.ID(), err)
		}
		return nil
	}
	score := float64(rd.EffectiveDateMillis())
	if err := r.store.IndexAdd(ctx, r.timeIndexKey(), rd.ID(), score); err != nil {
		return fmt.Errorf("index round %s by time: %w", rd.ID(), err)
	}
	return nil
}

// Get loads a round by id.
func (r *Repo) Get(ctx context.Context, id string) (domround.Round, error) {
	data, err := r.store.Get(ctx, r.docKey(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domround.Round{}, domain.ErrRoundNotFound
		}
		return domround.Round{}, fmt.Errorf("get round %s: %w", id, err)
	}
	rd, err := decodeDoc(data)
	if err != nil {
		return domround.Round{}, fmt.Errorf("decode round %s: %w", id, err)
	}
	return rd, nil
}

// Delete removes a round and its index entries.
func (r *Repo) Delete(ctx context.Context, id string) error {
	prev, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	if k := prev.GeoKey(); k != nil {
		if err := r.store.IndexRemove(ctx, r.geoIndexKey(), geoMember(k.Hash(), id)); err != nil {
			return fmt.Errorf("drop geo index for %s: %w", id, err)
		}
	}
	if err := r.store.IndexRemove(ctx, r.timeIndexKey(), id); err != nil {
		return fmt.Errorf("drop time index for %s: %w", id, err)
	}
	if err := r.store.Del(ctx, r.docKey(id)); err != nil {
		return fmt.Errorf("delete round %s: %w", id, err)
	}
	return nil
}

// FetchByGeoRange returns decoded rounds whose geohash falls in the bound,
// capped at limit. raw is the number of index members scanned; rounds that
// fail to decode are dropped silently so one bad document cannot take the
// whole search down.
func (r *Repo) FetchByGeoRange(ctx context.Context, bound geo.Bound, limit int) (rounds []domround.Round, raw int, err error) {
	members, err := r.store.RangeByLex(ctx, r.geoIndexKey(), bound.Start, bound.End, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("geo range [%s, %s): %w", bound.Start, bound.End, err)
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		if id, ok := splitGeoMember(m); ok {
			ids = append(ids, id)
		}
	}
	rounds, err = r.fetchDocs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	return rounds, len(members), nil
}

// FetchByTimeWindow returns decoded rounds whose effective date falls in
// [start, end), ascending, capped at limit. raw is the number of index
// members scanned.
func (r *Repo) FetchByTimeWindow(ctx context.Context, start, end time.Time, limit int) (rounds []domround.Round, raw int, err error) {
	ids, err := r.store.RangeByScore(
		ctx, r.timeIndexKey(),
		float64(start.UnixMilli()), float64(end.UnixMilli()),
		limit,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("time range [%s, %s): %w", start, end, err)
	}
	rounds, err = r.fetchDocs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	return rounds, len(ids), nil
}

// fetchDocs batch-reads and decodes round documents, skipping missing and
// undecodable entries.
func (r *Repo) fetchDocs(ctx context.Context, ids []string) ([]domround.Round, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.docKey(id)
	}
	docs, err := r.store.GetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch round documents: %w", err)
	}

	rounds := make([]domround.Round, 0, len(docs))
	for _, data := range docs {
		if data == nil {
			continue
		}
		rd, err := decodeDoc(data)
		if err != nil {
			continue
		}
		rounds = append(rounds, rd)
	}
	return rounds, nil
}
