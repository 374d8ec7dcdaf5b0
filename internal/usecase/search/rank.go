package search

import (
	"sort"

	"github.com/teepals/roundsearch/internal/domain/search/cursor"
	"github.com/teepals/roundsearch/internal/domain/search/page"
)

// rankCandidates sorts by the total order (effectiveDateMillis ascending,
// id lexicographic ascending). Rounds without any date carry the
// far-future sentinel and land last; the id tie-break keeps pagination
// stable when many rounds share a timestamp.
func rankCandidates(cands []candidate) {
	sort.Slice(cands, func(i, j int) bool {
		mi, mj := cands[i].round.EffectiveDateMillis(), cands[j].round.EffectiveDateMillis()
		if mi != mj {
			return mi < mj
		}
		return cands[i].round.ID() < cands[j].round.ID()
	})
}

// paginate slices the first pageSize ranked candidates strictly after the
// cursor. When more remain, next carries the last returned record's
// ordering key.
func paginate(cands []candidate, cur cursor.Cursor, pageSize int) (results []page.Result, next *cursor.Cursor) {
	results = make([]page.Result, 0, pageSize)
	var hasMore bool
	for i := range cands {
		millis := cands[i].round.EffectiveDateMillis()
		id := cands[i].round.ID()
		if !cur.IsZero() && !cur.Precedes(millis, id) {
			continue
		}
		if len(results) == pageSize {
			hasMore = true
			break
		}
		if cands[i].hasDistance {
			results = append(results, page.NewResultWithDistance(cands[i].round, cands[i].distanceMiles))
		} else {
			results = append(results, page.NewResult(cands[i].round))
		}
	}

	if hasMore && len(results) > 0 {
		last := results[len(results)-1]
		c := cursor.New(last.Round().EffectiveDateMillis(), last.Round().ID())
		next = &c
	}
	return results, next
}
