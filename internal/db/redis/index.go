package redis

import (
	"context"
	"strconv"

	"github.com/teepals/roundsearch/internal/db"
)

// IndexAdd inserts or updates a member in a sorted-set index.
func (s *Store) IndexAdd(ctx context.Context, key, member string, score float64) error {
	cmd := s.b().Zadd().Key(key).ScoreMember().ScoreMember(score, member).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpZAdd, Err: err}
	}
	return nil
}

// IndexRemove deletes a member from a sorted-set index.
func (s *Store) IndexRemove(ctx context.Context, key, member string) error {
	cmd := s.b().Zrem().Key(key).Member(member).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpZRem, Err: err}
	}
	return nil
}

// RangeByLex returns up to limit members in the half-open range
// [start, end), ascending. An empty end is unbounded above.
func (s *Store) RangeByLex(ctx context.Context, key, start, end string, limit int) ([]string, error) {
	maxArg := "+"
	if end != "" {
		maxArg = "(" + end
	}
	cmd := s.b().Zrangebylex().
		Key(key).
		Min("[" + start).
		Max(maxArg).
		Limit(0, int64(limit)).
		Build()
	members, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpZRangeByLex, Err: err}
	}
	return members, nil
}

// RangeByScore returns up to limit members with score in the half-open
// range [min, max), ascending by score.
func (s *Store) RangeByScore(ctx context.Context, key string, min, max float64, limit int) ([]string, error) {
	cmd := s.b().Zrangebyscore().
		Key(key).
		Min(formatScore(min, false)).
		Max(formatScore(max, true)).
		Limit(0, int64(limit)).
		Build()
	members, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpZRangeByScore, Err: err}
	}
	return members, nil
}

func formatScore(v float64, exclusive bool) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if exclusive {
		return "(" + s
	}
	return s
}
