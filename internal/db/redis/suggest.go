package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/wynnteo/coursearch/internal/db"
)

// SugAdd adds a term to a completion dictionary. Re-adding the same term
// updates its score rather than duplicating it.
func (s *Store) SugAdd(ctx context.Context, dict, term string, score float64) error {
	if term == "" {
		return nil
	}
	cmd := s.b().Arbitrary("FT.SUGADD").
		Args(dict, term, strconv.FormatFloat(score, 'f', -1, 64)).
		Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return wrapErr(db.OpSugAdd, err)
	}
	return nil
}

// SugGet runs a prefix completion lookup via FT.SUGGET.
func (s *Store) SugGet(ctx context.Context, q *db.SuggestQuery) ([]string, error) {
	if q.Dictionary == "" {
		return nil, fmt.Errorf("dictionary is required")
	}
	if q.Prefix == "" {
		return nil, fmt.Errorf("prefix is required")
	}

	args := []string{q.Dictionary, q.Prefix}
	if q.Fuzzy {
		args = append(args, "FUZZY")
	}
	if q.Max > 0 {
		args = append(args, "MAX", strconv.Itoa(q.Max))
	}

	cmd := s.b().Arbitrary("FT.SUGGET").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			// Unknown dictionary: no suggestions yet.
			return nil, nil
		}
		return nil, wrapErr(db.OpSugGet, err)
	}

	out := make([]string, 0, len(raw))
	for _, msg := range raw {
		text, err := msg.ToString()
		if err != nil {
			continue
		}
		out = append(out, text)
	}
	return out, nil
}
