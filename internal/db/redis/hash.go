package redis

import (
	"context"

	"github.com/wynnteo/coursearch/internal/db"
)

// HSet writes hash fields at the given key. Re-writing the same key
// overwrites field values, which is what gives upserts their idempotence.
func (s *Store) HSet(ctx context.Context, key string, fields map[string]string) error {
	builder := s.b().Hset().Key(key).FieldValue()
	for k, v := range fields {
		builder = builder.FieldValue(k, v)
	}
	if err := s.do(ctx, builder.Build()).Error(); err != nil {
		return wrapErr(db.OpHSet, err)
	}
	return nil
}

// HGetAll returns all hash fields at the given key.
func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	cmd := s.b().Hgetall().Key(key).Build()
	m, err := s.do(ctx, cmd).AsStrMap()
	if err != nil {
		return nil, wrapErr(db.OpHGetAll, err)
	}
	if len(m) == 0 {
		return nil, db.ErrKeyNotFound
	}
	return m, nil
}

// Del removes a key.
func (s *Store) Del(ctx context.Context, key string) error {
	cmd := s.b().Del().Key(key).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return wrapErr(db.OpDel, err)
	}
	return nil
}

// Exists reports whether a key exists.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	cmd := s.b().Exists().Key(key).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return false, wrapErr(db.OpExists, err)
	}
	return n > 0, nil
}
