package crud

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"magazine-backend/pkg/cache"
)

// Service decorates a Repository with a read-through cache of list pages.
// It satisfies Repository itself, so handlers never know whether caching is on.
type Service[T any] struct {
	name  string
	repo  Repository[T]
	cache cache.Cache
	ttl   time.Duration
}

// NewService wraps repo. name prefixes the cache keys (e.g. "authors").
func NewService[T any](name string, repo Repository[T], c cache.Cache, ttl time.Duration) *Service[T] {
	if c == nil {
		c = cache.NewNoop()
	}
	return &Service[T]{name: name, repo: repo, cache: c, ttl: ttl}
}

func (s *Service[T]) Create(ctx context.Context, fields Fields) (int64, error) {
	key, err := s.repo.Create(ctx, fields)
	s.invalidate(ctx)
	return key, err
}

func (s *Service[T]) Read(ctx context.Context, page, perPage int) ([]T, error) {
	cacheKey := fmt.Sprintf("%s:list:%d:%d", s.name, page, perPage)

	var cached []T
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("cache read failed")
	}
	if found && cached != nil {
		return cached, nil
	}

	items, err := s.repo.Read(ctx, page, perPage)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, items, s.ttl); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("cache write failed")
	}

	return items, nil
}

// Update invalidates even on failure: a magazine update may have appended
// author links before its column update was rejected.
func (s *Service[T]) Update(ctx context.Context, key int64, fields Fields) error {
	err := s.repo.Update(ctx, key, fields)
	s.invalidate(ctx)
	return err
}

func (s *Service[T]) Delete(ctx context.Context, key int64) error {
	err := s.repo.Delete(ctx, key)
	s.invalidate(ctx)
	return err
}

func (s *Service[T]) invalidate(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, s.name+":list:*"); err != nil {
		log.Warn().Err(err).Str("entity", s.name).Msg("cache invalidation failed")
	}
}
