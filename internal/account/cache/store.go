package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-account-go/internal/account/entity"
	"github.com/ovaphlow/pitchfork/service-account-go/internal/account/repo"
)

// CachedStore decorates a repo.Store with a read-through by-email cache.
// Cache failures never fail a store operation; they are logged and the
// call falls back to the store.
type CachedStore struct {
	next   repo.Store
	cache  Cache
	ttl    time.Duration
	logger *zap.SugaredLogger
}

func NewCachedStore(next repo.Store, c Cache, ttl time.Duration, logger *zap.SugaredLogger) *CachedStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &CachedStore{next: next, cache: c, ttl: ttl, logger: logger}
}

var _ repo.Store = (*CachedStore)(nil)

func (s *CachedStore) Add(ctx context.Context, u *entity.User) error {
	if err := s.next.Add(ctx, u); err != nil {
		return err
	}
	s.set(ctx, u)
	return nil
}

func (s *CachedStore) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, ok, err := s.cache.Get(ctx, email)
	if err != nil {
		s.logger.Warnw("cache get failed", "email", email, "err", err)
	} else if ok {
		return u, nil
	}

	u, err = s.next.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	s.set(ctx, u)
	return u, nil
}

func (s *CachedStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return s.next.GetByID(ctx, id)
}

func (s *CachedStore) Exists(ctx context.Context, email string) (bool, error) {
	return s.next.Exists(ctx, email)
}

// Update refreshes the entry under the record's current email. An entry
// under a previous email is left to expire.
func (s *CachedStore) Update(ctx context.Context, u *entity.User) error {
	if err := s.next.Update(ctx, u); err != nil {
		return err
	}
	s.set(ctx, u)
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, id uuid.UUID) error {
	u, err := s.next.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := s.next.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx, u.Email); err != nil {
		s.logger.Warnw("cache invalidate failed", "email", u.Email, "err", err)
	}
	return nil
}

func (s *CachedStore) set(ctx context.Context, u *entity.User) {
	if err := s.cache.Set(ctx, u.Email, u, s.ttl); err != nil {
		s.logger.Warnw("cache set failed", "email", u.Email, "err", err)
	}
}
