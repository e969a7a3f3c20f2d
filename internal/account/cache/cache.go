package cache

import (
	"context"
	"time"

	"github.com/ovaphlow/pitchfork/service-account-go/internal/account/entity"
)

// DefaultTTL is the lifetime of a by-email cache entry.
const DefaultTTL = 10 * time.Minute

// Cache holds user snapshots keyed by email. Implementations must be safe
// for concurrent use; concurrent writers to one key are last-writer-wins.
type Cache interface {
	Get(ctx context.Context, email string) (*entity.User, bool, error)
	Set(ctx context.Context, email string, u *entity.User, ttl time.Duration) error
	Invalidate(ctx context.Context, email string) error
}

func emailKey(email string) string {
	return "user_email_" + email
}
