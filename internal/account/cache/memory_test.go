package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovaphlow/pitchfork/service-account-go/internal/account/entity"
)

func TestMemoryCache_SetGetInvalidate(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	u := entity.NewUser("Ada", "Lovelace", "ada@example.com", "pw")

	_, ok, err := c.Get(ctx, u.Email)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, u.Email, u, time.Minute))
	got, ok, err := c.Get(ctx, u.Email)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, *u, *got)

	require.NoError(t, c.Invalidate(ctx, u.Email))
	_, ok, _ = c.Get(ctx, u.Email)
	assert.False(t, ok)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }
	u := entity.NewUser("Ada", "Lovelace", "ada@example.com", "pw")

	require.NoError(t, c.Set(ctx, u.Email, u, DefaultTTL))

	now = now.Add(DefaultTTL - time.Second)
	_, ok, _ := c.Get(ctx, u.Email)
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok, _ = c.Get(ctx, u.Email)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_ReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	u := entity.NewUser("Ada", "Lovelace", "ada@example.com", "pw")
	require.NoError(t, c.Set(ctx, u.Email, u, time.Minute))

	u.FirstName = "Mutated"
	got, _, _ := c.Get(ctx, u.Email)
	assert.Equal(t, "Ada", got.FirstName)

	got.LastName = "Mutated"
	again, _, _ := c.Get(ctx, u.Email)
	assert.Equal(t, "Lovelace", again.LastName)
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	u := entity.NewUser("Ada", "Lovelace", "ada@example.com", "pw")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = c.Set(ctx, u.Email, u, time.Minute)
		}()
		go func() {
			defer wg.Done()
			_, _, _ = c.Get(ctx, u.Email)
		}()
	}
	wg.Wait()

	_, ok, _ := c.Get(ctx, u.Email)
	assert.True(t, ok)
}
