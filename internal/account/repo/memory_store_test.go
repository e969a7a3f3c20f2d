package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := sampleUser()

	require.NoError(t, s.Add(ctx, u))
	assert.ErrorIs(t, s.Add(ctx, u), ErrDuplicate)

	ok, err := s.Exists(ctx, u.Email)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	got.FirstName = "Changed"

	// mutating a returned record does not touch the stored one
	again, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", again.FirstName)

	require.NoError(t, s.Update(ctx, got))
	again, err = s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Changed", again.FirstName)

	require.NoError(t, s.Delete(ctx, u.ID))
	require.NoError(t, s.Delete(ctx, u.ID))
	_, err = s.GetByEmail(ctx, u.Email)
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err = s.Exists(ctx, u.Email)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_EmailIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Add(ctx, sampleUser()))

	_, err := s.GetByEmail(ctx, "ADA@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_UpdateMissing(t *testing.T) {
	err := NewMemoryStore().Update(context.Background(), sampleUser())
	assert.ErrorIs(t, err, ErrNotFound)
}
