package identity

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CETEN-BDE/bot-discord/internal/auth/policy"
)

func TestPutAndGet(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()

	rec := Record{
		ExternalIdentity: "a@yourcompany.com",
		Labels:           []policy.Label{policy.LabelAdmin, policy.LabelVerified},
	}
	require.NoError(t, store.Put(ctx, "user-1", rec))

	got, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, rec, *got)
}

func TestGetUnknownUser(t *testing.T) {
	store := NewInMemory()

	got, err := store.Get(context.Background(), "nobody")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestPutRejectsEmptyKey(t *testing.T) {
	store := NewInMemory()
	require.Error(t, store.Put(context.Background(), "", Record{}))
}

func TestPutOverwrites(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user-1", Record{ExternalIdentity: "old@partner.com"}))
	require.NoError(t, store.Put(ctx, "user-1", Record{ExternalIdentity: "new@partner.com"}))

	got, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "new@partner.com", got.ExternalIdentity)
}

// Two callbacks completing concurrently for the same user must leave
// exactly one record, equal to one of the two writes.
func TestConcurrentPutLastWriteWins(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()

	a := Record{ExternalIdentity: "a@yourcompany.com"}
	b := Record{ExternalIdentity: "b@partner.com"}

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Put(ctx, "user-1", a)
		}()
		go func() {
			defer wg.Done()
			_ = store.Put(ctx, "user-1", b)
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Contains(t, []string{a.ExternalIdentity, b.ExternalIdentity}, got.ExternalIdentity)
}
