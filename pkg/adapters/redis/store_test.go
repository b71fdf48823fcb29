package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/gantry/pkg/adapters/redis"
	"github.com/aretw0/gantry/pkg/domain"
	"github.com/aretw0/gantry/pkg/ports"
)

func newTestStore(t *testing.T, opts ...redis.Option) *redis.Store {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return redis.NewFromClient(client, opts...)
}

func TestRedisStore_Contract(t *testing.T) {
	store := newTestStore(t)
	ports.RunPlanStoreContract(t, store)
}

func TestRedisStore_List(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Save(ctx, &domain.Report{ID: "a", Scenario: "cleaning"}))
	require.NoError(t, store.Save(ctx, &domain.Report{ID: "b", Scenario: "cooking"}))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "a")
	assert.Contains(t, ids, "b")

	require.NoError(t, store.Delete(ctx, "a"))
	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, ids, "a")
	assert.Contains(t, ids, "b")
}

func TestRedisStore_Prefix(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, redis.WithPrefix("other:"))

	require.NoError(t, store.Save(ctx, &domain.Report{ID: "a", Scenario: "cleaning"}))

	loaded, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "cleaning", loaded.Scenario)
}
