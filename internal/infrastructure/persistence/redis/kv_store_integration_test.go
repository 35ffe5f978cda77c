//go:build integration

package redis_test

import (
	"context"
	"testing"

	redisstore "github.com/chefaid/chefaid/internal/infrastructure/persistence/redis"
	"github.com/chefaid/chefaid/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKVStore_AgainstRedis(t *testing.T) {
	addr := testutils.SetupRedis(t)
	ctx := context.Background()

	store := redisstore.NewKVStore(redisstore.NewClient(redisstore.Config{Addr: addr}), "", zap.NewNop())
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Ping(ctx))

	_, ok, err := store.Get(ctx, "chef_aid_num_people")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "chef_aid_num_people", "5"))
	value, ok, err := store.Get(ctx, "chef_aid_num_people")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "5", value)

	require.NoError(t, store.Delete(ctx, "chef_aid_num_people"))
	_, ok, err = store.Get(ctx, "chef_aid_num_people")
	require.NoError(t, err)
	assert.False(t, ok)
}
