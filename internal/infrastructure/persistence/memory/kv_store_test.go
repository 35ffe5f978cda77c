package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewKVStore()

	_, ok, err := store.Get(ctx, "chef_aid_api_key")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "chef_aid_api_key", "abc"))
	require.NoError(t, store.Set(ctx, "chef_aid_api_key", "def"))

	value, ok, err := store.Get(ctx, "chef_aid_api_key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "def", value)

	require.NoError(t, store.Delete(ctx, "chef_aid_api_key"))
	_, ok, _ = store.Get(ctx, "chef_aid_api_key")
	assert.False(t, ok)
}

func TestKVStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewKVStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%5)
			_ = store.Set(ctx, key, fmt.Sprint(i))
			_, _, _ = store.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, store.Keys())
}
