package seenstore

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// This test requires a running redis instance
// If redis is not available, the test will be skipped
func TestRedisStore(t *testing.T) {
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()
	if _, err := client.Ping(ctx).Result(); err != nil {
		t.Skip("Redis is not available, skipping test")
	}

	store := NewRedisStore(ctx, "localhost:6379", 0, "camperwatch:test_seen")
	defer store.Close()
	defer client.Del(ctx, "camperwatch:test_seen")

	// Empty key loads as empty set
	set, err := store.Load()
	assert.NoError(t, err)
	assert.Empty(t, set)

	// Save and reload
	ids := map[string]struct{}{"A": {}, "B": {}}
	assert.NoError(t, store.Save(ids))

	loaded, err := store.Load()
	assert.NoError(t, err)
	assert.Equal(t, ids, loaded)

	// Save replaces the whole set
	assert.NoError(t, store.Save(map[string]struct{}{"C": {}}))
	loaded, err = store.Load()
	assert.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"C": {}}, loaded)
}
