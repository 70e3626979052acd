package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseCache(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()
	key := GenerateKey("test", t.Name())

	_, err := c.Get(ctx, key)
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, key, []byte("corpus"), time.Minute))
	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("corpus"), got)

	require.NoError(t, c.Delete(ctx, key))
	_, err = c.Get(ctx, key)
	assert.ErrorIs(t, err, ErrMiss)

	assert.NoError(t, c.Delete(ctx, key), "deleting a missing key")
}

func TestMemory(t *testing.T) {
	exerciseCache(t, NewMemory(time.Minute))
}

func TestMemoryExpires(t *testing.T) {
	m := NewMemory(time.Minute)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("v"), 20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)

	_, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory(time.Minute)
	ctx := context.Background()

	v := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", v, 0))
	v[0] = 'x'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
	assert.Equal(t, 1, m.Count())
}

func TestMemoryHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemory(time.Minute).Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRedis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_ADDRESS not set")
	}

	r, err := NewRedis(context.Background(), RedisConfig{Address: addr})
	require.NoError(t, err)
	defer r.Close()

	exerciseCache(t, r)
}

func TestNewRedisRequiresAddress(t *testing.T) {
	_, err := NewRedis(context.Background(), RedisConfig{})
	assert.Error(t, err)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	type payload struct {
		Titles []string `json:"titles"`
	}
	require.NoError(t, SetJSON(ctx, m, "p", payload{Titles: []string{"서울대"}}, time.Minute))

	var got payload
	require.NoError(t, GetJSON(ctx, m, "p", &got))
	assert.Equal(t, []string{"서울대"}, got.Titles)

	assert.ErrorIs(t, GetJSON(ctx, Noop{}, "p", &got), ErrMiss)
}

func TestGenerateKeyIgnoresOrder(t *testing.T) {
	a := GenerateKey("corpus", "naver", "rss")
	b := GenerateKey("corpus", "rss", "naver")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, GenerateKey("corpus", "rss"))
	assert.Contains(t, a, "corpus:")
}
