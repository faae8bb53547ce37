package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

func newStore(t *testing.T, opts ...Option) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewFromClient(client, opts...), mr
}

func sample() *definition.Definition {
	return &definition.Definition{
		Name:     "flip",
		Alphabet: []string{"a", "b"},
		Memory:   []string{"a", "b", `\`},
		Rules: map[string]map[string]string{
			"a": {"1": "Rb1"},
			"b": {"1": "Ra1"},
			`\`: {"1": `S\0`},
		},
	}
}

func TestRedisStore_Contract(t *testing.T) {
	store, _ := newStore(t)
	ports.RunDefinitionStoreContract(t, store)
}

func TestRedisStore_Keys(t *testing.T) {
	store, mr := newStore(t, WithPrefix("custom:"))
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.Save(ctx, "flip", sample()))

	assert.True(t, mr.Exists("custom:flip"))
	members, err := mr.ZMembers("custom:index")
	require.NoError(t, err)
	assert.Equal(t, []string{"flip"}, members)

	raw, err := mr.Get("custom:flip")
	require.NoError(t, err)
	assert.Contains(t, raw, `"alphabet":["a","b"]`)
	assert.False(t, mr.Exists(DefaultPrefix+"flip"))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	store, mr := newStore(t, WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "flip", sample()))
	assert.Equal(t, time.Minute, mr.TTL(DefaultPrefix+"flip"))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"flip"}, names)

	// Key expiry is driven by miniredis, index pruning by the store clock.
	mr.FastForward(2 * time.Minute)
	store.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = store.Load(ctx, "flip")
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)

	names, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRedisStore_BackendError(t *testing.T) {
	store, mr := newStore(t)
	mr.SetError("LOADING redis is loading")

	_, err := store.Load(context.Background(), "flip")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDefinitionNotFound)
	assert.ErrorContains(t, err, "failed to get from redis")
}
