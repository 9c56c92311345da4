package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golden-fork/internal/kvstore"
	"golden-fork/internal/logger"
	"golden-fork/internal/models"
)

var (
	butterChicken = models.Product{ID: "101", Name: "Butter Chicken", Price: decimal.RequireFromString("349")}
	garlicNaan    = models.Product{ID: "201", Name: "Garlic Naan", Price: decimal.RequireFromString("59")}
)

type failingKV struct {
	kvstore.Store
	failGet bool
	failSet bool
}

func (f *failingKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failGet {
		return "", false, errors.New("connection refused")
	}
	return f.Store.Get(ctx, key)
}

func (f *failingKV) Set(ctx context.Context, key, value string) error {
	if f.failSet {
		return errors.New("connection refused")
	}
	return f.Store.Set(ctx, key, value)
}

func newTestStore() (*Store, kvstore.Store) {
	kv := kvstore.NewMemory()
	return New(kv, nil, logger.NewNop()), kv
}

func TestAdd_IncrementsOrAppends(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	_, err := s.Add(ctx, butterChicken)
	require.NoError(t, err)
	_, err = s.Add(ctx, garlicNaan)
	require.NoError(t, err)
	items, err := s.Add(ctx, butterChicken)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "101", items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "201", items[1].ID)
	assert.Equal(t, 1, items[1].Quantity)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestChangeQuantity_NeverBelowOne(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	_, _ = s.Add(ctx, butterChicken)

	tests := []struct {
		name  string
		delta int
		want  int
	}{
		{"increment", 1, 2},
		{"increment again", 3, 5},
		{"decrement", -1, 4},
		{"large decrement clamps", -10, 1},
		{"decrement at one stays", -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := s.ChangeQuantity(ctx, "101", tt.delta)
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, tt.want, items[0].Quantity)
		})
	}
}

func TestChangeQuantity_UnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	_, _ = s.Add(ctx, butterChicken)

	items, err := s.ChangeQuantity(ctx, "999", 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore()
	_, _ = s.Add(ctx, butterChicken)
	_, _ = s.Add(ctx, garlicNaan)

	items, err := s.Remove(ctx, "101")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "201", items[0].ID)

	require.NoError(t, s.Clear(ctx))
	items, err = s.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, ok, _ := kv.Get(ctx, kvstore.KeyCart)
	assert.False(t, ok)
}

func TestConsume(t *testing.T) {
	ctx := context.Background()

	t.Run("unchanged cart is deleted", func(t *testing.T) {
		s, kv := newTestStore()
		_, _ = s.Add(ctx, butterChicken)
		_, _ = s.Add(ctx, garlicNaan)
		ordered, err := s.Items(ctx)
		require.NoError(t, err)

		require.NoError(t, s.Consume(ctx, ordered))
		_, ok, _ := kv.Get(ctx, kvstore.KeyCart)
		assert.False(t, ok)
	})

	t.Run("later additions stay", func(t *testing.T) {
		s, _ := newTestStore()
		_, _ = s.Add(ctx, butterChicken)
		ordered, err := s.Items(ctx)
		require.NoError(t, err)

		_, _ = s.Add(ctx, butterChicken)
		_, _ = s.Add(ctx, garlicNaan)
		require.NoError(t, s.Consume(ctx, ordered))

		items, err := s.Items(ctx)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "101", items[0].ID)
		assert.Equal(t, 1, items[0].Quantity)
		assert.Equal(t, "201", items[1].ID)
	})

	t.Run("removed lines are not resurrected", func(t *testing.T) {
		s, _ := newTestStore()
		_, _ = s.Add(ctx, butterChicken)
		_, _ = s.Add(ctx, garlicNaan)
		ordered, err := s.Items(ctx)
		require.NoError(t, err)

		_, _ = s.Remove(ctx, "201")
		require.NoError(t, s.Consume(ctx, ordered))

		items, err := s.Items(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestItems_CorruptBlobIsEmpty(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore()
	require.NoError(t, kv.Set(ctx, kvstore.KeyCart, "{not json"))

	items, err := s.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = s.Add(ctx, garlicNaan)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestItems_PersistedAcrossStores(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	first := New(kv, nil, logger.NewNop())
	_, _ = first.Add(ctx, butterChicken)
	_, _ = first.Add(ctx, butterChicken)

	second := New(kv, nil, logger.NewNop())
	items, err := second.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("349")))
}

func TestStoreErrors_AreRemoteAndKeepState(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{Store: kvstore.NewMemory()}
	s := New(kv, nil, logger.NewNop())
	_, err := s.Add(ctx, butterChicken)
	require.NoError(t, err)

	kv.failSet = true
	_, err = s.Add(ctx, garlicNaan)
	require.Error(t, err)
	assert.True(t, models.IsRemote(err))

	kv.failSet = false
	items, err := s.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "101", items[0].ID)

	kv.failGet = true
	_, err = s.Count(ctx)
	assert.True(t, models.IsRemote(err))
}

func TestConcurrentAdds_AreSerialised(t *testing.T) {
	ctx := context.Background()
	sessions := kvstore.NewSessions(kvstore.NewMemory())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := ForSession(sessions.Open("s1"), logger.NewNop())
			_, _ = s.Add(ctx, butterChicken)
		}()
	}
	wg.Wait()

	n, err := ForSession(sessions.Open("s1"), logger.NewNop()).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, n)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	items := []models.LineItem{
		{ID: "101", Name: "Butter Chicken", UnitPrice: decimal.RequireFromString("349.50"), Quantity: 2, Image: "bc.jpg"},
		{ID: "201", Name: "Garlic Naan", UnitPrice: decimal.RequireFromString("59"), Quantity: 1},
	}

	blob, err := Encode(items)
	require.NoError(t, err)
	decoded, err := Decode(blob)
	require.NoError(t, err)
	again, err := Encode(decoded)
	require.NoError(t, err)

	assert.Equal(t, blob, again)
	require.Len(t, decoded, 2)
	assert.True(t, decoded[0].UnitPrice.Equal(items[0].UnitPrice))
}

func TestDecode_AppFormat(t *testing.T) {
	items, err := Decode(`[{"id":"7","name":"Lassi","price":89,"quantity":0},{"name":"no id","price":1,"quantity":1}]`)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
	assert.True(t, items[0].UnitPrice.Equal(decimal.NewFromInt(89)))

	empty, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)
}
