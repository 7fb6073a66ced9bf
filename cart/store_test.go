package cart

import (
	"errors"
	"testing"
	"time"

	"github.com/pineneuron/meatstore-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStorage is an in-memory Storage for tests.
type memStorage struct {
	snapshots map[string]models.CartSnapshot
	failLoad  error
}

func newMemStorage() *memStorage {
	return &memStorage{snapshots: make(map[string]models.CartSnapshot)}
}

func (m *memStorage) Load(key string) (*models.CartSnapshot, error) {
	if m.failLoad != nil {
		return nil, m.failLoad
	}
	snap, ok := m.snapshots[key]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

func (m *memStorage) Save(key string, snap models.CartSnapshot) error {
	m.snapshots[key] = snap
	return nil
}

func (m *memStorage) Delete(key string) error {
	delete(m.snapshots, key)
	return nil
}

func chicken() ProductRef {
	return ProductRef{ProductID: 1, Name: "Chicken Breast", UnitPrice: 550, Unit: "kg", Image: "chicken.jpg"}
}

func mutton(variation string) ProductRef {
	return ProductRef{ProductID: 2, Name: "Mutton Leg", UnitPrice: 1400, Unit: "kg", Variation: variation}
}

func hydratedStore(t *testing.T) (*Store, *memStorage) {
	t.Helper()
	storage := newMemStorage()
	store := NewStore(storage, "sess-1")
	require.NoError(t, store.Hydrate())
	return store, storage
}

func percentageCoupon(code string, value, minOrder, maxDiscount float64) models.Coupon {
	return models.Coupon{
		Code:              code,
		DiscountType:      models.DiscountTypePercentage,
		Value:             value,
		MinOrderAmount:    minOrder,
		MaxDiscountAmount: maxDiscount,
		StartDate:         time.Now().Add(-time.Hour),
		EndDate:           time.Now().Add(time.Hour),
		IsActive:          true,
	}
}

func TestStoreHydrationContract(t *testing.T) {
	t.Run("mutations before hydrate are rejected", func(t *testing.T) {
		store := NewStore(newMemStorage(), "sess-1")
		assert.False(t, store.Ready())
		assert.ErrorIs(t, store.AddItem(chicken(), 1), ErrNotHydrated)
	})

	t.Run("empty storage hydrates to ready and empty", func(t *testing.T) {
		store, _ := hydratedStore(t)
		assert.True(t, store.Ready())
		assert.Empty(t, store.Items())
	})

	t.Run("broken storage keeps store not ready", func(t *testing.T) {
		storage := newMemStorage()
		storage.failLoad = errors.New("backend down")
		store := NewStore(storage, "sess-1")
		require.Error(t, store.Hydrate())
		assert.False(t, store.Ready())
	})

	t.Run("reload reproduces items, coupon and subtotal", func(t *testing.T) {
		storage := newMemStorage()
		store := NewStore(storage, "sess-1")
		require.NoError(t, store.Hydrate())
		require.NoError(t, store.AddItem(chicken(), 2))
		require.NoError(t, store.AddItem(mutton("1kg"), 1))
		require.NoError(t, store.ApplyCoupon(models.AppliedCoupon{
			Coupon:         percentageCoupon("SAVE10", 10, 1000, 0),
			DiscountAmount: 250,
		}))

		reloaded := NewStore(storage, "sess-1")
		require.NoError(t, reloaded.Hydrate())
		assert.Equal(t, store.Items(), reloaded.Items())
		assert.Equal(t, store.Subtotal(), reloaded.Subtotal())
		require.NotNil(t, reloaded.AppliedCoupon())
		assert.Equal(t, "SAVE10", reloaded.AppliedCoupon().Coupon.Code)
	})
}

func TestStoreIdentityKey(t *testing.T) {
	t.Run("same product and variation merges quantities", func(t *testing.T) {
		store, _ := hydratedStore(t)
		require.NoError(t, store.AddItem(chicken(), 1))
		require.NoError(t, store.AddItem(chicken(), 2))

		require.Len(t, store.Items(), 1)
		assert.Equal(t, 3, store.Items()[0].Quantity)
	})

	t.Run("same product different variation stays separate", func(t *testing.T) {
		store, _ := hydratedStore(t)
		require.NoError(t, store.AddItem(mutton("500g"), 1))
		require.NoError(t, store.AddItem(mutton("1kg"), 1))

		assert.Len(t, store.Items(), 2)
	})

	t.Run("no duplicate keys under mixed operation sequences", func(t *testing.T) {
		store, _ := hydratedStore(t)
		require.NoError(t, store.AddItem(chicken(), 1))
		require.NoError(t, store.AddItem(mutton("500g"), 2))
		require.NoError(t, store.Increment(1, ""))
		require.NoError(t, store.AddItem(chicken(), 1))
		require.NoError(t, store.Decrement(2, "500g"))
		require.NoError(t, store.RemoveItem(1, ""))
		require.NoError(t, store.AddItem(chicken(), 4))
		require.NoError(t, store.AddItem(mutton("1kg"), 1))

		type identityKey struct {
			productID uint
			variation string
		}
		seen := make(map[identityKey]bool)
		for _, it := range store.Items() {
			key := identityKey{it.ProductID, it.Variation}
			assert.False(t, seen[key], "duplicate key for product %d variation %q", it.ProductID, it.Variation)
			seen[key] = true
		}
	})
}

func TestStoreQuantityRules(t *testing.T) {
	t.Run("decrement floors at one", func(t *testing.T) {
		store, _ := hydratedStore(t)
		require.NoError(t, store.AddItem(chicken(), 1))
		require.NoError(t, store.Decrement(1, ""))
		require.NoError(t, store.Decrement(1, ""))

		require.Len(t, store.Items(), 1)
		assert.Equal(t, 1, store.Items()[0].Quantity)
	})

	t.Run("increment and decrement adjust by one", func(t *testing.T) {
		store, _ := hydratedStore(t)
		require.NoError(t, store.AddItem(chicken(), 2))
		require.NoError(t, store.Increment(1, ""))
		assert.Equal(t, 3, store.Items()[0].Quantity)
		require.NoError(t, store.Decrement(1, ""))
		assert.Equal(t, 2, store.Items()[0].Quantity)
	})
}

func TestStoreRemoveItem(t *testing.T) {
	t.Run("without variation removes every variation of the product", func(t *testing.T) {
		store, _ := hydratedStore(t)
		require.NoError(t, store.AddItem(mutton("500g"), 1))
		require.NoError(t, store.AddItem(mutton("1kg"), 1))
		require.NoError(t, store.AddItem(chicken(), 1))

		require.NoError(t, store.RemoveItem(2, ""))

		require.Len(t, store.Items(), 1)
		assert.Equal(t, uint(1), store.Items()[0].ProductID)
	})

	t.Run("with variation removes only that line", func(t *testing.T) {
		store, _ := hydratedStore(t)
		require.NoError(t, store.AddItem(mutton("500g"), 1))
		require.NoError(t, store.AddItem(mutton("1kg"), 1))

		require.NoError(t, store.RemoveItem(2, "1kg"))

		require.Len(t, store.Items(), 1)
		assert.Equal(t, "500g", store.Items()[0].Variation)
	})
}

func TestStoreTotals(t *testing.T) {
	t.Run("subtotal is the exact sum of price times quantity", func(t *testing.T) {
		store, _ := hydratedStore(t)
		require.NoError(t, store.AddItem(chicken(), 2))     // 1100
		require.NoError(t, store.AddItem(mutton("1kg"), 3)) // 4200

		assert.Equal(t, 5300.0, store.Subtotal())
		assert.Equal(t, 5300.0, store.Total())
	})

	t.Run("coupon apply then remove restores total to subtotal", func(t *testing.T) {
		store, _ := hydratedStore(t)
		require.NoError(t, store.AddItem(mutton("1kg"), 2)) // 2800

		require.NoError(t, store.ApplyCoupon(models.AppliedCoupon{
			Coupon:         percentageCoupon("SAVE10", 10, 1000, 0),
			DiscountAmount: 280,
		}))
		assert.Equal(t, 2520.0, store.Total())

		require.NoError(t, store.RemoveCoupon())
		assert.Equal(t, store.Subtotal(), store.Total())
	})

	t.Run("coupon dropped when subtotal falls below its minimum", func(t *testing.T) {
		store, _ := hydratedStore(t)
		require.NoError(t, store.AddItem(mutton("1kg"), 2)) // 2800
		require.NoError(t, store.ApplyCoupon(models.AppliedCoupon{
			Coupon:         percentageCoupon("BIG", 10, 2000, 0),
			DiscountAmount: 280,
		}))

		require.NoError(t, store.RemoveItem(2, "1kg"))

		assert.Nil(t, store.AppliedCoupon())
		assert.Equal(t, 0.0, store.DiscountAmount())
	})

	t.Run("percentage discount tracks a growing subtotal", func(t *testing.T) {
		store, _ := hydratedStore(t)
		require.NoError(t, store.AddItem(mutton("1kg"), 2)) // 2800
		require.NoError(t, store.ApplyCoupon(models.AppliedCoupon{
			Coupon:         percentageCoupon("SAVE10", 10, 1000, 0),
			DiscountAmount: 280,
		}))

		require.NoError(t, store.Increment(2, "1kg")) // 4200

		assert.Equal(t, 420.0, store.DiscountAmount())
	})
}

func TestStoreClear(t *testing.T) {
	store, storage := hydratedStore(t)
	require.NoError(t, store.AddItem(chicken(), 2))
	require.NoError(t, store.ApplyCoupon(models.AppliedCoupon{
		Coupon:         percentageCoupon("SAVE10", 10, 0, 0),
		DiscountAmount: 110,
	}))
	require.Contains(t, storage.snapshots, "sess-1")

	require.NoError(t, store.Clear())

	assert.Empty(t, store.Items())
	assert.Nil(t, store.AppliedCoupon())
	assert.NotContains(t, storage.snapshots, "sess-1")
}

func TestStorePersistsEveryMutation(t *testing.T) {
	store, storage := hydratedStore(t)
	require.NoError(t, store.AddItem(chicken(), 1))
	assert.Len(t, storage.snapshots["sess-1"].Items, 1)

	require.NoError(t, store.Increment(1, ""))
	assert.Equal(t, 2, storage.snapshots["sess-1"].Items[0].Quantity)

	require.NoError(t, store.RemoveItem(1, ""))
	assert.Empty(t, storage.snapshots["sess-1"].Items)
}
