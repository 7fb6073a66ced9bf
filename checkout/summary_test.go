package checkout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeSummary(t *testing.T) {
	cfg := testConfig()

	t.Run("below minimum adds the delivery fee", func(t *testing.T) {
		// 1800 subtotal, no coupon -> 1800 + 150
		s := ComputeSummary(cfg, 1800, 0)
		assert.True(t, s.BelowMinimum)
		assert.Equal(t, 150.0, s.DeliveryFee)
		assert.Equal(t, 1950.0, s.Total)
	})

	t.Run("at or above minimum ships free", func(t *testing.T) {
		s := ComputeSummary(cfg, 2000, 0)
		assert.False(t, s.BelowMinimum)
		assert.Zero(t, s.DeliveryFee)
		assert.Equal(t, 2000.0, s.Total)
	})

	t.Run("discount can push an order below the minimum", func(t *testing.T) {
		s := ComputeSummary(cfg, 2100, 300)
		assert.True(t, s.BelowMinimum)
		assert.Equal(t, 2100.0+150-300, s.Total)
	})

	t.Run("clamped coupon scenario", func(t *testing.T) {
		// 10% of 5000 capped at 300 -> total 4700
		s := ComputeSummary(cfg, 5000, 300)
		assert.Equal(t, 4700.0, s.Total)
		assert.False(t, s.BelowMinimum)
	})

	t.Run("tax charged on the subtotal when configured", func(t *testing.T) {
		taxed := *cfg
		taxed.TaxRate = 0.13
		s := ComputeSummary(&taxed, 3000, 0)
		assert.Equal(t, 390.0, s.TaxAmount)
		assert.Equal(t, 3390.0, s.Total)
	})
}

func TestGenerateOrderNumber(t *testing.T) {
	n := generateOrderNumber()
	assert.True(t, strings.HasPrefix(n, "ORD-"))
	assert.Len(t, n, len("ORD-20060102-")+6)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		m := generateOrderNumber()
		assert.False(t, seen[m], "duplicate order number %s", m)
		seen[m] = true
	}
}
