package checkout

import (
	"testing"
	"time"

	"github.com/pineneuron/meatstore-api/coupon"
	"github.com/pineneuron/meatstore-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOrderTx backs a submission with in-memory rows.
type fakeOrderTx struct {
	products     map[uint]*models.Product
	coupons      map[string]*models.Coupon
	redeemErr    error
	orders       []models.Order
	deletedCarts []string
}

func newFakeOrderTx() *fakeOrderTx {
	return &fakeOrderTx{
		products: map[uint]*models.Product{
			7: {ID: 7, Name: "Goat Curry Cut", Image: "goat.jpg", Price: 625, Stock: 10},
			8: {ID: 8, Name: "Chicken Breast", Image: "chicken.jpg", Price: 400, Stock: 5,
				Variations: []models.ProductVariation{{ID: 1, ProductID: 8, Name: "1kg", Price: 750}}},
		},
		coupons: map[string]*models.Coupon{},
	}
}

func (f *fakeOrderTx) FindByCode(code string) (*models.Coupon, error) {
	c, ok := f.coupons[models.CanonicalCouponCode(code)]
	if !ok {
		return nil, coupon.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeOrderTx) LockProduct(productID uint) (*models.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeOrderTx) SetStock(productID uint, stock int) error {
	f.products[productID].Stock = stock
	return nil
}

func (f *fakeOrderTx) RedeemCoupon(couponID uint) error {
	if f.redeemErr != nil {
		return f.redeemErr
	}
	for _, c := range f.coupons {
		if c.ID == couponID {
			c.UsedCount++
		}
	}
	return nil
}

func (f *fakeOrderTx) CreateOrder(order *models.Order) error {
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderTx) DeleteCartRecord(sessionKey string) error {
	f.deletedCarts = append(f.deletedCarts, sessionKey)
	return nil
}

// fakeOrderStore applies transaction semantics to a fakeOrderTx: every
// mutation made by a failing submission is undone.
type fakeOrderStore struct {
	tx         *fakeOrderTx
	calls      int
	rolledBack bool
}

func (s *fakeOrderStore) Transact(fn func(OrderTx) error) error {
	s.calls++
	stocks := make(map[uint]int, len(s.tx.products))
	for id, p := range s.tx.products {
		stocks[id] = p.Stock
	}
	used := make(map[string]int, len(s.tx.coupons))
	for code, c := range s.tx.coupons {
		used[code] = c.UsedCount
	}
	nOrders, nCarts := len(s.tx.orders), len(s.tx.deletedCarts)

	err := fn(s.tx)
	if err != nil {
		for id, v := range stocks {
			s.tx.products[id].Stock = v
		}
		for code, v := range used {
			s.tx.coupons[code].UsedCount = v
		}
		s.tx.orders = s.tx.orders[:nOrders]
		s.tx.deletedCarts = s.tx.deletedCarts[:nCarts]
		s.rolledBack = true
	}
	return err
}

func newTestService(tx *fakeOrderTx) (*Service, *fakeOrderStore) {
	store := &fakeOrderStore{tx: tx}
	return &Service{Store: store, Cfg: testConfig()}, store
}

func activeCoupon() *models.Coupon {
	return &models.Coupon{
		ID:             1,
		Code:           "SAVE10",
		DiscountType:   models.DiscountTypePercentage,
		Value:          10,
		MinOrderAmount: 1000,
		IsActive:       true,
		StartDate:      time.Now().Add(-time.Hour),
		EndDate:        time.Now().Add(time.Hour),
		UsageLimit:     5,
	}
}

func submitReq(items ...SubmitItem) SubmitRequest {
	return SubmitRequest{
		SessionKey: "guest_feed0001",
		Customer:   validForm(),
		Items:      items,
	}
}

func TestServiceSubmit(t *testing.T) {
	t.Run("rejects an empty item list without opening a transaction", func(t *testing.T) {
		svc, store := newTestService(newFakeOrderTx())
		_, err := svc.Submit(submitReq())
		var rej Rejection
		require.ErrorAs(t, err, &rej)
		assert.Zero(t, store.calls)
	})

	t.Run("prices come from the catalog, not the client", func(t *testing.T) {
		tx := newFakeOrderTx()
		svc, _ := newTestService(tx)

		// Client claims absurdly low prices; the stored rows win.
		order, err := svc.Submit(submitReq(
			SubmitItem{ProductID: 7, Name: "Goat Curry Cut", Quantity: 2, UnitPrice: 1},
			SubmitItem{ProductID: 8, Name: "Chicken Breast", Variation: "1kg", Quantity: 1, UnitPrice: 5},
		))
		require.NoError(t, err)

		// 625*2 + 750 (the 1kg variation price, not the base 400)
		assert.Equal(t, 2000.0, order.Subtotal)
		assert.Equal(t, 2000.0, order.TotalAmount)
		require.Len(t, order.Items, 2)
		assert.Equal(t, 625.0, order.Items[0].UnitPrice)
		assert.Equal(t, 1250.0, order.Items[0].LineTotal)
		assert.Equal(t, 750.0, order.Items[1].UnitPrice)

		assert.Equal(t, 8, tx.products[7].Stock)
		assert.Equal(t, 4, tx.products[8].Stock)
	})

	t.Run("insufficient stock rejects and rolls everything back", func(t *testing.T) {
		tx := newFakeOrderTx()
		svc, store := newTestService(tx)

		_, err := svc.Submit(submitReq(
			SubmitItem{ProductID: 8, Name: "Chicken Breast", Quantity: 3},
			SubmitItem{ProductID: 7, Name: "Goat Curry Cut", Quantity: 100},
		))
		var rej Rejection
		require.ErrorAs(t, err, &rej)
		assert.Contains(t, rej.Reason, "insufficient stock for Goat Curry Cut")

		assert.True(t, store.rolledBack)
		assert.Equal(t, 5, tx.products[8].Stock, "earlier line's deduction must be undone")
		assert.Empty(t, tx.orders)
	})

	t.Run("vanished product rejects by the name the customer saw", func(t *testing.T) {
		svc, _ := newTestService(newFakeOrderTx())
		_, err := svc.Submit(submitReq(SubmitItem{ProductID: 99, Name: "Mutton Leg", Quantity: 1}))
		var rej Rejection
		require.ErrorAs(t, err, &rej)
		assert.Contains(t, rej.Reason, `"Mutton Leg" is no longer available`)
	})

	t.Run("stale coupon fails with the validator's message", func(t *testing.T) {
		tx := newFakeOrderTx()
		expired := activeCoupon()
		expired.EndDate = time.Now().Add(-time.Minute)
		tx.coupons["SAVE10"] = expired
		svc, store := newTestService(tx)

		req := submitReq(SubmitItem{ProductID: 7, Name: "Goat Curry Cut", Quantity: 2})
		req.CouponCode = "SAVE10"
		_, err := svc.Submit(req)

		var rej Rejection
		require.ErrorAs(t, err, &rej)
		assert.Contains(t, rej.Reason, "Coupon SAVE10 has expired")

		assert.True(t, store.rolledBack)
		assert.Equal(t, 10, tx.products[7].Stock)
		assert.Empty(t, tx.orders)
	})

	t.Run("losing the redemption race rejects the order", func(t *testing.T) {
		tx := newFakeOrderTx()
		tx.coupons["SAVE10"] = activeCoupon()
		tx.redeemErr = coupon.ErrUsageExhausted
		svc, store := newTestService(tx)

		req := submitReq(SubmitItem{ProductID: 7, Name: "Goat Curry Cut", Quantity: 2})
		req.CouponCode = "SAVE10"
		_, err := svc.Submit(req)

		var rej Rejection
		require.ErrorAs(t, err, &rej)
		assert.Contains(t, rej.Reason, "has reached its usage limit")
		assert.True(t, store.rolledBack)
		assert.Equal(t, 10, tx.products[7].Stock)
		assert.Empty(t, tx.orders)
	})

	t.Run("coupon redeemed, totals recomputed, cart dropped", func(t *testing.T) {
		tx := newFakeOrderTx()
		tx.coupons["SAVE10"] = activeCoupon()
		svc, _ := newTestService(tx)

		var broadcast []models.Order
		svc.OnOrderPlaced = func(o models.Order) { broadcast = append(broadcast, o) }

		req := submitReq(SubmitItem{ProductID: 7, Name: "Goat Curry Cut", Quantity: 2},
			SubmitItem{ProductID: 8, Name: "Chicken Breast", Variation: "1kg", Quantity: 1})
		req.CouponCode = "save10"
		order, err := svc.Submit(req)
		require.NoError(t, err)

		// 2000 - 10% = 1800, below the 2000 minimum, so the fee applies.
		assert.Equal(t, 2000.0, order.Subtotal)
		assert.Equal(t, 200.0, order.DiscountAmount)
		assert.Equal(t, 150.0, order.DeliveryFee)
		assert.Equal(t, 1950.0, order.TotalAmount)
		assert.Equal(t, "SAVE10", order.CouponCode)

		assert.Equal(t, 1, tx.coupons["SAVE10"].UsedCount)
		assert.Equal(t, []string{"guest_feed0001"}, tx.deletedCarts)
		require.Len(t, tx.orders, 1)
		require.Len(t, broadcast, 1)
		assert.Equal(t, order.OrderNumber, broadcast[0].OrderNumber)
	})

	t.Run("payment method and status", func(t *testing.T) {
		t.Run("cash on delivery stays pending", func(t *testing.T) {
			svc, _ := newTestService(newFakeOrderTx())
			req := submitReq(SubmitItem{ProductID: 7, Name: "Goat Curry Cut", Quantity: 1})
			req.Customer.CashOnDelivery = true
			req.Customer.PaymentProofURL = ""
			order, err := svc.Submit(req)
			require.NoError(t, err)
			assert.Equal(t, "cod", order.PaymentMethod)
			assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
		})

		t.Run("auto-confirm marks proof-backed transfers paid", func(t *testing.T) {
			tx := newFakeOrderTx()
			svc, _ := newTestService(tx)
			svc.Cfg.PaymentAutoConfirm = true
			order, err := svc.Submit(submitReq(SubmitItem{ProductID: 7, Name: "Goat Curry Cut", Quantity: 1}))
			require.NoError(t, err)
			assert.Equal(t, "bank_transfer", order.PaymentMethod)
			assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
		})
	})
}
