package cart

import (
	"errors"
	"log"

	"github.com/pineneuron/meatstore-api/coupon"
	"github.com/pineneuron/meatstore-api/models"
)

// ErrNotHydrated is returned by mutations attempted before Hydrate.
var ErrNotHydrated = errors.New("cart store not hydrated")

// ProductRef carries the product data a line item snapshots on add. It is
// always filled from the product store, never from client input.
type ProductRef struct {
	ProductID       uint
	Name            string
	UnitPrice       float64
	Unit            string
	DiscountPercent float64
	Image           string
	Variation       string
}

// Store is one shopping session's working selection. Line items are keyed by
// (ProductID, Variation); no two items ever share a key. Every mutation writes
// the full snapshot back to durable storage, and Clear removes it entirely.
//
// Consumers must call Hydrate before reading and check Ready to tell "not yet
// loaded" apart from "loaded and empty".
type Store struct {
	storage    Storage
	sessionKey string

	items   []models.CartLineItem
	applied *models.AppliedCoupon
	ready   bool
}

func NewStore(storage Storage, sessionKey string) *Store {
	return &Store{storage: storage, sessionKey: sessionKey}
}

// Hydrate reconstructs the store from durable storage. A missing snapshot is a
// valid empty cart; only a broken backend keeps the store not-ready.
func (s *Store) Hydrate() error {
	snap, err := s.storage.Load(s.sessionKey)
	if err != nil {
		return err
	}
	if snap != nil {
		s.items = snap.Items
		s.applied = snap.AppliedCoupon
	}
	s.ready = true
	return nil
}

// Ready reports whether Hydrate has completed.
func (s *Store) Ready() bool { return s.ready }

// SessionKey returns the key this store persists under.
func (s *Store) SessionKey() string { return s.sessionKey }

// Items returns the current line items.
func (s *Store) Items() []models.CartLineItem { return s.items }

// AppliedCoupon returns the currently applied coupon, or nil.
func (s *Store) AppliedCoupon() *models.AppliedCoupon { return s.applied }

func (s *Store) find(productID uint, variation string) int {
	for i, it := range s.items {
		if it.ProductID == productID && it.Variation == variation {
			return i
		}
	}
	return -1
}

// AddItem merges qty into an existing line item with the same identity key or
// appends a new one.
func (s *Store) AddItem(p ProductRef, qty int) error {
	if !s.ready {
		return ErrNotHydrated
	}
	if qty < 1 {
		qty = 1
	}
	if i := s.find(p.ProductID, p.Variation); i >= 0 {
		s.items[i].Quantity += qty
	} else {
		s.items = append(s.items, models.CartLineItem{
			ProductID:       p.ProductID,
			Name:            p.Name,
			UnitPrice:       p.UnitPrice,
			Unit:            p.Unit,
			DiscountPercent: p.DiscountPercent,
			Image:           p.Image,
			Variation:       p.Variation,
			Quantity:        qty,
		})
	}
	return s.afterMutation()
}

// RemoveItem deletes matching line items. An empty variation removes every
// variation of the product; pass the variation explicitly to remove one.
func (s *Store) RemoveItem(productID uint, variation string) error {
	if !s.ready {
		return ErrNotHydrated
	}
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ProductID == productID && (variation == "" || it.Variation == variation) {
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept
	return s.afterMutation()
}

// Increment raises the quantity of the matching line item by one.
func (s *Store) Increment(productID uint, variation string) error {
	if !s.ready {
		return ErrNotHydrated
	}
	if i := s.find(productID, variation); i >= 0 {
		s.items[i].Quantity++
	}
	return s.afterMutation()
}

// Decrement lowers the quantity by one, flooring at 1. Removing the line item
// entirely is RemoveItem's job.
func (s *Store) Decrement(productID uint, variation string) error {
	if !s.ready {
		return ErrNotHydrated
	}
	if i := s.find(productID, variation); i >= 0 && s.items[i].Quantity > 1 {
		s.items[i].Quantity--
	}
	return s.afterMutation()
}

// Clear empties the cart, drops any applied coupon and wipes durable storage.
func (s *Store) Clear() error {
	if !s.ready {
		return ErrNotHydrated
	}
	s.items = nil
	s.applied = nil
	return s.storage.Delete(s.sessionKey)
}

// ApplyCoupon attaches a validated coupon to the session.
func (s *Store) ApplyCoupon(ac models.AppliedCoupon) error {
	if !s.ready {
		return ErrNotHydrated
	}
	s.applied = &ac
	return s.persist()
}

// RemoveCoupon detaches the applied coupon, returning Total to Subtotal.
func (s *Store) RemoveCoupon() error {
	if !s.ready {
		return ErrNotHydrated
	}
	s.applied = nil
	return s.persist()
}

// Subtotal is the exact sum of unit price times quantity over all line items.
func (s *Store) Subtotal() float64 {
	var sum float64
	for _, it := range s.items {
		sum += it.UnitPrice * float64(it.Quantity)
	}
	return coupon.Round2(sum)
}

// DiscountAmount is the applied coupon's discount for the current subtotal.
func (s *Store) DiscountAmount() float64 {
	if s.applied == nil {
		return 0
	}
	return s.applied.DiscountAmount
}

// Total is subtotal minus discount. The validator caps discounts at the order
// amount, so this never goes negative.
func (s *Store) Total() float64 {
	return coupon.Round2(s.Subtotal() - s.DiscountAmount())
}

// Snapshot returns the serializable cart state.
func (s *Store) Snapshot() models.CartSnapshot {
	return models.CartSnapshot{Items: s.items, AppliedCoupon: s.applied}
}

// afterMutation re-checks the applied coupon against the new subtotal, then
// persists. A coupon whose minimum no longer holds is dropped; one that still
// holds gets its discount recomputed for the new amount.
func (s *Store) afterMutation() error {
	if s.applied != nil {
		subtotal := s.Subtotal()
		if subtotal < s.applied.Coupon.MinOrderAmount {
			log.Printf("⚠️ Coupon %s dropped: subtotal %.2f fell below minimum %.2f",
				s.applied.Coupon.Code, subtotal, s.applied.Coupon.MinOrderAmount)
			s.applied = nil
		} else {
			s.applied.DiscountAmount = coupon.ComputeDiscount(&s.applied.Coupon, subtotal)
		}
	}
	return s.persist()
}

func (s *Store) persist() error {
	return s.storage.Save(s.sessionKey, s.Snapshot())
}
