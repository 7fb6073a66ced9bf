package checkout

import (
	"errors"

	"github.com/pineneuron/meatstore-api/coupon"
	"github.com/pineneuron/meatstore-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrProductNotFound is returned by an OrderTx when a line's product row no
// longer exists.
var ErrProductNotFound = errors.New("product not found")

// OrderStore is the persistence surface behind the submission service.
// Transact runs fn atomically: the stock deductions, the coupon redemption
// and the order row all commit or roll back together.
type OrderStore interface {
	Transact(fn func(OrderTx) error) error
}

// OrderTx is the set of row operations available inside one submission
// transaction. It satisfies coupon.Finder so the validator can re-check a
// code against the same transaction it will be redeemed in.
type OrderTx interface {
	coupon.Finder

	// LockProduct loads a product row (with its variations) under a row
	// lock, so concurrent submissions serialize on the same stock.
	LockProduct(productID uint) (*models.Product, error)
	SetStock(productID uint, stock int) error
	RedeemCoupon(couponID uint) error
	CreateOrder(order *models.Order) error
	DeleteCartRecord(sessionKey string) error
}

// GormOrderStore runs submissions inside one database transaction.
type GormOrderStore struct {
	DB *gorm.DB
}

func (s GormOrderStore) Transact(fn func(OrderTx) error) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return fn(gormOrderTx{tx: tx})
	})
}

type gormOrderTx struct {
	tx *gorm.DB
}

func (t gormOrderTx) FindByCode(code string) (*models.Coupon, error) {
	return coupon.GormFinder{DB: t.tx}.FindByCode(code)
}

func (t gormOrderTx) LockProduct(productID uint) (*models.Product, error) {
	var product models.Product
	if err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Variations").
		First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (t gormOrderTx) SetStock(productID uint, stock int) error {
	return t.tx.Model(&models.Product{}).Where("id = ?", productID).
		Update("stock", stock).Error
}

func (t gormOrderTx) RedeemCoupon(couponID uint) error {
	return coupon.Redeem(t.tx, couponID)
}

func (t gormOrderTx) CreateOrder(order *models.Order) error {
	return t.tx.Create(order).Error
}

func (t gormOrderTx) DeleteCartRecord(sessionKey string) error {
	return t.tx.Delete(&models.CartRecord{}, "session_key = ?", sessionKey).Error
}
