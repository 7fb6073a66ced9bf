package checkout

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pineneuron/meatstore-api/config"
	"github.com/pineneuron/meatstore-api/coupon"
	"github.com/pineneuron/meatstore-api/models"
	"gorm.io/gorm"
)

// Service is the authoritative Order Submission Service. It never trusts
// client-sent prices or totals: every line is re-priced from the product
// table and the coupon is re-validated against the recomputed subtotal.
type Service struct {
	Store OrderStore
	Cfg   *config.Config

	// OnOrderPlaced, when set, is called after a successful commit (e.g. the
	// admin websocket broadcast).
	OnOrderPlaced func(models.Order)
}

func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{Store: GormOrderStore{DB: db}, Cfg: cfg}
}

// generateOrderNumber builds a short human-readable unique reference, e.g.
// ORD-20250830-1A2B3C. The unique index on orders.order_number is the final
// uniqueness backstop.
func generateOrderNumber() string {
	frag := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), frag)
}

// Submit creates the order inside one transaction: re-price lines with the
// product rows locked, deduct stock, re-validate and redeem the coupon, then
// persist the order and drop the session's stored cart.
func (s *Service) Submit(req SubmitRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, reject("cannot place an order with no items")
	}

	var order models.Order

	err := s.Store.Transact(func(tx OrderTx) error {
		var subtotal float64
		var orderItems []models.OrderItem

		for _, item := range req.Items {
			if item.Quantity < 1 {
				return reject("invalid quantity for product %d", item.ProductID)
			}

			product, err := tx.LockProduct(item.ProductID)
			if err != nil {
				if errors.Is(err, ErrProductNotFound) {
					return reject("product %q is no longer available", item.Name)
				}
				return err
			}

			if product.Stock < item.Quantity {
				return reject("insufficient stock for %s", product.Name)
			}
			if err := tx.SetStock(product.ID, product.Stock-item.Quantity); err != nil {
				return err
			}

			// Authoritative price; the client-sent one is advisory only.
			unitPrice := product.VariationPrice(item.Variation)
			lineTotal := coupon.Round2(unitPrice * float64(item.Quantity))
			subtotal += lineTotal

			orderItems = append(orderItems, models.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				Image:     product.Image,
				Variation: item.Variation,
				Quantity:  item.Quantity,
				UnitPrice: unitPrice,
				Discount:  product.DiscountPercent,
				LineTotal: lineTotal,
			})
		}
		subtotal = coupon.Round2(subtotal)

		// Server-side coupon re-validation; the client-cached discount can be
		// stale (expired or exhausted since "Apply").
		var discount float64
		var couponCode string
		if req.CouponCode != "" {
			v := coupon.NewValidator(tx)
			res := v.Validate(req.CouponCode, subtotal)
			if !res.Success {
				return Rejection{Reason: res.Message}
			}
			if err := tx.RedeemCoupon(res.Coupon.ID); err != nil {
				if errors.Is(err, coupon.ErrUsageExhausted) {
					return reject("coupon %s has reached its usage limit", res.Coupon.Code)
				}
				return err
			}
			discount = res.DiscountAmount
			couponCode = res.Coupon.Code
		}

		summary := ComputeSummary(s.Cfg, subtotal, discount)

		paymentStatus := models.PaymentStatusPending
		paymentMethod := "bank_transfer"
		if req.Customer.CashOnDelivery {
			paymentMethod = "cod"
		} else if s.Cfg.PaymentAutoConfirm && req.Customer.PaymentProofURL != "" {
			paymentStatus = models.PaymentStatusPaid
		}

		order = models.Order{
			OrderNumber:     generateOrderNumber(),
			CustomerName:    strings.TrimSpace(req.Customer.Name),
			CustomerEmail:   strings.TrimSpace(req.Customer.Email),
			CustomerPhone:   strings.TrimSpace(req.Customer.Phone),
			AltPhone:        strings.TrimSpace(req.Customer.AltPhone),
			City:            strings.TrimSpace(req.Customer.City),
			AddressLine1:    strings.TrimSpace(req.Customer.AddressLine1),
			Landmark:        req.Customer.Landmark,
			Latitude:        req.Customer.Latitude,
			Longitude:       req.Customer.Longitude,
			Notes:           req.Customer.Notes,
			Items:           orderItems,
			Subtotal:        summary.Subtotal,
			DeliveryFee:     summary.DeliveryFee,
			DiscountAmount:  summary.DiscountAmount,
			TaxAmount:       summary.TaxAmount,
			TotalAmount:     summary.Total,
			CouponCode:      couponCode,
			Status:          models.OrderStatusPending,
			PaymentStatus:   paymentStatus,
			PaymentMethod:   paymentMethod,
			PaymentProofURL: req.Customer.PaymentProofURL,
			CreatedAt:       time.Now(),
		}

		if err := tx.CreateOrder(&order); err != nil {
			return err
		}

		// The session's durable cart snapshot is gone once the order exists.
		if req.SessionKey != "" {
			if err := tx.DeleteCartRecord(req.SessionKey); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.OnOrderPlaced != nil {
		s.OnOrderPlaced(order)
	}
	return &order, nil
}
