package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	// Order statuses (typical flow, in order)
	OrderStatusPending    OrderStatus = "pending"    // Order placed, awaiting confirmation
	OrderStatusConfirmed  OrderStatus = "confirmed"  // Confirmed by the shop
	OrderStatusProcessing OrderStatus = "processing" // Being prepared/packed
	OrderStatusShipped    OrderStatus = "shipped"    // Out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // Customer received the order
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled before delivery
	OrderStatusRefunded   OrderStatus = "refunded"   // Money returned after cancellation

	// Payment statuses
	PaymentStatusPending           PaymentStatus = "pending"
	PaymentStatusPaid              PaymentStatus = "paid"
	PaymentStatusFailed            PaymentStatus = "failed"
	PaymentStatusRefunded          PaymentStatus = "refunded"
	PaymentStatusPartiallyRefunded PaymentStatus = "partially_refunded"
)

type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null" json:"order_number"`

	// Customer snapshot taken at submission time
	CustomerName  string  `gorm:"not null" json:"customer_name"`
	CustomerEmail string  `gorm:"not null" json:"customer_email"`
	CustomerPhone string  `gorm:"not null" json:"customer_phone"`
	AltPhone      string  `json:"alt_phone"`
	City          string  `gorm:"not null" json:"city"`
	AddressLine1  string  `gorm:"not null" json:"address_line1"`
	Landmark      string  `json:"landmark"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Notes         string  `json:"notes"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	Subtotal       float64 `json:"subtotal"`
	DeliveryFee    float64 `json:"delivery_fee"`
	DiscountAmount float64 `json:"discount_amount"`
	TaxAmount      float64 `json:"tax_amount"`
	TotalAmount    float64 `json:"total_amount"`
	CouponCode     string  `json:"coupon_code,omitempty"`

	Status           OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus    PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	PaymentMethod    string        `json:"payment_method"` // "bank_transfer" or "cod"
	PaymentReference string        `json:"payment_reference"`
	PaymentProofURL  string        `json:"payment_proof_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index" json:"order_id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Variation string  `json:"variation,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Discount  float64 `json:"discount"`
	LineTotal float64 `json:"line_total"`
}
