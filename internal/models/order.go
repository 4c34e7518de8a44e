package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusPending is the status every order starts in. Status is
// only moved forward by external processes (payment confirmation etc.),
// never by this service.
const OrderStatusPending = "pending"

// Order represents a customer order with delivery/contact details and
// a total computed once at creation time.
type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	CustomerName    string          `json:"customer_name" gorm:"type:varchar(255);not null"`
	CustomerEmail   string          `json:"customer_email" gorm:"type:varchar(255);not null"`
	CustomerPhone   string          `json:"customer_phone" gorm:"type:varchar(64);not null"`
	DeliveryAddress string          `json:"delivery_address" gorm:"not null"`
	TotalAmount     decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2);not null"`
	Status          string          `json:"status" gorm:"type:varchar(32);not null;default:pending"`
	PaymentID       *string         `json:"payment_id,omitempty" gorm:"type:varchar(64)"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem is one line entry within an order. It snapshots the product
// name and price at the time of purchase; there is no foreign key into
// a catalog.
type OrderItem struct {
	ID           uint            `json:"-" gorm:"primaryKey"`
	OrderID      uint            `json:"-" gorm:"index;not null"`
	ProductID    int64           `json:"product_id" gorm:"not null"`
	ProductName  string          `json:"product_name" gorm:"type:varchar(255);not null"`
	ProductPrice decimal.Decimal `json:"product_price" gorm:"type:numeric(12,2);not null"`
	Quantity     int             `json:"quantity" gorm:"not null"`
}

// CartItem is a single entry of a submitted cart.
type CartItem struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns price × quantity with exact decimal arithmetic.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CreateOrderRequest is the POST body for order creation.
type CreateOrderRequest struct {
	CustomerName    string     `json:"customer_name" validate:"required"`
	CustomerEmail   string     `json:"customer_email" validate:"required"`
	CustomerPhone   string     `json:"customer_phone" validate:"required"`
	DeliveryAddress string     `json:"delivery_address" validate:"required"`
	CartItems       []CartItem `json:"cart_items" validate:"required,min=1"`
}

// Normalize trims surrounding whitespace from the customer fields so
// that whitespace-only input fails the required validation.
func (r *CreateOrderRequest) Normalize() {
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.CustomerEmail = strings.TrimSpace(r.CustomerEmail)
	r.CustomerPhone = strings.TrimSpace(r.CustomerPhone)
	r.DeliveryAddress = strings.TrimSpace(r.DeliveryAddress)
}
