package repositories

import (
	"errors"

	"cybershop/internal/models"
)

// ErrOrderNotFound is returned when a lookup targets an order that does
// not exist. Callers distinguish it with errors.Is.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create persists the order together with all of its items in a
	// single transaction and fills in the generated id.
	Create(order *models.Order) error
	// GetByID returns the order with its items, or ErrOrderNotFound.
	GetByID(id uint) (*models.Order, error)
	// GetRecent returns up to limit orders, newest first, without items.
	GetRecent(limit int) ([]models.Order, error)
	// UpdatePaymentID sets the payment identifier on an existing order.
	UpdatePaymentID(id uint, paymentID string) error
}
