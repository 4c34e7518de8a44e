package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"cybershop/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create inserts the order row and all item rows in one transaction.
// GORM cascades the Items association inside the same transaction, so a
// failure on any item insert rolls back the order row as well.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves a single order with its items from the database.
func (r *GORMOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %d: %w", id, ErrOrderNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// GetRecent retrieves up to limit orders ordered by creation time
// descending. Items are not loaded for the listing.
func (r *GORMOrderRepository) GetRecent(limit int) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent orders: %w", err)
	}
	return orders, nil
}

// UpdatePaymentID sets the payment identifier on an existing order.
func (r *GORMOrderRepository) UpdatePaymentID(id uint, paymentID string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("payment_id", paymentID)
	if res.Error != nil {
		return fmt.Errorf("failed to update payment id for order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %d: %w", id, ErrOrderNotFound)
	}
	return nil
}
