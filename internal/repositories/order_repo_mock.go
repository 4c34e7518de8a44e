package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"cybershop/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[uint]models.Order
	nextID uint
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[uint]models.Order),
		nextID: 1,
	}
}

// Create adds a new order, assigning a sequential id like the store would.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.nextID
	r.nextID++
	order.CreatedAt = time.Now()
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	r.orders[order.ID] = *order
	return nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %d: %w", id, ErrOrderNotFound)
	}
	return &order, nil
}

// GetRecent returns up to limit orders, newest first.
func (r *MockOrderRepository) GetRecent(limit int) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		order.Items = nil
		orderList = append(orderList, order)
	}
	sort.Slice(orderList, func(i, j int) bool {
		return orderList[i].CreatedAt.After(orderList[j].CreatedAt)
	})
	if len(orderList) > limit {
		orderList = orderList[:limit]
	}
	return orderList, nil
}

// UpdatePaymentID sets the payment identifier on an existing order.
func (r *MockOrderRepository) UpdatePaymentID(id uint, paymentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %d: %w", id, ErrOrderNotFound)
	}
	order.PaymentID = &paymentID
	r.orders[id] = order
	return nil
}
