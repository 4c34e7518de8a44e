package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"cybershop/internal/models"
	"cybershop/internal/repositories"
	"cybershop/pkg/payment"
)

// recentOrdersLimit caps the listing returned when no order id is given.
const recentOrdersLimit = 50

// PaymentGateway creates provider-side payment sessions. Implemented by
// payment.Client; mocked in tests.
type PaymentGateway interface {
	CreateSession(ctx context.Context, orderID uint, amount decimal.Decimal) (*payment.Session, error)
}

// EventPublisher publishes order events to a message broker.
type EventPublisher interface {
	Publish(body []byte) error
}

// CreateOrderResult is what a successful order creation yields.
type CreateOrderResult struct {
	OrderID     uint
	TotalAmount decimal.Decimal
	PaymentURL  *string
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	gateway   PaymentGateway // nil when payment credentials are not configured
	publisher EventPublisher // nil when no broker is configured
}

// NewOrderService creates a new OrderService. Both gateway and publisher
// may be nil; the corresponding best-effort step is then skipped.
func NewOrderService(orderRepo repositories.OrderRepository, gateway PaymentGateway, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		gateway:   gateway,
		publisher: publisher,
	}
}

// CreateOrder persists a new pending order with its items, then runs the
// best-effort payment and event steps. The order is considered created
// once the database write succeeds; payment or broker failures are
// logged and never surfaced to the caller.
func (s *OrderService) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*CreateOrderResult, error) {
	// Total is computed once, with exact decimal arithmetic.
	totalAmount := decimal.Zero
	items := make([]models.OrderItem, 0, len(req.CartItems))
	for _, item := range req.CartItems {
		totalAmount = totalAmount.Add(item.Subtotal())
		items = append(items, models.OrderItem{
			ProductID:    item.ID,
			ProductName:  item.Name,
			ProductPrice: item.Price,
			Quantity:     item.Quantity,
		})
	}

	newOrder := &models.Order{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		TotalAmount:     totalAmount,
		Status:          models.OrderStatusPending,
		Items:           items,
	}

	if err := s.orderRepo.Create(newOrder); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	result := &CreateOrderResult{
		OrderID:     newOrder.ID,
		TotalAmount: newOrder.TotalAmount,
	}

	// Best-effort payment session. Order creation must not fail because
	// payment setup failed.
	if s.gateway != nil {
		session, err := s.gateway.CreateSession(ctx, newOrder.ID, newOrder.TotalAmount)
		if err != nil {
			log.Printf("Warning: failed to create payment session for order %d: %v", newOrder.ID, err)
		} else {
			if err := s.orderRepo.UpdatePaymentID(newOrder.ID, session.ID); err != nil {
				log.Printf("Warning: failed to persist payment id for order %d: %v", newOrder.ID, err)
			}
			result.PaymentURL = &session.ConfirmationURL
		}
	}

	// Best-effort order.created event.
	if s.publisher != nil {
		event := map[string]interface{}{
			"event":    "order.created",
			"order_id": newOrder.ID,
			"status":   newOrder.Status,
			"total":    newOrder.TotalAmount,
		}
		body, err := json.Marshal(event)
		if err != nil {
			log.Printf("Failed to marshal order event: %v", err)
		} else if err := s.publisher.Publish(body); err != nil {
			log.Printf("Warning: failed to publish order created event for order %d: %v", newOrder.ID, err)
		}
	}

	return result, nil
}

// GetOrderByID retrieves a single order with its items.
func (s *OrderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetRecentOrders retrieves the most recently created orders, newest
// first, without items.
func (s *OrderService) GetRecentOrders() ([]models.Order, error) {
	return s.orderRepo.GetRecent(recentOrdersLimit)
}
