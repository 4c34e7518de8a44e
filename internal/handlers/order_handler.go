package handlers

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"cybershop/internal/models"
	"cybershop/internal/repositories"
	"cybershop/internal/services"
)

// OrderHandler handles HTTP requests for orders through a single
// method-multiplexed endpoint.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order endpoint with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.All("/orders", h.Handle)
}

// Handle dispatches on the HTTP method. OPTIONS answers the CORS
// preflight, POST creates an order, GET retrieves one order or the
// recent listing, anything else is rejected with 405.
func (h *OrderHandler) Handle(c *fiber.Ctx) error {
	switch c.Method() {
	case fiber.MethodOptions:
		return c.Status(fiber.StatusOK).SendString("")
	case fiber.MethodPost:
		return h.handleCreateOrder(c)
	case fiber.MethodGet:
		return h.handleGetOrders(c)
	default:
		return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{
			"error": "method not allowed",
		})
	}
}

// handleCreateOrder validates the submitted cart and creates the order.
func (h *OrderHandler) handleCreateOrder(c *fiber.Ctx) error {
	var req models.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create order request body: %v", err)
		return serverError(c)
	}

	req.Normalize()
	if err := h.validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			log.Printf("Unexpected validation error: %v", err)
			return serverError(c)
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationMessage(validationErrors),
		})
	}

	result, err := h.service.CreateOrder(c.Context(), req)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return serverError(c)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"order_id":     result.OrderID,
		"total_amount": result.TotalAmount,
		"payment_url":  result.PaymentURL,
		"message":      "Order created successfully",
	})
}

// handleGetOrders returns a single order when an order_id query
// parameter is present, otherwise the recent-orders listing.
func (h *OrderHandler) handleGetOrders(c *fiber.Ctx) error {
	rawID := c.Query("order_id")
	if rawID == "" {
		return h.handleListOrders(c)
	}

	// A non-numeric id cannot match any order.
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		return orderNotFound(c)
	}

	order, err := h.service.GetOrderByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return orderNotFound(c)
		}
		log.Printf("Error getting order %d: %v", id, err)
		return serverError(c)
	}

	items := order.Items
	if items == nil {
		items = []models.OrderItem{}
	}
	return c.JSON(fiber.Map{
		"id":               order.ID,
		"customer_name":    order.CustomerName,
		"customer_email":   order.CustomerEmail,
		"customer_phone":   order.CustomerPhone,
		"delivery_address": order.DeliveryAddress,
		"total_amount":     order.TotalAmount,
		"status":           order.Status,
		"created_at":       isoTime(order.CreatedAt),
		"items":            items,
	})
}

// orderSummary is the reduced field set used in the listing.
type orderSummary struct {
	ID           uint            `json:"id"`
	CustomerName string          `json:"customer_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       string          `json:"status"`
	CreatedAt    *time.Time      `json:"created_at"`
}

func (h *OrderHandler) handleListOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetRecentOrders()
	if err != nil {
		log.Printf("Error getting recent orders: %v", err)
		return serverError(c)
	}

	summaries := make([]orderSummary, 0, len(orders))
	for _, order := range orders {
		summaries = append(summaries, orderSummary{
			ID:           order.ID,
			CustomerName: order.CustomerName,
			TotalAmount:  order.TotalAmount,
			Status:       order.Status,
			CreatedAt:    isoTime(order.CreatedAt),
		})
	}

	return c.JSON(fiber.Map{
		"orders": summaries,
	})
}

// validationMessage picks a descriptive message for the failed field.
// Customer-field errors are reported before cart errors.
func validationMessage(errs validator.ValidationErrors) string {
	for _, e := range errs {
		if e.Field() != "CartItems" {
			return "all customer fields are required"
		}
	}
	return "cart is empty"
}

// isoTime hides the zero time as null instead of 0001-01-01.
func isoTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func orderNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "order not found",
	})
}

// serverError hides internal details from the client; the underlying
// error is logged at the call site.
func serverError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}
