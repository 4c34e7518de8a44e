package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cybershop/internal/models"
	"cybershop/internal/repositories"
)

var dbCounter int

// setupDB opens a fresh in-memory SQLite database per test.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbCounter++
	dsn := fmt.Sprintf("file:orderrepo%d?mode=memory&cache=shared", dbCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func sampleOrder() *models.Order {
	return &models.Order{
		CustomerName:    "A",
		CustomerEmail:   "a@b.com",
		CustomerPhone:   "123",
		DeliveryAddress: "X",
		TotalAmount:     decimal.RequireFromString("20.00"),
		Status:          models.OrderStatusPending,
		Items: []models.OrderItem{
			{ProductID: 1, ProductName: "Widget", ProductPrice: decimal.RequireFromString("10.00"), Quantity: 2},
		},
	}
}

func TestGORMOrderRepository_CreateAndGetByID(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	order := sampleOrder()
	err := repo.Create(order)
	assert.NoError(t, err)
	assert.Greater(t, order.ID, uint(0))

	fetched, err := repo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, "A", fetched.CustomerName)
	assert.Equal(t, models.OrderStatusPending, fetched.Status)
	assert.True(t, fetched.TotalAmount.Equal(decimal.RequireFromString("20.00")))
	assert.Len(t, fetched.Items, 1)
	assert.Equal(t, int64(1), fetched.Items[0].ProductID)
	assert.Equal(t, "Widget", fetched.Items[0].ProductName)
	assert.Equal(t, 2, fetched.Items[0].Quantity)
	assert.Equal(t, order.ID, fetched.Items[0].OrderID)
}

func TestGORMOrderRepository_GetByID_NotFound(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	order, err := repo.GetByID(999)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)
}

func TestGORMOrderRepository_GetRecent_OrderedAndLimited(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		order := sampleOrder()
		order.CustomerName = fmt.Sprintf("Customer %d", i)
		order.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := repo.Create(order); err != nil {
			t.Fatalf("failed to create order %d: %v", i, err)
		}
	}

	orders, err := repo.GetRecent(2)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, "Customer 2", orders[0].CustomerName)
	assert.Equal(t, "Customer 1", orders[1].CustomerName)
	// Listing carries no items.
	assert.Empty(t, orders[0].Items)
}

func TestGORMOrderRepository_UpdatePaymentID(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	order := sampleOrder()
	assert.NoError(t, repo.Create(order))

	err := repo.UpdatePaymentID(order.ID, "pay-123")
	assert.NoError(t, err)

	fetched, err := repo.GetByID(order.ID)
	assert.NoError(t, err)
	if assert.NotNil(t, fetched.PaymentID) {
		assert.Equal(t, "pay-123", *fetched.PaymentID)
	}

	err = repo.UpdatePaymentID(999, "pay-456")
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)
}

func TestMockOrderRepository_MatchesGORMBehaviour(t *testing.T) {
	repo := repositories.NewMockOrderRepository()

	order := sampleOrder()
	assert.NoError(t, repo.Create(order))
	assert.Equal(t, uint(1), order.ID)

	fetched, err := repo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Len(t, fetched.Items, 1)

	_, err = repo.GetByID(999)
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)

	assert.NoError(t, repo.UpdatePaymentID(order.ID, "pay-1"))
	fetched, _ = repo.GetByID(order.ID)
	if assert.NotNil(t, fetched.PaymentID) {
		assert.Equal(t, "pay-1", *fetched.PaymentID)
	}
}
