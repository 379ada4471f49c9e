package jobs

import (
	"context"
	"errors"
	"testing"

	"superinv/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) Upsert(ctx context.Context, item *models.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) Update(ctx context.Context, item *models.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInventoryRepository) List(ctx context.Context, limit, offset int) ([]*models.InventoryItem, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) ListBelowThreshold(ctx context.Context) ([]*models.InventoryItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.InventoryItem), args.Error(1)
}

func TestCheckLowStock(t *testing.T) {
	repo := new(MockInventoryRepository)
	repo.On("ListBelowThreshold", mock.Anything).Return([]*models.InventoryItem{
		{ID: uuid.New(), ProductName: "Widget", Quantity: 2, LowStockThreshold: 10},
		{ID: uuid.New(), ProductName: "Bolt", Quantity: 0, LowStockThreshold: 5},
	}, nil)

	svc := NewLowStockAlertService(repo)
	alerts, err := svc.CheckLowStock(context.Background())
	assert.NoError(t, err)
	assert.Len(t, alerts, 2)
	assert.Equal(t, "Widget", alerts[0].ProductName)
	assert.Equal(t, 2, alerts[0].CurrentStock)
	assert.Equal(t, 10, alerts[0].Threshold)
}

func TestCheckLowStock_NoAlerts(t *testing.T) {
	repo := new(MockInventoryRepository)
	repo.On("ListBelowThreshold", mock.Anything).Return([]*models.InventoryItem{}, nil)

	svc := NewLowStockAlertService(repo)
	alerts, err := svc.CheckLowStock(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestScheduledLowStockCheck_PropagatesStoreError(t *testing.T) {
	repo := new(MockInventoryRepository)
	repo.On("ListBelowThreshold", mock.Anything).Return([]*models.InventoryItem(nil), errors.New("connection refused"))

	svc := NewLowStockAlertService(repo)
	err := svc.ScheduledLowStockCheck(context.Background())
	assert.Error(t, err)
}
