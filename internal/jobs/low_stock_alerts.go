package jobs

import (
	"context"
	"log"

	"superinv/internal/models"
	"superinv/internal/repositories"

	"github.com/google/uuid"
)

// LowStockAlertService periodically scans for items at or below their
// per-item threshold. Alerts are advisory only and never block a sale.
type LowStockAlertService struct {
	inventoryRepo repositories.InventoryRepository
}

type LowStockAlert struct {
	ProductID    uuid.UUID
	ProductName  string
	CurrentStock int
	Threshold    int
}

func NewLowStockAlertService(inventoryRepo repositories.InventoryRepository) *LowStockAlertService {
	return &LowStockAlertService{inventoryRepo: inventoryRepo}
}

func (a *LowStockAlertService) CheckLowStock(ctx context.Context) ([]LowStockAlert, error) {
	items, err := a.inventoryRepo.ListBelowThreshold(ctx)
	if err != nil {
		log.Printf("Failed to list low-stock items: %v", err)
		return nil, err
	}

	var alerts []LowStockAlert
	for _, item := range items {
		alerts = append(alerts, newAlert(item))
	}
	return alerts, nil
}

func newAlert(item *models.InventoryItem) LowStockAlert {
	return LowStockAlert{
		ProductID:    item.ID,
		ProductName:  item.ProductName,
		CurrentStock: item.Quantity,
		Threshold:    item.LowStockThreshold,
	}
}

func (a *LowStockAlertService) LogLowStockAlerts(alerts []LowStockAlert) {
	if len(alerts) == 0 {
		return
	}

	log.Printf("Low stock alerts (%d items):", len(alerts))
	for _, alert := range alerts {
		log.Printf("- Product '%s' has %d units (threshold: %d)",
			alert.ProductName,
			alert.CurrentStock,
			alert.Threshold)
	}
}

// ScheduledLowStockCheck is the cron entrypoint.
func (a *LowStockAlertService) ScheduledLowStockCheck(ctx context.Context) error {
	alerts, err := a.CheckLowStock(ctx)
	if err != nil {
		log.Printf("Scheduled low stock check failed: %v", err)
		return err
	}

	a.LogLowStockAlerts(alerts)
	return nil
}
