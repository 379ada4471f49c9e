package handlers

import (
	"errors"
	"net/http"

	"superinv/internal/common"
	"superinv/internal/models"
	"superinv/internal/repositories"
	"superinv/internal/services"

	"github.com/labstack/echo/v4"
)

// InventoryHandlers handles inventory CRUD requests.
type InventoryHandlers struct {
	inventoryService services.InventoryService
	defaultThreshold int
}

func NewInventoryHandlers(inventoryService services.InventoryService, defaultThreshold int) *InventoryHandlers {
	return &InventoryHandlers{
		inventoryService: inventoryService,
		defaultThreshold: defaultThreshold,
	}
}

// ListInventoryRequest represents query parameters for listing inventory
type ListInventoryRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListInventory returns the inventory, paginated and name-sorted.
func (h *InventoryHandlers) ListInventory(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListInventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	if req.Limit <= 0 {
		req.Limit = 50
	}
	if req.Limit > 200 {
		req.Limit = 200
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	items, err := h.inventoryService.List(ctx, req.Limit, req.Offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list inventory")
	}
	if items == nil {
		items = []*models.InventoryItem{}
	}

	return c.JSON(http.StatusOK, items)
}

// UpsertInventoryRequest represents the create/upsert payload
type UpsertInventoryRequest struct {
	ProductName       string  `json:"product_name" validate:"required"`
	Description       *string `json:"description"`
	Quantity          int     `json:"quantity" validate:"min=0"`
	Price             float64 `json:"price" validate:"min=0"`
	Category          string  `json:"category" validate:"required"`
	LowStockThreshold *int    `json:"low_stock_threshold"`
}

// UpsertInventory inserts a new item or merges into the row with the same
// product_name: the posted quantity is added to the existing stock, other
// fields overwrite.
func (h *InventoryHandlers) UpsertInventory(c echo.Context) error {
	ctx := c.Request().Context()

	var req UpsertInventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.ProductName == "" {
		return common.SendValidationError(c, "product_name", "Product name is required")
	}
	if req.Category == "" {
		return common.SendValidationError(c, "category", "Category is required")
	}
	if req.Quantity < 0 {
		return common.SendValidationError(c, "quantity", "Quantity cannot be negative")
	}
	if req.Price < 0 {
		return common.SendValidationError(c, "price", "Price cannot be negative")
	}

	threshold := h.defaultThreshold
	if req.LowStockThreshold != nil {
		if *req.LowStockThreshold < 0 {
			return common.SendValidationError(c, "low_stock_threshold", "Threshold cannot be negative")
		}
		threshold = *req.LowStockThreshold
	}

	item := &models.InventoryItem{
		ProductName:       req.ProductName,
		Description:       req.Description,
		Quantity:          req.Quantity,
		Price:             req.Price,
		Category:          req.Category,
		LowStockThreshold: threshold,
	}

	if err := h.inventoryService.Upsert(ctx, item); err != nil {
		return common.SendServerError(c, "Failed to save inventory item")
	}

	return c.JSON(http.StatusCreated, item)
}

// GetInventory returns a single item by id.
func (h *InventoryHandlers) GetInventory(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := common.ValidateUUID(c.Param("id"), "inventory id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	item, err := h.inventoryService.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "Inventory item")
		}
		return common.SendServerError(c, "Failed to load inventory item")
	}

	return c.JSON(http.StatusOK, item)
}

// UpdateInventory replaces the fields of an existing item by id.
func (h *InventoryHandlers) UpdateInventory(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := common.ValidateUUID(c.Param("id"), "inventory id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req UpsertInventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.ProductName == "" {
		return common.SendValidationError(c, "product_name", "Product name is required")
	}
	if req.Quantity < 0 {
		return common.SendValidationError(c, "quantity", "Quantity cannot be negative")
	}
	if req.Price < 0 {
		return common.SendValidationError(c, "price", "Price cannot be negative")
	}

	threshold := h.defaultThreshold
	if req.LowStockThreshold != nil {
		threshold = *req.LowStockThreshold
	}

	item := &models.InventoryItem{
		ID:                itemID,
		ProductName:       req.ProductName,
		Description:       req.Description,
		Quantity:          req.Quantity,
		Price:             req.Price,
		Category:          req.Category,
		LowStockThreshold: threshold,
	}

	if err := h.inventoryService.Update(ctx, item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "Inventory item")
		}
		return common.SendServerError(c, "Failed to update inventory item")
	}

	return c.JSON(http.StatusOK, item)
}

// DeleteInventory removes an item by id.
func (h *InventoryHandlers) DeleteInventory(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := common.ValidateUUID(c.Param("id"), "inventory id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.inventoryService.Delete(ctx, itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "Inventory item")
		}
		return common.SendServerError(c, "Failed to delete inventory item")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Inventory item deleted"})
}
