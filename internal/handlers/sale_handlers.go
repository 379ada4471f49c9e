package handlers

import (
	"errors"
	"net/http"

	"superinv/internal/common"
	"superinv/internal/models"
	"superinv/internal/repositories"
	"superinv/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SaleHandlers handles cart checkout requests.
type SaleHandlers struct {
	checkoutService services.CheckoutService
}

func NewSaleHandlers(checkoutService services.CheckoutService) *SaleHandlers {
	return &SaleHandlers{checkoutService: checkoutService}
}

// CartLine is one requested sale line, keyed by product id in the cart.
type CartLine struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest represents the checkout payload
type CheckoutRequest struct {
	Cart map[string]CartLine `json:"cart"`
}

// CheckoutResponse wraps the receipt of a committed sale.
type CheckoutResponse struct {
	Message string              `json:"message"`
	Receipt *models.SaleReceipt `json:"receipt"`
}

// Checkout validates the cart shape at the boundary and hands the typed
// cart to the checkout service. Insufficient stock maps to 422, store
// failures to 500; both after a full rollback.
func (h *SaleHandlers) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.UserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "Unauthorized access")
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if len(req.Cart) == 0 {
		return common.SendValidationError(c, "cart", "Cart must not be empty")
	}

	cart := make(map[uuid.UUID]int, len(req.Cart))
	for productIDStr, line := range req.Cart {
		productID, err := common.ValidateUUID(productIDStr, "product id")
		if err != nil {
			return common.SendValidationError(c, "cart", err.Error())
		}
		if line.Quantity <= 0 {
			return common.SendValidationError(c, "cart", "Quantities must be positive")
		}
		cart[productID] = line.Quantity
	}

	receipt, err := h.checkoutService.Checkout(ctx, userID, cart)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInsufficientStock):
			return c.JSON(http.StatusUnprocessableEntity, common.CreateErrorResponse("INSUFFICIENT_STOCK", err.Error(), nil))
		case errors.Is(err, repositories.ErrNotFound):
			return common.SendNotFoundError(c, "Product")
		case errors.Is(err, services.ErrEmptyCart), errors.Is(err, services.ErrInvalidQuantity):
			return common.SendValidationError(c, "cart", err.Error())
		default:
			return c.JSON(http.StatusInternalServerError, common.CreateErrorResponse("TRANSACTION_FAILED", "Sale could not be completed, please try again", nil))
		}
	}

	return c.JSON(http.StatusOK, CheckoutResponse{
		Message: "Sale completed",
		Receipt: receipt,
	})
}
