package handlers

import (
	"net/http"

	"superinv/internal/common"
	"superinv/internal/models"
	"superinv/internal/repositories"

	"github.com/labstack/echo/v4"
)

// TransactionHandlers serves the sale ledger, read-only.
type TransactionHandlers struct {
	transactionRepo repositories.TransactionRepository
}

func NewTransactionHandlers(transactionRepo repositories.TransactionRepository) *TransactionHandlers {
	return &TransactionHandlers{transactionRepo: transactionRepo}
}

// ListTransactionsRequest represents query parameters for the ledger
type ListTransactionsRequest struct {
	Limit  int  `query:"limit"`
	Offset int  `query:"offset"`
	Mine   bool `query:"mine"`
}

// ListTransactions returns ledger rows, newest first. With mine=true only
// the caller's own sales are returned.
func (h *TransactionHandlers) ListTransactions(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListTransactionsRequest
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

	var transactions []*models.Transaction
	var err error
	if req.Mine {
		userID, ok := common.UserIDFromContext(ctx)
		if !ok {
			return common.SendUnauthorizedError(c, "Unauthorized access")
		}
		transactions, err = h.transactionRepo.ListByUser(ctx, userID, req.Limit, req.Offset)
	} else {
		transactions, err = h.transactionRepo.List(ctx, req.Limit, req.Offset)
	}
	if err != nil {
		return common.SendServerError(c, "Failed to list transactions")
	}
	if transactions == nil {
		transactions = []*models.Transaction{}
	}

	return c.JSON(http.StatusOK, transactions)
}
