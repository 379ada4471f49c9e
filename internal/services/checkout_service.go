package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"superinv/internal/caching"
	"superinv/internal/models"
	"superinv/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CheckoutService converts a cart into committed ledger rows and
// decremented stock, all-or-nothing. It is the only writer of the
// transactions table.
type CheckoutService interface {
	Checkout(ctx context.Context, userID uuid.UUID, cart map[uuid.UUID]int) (*models.SaleReceipt, error)
}

type checkoutService struct {
	db           repositories.Database
	cacheService caching.CacheService
}

func NewCheckoutService(db repositories.Database, cacheService caching.CacheService) CheckoutService {
	return &checkoutService{
		db:           db,
		cacheService: cacheService,
	}
}

// Checkout runs the whole read-validate-write sequence in one serializable
// transaction. Cart rows are locked FOR UPDATE in sorted product-id order,
// so two overlapping carts cannot deadlock each other and cannot both pass
// the stock check on the same item. Any line over stock aborts the entire
// call: no ledger rows, no quantity changes.
func (s *checkoutService) Checkout(ctx context.Context, userID uuid.UUID, cart map[uuid.UUID]int) (*models.SaleReceipt, error) {
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}

	productIDs := make([]uuid.UUID, 0, len(cart))
	for productID, quantity := range cart {
		if quantity <= 0 {
			return nil, fmt.Errorf("%w: product %s", ErrInvalidQuantity, productID.String())
		}
		productIDs = append(productIDs, productID)
	}
	sort.Slice(productIDs, func(i, j int) bool {
		return bytes.Compare(productIDs[i][:], productIDs[j][:]) < 0
	})

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", ErrTransactionFailed, err)
	}
	defer tx.Rollback(ctx)

	soldAt := time.Now()
	receipt := &models.SaleReceipt{SoldAt: soldAt}

	for _, productID := range productIDs {
		requested := cart[productID]

		var productName string
		var quantity int
		var price float64
		err := tx.QueryRow(ctx, `
			SELECT product_name, quantity, price
			FROM inventory
			WHERE id = $1
			FOR UPDATE
		`, productID).Scan(&productName, &quantity, &price)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: product %s", repositories.ErrNotFound, productID.String())
			}
			return nil, fmt.Errorf("%w: read stock: %v", ErrTransactionFailed, err)
		}

		if requested > quantity {
			return nil, fmt.Errorf("%w: product %s has %d on hand, %d requested", ErrInsufficientStock, productID.String(), quantity, requested)
		}

		totalPrice := round2(price * float64(requested))

		_, err = tx.Exec(ctx, `
			INSERT INTO transactions (id, user_id, product_id, product_name, transaction_date, quantity, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, uuid.New(), userID, productID, productName, soldAt, requested, price, totalPrice)
		if err != nil {
			return nil, fmt.Errorf("%w: append ledger: %v", ErrTransactionFailed, err)
		}

		// Guarded decrement. The row is already locked, so zero rows
		// affected means the invariant was about to break; abort.
		tag, err := tx.Exec(ctx, `
			UPDATE inventory
			SET quantity = quantity - $1, updated_at = NOW()
			WHERE id = $2 AND quantity >= $1
		`, requested, productID)
		if err != nil {
			return nil, fmt.Errorf("%w: decrement stock: %v", ErrTransactionFailed, err)
		}
		if tag.RowsAffected() == 0 {
			return nil, fmt.Errorf("%w: product %s", ErrInsufficientStock, productID.String())
		}

		receipt.Lines = append(receipt.Lines, models.ReceiptLine{
			ProductID:   productID,
			ProductName: productName,
			Quantity:    requested,
			UnitPrice:   price,
			TotalPrice:  totalPrice,
		})
		receipt.TotalPrice = round2(receipt.TotalPrice + totalPrice)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", ErrTransactionFailed, err)
	}

	for _, productID := range productIDs {
		if cacheErr := s.cacheService.DeleteItem(ctx, productID); cacheErr != nil {
			log.Printf("Failed to invalidate cache for inventory item %s: %v", productID.String(), cacheErr)
		}
	}

	return receipt, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
