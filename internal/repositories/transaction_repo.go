package repositories

import (
	"context"

	"superinv/internal/models"

	"github.com/google/uuid"
)

// TransactionRepository reads the sale ledger. Ledger rows are written
// exclusively by the checkout transaction; there is deliberately no
// insert, update or delete here.
type TransactionRepository interface {
	List(ctx context.Context, limit, offset int) ([]*models.Transaction, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Transaction, error)
}

type transactionRepo struct {
	db Database
}

func NewTransactionRepo(db Database) TransactionRepository {
	return &transactionRepo{db: db}
}

const transactionColumns = `id, user_id, product_id, product_name, transaction_date, quantity, unit_price, total_price`

func (r *transactionRepo) List(ctx context.Context, limit, offset int) ([]*models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		ORDER BY transaction_date DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		tx := &models.Transaction{}
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.ProductID, &tx.ProductName, &tx.TransactionDate, &tx.Quantity, &tx.UnitPrice, &tx.TotalPrice); err != nil {
			return nil, translateError(err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

func (r *transactionRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY transaction_date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		tx := &models.Transaction{}
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.ProductID, &tx.ProductName, &tx.TransactionDate, &tx.Quantity, &tx.UnitPrice, &tx.TotalPrice); err != nil {
			return nil, translateError(err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}
