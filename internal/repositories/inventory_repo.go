package repositories

import (
	"context"

	"superinv/internal/models"

	"github.com/google/uuid"
)

type InventoryRepository interface {
	// Upsert merges on product_name, not the primary id: an existing row
	// gets its quantity incremented by the supplied quantity and every
	// other field overwritten; otherwise a new row is inserted. The saved
	// row is written back into item.
	Upsert(ctx context.Context, item *models.InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	Update(ctx context.Context, item *models.InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.InventoryItem, error)
	ListBelowThreshold(ctx context.Context) ([]*models.InventoryItem, error)
}

type inventoryRepo struct {
	db Database
}

func NewInventoryRepo(db Database) InventoryRepository {
	return &inventoryRepo{db: db}
}

const inventoryColumns = `id, product_name, description, quantity, price, category, low_stock_threshold, created_at, updated_at`

func scanInventoryItem(row interface{ Scan(dest ...any) error }, item *models.InventoryItem) error {
	return row.Scan(&item.ID, &item.ProductName, &item.Description, &item.Quantity, &item.Price, &item.Category, &item.LowStockThreshold, &item.CreatedAt, &item.UpdatedAt)
}

func (r *inventoryRepo) Upsert(ctx context.Context, item *models.InventoryItem) error {
	query := `
		INSERT INTO inventory (id, product_name, description, quantity, price, category, low_stock_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (product_name) DO UPDATE SET
			quantity = inventory.quantity + EXCLUDED.quantity,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			category = EXCLUDED.category,
			low_stock_threshold = EXCLUDED.low_stock_threshold,
			updated_at = NOW()
		RETURNING ` + inventoryColumns
	err := scanInventoryItem(r.db.QueryRow(ctx, query, item.ID, item.ProductName, item.Description, item.Quantity, item.Price, item.Category, item.LowStockThreshold), item)
	return translateError(err)
}

func (r *inventoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE id = $1`
	if err := scanInventoryItem(r.db.QueryRow(ctx, query, id), item); err != nil {
		return nil, translateError(err)
	}
	return item, nil
}

func (r *inventoryRepo) Update(ctx context.Context, item *models.InventoryItem) error {
	query := `
		UPDATE inventory
		SET product_name = $1, description = $2, quantity = $3, price = $4, category = $5, low_stock_threshold = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING ` + inventoryColumns
	err := scanInventoryItem(r.db.QueryRow(ctx, query, item.ProductName, item.Description, item.Quantity, item.Price, item.Category, item.LowStockThreshold, item.ID), item)
	return translateError(err)
}

func (r *inventoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM inventory WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *inventoryRepo) List(ctx context.Context, limit, offset int) ([]*models.InventoryItem, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory
		ORDER BY product_name ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var items []*models.InventoryItem
	for rows.Next() {
		item := &models.InventoryItem{}
		if err := scanInventoryItem(rows, item); err != nil {
			return nil, translateError(err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *inventoryRepo) ListBelowThreshold(ctx context.Context) ([]*models.InventoryItem, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory
		WHERE quantity <= low_stock_threshold
		ORDER BY quantity ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var items []*models.InventoryItem
	for rows.Next() {
		item := &models.InventoryItem{}
		if err := scanInventoryItem(rows, item); err != nil {
			return nil, translateError(err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
