package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"superinv/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type InventoryRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    InventoryRepository
	itemID  uuid.UUID
	context context.Context
}

func (suite *InventoryRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewInventoryRepo(mock)
	suite.itemID = uuid.New()
	suite.context = context.Background()
}

func (suite *InventoryRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestInventoryRepoTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryRepoTestSuite))
}

func inventoryRow(item *models.InventoryItem) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "product_name", "description", "quantity", "price", "category", "low_stock_threshold", "created_at", "updated_at"}).
		AddRow(item.ID, item.ProductName, item.Description, item.Quantity, item.Price, item.Category, item.LowStockThreshold, item.CreatedAt, item.UpdatedAt)
}

func (suite *InventoryRepoTestSuite) TestUpsert_NewRow() {
	item := &models.InventoryItem{
		ID:                suite.itemID,
		ProductName:       "Widget",
		Quantity:          5,
		Price:             2.00,
		Category:          "hardware",
		LowStockThreshold: 10,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	suite.mock.ExpectQuery(`INSERT INTO inventory`).
		WithArgs(item.ID, item.ProductName, item.Description, item.Quantity, item.Price, item.Category, item.LowStockThreshold).
		WillReturnRows(inventoryRow(item))

	err := suite.repo.Upsert(suite.context, item)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 5, item.Quantity)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *InventoryRepoTestSuite) TestUpsert_MergesQuantityOnConflict() {
	existingID := uuid.New()
	item := &models.InventoryItem{
		ID:                suite.itemID,
		ProductName:       "Widget",
		Quantity:          3,
		Price:             2.50,
		Category:          "hardware",
		LowStockThreshold: 10,
	}

	// The store resolves the conflict: existing id, summed quantity,
	// overwritten price. The written-back item must reflect that row.
	merged := &models.InventoryItem{
		ID:                existingID,
		ProductName:       "Widget",
		Quantity:          8,
		Price:             2.50,
		Category:          "hardware",
		LowStockThreshold: 10,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	suite.mock.ExpectQuery(`INSERT INTO inventory`).
		WithArgs(item.ID, item.ProductName, item.Description, item.Quantity, item.Price, item.Category, item.LowStockThreshold).
		WillReturnRows(inventoryRow(merged))

	err := suite.repo.Upsert(suite.context, item)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), existingID, item.ID)
	assert.Equal(suite.T(), 8, item.Quantity)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *InventoryRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`SELECT .+ FROM inventory WHERE id`).
		WithArgs(suite.itemID).
		WillReturnError(pgx.ErrNoRows)

	item, err := suite.repo.GetByID(suite.context, suite.itemID)
	assert.Nil(suite.T(), item)
	assert.True(suite.T(), errors.Is(err, ErrNotFound))
}

func (suite *InventoryRepoTestSuite) TestUpdate_NotFound() {
	item := &models.InventoryItem{
		ID:          suite.itemID,
		ProductName: "Widget",
		Quantity:    2,
		Price:       2.00,
		Category:    "hardware",
	}

	suite.mock.ExpectQuery(`UPDATE inventory`).
		WithArgs(item.ProductName, item.Description, item.Quantity, item.Price, item.Category, item.LowStockThreshold, item.ID).
		WillReturnError(pgx.ErrNoRows)

	err := suite.repo.Update(suite.context, item)
	assert.True(suite.T(), errors.Is(err, ErrNotFound))
}

func (suite *InventoryRepoTestSuite) TestDelete_NotFound() {
	suite.mock.ExpectExec(`DELETE FROM inventory`).
		WithArgs(suite.itemID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := suite.repo.Delete(suite.context, suite.itemID)
	assert.True(suite.T(), errors.Is(err, ErrNotFound))
}

func (suite *InventoryRepoTestSuite) TestDelete_Success() {
	suite.mock.ExpectExec(`DELETE FROM inventory`).
		WithArgs(suite.itemID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, suite.itemID)
	assert.NoError(suite.T(), err)
}

func (suite *InventoryRepoTestSuite) TestList() {
	first := &models.InventoryItem{ID: uuid.New(), ProductName: "Bolt", Quantity: 100, Price: 0.10, Category: "hardware", LowStockThreshold: 10, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	second := &models.InventoryItem{ID: uuid.New(), ProductName: "Widget", Quantity: 5, Price: 2.00, Category: "hardware", LowStockThreshold: 10, CreatedAt: time.Now(), UpdatedAt: time.Now()}

	rows := pgxmock.NewRows([]string{"id", "product_name", "description", "quantity", "price", "category", "low_stock_threshold", "created_at", "updated_at"}).
		AddRow(first.ID, first.ProductName, first.Description, first.Quantity, first.Price, first.Category, first.LowStockThreshold, first.CreatedAt, first.UpdatedAt).
		AddRow(second.ID, second.ProductName, second.Description, second.Quantity, second.Price, second.Category, second.LowStockThreshold, second.CreatedAt, second.UpdatedAt)

	suite.mock.ExpectQuery(`ORDER BY product_name ASC`).
		WithArgs(50, 0).
		WillReturnRows(rows)

	items, err := suite.repo.List(suite.context, 50, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), items, 2)
	assert.Equal(suite.T(), "Bolt", items[0].ProductName)
}

func (suite *InventoryRepoTestSuite) TestListBelowThreshold() {
	low := &models.InventoryItem{ID: uuid.New(), ProductName: "Widget", Quantity: 2, Price: 2.00, Category: "hardware", LowStockThreshold: 10, CreatedAt: time.Now(), UpdatedAt: time.Now()}

	suite.mock.ExpectQuery(`WHERE quantity <= low_stock_threshold`).
		WillReturnRows(inventoryRow(low))

	items, err := suite.repo.ListBelowThreshold(suite.context)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), items, 1)
	assert.True(suite.T(), items[0].LowStock())
}
