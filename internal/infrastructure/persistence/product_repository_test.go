package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/boutikla/backend/internal/domain/catalog"
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/boutikla/backend/internal/infrastructure/persistence/models"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.CategoryModel{}, &models.ProductModel{})
	require.NoError(t, err)

	return db
}

func newTestProduct(t *testing.T, name, barcode string, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "", barcode,
		decimal.NewFromFloat(9.99), decimal.NewFromFloat(6.50), stock)
	require.NoError(t, err)
	return p
}

func TestGormProductRepository_SaveAndFind(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	t.Run("saves and reloads a product", func(t *testing.T) {
		catID := uuid.New()
		p := newTestProduct(t, "Rice 25lb", "0001112223334", 40)
		p.AssignCategories([]uuid.UUID{catID})

		require.NoError(t, repo.Save(ctx, p))

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Rice 25lb", found.Name)
		assert.Equal(t, "0001112223334", found.Barcode)
		assert.Equal(t, 40, found.StockQuantity)
		assert.True(t, found.SalePrice.Equal(decimal.NewFromFloat(9.99)))
		require.Len(t, found.CategoryIDs, 1)
		assert.Equal(t, catID, found.CategoryIDs[0])
	})

	t.Run("finds by barcode", func(t *testing.T) {
		p := newTestProduct(t, "Cooking Oil 1L", "7771112223334", 12)
		require.NoError(t, repo.Save(ctx, p))

		found, err := repo.FindByBarcode(ctx, "7771112223334")
		require.NoError(t, err)
		assert.Equal(t, p.ID, found.ID)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("save persists a stock adjustment", func(t *testing.T) {
		p := newTestProduct(t, "Sugar 5lb", "", 10)
		require.NoError(t, repo.Save(ctx, p))

		require.NoError(t, p.DecreaseStock(4))
		require.NoError(t, repo.Save(ctx, p))

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 6, found.StockQuantity)
	})
}

func TestGormProductRepository_FindByIDs(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	a := newTestProduct(t, "Flour", "", 5)
	b := newTestProduct(t, "Beans", "", 8)
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))

	products, err := repo.FindByIDs(ctx, []uuid.UUID{a.ID, b.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	products, err = repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestGormProductRepository_Delete(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	p := newTestProduct(t, "Spaghetti", "", 3)
	require.NoError(t, repo.Save(ctx, p))

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err := repo.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, p.ID), shared.ErrNotFound)
}

func TestGormProductRepository_Pagination(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C", "D", "E"} {
		require.NoError(t, repo.Save(ctx, newTestProduct(t, name, "", 1)))
	}

	filter := shared.Filter{Page: 2, PageSize: 2, OrderBy: "name", OrderDir: "asc"}
	products, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "C", products[0].Name)
	assert.Equal(t, "D", products[1].Name)

	count, err := repo.Count(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}
