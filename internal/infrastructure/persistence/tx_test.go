package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boutikla/backend/internal/domain/shared"
)

func TestTxManager_Do(t *testing.T) {
	t.Run("commits repository writes made with the unit context", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormProductRepository(db)
		manager := NewTxManager(&Database{DB: db})

		p := newTestProduct(t, "Rice 25lb", "", 10)
		err := manager.Do(context.Background(), func(ctx context.Context) error {
			return repo.Save(ctx, p)
		})
		require.NoError(t, err)

		found, err := repo.FindByID(context.Background(), p.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, found.StockQuantity)
	})

	t.Run("rolls back every write when the unit fails", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormProductRepository(db)
		manager := NewTxManager(&Database{DB: db})

		first := newTestProduct(t, "Rice 25lb", "", 10)
		second := newTestProduct(t, "Cooking Oil 1L", "", 5)

		failure := errors.New("handler failure")
		err := manager.Do(context.Background(), func(ctx context.Context) error {
			if err := repo.Save(ctx, first); err != nil {
				return err
			}
			if err := repo.Save(ctx, second); err != nil {
				return err
			}
			return failure
		})
		require.ErrorIs(t, err, failure)

		_, err = repo.FindByID(context.Background(), first.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		_, err = repo.FindByID(context.Background(), second.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("calls outside the unit keep using their own connection", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormProductRepository(db)

		p := newTestProduct(t, "Sugar 5lb", "", 3)
		require.NoError(t, repo.Save(context.Background(), p))

		found, err := repo.FindByID(context.Background(), p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, found.ID)
	})
}

func TestSaveVersioned(t *testing.T) {
	t.Run("bumps the version on every accepted save", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormProductRepository(db)
		ctx := context.Background()

		p := newTestProduct(t, "Rice 25lb", "", 10)
		require.NoError(t, repo.Save(ctx, p))
		assert.Equal(t, 1, p.Version)

		require.NoError(t, p.DecreaseStock(2))
		require.NoError(t, repo.Save(ctx, p))
		assert.Equal(t, 2, p.Version)

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, found.Version)
	})

	t.Run("rejects a save against a stale version", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormProductRepository(db)
		ctx := context.Background()

		p := newTestProduct(t, "Rice 25lb", "", 10)
		require.NoError(t, repo.Save(ctx, p))

		loadedA, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		loadedB, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)

		require.NoError(t, loadedA.DecreaseStock(4))
		require.NoError(t, repo.Save(ctx, loadedA))

		require.NoError(t, loadedB.DecreaseStock(1))
		err = repo.Save(ctx, loadedB)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 6, found.StockQuantity)
	})
}
