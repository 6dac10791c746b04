package persistence

import (
	"context"
	"testing"

	"github.com/gestor/backend/internal/domain/partner"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSupplierTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&partner.Supplier{})
	require.NoError(t, err)

	return db
}

func TestGormSupplierRepository_SaveAndFind(t *testing.T) {
	db := setupSupplierTestDB(t)
	repo := NewGormSupplierRepository(db)
	ctx := context.Background()

	supplier, err := partner.NewSupplier("Agro Insumos Ltda", "AGR-01")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, supplier))

	found, err := repo.FindByID(ctx, supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, "Agro Insumos Ltda", found.Name)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormSupplierRepository_FindByIDs(t *testing.T) {
	db := setupSupplierTestDB(t)
	repo := NewGormSupplierRepository(db)
	ctx := context.Background()

	a, err := partner.NewSupplier("Fornecedor A", "FA")
	require.NoError(t, err)
	b, err := partner.NewSupplier("Fornecedor B", "FB")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))

	t.Run("returns only matching suppliers", func(t *testing.T) {
		found, err := repo.FindByIDs(ctx, []uuid.UUID{a.ID, uuid.New()})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, a.ID, found[0].ID)
	})

	t.Run("empty id list yields empty result", func(t *testing.T) {
		found, err := repo.FindByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestGormSupplierRepository_Delete(t *testing.T) {
	db := setupSupplierTestDB(t)
	repo := NewGormSupplierRepository(db)
	ctx := context.Background()

	supplier, err := partner.NewSupplier("Efêmero", "EF")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, supplier))

	require.NoError(t, repo.Delete(ctx, supplier.ID))
	assert.ErrorIs(t, repo.Delete(ctx, supplier.ID), shared.ErrNotFound)
}
