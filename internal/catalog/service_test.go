package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pharmaflow/pharmaflow-backend/pkg/db/models"
	"github.com/pharmaflow/pharmaflow-backend/pkg/enums"
	pkgerrors "github.com/pharmaflow/pharmaflow-backend/pkg/errors"
	"github.com/pharmaflow/pharmaflow-backend/pkg/pagination"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS medicines (
  id TEXT PRIMARY KEY,
  distributor_id TEXT NOT NULL,
  name TEXT NOT NULL,
  salt_name TEXT NOT NULL DEFAULT '',
  brand TEXT NOT NULL DEFAULT '',
  mrp NUMERIC NOT NULL DEFAULT 0,
  stock INTEGER NOT NULL DEFAULT 0,
  category TEXT NOT NULL DEFAULT '',
  description TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedMedicine(t *testing.T, db *gorm.DB, distributorID uuid.UUID, name, salt, brand, category string) *models.Medicine {
	t.Helper()
	med := &models.Medicine{
		ID:            uuid.New(),
		DistributorID: distributorID,
		Name:          name,
		SaltName:      salt,
		Brand:         brand,
		MRP:           decimal.RequireFromString("10.00"),
		Stock:         100,
		Category:      category,
	}
	require.NoError(t, db.Create(med).Error)
	return med
}

func newCatalogService(t *testing.T, db *gorm.DB) *Service {
	t.Helper()
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func TestSearchMatchesAcrossFieldsCaseInsensitively(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)
	ctx := context.Background()
	dist := uuid.New()

	seedMedicine(t, db, dist, "Paracip 500", "Paracetamol", "Cipla", "Analgesic")
	seedMedicine(t, db, dist, "Crocin Advance", "Paracetamol", "GSK", "Analgesic")
	seedMedicine(t, db, dist, "Azithral 250", "Azithromycin", "Alembic", "Antibiotic")

	scope := SearchScope{Role: enums.UserRolePharmacyOwner}

	byName, err := svc.Search(ctx, scope, "paracip", pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, byName.Medicines, 1)

	bySalt, err := svc.Search(ctx, scope, "PARACETAMOL", pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, bySalt.Medicines, 2)

	byBrand, err := svc.Search(ctx, scope, "gsk", pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, byBrand.Medicines, 1)

	byCategory, err := svc.Search(ctx, scope, "antibiotic", pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, byCategory.Medicines, 1)

	none, err := svc.Search(ctx, scope, "ibuprofen", pagination.Params{})
	require.NoError(t, err)
	assert.Empty(t, none.Medicines)
}

func TestSearchUnqueriedScopesDistributorToOwnCatalog(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)
	ctx := context.Background()

	mine, others := uuid.New(), uuid.New()
	seedMedicine(t, db, mine, "Paracip 500", "Paracetamol", "Cipla", "Analgesic")
	seedMedicine(t, db, others, "Crocin Advance", "Paracetamol", "GSK", "Analgesic")

	own, err := svc.Search(ctx, SearchScope{Role: enums.UserRoleDistributor, DistributorID: &mine}, "", pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, own.Medicines, 1)

	all, err := svc.Search(ctx, SearchScope{Role: enums.UserRolePharmacyOwner}, "", pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, all.Medicines, 2)
}

func TestSearchBySaltOnlyMatchesSalt(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)
	ctx := context.Background()
	dist := uuid.New()

	seedMedicine(t, db, dist, "Paracip 500", "Paracetamol", "Cipla", "Analgesic")
	seedMedicine(t, db, dist, "Paracetamol Branding Trap", "Azithromycin", "Cipla", "Antibiotic")

	got, err := svc.SearchBySalt(ctx, "paracetamol")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Paracip 500", got[0].Name)

	_, err = svc.SearchBySalt(ctx, "")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestAddValidatesFields(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)
	ctx := context.Background()
	dist := uuid.New()

	created, err := svc.Add(ctx, AddMedicineInput{
		DistributorID: dist,
		Name:          "Paracip 500",
		SaltName:      "Paracetamol",
		Brand:         "Cipla",
		MRP:           decimal.RequireFromString("32.00"),
		Stock:         500,
		Category:      "Analgesic",
	})
	require.NoError(t, err)
	assert.Equal(t, dist, created.DistributorID)

	_, err = svc.Add(ctx, AddMedicineInput{DistributorID: dist, MRP: decimal.Zero})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Add(ctx, AddMedicineInput{
		DistributorID: dist,
		Name:          "Bad",
		MRP:           decimal.RequireFromString("-1"),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Add(ctx, AddMedicineInput{
		DistributorID: dist,
		Name:          "Bad",
		MRP:           decimal.Zero,
		Stock:         -5,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdatePatchesOwnedMedicine(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)
	ctx := context.Background()
	dist := uuid.New()
	med := seedMedicine(t, db, dist, "Paracip 500", "Paracetamol", "Cipla", "Analgesic")

	newStock := 42
	newMRP := decimal.RequireFromString("35.50")
	updated, err := svc.Update(ctx, UpdateMedicineInput{
		DistributorID: dist,
		MedicineID:    med.ID,
		Stock:         &newStock,
		MRP:           &newMRP,
	})
	require.NoError(t, err)
	assert.Equal(t, 42, updated.Stock)
	assert.True(t, updated.MRP.Equal(newMRP))
	assert.Equal(t, "Paracip 500", updated.Name)
}

func TestUpdateRejectsForeignMedicine(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)
	ctx := context.Background()
	med := seedMedicine(t, db, uuid.New(), "Paracip 500", "Paracetamol", "Cipla", "Analgesic")

	stock := 1
	_, err := svc.Update(ctx, UpdateMedicineInput{
		DistributorID: uuid.New(),
		MedicineID:    med.ID,
		Stock:         &stock,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())
}

func TestUpdateMissingMedicineIsNotFound(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)

	stock := 1
	_, err := svc.Update(context.Background(), UpdateMedicineInput{
		DistributorID: uuid.New(),
		MedicineID:    uuid.New(),
		Stock:         &stock,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestUpdateRejectsEmptyPatch(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)
	dist := uuid.New()
	med := seedMedicine(t, db, dist, "Paracip 500", "Paracetamol", "Cipla", "Analgesic")

	_, err := svc.Update(context.Background(), UpdateMedicineInput{
		DistributorID: dist,
		MedicineID:    med.ID,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestSearchPagesForwardWithCursor(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newCatalogService(t, db)
	ctx := context.Background()
	dist := uuid.New()

	seedMedicine(t, db, dist, "Paracip 500", "Paracetamol", "Cipla", "Analgesic")
	seedMedicine(t, db, dist, "Crocin Advance", "Paracetamol", "GSK", "Analgesic")
	seedMedicine(t, db, dist, "Dolo 650", "Paracetamol", "Micro Labs", "Analgesic")

	scope := SearchScope{Role: enums.UserRolePharmacyOwner}

	first, err := svc.Search(ctx, scope, "paracetamol", pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Medicines, 2)
	require.NotEmpty(t, first.NextCursor)

	second, err := svc.Search(ctx, scope, "paracetamol", pagination.Params{Limit: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Medicines, 1)
	assert.Empty(t, second.NextCursor)

	seen := map[uuid.UUID]bool{}
	for _, m := range append(first.Medicines, second.Medicines...) {
		assert.False(t, seen[m.ID], "medicine %s returned twice", m.ID)
		seen[m.ID] = true
	}

	_, err = svc.Search(ctx, scope, "paracetamol", pagination.Params{Cursor: "not-a-cursor"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
