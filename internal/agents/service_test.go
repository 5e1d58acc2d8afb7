package agents

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pharmaflow/pharmaflow-backend/pkg/db/models"
	"github.com/pharmaflow/pharmaflow-backend/pkg/enums"
)

func setupAgentsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	for _, schema := range []string{
		`CREATE TABLE IF NOT EXISTS pharmacies (
  id TEXT PRIMARY KEY,
  store_name TEXT NOT NULL,
  owner_name TEXT NOT NULL DEFAULT '',
  contact_phone TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  city TEXT NOT NULL DEFAULT '',
  state TEXT NOT NULL DEFAULT '',
  license_number TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS agent_assignments (
  id TEXT PRIMARY KEY,
  agent_id TEXT NOT NULL,
  pharmacy_id TEXT NOT NULL,
  assigned_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  pharmacy_id TEXT NOT NULL,
  pharmacy_name TEXT NOT NULL DEFAULT '',
  distributor_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  special_instructions TEXT,
  total_amount NUMERIC NOT NULL DEFAULT 0,
  version INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
	} {
		require.NoError(t, db.Exec(schema).Error)
	}
	return db
}

type stubSaltSearcher struct {
	medicines []models.Medicine
	gotSalt   string
}

func (s *stubSaltSearcher) SearchBySalt(ctx context.Context, salt string) ([]models.Medicine, error) {
	s.gotSalt = salt
	return s.medicines, nil
}

func seedPharmacy(t *testing.T, db *gorm.DB, name string) *models.Pharmacy {
	t.Helper()
	pharmacy := &models.Pharmacy{ID: uuid.New(), StoreName: name, OwnerName: "Owner"}
	require.NoError(t, db.Create(pharmacy).Error)
	return pharmacy
}

func assign(t *testing.T, db *gorm.DB, agentID, pharmacyID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Create(&models.AgentAssignment{
		ID:         uuid.New(),
		AgentID:    agentID,
		PharmacyID: pharmacyID,
	}).Error)
}

func seedOrderAt(t *testing.T, db *gorm.DB, pharmacyID uuid.UUID, at time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.Order{
		ID:            uuid.New(),
		PharmacyID:    pharmacyID,
		DistributorID: uuid.New(),
		Status:        enums.OrderStatusPending,
		TotalAmount:   decimal.RequireFromString("10.00"),
		Version:       1,
		CreatedAt:     at,
	}).Error)
}

func TestIsAssigned(t *testing.T) {
	db := setupAgentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	agentID := uuid.New()
	pharmacy := seedPharmacy(t, db, "City Care Pharmacy")
	assign(t, db, agentID, pharmacy.ID)

	ok, err := repo.IsAssigned(ctx, agentID, pharmacy.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsAssigned(ctx, agentID, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSubstitutesDelegatesToCatalog(t *testing.T) {
	db := setupAgentsTestDB(t)
	searcher := &stubSaltSearcher{medicines: []models.Medicine{{Name: "Crocin Advance"}}}
	svc, err := NewService(NewRepository(db), searcher)
	require.NoError(t, err)

	got, err := svc.Substitutes(context.Background(), "Paracetamol")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Paracetamol", searcher.gotSalt)
}

func TestReportComputesActivityWindow(t *testing.T) {
	db := setupAgentsTestDB(t)
	svc, err := NewService(NewRepository(db), &stubSaltSearcher{})
	require.NoError(t, err)

	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	agentID := uuid.New()
	active := seedPharmacy(t, db, "Active Pharmacy")
	stale := seedPharmacy(t, db, "Stale Pharmacy")
	silent := seedPharmacy(t, db, "Silent Pharmacy")
	unassigned := seedPharmacy(t, db, "Unassigned Pharmacy")
	assign(t, db, agentID, active.ID)
	assign(t, db, agentID, stale.ID)
	assign(t, db, agentID, silent.ID)

	seedOrderAt(t, db, active.ID, now.Add(-2*24*time.Hour))
	seedOrderAt(t, db, active.ID, now.Add(-20*24*time.Hour))
	seedOrderAt(t, db, stale.ID, now.Add(-10*24*time.Hour))
	seedOrderAt(t, db, unassigned.ID, now.Add(-time.Hour))

	report, err := svc.Report(context.Background(), agentID)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Assigned)
	assert.Equal(t, 1, report.Active)
	assert.Equal(t, 2, report.Inactive)
	require.Len(t, report.Pharmacies, 3)

	byName := map[string]PharmacyActivity{}
	for _, entry := range report.Pharmacies {
		byName[entry.Pharmacy.StoreName] = entry
	}

	assert.True(t, byName["Active Pharmacy"].IsActive)
	assert.EqualValues(t, 2, byName["Active Pharmacy"].TotalOrders)
	assert.False(t, byName["Stale Pharmacy"].IsActive)
	assert.EqualValues(t, 1, byName["Stale Pharmacy"].TotalOrders)
	assert.False(t, byName["Silent Pharmacy"].IsActive)
	assert.Zero(t, byName["Silent Pharmacy"].TotalOrders)
	assert.Nil(t, byName["Silent Pharmacy"].LastOrderAt)
}

func TestReportRequiresAgent(t *testing.T) {
	db := setupAgentsTestDB(t)
	svc, err := NewService(NewRepository(db), &stubSaltSearcher{})
	require.NoError(t, err)

	_, err = svc.Report(context.Background(), uuid.Nil)
	require.Error(t, err)
}
