package agents

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pharmaflow/pharmaflow-backend/pkg/db/models"
)

// Repository exposes agent assignment reads.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) Create(ctx context.Context, agent *models.Agent) (*models.Agent, error) {
	if err := r.db.WithContext(ctx).Create(agent).Error; err != nil {
		return nil, err
	}
	return agent, nil
}

// IsAssigned reports whether the agent monitors the given pharmacy.
func (r *Repository) IsAssigned(ctx context.Context, agentID, pharmacyID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AgentAssignment{}).
		Where("agent_id = ? AND pharmacy_id = ?", agentID, pharmacyID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListAssignedPharmacies returns the pharmacies the agent monitors, in
// assignment order.
func (r *Repository) ListAssignedPharmacies(ctx context.Context, agentID uuid.UUID) ([]models.Pharmacy, error) {
	var pharmacies []models.Pharmacy
	err := r.db.WithContext(ctx).
		Model(&models.Pharmacy{}).
		Joins("JOIN agent_assignments ON agent_assignments.pharmacy_id = pharmacies.id").
		Where("agent_assignments.agent_id = ?", agentID).
		Order("agent_assignments.assigned_at ASC").
		Find(&pharmacies).Error
	if err != nil {
		return nil, err
	}
	return pharmacies, nil
}

// OrderStats aggregates order count and most recent order time per pharmacy.
type OrderStats struct {
	PharmacyID  uuid.UUID
	TotalOrders int64
	LastOrderAt *time.Time
}

func (r *Repository) OrderStatsByPharmacy(ctx context.Context, pharmacyIDs []uuid.UUID) (map[uuid.UUID]OrderStats, error) {
	stats := map[uuid.UUID]OrderStats{}
	if len(pharmacyIDs) == 0 {
		return stats, nil
	}

	var rows []struct {
		PharmacyID  uuid.UUID
		TotalOrders int64
		LastOrderAt *time.Time
	}
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("pharmacy_id, COUNT(*) AS total_orders, MAX(created_at) AS last_order_at").
		Where("pharmacy_id IN ?", pharmacyIDs).
		Group("pharmacy_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		stats[row.PharmacyID] = OrderStats{
			PharmacyID:  row.PharmacyID,
			TotalOrders: row.TotalOrders,
			LastOrderAt: row.LastOrderAt,
		}
	}
	return stats, nil
}
