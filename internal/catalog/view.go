package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmaflow/pharmaflow-backend/pkg/db/models"
)

// MedicineView is the public shape of a catalog listing.
type MedicineView struct {
	ID            uuid.UUID       `json:"id"`
	DistributorID uuid.UUID       `json:"distributorId"`
	Name          string          `json:"name"`
	SaltName      string          `json:"saltName"`
	Brand         string          `json:"brand"`
	MRP           decimal.Decimal `json:"mrp"`
	Stock         int             `json:"stock"`
	Category      string          `json:"category"`
	Description   *string         `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// FromModel maps a persisted medicine to its public shape.
func FromModel(medicine *models.Medicine) *MedicineView {
	if medicine == nil {
		return nil
	}
	return &MedicineView{
		ID:            medicine.ID,
		DistributorID: medicine.DistributorID,
		Name:          medicine.Name,
		SaltName:      medicine.SaltName,
		Brand:         medicine.Brand,
		MRP:           medicine.MRP,
		Stock:         medicine.Stock,
		Category:      medicine.Category,
		Description:   medicine.Description,
		CreatedAt:     medicine.CreatedAt,
		UpdatedAt:     medicine.UpdatedAt,
	}
}

// FromModels maps a result set, preserving order.
func FromModels(medicines []models.Medicine) []MedicineView {
	views := make([]MedicineView, 0, len(medicines))
	for i := range medicines {
		views = append(views, *FromModel(&medicines[i]))
	}
	return views
}
