package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmaflow/pharmaflow-backend/pkg/db/models"
	"github.com/pharmaflow/pharmaflow-backend/pkg/enums"
)

// OrderItemView is the public shape of one order line.
type OrderItemView struct {
	ID           uuid.UUID       `json:"id"`
	MedicineID   uuid.UUID       `json:"medicineId"`
	MedicineName string          `json:"medicineName"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
}

// OrderView is the public shape of an order, items included.
type OrderView struct {
	ID                  uuid.UUID         `json:"id"`
	PharmacyID          uuid.UUID         `json:"pharmacyId"`
	PharmacyName        string            `json:"pharmacyName"`
	DistributorID       uuid.UUID         `json:"distributorId"`
	Status              enums.OrderStatus `json:"status"`
	SpecialInstructions *string           `json:"specialInstructions,omitempty"`
	TotalAmount         decimal.Decimal   `json:"totalAmount"`
	Items               []OrderItemView   `json:"items"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

// FromModel maps a persisted order to its public shape.
func FromModel(order *models.Order) *OrderView {
	if order == nil {
		return nil
	}
	items := make([]OrderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemView{
			ID:           item.ID,
			MedicineID:   item.MedicineID,
			MedicineName: item.MedicineName,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
		})
	}
	return &OrderView{
		ID:                  order.ID,
		PharmacyID:          order.PharmacyID,
		PharmacyName:        order.PharmacyName,
		DistributorID:       order.DistributorID,
		Status:              order.Status,
		SpecialInstructions: order.SpecialInstructions,
		TotalAmount:         order.TotalAmount,
		Items:               items,
		CreatedAt:           order.CreatedAt,
		UpdatedAt:           order.UpdatedAt,
	}
}

// FromModels maps a result set, preserving order.
func FromModels(orders []models.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, *FromModel(&orders[i]))
	}
	return views
}
