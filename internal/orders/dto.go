package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmaflow/pharmaflow-backend/pkg/enums"
)

// Actor identifies the authenticated principal driving an order operation.
// The org bindings mirror the user row: at most one of PharmacyID,
// DistributorID, AgentID is set.
type Actor struct {
	UserID        uuid.UUID
	Role          enums.UserRole
	PharmacyID    *uuid.UUID
	DistributorID *uuid.UUID
	AgentID       *uuid.UUID
}

// ItemInput is one requested order line. Name and price are snapshotted as
// given; they are not re-joined against the catalog on later reads.
type ItemInput struct {
	MedicineID   uuid.UUID
	MedicineName string
	Quantity     int
	UnitPrice    decimal.Decimal
}

// CreateOrderInput carries everything needed to place an order.
type CreateOrderInput struct {
	Actor               Actor
	DistributorID       uuid.UUID
	Items               []ItemInput
	SpecialInstructions *string
}

// EditOrderInput mutates a pending order. A nil Items leaves the item list
// untouched; a nil SpecialInstructions leaves instructions untouched.
type EditOrderInput struct {
	Actor               Actor
	OrderID             uuid.UUID
	Items               []ItemInput
	SpecialInstructions *string
}

// CancelOrderInput identifies the pending order to hard-delete.
type CancelOrderInput struct {
	Actor   Actor
	OrderID uuid.UUID
}

// AdvanceStatusInput moves an order along the fulfillment lifecycle.
type AdvanceStatusInput struct {
	Actor   Actor
	OrderID uuid.UUID
	Status  enums.OrderStatus
}
