package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pharmaflow/pharmaflow-backend/pkg/db/models"
	"github.com/pharmaflow/pharmaflow-backend/pkg/enums"
)

// Repository defines persistence operations for the order tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByPharmacy(ctx context.Context, pharmacyID uuid.UUID) ([]models.Order, error)
	ListByDistributor(ctx context.Context, distributorID uuid.UUID) ([]models.Order, error)
	ReplaceItems(ctx context.Context, orderID uuid.UUID, items []models.OrderItem) error
	UpdateOrder(ctx context.Context, orderID uuid.UUID, updates map[string]any) error
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error
	UpdateStatusVersioned(ctx context.Context, orderID uuid.UUID, fromVersion int, status enums.OrderStatus) (bool, error)
	DecrementStock(ctx context.Context, medicineID uuid.UUID, quantity int) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// PharmacyFinder resolves the pharmacy whose name is snapshotted onto orders.
type PharmacyFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Pharmacy, error)
}

// DistributorFinder confirms the target distributor exists before an order
// is accepted against it.
type DistributorFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Distributor, error)
}

// AssignmentChecker reports whether an agent monitors a given pharmacy.
type AssignmentChecker interface {
	IsAssigned(ctx context.Context, agentID, pharmacyID uuid.UUID) (bool, error)
}

// Service defines the order lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	Edit(ctx context.Context, input EditOrderInput) (*models.Order, error)
	Cancel(ctx context.Context, input CancelOrderInput) error
	AdvanceStatus(ctx context.Context, input AdvanceStatusInput) (*models.Order, error)
	List(ctx context.Context, actor Actor) ([]models.Order, error)
	Get(ctx context.Context, actor Actor, orderID uuid.UUID) (*models.Order, error)
}
