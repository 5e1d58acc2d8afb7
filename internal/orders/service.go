package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pharmaflow/pharmaflow-backend/pkg/db/models"
	"github.com/pharmaflow/pharmaflow-backend/pkg/enums"
	pkgerrors "github.com/pharmaflow/pharmaflow-backend/pkg/errors"
)

type service struct {
	repo         Repository
	tx           txRunner
	pharmacies   PharmacyFinder
	distributors DistributorFinder
	assignments  AssignmentChecker
}

// NewService builds the order lifecycle service with its dependencies.
func NewService(repo Repository, tx txRunner, pharmacies PharmacyFinder, distributors DistributorFinder, assignments AssignmentChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if pharmacies == nil {
		return nil, fmt.Errorf("pharmacy finder required")
	}
	if distributors == nil {
		return nil, fmt.Errorf("distributor finder required")
	}
	if assignments == nil {
		return nil, fmt.Errorf("assignment checker required")
	}
	return &service{
		repo:         repo,
		tx:           tx,
		pharmacies:   pharmacies,
		distributors: distributors,
		assignments:  assignments,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	pharmacyID, err := requirePharmacyActor(input.Actor)
	if err != nil {
		return nil, err
	}
	if input.DistributorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "distributor id required")
	}
	if err := validateItems(input.Items); err != nil {
		return nil, err
	}

	var created *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		pharmacy, err := s.pharmacies.FindByID(ctx, pharmacyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "pharmacy not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pharmacy")
		}

		if _, err := s.distributors.FindByID(ctx, input.DistributorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "distributor not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load distributor")
		}

		order := &models.Order{
			PharmacyID:          pharmacyID,
			PharmacyName:        pharmacy.StoreName,
			DistributorID:       input.DistributorID,
			Status:              enums.OrderStatusPending,
			SpecialInstructions: input.SpecialInstructions,
			TotalAmount:         itemsTotal(input.Items),
			Items:               buildItems(input.Items),
		}

		if _, err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		// Stock is drawn down at placement. Quantities above what is on
		// hand empty the shelf; the order itself still goes through.
		for _, item := range input.Items {
			if err := repo.DecrementStock(ctx, item.MedicineID, item.Quantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
			}
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) Edit(ctx context.Context, input EditOrderInput) (*models.Order, error) {
	pharmacyID, err := requirePharmacyActor(input.Actor)
	if err != nil {
		return nil, err
	}
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.Items == nil && input.SpecialInstructions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}
	if input.Items != nil {
		if err := validateItems(input.Items); err != nil {
			return nil, err
		}
	}

	var updated *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := s.loadOwnedPendingOrder(ctx, repo, input.OrderID, pharmacyID)
		if err != nil {
			return err
		}

		updates := map[string]any{}
		if input.SpecialInstructions != nil {
			updates["special_instructions"] = *input.SpecialInstructions
		}

		if input.Items != nil {
			items := buildItems(input.Items)
			for i := range items {
				items[i].OrderID = order.ID
			}
			if err := repo.ReplaceItems(ctx, order.ID, items); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace order items")
			}
			updates["total_amount"] = itemsTotal(input.Items)
		}

		if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
		}

		updated, err = repo.FindByID(ctx, order.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) Cancel(ctx context.Context, input CancelOrderInput) error {
	pharmacyID, err := requirePharmacyActor(input.Actor)
	if err != nil {
		return err
	}
	if input.OrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := s.loadOwnedPendingOrder(ctx, repo, input.OrderID, pharmacyID)
		if err != nil {
			return err
		}

		// Stock decremented at creation stays decremented. Cancellation is
		// treated as shrinkage, not a return to shelf.
		if err := repo.DeleteOrder(ctx, order.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
		}
		return nil
	})
}

func (s *service) AdvanceStatus(ctx context.Context, input AdvanceStatusInput) (*models.Order, error) {
	if input.Actor.Role != enums.UserRoleDistributor || input.Actor.DistributorID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "distributor role required")
	}
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByID(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.DistributorID != *input.Actor.DistributorID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to distributor")
		}
		if !order.Status.CanTransitionTo(input.Status) {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot move order from %s to %s", order.Status, input.Status))
		}

		ok, err := repo.UpdateStatusVersioned(ctx, order.ID, order.Version, input.Status)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order was modified concurrently")
		}

		updated, err = repo.FindByID(ctx, order.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) List(ctx context.Context, actor Actor) ([]models.Order, error) {
	switch actor.Role {
	case enums.UserRolePharmacyOwner:
		if actor.PharmacyID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "no pharmacy assigned")
		}
		list, err := s.repo.ListByPharmacy(ctx, *actor.PharmacyID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pharmacy orders")
		}
		return list, nil
	case enums.UserRoleDistributor:
		if actor.DistributorID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "no distributor assigned")
		}
		list, err := s.repo.ListByDistributor(ctx, *actor.DistributorID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list distributor orders")
		}
		return list, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role not permitted to list orders")
	}
}

func (s *service) Get(ctx context.Context, actor Actor, orderID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	switch actor.Role {
	case enums.UserRolePharmacyOwner:
		if actor.PharmacyID == nil || order.PharmacyID != *actor.PharmacyID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to pharmacy")
		}
	case enums.UserRoleDistributor:
		if actor.DistributorID == nil || order.DistributorID != *actor.DistributorID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to distributor")
		}
	case enums.UserRoleAgent:
		if actor.AgentID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "no agent assigned")
		}
		assigned, err := s.assignments.IsAssigned(ctx, *actor.AgentID, order.PharmacyID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check agent assignment")
		}
		if !assigned {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "pharmacy not assigned to agent")
		}
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role not permitted to read orders")
	}

	return order, nil
}

func (s *service) loadOwnedPendingOrder(ctx context.Context, repo Repository, orderID, pharmacyID uuid.UUID) (*models.Order, error) {
	order, err := repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.PharmacyID != pharmacyID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to pharmacy")
	}
	if order.Status != enums.OrderStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order is no longer pending")
	}
	return order, nil
}

func requirePharmacyActor(actor Actor) (uuid.UUID, error) {
	if actor.Role != enums.UserRolePharmacyOwner {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "pharmacy owner role required")
	}
	if actor.PharmacyID == nil || *actor.PharmacyID == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "no pharmacy assigned")
	}
	return *actor.PharmacyID, nil
}

func validateItems(items []ItemInput) error {
	if len(items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order requires at least one item")
	}
	for i, item := range items {
		if item.MedicineID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: medicine id required", i))
		}
		if item.MedicineName == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: medicine name required", i))
		}
		if item.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: quantity must be positive", i))
		}
		if item.UnitPrice.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: unit price cannot be negative", i))
		}
	}
	return nil
}

func itemsTotal(items []ItemInput) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func buildItems(items []ItemInput) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.OrderItem{
			MedicineID:   item.MedicineID,
			MedicineName: item.MedicineName,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
		})
	}
	return out
}
