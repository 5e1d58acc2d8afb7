package catalog

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
	"github.com/pharmaflow/pharmaflow-backend/pkg/pagination"
)

// Catalog limits below are generous; they exist to keep junk rows out, not
// to encode business rules.
const maxTextLen = 256

// AddMedicineInput carries a new catalog listing.
type AddMedicineInput struct {
	DistributorID uuid.UUID
	Name          string
	SaltName      string
	Brand         string
	MRP           decimal.Decimal
	Stock         int
	Category      string
	Description   *string
}

// UpdateMedicineInput is a partial patch. Nil fields are left untouched.
type UpdateMedicineInput struct {
	DistributorID uuid.UUID
	MedicineID    uuid.UUID
	Name          *string
	SaltName      *string
	Brand         *string
	MRP           *decimal.Decimal
	Stock         *int
	Category      *string
	Description   *string
}

// SearchScope carries the caller identity bits that shape an unqueried list:
// distributors browse their own catalog, everyone else sees the full set.
type SearchScope struct {
	Role          enums.UserRole
	DistributorID *uuid.UUID
}

// Service wraps catalog reads and distributor-scoped writes.
type Service struct {
	repo *Repository
}

func NewService(repo *Repository) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &Service{repo: repo}, nil
}

// SearchPage is one page of catalog results. NextCursor is empty on the
// last page.
type SearchPage struct {
	Medicines  []models.Medicine
	NextCursor string
}

// Search lists medicines matching the free-text query, one cursor page at a
// time. With no query, a distributor gets their own catalog and other roles
// get everything.
func (s *Service) Search(ctx context.Context, scope SearchScope, query string, page pagination.Params) (*SearchPage, error) {
	var distributorID *uuid.UUID
	if query == "" && scope.Role == enums.UserRoleDistributor {
		distributorID = scope.DistributorID
	}

	cursor, err := pagination.ParseCursor(page.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(page.Limit)

	medicines, err := s.repo.Search(ctx, query, distributorID, pagination.LimitWithBuffer(page.Limit), cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search medicines")
	}

	result := &SearchPage{Medicines: medicines}
	if len(medicines) > limit {
		result.Medicines = medicines[:limit]
		last := result.Medicines[limit-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return result, nil
}

// SearchBySalt finds cross-brand substitutes sharing an active ingredient.
func (s *Service) SearchBySalt(ctx context.Context, salt string) ([]models.Medicine, error) {
	if salt == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "salt name required")
	}
	medicines, err := s.repo.SearchBySalt(ctx, salt)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search by salt")
	}
	return medicines, nil
}

func (s *Service) Add(ctx context.Context, input AddMedicineInput) (*models.Medicine, error) {
	if input.DistributorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "no distributor assigned")
	}
	if input.Name == "" || len(input.Name) > maxTextLen {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "medicine name required")
	}
	if input.MRP.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mrp cannot be negative")
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}

	medicine := &models.Medicine{
		DistributorID: input.DistributorID,
		Name:          input.Name,
		SaltName:      input.SaltName,
		Brand:         input.Brand,
		MRP:           input.MRP,
		Stock:         input.Stock,
		Category:      input.Category,
		Description:   input.Description,
	}
	if _, err := s.repo.Create(ctx, medicine); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create medicine")
	}
	return medicine, nil
}

// Update applies a partial field merge to a medicine the distributor owns.
// Unlike the permissive shallow merge this replaces, supplied fields are
// validated before the write.
func (s *Service) Update(ctx context.Context, input UpdateMedicineInput) (*models.Medicine, error) {
	if input.DistributorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "no distributor assigned")
	}
	if input.MedicineID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "medicine id required")
	}

	medicine, err := s.repo.FindByID(ctx, input.MedicineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "medicine not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load medicine")
	}
	if medicine.DistributorID != input.DistributorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "medicine does not belong to distributor")
	}

	updates := map[string]any{}
	if input.Name != nil {
		if *input.Name == "" || len(*input.Name) > maxTextLen {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "medicine name cannot be empty")
		}
		updates["name"] = *input.Name
	}
	if input.SaltName != nil {
		updates["salt_name"] = *input.SaltName
	}
	if input.Brand != nil {
		updates["brand"] = *input.Brand
	}
	if input.MRP != nil {
		if input.MRP.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "mrp cannot be negative")
		}
		updates["mrp"] = *input.MRP
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
		}
		updates["stock"] = *input.Stock
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}

	if err := s.repo.Update(ctx, medicine.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update medicine")
	}

	updated, err := s.repo.FindByID(ctx, medicine.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload medicine")
	}
	return updated, nil
}
