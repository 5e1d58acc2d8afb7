package distributors

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pharmaflow/pharmaflow-backend/pkg/db/models"
)

// Repository exposes distributor persistence operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

func (r *Repository) Create(ctx context.Context, distributor *models.Distributor) (*models.Distributor, error) {
	if err := r.db.WithContext(ctx).Create(distributor).Error; err != nil {
		return nil, err
	}
	return distributor, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Distributor, error) {
	var distributor models.Distributor
	if err := r.db.WithContext(ctx).First(&distributor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &distributor, nil
}

// List returns all distributors ordered by agency name, used to populate the
// ordering UI's distributor picker.
func (r *Repository) List(ctx context.Context) ([]models.Distributor, error) {
	var result []models.Distributor
	if err := r.db.WithContext(ctx).Order("agency_name ASC").Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}
