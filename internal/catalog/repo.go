package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pharmaflow/pharmaflow-backend/pkg/db/models"
	"github.com/pharmaflow/pharmaflow-backend/pkg/pagination"
)

// Repository exposes medicine catalog persistence operations.
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

func (r *Repository) Create(ctx context.Context, medicine *models.Medicine) (*models.Medicine, error) {
	if err := r.db.WithContext(ctx).Create(medicine).Error; err != nil {
		return nil, err
	}
	return medicine, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Medicine, error) {
	var medicine models.Medicine
	if err := r.db.WithContext(ctx).First(&medicine, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &medicine, nil
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Medicine{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Search matches the query case-insensitively across name, salt name, brand
// and category, optionally scoped to one distributor. Results page forward
// on (created_at, id) so repeated polls return stable results.
func (r *Repository) Search(ctx context.Context, query string, distributorID *uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Medicine, error) {
	q := r.db.WithContext(ctx).Model(&models.Medicine{})
	if query != "" {
		pattern := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(salt_name) LIKE LOWER(?) OR LOWER(brand) LIKE LOWER(?) OR LOWER(category) LIKE LOWER(?)",
			pattern, pattern, pattern, pattern,
		)
	}
	if distributorID != nil {
		q = q.Where("distributor_id = ?", *distributorID)
	}
	if cursor != nil {
		q = q.Where(
			"created_at > ? OR (created_at = ? AND id > ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var medicines []models.Medicine
	if err := q.Order("created_at ASC, id ASC").Find(&medicines).Error; err != nil {
		return nil, err
	}
	return medicines, nil
}

// SearchBySalt matches salt_name only, for cross-brand substitute discovery.
func (r *Repository) SearchBySalt(ctx context.Context, salt string) ([]models.Medicine, error) {
	var medicines []models.Medicine
	err := r.db.WithContext(ctx).
		Where("LOWER(salt_name) LIKE LOWER(?)", "%"+salt+"%").
		Order("created_at ASC").
		Find(&medicines).Error
	if err != nil {
		return nil, err
	}
	return medicines, nil
}
