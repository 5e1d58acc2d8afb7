package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Medicine is a catalog listing owned by one distributor. Stock is a
// non-negative count; MRP is the unit sale price.
type Medicine struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DistributorID uuid.UUID       `gorm:"column:distributor_id;type:uuid;not null;index"`
	Name          string          `gorm:"column:name;not null"`
	SaltName      string          `gorm:"column:salt_name;not null;index"`
	Brand         string          `gorm:"column:brand;not null"`
	MRP           decimal.Decimal `gorm:"column:mrp;type:numeric(12,2);not null"`
	Stock         int             `gorm:"column:stock;not null;default:0"`
	Category      string          `gorm:"column:category;not null"`
	Description   *string         `gorm:"column:description"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
