package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmaflow/pharmaflow-backend/pkg/enums"
)

// Order is a pharmacy's purchase request against one distributor.
// TotalAmount always equals the sum of quantity x unit price across items.
// Version guards status writes against concurrent conflicting updates.
type Order struct {
	ID                  uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PharmacyID          uuid.UUID         `gorm:"column:pharmacy_id;type:uuid;not null;index"`
	PharmacyName        string            `gorm:"column:pharmacy_name;not null"`
	DistributorID       uuid.UUID         `gorm:"column:distributor_id;type:uuid;not null;index"`
	Status              enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	SpecialInstructions *string           `gorm:"column:special_instructions"`
	TotalAmount         decimal.Decimal   `gorm:"column:total_amount;type:numeric(12,2);not null"`
	Version             int               `gorm:"column:version;not null;default:1"`
	Items               []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem snapshots one catalog line at order time. MedicineName and
// UnitPrice are captured copies, not live joins, so later catalog edits do
// not change historical totals.
type OrderItem struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID      uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	MedicineID   uuid.UUID       `gorm:"column:medicine_id;type:uuid;not null"`
	MedicineName string          `gorm:"column:medicine_name;not null"`
	Quantity     int             `gorm:"column:quantity;not null"`
	UnitPrice    decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}
