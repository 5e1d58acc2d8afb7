package models

import (
	"time"

	"github.com/google/uuid"
)

// Distributor owns a medicine catalog and fulfills pharmacy orders.
type Distributor struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AgencyName   string    `gorm:"column:agency_name;not null"`
	ContactEmail string    `gorm:"column:contact_email;not null"`
	ContactPhone string    `gorm:"column:contact_phone;not null"`
	Address      string    `gorm:"column:address;not null"`
	City         string    `gorm:"column:city;not null"`
	State        string    `gorm:"column:state;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
