package models

import (
	"time"

	"github.com/google/uuid"
)

// Pharmacy is a retail store that places orders against distributors.
type Pharmacy struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreName     string    `gorm:"column:store_name;not null"`
	OwnerName     string    `gorm:"column:owner_name;not null"`
	ContactPhone  string    `gorm:"column:contact_phone;not null"`
	Email         string    `gorm:"column:email;not null"`
	Address       string    `gorm:"column:address;not null"`
	City          string    `gorm:"column:city;not null"`
	State         string    `gorm:"column:state;not null"`
	LicenseNumber string    `gorm:"column:license_number;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
