package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pharmaflow/pharmaflow-backend/pkg/enums"
)

// User represents the canonical identity entity. Exactly one of the role
// foreign keys is set, matching the account's role.
type User struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email         string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash  string         `gorm:"column:password_hash;not null"`
	Name          string         `gorm:"column:name;not null"`
	Role          enums.UserRole `gorm:"column:role;type:text;not null"`
	PharmacyID    *uuid.UUID     `gorm:"column:pharmacy_id;type:uuid"`
	DistributorID *uuid.UUID     `gorm:"column:distributor_id;type:uuid"`
	AgentID       *uuid.UUID     `gorm:"column:agent_id;type:uuid"`
	LastLoginAt   *time.Time     `gorm:"column:last_login_at"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
