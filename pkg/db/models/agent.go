package models

import (
	"time"

	"github.com/google/uuid"
)

// Agent is a field representative monitoring a subset of pharmacies.
type Agent struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string    `gorm:"column:name;not null"`
	ContactPhone  string    `gorm:"column:contact_phone;not null"`
	Email         string    `gorm:"column:email;not null"`
	DistributorID uuid.UUID `gorm:"column:distributor_id;type:uuid;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// AgentAssignment links an agent to one pharmacy it monitors.
type AgentAssignment struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AgentID    uuid.UUID `gorm:"column:agent_id;type:uuid;not null;index"`
	PharmacyID uuid.UUID `gorm:"column:pharmacy_id;type:uuid;not null"`
	AssignedAt time.Time `gorm:"column:assigned_at;autoCreateTime"`
}
