package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/pharmaflow/pharmaflow-backend/pkg/db/models"
	"github.com/pharmaflow/pharmaflow-backend/pkg/enums"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PharmacyDetails carries the store fields for pharmacy_owner registration.
type PharmacyDetails struct {
	StoreName     string `json:"storeName" validate:"required,max=256"`
	ContactPhone  string `json:"contactPhone" validate:"max=32"`
	Address       string `json:"address" validate:"max=512"`
	City          string `json:"city" validate:"max=128"`
	State         string `json:"state" validate:"max=128"`
	LicenseNumber string `json:"licenseNumber" validate:"max=64"`
}

// DistributorDetails carries the agency fields for distributor registration.
type DistributorDetails struct {
	AgencyName   string `json:"agencyName" validate:"required,max=256"`
	ContactPhone string `json:"contactPhone" validate:"max=32"`
	Address      string `json:"address" validate:"max=512"`
	City         string `json:"city" validate:"max=128"`
	State        string `json:"state" validate:"max=128"`
}

// AgentDetails carries the fields for agent registration.
type AgentDetails struct {
	ContactPhone  string    `json:"contactPhone" validate:"max=32"`
	DistributorID uuid.UUID `json:"distributorId" validate:"required"`
}

// RegisterRequest creates an account plus its role entity in one call.
// Exactly the details block matching the role must be present.
type RegisterRequest struct {
	Email       string              `json:"email" validate:"required,email"`
	Password    string              `json:"password" validate:"required,min=8,max=128"`
	Name        string              `json:"name" validate:"required,max=256"`
	Role        string              `json:"role" validate:"required,oneof=pharmacy_owner distributor agent"`
	Pharmacy    *PharmacyDetails    `json:"pharmacy,omitempty"`
	Distributor *DistributorDetails `json:"distributor,omitempty"`
	Agent       *AgentDetails       `json:"agent,omitempty"`
}

// UserDTO is the public user shape returned by auth endpoints.
type UserDTO struct {
	ID            uuid.UUID      `json:"id"`
	Email         string         `json:"email"`
	Name          string         `json:"name"`
	Role          enums.UserRole `json:"role"`
	PharmacyID    *uuid.UUID     `json:"pharmacyId,omitempty"`
	DistributorID *uuid.UUID     `json:"distributorId,omitempty"`
	AgentID       *uuid.UUID     `json:"agentId,omitempty"`
	LastLoginAt   *time.Time     `json:"lastLoginAt,omitempty"`
}

// FromModel maps the persistence model to the public shape. PasswordHash
// never leaves this package.
func FromModel(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Role:          user.Role,
		PharmacyID:    user.PharmacyID,
		DistributorID: user.DistributorID,
		AgentID:       user.AgentID,
		LastLoginAt:   user.LastLoginAt,
	}
}

// LoginResult carries the minted token alongside the public user.
type LoginResult struct {
	Token   string
	TokenID string
	User    *UserDTO
}
