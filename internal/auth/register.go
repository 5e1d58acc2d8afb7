package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/pharmaflow/pharmaflow-backend/internal/agents"
	"github.com/pharmaflow/pharmaflow-backend/internal/distributors"
	"github.com/pharmaflow/pharmaflow-backend/internal/pharmacies"
	"github.com/pharmaflow/pharmaflow-backend/internal/users"
	"github.com/pharmaflow/pharmaflow-backend/pkg/db"
	"github.com/pharmaflow/pharmaflow-backend/pkg/db/models"
	"github.com/pharmaflow/pharmaflow-backend/pkg/enums"
	pkgerrors "github.com/pharmaflow/pharmaflow-backend/pkg/errors"
	"github.com/pharmaflow/pharmaflow-backend/pkg/security"
)

const usersEmailConstraint = "users_email_key"

func (s *service) Register(ctx context.Context, req RegisterRequest) (*UserDTO, error) {
	role, err := enums.ParseUserRole(req.Role)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown role")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
	}

	var created *models.User
	switch role {
	case enums.UserRolePharmacyOwner:
		if req.Pharmacy == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "pharmacy details are required")
		}
		pharmacy := &models.Pharmacy{
			StoreName:     strings.TrimSpace(req.Pharmacy.StoreName),
			OwnerName:     name,
			ContactPhone:  strings.TrimSpace(req.Pharmacy.ContactPhone),
			Email:         email,
			Address:       strings.TrimSpace(req.Pharmacy.Address),
			City:          strings.TrimSpace(req.Pharmacy.City),
			State:         strings.TrimSpace(req.Pharmacy.State),
			LicenseNumber: strings.TrimSpace(req.Pharmacy.LicenseNumber),
		}
		if pharmacy.StoreName == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name is required")
		}
		created, err = s.registrations.CreatePharmacyAccount(ctx, pharmacy, user)
	case enums.UserRoleDistributor:
		if req.Distributor == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "distributor details are required")
		}
		distributor := &models.Distributor{
			AgencyName:   strings.TrimSpace(req.Distributor.AgencyName),
			ContactEmail: email,
			ContactPhone: strings.TrimSpace(req.Distributor.ContactPhone),
			Address:      strings.TrimSpace(req.Distributor.Address),
			City:         strings.TrimSpace(req.Distributor.City),
			State:        strings.TrimSpace(req.Distributor.State),
		}
		if distributor.AgencyName == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "agency name is required")
		}
		created, err = s.registrations.CreateDistributorAccount(ctx, distributor, user)
	case enums.UserRoleAgent:
		if req.Agent == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "agent details are required")
		}
		agent := &models.Agent{
			Name:          name,
			ContactPhone:  strings.TrimSpace(req.Agent.ContactPhone),
			Email:         email,
			DistributorID: req.Agent.DistributorID,
		}
		created, err = s.registrations.CreateAgentAccount(ctx, agent, user)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown role")
	}
	if err != nil {
		return nil, err
	}
	return FromModel(created), nil
}

// RegistrationStoreParams bundles the repositories the store writes through.
type RegistrationStoreParams struct {
	Tx           txRunner
	Users        *users.Repository
	Pharmacies   *pharmacies.Repository
	Distributors *distributors.Repository
	Agents       *agents.Repository
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// RegistrationStore creates a role entity and its user row atomically, so a
// failed user insert never leaves an orphaned pharmacy or agency behind.
type RegistrationStore struct {
	tx           txRunner
	users        *users.Repository
	pharmacies   *pharmacies.Repository
	distributors *distributors.Repository
	agents       *agents.Repository
}

func NewRegistrationStore(params RegistrationStoreParams) (*RegistrationStore, error) {
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	if params.Pharmacies == nil {
		return nil, fmt.Errorf("pharmacies repository is required")
	}
	if params.Distributors == nil {
		return nil, fmt.Errorf("distributors repository is required")
	}
	if params.Agents == nil {
		return nil, fmt.Errorf("agents repository is required")
	}
	return &RegistrationStore{
		tx:           params.Tx,
		users:        params.Users,
		pharmacies:   params.Pharmacies,
		distributors: params.Distributors,
		agents:       params.Agents,
	}, nil
}

func (s *RegistrationStore) CreatePharmacyAccount(ctx context.Context, pharmacy *models.Pharmacy, user *models.User) (*models.User, error) {
	var created *models.User
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		savedPharmacy, err := s.pharmacies.WithTx(tx).Create(ctx, pharmacy)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create pharmacy")
		}
		user.PharmacyID = &savedPharmacy.ID
		created, err = s.createUser(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *RegistrationStore) CreateDistributorAccount(ctx context.Context, distributor *models.Distributor, user *models.User) (*models.User, error) {
	var created *models.User
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		savedDistributor, err := s.distributors.WithTx(tx).Create(ctx, distributor)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create distributor")
		}
		user.DistributorID = &savedDistributor.ID
		created, err = s.createUser(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *RegistrationStore) CreateAgentAccount(ctx context.Context, agent *models.Agent, user *models.User) (*models.User, error) {
	var created *models.User
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.distributors.WithTx(tx).FindByID(ctx, agent.DistributorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "unknown distributor")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup distributor")
		}
		savedAgent, err := s.agents.WithTx(tx).Create(ctx, agent)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create agent")
		}
		user.AgentID = &savedAgent.ID
		created, err = s.createUser(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *RegistrationStore) createUser(ctx context.Context, tx *gorm.DB, user *models.User) (*models.User, error) {
	created, err := s.users.WithTx(tx).Create(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err, usersEmailConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}
	return created, nil
}
