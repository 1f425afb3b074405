package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jerseyforge/jerseyforge-backend/internal/users"
	"github.com/jerseyforge/jerseyforge-backend/pkg/config"
	"github.com/jerseyforge/jerseyforge-backend/pkg/db"
	"github.com/jerseyforge/jerseyforge-backend/pkg/db/models"
	pkgerrors "github.com/jerseyforge/jerseyforge-backend/pkg/errors"
	"github.com/jerseyforge/jerseyforge-backend/pkg/security"
)

// Service exposes admin management and dashboard operations.
type Service interface {
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	Promote(ctx context.Context, userID uuid.UUID) (*GrantDTO, error)
	Revoke(ctx context.Context, userID uuid.UUID) error
	Stats(ctx context.Context) (*StatsDTO, error)
	ListUsers(ctx context.Context) ([]users.UserDTO, error)
	GetUserByUsername(ctx context.Context, username string) (*users.UserDTO, error)
	CreateAdmin(ctx context.Context, requesterID uuid.UUID, dto CreateAdminDTO) (*users.UserDTO, *GrantDTO, error)
}

type adminRepository interface {
	FindActiveGrantByUser(ctx context.Context, userID uuid.UUID) (*models.AdminGrant, error)
	FindGrantByUser(ctx context.Context, userID uuid.UUID) (*models.AdminGrant, error)
	Promote(ctx context.Context, userID uuid.UUID) error
	Revoke(ctx context.Context, userID uuid.UUID) error
	CountActive(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*StatsDTO, error)
}

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type userCreator interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the admin service.
type ServiceParams struct {
	DB        txRunner
	AdminRepo adminRepository
	UserRepo  userRepository
	SetupCode string
	Password  config.PasswordConfig
}

type service struct {
	db        txRunner
	admins    adminRepository
	users     userRepository
	setupCode string
	password  config.PasswordConfig

	// rebind repositories onto a transaction; overridable in tests
	adminRepoTx func(tx *gorm.DB) adminRepository
	userRepoTx  func(tx *gorm.DB) userCreator
}

// NewService builds an admin service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if params.AdminRepo == nil {
		return nil, fmt.Errorf("admin repository is required")
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.SetupCode == "" {
		return nil, fmt.Errorf("admin setup code is required")
	}
	return &service{
		db:        params.DB,
		admins:    params.AdminRepo,
		users:     params.UserRepo,
		setupCode: params.SetupCode,
		password:  params.Password,
		adminRepoTx: func(tx *gorm.DB) adminRepository {
			return NewRepository(tx)
		},
		userRepoTx: func(tx *gorm.DB) userCreator {
			return users.NewRepository(tx)
		},
	}, nil
}

// IsAdmin reports whether the user currently holds an active grant.
func (s *service) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, nil
	}
	_, err := s.admins.FindActiveGrantByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load admin grant")
	}
	return true, nil
}

// Promote grants admin privilege to an existing user. Promoting an existing
// admin, or re-promoting a revoked one, converges on a single active grant.
func (s *service) Promote(ctx context.Context, userID uuid.UUID) (*GrantDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	err := db.WithRetry(ctx, func(ctx context.Context) error {
		return s.admins.Promote(ctx, userID)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "promote user")
	}

	grant, err := s.admins.FindGrantByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload admin grant")
	}
	return grantFromModel(grant), nil
}

// Revoke deactivates the user's grant. Revoking a non-admin succeeds.
func (s *service) Revoke(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := s.admins.Revoke(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke admin grant")
	}
	return nil
}

// Stats returns the dashboard summary.
func (s *service) Stats(ctx context.Context) (*StatsDTO, error) {
	var stats *StatsDTO
	err := db.WithRetry(ctx, func(ctx context.Context) error {
		var statsErr error
		stats, statsErr = s.admins.Stats(ctx)
		return statsErr
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stats")
	}
	return stats, nil
}

// ListUsers returns every registered user, newest first.
func (s *service) ListUsers(ctx context.Context) ([]users.UserDTO, error) {
	list, err := s.users.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	dtos := make([]users.UserDTO, 0, len(list))
	for i := range list {
		dtos = append(dtos, *users.FromModel(&list[i]))
	}
	return dtos, nil
}

// GetUserByUsername looks up a single account for the dashboard.
func (s *service) GetUserByUsername(ctx context.Context, username string) (*users.UserDTO, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return users.FromModel(user), nil
}

// CreateAdmin provisions a new account that is an admin from its first
// moment. The setup code is always required. When active grants exist the
// requester must hold one; when none exist the requester check is waived so
// the first admin can be bootstrapped. User creation and promotion commit
// atomically, so no plain account survives a failed promotion.
func (s *service) CreateAdmin(ctx context.Context, requesterID uuid.UUID, dto CreateAdminDTO) (*users.UserDTO, *GrantDTO, error) {
	if subtle.ConstantTimeCompare([]byte(dto.SetupCode), []byte(s.setupCode)) != 1 {
		return nil, nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid setup code")
	}

	email := strings.ToLower(strings.TrimSpace(dto.Email))
	if email == "" {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if dto.Password == "" {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}

	hash, err := security.HashPassword(dto.Password, s.password)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *models.User
	var grant *models.AdminGrant
	txErr := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		adminRepo := s.adminRepoTx(tx)
		userRepo := s.userRepoTx(tx)

		active, err := adminRepo.CountActive(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count admin grants")
		}
		if active > 0 {
			if requesterID == uuid.Nil {
				return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
			}
			if _, err := adminRepo.FindActiveGrantByUser(ctx, requesterID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeForbidden, "admin privilege required")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load requester grant")
			}
		}

		created, err = userRepo.Create(ctx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: hash,
			FirstName:    dto.FirstName,
			LastName:     dto.LastName,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "users_email_key") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
		}

		if err := adminRepo.Promote(ctx, created.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "promote user")
		}
		grant, err = adminRepo.FindGrantByUser(ctx, created.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload admin grant")
		}
		return nil
	})
	if txErr != nil {
		if typed := pkgerrors.As(txErr); typed != nil {
			return nil, nil, typed
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, txErr, "create admin")
	}

	return users.FromModel(created), grantFromModel(grant), nil
}
