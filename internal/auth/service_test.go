package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jerseyforge/jerseyforge-backend/internal/users"
	pkgAuth "github.com/jerseyforge/jerseyforge-backend/pkg/auth"
	"github.com/jerseyforge/jerseyforge-backend/pkg/config"
	"github.com/jerseyforge/jerseyforge-backend/pkg/db/models"
	pkgerrors "github.com/jerseyforge/jerseyforge-backend/pkg/errors"
	"github.com/jerseyforge/jerseyforge-backend/pkg/security"
)

type stubUserRepo struct {
	user      *models.User
	createErr error
	lastLogin *time.Time
}

func (s *stubUserRepo) Create(_ context.Context, dto users.CreateUserDTO) (*models.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	created := &models.User{
		ID:           uuid.New(),
		Email:        dto.Email,
		PasswordHash: dto.PasswordHash,
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		MobileNumber: dto.MobileNumber,
		Username:     dto.Username,
		IsActive:     true,
	}
	s.user = created
	return created, nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) UpdateLastLogin(_ context.Context, _ uuid.UUID, at time.Time) error {
	s.lastLogin = &at
	return nil
}

type stubAdminChecker struct {
	admin bool
	err   error
}

func (s stubAdminChecker) IsAdmin(context.Context, uuid.UUID) (bool, error) {
	return s.admin, s.err
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "jerseyforge", ExpirationHours: 168}
}

func buildTestService(t *testing.T, repo *stubUserRepo, admins stubAdminChecker) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo: repo,
		Admins:   admins,
		JWT:      testJWTConfig(),
		Password: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func TestRegisterIssuesToken(t *testing.T) {
	repo := &stubUserRepo{}
	svc := buildTestService(t, repo, stubAdminChecker{})

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "  New@Example.COM ",
		Password:  "super-secret",
		FirstName: "New",
		LastName:  "User",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.User.Email != "new@example.com" {
		t.Fatalf("expected normalized email, got %q", resp.User.Email)
	}
	if resp.User.IsActive != true {
		t.Fatalf("expected active account")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Fatalf("token user mismatch: %s vs %s", claims.UserID, resp.User.ID)
	}
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	repo := &stubUserRepo{createErr: errors.New(`duplicate key value violates unique constraint "users_email_key"`)}
	svc := buildTestService(t, repo, stubAdminChecker{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "dupe@example.com",
		Password:  "super-secret",
		FirstName: "Dupe",
		LastName:  "User",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLoginSuccessRecordsLastLogin(t *testing.T) {
	password := "correct horse"
	repo := &stubUserRepo{user: &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: mustHashPassword(t, password),
		IsActive:     true,
	}}
	svc := buildTestService(t, repo, stubAdminChecker{})

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "User@Example.com", Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("expected token")
	}
	if repo.lastLogin == nil {
		t.Fatalf("expected last login to be recorded")
	}
	if resp.User.LastLoginAt == nil {
		t.Fatalf("expected last login on response")
	}
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	repo := &stubUserRepo{user: &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: mustHashPassword(t, "right"),
		IsActive:     true,
	}}
	svc := buildTestService(t, repo, stubAdminChecker{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "user@example.com", Password: "wrong"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if typed.Message() != invalidCredentialsMessage {
		t.Fatalf("expected uniform failure message, got %q", typed.Message())
	}
}

func TestLoginUnknownEmailMatchesWrongPasswordShape(t *testing.T) {
	repo := &stubUserRepo{}
	svc := buildTestService(t, repo, stubAdminChecker{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "any"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized || typed.Message() != invalidCredentialsMessage {
		t.Fatalf("expected uniform unauthorized, got %v", err)
	}
}

func TestLoginDeactivatedAccountUnauthorized(t *testing.T) {
	password := "secret-pass"
	repo := &stubUserRepo{user: &models.User{
		ID:           uuid.New(),
		Email:        "gone@example.com",
		PasswordHash: mustHashPassword(t, password),
		IsActive:     false,
	}}
	svc := buildTestService(t, repo, stubAdminChecker{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "gone@example.com", Password: password})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestAdminLoginRequiresGrant(t *testing.T) {
	password := "admin-pass"
	repo := &stubUserRepo{user: &models.User{
		ID:           uuid.New(),
		Email:        "admin@example.com",
		PasswordHash: mustHashPassword(t, password),
		IsActive:     true,
	}}

	svc := buildTestService(t, repo, stubAdminChecker{admin: false})
	_, err := svc.AdminLogin(context.Background(), LoginRequest{Email: "admin@example.com", Password: password})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized || typed.Message() != invalidCredentialsMessage {
		t.Fatalf("expected uniform unauthorized for non-admin, got %v", err)
	}

	svc = buildTestService(t, repo, stubAdminChecker{admin: true})
	resp, err := svc.AdminLogin(context.Background(), LoginRequest{Email: "admin@example.com", Password: password})
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("expected token")
	}
}
