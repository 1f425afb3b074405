package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jerseyforge/jerseyforge-backend/pkg/db/models"
	pkgerrors "github.com/jerseyforge/jerseyforge-backend/pkg/errors"
)

type stubProfileRepo struct {
	user *models.User
}

func (s *stubProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProfileRepo) UpdateProfile(_ context.Context, id uuid.UUID, dto UpdateProfileDTO) error {
	if s.user == nil || s.user.ID != id {
		return nil
	}
	if dto.FirstName != nil {
		s.user.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		s.user.LastName = *dto.LastName
	}
	if dto.MobileNumber != nil {
		s.user.MobileNumber = dto.MobileNumber
	}
	return nil
}

func buildProfileService(t *testing.T, repo *stubProfileRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{UserRepo: repo})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestGetProfileOmitsCredentials(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: "$2a$12$notarealhash",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		IsActive:     true,
	}
	svc := buildProfileService(t, &stubProfileRepo{user: user})

	profile, err := svc.GetProfile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.Email != user.Email || profile.FirstName != "Ada" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestGetProfileUnknownUserNotFound(t *testing.T) {
	svc := buildProfileService(t, &stubProfileRepo{})

	_, err := svc.GetProfile(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetProfileRejectsNilID(t *testing.T) {
	svc := buildProfileService(t, &stubProfileRepo{})

	_, err := svc.GetProfile(context.Background(), uuid.Nil)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateProfileAppliesPartialChanges(t *testing.T) {
	user := &models.User{
		ID:        uuid.New(),
		Email:     "user@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		IsActive:  true,
	}
	svc := buildProfileService(t, &stubProfileRepo{user: user})

	first := "Grace"
	mobile := "+15555550100"
	profile, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileDTO{
		FirstName:    &first,
		MobileNumber: &mobile,
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if profile.FirstName != "Grace" {
		t.Fatalf("expected updated first name, got %q", profile.FirstName)
	}
	if profile.LastName != "Lovelace" {
		t.Fatalf("unset fields must stay untouched, got %q", profile.LastName)
	}
	if profile.MobileNumber == nil || *profile.MobileNumber != mobile {
		t.Fatalf("expected mobile number applied")
	}
}
