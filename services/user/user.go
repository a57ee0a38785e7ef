package user

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userRepo "clinicbook/database/repository/user"
	"clinicbook/models"
	"clinicbook/utils"
)

// TokenDuration is the lifetime of issued auth tokens.
const TokenDuration = 24 * time.Hour

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// validatePassword enforces the registration password policy.
func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		}
	}
	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return fmt.Errorf("password must contain at least one digit")
	}
	return nil
}

// Register creates a new patient account.
func (s *DefaultUserService) Register(ctx context.Context, email, password, fullName string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usr := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RolePatient,
		FullName:     fullName,
	}
	if err := s.Repo.Create(ctx, usr); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	utils.GetLogger().Info("user registered", zap.String("id", usr.ID), zap.String("email", usr.Email))
	return usr, nil
}

// Authenticate validates credentials and issues a JWT.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	usr, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if usr == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(usr.ID, string(usr.Role), TokenDuration)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to sign token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	return &AuthResponse{Token: token, User: *usr}, nil
}

// ResolveIdentity maps a bearer token to the caller's identity.
func (s *DefaultUserService) ResolveIdentity(ctx context.Context, token string) (*models.Identity, error) {
	subject, _, err := utils.ExtractClaims(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	usr, err := s.Repo.GetByID(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve identity: %w", err)
	}
	if usr == nil || !usr.Role.Valid() {
		return nil, ErrUnauthenticated
	}
	return &models.Identity{ID: usr.ID, Role: usr.Role}, nil
}

// GetByID fetches a user record.
func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	usr, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if usr == nil {
		return nil, fmt.Errorf("user with id %s not found", id)
	}
	return usr, nil
}

// UpdateProfile applies the non-nil fields of updates to the account and
// persists the result.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, id string, updates ProfileUpdate) (*models.User, error) {
	usr, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if usr == nil {
		return nil, fmt.Errorf("user with id %s not found", id)
	}

	if updates.FullName != nil {
		usr.FullName = strings.TrimSpace(*updates.FullName)
	}
	if updates.Phone != nil {
		usr.Phone = strings.TrimSpace(*updates.Phone)
	}
	if updates.MedicalHistory != nil {
		usr.MedicalHistory = *updates.MedicalHistory
	}
	usr.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, usr); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	utils.GetLogger().Info("profile updated", zap.String("id", usr.ID))
	return usr, nil
}

// ListByRole lists accounts carrying the given role.
func (s *DefaultUserService) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	return s.Repo.ListByRole(ctx, role)
}
