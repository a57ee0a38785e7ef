package user

import (
	"context"
	"errors"

	"clinicbook/models"
)

var (
	// ErrEmailTaken is returned by Register for an already-registered email.
	ErrEmailTaken = errors.New("this email is already registered")
	// ErrInvalidCredentials is returned by Authenticate for a bad email/password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthenticated is returned by ResolveIdentity for a missing or invalid token.
	ErrUnauthenticated = errors.New("invalid or expired token")
)

// AuthResponse carries the issued token alongside the account it belongs to.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// ProfileUpdate carries the fields a caller may change on their own account.
// Nil fields are left untouched.
type ProfileUpdate struct {
	FullName       *string `json:"full_name"`
	Phone          *string `json:"phone"`
	MedicalHistory *string `json:"medical_history"`
}

// UserService is the identity/auth collaborator: registration, credential
// validation, token issuance and token resolution.
type UserService interface {
	// Register creates a patient account. Fails with ErrEmailTaken or a
	// password-policy validation error.
	Register(ctx context.Context, email, password, fullName string) (*models.User, error)
	// Authenticate validates credentials and issues a signed token.
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	// ResolveIdentity maps a bearer token to the caller's identity. The role
	// comes from the stored account, not from the token payload.
	ResolveIdentity(ctx context.Context, token string) (*models.Identity, error)
	// GetByID fetches a user record.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// UpdateProfile applies the non-nil fields of updates to the account and
	// returns the updated record.
	UpdateProfile(ctx context.Context, id string, updates ProfileUpdate) (*models.User, error)
	// ListByRole lists accounts carrying the given role.
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
}
