// models/user.go
package models

import "time"

// Role is the closed set of account roles. Authorization decisions switch on
// it exhaustively; there is no free-form role string anywhere in the system.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// User represents a platform account: an admin, a doctor or a patient.
type User struct {
	ID             string    `bson:"id" json:"id"`
	Email          string    `bson:"email" json:"email"`
	PasswordHash   string    `bson:"password_hash" json:"-"`
	Role           Role      `bson:"role" json:"role"`
	FullName       string    `bson:"full_name" json:"full_name"`
	Phone          string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Department     string    `bson:"department,omitempty" json:"department,omitempty"`           // doctors only
	MedicalHistory string    `bson:"medical_history,omitempty" json:"medical_history,omitempty"` // patients only
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// Identity is the resolved caller of an authenticated request.
type Identity struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}
