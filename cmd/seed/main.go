// Seeding tool: creates an admin account and a starter roster of doctors when
// the users collection does not already contain them. Idempotent by email.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"clinicbook/config"
	"clinicbook/database"
	"clinicbook/models"

	"go.mongodb.org/mongo-driver/bson"
)

type seedUser struct {
	Email      string
	Password   string
	FullName   string
	Role       models.Role
	Department string
}

var seedUsers = []seedUser{
	{Email: "admin@clinicbook.local", Password: "Admin1234", FullName: "System Admin", Role: models.RoleAdmin},
	{Email: "a.yilmaz@clinicbook.local", Password: "Doctor1234", FullName: "Dr. Ayşe Yılmaz", Role: models.RoleDoctor, Department: "Cardiology"},
	{Email: "m.demir@clinicbook.local", Password: "Doctor1234", FullName: "Dr. Mehmet Demir", Role: models.RoleDoctor, Department: "Neurology"},
	{Email: "e.kaya@clinicbook.local", Password: "Doctor1234", FullName: "Dr. Elif Kaya", Role: models.RoleDoctor, Department: "Dermatology"},
	{Email: "c.ozturk@clinicbook.local", Password: "Doctor1234", FullName: "Dr. Can Öztürk", Role: models.RoleDoctor, Department: "Orthopedics"},
}

func main() {
	config.LoadConfig()
	database.InitDB()

	coll := database.DB().Collection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created := 0
	for _, su := range seedUsers {
		count, err := coll.CountDocuments(ctx, bson.M{"email": su.Email})
		if err != nil {
			log.Fatalf("Failed to check for existing user %s: %v", su.Email, err)
		}
		if count > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", su.Email, err)
		}

		now := time.Now()
		usr := models.User{
			ID:           uuid.New().String(),
			Email:        su.Email,
			PasswordHash: string(hash),
			Role:         su.Role,
			FullName:     su.FullName,
			Department:   su.Department,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if _, err := coll.InsertOne(ctx, usr); err != nil {
			log.Fatalf("Failed to insert user %s: %v", su.Email, err)
		}
		created++
		log.Printf("Seeded %s (%s)", su.FullName, su.Role)
	}

	log.Printf("Seeding complete: %d users created", created)
}
