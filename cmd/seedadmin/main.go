package main

import (
	"flag"
	"log"

	"karate-attendance/app/config"
	"karate-attendance/app/database"
	"karate-attendance/app/models"
	"karate-attendance/app/routes/auth"
)

// Creates the first admin account so the API can be logged into.
func main() {
	email := flag.String("email", "", "admin email address")
	name := flag.String("name", "Administrator", "admin display name")
	password := flag.String("password", "", "initial password (min 8 characters)")
	flag.Parse()

	if *email == "" || len(*password) < 8 {
		log.Fatal("Usage: seedadmin -email admin@example.com -password <min 8 chars> [-name Name]")
	}

	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	user := &models.User{
		Email:     *email,
		Password:  hashed,
		Name:      *name,
		Role:      models.RoleAdmin,
		Status:    models.UserActive,
		CreatedBy: "seedadmin",
	}
	if err := database.CreateUser(db, user); err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	log.Printf("Admin created: %s (%s)", user.Name, user.Email)
}
