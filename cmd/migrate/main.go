package main

import (
	"log"

	"karate-attendance/app/config"
	"karate-attendance/app/database"
)

// Applies the schema without starting the server. Useful for deploy hooks.
func main() {
	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed:", err)
	}
	log.Println("Migrations applied")
}
