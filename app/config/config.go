package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB     *sql.DB
	System *SystemConfig
}

var AppConfig *Config

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the PostgreSQL connection pool. Connection settings come from
// the environment (a .env file is honored in development).
func InitDB() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var psqlInfo string
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		psqlInfo = dsn
	} else {
		psqlInfo = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			envOr("DB_HOST", "localhost"),
			envOr("DB_PORT", "5432"),
			envOr("DB_USER", "postgres"),
			envOr("DB_PASSWORD", ""),
			envOr("DB_NAME", "karate_attendance"),
			envOr("DB_SSLMODE", "disable"),
		)
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err = db.Ping(); err != nil {
		log.Fatal("Cannot establish database connection: ", err)
	}

	AppConfig = &Config{DB: db}
	log.Println("Database connected successfully")
}

// InitSystemConfig loads config/system.yaml (categories and belt levels) and
// stores it on AppConfig. Must run after InitDB.
func InitSystemConfig() {
	path := envOr("SYSTEM_CONFIG_PATH", "config/system.yaml")
	sys, err := LoadSystemConfig(path)
	if err != nil {
		log.Fatal("Failed to load system configuration: ", err)
	}
	AppConfig.System = sys
	log.Printf("Configuration loaded: %d categories, %d belt levels",
		len(sys.Categories), len(sys.BeltLevels))
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

func GetSystem() *SystemConfig {
	return AppConfig.System
}
