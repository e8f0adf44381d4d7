package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/medtrack-dev/medtrack/db"
	"github.com/medtrack-dev/medtrack/internal/auth"
	"github.com/medtrack-dev/medtrack/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	database, err := db.Connect(dsn)

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ttl := 24 * time.Hour

	if hours := os.Getenv("TOKEN_TTL_HOURS"); hours != "" {
		parsed, err := strconv.Atoi(hours)

		if err != nil {
			log.Fatalf("Invalid TOKEN_TTL_HOURS: %v", err)
		}

		ttl = time.Duration(parsed) * time.Hour
	}

	tokens, err := auth.NewTokenManager(os.Getenv("JWT_SECRET"), ttl)

	if err != nil {
		log.Fatalf("Failed to initialize token manager: %v", err)
	}

	r := router.NewRouter(database, tokens)

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err = r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
