package main

import (
	"log"
	"os"

	"medtrack/internal/database"
	"medtrack/internal/handlers"
	"medtrack/internal/services"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := database.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	router := handlers.NewRouter()

	// Start the dose reminder worker
	services.NewReminderWorker().Start()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
