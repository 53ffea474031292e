package main

import (
	"log"

	"github.com/landrun/territory-backend-go/internal/api"
	"github.com/landrun/territory-backend-go/internal/config"
	"github.com/landrun/territory-backend-go/internal/database"
)

func main() {
	cfg := config.Load()

	dbConfig := database.Config{
		Path: cfg.DBPath,
	}
	if err := database.Init(dbConfig); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	router := api.SetupRouter(cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
