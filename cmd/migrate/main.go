package main

import (
	"log"

	"contract-qa-be/internal/config"
	"contract-qa-be/internal/model"
	"contract-qa-be/pkg/database"
)

func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// pgvector must exist before the embedding column can be created.
	if err := gormDB.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		log.Panicf("Failed to create vector extension: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.Document{},
		&model.DocumentChunk{},
	); err != nil {
		log.Panicf("Migration failed: %v", err)
	}

	log.Println("✅ Migration completed")
}
