package db

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	gormModels "junta-vecinos/backend/internal/models/gorm"
)

var PgDB *gorm.DB

func InitPostgresORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	PgDB = db
	log.Println("Connected to Postgres via GORM")
	return db, nil
}

// Migrate creates or updates the schema for every entity. The unique indexes
// declared on the models are the final guard behind the application-level
// uniqueness checks.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&gormModels.Member{},
		&gormModels.Assembly{},
		&gormModels.Minutes{},
		&gormModels.Report{},
	)
}
