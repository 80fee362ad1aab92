package config

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "sitebid.com/sitebid/internal/models"
)

func NewDatabaseClient(dsn string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Job{},
		&model.ProgressUpdate{},
		&model.Notification{},
		&model.Project{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return db
}
