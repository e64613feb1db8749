package db

import (
	"inventory_system/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// Models lists every table owned by the service, in creation order
var Models = []any{&domain.User{}, &domain.Kategori{}, &domain.Barang{}, &domain.DetailBarang{}}

// Migrate performs automatic migration for the database schema.
// Relations between barang, kategori and detail_barang are plain columns, so no foreign keys are created.
func Migrate(db *gorm.DB) error {
	// AutoMigrate creates tables, columns and the unique indexes that guard against duplicates
	if err := db.AutoMigrate(Models...); err != nil {
		return err
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
