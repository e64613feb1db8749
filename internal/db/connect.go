package db

import (
	"time" // Time durations

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/logger"        // GORM logger interface
)

// Connect opens a MySQL connection through GORM with SQL logging routed to logrus
func Connect(dsn string, debug bool) (*gorm.DB, error) {
	level := logger.Warn // Only slow queries and errors by default
	if debug {
		level = logger.Info // Every statement in development
	}
	gormLogger := logger.New(logrus.StandardLogger(), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true, // Not found is a normal outcome for lookups
	})
	return gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:                                   gormLogger,
		TranslateError:                           true, // Surface duplicate keys as gorm.ErrDuplicatedKey
		DisableForeignKeyConstraintWhenMigrating: true,
	})
}
