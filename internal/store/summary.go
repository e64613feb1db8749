package store

import (
	"context" // Request scoped cancellation

	"inventory_system/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// SummaryRepository computes the dashboard counters
type SummaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository returns the dashboard store
func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// Summary counts every resource table in a single statement
func (r *SummaryRepository) Summary(ctx context.Context) (domain.Summary, error) {
	var s domain.Summary
	err := r.db.WithContext(ctx).Raw(
		"SELECT (SELECT COUNT(*) FROM kategori) AS kategori_count, " +
			"(SELECT COUNT(*) FROM barang) AS barang_count, " +
			"(SELECT COUNT(*) FROM detail_barang) AS detail_barang_count",
	).Scan(&s).Error
	return s, translateError(err)
}
