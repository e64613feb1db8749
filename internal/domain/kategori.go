package domain

// Kategori Model
type Kategori struct {
	ID   uint   `gorm:"primaryKey" json:"id"`                      // Primary key
	Nama string `gorm:"size:254;not null;uniqueIndex" json:"nama"` // Unique category name
}

// TableName returns the kategori table name
func (Kategori) TableName() string { return "kategori" }
