package domain

// Barang Model. IDKategori is a plain column, no foreign key constraint is created.
type Barang struct {
	ID         uint   `gorm:"primaryKey" json:"id"`                                                                           // Primary key
	IDKategori uint   `gorm:"column:id_kategori;not null;uniqueIndex:idx_barang_nama_kategori,priority:2" json:"id_kategori"` // Owning kategori
	Nama       string `gorm:"size:254;not null;uniqueIndex:idx_barang_nama_kategori,priority:1" json:"nama"`                  // Name, unique per kategori
}

// TableName returns the barang table name
func (Barang) TableName() string { return "barang" }

// BarangView is a barang row enriched with its kategori name and unit count
type BarangView struct {
	ID           uint    `gorm:"column:id" json:"id"`                       // Barang ID
	IDKategori   uint    `gorm:"column:id_kategori" json:"id_kategori"`     // Owning kategori
	NamaKategori *string `gorm:"column:nama_kategori" json:"nama_kategori"` // Kategori name, null when the kategori is gone
	Nama         string  `gorm:"column:nama" json:"nama"`                   // Barang name
	DetailCount  int64   `gorm:"column:detail_count" json:"detail_count"`   // Number of detail_barang rows
}
