package store

import (
	"inventory_system/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// NewKategoriRepository returns the kategori store
func NewKategoriRepository(db *gorm.DB) *GormRepository[domain.Kategori, domain.Kategori] {
	return NewGormRepository[domain.Kategori, domain.Kategori](db, Table[domain.Kategori]{
		SearchColumn: "nama",
		Columns:      []string{"nama"},
		UniqueKey: func(k *domain.Kategori) map[string]any {
			return map[string]any{"nama": k.Nama}
		},
		PrimaryKey: func(k *domain.Kategori) uint { return k.ID },
	})
}

// NewBarangRepository returns the barang store. Reads carry the kategori name and the unit count.
func NewBarangRepository(db *gorm.DB) *GormRepository[domain.Barang, domain.BarangView] {
	return NewGormRepository[domain.Barang, domain.BarangView](db, Table[domain.Barang]{
		Alias:        "b",
		SearchColumn: "nama",
		Columns:      []string{"id_kategori", "nama"},
		UniqueKey: func(b *domain.Barang) map[string]any {
			return map[string]any{"nama": b.Nama, "id_kategori": b.IDKategori}
		},
		PrimaryKey: func(b *domain.Barang) uint { return b.ID },
		View: func(tx *gorm.DB) *gorm.DB {
			return tx.Table("barang AS b").
				Select("b.id, b.id_kategori, k.nama AS nama_kategori, b.nama, COUNT(d.id) AS detail_count").
				Joins("LEFT JOIN detail_barang AS d ON d.id_barang = b.id").
				Joins("LEFT JOIN kategori AS k ON k.id = b.id_kategori").
				Group("b.id, b.id_kategori, k.nama, b.nama")
		},
	})
}

// NewDetailBarangRepository returns the detail_barang store, searched by serial number
func NewDetailBarangRepository(db *gorm.DB) *GormRepository[domain.DetailBarang, domain.DetailBarang] {
	return NewGormRepository[domain.DetailBarang, domain.DetailBarang](db, Table[domain.DetailBarang]{
		SearchColumn: "serial_number",
		Columns:      []string{"id_barang", "serial_number", "gedung_lokasi_barang", "ruang_lokasi_barang", "can_borrow"},
		UniqueKey: func(d *domain.DetailBarang) map[string]any {
			return map[string]any{"serial_number": d.SerialNumber, "id_barang": d.IDBarang}
		},
		PrimaryKey: func(d *domain.DetailBarang) uint { return d.ID },
	})
}
