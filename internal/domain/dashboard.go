package domain

// Summary holds the dashboard counters
type Summary struct {
	KategoriCount     int64 `json:"kategori_count"`
	BarangCount       int64 `json:"barang_count"`
	DetailBarangCount int64 `json:"detail_barang_count"`
}
