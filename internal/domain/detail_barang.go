package domain

// DetailBarang Model, one physical unit of a barang identified by its serial number
type DetailBarang struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`                                                                       // Primary key
	IDBarang           uint   `gorm:"column:id_barang;not null;uniqueIndex:idx_detail_serial_barang,priority:2" json:"id_barang"` // Owning barang
	SerialNumber       string `gorm:"size:255;not null;uniqueIndex:idx_detail_serial_barang,priority:1" json:"serial_number"`     // Serial number, unique per barang
	GedungLokasiBarang string `gorm:"size:255;not null" json:"gedung_lokasi_barang"`                                              // Building
	RuangLokasiBarang  string `gorm:"size:255;not null" json:"ruang_lokasi_barang"`                                               // Room, may be "0"
	CanBorrow          bool   `gorm:"not null;default:false" json:"can_borrow"`                                                   // Whether the unit can be borrowed
}

// TableName returns the detail_barang table name
func (DetailBarang) TableName() string { return "detail_barang" }
