package domain

// User Model
type User struct {
	ID            uint    `gorm:"primaryKey" json:"id"`                                // Primary key
	Nama          string  `gorm:"size:255;not null" json:"nama"`                       // Full name
	Password      string  `gorm:"size:255;not null" json:"-"`                          // Hashed password, never serialized
	Role          string  `gorm:"size:50;not null" json:"role"`                        // Role: operator, koordinator or other
	Pekerjaan     string  `gorm:"size:255;not null" json:"pekerjaan"`                  // Occupation
	NomorPengenal string  `gorm:"size:100;not null;uniqueIndex" json:"nomor_pengenal"` // Unique identity number
	NomorWA       *string `gorm:"column:nomor_wa;size:50" json:"nomor_wa"`             // Optional WhatsApp number
	Email         *string `gorm:"size:255;uniqueIndex" json:"email"`                   // Unique login email
}

// TableName keeps the singular table name used by existing deployments
func (User) TableName() string { return "user" }

// Roles recognised by the access control guards
const (
	RoleOperator    = "operator"
	RoleKoordinator = "koordinator"
)
